package service

import (
	"context"
	"testing"
	"time"

	"learntrack_backend/internal/model"
	"learntrack_backend/internal/repository"
	"learntrack_backend/internal/store"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)

func clock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type repos struct {
	store       *store.MemoryStore
	users       *repository.UserRepository
	courses     *repository.CourseRepository
	assignments *repository.AssignmentRepository
	enrollments *repository.EnrollmentRepository
	submissions *repository.SubmissionRepository
	videos      *repository.VideoRepository
	tasks       *repository.DailyTaskRepository
}

func newRepos() *repos {
	s := store.NewMemoryStore()
	return &repos{
		store:       s,
		users:       repository.NewUserRepository(s),
		courses:     repository.NewCourseRepository(s),
		assignments: repository.NewAssignmentRepository(s),
		enrollments: repository.NewEnrollmentRepository(s),
		submissions: repository.NewSubmissionRepository(s),
		videos:      repository.NewVideoRepository(s),
		tasks:       repository.NewDailyTaskRepository(s),
	}
}

func (r *repos) addStudent(t *testing.T, id, name string) {
	t.Helper()
	require.NoError(t, r.users.Create(context.Background(), &model.User{ID: id, Name: name, Email: id + "@example.com", Role: model.Student}))
}

func (r *repos) addCourse(t *testing.T, id, title string) {
	t.Helper()
	require.NoError(t, r.courses.Create(context.Background(), &model.Course{ID: id, Title: title, TeacherID: "t1", TeacherName: "Dr. T"}))
}

func (r *repos) addAssignment(t *testing.T, id, courseID string) {
	t.Helper()
	require.NoError(t, r.assignments.Create(context.Background(), &model.Assignment{ID: id, CourseID: courseID, Title: "Assignment " + id, DueDate: fixedNow.Add(24 * time.Hour)}))
}

func (r *repos) enroll(t *testing.T, studentID, courseID string, at time.Time) {
	t.Helper()
	require.NoError(t, r.enrollments.Create(context.Background(), &model.Enrollment{StudentID: studentID, CourseID: courseID, EnrolledAt: at}))
}

func (r *repos) submit(t *testing.T, studentID, assignmentID string, at time.Time) *model.Submission {
	t.Helper()
	sub := &model.Submission{StudentID: studentID, AssignmentID: assignmentID, Content: "work", SubmittedAt: at}
	require.NoError(t, r.submissions.Create(context.Background(), sub))
	return sub
}

func intPtr(v int) *int { return &v }
