package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"learntrack_backend/internal/model"
	"learntrack_backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(store.NewMemoryStore())

	alice := &model.User{Name: "Alice", Email: "Alice@Example.com", Role: model.Student}
	require.NoError(t, repo.Create(ctx, alice))
	require.NoError(t, repo.Create(ctx, &model.User{Name: "Bob", Email: "bob@example.com", Role: model.Teacher}))

	assert.NotEmpty(t, alice.ID)
	assert.False(t, alice.CreatedAt.IsZero())

	found, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, found.ID)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	students, err := repo.FindByRole(ctx, model.Student)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Alice", students[0].Name)
}

func TestCourseRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCourseRepository(store.NewMemoryStore())

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, repo.CreateMany(ctx, []model.Course{
		{ID: "c1", Title: "Go", TeacherID: "t1"},
		{ID: "c2", Title: "Rust", TeacherID: "t2"},
		{ID: "c3", Title: "SQL", TeacherID: "t1"},
	}))

	mine, err := repo.FindByTeacher(ctx, "t1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	some, err := repo.FindByIDs(ctx, []string{"c3", "c1", "nope"})
	require.NoError(t, err)
	require.Len(t, some, 2)
	assert.Equal(t, "c1", some[0].ID, "collection order is kept")

	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestEnrollmentRepositoryKeepsDuplicates(t *testing.T) {
	ctx := context.Background()
	repo := NewEnrollmentRepository(store.NewMemoryStore())

	for i := 0; i < 2; i++ {
		require.NoError(t, repo.Create(ctx, &model.Enrollment{StudentID: "s1", CourseID: "c1"}))
	}

	list, err := repo.FindByStudent(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.NotEqual(t, list[0].ID, list[1].ID)
}

func TestSubmissionRepositoryUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewSubmissionRepository(store.NewMemoryStore())

	sub := &model.Submission{AssignmentID: "a1", StudentID: "s1", Content: "hello"}
	require.NoError(t, repo.Create(ctx, sub))
	require.NoError(t, repo.Create(ctx, &model.Submission{AssignmentID: "a2", StudentID: "s1", Content: "x"}))

	updated, err := repo.Update(ctx, sub.ID, func(s *model.Submission) error {
		s.Verified = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, updated.Verified)

	stored, err := repo.FindByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.True(t, stored.Verified)

	t.Run("mutate error leaves collection untouched", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := repo.Update(ctx, sub.ID, func(s *model.Submission) error {
			s.Published = true
			return boom
		})
		assert.ErrorIs(t, err, boom)

		stored, err := repo.FindByID(ctx, sub.ID)
		require.NoError(t, err)
		assert.False(t, stored.Published)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.Update(ctx, "missing", func(*model.Submission) error { return nil })
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	byAssignments, err := repo.FindByAssignments(ctx, []string{"a2"})
	require.NoError(t, err)
	assert.Len(t, byAssignments, 1)
}

func TestDailyTaskRepository(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	repo := NewDailyTaskRepository(s)

	p, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, p)

	day := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC).Format(model.DailyTaskDateLayout)
	require.NoError(t, repo.Save(ctx, "u1", model.DailyTaskProgress{Date: day, Tasks: map[string]bool{"1": true}}))

	p, err = repo.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Tue Mar 05 2024", p.Date)
	assert.True(t, p.Tasks["1"])

	other, err := repo.Get(ctx, "u2")
	require.NoError(t, err)
	assert.Nil(t, other)

	raw, err := s.Read(ctx, model.DailyTasksCollection("u1"))
	require.NoError(t, err)
	assert.Len(t, raw, 1)
}

func TestVideoRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewVideoRepository(store.NewMemoryStore())

	require.NoError(t, repo.Create(ctx, &model.VideoMetadata{CourseID: "c1", Title: "Intro", OrderIndex: 0}))
	require.NoError(t, repo.Create(ctx, &model.VideoMetadata{CourseID: "c2", Title: "Other", OrderIndex: 0}))

	videos, err := repo.FindByCourse(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "Intro", videos[0].Title)
}
