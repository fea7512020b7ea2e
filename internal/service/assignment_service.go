package service

import (
	"context"
	"strings"
	"time"

	"learntrack_backend/internal/model"
	"learntrack_backend/internal/util"
	"learntrack_backend/pkg/logger"

	"go.uber.org/zap"
)

const unknownCourseName = "Unknown Course"

type AssignmentService struct {
	AssignmentRepo AssignmentStore
	CourseRepo     CourseStore
	EnrollmentRepo EnrollmentStore
	SubmissionRepo SubmissionStore

	now func() time.Time
}

func NewAssignmentService(
	assignmentRepo AssignmentStore,
	courseRepo CourseStore,
	enrollmentRepo EnrollmentStore,
	submissionRepo SubmissionStore,
) *AssignmentService {
	return &AssignmentService{
		AssignmentRepo: assignmentRepo,
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
		SubmissionRepo: submissionRepo,
		now:            model.Now,
	}
}

type AssignmentRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate" binding:"required"`
}

// StudentAssignment 学生视角的作业：所属课程名、提交状态、是否逾期
type StudentAssignment struct {
	model.Assignment
	CourseName string            `json:"courseName"`
	Status     string            `json:"status"`
	Overdue    bool              `json:"overdue"`
	Submission *model.Submission `json:"submission,omitempty"`
}

type StudentAssignments struct {
	Assignments []StudentAssignment `json:"assignments"`
	Total       int                 `json:"total"`
	Submitted   int                 `json:"submitted"`
	Graded      int                 `json:"graded"`
}

func (s *AssignmentService) CreateAssignment(ctx context.Context, courseID string, req AssignmentRequest) (*model.Assignment, error) {
	if courseID == "" || strings.TrimSpace(req.Title) == "" {
		return nil, util.ErrMissingField
	}

	a := &model.Assignment{
		ID:          model.GenerateUUID(),
		CourseID:    courseID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	if err := s.AssignmentRepo.Create(ctx, a); err != nil {
		logger.Log.Error("Failed to create assignment", zap.String("courseID", courseID), zap.Error(err))
		return nil, err
	}
	return a, nil
}

func (s *AssignmentService) GetAssignment(ctx context.Context, id string) (*model.Assignment, error) {
	a, err := s.AssignmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrAssignmentNotFound)
	}
	return a, nil
}

func (s *AssignmentService) ListByCourse(ctx context.Context, courseID string) ([]model.Assignment, error) {
	return s.AssignmentRepo.FindByCourse(ctx, courseID)
}

// StudentAssignments 学生已报名课程下的全部作业。
// 状态取该作业的第一条提交：没有为 pending，有成绩为 graded，否则 submitted。
func (s *AssignmentService) StudentAssignments(ctx context.Context, studentID string) (*StudentAssignments, error) {
	enrollments, err := s.EnrollmentRepo.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	enrolled := make([]string, 0, len(enrollments))
	for _, e := range enrollments {
		enrolled = append(enrolled, e.CourseID)
	}

	assignments, err := s.AssignmentRepo.FindByCourses(ctx, enrolled)
	if err != nil {
		return nil, err
	}
	courses, err := s.CourseRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	submissions, err := s.SubmissionRepo.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	titles := make(map[string]string, len(courses))
	for _, c := range courses {
		titles[c.ID] = c.Title
	}
	firstSubmission := make(map[string]model.Submission)
	result := &StudentAssignments{Submitted: len(submissions)}
	for _, sub := range submissions {
		if _, ok := firstSubmission[sub.AssignmentID]; !ok {
			firstSubmission[sub.AssignmentID] = sub
		}
		if sub.IsGraded() {
			result.Graded++
		}
	}

	now := s.now()
	result.Assignments = make([]StudentAssignment, 0, len(assignments))
	for _, a := range assignments {
		item := StudentAssignment{
			Assignment: a,
			CourseName: unknownCourseName,
			Status:     util.AssignmentPending,
		}
		if title, ok := titles[a.CourseID]; ok {
			item.CourseName = title
		}
		if sub, ok := firstSubmission[a.ID]; ok {
			sub := sub
			item.Submission = &sub
			item.Status = util.AssignmentSubmitted
			if sub.IsGraded() {
				item.Status = util.AssignmentGraded
			}
		} else {
			// 已提交的作业不再算逾期
			item.Overdue = a.IsOverdue(now)
		}
		result.Assignments = append(result.Assignments, item)
	}
	result.Total = len(result.Assignments)
	return result, nil
}
