package service

import (
	"context"
	"errors"

	"learntrack_backend/internal/model"
	"learntrack_backend/internal/repository"
)

// 服务层依赖的仓储接口，由 internal/repository 实现，测试中注入基于内存存储的仓储

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByRole(ctx context.Context, role model.UserRole) ([]model.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.User, error)
}

type CourseStore interface {
	Create(ctx context.Context, course *model.Course) error
	CreateMany(ctx context.Context, courses []model.Course) error
	FindByID(ctx context.Context, id string) (*model.Course, error)
	FindAll(ctx context.Context) ([]model.Course, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.Course, error)
	FindByTeacher(ctx context.Context, teacherID string) ([]model.Course, error)
	Count(ctx context.Context) (int, error)
}

type AssignmentStore interface {
	Create(ctx context.Context, a *model.Assignment) error
	CreateMany(ctx context.Context, items []model.Assignment) error
	FindByID(ctx context.Context, id string) (*model.Assignment, error)
	FindByCourse(ctx context.Context, courseID string) ([]model.Assignment, error)
	FindByCourses(ctx context.Context, courseIDs []string) ([]model.Assignment, error)
}

type EnrollmentStore interface {
	Create(ctx context.Context, e *model.Enrollment) error
	FindByStudent(ctx context.Context, studentID string) ([]model.Enrollment, error)
	FindByCourse(ctx context.Context, courseID string) ([]model.Enrollment, error)
	FindAll(ctx context.Context) ([]model.Enrollment, error)
}

type SubmissionStore interface {
	Create(ctx context.Context, sub *model.Submission) error
	FindByID(ctx context.Context, id string) (*model.Submission, error)
	Update(ctx context.Context, id string, mutate func(*model.Submission) error) (*model.Submission, error)
	FindByStudent(ctx context.Context, studentID string) ([]model.Submission, error)
	FindByAssignment(ctx context.Context, assignmentID string) ([]model.Submission, error)
	FindByAssignments(ctx context.Context, assignmentIDs []string) ([]model.Submission, error)
	FindAll(ctx context.Context) ([]model.Submission, error)
}

type VideoStore interface {
	Create(ctx context.Context, v *model.VideoMetadata) error
	FindByCourse(ctx context.Context, courseID string) ([]model.VideoMetadata, error)
}

type DailyTaskStore interface {
	Get(ctx context.Context, userID string) (*model.DailyTaskProgress, error)
	Save(ctx context.Context, userID string, p model.DailyTaskProgress) error
}

// notFound 将仓储层的 ErrRecordNotFound 转换为领域错误
func notFound(err, domainErr error) error {
	if errors.Is(err, repository.ErrRecordNotFound) {
		return domainErr
	}
	return err
}

func courseIDs(courses []model.Course) []string {
	ids := make([]string, len(courses))
	for i, c := range courses {
		ids[i] = c.ID
	}
	return ids
}

func assignmentIDs(assignments []model.Assignment) []string {
	ids := make([]string, len(assignments))
	for i, a := range assignments {
		ids[i] = a.ID
	}
	return ids
}
