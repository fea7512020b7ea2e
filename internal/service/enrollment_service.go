package service

import (
	"context"
	"strings"
	"time"

	"learntrack_backend/internal/model"
	"learntrack_backend/internal/util"
	"learntrack_backend/pkg/logger"
	"learntrack_backend/pkg/monitoring"

	"go.uber.org/zap"
)

type EnrollmentService struct {
	EnrollmentRepo EnrollmentStore
	CourseRepo     CourseStore
	UserRepo       UserStore

	now func() time.Time
}

func NewEnrollmentService(enrollmentRepo EnrollmentStore, courseRepo CourseStore, userRepo UserStore) *EnrollmentService {
	return &EnrollmentService{
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
		UserRepo:       userRepo,
		now:            model.Now,
	}
}

// Enroll 每次调用都追加一条新的报名记录。
// 不检查是否已报名，重复调用会产生重复记录。
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, courseID string) (*model.Enrollment, error) {
	if strings.TrimSpace(studentID) == "" || strings.TrimSpace(courseID) == "" {
		return nil, util.ErrMissingField
	}

	enrollment := &model.Enrollment{
		ID:         model.GenerateUUID(),
		StudentID:  studentID,
		CourseID:   courseID,
		EnrolledAt: s.now(),
	}
	if err := s.EnrollmentRepo.Create(ctx, enrollment); err != nil {
		logger.Log.Error("Failed to save enrollment", zap.String("studentID", studentID), zap.String("courseID", courseID), zap.Error(err))
		return nil, err
	}

	monitoring.RecordEvent(util.EventEnroll)
	logger.Log.Info("Student enrolled", zap.String("studentID", studentID), zap.String("courseID", courseID))
	return enrollment, nil
}

// EnrolledCourses 学生已报名的课程，按课程集合顺序返回；已不存在的课程被忽略
func (s *EnrollmentService) EnrolledCourses(ctx context.Context, studentID string) ([]model.Course, error) {
	enrollments, err := s.EnrollmentRepo.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if len(enrollments) == 0 {
		return []model.Course{}, nil
	}

	ids := make([]string, len(enrollments))
	for i, e := range enrollments {
		ids[i] = e.CourseID
	}
	return s.CourseRepo.FindByIDs(ctx, ids)
}

// EnrolledStudents 课程的报名学生（去重）
func (s *EnrollmentService) EnrolledStudents(ctx context.Context, courseID string) ([]model.User, error) {
	enrollments, err := s.EnrollmentRepo.FindByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if len(enrollments) == 0 {
		return []model.User{}, nil
	}

	ids := make([]string, len(enrollments))
	for i, e := range enrollments {
		ids[i] = e.StudentID
	}
	users, err := s.UserRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i] = users[i].Public()
	}
	return users, nil
}

func (s *EnrollmentService) IsEnrolled(ctx context.Context, studentID, courseID string) (bool, error) {
	enrollments, err := s.EnrollmentRepo.FindByStudent(ctx, studentID)
	if err != nil {
		return false, err
	}
	for _, e := range enrollments {
		if e.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}
