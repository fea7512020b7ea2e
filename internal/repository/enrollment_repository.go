package repository

import (
	"context"

	"learntrack_backend/internal/model"
	"learntrack_backend/internal/store"
)

type EnrollmentRepository struct {
	enrollments collection[model.Enrollment]
}

func NewEnrollmentRepository(s store.RecordStore) *EnrollmentRepository {
	return &EnrollmentRepository{enrollments: newCollection[model.Enrollment](s, model.CollectionEnrollments)}
}

// Create 直接追加，不检查同一学生同一课程是否已报名
func (r *EnrollmentRepository) Create(ctx context.Context, e *model.Enrollment) error {
	if e.ID == "" {
		e.ID = model.GenerateUUID()
	}
	return r.enrollments.append(ctx, *e)
}

func (r *EnrollmentRepository) FindByStudent(ctx context.Context, studentID string) ([]model.Enrollment, error) {
	return r.enrollments.filter(ctx, func(e model.Enrollment) bool { return e.StudentID == studentID })
}

func (r *EnrollmentRepository) FindByCourse(ctx context.Context, courseID string) ([]model.Enrollment, error) {
	return r.enrollments.filter(ctx, func(e model.Enrollment) bool { return e.CourseID == courseID })
}

func (r *EnrollmentRepository) FindAll(ctx context.Context) ([]model.Enrollment, error) {
	return r.enrollments.all(ctx)
}
