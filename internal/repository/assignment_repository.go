package repository

import (
	"context"

	"learntrack_backend/internal/model"
	"learntrack_backend/internal/store"
)

type AssignmentRepository struct {
	assignments collection[model.Assignment]
}

func NewAssignmentRepository(s store.RecordStore) *AssignmentRepository {
	return &AssignmentRepository{assignments: newCollection[model.Assignment](s, model.CollectionAssignments)}
}

func (r *AssignmentRepository) Create(ctx context.Context, a *model.Assignment) error {
	if a.ID == "" {
		a.ID = model.GenerateUUID()
	}
	return r.assignments.append(ctx, *a)
}

func (r *AssignmentRepository) CreateMany(ctx context.Context, items []model.Assignment) error {
	return r.assignments.append(ctx, items...)
}

func (r *AssignmentRepository) FindByID(ctx context.Context, id string) (*model.Assignment, error) {
	return r.assignments.first(ctx, func(a model.Assignment) bool { return a.ID == id })
}

func (r *AssignmentRepository) FindByCourse(ctx context.Context, courseID string) ([]model.Assignment, error) {
	return r.assignments.filter(ctx, func(a model.Assignment) bool { return a.CourseID == courseID })
}

func (r *AssignmentRepository) FindByCourses(ctx context.Context, courseIDs []string) ([]model.Assignment, error) {
	set := toSet(courseIDs)
	return r.assignments.filter(ctx, func(a model.Assignment) bool { return set[a.CourseID] })
}
