package repository

import (
	"context"

	"learntrack_backend/internal/model"
	"learntrack_backend/internal/store"
)

type SubmissionRepository struct {
	submissions collection[model.Submission]
}

func NewSubmissionRepository(s store.RecordStore) *SubmissionRepository {
	return &SubmissionRepository{submissions: newCollection[model.Submission](s, model.CollectionSubmissions)}
}

func (r *SubmissionRepository) Create(ctx context.Context, sub *model.Submission) error {
	if sub.ID == "" {
		sub.ID = model.GenerateUUID()
	}
	return r.submissions.append(ctx, *sub)
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id string) (*model.Submission, error) {
	return r.submissions.first(ctx, func(s model.Submission) bool { return s.ID == id })
}

// Update 对指定提交执行 mutate 并写回整个集合
func (r *SubmissionRepository) Update(ctx context.Context, id string, mutate func(*model.Submission) error) (*model.Submission, error) {
	return r.submissions.update(ctx, func(s model.Submission) bool { return s.ID == id }, mutate)
}

func (r *SubmissionRepository) FindByStudent(ctx context.Context, studentID string) ([]model.Submission, error) {
	return r.submissions.filter(ctx, func(s model.Submission) bool { return s.StudentID == studentID })
}

func (r *SubmissionRepository) FindByAssignment(ctx context.Context, assignmentID string) ([]model.Submission, error) {
	return r.submissions.filter(ctx, func(s model.Submission) bool { return s.AssignmentID == assignmentID })
}

func (r *SubmissionRepository) FindByAssignments(ctx context.Context, assignmentIDs []string) ([]model.Submission, error) {
	set := toSet(assignmentIDs)
	return r.submissions.filter(ctx, func(s model.Submission) bool { return set[s.AssignmentID] })
}

func (r *SubmissionRepository) FindAll(ctx context.Context) ([]model.Submission, error) {
	return r.submissions.all(ctx)
}
