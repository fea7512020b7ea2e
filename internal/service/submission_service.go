package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"learntrack_backend/internal/model"
	"learntrack_backend/internal/util"
	"learntrack_backend/pkg/logger"
	"learntrack_backend/pkg/monitoring"

	"go.uber.org/zap"
)

type SubmissionService struct {
	SubmissionRepo SubmissionStore
	AssignmentRepo AssignmentStore

	now func() time.Time
}

func NewSubmissionService(submissionRepo SubmissionStore, assignmentRepo AssignmentStore) *SubmissionService {
	return &SubmissionService{
		SubmissionRepo: submissionRepo,
		AssignmentRepo: assignmentRepo,
		now:            model.Now,
	}
}

type SubmitRequest struct {
	AssignmentID string
	StudentID    string
	StudentName  string
	Content      string
}

// Submit 内容为空或只有空白时拒绝，不写入。不限制重复提交。
func (s *SubmissionService) Submit(ctx context.Context, req SubmitRequest) (*model.Submission, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, util.ErrEmptyContent
	}
	if req.AssignmentID == "" || req.StudentID == "" {
		return nil, util.ErrMissingField
	}

	sub := &model.Submission{
		ID:           model.GenerateUUID(),
		AssignmentID: req.AssignmentID,
		StudentID:    req.StudentID,
		StudentName:  req.StudentName,
		Content:      req.Content,
		SubmittedAt:  s.now(),
	}
	if err := s.SubmissionRepo.Create(ctx, sub); err != nil {
		logger.Log.Error("Failed to save submission", zap.String("assignmentID", req.AssignmentID), zap.Error(err))
		return nil, err
	}

	monitoring.RecordEvent(util.EventSubmit)
	return sub, nil
}

// Verify 幂等
func (s *SubmissionService) Verify(ctx context.Context, submissionID string) (*model.Submission, error) {
	return s.apply(ctx, submissionID, util.EventVerify, func(sub *model.Submission) error {
		return sub.Verify()
	})
}

// Grade 写入成绩和评语并标记为已审核，不修改发布状态。成绩不做范围校验。
func (s *SubmissionService) Grade(ctx context.Context, submissionID string, grade int, feedback string) (*model.Submission, error) {
	return s.apply(ctx, submissionID, util.EventGrade, func(sub *model.Submission) error {
		return sub.ApplyGrade(grade, feedback)
	})
}

// Publish 没有成绩时返回 ErrPublishWithoutGrade，记录保持不变
func (s *SubmissionService) Publish(ctx context.Context, submissionID string) (*model.Submission, error) {
	return s.apply(ctx, submissionID, util.EventPublish, func(sub *model.Submission) error {
		if err := sub.Publish(); err != nil {
			if !sub.IsGraded() {
				return fmt.Errorf("%w: %w", util.ErrPublishWithoutGrade, err)
			}
			return err
		}
		return nil
	})
}

func (s *SubmissionService) apply(ctx context.Context, submissionID, event string, mutate func(*model.Submission) error) (*model.Submission, error) {
	sub, err := s.SubmissionRepo.Update(ctx, submissionID, mutate)
	if err != nil {
		err = notFound(err, util.ErrSubmissionNotFound)
		if !errors.Is(err, util.ErrSubmissionNotFound) && !errors.Is(err, model.ErrIllegalTransition) {
			logger.Log.Error("Failed to update submission", zap.String("submissionID", submissionID), zap.String("event", event), zap.Error(err))
		}
		return nil, err
	}

	monitoring.RecordEvent(event)
	logger.Log.Info("Submission updated", zap.String("submissionID", submissionID), zap.String("event", event), zap.String("state", string(sub.State())))
	return sub, nil
}

// OverallGrade 学生在课程下所有已发布成绩的算术平均值，保留一位小数。没有已发布成绩时返回 nil。
func (s *SubmissionService) OverallGrade(ctx context.Context, studentID, courseID string) (*float64, error) {
	assignments, err := s.AssignmentRepo.FindByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	inCourse := make(map[string]bool, len(assignments))
	for _, a := range assignments {
		inCourse[a.ID] = true
	}

	submissions, err := s.SubmissionRepo.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	sum, n := 0, 0
	for _, sub := range submissions {
		if !inCourse[sub.AssignmentID] || !sub.Published || sub.Grade == nil {
			continue
		}
		sum += *sub.Grade
		n++
	}
	if n == 0 {
		return nil, nil
	}

	avg := math.Round(float64(sum)/float64(n)*10) / 10
	return &avg, nil
}

func (s *SubmissionService) ListForAssignment(ctx context.Context, assignmentID string) ([]model.Submission, error) {
	return s.SubmissionRepo.FindByAssignment(ctx, assignmentID)
}

func (s *SubmissionService) ListForStudent(ctx context.Context, studentID string) ([]model.Submission, error) {
	return s.SubmissionRepo.FindByStudent(ctx, studentID)
}

// ListForCourse 教师查看课程下全部作业的提交
func (s *SubmissionService) ListForCourse(ctx context.Context, courseID string) ([]model.Submission, error) {
	assignments, err := s.AssignmentRepo.FindByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return []model.Submission{}, nil
	}
	return s.SubmissionRepo.FindByAssignments(ctx, assignmentIDs(assignments))
}
