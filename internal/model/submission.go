package model

import (
	"errors"
	"fmt"
	"time"
)

// SubmissionState 作业提交的显式状态，由存储字段推导而来
type SubmissionState string

const (
	StateUnsubmitted SubmissionState = "unsubmitted"
	StateSubmitted   SubmissionState = "submitted"
	StateVerified    SubmissionState = "verified"
	StateGraded      SubmissionState = "graded"
	StatePublished   SubmissionState = "published"
)

// SubmissionAction 教师对提交记录的操作
type SubmissionAction string

const (
	ActionVerify  SubmissionAction = "verify"
	ActionGrade   SubmissionAction = "grade"
	ActionPublish SubmissionAction = "publish"
)

var ErrIllegalTransition = errors.New("illegal submission transition")

// swagger:model Submission
type Submission struct {
	ID           string    `json:"id"`
	AssignmentID string    `json:"assignmentId"`
	StudentID    string    `json:"studentId"`
	StudentName  string    `json:"studentName"`
	Content      string    `json:"content"`
	SubmittedAt  time.Time `json:"submittedAt"`
	Grade        *int      `json:"grade,omitempty"`
	Feedback     string    `json:"feedback,omitempty"`
	Verified     bool      `json:"verified"`
	Published    bool      `json:"published"`
}

// State 按 published > graded > verified > submitted 的优先级推导状态
func (s Submission) State() SubmissionState {
	switch {
	case s.ID == "":
		return StateUnsubmitted
	case s.Published:
		return StatePublished
	case s.Grade != nil:
		return StateGraded
	case s.Verified:
		return StateVerified
	default:
		return StateSubmitted
	}
}

func (s Submission) IsGraded() bool {
	return s.Grade != nil
}

// CanTransition 校验操作在当前状态下是否合法。
// verify 与 grade 是独立的字段修改，任何已提交状态都允许；publish 必须已有成绩。
func (s Submission) CanTransition(action SubmissionAction) error {
	state := s.State()
	if state == StateUnsubmitted {
		return fmt.Errorf("%w: %s on %s", ErrIllegalTransition, action, state)
	}

	switch action {
	case ActionVerify, ActionGrade:
		return nil
	case ActionPublish:
		if s.Grade == nil {
			return fmt.Errorf("%w: %s on %s", ErrIllegalTransition, action, state)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown action %q", ErrIllegalTransition, action)
	}
}

// Verify 标记为已审核，幂等
func (s *Submission) Verify() error {
	if err := s.CanTransition(ActionVerify); err != nil {
		return err
	}
	s.Verified = true
	return nil
}

// ApplyGrade 写入成绩与评语，同时强制 verified=true，不修改 published
func (s *Submission) ApplyGrade(grade int, feedback string) error {
	if err := s.CanTransition(ActionGrade); err != nil {
		return err
	}
	g := grade
	s.Grade = &g
	s.Feedback = feedback
	s.Verified = true
	return nil
}

func (s *Submission) Publish() error {
	if err := s.CanTransition(ActionPublish); err != nil {
		return err
	}
	s.Published = true
	return nil
}
