package util

import "errors"

var (
	ErrUserNotFound        = errors.New("用户不存在")
	ErrEmailRegistered     = errors.New("该邮箱已被注册")
	ErrInvalidCredentials  = errors.New("邮箱或密码错误")
	ErrInvalidRole         = errors.New("invalid role")
	ErrCourseNotFound      = errors.New("course not found")
	ErrAssignmentNotFound  = errors.New("assignment not found")
	ErrSubmissionNotFound  = errors.New("submission not found")
	ErrEmptyContent        = errors.New("submission content is empty")
	ErrPublishWithoutGrade = errors.New("cannot publish a submission without a grade")
	ErrMissingField        = errors.New("missing required field")
	ErrUnknownTask         = errors.New("unknown daily task")
)
