package controller

import (
	"errors"
	"net/http"

	"learntrack_backend/internal/model"
	"learntrack_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondError 把服务层错误映射为统一响应：校验错误 400，找不到 404，其余 500
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrEmptyContent),
		errors.Is(err, util.ErrPublishWithoutGrade),
		errors.Is(err, util.ErrMissingField),
		errors.Is(err, util.ErrInvalidRole),
		errors.Is(err, model.ErrIllegalTransition):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrEmailRegistered):
		util.Error(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, util.ErrInvalidCredentials):
		util.Error(ctx, http.StatusUnauthorized, err.Error())
	case errors.Is(err, util.ErrSubmissionNotFound),
		errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrAssignmentNotFound),
		errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrUnknownTask):
		util.NotFoundMessage(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// currentUser 路由已挂载 AuthMiddleware，claims 缺失视为未登录
func currentUser(ctx *gin.Context) (*util.Claims, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return nil, false
	}
	return claims, true
}
