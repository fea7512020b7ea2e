package controller

import (
	"learntrack_backend/internal/service"
	"learntrack_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	AssignmentService *service.AssignmentService
}

func NewAssignmentController(assignmentService *service.AssignmentService) *AssignmentController {
	return &AssignmentController{AssignmentService: assignmentService}
}

// MyAssignments godoc
// @Summary 我的全部作业
// @Description 已报名课程下的作业，含提交状态（pending/submitted/graded）与逾期标记
// @Tags 作业
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.StudentAssignments}
// @Router /api/my/assignments [get]
func (c *AssignmentController) MyAssignments(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	result, err := c.AssignmentService.StudentAssignments(ctx.Request.Context(), claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// CreateAssignment godoc
// @Summary 创建作业
// @Tags 教师
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Param body body service.AssignmentRequest true "作业信息"
// @Success 201 {object} util.Response{data=model.Assignment}
// @Failure 400 {object} util.Response
// @Router /api/teacher/courses/{id}/assignments [post]
func (c *AssignmentController) CreateAssignment(ctx *gin.Context) {
	var req service.AssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assignment, err := c.AssignmentService.CreateAssignment(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, assignment)
}
