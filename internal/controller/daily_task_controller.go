package controller

import (
	"learntrack_backend/internal/service"
	"learntrack_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DailyTaskController struct {
	DailyTaskService *service.DailyTaskService
}

func NewDailyTaskController(dailyTaskService *service.DailyTaskService) *DailyTaskController {
	return &DailyTaskController{DailyTaskService: dailyTaskService}
}

// Today godoc
// @Summary 今日任务
// @Tags 每日任务
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.DailyTaskList}
// @Router /api/daily-tasks [get]
func (c *DailyTaskController) Today(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	list, err := c.DailyTaskService.Today(ctx.Request.Context(), claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// Toggle godoc
// @Summary 切换任务完成状态
// @Tags 每日任务
// @Produce json
// @Security ApiKeyAuth
// @Param taskId path string true "任务ID"
// @Success 200 {object} util.Response{data=service.DailyTaskList}
// @Failure 404 {object} util.Response
// @Router /api/daily-tasks/{taskId} [patch]
func (c *DailyTaskController) Toggle(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	list, err := c.DailyTaskService.Toggle(ctx.Request.Context(), claims.UserID, ctx.Param("taskId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, list)
}
