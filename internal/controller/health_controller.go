package controller

import (
	"net/http"

	"learntrack_backend/internal/store"
	"learntrack_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	Store     store.RecordStore
	StoreType string
}

func NewHealthController(s store.RecordStore, storeType string) *HealthController {
	return &HealthController{Store: s, StoreType: storeType}
}

// @Summary 健康检查
// @Description 检查记录存储是否可用
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	if pinger, ok := c.Store.(store.Pinger); ok {
		if err := pinger.Ping(ctx.Request.Context()); err != nil {
			util.Error(ctx, http.StatusServiceUnavailable, "Record store unavailable")
			return
		}
	}

	ffprobe := "missing"
	if util.FFprobeAvailable() {
		ffprobe = "available"
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"store":   c.StoreType,
			"ffprobe": ffprobe,
		},
	})
}
