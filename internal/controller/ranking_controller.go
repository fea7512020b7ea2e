package controller

import (
	"learntrack_backend/internal/service"
	"learntrack_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RankingController struct {
	RankingService *service.RankingService
}

func NewRankingController(rankingService *service.RankingService) *RankingController {
	return &RankingController{RankingService: rankingService}
}

// Rank godoc
// @Summary 当前用户等级
// @Tags 排名
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object}
// @Router /api/rank [get]
func (c *RankingController) Rank(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	rank, err := c.RankingService.CalculateRank(ctx.Request.Context(), claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"rank": rank})
}

// Badges godoc
// @Summary 当前用户徽章
// @Tags 排名
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Badge}
// @Router /api/badges [get]
func (c *RankingController) Badges(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	badges, err := c.RankingService.GetBadges(ctx.Request.Context(), claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, badges)
}

// Profile godoc
// @Summary 个人主页
// @Tags 排名
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.Profile}
// @Failure 404 {object} util.Response
// @Router /api/profile [get]
func (c *RankingController) Profile(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	profile, err := c.RankingService.Profile(ctx.Request.Context(), claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}

// Rankings godoc
// @Summary 学生排行榜
// @Description score = 等级权重*100 + 报名数*10 + 提交数*20
// @Tags 排名
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.LeaderboardEntry}
// @Router /api/rankings [get]
func (c *RankingController) Rankings(ctx *gin.Context) {
	entries, err := c.RankingService.Leaderboard(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}
