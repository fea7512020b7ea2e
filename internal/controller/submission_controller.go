package controller

import (
	"learntrack_backend/internal/service"
	"learntrack_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	SubmissionService *service.SubmissionService
}

func NewSubmissionController(submissionService *service.SubmissionService) *SubmissionController {
	return &SubmissionController{SubmissionService: submissionService}
}

// SubmitRequest 学生提交作业
// swagger:model SubmitRequest
type SubmitRequest struct {
	Content string `json:"content"`
}

// GradeRequest 教师评分，界面限制 0-100
// swagger:model GradeRequest
type GradeRequest struct {
	Grade    *int   `json:"grade" binding:"required,min=0,max=100"`
	Feedback string `json:"feedback"`
}

// OverallGrade 课程总评，没有已发布成绩时 grade 为 null
type OverallGrade struct {
	CourseID string   `json:"courseId"`
	Grade    *float64 `json:"grade"`
}

// Submit godoc
// @Summary 提交作业
// @Description 内容为空或只有空白时返回 400
// @Tags 作业
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "作业ID"
// @Param body body SubmitRequest true "提交内容"
// @Success 201 {object} util.Response{data=model.Submission}
// @Failure 400 {object} util.Response
// @Router /api/assignments/{id}/submissions [post]
func (c *SubmissionController) Submit(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sub, err := c.SubmissionService.Submit(ctx.Request.Context(), service.SubmitRequest{
		AssignmentID: ctx.Param("id"),
		StudentID:    claims.UserID,
		StudentName:  claims.Name,
		Content:      req.Content,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, sub)
}

// MySubmissions godoc
// @Summary 我的提交
// @Tags 作业
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Submission}
// @Router /api/my/submissions [get]
func (c *SubmissionController) MySubmissions(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	subs, err := c.SubmissionService.ListForStudent(ctx.Request.Context(), claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, subs)
}

// CourseGrade godoc
// @Summary 课程总评
// @Description 当前学生在课程下已发布成绩的平均分，保留一位小数
// @Tags 作业
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response{data=OverallGrade}
// @Router /api/courses/{id}/grade [get]
func (c *SubmissionController) CourseGrade(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	courseID := ctx.Param("id")
	grade, err := c.SubmissionService.OverallGrade(ctx.Request.Context(), claims.UserID, courseID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, OverallGrade{CourseID: courseID, Grade: grade})
}

// CourseSubmissions godoc
// @Summary 课程下的全部提交
// @Tags 教师
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Param assignmentId query string false "只看某个作业"
// @Success 200 {object} util.Response{data=[]model.Submission}
// @Router /api/teacher/courses/{id}/submissions [get]
func (c *SubmissionController) CourseSubmissions(ctx *gin.Context) {
	var (
		subs interface{}
		err  error
	)
	if assignmentID := ctx.Query("assignmentId"); assignmentID != "" {
		subs, err = c.SubmissionService.ListForAssignment(ctx.Request.Context(), assignmentID)
	} else {
		subs, err = c.SubmissionService.ListForCourse(ctx.Request.Context(), ctx.Param("id"))
	}
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, subs)
}

// Verify godoc
// @Summary 审核提交
// @Tags 教师
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "提交ID"
// @Success 200 {object} util.Response{data=model.Submission}
// @Failure 404 {object} util.Response
// @Router /api/teacher/submissions/{id}/verify [post]
func (c *SubmissionController) Verify(ctx *gin.Context) {
	sub, err := c.SubmissionService.Verify(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, sub)
}

// Grade godoc
// @Summary 评分
// @Description 写入成绩和评语，并自动标记为已审核
// @Tags 教师
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "提交ID"
// @Param body body GradeRequest true "成绩"
// @Success 200 {object} util.Response{data=model.Submission}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/teacher/submissions/{id}/grade [post]
func (c *SubmissionController) Grade(ctx *gin.Context) {
	var req GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sub, err := c.SubmissionService.Grade(ctx.Request.Context(), ctx.Param("id"), *req.Grade, req.Feedback)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, sub)
}

// Publish godoc
// @Summary 发布成绩
// @Description 没有成绩时返回 400
// @Tags 教师
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "提交ID"
// @Success 200 {object} util.Response{data=model.Submission}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/teacher/submissions/{id}/publish [post]
func (c *SubmissionController) Publish(ctx *gin.Context) {
	sub, err := c.SubmissionService.Publish(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, sub)
}
