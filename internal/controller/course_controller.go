package controller

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"learntrack_backend/internal/service"
	"learntrack_backend/internal/util"
	"learntrack_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CourseController struct {
	CourseService     *service.CourseService
	EnrollmentService *service.EnrollmentService
	AssignmentService *service.AssignmentService
}

func NewCourseController(
	courseService *service.CourseService,
	enrollmentService *service.EnrollmentService,
	assignmentService *service.AssignmentService,
) *CourseController {
	return &CourseController{
		CourseService:     courseService,
		EnrollmentService: enrollmentService,
		AssignmentService: assignmentService,
	}
}

// ListCourses godoc
// @Summary 课程列表
// @Description 按标题、简介、教师名搜索课程（不区分大小写），q 为空时返回全部
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param q query string false "搜索关键词"
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.CourseService.SearchCourses(ctx.Request.Context(), ctx.Query("q"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetCourse godoc
// @Summary 课程详情
// @Description 返回课程、已上传视频以及当前用户是否已报名
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response{data=service.CourseDetail}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	course, err := c.CourseService.GetCourse(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	course.Enrolled, err = c.EnrollmentService.IsEnrolled(ctx.Request.Context(), claims.UserID, course.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// CourseAssignments godoc
// @Summary 课程作业列表
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response{data=[]model.Assignment}
// @Router /api/courses/{id}/assignments [get]
func (c *CourseController) CourseAssignments(ctx *gin.Context) {
	assignments, err := c.AssignmentService.ListByCourse(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, assignments)
}

// Enroll godoc
// @Summary 报名课程
// @Description 每次调用都会新增一条报名记录
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Success 201 {object} util.Response{data=model.Enrollment}
// @Router /api/courses/{id}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	enrollment, err := c.EnrollmentService.Enroll(ctx.Request.Context(), claims.UserID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, enrollment)
}

// MyCourses godoc
// @Summary 我报名的课程
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/my/courses [get]
func (c *CourseController) MyCourses(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	courses, err := c.EnrollmentService.EnrolledCourses(ctx.Request.Context(), claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// CreateCourse godoc
// @Summary 创建课程
// @Tags 教师
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CourseRequest true "课程信息"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response
// @Router /api/teacher/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.CreateCourse(ctx.Request.Context(), teacherFrom(claims), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// UploadCourse godoc
// @Summary 创建课程并上传视频
// @Description multipart 表单：title、description、duration，videos 为视频文件，
// @Description video_titles / video_durations 与 videos 一一对应（可省略）。
// @Description 中途上传失败时课程和已上传的视频保留。
// @Tags 教师
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param title formData string true "课程标题"
// @Param description formData string false "课程简介"
// @Param duration formData string false "课程时长"
// @Param videos formData file true "视频文件"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response
// @Failure 500 {object} util.Response
// @Router /api/teacher/courses/upload [post]
func (c *CourseController) UploadCourse(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req service.CourseRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		util.BadRequest(ctx, "invalid multipart form")
		return
	}
	files := form.File["videos"]
	titles := form.Value["video_titles"]
	durations := form.Value["video_durations"]

	tmpDir, err := os.MkdirTemp("", "learntrack-upload-*")
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.RemoveAll(tmpDir)

	uploads := make([]service.VideoUpload, 0, len(files))
	for i, fh := range files {
		if fh.Size > util.MaxVideoUploadSize {
			util.BadRequest(ctx, fmt.Sprintf("%s exceeds the upload size limit", fh.Filename))
			return
		}
		mimeType, err := sniffVideo(fh)
		if err != nil {
			util.BadRequest(ctx, fmt.Sprintf("%s: %v", fh.Filename, err))
			return
		}

		name := filepath.Base(fh.Filename)
		localPath := filepath.Join(tmpDir, fmt.Sprintf("%d-%s", i, name))
		if err := ctx.SaveUploadedFile(fh, localPath); err != nil {
			util.LogInternalError(ctx, err)
			return
		}

		up := service.VideoUpload{
			Title:       name,
			FileName:    name,
			LocalPath:   localPath,
			ContentType: mimeType,
		}
		if i < len(titles) && titles[i] != "" {
			up.Title = titles[i]
		}
		if i < len(durations) {
			up.Duration = durations[i]
		}
		uploads = append(uploads, up)
	}

	course, err := c.CourseService.CreateCourseWithVideos(ctx.Request.Context(), teacherFrom(claims), req, uploads)
	if err != nil {
		if course != nil {
			logger.Log.Warn("Course created without all videos", zap.String("courseID", course.ID), zap.Error(err))
		}
		respondError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// sniffVideo 先嗅探内容，嗅探不出时按扩展名放行
func sniffVideo(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	mimeType, err := util.ValidateMimeType(f, []string{util.MimeVideo})
	if err == nil {
		return mimeType, nil
	}
	if util.HasVideoExtension(fh.Filename) {
		return util.MimeOctetStream, nil
	}
	return "", err
}

// TeacherCourses godoc
// @Summary 教师的课程及报名人数
// @Tags 教师
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.TeacherOverview}
// @Router /api/teacher/courses [get]
func (c *CourseController) TeacherCourses(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}

	overview, err := c.CourseService.TeacherCourses(ctx.Request.Context(), claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}

// CourseStudents godoc
// @Summary 课程的报名学生
// @Tags 教师
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response{data=[]model.User}
// @Router /api/teacher/courses/{id}/students [get]
func (c *CourseController) CourseStudents(ctx *gin.Context) {
	students, err := c.EnrollmentService.EnrolledStudents(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, students)
}

func teacherFrom(claims *util.Claims) service.Teacher {
	return service.Teacher{ID: claims.UserID, Name: claims.Name}
}
