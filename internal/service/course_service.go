package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"learntrack_backend/internal/model"
	"learntrack_backend/internal/util"
	"learntrack_backend/pkg/logger"
	"learntrack_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// VideoUploader 课程视频上传协作者，由 StorageService 实现
type VideoUploader interface {
	UploadFile(ctx context.Context, key string, localPath string, contentType string) (string, error)
}

type CourseService struct {
	CourseRepo     CourseStore
	EnrollmentRepo EnrollmentStore
	VideoRepo      VideoStore
	Uploader       VideoUploader

	probe func(path string) (*util.VideoInfo, error)
}

func NewCourseService(courseRepo CourseStore, enrollmentRepo EnrollmentStore, videoRepo VideoStore, uploader VideoUploader) *CourseService {
	return &CourseService{
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
		VideoRepo:      videoRepo,
		Uploader:       uploader,
		probe:          util.GetVideoInfo,
	}
}

// Teacher 创建课程的教师，名字冗余保存在课程上
type Teacher struct {
	ID   string
	Name string
}

type CourseRequest struct {
	Title       string         `json:"title" form:"title" binding:"required"`
	Description string         `json:"description" form:"description"`
	Duration    string         `json:"duration" form:"duration"`
	Modules     []model.Module `json:"modules"`
}

// VideoUpload 已落盘到临时文件的待上传视频
type VideoUpload struct {
	Title       string
	FileName    string
	LocalPath   string
	ContentType string
	Duration    string // 为空时用 ffprobe 探测
}

// CourseSummary 教师看板中的课程及报名人数
type CourseSummary struct {
	model.Course
	EnrollmentCount int `json:"enrollmentCount"`
}

type TeacherOverview struct {
	Courses       []CourseSummary `json:"courses"`
	TotalCourses  int             `json:"totalCourses"`
	TotalStudents int             `json:"totalStudents"`
}

// CourseDetail 课程及其上传的视频
type CourseDetail struct {
	model.Course
	UploadedVideos []model.VideoMetadata `json:"uploadedVideos"`
	// Enrolled 当前用户是否已报名，由调用方填充
	Enrolled bool `json:"enrolled"`
}

func (s *CourseService) CreateCourse(ctx context.Context, teacher Teacher, req CourseRequest) (*model.Course, error) {
	if strings.TrimSpace(req.Title) == "" || teacher.ID == "" {
		return nil, util.ErrMissingField
	}

	course := &model.Course{
		ID:          model.GenerateUUID(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Duration:    req.Duration,
		TeacherID:   teacher.ID,
		TeacherName: teacher.Name,
		Modules:     withModuleIDs(req.Modules),
	}
	if err := s.CourseRepo.Create(ctx, course); err != nil {
		logger.Log.Error("Failed to create course", zap.String("teacherID", teacher.ID), zap.Error(err))
		return nil, err
	}

	logger.Log.Info("Course created", zap.String("courseID", course.ID), zap.String("teacherID", teacher.ID))
	return course, nil
}

func withModuleIDs(modules []model.Module) []model.Module {
	for i := range modules {
		if modules[i].ID == "" {
			modules[i].ID = model.GenerateUUID()
		}
		for j := range modules[i].Videos {
			if modules[i].Videos[j].ID == "" {
				modules[i].Videos[j].ID = model.GenerateUUID()
			}
		}
	}
	return modules
}

// CreateCourseWithVideos 先创建课程，再按顺序逐个上传视频并写入元数据。
// 中途失败直接返回错误，已创建的课程和已上传的视频保留，不做回滚。
func (s *CourseService) CreateCourseWithVideos(ctx context.Context, teacher Teacher, req CourseRequest, uploads []VideoUpload) (course *model.Course, err error) {
	ctx, span := tracing.Start(ctx, "CourseService.CreateCourseWithVideos",
		attribute.String("teacher.id", teacher.ID),
		attribute.Int("videos", len(uploads)))
	defer func() { tracing.End(span, err) }()

	course, err = s.CreateCourse(ctx, teacher, req)
	if err != nil {
		return nil, err
	}

	for i, up := range uploads {
		key := path.Join(teacher.ID, course.ID, up.FileName)

		url, err := s.Uploader.UploadFile(ctx, key, up.LocalPath, up.ContentType)
		if err != nil {
			logger.Log.Error("Video upload failed", zap.String("courseID", course.ID), zap.String("file", up.FileName), zap.Error(err))
			return course, fmt.Errorf("upload %s: %w", up.FileName, err)
		}

		video := &model.VideoMetadata{
			CourseID:   course.ID,
			Title:      up.Title,
			FilePath:   key,
			FileName:   up.FileName,
			URL:        url,
			Duration:   s.videoDuration(up),
			OrderIndex: i,
		}
		if err := s.VideoRepo.Create(ctx, video); err != nil {
			logger.Log.Error("Failed to save video metadata", zap.String("courseID", course.ID), zap.Error(err))
			return course, err
		}
	}

	return course, nil
}

func (s *CourseService) videoDuration(up VideoUpload) string {
	if up.Duration != "" || s.probe == nil {
		return up.Duration
	}
	info, err := s.probe(up.LocalPath)
	if err != nil {
		logger.Log.Debug("Video probe failed", zap.String("file", up.FileName), zap.Error(err))
		return ""
	}
	return util.FormatDuration(info.Duration)
}

func (s *CourseService) GetCourse(ctx context.Context, id string) (*CourseDetail, error) {
	course, err := s.CourseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrCourseNotFound)
	}
	videos, err := s.VideoRepo.FindByCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	return &CourseDetail{Course: *course, UploadedVideos: videos}, nil
}

func (s *CourseService) ListCourses(ctx context.Context) ([]model.Course, error) {
	return s.CourseRepo.FindAll(ctx)
}

// SearchCourses 标题、简介、教师名不区分大小写的子串匹配，空查询返回全部
func (s *CourseService) SearchCourses(ctx context.Context, query string) ([]model.Course, error) {
	courses, err := s.CourseRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return courses, nil
	}

	matched := make([]model.Course, 0)
	for _, c := range courses {
		if strings.Contains(strings.ToLower(c.Title), q) ||
			strings.Contains(strings.ToLower(c.Description), q) ||
			strings.Contains(strings.ToLower(c.TeacherName), q) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

// TeacherCourses 教师的课程和每门课的报名记录数，TotalStudents 为报名数之和
func (s *CourseService) TeacherCourses(ctx context.Context, teacherID string) (*TeacherOverview, error) {
	courses, err := s.CourseRepo.FindByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.EnrollmentRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, e := range enrollments {
		counts[e.CourseID]++
	}

	overview := &TeacherOverview{
		Courses:      make([]CourseSummary, 0, len(courses)),
		TotalCourses: len(courses),
	}
	for _, c := range courses {
		overview.Courses = append(overview.Courses, CourseSummary{Course: c, EnrollmentCount: counts[c.ID]})
		overview.TotalStudents += counts[c.ID]
	}
	return overview, nil
}
