package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"learntrack_backend/internal/config"
	"learntrack_backend/internal/middleware"
	"learntrack_backend/internal/model"
	"learntrack_backend/internal/repository"
	"learntrack_backend/internal/service"
	"learntrack_backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.JWT.Secret = "controller-test-secret"
	cfg.JWT.ExpireTime = time.Hour

	s := store.NewMemoryStore()
	users := repository.NewUserRepository(s)
	courses := repository.NewCourseRepository(s)
	assignments := repository.NewAssignmentRepository(s)
	enrollments := repository.NewEnrollmentRepository(s)
	submissions := repository.NewSubmissionRepository(s)
	videos := repository.NewVideoRepository(s)
	tasks := repository.NewDailyTaskRepository(s)

	courseSvc := service.NewCourseService(courses, enrollments, videos, &service.LocalStorageProvider{Root: t.TempDir()})
	enrollmentSvc := service.NewEnrollmentService(enrollments, courses, users)
	assignmentSvc := service.NewAssignmentService(assignments, courses, enrollments, submissions)
	submissionSvc := service.NewSubmissionService(submissions, assignments)

	auth := NewAuthController(service.NewAuthService(users, cfg))
	course := NewCourseController(courseSvc, enrollmentSvc, assignmentSvc)
	assignment := NewAssignmentController(assignmentSvc)
	submission := NewSubmissionController(submissionSvc)
	ranking := NewRankingController(service.NewRankingService(users, courses, enrollments, submissions))
	daily := NewDailyTaskController(service.NewDailyTaskService(tasks, enrollments, assignments, submissions))
	health := NewHealthController(s, store.TypeMemory)

	r := gin.New()
	r.POST("/api/register", auth.Register)
	r.POST("/api/login", auth.Login)
	r.GET("/api/health", health.HealthCheck)

	api := r.Group("/api", middleware.AuthMiddleware(cfg))
	api.GET("/me", auth.Me)
	api.GET("/courses", course.ListCourses)
	api.GET("/courses/:id", course.GetCourse)
	api.GET("/courses/:id/assignments", course.CourseAssignments)
	api.POST("/courses/:id/enroll", course.Enroll)
	api.GET("/courses/:id/grade", submission.CourseGrade)
	api.GET("/my/courses", course.MyCourses)
	api.GET("/my/assignments", assignment.MyAssignments)
	api.GET("/my/submissions", submission.MySubmissions)
	api.POST("/assignments/:id/submissions", submission.Submit)
	api.GET("/rank", ranking.Rank)
	api.GET("/badges", ranking.Badges)
	api.GET("/rankings", ranking.Rankings)
	api.GET("/daily-tasks", daily.Today)
	api.PATCH("/daily-tasks/:taskId", daily.Toggle)

	teacher := api.Group("/teacher", middleware.RoleMiddleware(model.Teacher))
	teacher.POST("/courses", course.CreateCourse)
	teacher.GET("/courses", course.TeacherCourses)
	teacher.GET("/courses/:id/students", course.CourseStudents)
	teacher.POST("/courses/:id/assignments", assignment.CreateAssignment)
	teacher.GET("/courses/:id/submissions", submission.CourseSubmissions)
	teacher.POST("/submissions/:id/verify", submission.Verify)
	teacher.POST("/submissions/:id/grade", submission.Grade)
	teacher.POST("/submissions/:id/publish", submission.Publish)

	return &testServer{t: t, router: r}
}

func (s *testServer) do(method, path, token string, body interface{}) (int, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func (s *testServer) decode(env envelope, v interface{}) {
	s.t.Helper()
	require.NoError(s.t, json.Unmarshal(env.Data, v))
}

// signup 注册并登录，返回 token
func (s *testServer) signup(name, email string, role model.UserRole) string {
	s.t.Helper()
	code, _ := s.do(http.MethodPost, "/api/register", "", gin.H{
		"name": name, "email": email, "password": "secret123", "role": role,
	})
	require.Equal(s.t, http.StatusCreated, code)

	code, env := s.do(http.MethodPost, "/api/login", "", gin.H{"email": email, "password": "secret123"})
	require.Equal(s.t, http.StatusOK, code)
	var res service.LoginResult
	s.decode(env, &res)
	require.NotEmpty(s.t, res.Token)
	return res.Token
}

func TestAuthEndpoints(t *testing.T) {
	s := newTestServer(t)
	token := s.signup("Ada", "ada@example.com", model.Student)

	t.Run("duplicate email conflicts", func(t *testing.T) {
		code, _ := s.do(http.MethodPost, "/api/register", "", gin.H{
			"name": "Other", "email": "ADA@example.com", "password": "secret123", "role": model.Student,
		})
		assert.Equal(t, http.StatusConflict, code)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		code, _ := s.do(http.MethodPost, "/api/register", "", gin.H{
			"name": "Eve", "email": "eve@example.com", "password": "secret123", "role": "admin",
		})
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("wrong password", func(t *testing.T) {
		code, _ := s.do(http.MethodPost, "/api/login", "", gin.H{"email": "ada@example.com", "password": "nope-nope"})
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("me hides password", func(t *testing.T) {
		code, env := s.do(http.MethodGet, "/api/me", token, nil)
		require.Equal(t, http.StatusOK, code)
		assert.Contains(t, string(env.Data), `"ada@example.com"`)
		assert.NotContains(t, string(env.Data), "secret123")
		assert.NotContains(t, string(env.Data), "password")
	})

	t.Run("missing token", func(t *testing.T) {
		code, _ := s.do(http.MethodGet, "/api/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("student cannot reach teacher routes", func(t *testing.T) {
		code, _ := s.do(http.MethodPost, "/api/teacher/courses", token, gin.H{"title": "Sneaky"})
		assert.Equal(t, http.StatusForbidden, code)
	})
}

func TestSubmissionWorkflow(t *testing.T) {
	s := newTestServer(t)
	teacherToken := s.signup("Dr. T", "t@example.com", model.Teacher)
	studentToken := s.signup("Sam", "sam@example.com", model.Student)

	code, env := s.do(http.MethodPost, "/api/teacher/courses", teacherToken, gin.H{"title": "Go Basics", "description": "intro"})
	require.Equal(t, http.StatusCreated, code)
	var course model.Course
	s.decode(env, &course)
	assert.Equal(t, "Dr. T", course.TeacherName)

	code, env = s.do(http.MethodPost, "/api/teacher/courses/"+course.ID+"/assignments", teacherToken, gin.H{
		"title": "Hello", "dueDate": time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, code)
	var assignment model.Assignment
	s.decode(env, &assignment)

	var detail service.CourseDetail
	code, env = s.do(http.MethodGet, "/api/courses/"+course.ID, studentToken, nil)
	require.Equal(t, http.StatusOK, code)
	s.decode(env, &detail)
	assert.False(t, detail.Enrolled)

	code, _ = s.do(http.MethodPost, "/api/courses/"+course.ID+"/enroll", studentToken, nil)
	require.Equal(t, http.StatusCreated, code)

	code, env = s.do(http.MethodGet, "/api/courses/"+course.ID, studentToken, nil)
	require.Equal(t, http.StatusOK, code)
	s.decode(env, &detail)
	assert.True(t, detail.Enrolled)
	assert.Equal(t, "Go Basics", detail.Title)

	code, env = s.do(http.MethodGet, "/api/my/courses", studentToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), course.ID)

	code, _ = s.do(http.MethodPost, "/api/assignments/"+assignment.ID+"/submissions", studentToken, gin.H{"content": "   "})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(http.MethodPost, "/api/assignments/"+assignment.ID+"/submissions", studentToken, gin.H{"content": "fmt.Println"})
	require.Equal(t, http.StatusCreated, code)
	var sub model.Submission
	s.decode(env, &sub)
	assert.Equal(t, "Sam", sub.StudentName)
	assert.Equal(t, model.StateSubmitted, sub.State())

	// 课程总评在发布前为空
	code, env = s.do(http.MethodGet, "/api/courses/"+course.ID+"/grade", studentToken, nil)
	require.Equal(t, http.StatusOK, code)
	var overall OverallGrade
	s.decode(env, &overall)
	assert.Nil(t, overall.Grade)

	code, _ = s.do(http.MethodPost, "/api/teacher/submissions/"+sub.ID+"/publish", teacherToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(http.MethodPost, "/api/teacher/submissions/"+sub.ID+"/grade", teacherToken, gin.H{"grade": 101})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(http.MethodPost, "/api/teacher/submissions/"+sub.ID+"/grade", teacherToken, gin.H{"grade": 88, "feedback": "nice"})
	require.Equal(t, http.StatusOK, code)
	s.decode(env, &sub)
	assert.True(t, sub.Verified)
	assert.False(t, sub.Published)

	code, env = s.do(http.MethodPost, "/api/teacher/submissions/"+sub.ID+"/publish", teacherToken, nil)
	require.Equal(t, http.StatusOK, code)
	s.decode(env, &sub)
	assert.Equal(t, model.StatePublished, sub.State())

	code, env = s.do(http.MethodGet, "/api/courses/"+course.ID+"/grade", studentToken, nil)
	require.Equal(t, http.StatusOK, code)
	s.decode(env, &overall)
	require.NotNil(t, overall.Grade)
	assert.Equal(t, 88.0, *overall.Grade)

	code, env = s.do(http.MethodGet, "/api/teacher/courses/"+course.ID+"/submissions", teacherToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), sub.ID)

	code, env = s.do(http.MethodGet, "/api/rank", studentToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"rank":"platinum"}`, string(env.Data))

	code, env = s.do(http.MethodGet, "/api/badges", studentToken, nil)
	require.Equal(t, http.StatusOK, code)
	var badges []model.Badge
	s.decode(env, &badges)
	require.Len(t, badges, 3)
	assert.Equal(t, model.BadgeRegistration, badges[0].ID)
}

func TestNotFoundMapping(t *testing.T) {
	s := newTestServer(t)
	teacherToken := s.signup("Dr. T", "t@example.com", model.Teacher)
	studentToken := s.signup("Sam", "sam@example.com", model.Student)

	code, _ := s.do(http.MethodPost, "/api/teacher/submissions/missing/verify", teacherToken, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(http.MethodGet, "/api/courses/missing", studentToken, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(http.MethodPatch, "/api/daily-tasks/no-such-task", studentToken, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)
	code, env := s.do(http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), store.TypeMemory)
}
