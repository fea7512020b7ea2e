package app

import (
	"learntrack_backend/docs"
	"learntrack_backend/internal/config"
	"learntrack_backend/internal/middleware"
	"learntrack_backend/internal/model"
	"learntrack_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要登录的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)

		teacher := authGroup.Group("/teacher")
		teacher.Use(middleware.RoleMiddleware(model.Teacher))
		a.registerTeacherRoutes(teacher, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/health", c.health.HealthCheck)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/me", c.auth.Me)

	// 课程
	rg.GET("/courses", c.course.ListCourses)
	rg.GET("/courses/:id", c.course.GetCourse)
	rg.GET("/courses/:id/assignments", c.course.CourseAssignments)
	rg.POST("/courses/:id/enroll", c.course.Enroll)
	rg.GET("/courses/:id/grade", c.submission.CourseGrade)

	// 我的
	rg.GET("/my/courses", c.course.MyCourses)
	rg.GET("/my/assignments", c.assignment.MyAssignments)
	rg.GET("/my/submissions", c.submission.MySubmissions)

	rg.POST("/assignments/:id/submissions", c.submission.Submit)

	// 排名与徽章
	rg.GET("/rank", c.ranking.Rank)
	rg.GET("/badges", c.ranking.Badges)
	rg.GET("/profile", c.ranking.Profile)
	rg.GET("/rankings", c.ranking.Rankings)

	// 每日任务
	rg.GET("/daily-tasks", c.dailyTask.Today)
	rg.PATCH("/daily-tasks/:taskId", c.dailyTask.Toggle)
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/courses", c.course.CreateCourse)
	rg.POST("/courses/upload", c.course.UploadCourse)
	rg.GET("/courses", c.course.TeacherCourses)
	rg.GET("/courses/:id/students", c.course.CourseStudents)
	rg.POST("/courses/:id/assignments", c.assignment.CreateAssignment)
	rg.GET("/courses/:id/submissions", c.submission.CourseSubmissions)

	rg.POST("/submissions/:id/verify", c.submission.Verify)
	rg.POST("/submissions/:id/grade", c.submission.Grade)
	rg.POST("/submissions/:id/publish", c.submission.Publish)
}
