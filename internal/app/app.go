package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learntrack_backend/internal/config"
	"learntrack_backend/internal/controller"
	"learntrack_backend/internal/repository"
	"learntrack_backend/internal/service"
	"learntrack_backend/internal/store"
	"learntrack_backend/pkg/configwatcher"
	"learntrack_backend/pkg/database"
	"learntrack_backend/pkg/logger"
	"learntrack_backend/pkg/monitoring"
	"learntrack_backend/pkg/security"
	"learntrack_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	Store  store.RecordStore

	services        *services
	origins         *security.OriginList
	closers         []func() error
	tracerProvider  *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)

	ctx    context.Context
	cancel context.CancelFunc
}

type repositories struct {
	user       *repository.UserRepository
	course     *repository.CourseRepository
	assignment *repository.AssignmentRepository
	enrollment *repository.EnrollmentRepository
	submission *repository.SubmissionRepository
	video      *repository.VideoRepository
	dailyTask  *repository.DailyTaskRepository
}

type services struct {
	auth       *service.AuthService
	ranking    *service.RankingService
	enrollment *service.EnrollmentService
	submission *service.SubmissionService
	course     *service.CourseService
	assignment *service.AssignmentService
	dailyTask  *service.DailyTaskService
	storage    *service.StorageService
	seed       *service.SeedService
}

type controllers struct {
	auth       *controller.AuthController
	course     *controller.CourseController
	assignment *controller.AssignmentController
	submission *controller.SubmissionController
	ranking    *controller.RankingController
	dailyTask  *controller.DailyTaskController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// openStore 按 store.type 选择记录存储后端
func (a *App) openStore(cfg *config.Config) (store.RecordStore, error) {
	switch cfg.Store.Type {
	case store.TypeMemory:
		return store.NewMemoryStore(), nil
	case store.TypeBolt:
		db, err := database.InitBolt(cfg.Store.BoltPath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		return store.NewBoltStore(db)
	case store.TypeRedis:
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, rdb.Close)
		return store.NewRedisStore(rdb, cfg.Store.RedisPrefix), nil
	case store.TypeMySQL:
		db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
		if err != nil {
			return nil, err
		}
		if sqlDB, err := db.DB(); err == nil {
			a.closers = append(a.closers, sqlDB.Close)
		}
		return store.NewGormStore(db)
	default:
		return nil, fmt.Errorf("%w: %q", store.ErrUnknownStoreType, cfg.Store.Type)
	}
}

func (a *App) initRepositories(s store.RecordStore) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(s),
		course:     repository.NewCourseRepository(s),
		assignment: repository.NewAssignmentRepository(s),
		enrollment: repository.NewEnrollmentRepository(s),
		submission: repository.NewSubmissionRepository(s),
		video:      repository.NewVideoRepository(s),
		dailyTask:  repository.NewDailyTaskRepository(s),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	storage := service.NewStorageService(a.ctx, cfg)
	return &services{
		auth:       service.NewAuthService(repos.user, cfg),
		ranking:    service.NewRankingService(repos.user, repos.course, repos.enrollment, repos.submission),
		enrollment: service.NewEnrollmentService(repos.enrollment, repos.course, repos.user),
		submission: service.NewSubmissionService(repos.submission, repos.assignment),
		course:     service.NewCourseService(repos.course, repos.enrollment, repos.video, storage),
		assignment: service.NewAssignmentService(repos.assignment, repos.course, repos.enrollment, repos.submission),
		dailyTask:  service.NewDailyTaskService(repos.dailyTask, repos.enrollment, repos.assignment, repos.submission),
		storage:    storage,
		seed:       service.NewSeedService(repos.course, repos.assignment),
	}
}

func (a *App) initControllers(s *services, cfg *config.Config) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		course:     controller.NewCourseController(s.course, s.enrollment, s.assignment),
		assignment: controller.NewAssignmentController(s.assignment),
		submission: controller.NewSubmissionController(s.submission),
		ranking:    controller.NewRankingController(s.ranking),
		dailyTask:  controller.NewDailyTaskController(s.dailyTask),
		health:     controller.NewHealthController(a.Store, cfg.Store.Type),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	a.origins = security.NewOriginList(cfg.CORS.AllowedOrigins)
	router.Use(security.CORS(a.origins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(a.ctx, cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// NewApp 初始化日志、记录存储、服务与路由。存储不可用时返回错误。
func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{Config: cfg, ctx: ctx, cancel: cancel}

	s, err := app.openStore(cfg)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("open record store: %w", err)
	}
	app.Store = s
	logger.Log.Info("Record store ready", zap.String("type", cfg.Store.Type))

	repos := app.initRepositories(s)
	app.services = app.initServices(repos, cfg)

	if cfg.Seed.SampleCourses || cfg.SeedOnly {
		if _, err := app.services.seed.SeedSampleCourses(ctx); err != nil {
			logger.Log.Error("Failed to seed sample courses", zap.Error(err))
		}
	}
	if cfg.SeedOnly {
		return app, nil
	}

	ctrls := app.initControllers(app.services, cfg)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), ginZapLogger())
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("learntrack-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			app.tracerProvider = tp
		}
	}

	app.registerRoutes(router, ctrls, cfg)

	if root, ok := app.services.storage.LocalRoot(); ok {
		router.Static("/uploads", root)
	}

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		app.origins.Set(newCfg.CORS.AllowedOrigins)
	})

	return app, nil
}

// ginZapLogger 用 zap 记录访问日志
func ginZapLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		)
	}
}

// WatchConfig 配置文件变化时依次调用已注册的回调
func (a *App) WatchConfig(configDir string) {
	go func() {
		err := configwatcher.WatchConfig(a.ctx, configDir, func(newCfg *config.Config) {
			for _, cb := range a.configCallbacks {
				cb(newCfg)
			}
		})
		if err != nil {
			logger.Log.Warn("Config watcher stopped", zap.Error(err))
		}
	}()
}

// Close 释放存储连接与追踪
func (a *App) Close() {
	a.cancel()
	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(context.Background()); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Log.Error("Failed to close resource", zap.Error(err))
		}
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}
	a.Close()

	logger.Log.Info("Server exiting")
}
