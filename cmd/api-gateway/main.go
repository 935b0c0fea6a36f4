package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/openclass/planner-api/api/swagger"
	"github.com/openclass/planner-api/internal/handler"
	"github.com/openclass/planner-api/internal/middleware"
	"github.com/openclass/planner-api/internal/repository"
	"github.com/openclass/planner-api/internal/service"
	"github.com/openclass/planner-api/pkg/cache"
	"github.com/openclass/planner-api/pkg/config"
	"github.com/openclass/planner-api/pkg/database"
	"github.com/openclass/planner-api/pkg/export"
	"github.com/openclass/planner-api/pkg/logger"
	corsmiddleware "github.com/openclass/planner-api/pkg/middleware/cors"
	reqidmiddleware "github.com/openclass/planner-api/pkg/middleware/requestid"
)

// @title Course Planner API
// @version 0.1.0
// @description Term planning, conflict detection, and calendar projection
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db.DB, logr); err != nil {
		logr.Sugar().Fatalw("failed to run migrations", "error", err)
	}

	// Redis is optional. A nil client degrades the cache repository to
	// miss-only behavior instead of blocking startup.
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	termRepo := repository.NewTermRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	eventRepo := repository.NewPlanEventRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()
	termSvc := service.NewTermService(termRepo, nil, logr)
	conflictSvc := service.NewConflictService(eventRepo, sectionRepo, courseRepo, cacheRepo, cfg.Planner.CoreqCacheTTL, metricsSvc, logr)
	planSvc := service.NewPlanService(eventRepo, sectionRepo, courseRepo, termRepo, cfg.Planner.MaxUnavailableBlocks, nil, logr)
	sectionSvc := service.NewSectionService(sectionRepo, conflictSvc, logr)
	courseSvc := service.NewCourseService(courseRepo, cacheRepo, logr)
	calendarSvc := service.NewCalendarService(termRepo, conflictSvc, logr)
	exportSvc := service.NewExportService(termRepo, conflictSvc, logr,
		export.NewCSVExporter(), export.NewPDFExporter(), export.NewXLSXExporter())

	termHandler := handler.NewTermHandler(termSvc)
	sectionHandler := handler.NewSectionHandler(sectionSvc, conflictSvc)
	planHandler := handler.NewPlanHandler(planSvc)
	conflictHandler := handler.NewConflictHandler(conflictSvc)
	calendarHandler := handler.NewCalendarHandler(calendarSvc)
	courseHandler := handler.NewCourseHandler(courseSvc)
	exportHandler := handler.NewExportHandler(exportSvc, cfg.Exports.Enabled)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	terms := api.Group("/terms")
	terms.GET("", termHandler.List)
	terms.POST("/resolve", termHandler.Resolve)
	terms.GET("/code", termHandler.Code)
	terms.GET("/decode/:code", termHandler.DecodeCode)
	terms.GET("/:id", termHandler.Get)

	terms.GET("/:id/plan", planHandler.ListPlanned)
	terms.POST("/:id/plan/courses", planHandler.AddCourse)
	terms.DELETE("/:id/plan/courses/:crn", planHandler.RemoveCourse)
	terms.PUT("/:id/plan/courses/:crn/like", planHandler.SetLiked)
	terms.POST("/:id/blocks", planHandler.CreateBlock)
	terms.PUT("/:id/blocks/:eventId", planHandler.UpdateBlock)
	terms.DELETE("/:id/blocks/:eventId", planHandler.DeleteBlock)

	terms.GET("/:id/conflicts", conflictHandler.Report)
	terms.GET("/:id/conflicts/summary", conflictHandler.Summary)
	terms.GET("/:id/calendar", calendarHandler.Events)
	terms.GET("/:id/calendar.ics", calendarHandler.ICS)
	terms.GET("/:id/export", exportHandler.Schedule)

	sections := api.Group("/sections")
	sections.GET("", sectionHandler.List)
	sections.GET("/:crn", sectionHandler.Get)
	sections.GET("/:crn/conflicts", sectionHandler.Classify)

	courses := api.Group("/courses")
	courses.GET("/:id", courseHandler.Get)
	courses.GET("/:id/corequisites", courseHandler.Corequisites)
	courses.PUT("/:id/completed", courseHandler.MarkCompleted)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
