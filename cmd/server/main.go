package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	config "github.com/maheshrc27/marketing-planner/configs"
	"github.com/maheshrc27/marketing-planner/internal/api"
	"github.com/maheshrc27/marketing-planner/internal/api/handlers"
	"github.com/maheshrc27/marketing-planner/internal/api/middleware"
	"github.com/maheshrc27/marketing-planner/internal/database"
	job "github.com/maheshrc27/marketing-planner/internal/jobs"
	"github.com/maheshrc27/marketing-planner/internal/llm"
	"github.com/maheshrc27/marketing-planner/internal/planner"
	"github.com/maheshrc27/marketing-planner/internal/queue"
	"github.com/maheshrc27/marketing-planner/internal/repository"
	"github.com/maheshrc27/marketing-planner/internal/service"
	"github.com/maheshrc27/marketing-planner/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync()

	db, err := database.Open(cfg.PostgresURI)
	if err != nil {
		zl.Fatal("database is unreachable", zap.Error(err))
	}

	if cfg.MigrationsEnabled {
		if err := database.RunMigrations(db); err != nil {
			zl.Fatal("migrations failed", zap.Error(err))
		}
	}

	ctx := context.Background()

	gateway, err := llm.NewGemini(ctx, llm.GeminiConfig{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		BaseURL: cfg.Gemini.BaseURL,
	})
	if err != nil {
		zl.Fatal("unable to create llm gateway", zap.Error(err))
	}
	p := planner.New(gateway, planner.WithRetryDelay(cfg.GenerationRetryDelay), planner.WithLogger(zl))

	r2Service, err := service.NewR2Service(ctx, cfg.R2)
	if err != nil {
		zl.Fatal("unable to create r2 client", zap.Error(err))
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()
	enqueuer := queue.NewEnqueuer(client)

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			zl.Warn("unhandled request error", zap.String("path", c.Path()), zap.Error(err))
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, " + handlers.ProjectHeader,
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := db.PingContext(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "database unavailable"})
		}
		return c.SendString("ok")
	})

	userRepo := repository.NewUserRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	apiKeyRepo := repository.NewApiKeyRepository(db)
	strategyRepo := repository.NewStrategyRepository(db)
	outlineRepo := repository.NewContentOutlineRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)
	postRepo := repository.NewCalendarPostRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	mediaAssetRepo := repository.NewMediaAssetRepository(db)
	postMediaRepo := repository.NewPostMediaRepository(db)

	authService := service.NewAuthService(*cfg, userRepo)
	userService := service.NewUserService(userRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	apiKeyService := service.NewApiKeyService(apiKeyRepo)
	strategyService := service.NewStrategyService(p, strategyRepo, outlineRepo, calendarRepo, postRepo, auditRepo)
	outlineService := service.NewOutlineService(p, strategyRepo, outlineRepo, auditRepo)
	calendarService := service.NewCalendarService(p, strategyRepo, outlineRepo, calendarRepo, postRepo, settingsRepo, auditRepo, enqueuer)
	mediaService := service.NewMediaService(postRepo, calendarRepo, mediaAssetRepo, postMediaRepo, r2Service)
	dashboardService := service.NewDashboardService(strategyRepo, calendarRepo, auditRepo)

	authMiddleware := middleware.NewAuthMiddleware(*cfg, apiKeyService)

	api.Register(app, api.Handlers{
		Auth:      handlers.NewAuthHandler(*cfg, authService),
		User:      handlers.NewUserHandler(userService),
		Settings:  handlers.NewSettingsHandler(settingsService),
		ApiKeys:   handlers.NewApiKeyHandler(apiKeyService),
		Strategy:  handlers.NewStrategyHandler(strategyService),
		Outline:   handlers.NewOutlineHandler(outlineService),
		Calendar:  handlers.NewCalendarHandler(calendarService, mediaService),
		Dashboard: handlers.NewDashboardHandler(dashboardService),
	}, authMiddleware.AuthMiddleware())

	// cron jobs
	statsJob := job.NewStatsJob(calendarRepo, calendarService)

	c := cron.New()
	if err := c.AddFunc(cfg.StatsSchedule, statsJob.Run); err != nil {
		zl.Fatal("invalid stats schedule", zap.String("schedule", cfg.StatsSchedule), zap.Error(err))
	}
	c.Start()

	//queue
	queueW := queue.NewQueue(postRepo, calendarRepo, auditRepo)

	server := asynq.NewServer(redisConn, asynq.Config{
		Concurrency: 10,
	})
	go func() {
		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypePostDue, queueW.HandlePostDueTask)

		zl.Info("starting the asynq server")
		if err := server.Run(mux); err != nil {
			zl.Fatal("could not start asynq server", zap.Error(err))
		}
	}()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			zl.Fatal("failed to start server", zap.Error(err))
		}
	}()
	zl.Info("server is running", zap.String("port", cfg.Port))

	gracefulShutdown(zl, app, server, c, db)
}

func closeDB(zl *zap.Logger, db *sql.DB) {
	if err := db.Close(); err != nil {
		zl.Error("failed to close database", zap.Error(err))
		return
	}
	zl.Info("database connection closed")
}

func gracefulShutdown(zl *zap.Logger, app *fiber.App, server *asynq.Server, c *cron.Cron, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	zl.Info("shutting down server")

	c.Stop()
	server.Shutdown()

	if err := app.Shutdown(); err != nil {
		zl.Error("failed to shut down server", zap.Error(err))
	}

	closeDB(zl, db)
	zl.Info("server shutdown complete")
}
