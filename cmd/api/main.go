package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"

	"rentapp_backend/internal/controller"
	"rentapp_backend/internal/middleware"
	"rentapp_backend/internal/model"
	"rentapp_backend/internal/repository"
	"rentapp_backend/internal/service"
	"rentapp_backend/pkg/config"
	"rentapp_backend/pkg/database"
	"rentapp_backend/pkg/email"
	"rentapp_backend/pkg/logger"
	"rentapp_backend/pkg/seed"
	"rentapp_backend/pkg/utils/jwt"
	"rentapp_backend/pkg/utils/storage"
)

func setupApp(cfg *config.Config, h *controller.Handler, auth *service.AuthService) *fiber.App {
	app := fiber.New(controller.FiberConfig())

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	prom := fiberprometheus.New("rentapp")
	prom.RegisterAt(app, "/metrics")
	app.Use(prom.Middleware)

	app.Use(middleware.Authenticate(auth))

	// register and login are the brute-force targets
	authLimiter := limiter.New(limiter.Config{
		Max:        20,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(model.ErrorResponse{
				Error: "Too many requests, please try again later.",
				Code:  model.CodeRateLimited,
			})
		},
	})

	controller.RegisterRoutes(app, h, authLimiter)
	return app
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Could not load configuration: %v", err)
	}

	appLogger := logger.New(cfg.Env, cfg.LogLevel)
	slog.SetDefault(appLogger)

	db, err := database.Connect(cfg.Database, appLogger)
	if err != nil {
		appLogger.Error("database connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := database.MigrateDatabase(db, appLogger, model.AllModels()...); err != nil {
		appLogger.Error("migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		if _, err := seed.SeedAdmin(ctx, db, appLogger, cfg.Admin.Username, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			appLogger.Error("admin seed failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	repos := repository.New(db)
	authService := service.NewAuthService(repos.Users, jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TTL))

	deps := controller.Deps{
		Repos:       repos,
		Auth:        authService,
		Logger:      appLogger,
		HealthCheck: pingDatabase(db),
	}

	objects, err := storage.New(ctx, cfg.Storage)
	switch {
	case err == nil:
		deps.Storage = objects
	case errors.Is(err, storage.ErrNotConfigured):
		appLogger.Warn("object storage not configured, photo uploads disabled")
	default:
		appLogger.Error("object storage init failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	mailer, err := email.NewEmailService(cfg.Email.ResendAPIKey, cfg.Email.From, appLogger)
	switch {
	case err == nil:
		deps.Mailer = mailer
	case errors.Is(err, email.ErrMissingAPIKey):
		appLogger.Warn("RESEND_API_KEY not set, inquiry notifications disabled")
	default:
		appLogger.Error("email service init failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	app := setupApp(cfg, controller.NewHandler(deps), authService)

	go func() {
		appLogger.Info("server starting", slog.String("port", cfg.Server.Port), slog.String("env", cfg.Env))
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			appLogger.Error("server stopped", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("server shutdown failed", slog.String("error", err.Error()))
	}
	if err := database.Close(db); err != nil {
		appLogger.Error("database close failed", slog.String("error", err.Error()))
	}
}

func pingDatabase(db *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
