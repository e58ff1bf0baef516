package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httpapi "github.com/spec-kit/plot-service/internal/api/http"
	"github.com/spec-kit/plot-service/internal/api/http/handlers"
	"github.com/spec-kit/plot-service/internal/auth"
	"github.com/spec-kit/plot-service/internal/config"
	"github.com/spec-kit/plot-service/internal/events"
	"github.com/spec-kit/plot-service/internal/observability"
	"github.com/spec-kit/plot-service/internal/persistence"
	"github.com/spec-kit/plot-service/internal/repository"
	"github.com/spec-kit/plot-service/internal/service"
	"github.com/spec-kit/plot-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	postgres, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("connect postgres", zap.Error(err))
	}
	defer postgres.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, postgres.PoolHandle(), logger); err != nil {
			logger.Fatal("run migrations", zap.Error(err))
		}
	}

	redisConn := persistence.NewRedis(cfg.Redis, logger)
	defer redisConn.Close()

	var strategy auth.TokenStrategy
	switch cfg.Auth.TokenMode {
	case config.TokenModeOpaque:
		strategy = auth.NewOpaqueManager(auth.NewRedisClaimsStore(redisConn.Client), cfg.Auth.TokenTTL(), nil)
	default:
		strategy = auth.NewJWTManager(cfg.Auth.SigningKey, cfg.Auth.TokenTTL(), nil)
	}
	logger.Info("token strategy selected", zap.String("mode", cfg.Auth.TokenMode))

	plotRepo := repository.NewPlotRepository(postgres.PoolHandle())
	zoneRepo := repository.NewZoneRepository(postgres.PoolHandle())
	userRepo := repository.NewUserRepository(postgres.PoolHandle())

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(cfg.Auth, strategy)
	plotService := service.NewPlotService(plotRepo, dispatcher, logger)
	zoneService := service.NewZoneService(zoneRepo, dispatcher, logger)
	userService := service.NewUserService(cfg.Auth, userRepo, dispatcher, logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Webhook)
	worker.StartNotificationWorker(notificationService)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})

	httpapi.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httpapi.RegisterRoutes(app, httpapi.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, postgres, redisConn),
		Auth:           handlers.NewAuthHandler(authService),
		Plots:          handlers.NewPlotsHandler(plotService),
		Zones:          handlers.NewZonesHandler(zoneService),
		Users:          handlers.NewUsersHandler(userService),
		AuthMiddleware: auth.NewMiddleware(strategy, logger),
	})

	go func() {
		logger.Info("server starting", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
