package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/zentharo/request-service/internal/api/http"
	"github.com/zentharo/request-service/internal/api/http/handlers"
	"github.com/zentharo/request-service/internal/auth"
	"github.com/zentharo/request-service/internal/config"
	"github.com/zentharo/request-service/internal/events"
	"github.com/zentharo/request-service/internal/observability"
	"github.com/zentharo/request-service/internal/persistence"
	"github.com/zentharo/request-service/internal/repository"
	"github.com/zentharo/request-service/internal/service"
	"github.com/zentharo/request-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	requestRepo := repository.NewRequestRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(cfg.Auth, userRepo)
	requestService := service.NewRequestService(service.RequestDependencies{
		RequestRepo: requestRepo,
		Dispatcher:  dispatcher,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)

	worker.StartNotificationWorker(notificationService)
	worker.StartStatsWorker(dispatcher, requestService, metrics, logger)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg)
	requestsHandler := handlers.NewRequestsHandler(requestService)
	usersHandler := handlers.NewUsersHandler(authService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Requests:       requestsHandler,
		Users:          usersHandler,
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
