package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/profile-registry/internal/api/http"
	"github.com/spec-kit/profile-registry/internal/api/http/handlers"
	"github.com/spec-kit/profile-registry/internal/blob"
	"github.com/spec-kit/profile-registry/internal/config"
	"github.com/spec-kit/profile-registry/internal/countries"
	"github.com/spec-kit/profile-registry/internal/events"
	"github.com/spec-kit/profile-registry/internal/observability"
	"github.com/spec-kit/profile-registry/internal/persistence"
	"github.com/spec-kit/profile-registry/internal/repository"
	"github.com/spec-kit/profile-registry/internal/service"
	"github.com/spec-kit/profile-registry/internal/worker"
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

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var uploader blob.Uploader
	if cfg.Blob.Bucket != "" {
		s3Uploader, err := blob.NewS3Uploader(ctx, cfg.Blob)
		if err != nil {
			logger.Fatal("failed to init blob storage", zap.Error(err))
		}
		uploader = s3Uploader
	} else {
		logger.Warn("BLOB_BUCKET not provided; picture uploads disabled")
	}

	profileRepo := repository.NewProfileRepository(redis.Client)
	countriesClient := countries.NewClient(cfg.Countries, redis.Client, logger)

	dispatcher := events.NewInMemoryDispatcher()
	profileService := service.NewProfileService(service.ProfileDependencies{
		ProfileRepo: profileRepo,
		Uploader:    uploader,
		Dispatcher:  dispatcher,
		Logger:      logger,
		Upload:      cfg.Upload,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, redis)
	profilesHandler := handlers.NewProfilesHandler(profileService)
	countriesHandler := handlers.NewCountriesHandler(countriesClient, logger)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    healthHandler,
		Profiles:  profilesHandler,
		Countries: countriesHandler,
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
