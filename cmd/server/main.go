// Package main starts the form builder HTTP service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/form-builder-service/internal/avatar"
	"github.com/SAP-F-2025/form-builder-service/internal/cache"
	"github.com/SAP-F-2025/form-builder-service/internal/config"
	"github.com/SAP-F-2025/form-builder-service/internal/handlers"
	"github.com/SAP-F-2025/form-builder-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/form-builder-service/internal/services"
	"github.com/SAP-F-2025/form-builder-service/internal/storage"
	"github.com/SAP-F-2025/form-builder-service/internal/utils"
	"github.com/SAP-F-2025/form-builder-service/internal/validator"
	"github.com/SAP-F-2025/form-builder-service/pkg"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	envFile := flag.String("env-file", ".env", "optional dotenv file loaded before the environment")
	port := flag.String("port", "", "HTTP port, overrides PORT")
	flag.Parse()

	cfg, err := config.LoadConfig(*envFile)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *port != "" {
		cfg.Port = *port
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := utils.NewLogger(cfg.Log)
	slogger := utils.ToSlogLogger(logger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	redisClient, err := pkg.NewRedisClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		return fmt.Errorf("create event publisher: %w", err)
	}
	defer publisher.Close()

	banners, err := storage.NewLocalBannerStore(cfg.BannerDir)
	if err != nil {
		return err
	}

	formService := services.NewFormService(
		postgres.NewFormPostgreSQL(db),
		banners,
		publisher,
		cache.NewRedisCache(redisClient, logger),
		slogger,
		validator.New(),
		services.FormServiceConfig{
			MaxBannerBytes: cfg.MaxBannerBytes,
			CacheTTL:       cfg.FormCacheTTL,
		},
	)
	avatars := avatar.NewService(cache.NewKVStore(redisClient, "form-builder:"), avatar.WithBaseURL(cfg.AvatarBaseURL))

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))
	router.Use(utils.ContextLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"POST", "GET", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", handlers.UserIDHeader},
		ExposeHeaders:    []string{"Content-Type", "Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handlers.NewHandlerManager(formService, avatars, handlers.RouterConfig{
		SubmitPath:     cfg.SubmitPath,
		MaxBannerBytes: cfg.MaxBannerBytes,
	}, logger).SetupRoutes(router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting form builder service", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down form builder service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
