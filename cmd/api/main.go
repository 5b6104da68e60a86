package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-agency-backend/config"
	_ "go-agency-backend/docs" // swagger doc registration
	v1 "go-agency-backend/internal/delivery/http/v1"
	"go-agency-backend/internal/usecase"
	"go-agency-backend/pkg/email"
	"go-agency-backend/pkg/logger"
	"go-agency-backend/pkg/ratelimit"
	"go-agency-backend/pkg/redis"

	"github.com/go-playground/validator/v10"
)

// @title           Agency Contact Backend
// @version         1.0
// @description     Contact form backend for the studio marketing site.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Log.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting agency contact backend", "port", cfg.Port)

	// 3. Setup Email Service — the missing-API-key case is a startup fault,
	// never a per-request error.
	emailService, err := email.NewService(cfg.ResendAPIKey, cfg.ContactEmailFrom, cfg.ContactEmailTo)
	if err != nil {
		logger.Log.Error("Failed to configure email service", "error", err)
		os.Exit(1)
	}

	// 4. Setup optional Redis backing for rate-limit counters
	redisClient, err := redis.Connect(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
	if err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting stays in-memory", "error", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	// 5. Setup Rate Limiter and its background sweep
	limiter := ratelimit.New(ratelimit.Config{
		Max:           cfg.RateLimitMaxRequests,
		Window:        time.Duration(cfg.RateLimitWindowSeconds) * time.Second,
		SweepInterval: time.Duration(cfg.RateLimitSweepSeconds) * time.Second,
		Redis:         redisClient,
	})
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	limiter.StartSweeper(sweepCtx)

	// 6. Setup UseCases
	validate := validator.New()
	contactUC := usecase.NewContactUsecase(emailService, limiter)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		Validate:  validate,
		Config:    cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
