package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/holiday-promo/api/config"
	"github.com/holiday-promo/api/internal/cleanup"
	"github.com/holiday-promo/api/internal/email"
	"github.com/holiday-promo/api/internal/health"
	"github.com/holiday-promo/api/internal/infrastructure/postgres"
	ctxlog "github.com/holiday-promo/api/internal/log"
	"github.com/holiday-promo/api/internal/metrics"
	httptransport "github.com/holiday-promo/api/internal/transport/http"
	"github.com/holiday-promo/api/internal/transport/http/handler"
	"github.com/holiday-promo/api/internal/turnstile"
	"github.com/holiday-promo/api/internal/usecase"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	subscriptionRepo := postgres.NewSubscriptionRepository(pool)
	healthCheckRepo := postgres.NewHealthCheckRepository(pool)

	verifier := turnstile.NewVerifier("", cfg.TurnstileSecretKey, cfg.TurnstileAllowTestKeys)
	emailSender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	// Auth
	authUsecase := usecase.NewAuthUsecase(userRepo, emailSender, []byte(cfg.JWTSecret), cfg.SiteBaseURL)
	authHandler := handler.NewAuthHandler(authUsecase, verifier, logger)

	// Subscriptions
	subscriptionUsecase := usecase.NewSubscriptionUsecase(subscriptionRepo)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionUsecase, verifier, logger)

	// Users
	userUsecase := usecase.NewUserUsecase(userRepo)
	userHandler := handler.NewUserHandler(userUsecase, logger)

	// Facebook data deletion
	deletionUsecase := usecase.NewDeletionUsecase(accountRepo, userRepo, cfg.FacebookAppSecret, cfg.FacebookDeletionStatusURL)
	facebookHandler := handler.NewFacebookHandler(deletionUsecase, logger, cfg.Env != "production")

	healthCheckHandler := handler.NewHealthCheckHandler(healthCheckRepo, logger)

	metrics.Register()
	checker := health.NewChecker(logger, prometheus.DefaultRegisterer).Add("postgres", pool)

	cleaner, err := cleanup.NewCleaner(userRepo, healthCheckRepo, logger,
		cfg.CleanupSchedule, time.Duration(cfg.HealthLogRetentionH)*time.Hour)
	if err != nil {
		stop()
		log.Fatalf("cleanup: %v", err)
	}
	go cleaner.Start(ctx)

	srv := http.Server{
		Addr: ":" + cfg.Port,
		Handler: httptransport.NewRouter(
			logger,
			authHandler,
			subscriptionHandler,
			userHandler,
			facebookHandler,
			healthCheckHandler,
			[]byte(cfg.JWTSecret),
		),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
