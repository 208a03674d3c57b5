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
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/udanya23/job-portal/config"
	"github.com/udanya23/job-portal/internal/email"
	"github.com/udanya23/job-portal/internal/health"
	"github.com/udanya23/job-portal/internal/infrastructure/mongodb"
	ctxlog "github.com/udanya23/job-portal/internal/log"
	"github.com/udanya23/job-portal/internal/metrics"
	"github.com/udanya23/job-portal/internal/sweeper"
	httptransport "github.com/udanya23/job-portal/internal/transport/http"
	"github.com/udanya23/job-portal/internal/transport/http/handler"
	"github.com/udanya23/job-portal/internal/usecase"
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

	client, db, err := mongodb.Connect(ctx, cfg.MongoURL, cfg.MongoDatabase)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Error("mongo disconnect", "error", err)
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		stop()
		log.Fatalf("indexes: %v", err)
	}

	userRepo := mongodb.NewUserRepository(db)
	jobRepo := mongodb.NewJobRepository(db)
	appRepo := mongodb.NewApplicationRepository(db)

	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	authUsecase := usecase.NewAuthUsecase(userRepo, sender, []byte(cfg.JWTSecret))
	authHandler := handler.NewAuthHandler(authUsecase, logger)

	jobUsecase := usecase.NewJobUsecase(jobRepo, userRepo)
	jobHandler := handler.NewJobHandler(jobUsecase, logger)

	appUsecase := usecase.NewApplicationUsecase(appRepo, jobRepo, userRepo)
	appHandler := handler.NewApplicationHandler(appUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(mongodb.Pinger{Client: client}, logger, prometheus.DefaultRegisterer)

	sweep, err := sweeper.New(userRepo, logger, cfg.SweepCron, time.Duration(cfg.SweepRetainHours)*time.Hour)
	if err != nil {
		stop()
		log.Fatalf("sweeper: %v", err)
	}
	go sweep.Start(ctx)

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, authHandler, jobHandler, appHandler, []byte(cfg.JWTSecret)),
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
