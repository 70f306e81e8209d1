package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mohanreddy3010/Blogging-Platform/internal/accounts"
	"github.com/mohanreddy3010/Blogging-Platform/internal/config"
	"github.com/mohanreddy3010/Blogging-Platform/internal/database"
	"github.com/mohanreddy3010/Blogging-Platform/internal/events"
	"github.com/mohanreddy3010/Blogging-Platform/internal/notifications"
	"github.com/mohanreddy3010/Blogging-Platform/internal/posts"
	"github.com/mohanreddy3010/Blogging-Platform/internal/recommend"
	"github.com/mohanreddy3010/Blogging-Platform/internal/server"
	"github.com/mohanreddy3010/Blogging-Platform/internal/subscriptions"
	"github.com/mohanreddy3010/Blogging-Platform/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(worker.NewLogger(cfg.LogLevel, cfg.LogFormat))

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Init(cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Error("Failed to close database", "error", err)
		}
	}()

	if err := database.RunMigrations(db); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	if cfg.SeedDevData && cfg.Env == "development" {
		if err := database.SeedDevData(db); err != nil {
			slog.Error("Failed to seed dev data", "error", err)
			os.Exit(1)
		}
	}

	if err := worker.InitClient(cfg.RedisURL); err != nil {
		slog.Error("Failed to init task client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := worker.CloseClient(); err != nil {
			slog.Error("Failed to close task client", "error", err)
		}
	}()

	publisher, err := events.NewPublisher(cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to create events publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	stopWorker, err := worker.Start(cfg, db, publisher)
	if err != nil {
		slog.Error("Failed to start worker", "error", err)
		os.Exit(1)
	}
	defer stopWorker()

	stopScheduler, err := worker.StartScheduler(cfg)
	if err != nil {
		slog.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer stopScheduler()

	accountsSvc := accounts.NewService(db)
	subscriptionsSvc := subscriptions.NewService(db)
	notificationsSvc := notifications.NewService(db)
	postsSvc := posts.NewService(db, accountsSvc, worker.EnqueueNotificationFanout)

	router := server.New(server.Deps{
		Accounts:      accountsSvc,
		Subscriptions: subscriptionsSvc,
		Posts:         postsSvc,
		Notifications: notificationsSvc,
		Weather:       recommend.NewWeatherClient(cfg.OpenWeatherAPIKey),
		Recommender:   recommend.NewRecommender(cfg.OpenAIAPIKey),
		SessionSecret: cfg.SessionSecret,
		Production:    cfg.Env == "production",
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		slog.Info("Starting server", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
}
