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

	"optimanager/m/internal/api"
	"optimanager/m/internal/auth"
	"optimanager/m/internal/config"
	"optimanager/m/internal/database"
	"optimanager/m/internal/logging"
	"optimanager/m/internal/metrics"
	"optimanager/m/internal/migrations"
	"optimanager/m/internal/seed"
	"optimanager/m/internal/store"
)

func main() {
	cfg := config.Load()

	logger, err := logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		slog.Error("failed to initialise logging", "error", err)
		os.Exit(1)
	}

	db := database.Connect(cfg.DBDriver, cfg.DatabaseDSN)
	defer db.Close()
	slog.Info("connected to database", "driver", cfg.DBDriver)

	if err := migrations.Run(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	s := store.New(db)
	authService := auth.NewService(s, auth.NewTokens(cfg.Secret, cfg.TokenTTL))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.SeedProducts != "" {
		n, err := seed.LoadProducts(ctx, db, cfg.SeedProducts)
		if err != nil {
			slog.Error("unable to seed product catalog", "path", cfg.SeedProducts, "error", err)
		} else {
			slog.Info("seeded product catalog", "path", cfg.SeedProducts, "rows", n)
		}
	}
	if err := seed.EnsureAdmin(ctx, authService, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		slog.Error("unable to create bootstrap admin", "error", err)
	}
	if cfg.Secret == "dev_secret" {
		slog.Warn("JWT_SECRET is not set, using the development secret")
	}

	handler := api.New(s, authService, api.Options{
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
		Metrics:     metrics.New(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("OptiManager server starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
	slog.Info("server exited")
}
