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

	"coderr/internal/config"
	"coderr/internal/database"
	"coderr/internal/pkg/logger"
	"coderr/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg.LogLevel, cfg.LogPretty)
	if err != nil {
		log.Fatal(err)
	}
	slog.SetDefault(lg)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		lg.Error("database connect failed", slog.Any("error", err))
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		lg.Error("migration failed", slog.Any("error", err))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.NewRouter(cfg, db, lg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		lg.Info("http server listening", slog.String("addr", cfg.HTTPAddr), slog.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("http server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	lg.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("graceful shutdown failed", slog.Any("error", err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
