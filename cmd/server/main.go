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

	"github.com/joho/godotenv"

	"github.com/tanmayvb/conclave/internal/config"
	"github.com/tanmayvb/conclave/internal/logging"
	"github.com/tanmayvb/conclave/internal/server"
	"github.com/tanmayvb/conclave/internal/signaling"
)

func main() {
	// Load local .env (dev only)
	_ = godotenv.Load()

	logging.Init()
	cfg := config.Load()

	// Cancel on SIGINT/SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// The hub owns all room state; its loop is the single writer.
	hub := signaling.NewHub(slog.Default(), signaling.Options{
		GraceDelay:    cfg.GraceDelay,
		SweepInterval: cfg.SweepInterval,
		IdleThreshold: cfg.IdleThreshold,
	})
	go hub.Run(ctx)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: server.NewRouter(hub, cfg),
	}

	go func() {
		slog.Info("signaling server listening", "addr", cfg.Addr, "origin", cfg.AllowedOrigin)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("listen", "err", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "err", err)
	}
}
