package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/14kear/polls-api/internal/app"
	"github.com/14kear/polls-api/internal/config"
	"github.com/14kear/polls-api/utils"
)

func main() {
	cfg := config.Load("config/local.yaml")

	log := utils.New(cfg.Env)

	if cfg.Env == utils.EnvLocal || cfg.Env == utils.EnvDev {
		log.Info("starting polls service", slog.Any("config", cfg))
	} else {
		log.Info("starting polls service")
	}

	application := app.NewApp(log, cfg.HTTP.Port, cfg.StoragePath, cfg.TokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := application.HTTPServer.Run(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Info("HTTP server closed gracefully")
			} else {
				log.Error("failed to run HTTP server", slog.String("error", err.Error()))
				stop()
			}
		}
	}()

	log.Info("polls service started", slog.String("env", cfg.Env), slog.Int("port", cfg.HTTP.Port))

	<-ctx.Done()

	log.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := application.Stop(shutdownCtx); err != nil {
		log.Error("failed to stop application", slog.String("error", err.Error()))
	}

	log.Info("application stopped")
}
