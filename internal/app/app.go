package app

import (
	"context"
	"log/slog"
	"time"

	httpapp "github.com/14kear/polls-api/internal/app/http"
	"github.com/14kear/polls-api/internal/handlers"
	"github.com/14kear/polls-api/internal/middleware"
	"github.com/14kear/polls-api/internal/services/auth"
	"github.com/14kear/polls-api/internal/services/polls"
	"github.com/14kear/polls-api/internal/storage/postgres"
)

type App struct {
	HTTPServer *httpapp.App
	Auth       *auth.Auth
	Polls      *polls.Polls
	storage    *postgres.Storage
}

func NewApp(
	log *slog.Logger,
	httpPort int,
	storagePath string,
	tokenSecret string,
	accessTokenTTL time.Duration,
	refreshTokenTTL time.Duration,
) *App {
	storage, err := postgres.New(storagePath)
	if err != nil {
		panic(err)
	}

	authService := auth.NewAuth(log, storage, storage, storage, tokenSecret, accessTokenTTL, refreshTokenTTL)
	pollsService := polls.NewPolls(log, storage, storage, storage, storage)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	pollsHandler := handlers.NewPollsHandler(pollsService)
	authHandler := handlers.NewAuthHandler(authService)

	httpApp := httpapp.NewApp(httpPort, pollsHandler, authHandler, authMiddleware.Middleware())

	return &App{
		HTTPServer: httpApp,
		Auth:       authService,
		Polls:      pollsService,
		storage:    storage,
	}
}

func (a *App) Stop(ctx context.Context) error {
	if err := a.HTTPServer.Stop(ctx); err != nil {
		return err
	}
	return a.storage.Close()
}
