package utils

import (
	"log/slog"
	"os"

	"github.com/14kear/sso-prettyslog/slogpretty/slogpretty"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// New builds the service logger for the given environment: a pretty
// human-readable handler for local runs, debug-level text for dev and
// unknown environments, info-level text for prod.
func New(env string) *slog.Logger {
	switch env {
	case EnvLocal:
		return newPretty()
	case EnvProd:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func newPretty() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}
	return slog.New(opts.NewPrettyHandler(os.Stdout))
}
