package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"barbearia/internal/config"
)

const appName = "barbearia"

// New constructs a zerolog logger. Defaults to JSON at info level on stdout.
func New(cfg config.LoggingConfig, appEnv string) *zerolog.Logger {
	return NewWithWriter(cfg, appEnv, os.Stdout)
}

func NewWithWriter(cfg config.LoggingConfig, appEnv string, out io.Writer) *zerolog.Logger {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level))); err == nil && parsed != zerolog.NoLevel {
		level = parsed
	}

	if strings.ToLower(strings.TrimSpace(cfg.Format)) == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	base := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("app", appName).
		Str("env", appEnv).
		Logger()

	return &base
}
