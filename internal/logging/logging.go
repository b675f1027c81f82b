// Package logging builds the zerolog logger shared by the CLI and the mock backend.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/jrsteele09/go-legal-client/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New returns a logger configured from cfg. DEV environments get a console
// writer on stderr; everything else logs JSON.
func New(cfg config.EnvConfig) zerolog.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(cfg config.EnvConfig, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.GetLogLevel())
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	out := w
	if cfg.IsDev() {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	return zerolog.New(out).Level(level).With().
		Timestamp().
		Str("app", cfg.GetAppName()).
		Logger()
}

// SetGlobal installs logger as the package-level zerolog logger.
func SetGlobal(logger zerolog.Logger) {
	log.Logger = logger
	zerolog.DefaultContextLogger = &log.Logger
}
