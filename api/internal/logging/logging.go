// Package logging sets up the process-wide zerolog root logger.
package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds the root logger. Format "console" gives human-readable output,
// anything else stays plain JSON. Level falls back to info on bad input.
func New(service string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL")))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var w = os.Stdout
	ctx := zerolog.New(w).Level(lvl).With().Timestamp().Str("service", service)
	if strings.ToLower(os.Getenv("LOG_FORMAT")) != "json" {
		return ctx.Logger().Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
	}
	return ctx.Logger()
}
