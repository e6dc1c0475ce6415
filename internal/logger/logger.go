// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger builds the zerolog run log from configuration.
package logger

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pptx2pro/pkg/types"
)

// FormatConsole selects human-readable output. Any other format writes JSON
// lines.
const FormatConsole = "console"

// New returns a logger writing to w. An unknown level falls back to info.
func New(cfg types.LogConfig, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	out := w
	if cfg.Format == FormatConsole {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.Kitchen,
		}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
