package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/contre95/musicrescue/src/features/config"
)

// SetupLogger builds the process logger from the logger section of the config.
func SetupLogger(cfg *config.Manager) *slog.Logger {
	return NewLogger(os.Stderr, cfg.Get().Logger)
}

// NewLogger builds a slog logger backed by a charmbracelet handler.
func NewLogger(w io.Writer, cfg config.Logger) *slog.Logger {
	if !cfg.Enabled {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var formatter log.Formatter
	switch cfg.Format {
	case "json":
		formatter = log.JSONFormatter
	case "text":
		formatter = log.TextFormatter
	default:
		formatter = log.LogfmtFormatter
	}

	level := log.InfoLevel
	switch cfg.Level {
	case "debug":
		level = log.DebugLevel
	case "warn":
		level = log.WarnLevel
	case "error":
		level = log.ErrorLevel
	}

	handler := log.NewWithOptions(w, log.Options{
		ReportCaller:    level == log.DebugLevel,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "musicrescue",
		Formatter:       formatter,
		Level:           level,
	})

	return slog.New(handler)
}
