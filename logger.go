package fzx

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// NewLogger creates a leveled logger writing to w. level is one of debug,
// info, warn or error and falls back to FZX_LOG_LEVEL, then info.
func NewLogger(w io.Writer, level string) *log.Logger {
	if level == "" {
		level = GetEnv("FZX_LOG_LEVEL", "info")
	}
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = log.InfoLevel
	}
	logger := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "fzx",
		ReportTimestamp: true,
	})
	if err != nil {
		logger.Warn("unknown log level, using info", "level", level)
	}
	return logger
}

// NewJSONLogger is NewLogger with JSON output, for machine consumption.
func NewJSONLogger(w io.Writer, level string) *log.Logger {
	logger := NewLogger(w, level)
	logger.SetFormatter(log.JSONFormatter)
	return logger
}

// DefaultLogger writes to stderr at the configured level.
func DefaultLogger(cfg *Config) *log.Logger {
	return NewLogger(os.Stderr, cfg.LogLevel)
}

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
