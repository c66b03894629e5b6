package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmukex/techpulse/internal/config"
)

// Setup creates the application logger: a text handler writing to the
// configured log file, mirrored to stderr when console output is enabled.
func Setup(cfg config.LoggingConfig) (*slog.Logger, error) {
	if err := os.MkdirAll(cfg.Directory, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(cfg.Directory, cfg.Filename)
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	var w io.Writer = file
	if cfg.Console {
		w = io.MultiWriter(file, os.Stderr)
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: Level(cfg.Level),
	})
	return slog.New(handler), nil
}

// Discard returns a logger that drops everything, for components that run
// without log setup (tests, one-shot commands).
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func Level(value string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
