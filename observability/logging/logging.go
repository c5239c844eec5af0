// Package logging configures the structured JSON logger every Orbit
// component uses, following the slog JSON-handler idiom the teacher repo's
// own observability/logging package establishes, extended with on-disk
// rotation for cmd/orbitd's long-running process.
package logging

import (
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls where and how logs are written.
type Config struct {
	Service string
	Env     string
	// FilePath, if set, routes logs through a rotating file writer instead
	// of stdout. MaxSizeMB/MaxBackups/MaxAgeDays default to 100 MB, 7
	// backups and 28 days when left at zero.
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Setup configures the global slog logger as structured JSON, tagged with
// service/env attributes, and returns it for components that want an
// explicit handle rather than relying on slog.Default().
func Setup(cfg Config) *slog.Logger {
	var writer = os.Stdout
	handlerOpts := &slog.HandlerOptions{
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.TimeKey:
				return slog.Attr{Key: "timestamp", Value: attr.Value}
			case slog.LevelKey:
				return slog.String("severity", strings.ToUpper(attr.Value.String()))
			case slog.MessageKey:
				return slog.Attr{Key: "message", Value: attr.Value}
			}
			return attr
		},
	}

	var handler slog.Handler
	if strings.TrimSpace(cfg.FilePath) != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    orDefault(cfg.MaxSizeMB, 100),
			MaxBackups: orDefault(cfg.MaxBackups, 7),
			MaxAge:     orDefault(cfg.MaxAgeDays, 28),
			Compress:   true,
		}
		handler = slog.NewJSONHandler(rotator, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(writer, handlerOpts)
	}

	attrs := []any{slog.String("service", strings.TrimSpace(cfg.Service))}
	if env := strings.TrimSpace(cfg.Env); env != "" {
		attrs = append(attrs, slog.String("env", env))
	}

	logger := slog.New(handler).With(attrs...)
	slog.SetDefault(logger)
	return logger
}

func orDefault(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}
