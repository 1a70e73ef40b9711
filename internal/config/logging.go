package config

import (
	"context"
	"errors"
	"io"
	"log/slog"
)

// ParseLevel maps a level name to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, errors.New("log-level must be one of debug, info, warn, error, got: " + level)
	}
}

// NewLogger builds the logger described by s, writing to w.
func NewLogger(w io.Writer, s LogSettings) (*slog.Logger, error) {
	level, err := ParseLevel(s.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if s.Format == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// LogWithLogger logs the resolved settings at debug level
func LogWithLogger(s *Settings, logger *slog.Logger) {
	ctx := context.Background()
	logger.DebugContext(ctx, "Config: repo", "value", s.Repo)
	logger.DebugContext(ctx, "Config: log", "level", s.Log.Level, "format", s.Log.Format)
	if s.User.Name != "" || s.User.Email != "" {
		logger.DebugContext(ctx, "Config: user", "name", s.User.Name, "email", s.User.Email)
	}
	if s.Sign.Enabled {
		logger.DebugContext(ctx, "Config: sign.key", "value", s.Sign.Key)
	}
}
