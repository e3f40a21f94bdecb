// Package logging configures slog output for the process and per-service file loggers.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

var defaultLogger *slog.Logger

const (
	LevelTrace = slog.Level(-8)
	LevelFatal = slog.Level(12)
)

// Add trace and fatal level names.
var levelNames = map[slog.Leveler]string{
	LevelTrace: "TRACE",
	LevelFatal: "FATAL",
}

func replaceLevelNames(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		level := a.Value.Any().(slog.Level)
		levelLabel, exists := levelNames[level]
		if !exists {
			levelLabel = level.String()
		}
		a.Value = slog.StringValue(levelLabel)
	}
	return a
}

// Init initializes the process-wide logger writing human-readable text to stderr.
// Structured file loggers for individual services are created with NewFileLogger.
func Init(level slog.Level) {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevelNames,
	})
	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// Default returns the globally configured logger, or nil before Init.
func Default() *slog.Logger {
	return defaultLogger
}

// ForService creates a logger with the 'service' attribute added.
func ForService(serviceName string) *slog.Logger {
	if defaultLogger == nil {
		return slog.Default().With("service", serviceName)
	}
	return defaultLogger.With("service", serviceName)
}

// Fatal logs a fatal message and exits.
func Fatal(msg string, args ...any) {
	slog.Log(context.TODO(), LevelFatal, msg, args...)
	os.Exit(1)
}

// NewFileLogger creates a slog.Logger writing JSON logs to filePath through
// lumberjack rotation, tagged with a 'service' attribute. It returns the
// logger, a closer for the underlying writer, and an error if setup fails.
func NewFileLogger(filePath, serviceName string, level slog.Leveler) (*slog.Logger, func() error, error) {
	logDir := filepath.Dir(filePath)
	if logDir != "." {
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
		}
	}

	logWriter := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    100, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}

	fileHandler := slog.NewJSONHandler(logWriter, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevelNames,
	})

	logger := slog.New(fileHandler).With("service", serviceName)

	return logger, logWriter.Close, nil
}

// NewDiscardLogger returns a logger that drops everything. Used as a fallback
// when file logger setup fails so callers never hold a nil logger.
func NewDiscardLogger(serviceName string) *slog.Logger {
	handler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(handler).With("service", serviceName)
}
