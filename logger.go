package shapejson

import (
	"context"
	"log/slog"
	"os"
	"reflect"
	"sync/atomic"
	"time"
)

// Logger wraps slog.Logger with shapejson-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithType adds the Go type a routine was compiled for.
func (l *Logger) WithType(t reflect.Type) *Logger {
	return &Logger{
		Logger: l.Logger.With("type", typeName(t)),
	}
}

// WithConfig adds the output configuration.
func (l *Logger) WithConfig(cfg Config) *Logger {
	return &Logger{
		Logger: l.Logger.With("config", cfg.String()),
	}
}

// LogBuild logs the compilation of a routine.
func (l *Logger) LogBuild(ctx context.Context, t reflect.Type, cfg Config, elapsed time.Duration, err error) {
	l = l.WithType(t).WithConfig(cfg)
	if err != nil {
		l.WarnContext(ctx, "routine build failed", "error", err)
	} else {
		l.DebugContext(ctx, "routine built", "elapsed", elapsed)
	}
}

// LogCodecError logs a failed Marshal or Unmarshal call.
func (l *Logger) LogCodecError(ctx context.Context, op string, t reflect.Type, err error) {
	l.WithType(t).DebugContext(ctx, op+" failed", "error", err)
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

var (
	logger     atomic.Pointer[Logger]
	noopLogger = NoopLogger()
)

// SetLogger installs the package logger. Pass nil to disable logging.
//
// Example with JSON logging:
//
//	shapejson.SetLogger(shapejson.NewJSONLogger(slog.LevelDebug))
func SetLogger(l *Logger) {
	logger.Store(l)
}

func currentLogger() *Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return noopLogger
}
