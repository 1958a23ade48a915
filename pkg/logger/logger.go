// Package logger carries a zap logger through context. Request middleware and
// background workers attach per-request fields with WithFields; everything
// downstream logs through the context-level helpers.
package logger

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Environment names accepted by Setup.
const (
	DevelopmentEnvironment = "development"
	ProductionEnvironment  = "production"
)

// defaultLogger serves contexts without an attached logger. Set by Setup.
var defaultLogger *zap.Logger //nolint: gochecknoglobals

// Setup initializes the process-wide default logger. Production gets sampled
// JSON output, anything else a human-readable development config.
func Setup(environment string) {
	switch environment {
	case ProductionEnvironment:
		defaultLogger, _ = zap.NewProduction()
	default:
		defaultLogger, _ = zap.NewDevelopment()
	}
}

type key struct{}

// Get returns the logger attached to ctx, falling back to the default logger.
func Get(ctx context.Context) *zap.Logger {
	if l, _ := ctx.Value(key{}).(*zap.Logger); l != nil {
		return l
	}

	return defaultLogger
}

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, key{}, l)
}

// WithFields attaches a child logger carrying the given fields, so every log
// call downstream of ctx includes them.
func WithFields(ctx context.Context, fields ...zapcore.Field) context.Context {
	return WithLogger(ctx, Get(ctx).With(fields...))
}

// IsDebug reports whether the contextual logger emits debug-level entries.
func IsDebug(ctx context.Context) bool {
	return Get(ctx).Level() == zap.DebugLevel
}

func Debug(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Debug(msg, fields...)
}

func Info(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Info(msg, fields...)
}

func Warn(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Warn(msg, fields...)
}

func Error(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Error(msg, fields...)
}

func Fatal(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Fatal(msg, fields...)
}
