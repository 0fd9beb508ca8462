// Package logger предоставляет обертку над zap с поддержкой контекста запроса.
package logger

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Environment определяет режим работы логгера.
type Environment string

// Поддерживаемые режимы работы логгера.
const (
	Development Environment = "development"
	Production  Environment = "production"
)

// RequestID - имя поля для идентификатора запроса.
const RequestID = "request_id"

// ErrBuildLogger возвращается при ошибке сборки zap логгера.
var ErrBuildLogger = fmt.Errorf("failed to build zap logger")

// Logger оборачивает zap.Logger и добавляет request_id из контекста.
type Logger struct {
	l *zap.Logger
}

// NewLogger создает новый logger для указанного окружения.
// Пустой level оставляет уровень окружения по умолчанию.
func NewLogger(env Environment, level string) (*Logger, error) {
	var cfg zap.Config
	if env == Production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err == nil {
			cfg.Level = zap.NewAtomicLevelAt(parsed)
		}
	}

	zapLogger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildLogger, err)
	}

	return &Logger{l: zapLogger}, nil
}

// With возвращает копию логгера с дополнительными полями.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{l: l.l.With(fields...)}
}

// Debug логирует сообщение с уровнем Debug.
func (l *Logger) Debug(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Debug(msg, addRequestID(ctx, fields)...)
}

// Info логирует сообщение с уровнем Info.
func (l *Logger) Info(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Info(msg, addRequestID(ctx, fields)...)
}

// Warn логирует сообщение с уровнем Warn.
func (l *Logger) Warn(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Warn(msg, addRequestID(ctx, fields)...)
}

// Error логирует сообщение с уровнем Error.
func (l *Logger) Error(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Error(msg, addRequestID(ctx, fields)...)
}

// Fatal логирует сообщение с уровнем Fatal и завершает процесс.
func (l *Logger) Fatal(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Fatal(msg, addRequestID(ctx, fields)...)
}

// Sync сбрасывает буферизированные записи.
func (l *Logger) Sync() error {
	if err := l.l.Sync(); err != nil {
		return fmt.Errorf("syncing logger: %w", err)
	}
	return nil
}

func addRequestID(ctx context.Context, fields []zap.Field) []zap.Field {
	if id, ok := GetRequestID(ctx); ok {
		return append(fields, zap.String(RequestID, id))
	}
	return fields
}
