// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"taskflow/pkg/logger"
)

// Ключи Locals и заголовок идентификатора запроса.
const (
	LocalsRequestContext = "requestContext"
	HeaderRequestID      = "X-Request-Id"
)

// RequestContext извлекает контекст запроса, подготовленный промежуточным
// ПО логирования. Запасной вариант - контекст fiber.
func RequestContext(ctx fiber.Ctx) context.Context {
	if requestCtx, ok := ctx.Locals(LocalsRequestContext).(context.Context); ok {
		return requestCtx
	}
	return ctx.Context()
}

// NewLoggerMiddleware создает промежуточное ПО, присваивающее каждому
// запросу идентификатор и логирующее начало и завершение обработки.
func NewLoggerMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestID := ctx.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}

		requestCtx := logger.NewRequestIDContext(ctx.Context(), requestID)
		ctx.Locals(LocalsRequestContext, requestCtx)
		ctx.Set(HeaderRequestID, requestID)

		start := time.Now()
		path := ctx.Path()
		method := ctx.Method()

		log := logger.Log(requestCtx).With(
			zap.String("path", path),
			zap.String("method", method),
			zap.String("ip", ctx.IP()),
		)

		log.Info(requestCtx, "Request started")

		err := ctx.Next()

		latency := time.Since(start)
		status := ctx.Response().StatusCode()

		logFields := []zap.Field{
			zap.Int("status", status),
			zap.Duration("latency", latency),
		}

		if err != nil {
			log.Info(requestCtx, "Request failed", append(logFields, zap.Error(err))...)
			return fmt.Errorf("request processing error: %w", err)
		}

		log.Info(requestCtx, "Request completed", logFields...)
		return nil
	}
}
