package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"taskflow/internal/taskflow/adapters/http/dto"
	"taskflow/internal/taskflow/adapters/http/middleware"
	"taskflow/pkg/apierrors"
	"taskflow/pkg/logger"
)

// NewErrorHandler создает единый обработчик ошибок приложения.
// Типизированные ошибки переводятся в структурированный ответ,
// все остальное скрывается за 500 с общим сообщением.
func NewErrorHandler() fiber.ErrorHandler {
	return func(ctx fiber.Ctx, err error) error {
		requestCtx := middleware.RequestContext(ctx)
		log := logger.Log(requestCtx).With(
			zap.String("path", ctx.Path()),
			zap.String("method", ctx.Method()),
		)

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			// Ошибки маршрутизации самого fiber (404/405 и прочее).
			if sendErr := ctx.Status(fiberErr.Code).JSON(dto.ErrorResponse{
				Message:   fiberErr.Message,
				Status:    fiberErr.Code,
				Error:     fiberErr.Message,
				Path:      ctx.Path(),
				Timestamp: time.Now().UTC(),
			}); sendErr != nil {
				return fmt.Errorf("error sending error response: %w", sendErr)
			}
			return nil
		}

		apiErr := apierrors.From(err)
		if apiErr.Status >= fiber.StatusInternalServerError {
			log.Error(requestCtx, "request failed", zap.Error(err))
		} else {
			log.Debug(requestCtx, "request rejected", zap.Int("status", apiErr.Status), zap.Error(err))
		}

		if sendErr := ctx.Status(apiErr.Status).JSON(dto.ErrorResponse{
			Message:          apiErr.Message,
			Status:           apiErr.Status,
			Error:            apiErr.ErrText,
			Path:             ctx.Path(),
			Timestamp:        time.Now().UTC(),
			ValidationErrors: apiErr.ValidationErrors,
		}); sendErr != nil {
			return fmt.Errorf("error sending error response: %w", sendErr)
		}
		return nil
	}
}
