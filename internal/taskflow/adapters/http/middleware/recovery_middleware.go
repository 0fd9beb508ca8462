package middleware

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"taskflow/internal/taskflow/adapters/http/dto"
	"taskflow/pkg/apierrors"
	"taskflow/pkg/logger"
)

// NewRecoveryMiddleware создает промежуточное ПО восстановления после паники.
func NewRecoveryMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)
		log := logger.Log(requestCtx)

		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()

				log.Error(requestCtx, "Server panic",
					zap.String("error", fmt.Sprintf("%v", r)),
					zap.String("stack", string(stack)),
				)

				if err := ctx.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
					Message:   apierrors.MsgInternalError,
					Status:    fiber.StatusInternalServerError,
					Error:     "Internal Server Error",
					Path:      ctx.Path(),
					Timestamp: time.Now().UTC(),
				}); err != nil {
					log.Error(requestCtx, "Failed to send error response after panic", zap.Error(err))
				}
			}
		}()

		return ctx.Next()
	}
}
