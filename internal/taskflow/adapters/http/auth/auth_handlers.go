// Package auth содержит HTTP-обработчики аутентификации.
package auth

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"taskflow/internal/taskflow/adapters/http/dto"
	"taskflow/internal/taskflow/adapters/http/middleware"
	"taskflow/internal/taskflow/ports/api"
	"taskflow/pkg/apierrors"
	"taskflow/pkg/logger"
)

// Константы для логирования.
const (
	logHandlerLogin = "handling login request"

	errMsgInvalidRequestBody = "invalid request body"
)

// Handler обработчик HTTP-запросов аутентификации.
type Handler struct {
	authUseCase api.AuthUseCase
}

// NewHandler создает новый экземпляр обработчика аутентификации.
func NewHandler(authUseCase api.AuthUseCase) *Handler {
	return &Handler{authUseCase: authUseCase}
}

// Login обрабатывает запрос на аутентификацию по email и паролю.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.Login"))
	log.Debug(requestCtx, logHandlerLogin)

	var req dto.AuthRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, errMsgInvalidRequestBody, zap.Error(err))
		return apierrors.NewBadRequest(errMsgInvalidRequestBody)
	}

	result, err := h.authUseCase.Authenticate(requestCtx, req.Email, req.Password)
	if err != nil {
		return err
	}

	if err := ctx.JSON(dto.NewAuthResponse(result.Token, result.ExpiresAt, result.User)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
