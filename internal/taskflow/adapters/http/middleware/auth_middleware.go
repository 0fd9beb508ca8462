package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"taskflow/internal/taskflow/ports/services"
	"taskflow/pkg/apierrors"
	"taskflow/pkg/logger"
)

// Ключ Locals для email аутентифицированного пользователя.
const LocalsIdentity = "identity"

// Константы для логирования.
const (
	logAuthMiddleware = "auth middleware"

	errNoAuthHeader       = "no authorization header provided"
	errInvalidTokenFormat = "invalid token format"
	errInvalidToken       = "token validation failed"
)

const bearerPrefix = "Bearer "

// Identity извлекает email аутентифицированного пользователя из Locals.
func Identity(ctx fiber.Ctx) string {
	identity, _ := ctx.Locals(LocalsIdentity).(string)
	return identity
}

// NewAuthMiddleware создает промежуточное ПО проверки токена доступа.
// Субъект проверенного токена кладется в Locals и дальше передается
// в бизнес-логику явно.
func NewAuthMiddleware(tokenService services.TokenService) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, logAuthMiddleware)

		authHeader := ctx.Get("Authorization")
		if authHeader == "" {
			log.Debug(requestCtx, errNoAuthHeader)
			return apierrors.NewUnauthorized(apierrors.MsgAuthFailed)
		}

		if !strings.HasPrefix(authHeader, bearerPrefix) {
			log.Debug(requestCtx, errInvalidTokenFormat)
			return apierrors.NewUnauthorized(apierrors.MsgAuthFailed)
		}

		email, err := tokenService.ValidateToken(requestCtx, strings.TrimPrefix(authHeader, bearerPrefix))
		if err != nil {
			log.Debug(requestCtx, errInvalidToken, zap.Error(err))
			return apierrors.NewUnauthorized(apierrors.MsgAuthFailed)
		}

		ctx.Locals(LocalsIdentity, email)

		return ctx.Next()
	}
}
