// Package app реализует бизнес-логику трекера задач.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"taskflow/internal/taskflow/domain/entities"
	"taskflow/internal/taskflow/ports/api"
	"taskflow/internal/taskflow/ports/repositories"
	"taskflow/internal/taskflow/ports/services"
	"taskflow/pkg/apierrors"
	"taskflow/pkg/logger"
)

// Константы для логирования аутентификации.
const (
	methodAuthenticate = "Authenticate"

	msgAuthenticating       = "authenticating user"
	msgUserNotFoundByEmail  = "user not found by email"
	msgPasswordMismatch     = "password does not match"
	msgAuthenticated        = "user authenticated successfully"
	errCtxFindingUser       = "finding user by email"
	errCtxVerifyingPassword = "verifying password"
	errCtxGeneratingToken   = "generating token"
)

// AuthUseCaseImpl реализует интерфейс AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc services.PasswordService
	tokenSvc    services.TokenService
}

// NewAuthUseCase создает новый экземпляр сценария аутентификации.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	passwordSvc services.PasswordService,
	tokenSvc services.TokenService,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// Authenticate проверяет учетные данные и выдает токен доступа.
// Неизвестный email и неверный пароль дают один и тот же ответ,
// чтобы не раскрывать наличие учетной записи.
func (uc *AuthUseCaseImpl) Authenticate(ctx context.Context, email, password string) (*api.AuthResult, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodAuthenticate),
		zap.String("email", email),
	)
	log.Debug(ctx, msgAuthenticating)

	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Info(ctx, msgUserNotFoundByEmail)
			return nil, apierrors.NewUnauthorized(apierrors.MsgInvalidCredentials)
		}
		log.Error(ctx, errCtxFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	ok, err := uc.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, errCtxVerifyingPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !ok {
		log.Info(ctx, msgPasswordMismatch)
		return nil, apierrors.NewUnauthorized(apierrors.MsgInvalidCredentials)
	}

	token, expiresAt, err := uc.tokenSvc.GenerateToken(ctx, user.Email)
	if err != nil {
		log.Error(ctx, errCtxGeneratingToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingToken, err)
	}

	log.Info(ctx, msgAuthenticated, zap.Int64("userId", user.ID))
	return &api.AuthResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}
