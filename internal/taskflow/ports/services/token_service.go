package services

import (
	"context"
	"time"
)

// TokenService определяет интерфейс для операций с токенами JWT.
// Субъектом токена является email аутентифицированного пользователя.
type TokenService interface {
	GenerateToken(ctx context.Context, email string) (string, time.Time, error)

	ValidateToken(ctx context.Context, token string) (string, error)
}
