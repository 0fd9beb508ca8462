// Package dto содержит структуры запросов и ответов HTTP API.
package dto

import (
	"time"

	"taskflow/internal/taskflow/domain/entities"
)

// AuthRequest представляет запрос на аутентификацию.
type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthUser - проекция пользователя в ответе аутентификации.
// Хэш пароля наружу не отдается никогда.
type AuthUser struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// AuthResponse представляет ответ с токеном доступа.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      AuthUser  `json:"user"`
}

// NewAuthResponse собирает ответ аутентификации из доменной сущности.
func NewAuthResponse(token string, expiresAt time.Time, user *entities.User) AuthResponse {
	return AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User: AuthUser{
			ID:       user.ID,
			FullName: user.FullName,
			Email:    user.Email,
		},
	}
}
