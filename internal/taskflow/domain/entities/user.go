// Package entities определяет доменные сущности трекера задач.
package entities

import (
	"errors"
	"time"
)

// Ошибки домена пользователя.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("user with this email already exists")
)

// User представляет основную сущность домена пользователя.
// Пароль хранится исключительно в виде одностороннего хэша.
type User struct {
	ID           int64
	FullName     string
	Age          int
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
