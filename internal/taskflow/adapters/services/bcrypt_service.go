// Package services содержит реализации сервисов паролей и токенов.
package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	svc "taskflow/internal/taskflow/ports/services"
)

const (
	errMsgFailedToGenerateHash = "failed to generate password hash"
	errMsgErrorComparingHash   = "error comparing password with hash"
)

// ErrEmptyPassword возвращается при попытке хэшировать или проверять пустой пароль.
var ErrEmptyPassword = errors.New("password cannot be empty")

// ServiceBcrypt реализует интерфейс PasswordService.
type ServiceBcrypt struct {
	cost int
}

// NewBcrypt создает новый экземпляр сервиса bcrypt.
func NewBcrypt(cost int) svc.PasswordService {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &ServiceBcrypt{cost: cost}
}

// Hash хэширует пароль с помощью bcrypt.
func (s *ServiceBcrypt) Hash(_ context.Context, password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errMsgFailedToGenerateHash, err)
	}

	return string(hashedBytes), nil
}

// Verify проверяет соответствие пароля хэшу.
func (s *ServiceBcrypt) Verify(_ context.Context, password, hash string) (bool, error) {
	if password == "" || hash == "" {
		return false, ErrEmptyPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", errMsgErrorComparingHash, err)
	}

	return true, nil
}
