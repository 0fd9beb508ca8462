package services

import (
	"time"

	"taskflow/internal/taskflow/ports/services"
)

// ServiceFactory создает сервисы паролей и токенов.
type ServiceFactory struct {
	passwordService services.PasswordService
	tokenService    services.TokenService
}

// NewServiceFactory создает новую фабрику сервисов.
func NewServiceFactory(jwtSecretKey string, tokenTTL time.Duration, bcryptCost int) *ServiceFactory {
	return &ServiceFactory{
		passwordService: NewBcrypt(bcryptCost),
		tokenService:    NewJWT(jwtSecretKey, tokenTTL),
	}
}

// PasswordService возвращает сервис для работы с паролями.
func (f *ServiceFactory) PasswordService() services.PasswordService {
	return f.passwordService
}

// TokenService возвращает сервис для работы с токенами.
func (f *ServiceFactory) TokenService() services.TokenService {
	return f.tokenService
}
