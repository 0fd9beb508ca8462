// Package apierrors определяет типизированные ошибки API
// с классификацией по HTTP статусам.
package apierrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Код SQLSTATE нарушения уникального ограничения.
const uniqueViolationCode = "23505"

// Сообщения по умолчанию.
const (
	MsgValidationFailed   = "Validation failed"
	MsgInvalidCredentials = "Invalid email or password"
	MsgAuthFailed         = "Authentication failed. Please login again."
	MsgAccessDenied       = "Access denied. You don't have permission to access this resource."
	MsgInternalError      = "An internal server error occurred"
	MsgDuplicateEmail     = "Email already exists. Please use a different email address."
)

// APIError представляет ошибку, переводимую на границе HTTP
// в структурированный ответ.
type APIError struct {
	Message          string
	Status           int
	ErrText          string
	ValidationErrors map[string]string
}

// Error реализует интерфейс error.
func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.ErrText, e.Message)
}

// New создает APIError с указанным статусом и сообщением.
func New(status int, message string) *APIError {
	return &APIError{
		Message: message,
		Status:  status,
		ErrText: http.StatusText(status),
	}
}

// NewValidation создает ошибку валидации 400 с сообщениями по полям.
func NewValidation(fields map[string]string) *APIError {
	err := New(http.StatusBadRequest, MsgValidationFailed)
	err.ValidationErrors = fields
	return err
}

// NewBadRequest создает ошибку 400 без карты полей.
func NewBadRequest(message string) *APIError {
	return New(http.StatusBadRequest, message)
}

// NewUnauthorized создает ошибку аутентификации 401.
func NewUnauthorized(message string) *APIError {
	return New(http.StatusUnauthorized, message)
}

// NewForbidden создает ошибку доступа 403.
func NewForbidden(message string) *APIError {
	return New(http.StatusForbidden, message)
}

// NewNotFound создает ошибку 404 для отсутствующего ресурса.
func NewNotFound(resource, field string, value any) *APIError {
	return New(http.StatusNotFound,
		fmt.Sprintf("%s not found with %s: '%v'", resource, field, value))
}

// NewConflict создает ошибку конфликта 409.
func NewConflict(message string) *APIError {
	return New(http.StatusConflict, message)
}

// NewInternal создает ошибку 500.
func NewInternal(message string) *APIError {
	return New(http.StatusInternalServerError, message)
}

// IsUniqueViolation определяет, является ли ошибка нарушением
// уникального ограничения хранилища.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	return err != nil && strings.Contains(err.Error(), "duplicate key value violates unique constraint")
}

// From переводит произвольную ошибку в APIError. Уже типизированные
// ошибки возвращаются как есть, нарушения уникальности отображаются
// в Conflict, все остальное скрывается за 500.
func From(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	if IsUniqueViolation(err) {
		return NewConflict(MsgDuplicateEmail)
	}
	return NewInternal(MsgInternalError)
}
