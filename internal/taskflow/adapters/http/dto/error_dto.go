package dto

import "time"

// ErrorResponse представляет структурированный ответ об ошибке,
// единый для всех обработчиков.
type ErrorResponse struct {
	Message          string            `json:"message"`
	Status           int               `json:"status"`
	Error            string            `json:"error"`
	Path             string            `json:"path"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
}
