package app

import (
	"regexp"
	"strings"
	"time"

	"taskflow/internal/taskflow/domain/entities"
	"taskflow/internal/taskflow/ports/api"
)

// Сообщения валидации по полям.
const (
	msgFullNameRequired  = "Full name is required"
	msgFullNameLetters   = "Full name must contain only letters and spaces"
	msgAgeNegative       = "Age must be a positive number"
	msgAgeTooLarge       = "Age must not exceed 120"
	msgEmailRequired     = "E-mail is required"
	msgEmailInvalid      = "Invalid email format"
	msgPasswordRequired  = "Password is required"
	msgPasswordUppercase = "Must contain at least one uppercase letter"
	msgPasswordLowercase = "Must contain at least one lowercase letter"
	msgPasswordDigit     = "Must contain at least one number"
	msgPasswordSymbol    = "Must contain at least one special character (@$!%*?&)"
	msgTitleRequired     = "Title is required"
	msgPriorityRequired  = "Priority is required"
	msgPriorityInvalid   = "Priority must be one of LOW, MEDIUM, HIGH"
	msgStatusInvalid     = "Status must be one of PENDING, DONE"
	msgDueDateFuture     = "Due date must be in the future"
)

// Максимальный допустимый возраст пользователя.
const maxAge = 120

var (
	fullNameRegex = regexp.MustCompile(`^[a-zA-Z ]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	upperRegex    = regexp.MustCompile(`[A-Z]`)
	lowerRegex    = regexp.MustCompile(`[a-z]`)
	digitRegex    = regexp.MustCompile(`\d`)
	symbolRegex   = regexp.MustCompile(`[@$!%*?&]`)
)

// validateUserData проверяет данные пользователя и возвращает карту
// сообщений по полям. Пустая карта означает отсутствие ошибок.
// При requirePassword=false пустой пароль допустим (профильное
// обновление без смены пароля); непустой пароль проверяется всегда.
func validateUserData(data api.UserData, requirePassword bool) map[string]string {
	fields := make(map[string]string)

	if strings.TrimSpace(data.FullName) == "" {
		fields["fullName"] = msgFullNameRequired
	} else if !fullNameRegex.MatchString(data.FullName) {
		fields["fullName"] = msgFullNameLetters
	}

	if data.Age < 0 {
		fields["age"] = msgAgeNegative
	} else if data.Age > maxAge {
		fields["age"] = msgAgeTooLarge
	}

	if strings.TrimSpace(data.Email) == "" {
		fields["email"] = msgEmailRequired
	} else if !emailRegex.MatchString(data.Email) {
		fields["email"] = msgEmailInvalid
	}

	if strings.TrimSpace(data.Password) == "" {
		if requirePassword {
			fields["password"] = msgPasswordRequired
		}
	} else if msg := validatePassword(data.Password); msg != "" {
		fields["password"] = msg
	}

	return fields
}

func validatePassword(password string) string {
	switch {
	case !upperRegex.MatchString(password):
		return msgPasswordUppercase
	case !lowerRegex.MatchString(password):
		return msgPasswordLowercase
	case !digitRegex.MatchString(password):
		return msgPasswordDigit
	case !symbolRegex.MatchString(password):
		return msgPasswordSymbol
	}
	return ""
}

// validateTaskData проверяет данные задачи и приводит enum значения.
// Срок исполнения проверяется только при создании и обновлении,
// на чтении он не перепроверяется.
func validateTaskData(data api.TaskData, now time.Time) (entities.Priority, entities.Status, map[string]string) {
	fields := make(map[string]string)

	if strings.TrimSpace(data.Title) == "" {
		fields["title"] = msgTitleRequired
	}

	var priority entities.Priority
	if strings.TrimSpace(data.Priority) == "" {
		fields["priority"] = msgPriorityRequired
	} else {
		parsed, err := entities.ParsePriority(data.Priority)
		if err != nil {
			fields["priority"] = msgPriorityInvalid
		} else {
			priority = parsed
		}
	}

	status, err := entities.ParseStatus(data.Status)
	if err != nil {
		fields["status"] = msgStatusInvalid
	}

	if data.DueDate != nil && !data.DueDate.After(now) {
		fields["dueDate"] = msgDueDateFuture
	}

	return priority, status, fields
}
