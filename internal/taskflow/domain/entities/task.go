package entities

import (
	"errors"
	"time"
)

// Ошибки домена задач.
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrInvalidPriority = errors.New("invalid task priority")
	ErrInvalidStatus   = errors.New("invalid task status")
)

// Priority определяет приоритет задачи.
type Priority string

// Допустимые приоритеты задачи.
const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// ParsePriority преобразует строку в Priority.
func ParsePriority(value string) (Priority, error) {
	switch Priority(value) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(value), nil
	default:
		return "", ErrInvalidPriority
	}
}

// Status определяет состояние задачи.
type Status string

// Допустимые состояния задачи.
const (
	StatusPending Status = "PENDING"
	StatusDone    Status = "DONE"
)

// ParseStatus преобразует строку в Status. Пустая строка
// трактуется как состояние по умолчанию PENDING.
func ParseStatus(value string) (Status, error) {
	if value == "" {
		return StatusPending, nil
	}
	switch Status(value) {
	case StatusPending, StatusDone:
		return Status(value), nil
	default:
		return "", ErrInvalidStatus
	}
}

// Task представляет собой задачу пользователя. Каждая задача
// принадлежит ровно одному пользователю.
type Task struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Priority    Priority   `json:"priority"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NewTask создает новую задачу для пользователя. Статус по умолчанию PENDING.
func NewTask(userID int64, title, description string, dueDate *time.Time, priority Priority, status Status) *Task {
	if status == "" {
		status = StatusPending
	}
	return &Task{
		UserID:      userID,
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Priority:    priority,
		Status:      status,
	}
}
