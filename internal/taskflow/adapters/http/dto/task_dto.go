package dto

import (
	"time"

	"taskflow/internal/taskflow/domain/entities"
	"taskflow/internal/taskflow/ports/api"
)

// TaskRequest представляет тело запроса на создание или обновление задачи.
// Владелец задачи в теле не принимается: он всегда берется из токена.
type TaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
}

// ToTaskData преобразует запрос в данные для бизнес-логики.
func (r TaskRequest) ToTaskData() api.TaskData {
	return api.TaskData{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		Priority:    r.Priority,
		Status:      r.Status,
	}
}

// TaskResponse представляет задачу в ответе API.
type TaskResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NewTaskResponse собирает ответ из доменной сущности.
func NewTaskResponse(task *entities.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Priority:    string(task.Priority),
		Status:      string(task.Status),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// NewTaskResponses собирает список ответов. Пустой список сериализуется
// как [], а не null.
func NewTaskResponses(tasks []*entities.Task) []TaskResponse {
	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, NewTaskResponse(task))
	}
	return responses
}

// TaskPageResponse представляет страницу задач.
type TaskPageResponse struct {
	Content       []TaskResponse `json:"content"`
	TotalElements int            `json:"totalElements"`
	TotalPages    int            `json:"totalPages"`
	Page          int            `json:"page"`
	Size          int            `json:"size"`
}

// NewTaskPageResponse собирает страницу задач.
func NewTaskPageResponse(tasks []*entities.Task, total, page, size int) TaskPageResponse {
	return TaskPageResponse{
		Content:       NewTaskResponses(tasks),
		TotalElements: total,
		TotalPages:    totalPages(total, size),
		Page:          page,
		Size:          size,
	}
}

func totalPages(total, size int) int {
	if size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
