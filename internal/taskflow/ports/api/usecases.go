// Package api определяет интерфейсы бизнес-логики приложения.
package api

import (
	"context"
	"time"

	"taskflow/internal/taskflow/domain/entities"
)

// AuthResult содержит результат успешной аутентификации:
// подписанный токен и проекцию пользователя без хэша пароля.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *entities.User
}

// AuthUseCase определяет операции аутентификации.
type AuthUseCase interface {
	Authenticate(ctx context.Context, email, password string) (*AuthResult, error)
}

// TaskData содержит сырые данные задачи из запроса. Валидация
// и приведение enum значений выполняются бизнес-логикой.
type TaskData struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    string
	Status      string
}

// TaskUseCase определяет операции над задачами. Каждая операция
// принимает identity - email аутентифицированного пользователя,
// извлеченный из проверенного токена.
type TaskUseCase interface {
	GetTask(ctx context.Context, identity string, id int64) (*entities.Task, error)

	ListTasks(ctx context.Context, identity string) ([]*entities.Task, error)

	ListTasksPage(ctx context.Context, identity string, page, size int) ([]*entities.Task, int, error)

	CreateTask(ctx context.Context, identity string, data TaskData) (*entities.Task, error)

	UpdateTask(ctx context.Context, identity string, id int64, data TaskData) (*entities.Task, error)

	DeleteTask(ctx context.Context, identity string, id int64) error
}

// UserData содержит сырые данные пользователя из запроса.
type UserData struct {
	FullName string
	Age      int
	Email    string
	Password string
}

// UserUseCase определяет операции администрирования пользователей.
type UserUseCase interface {
	GetUser(ctx context.Context, id int64) (*entities.User, error)

	ListUsers(ctx context.Context, page, size int) ([]*entities.User, int, error)

	CreateUser(ctx context.Context, data UserData) (*entities.User, error)

	UpdateUser(ctx context.Context, id int64, data UserData) (*entities.User, error)

	DeleteUser(ctx context.Context, id int64) error
}
