// Package repositories определяет интерфейсы хранилищ доменных сущностей.
package repositories

import (
	"context"

	"taskflow/internal/taskflow/domain/entities"
)

// UserRepository определяет интерфейс для операций сохранения данных пользователя.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id int64) (*entities.User, error)

	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	List(ctx context.Context, limit, offset int) ([]*entities.User, int, error)

	Update(ctx context.Context, user *entities.User) (*entities.User, error)

	Delete(ctx context.Context, id int64) error
}
