package repositories

import (
	"context"

	"taskflow/internal/taskflow/domain/entities"
)

// TaskRepository определяет интерфейс для работы с хранилищем задач.
// Поиск по ID намеренно не фильтрует по владельцу: проверка
// принадлежности выполняется на уровне бизнес-логики, чтобы отличать
// 404 от 403. Списки, напротив, фильтруются по владельцу уже в запросе.
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) (*entities.Task, error)

	FindByID(ctx context.Context, id int64) (*entities.Task, error)

	ListByUserID(ctx context.Context, userID int64) ([]*entities.Task, error)

	ListPageByUserID(ctx context.Context, userID int64, limit, offset int) ([]*entities.Task, int, error)

	Update(ctx context.Context, task *entities.Task) (*entities.Task, error)

	Delete(ctx context.Context, id int64) error
}
