package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"taskflow/internal/taskflow/domain/entities"
	"taskflow/internal/taskflow/ports/repositories"
	"taskflow/pkg/logger"
)

// TaskRepository реализует интерфейс repositories.TaskRepository.
type TaskRepository struct {
	pool PgxPoolInterface
}

// NewTaskRepository создает новый репозиторий задач.
func NewTaskRepository(pool PgxPoolInterface) repositories.TaskRepository {
	return &TaskRepository{pool: pool}
}

// Create сохраняет новую задачу. created_at/updated_at и статус
// по умолчанию выставляются БД.
func (r *TaskRepository) Create(ctx context.Context, task *entities.Task) (*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("repository", "task"), zap.String("method", "Create"))
	log.Debug(ctx, "creating new task", zap.Int64("userID", task.UserID))

	query := `
        INSERT INTO tasks (user_id, title, description, due_date, priority, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, user_id, title, description, due_date, priority, status, created_at, updated_at
    `

	var created entities.Task
	err := r.pool.QueryRow(ctx, query,
		task.UserID,
		task.Title,
		task.Description,
		task.DueDate,
		task.Priority,
		task.Status,
	).Scan(
		&created.ID,
		&created.UserID,
		&created.Title,
		&created.Description,
		&created.DueDate,
		&created.Priority,
		&created.Status,
		&created.CreatedAt,
		&created.UpdatedAt,
	)

	if err != nil {
		log.Error(ctx, "error creating task", zap.Error(err))
		return nil, fmt.Errorf("error creating task: %w", err)
	}

	log.Debug(ctx, "task created", zap.Int64("taskID", created.ID))
	return &created, nil
}

// FindByID находит задачу по ID без фильтра по владельцу:
// принадлежность проверяет бизнес-логика.
func (r *TaskRepository) FindByID(ctx context.Context, id int64) (*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("repository", "task"), zap.String("method", "FindByID"))

	query := `
        SELECT id, user_id, title, description, due_date, priority, status, created_at, updated_at
        FROM tasks
        WHERE id = $1
    `

	var task entities.Task
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.DueDate,
		&task.Priority,
		&task.Status,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "task not found", zap.Int64("id", id))
			return nil, entities.ErrTaskNotFound
		}
		log.Error(ctx, "error finding task by id", zap.Error(err))
		return nil, fmt.Errorf("error querying task by id: %w", err)
	}

	return &task, nil
}

// ListByUserID возвращает все задачи пользователя, новые первыми.
func (r *TaskRepository) ListByUserID(ctx context.Context, userID int64) ([]*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("repository", "task"), zap.String("method", "ListByUserID"))

	query := `
        SELECT id, user_id, title, description, due_date, priority, status, created_at, updated_at
        FROM tasks
        WHERE user_id = $1
        ORDER BY created_at DESC
    `

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		log.Error(ctx, "error listing tasks", zap.Error(err))
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	defer rows.Close()

	return scanTasks(ctx, rows)
}

// ListPageByUserID возвращает страницу задач пользователя и общее
// количество его задач.
func (r *TaskRepository) ListPageByUserID(ctx context.Context, userID int64, limit, offset int) ([]*entities.Task, int, error) {
	log := logger.Log(ctx).With(zap.String("repository", "task"), zap.String("method", "ListPageByUserID"))

	var totalCount int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tasks WHERE user_id = $1`, userID).Scan(&totalCount)
	if err != nil {
		log.Error(ctx, "error counting tasks", zap.Error(err))
		return nil, 0, fmt.Errorf("error counting tasks: %w", err)
	}

	query := `
        SELECT id, user_id, title, description, due_date, priority, status, created_at, updated_at
        FROM tasks
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3
    `

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		log.Error(ctx, "error listing tasks page", zap.Error(err))
		return nil, 0, fmt.Errorf("error listing tasks page: %w", err)
	}
	defer rows.Close()

	tasks, err := scanTasks(ctx, rows)
	if err != nil {
		return nil, 0, err
	}

	return tasks, totalCount, nil
}

// Update перезаписывает поля задачи одним запросом и переставляет
// updated_at; created_at не затрагивается.
func (r *TaskRepository) Update(ctx context.Context, task *entities.Task) (*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("repository", "task"), zap.String("method", "Update"))
	log.Debug(ctx, "updating task", zap.Int64("taskID", task.ID))

	query := `
        UPDATE tasks
        SET title = $2, description = $3, due_date = $4, priority = $5, status = $6, updated_at = now()
        WHERE id = $1
        RETURNING id, user_id, title, description, due_date, priority, status, created_at, updated_at
    `

	var updated entities.Task
	err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.DueDate,
		task.Priority,
		task.Status,
	).Scan(
		&updated.ID,
		&updated.UserID,
		&updated.Title,
		&updated.Description,
		&updated.DueDate,
		&updated.Priority,
		&updated.Status,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "task not found for update", zap.Int64("id", task.ID))
			return nil, entities.ErrTaskNotFound
		}
		log.Error(ctx, "error updating task", zap.Error(err))
		return nil, fmt.Errorf("error updating task: %w", err)
	}

	return &updated, nil
}

// Delete удаляет задачу. Отсутствующая задача - ошибка, не тихий успех.
func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("repository", "task"), zap.String("method", "Delete"))
	log.Debug(ctx, "deleting task", zap.Int64("taskID", id))

	result, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error(ctx, "error deleting task", zap.Error(err))
		return fmt.Errorf("error deleting task: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "task not found for deletion", zap.Int64("id", id))
		return entities.ErrTaskNotFound
	}

	return nil
}

func scanTasks(ctx context.Context, rows pgx.Rows) ([]*entities.Task, error) {
	log := logger.Log(ctx)

	tasks := make([]*entities.Task, 0)
	for rows.Next() {
		var task entities.Task
		err := rows.Scan(
			&task.ID,
			&task.UserID,
			&task.Title,
			&task.Description,
			&task.DueDate,
			&task.Priority,
			&task.Status,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			log.Error(ctx, "error scanning task", zap.Error(err))
			return nil, fmt.Errorf("error scanning task: %w", err)
		}
		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return tasks, nil
}
