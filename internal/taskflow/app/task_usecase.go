package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"taskflow/internal/taskflow/domain/entities"
	"taskflow/internal/taskflow/ports/api"
	"taskflow/internal/taskflow/ports/cache"
	"taskflow/internal/taskflow/ports/repositories"
	"taskflow/pkg/apierrors"
	"taskflow/pkg/logger"
)

// Константы для логирования операций над задачами.
const (
	methodGetTask       = "GetTask"
	methodListTasks     = "ListTasks"
	methodListTasksPage = "ListTasksPage"
	methodCreateTask    = "CreateTask"
	methodUpdateTask    = "UpdateTask"
	methodDeleteTask    = "DeleteTask"

	msgTaskNotFound      = "task not found"
	msgTaskForbidden     = "task belongs to another user"
	msgTaskCreated       = "task created"
	msgTaskUpdated       = "task updated"
	msgTaskDeleted       = "task deleted"
	msgTaskListFromCache = "task list served from cache"

	errCtxResolvingOwner = "resolving task owner"
	errCtxFindingTask    = "finding task"
	errCtxListingTasks   = "listing tasks"
	errCtxCreatingTask   = "creating task"
	errCtxUpdatingTask   = "updating task"
	errCtxDeletingTask   = "deleting task"

	warnCacheRead       = "failed to read task list cache"
	warnCacheWrite      = "failed to write task list cache"
	warnCacheInvalidate = "failed to invalidate task list cache"
)

// Сообщение об отказе в доступе к чужой задаче.
const msgForbiddenTask = "You don't have permission to access this task. It belongs to another user."

// Параметры постраничной выдачи по умолчанию.
const (
	defaultPageSize = 8
	taskListTTL     = 5 * time.Minute
)

// TaskUseCaseImpl реализует интерфейс TaskUseCase. Кэш может быть nil,
// в этом случае списки всегда читаются из хранилища.
type TaskUseCaseImpl struct {
	taskRepo repositories.TaskRepository
	userRepo repositories.UserRepository
	cache    cache.Cache
}

// NewTaskUseCase создает новый экземпляр сценариев работы с задачами.
func NewTaskUseCase(
	taskRepo repositories.TaskRepository,
	userRepo repositories.UserRepository,
	taskCache cache.Cache,
) api.TaskUseCase {
	return &TaskUseCaseImpl{
		taskRepo: taskRepo,
		userRepo: userRepo,
		cache:    taskCache,
	}
}

// resolveUser находит пользователя по email из токена. Удаленный после
// выдачи токена пользователь дает 404, а не 401: токен валиден, но
// субъекта больше не существует.
func (uc *TaskUseCaseImpl) resolveUser(ctx context.Context, identity string) (*entities.User, error) {
	user, err := uc.userRepo.FindByEmail(ctx, identity)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, apierrors.NewNotFound("User", "email", identity)
		}
		return nil, fmt.Errorf("%s: %w", errCtxResolvingOwner, err)
	}
	return user, nil
}

// findOwnedTask загружает задачу без фильтра по владельцу и затем
// проверяет принадлежность. Чужая существующая задача дает 403,
// несуществующая - 404.
func (uc *TaskUseCaseImpl) findOwnedTask(ctx context.Context, log *logger.Logger, userID, id int64) (*entities.Task, error) {
	task, err := uc.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			log.Info(ctx, msgTaskNotFound)
			return nil, apierrors.NewNotFound("Task", "id", id)
		}
		log.Error(ctx, errCtxFindingTask, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingTask, err)
	}

	if task.UserID != userID {
		log.Warn(ctx, msgTaskForbidden, zap.Int64("ownerId", task.UserID))
		return nil, apierrors.NewForbidden(msgForbiddenTask)
	}

	return task, nil
}

func taskListCacheKey(userID int64) string {
	return fmt.Sprintf("tasks:list:%d", userID)
}

// invalidateTaskList сбрасывает кэшированный список задач пользователя.
// Ошибка кэша не фатальна: следующее чтение пойдет в хранилище.
func (uc *TaskUseCaseImpl) invalidateTaskList(ctx context.Context, userID int64) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Delete(ctx, taskListCacheKey(userID)); err != nil {
		logger.Log(ctx).Warn(ctx, warnCacheInvalidate, zap.Error(err))
	}
}

// GetTask возвращает задачу по идентификатору с проверкой владельца.
func (uc *TaskUseCaseImpl) GetTask(ctx context.Context, identity string, id int64) (*entities.Task, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodGetTask),
		zap.Int64("taskId", id),
	)

	user, err := uc.resolveUser(ctx, identity)
	if err != nil {
		return nil, err
	}

	return uc.findOwnedTask(ctx, log, user.ID, id)
}

// ListTasks возвращает все задачи пользователя. Пустой список -
// нормальный результат, а не ошибка.
func (uc *TaskUseCaseImpl) ListTasks(ctx context.Context, identity string) ([]*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListTasks))

	user, err := uc.resolveUser(ctx, identity)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		cached, cacheErr := uc.cache.Get(ctx, taskListCacheKey(user.ID))
		if cacheErr != nil {
			log.Warn(ctx, warnCacheRead, zap.Error(cacheErr))
		} else if cached != "" {
			var tasks []*entities.Task
			if unmarshalErr := json.Unmarshal([]byte(cached), &tasks); unmarshalErr == nil {
				log.Debug(ctx, msgTaskListFromCache, zap.Int("count", len(tasks)))
				return tasks, nil
			}
		}
	}

	tasks, err := uc.taskRepo.ListByUserID(ctx, user.ID)
	if err != nil {
		log.Error(ctx, errCtxListingTasks, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingTasks, err)
	}

	if uc.cache != nil {
		if payload, marshalErr := json.Marshal(tasks); marshalErr == nil {
			if setErr := uc.cache.Set(ctx, taskListCacheKey(user.ID), string(payload), taskListTTL); setErr != nil {
				log.Warn(ctx, warnCacheWrite, zap.Error(setErr))
			}
		}
	}

	return tasks, nil
}

// ListTasksPage возвращает страницу задач пользователя и общее
// количество. Отрицательный номер страницы приводится к нулю,
// неположительный размер - к размеру по умолчанию.
func (uc *TaskUseCaseImpl) ListTasksPage(ctx context.Context, identity string, page, size int) ([]*entities.Task, int, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodListTasksPage),
		zap.Int("page", page),
		zap.Int("size", size),
	)

	user, err := uc.resolveUser(ctx, identity)
	if err != nil {
		return nil, 0, err
	}

	page, size = normalizePage(page, size)

	tasks, total, err := uc.taskRepo.ListPageByUserID(ctx, user.ID, size, page*size)
	if err != nil {
		log.Error(ctx, errCtxListingTasks, zap.Error(err))
		return nil, 0, fmt.Errorf("%s: %w", errCtxListingTasks, err)
	}

	return tasks, total, nil
}

// CreateTask создает новую задачу для аутентифицированного пользователя.
func (uc *TaskUseCaseImpl) CreateTask(ctx context.Context, identity string, data api.TaskData) (*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateTask))

	user, err := uc.resolveUser(ctx, identity)
	if err != nil {
		return nil, err
	}

	priority, status, fields := validateTaskData(data, time.Now())
	if len(fields) > 0 {
		return nil, apierrors.NewValidation(fields)
	}

	task := entities.NewTask(user.ID, data.Title, data.Description, data.DueDate, priority, status)

	created, err := uc.taskRepo.Create(ctx, task)
	if err != nil {
		log.Error(ctx, errCtxCreatingTask, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingTask, err)
	}

	uc.invalidateTaskList(ctx, user.ID)

	log.Info(ctx, msgTaskCreated, zap.Int64("taskId", created.ID))
	return created, nil
}

// UpdateTask полностью перезаписывает задачу. Частичных обновлений нет:
// тело запроса описывает новое состояние целиком.
func (uc *TaskUseCaseImpl) UpdateTask(ctx context.Context, identity string, id int64, data api.TaskData) (*entities.Task, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodUpdateTask),
		zap.Int64("taskId", id),
	)

	user, err := uc.resolveUser(ctx, identity)
	if err != nil {
		return nil, err
	}

	task, err := uc.findOwnedTask(ctx, log, user.ID, id)
	if err != nil {
		return nil, err
	}

	priority, status, fields := validateTaskData(data, time.Now())
	if len(fields) > 0 {
		return nil, apierrors.NewValidation(fields)
	}

	task.Title = data.Title
	task.Description = data.Description
	task.DueDate = data.DueDate
	task.Priority = priority
	task.Status = status

	updated, err := uc.taskRepo.Update(ctx, task)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return nil, apierrors.NewNotFound("Task", "id", id)
		}
		log.Error(ctx, errCtxUpdatingTask, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingTask, err)
	}

	uc.invalidateTaskList(ctx, user.ID)

	log.Info(ctx, msgTaskUpdated)
	return updated, nil
}

// DeleteTask удаляет задачу с проверкой владельца.
func (uc *TaskUseCaseImpl) DeleteTask(ctx context.Context, identity string, id int64) error {
	log := logger.Log(ctx).With(
		zap.String("method", methodDeleteTask),
		zap.Int64("taskId", id),
	)

	user, err := uc.resolveUser(ctx, identity)
	if err != nil {
		return err
	}

	if _, err := uc.findOwnedTask(ctx, log, user.ID, id); err != nil {
		return err
	}

	if err := uc.taskRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return apierrors.NewNotFound("Task", "id", id)
		}
		log.Error(ctx, errCtxDeletingTask, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingTask, err)
	}

	uc.invalidateTaskList(ctx, user.ID)

	log.Info(ctx, msgTaskDeleted)
	return nil
}

// normalizePage приводит параметры страницы к допустимым значениям.
func normalizePage(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}
	return page, size
}
