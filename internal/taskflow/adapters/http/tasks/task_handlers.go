// Package tasks содержит HTTP-обработчики для управления задачами.
package tasks

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"taskflow/internal/taskflow/adapters/http/dto"
	"taskflow/internal/taskflow/adapters/http/middleware"
	"taskflow/internal/taskflow/ports/api"
	"taskflow/pkg/apierrors"
	"taskflow/pkg/logger"
)

// Константы для логирования.
const (
	logHandlerGetTask    = "handling get task request"
	logHandlerListTasks  = "handling list tasks request"
	logHandlerPagedTasks = "handling paged tasks request"
	logHandlerCreateTask = "handling create task request"
	logHandlerUpdateTask = "handling update task request"
	logHandlerDeleteTask = "handling delete task request"

	errMsgInvalidTaskID      = "Invalid task id"
	errMsgInvalidRequestBody = "invalid request body"
)

// Handler обработчик HTTP-запросов для работы с задачами.
type Handler struct {
	taskUseCase api.TaskUseCase
}

// NewHandler создает новый экземпляр обработчика задач.
func NewHandler(taskUseCase api.TaskUseCase) *Handler {
	return &Handler{taskUseCase: taskUseCase}
}

func parseTaskID(ctx fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(ctx.Params("task_id"), 10, 64)
	if err != nil {
		return 0, apierrors.NewBadRequest(errMsgInvalidTaskID)
	}
	return id, nil
}

// GetTask обрабатывает запрос на получение задачи по ID.
func (h *Handler) GetTask(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetTask"))
	log.Debug(requestCtx, logHandlerGetTask)

	id, err := parseTaskID(ctx)
	if err != nil {
		return err
	}

	task, err := h.taskUseCase.GetTask(requestCtx, middleware.Identity(ctx), id)
	if err != nil {
		return err
	}

	if err := ctx.JSON(dto.NewTaskResponse(task)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ListTasks обрабатывает запрос на получение всех задач пользователя.
func (h *Handler) ListTasks(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ListTasks"))
	log.Debug(requestCtx, logHandlerListTasks)

	taskList, err := h.taskUseCase.ListTasks(requestCtx, middleware.Identity(ctx))
	if err != nil {
		return err
	}

	if err := ctx.JSON(dto.NewTaskResponses(taskList)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ListTasksPaged обрабатывает запрос на постраничный список задач.
// Некорректные параметры страницы молча приводятся к значениям
// по умолчанию, как и отрицательные.
func (h *Handler) ListTasksPaged(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ListTasksPaged"))
	log.Debug(requestCtx, logHandlerPagedTasks)

	page, size := pageParams(ctx)

	taskList, total, err := h.taskUseCase.ListTasksPage(requestCtx, middleware.Identity(ctx), page, size)
	if err != nil {
		return err
	}

	if err := ctx.JSON(dto.NewTaskPageResponse(taskList, total, page, size)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// CreateTask обрабатывает запрос на создание новой задачи.
func (h *Handler) CreateTask(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateTask"))
	log.Debug(requestCtx, logHandlerCreateTask)

	var req dto.TaskRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, errMsgInvalidRequestBody, zap.Error(err))
		return apierrors.NewBadRequest(errMsgInvalidRequestBody)
	}

	task, err := h.taskUseCase.CreateTask(requestCtx, middleware.Identity(ctx), req.ToTaskData())
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderLocation, fmt.Sprintf("/tasks/%d", task.ID))
	if err := ctx.Status(fiber.StatusCreated).JSON(dto.NewTaskResponse(task)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// UpdateTask обрабатывает запрос на полное обновление задачи.
func (h *Handler) UpdateTask(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UpdateTask"))
	log.Debug(requestCtx, logHandlerUpdateTask)

	id, err := parseTaskID(ctx)
	if err != nil {
		return err
	}

	var req dto.TaskRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, errMsgInvalidRequestBody, zap.Error(err))
		return apierrors.NewBadRequest(errMsgInvalidRequestBody)
	}

	task, err := h.taskUseCase.UpdateTask(requestCtx, middleware.Identity(ctx), id, req.ToTaskData())
	if err != nil {
		return err
	}

	if err := ctx.JSON(dto.NewTaskResponse(task)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// DeleteTask обрабатывает запрос на удаление задачи.
func (h *Handler) DeleteTask(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DeleteTask"))
	log.Debug(requestCtx, logHandlerDeleteTask)

	id, err := parseTaskID(ctx)
	if err != nil {
		return err
	}

	if err := h.taskUseCase.DeleteTask(requestCtx, middleware.Identity(ctx), id); err != nil {
		return err
	}

	if err := ctx.SendStatus(fiber.StatusNoContent); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// pageParams читает параметры страницы из строки запроса. Нечисловые
// и отрицательные значения трактуются как значения по умолчанию.
func pageParams(ctx fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(ctx.Query("page", "0"))
	if err != nil || page < 0 {
		page = 0
	}
	size, err := strconv.Atoi(ctx.Query("size", "8"))
	if err != nil || size <= 0 {
		size = 8
	}
	return page, size
}
