// Package users содержит HTTP-обработчики администрирования пользователей.
package users

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
	logHandlerGetUser    = "handling get user request"
	logHandlerListUsers  = "handling list users request"
	logHandlerCreateUser = "handling create user request"
	logHandlerUpdateUser = "handling update user request"
	logHandlerDeleteUser = "handling delete user request"

	errMsgInvalidUserID      = "Invalid user id"
	errMsgInvalidRequestBody = "invalid request body"
)

// Handler обработчик HTTP-запросов для работы с пользователями.
type Handler struct {
	userUseCase api.UserUseCase
}

// NewHandler создает новый экземпляр обработчика пользователей.
func NewHandler(userUseCase api.UserUseCase) *Handler {
	return &Handler{userUseCase: userUseCase}
}

func parseUserID(ctx fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(ctx.Params("user_id"), 10, 64)
	if err != nil {
		return 0, apierrors.NewBadRequest(errMsgInvalidUserID)
	}
	return id, nil
}

// GetUser обрабатывает запрос на получение пользователя по ID.
func (h *Handler) GetUser(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetUser"))
	log.Debug(requestCtx, logHandlerGetUser)

	id, err := parseUserID(ctx)
	if err != nil {
		return err
	}

	user, err := h.userUseCase.GetUser(requestCtx, id)
	if err != nil {
		return err
	}

	if err := ctx.JSON(dto.NewUserResponse(user)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ListUsers обрабатывает запрос на постраничный список пользователей.
func (h *Handler) ListUsers(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ListUsers"))
	log.Debug(requestCtx, logHandlerListUsers)

	page, size := pageParams(ctx)

	userList, total, err := h.userUseCase.ListUsers(requestCtx, page, size)
	if err != nil {
		return err
	}

	if err := ctx.JSON(dto.NewUserPageResponse(userList, total, page, size)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// CreateUser обрабатывает запрос на регистрацию пользователя.
func (h *Handler) CreateUser(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateUser"))
	log.Debug(requestCtx, logHandlerCreateUser)

	var req dto.UserRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, errMsgInvalidRequestBody, zap.Error(err))
		return apierrors.NewBadRequest(errMsgInvalidRequestBody)
	}

	user, err := h.userUseCase.CreateUser(requestCtx, req.ToUserData())
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderLocation, fmt.Sprintf("/users/%d", user.ID))
	if err := ctx.Status(fiber.StatusCreated).JSON(dto.NewUserResponse(user)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// UpdateUser обрабатывает запрос на полное обновление профиля.
func (h *Handler) UpdateUser(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UpdateUser"))
	log.Debug(requestCtx, logHandlerUpdateUser)

	id, err := parseUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.UserRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, errMsgInvalidRequestBody, zap.Error(err))
		return apierrors.NewBadRequest(errMsgInvalidRequestBody)
	}

	user, err := h.userUseCase.UpdateUser(requestCtx, id, req.ToUserData())
	if err != nil {
		return err
	}

	if err := ctx.JSON(dto.NewUserResponse(user)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// DeleteUser обрабатывает запрос на удаление пользователя.
func (h *Handler) DeleteUser(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DeleteUser"))
	log.Debug(requestCtx, logHandlerDeleteUser)

	id, err := parseUserID(ctx)
	if err != nil {
		return err
	}

	if err := h.userUseCase.DeleteUser(requestCtx, id); err != nil {
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
