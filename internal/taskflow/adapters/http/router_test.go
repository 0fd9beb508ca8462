package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpServer "taskflow/internal/taskflow/adapters/http"
	"taskflow/internal/taskflow/adapters/http/dto"
	"taskflow/internal/taskflow/domain/entities"
	"taskflow/internal/taskflow/ports/api"
	"taskflow/pkg/apierrors"
)

const (
	validToken    = "valid-token"
	identityEmail = "owner@example.com"
)

type stubTokenService struct{}

func (s *stubTokenService) GenerateToken(_ context.Context, email string) (string, time.Time, error) {
	return validToken, time.Now().Add(time.Hour), nil
}

func (s *stubTokenService) ValidateToken(_ context.Context, token string) (string, error) {
	if token == validToken {
		return identityEmail, nil
	}
	return "", apierrors.NewUnauthorized(apierrors.MsgAuthFailed)
}

type stubAuthUseCase struct {
	result *api.AuthResult
	err    error
}

func (s *stubAuthUseCase) Authenticate(_ context.Context, _, _ string) (*api.AuthResult, error) {
	return s.result, s.err
}

type stubTaskUseCase struct {
	task  *entities.Task
	tasks []*entities.Task
	total int
	err   error
}

func (s *stubTaskUseCase) GetTask(_ context.Context, _ string, _ int64) (*entities.Task, error) {
	return s.task, s.err
}

func (s *stubTaskUseCase) ListTasks(_ context.Context, _ string) ([]*entities.Task, error) {
	return s.tasks, s.err
}

func (s *stubTaskUseCase) ListTasksPage(_ context.Context, _ string, _, _ int) ([]*entities.Task, int, error) {
	return s.tasks, s.total, s.err
}

func (s *stubTaskUseCase) CreateTask(_ context.Context, _ string, _ api.TaskData) (*entities.Task, error) {
	return s.task, s.err
}

func (s *stubTaskUseCase) UpdateTask(_ context.Context, _ string, _ int64, _ api.TaskData) (*entities.Task, error) {
	return s.task, s.err
}

func (s *stubTaskUseCase) DeleteTask(_ context.Context, _ string, _ int64) error {
	return s.err
}

type stubUserUseCase struct {
	user  *entities.User
	users []*entities.User
	total int
	err   error
}

func (s *stubUserUseCase) GetUser(_ context.Context, _ int64) (*entities.User, error) {
	return s.user, s.err
}

func (s *stubUserUseCase) ListUsers(_ context.Context, _, _ int) ([]*entities.User, int, error) {
	return s.users, s.total, s.err
}

func (s *stubUserUseCase) CreateUser(_ context.Context, _ api.UserData) (*entities.User, error) {
	return s.user, s.err
}

func (s *stubUserUseCase) UpdateUser(_ context.Context, _ int64, _ api.UserData) (*entities.User, error) {
	return s.user, s.err
}

func (s *stubUserUseCase) DeleteUser(_ context.Context, _ int64) error {
	return s.err
}

func newTestApp(authUC api.AuthUseCase, taskUC api.TaskUseCase, userUC api.UserUseCase) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: httpServer.NewErrorHandler(),
	})
	httpServer.SetupRouter(app, authUC, taskUC, userUC, &stubTokenService{})
	return app
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var errResp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	return errResp
}

func TestRouter_TasksRequireToken(t *testing.T) {
	app := newTestApp(&stubAuthUseCase{}, &stubTaskUseCase{}, &stubUserUseCase{})

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	errResp := decodeError(t, resp)
	assert.Equal(t, apierrors.MsgAuthFailed, errResp.Message)
	assert.Equal(t, http.StatusUnauthorized, errResp.Status)
	assert.Equal(t, "/tasks", errResp.Path)
	assert.False(t, errResp.Timestamp.IsZero())
}

func TestRouter_ForbiddenTaskShape(t *testing.T) {
	taskUC := &stubTaskUseCase{
		err: apierrors.NewForbidden("You don't have permission to access this task. It belongs to another user."),
	}
	app := newTestApp(&stubAuthUseCase{}, taskUC, &stubUserUseCase{})

	req := httptest.NewRequest(http.MethodGet, "/tasks/42", nil)
	req.Header.Set("Authorization", "Bearer "+validToken)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	errResp := decodeError(t, resp)
	assert.Contains(t, errResp.Message, "belongs to another user")
	assert.Equal(t, "Forbidden", errResp.Error)
}

func TestRouter_NotFoundTaskMessage(t *testing.T) {
	taskUC := &stubTaskUseCase{err: apierrors.NewNotFound("Task", "id", int64(999))}
	app := newTestApp(&stubAuthUseCase{}, taskUC, &stubUserUseCase{})

	req := httptest.NewRequest(http.MethodDelete, "/tasks/999", nil)
	req.Header.Set("Authorization", "Bearer "+validToken)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	errResp := decodeError(t, resp)
	assert.Equal(t, "Task not found with id: '999'", errResp.Message)
}

func TestRouter_CreateTaskSetsLocation(t *testing.T) {
	created := &entities.Task{
		ID:       42,
		UserID:   1,
		Title:    "Buy milk",
		Priority: entities.PriorityHigh,
		Status:   entities.StatusPending,
	}
	app := newTestApp(&stubAuthUseCase{}, &stubTaskUseCase{task: created}, &stubUserUseCase{})

	body, err := json.Marshal(dto.TaskRequest{Title: "Buy milk", Priority: "HIGH"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+validToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "/tasks/42", resp.Header.Get("Location"))

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var taskResp dto.TaskResponse
	require.NoError(t, json.Unmarshal(respBody, &taskResp))
	assert.Equal(t, "PENDING", taskResp.Status)
}

func TestRouter_ListTasksEmptyIs200(t *testing.T) {
	app := newTestApp(&stubAuthUseCase{}, &stubTaskUseCase{tasks: []*entities.Task{}}, &stubUserUseCase{})

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+validToken)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(body))
}

func TestRouter_ValidationErrorsExposed(t *testing.T) {
	userUC := &stubUserUseCase{
		err: apierrors.NewValidation(map[string]string{"email": "Invalid email format"}),
	}
	app := newTestApp(&stubAuthUseCase{}, &stubTaskUseCase{}, userUC)

	body, err := json.Marshal(dto.UserRequest{FullName: "Bob", Age: 30, Email: "bad", Password: "Str0ng!pass"})
	require.NoError(t, err)

	// Регистрация публична: токен не требуется.
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	errResp := decodeError(t, resp)
	assert.Equal(t, apierrors.MsgValidationFailed, errResp.Message)
	assert.Contains(t, errResp.ValidationErrors, "email")
}

func TestRouter_LoginReturnsTokenAndProjection(t *testing.T) {
	authUC := &stubAuthUseCase{
		result: &api.AuthResult{
			Token:     validToken,
			ExpiresAt: time.Now().Add(time.Hour),
			User: &entities.User{
				ID:           1,
				FullName:     "Alice Smith",
				Email:        identityEmail,
				PasswordHash: "secret-hash",
			},
		},
	}
	app := newTestApp(authUC, &stubTaskUseCase{}, &stubUserUseCase{})

	body, err := json.Marshal(dto.AuthRequest{Email: identityEmail, Password: "Str0ng!pass"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(respBody), "secret-hash", "password hash never leaves the API")

	var authResp dto.AuthResponse
	require.NoError(t, json.Unmarshal(respBody, &authResp))
	assert.Equal(t, validToken, authResp.Token)
	assert.Equal(t, "Alice Smith", authResp.User.FullName)
}

func TestRouter_UniformUnauthorizedOnBadCredentials(t *testing.T) {
	authUC := &stubAuthUseCase{err: apierrors.NewUnauthorized(apierrors.MsgInvalidCredentials)}
	app := newTestApp(authUC, &stubTaskUseCase{}, &stubUserUseCase{})

	body, err := json.Marshal(dto.AuthRequest{Email: "nobody@example.com", Password: "wrong"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	errResp := decodeError(t, resp)
	assert.Equal(t, apierrors.MsgInvalidCredentials, errResp.Message)
}

func TestRouter_UnknownRoute(t *testing.T) {
	app := newTestApp(&stubAuthUseCase{}, &stubTaskUseCase{}, &stubUserUseCase{})

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
