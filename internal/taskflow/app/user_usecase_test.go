package app_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskflow/internal/taskflow/app"
	"taskflow/internal/taskflow/domain/entities"
	"taskflow/internal/taskflow/ports/api"
)

func validUserData() api.UserData {
	return api.UserData{
		FullName: "Bob Stone",
		Age:      35,
		Email:    "bob@example.com",
		Password: "Str0ng!pass",
	}
}

func storedUser() *entities.User {
	return &entities.User{
		ID:           7,
		FullName:     "Bob Stone",
		Age:          35,
		Email:        "bob@example.com",
		PasswordHash: "old_hash",
	}
}

func TestCreateUser(t *testing.T) {
	t.Run("success - password hashed before persisting", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)

		userRepo.On("FindByEmail", mock.Anything, "bob@example.com").
			Return(nil, entities.ErrUserNotFound).Once()
		passwordSvc.On("Hash", mock.Anything, "Str0ng!pass").Return("new_hash", nil).Once()
		userRepo.On("Create", mock.Anything, mock.MatchedBy(func(user *entities.User) bool {
			return user.PasswordHash == "new_hash" && user.Email == "bob@example.com"
		})).Return(storedUser(), nil).Once()

		uc := app.NewUserUseCase(userRepo, passwordSvc)

		user, err := uc.CreateUser(context.Background(), validUserData())

		require.NoError(t, err)
		assert.Equal(t, int64(7), user.ID)
		userRepo.AssertExpectations(t)
		passwordSvc.AssertExpectations(t)
	})

	t.Run("error - duplicate email is 409 regardless of other fields", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)

		userRepo.On("FindByEmail", mock.Anything, "bob@example.com").Return(storedUser(), nil).Once()

		uc := app.NewUserUseCase(userRepo, passwordSvc)

		data := validUserData()
		data.FullName = "Completely Different"
		data.Age = 99

		_, err := uc.CreateUser(context.Background(), data)

		apiErr := requireAPIStatus(t, err, http.StatusConflict)
		assert.Contains(t, apiErr.Message, "bob@example.com")
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("error - invalid email format gets field message", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)

		uc := app.NewUserUseCase(userRepo, passwordSvc)

		data := validUserData()
		data.Email = "bad"

		_, err := uc.CreateUser(context.Background(), data)

		apiErr := requireAPIStatus(t, err, http.StatusBadRequest)
		assert.Contains(t, apiErr.ValidationErrors, "email")
	})

	t.Run("error - weak password reports first missing class", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)

		uc := app.NewUserUseCase(userRepo, passwordSvc)

		data := validUserData()
		data.Password = "alllowercase1!"

		_, err := uc.CreateUser(context.Background(), data)

		apiErr := requireAPIStatus(t, err, http.StatusBadRequest)
		assert.Contains(t, apiErr.ValidationErrors, "password")
	})

	t.Run("error - full name with digits rejected", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)

		uc := app.NewUserUseCase(userRepo, passwordSvc)

		data := validUserData()
		data.FullName = "R2D2"

		_, err := uc.CreateUser(context.Background(), data)

		apiErr := requireAPIStatus(t, err, http.StatusBadRequest)
		assert.Contains(t, apiErr.ValidationErrors, "fullName")
	})
}

func TestUpdateUser(t *testing.T) {
	t.Run("success - blank password preserves old hash", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)

		userRepo.On("FindByID", mock.Anything, int64(7)).Return(storedUser(), nil).Once()
		userRepo.On("Update", mock.Anything, mock.MatchedBy(func(user *entities.User) bool {
			return user.PasswordHash == "old_hash" && user.FullName == "Robert Stone"
		})).Return(storedUser(), nil).Once()

		uc := app.NewUserUseCase(userRepo, passwordSvc)

		data := validUserData()
		data.FullName = "Robert Stone"
		data.Password = ""

		_, err := uc.UpdateUser(context.Background(), 7, data)

		require.NoError(t, err)
		passwordSvc.AssertNotCalled(t, "Hash", mock.Anything, mock.Anything)
	})

	t.Run("success - new password re-hashed", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)

		userRepo.On("FindByID", mock.Anything, int64(7)).Return(storedUser(), nil).Once()
		passwordSvc.On("Hash", mock.Anything, "N3w!passW").Return("fresh_hash", nil).Once()
		userRepo.On("Update", mock.Anything, mock.MatchedBy(func(user *entities.User) bool {
			return user.PasswordHash == "fresh_hash"
		})).Return(storedUser(), nil).Once()

		uc := app.NewUserUseCase(userRepo, passwordSvc)

		data := validUserData()
		data.Password = "N3w!passW"

		_, err := uc.UpdateUser(context.Background(), 7, data)

		require.NoError(t, err)
		passwordSvc.AssertExpectations(t)
	})

	t.Run("error - email change to another user's email is 409", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)

		other := storedUser()
		other.ID = 8
		other.Email = "taken@example.com"

		userRepo.On("FindByID", mock.Anything, int64(7)).Return(storedUser(), nil).Once()
		userRepo.On("FindByEmail", mock.Anything, "taken@example.com").Return(other, nil).Once()

		uc := app.NewUserUseCase(userRepo, passwordSvc)

		data := validUserData()
		data.Email = "taken@example.com"
		data.Password = ""

		_, err := uc.UpdateUser(context.Background(), 7, data)

		requireAPIStatus(t, err, http.StatusConflict)
		userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("error - absent user is 404", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)

		userRepo.On("FindByID", mock.Anything, int64(100)).Return(nil, entities.ErrUserNotFound).Once()

		uc := app.NewUserUseCase(userRepo, passwordSvc)

		_, err := uc.UpdateUser(context.Background(), 100, validUserData())

		apiErr := requireAPIStatus(t, err, http.StatusNotFound)
		assert.Contains(t, apiErr.Message, "User")
	})
}

func TestGetUser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)

		userRepo.On("FindByID", mock.Anything, int64(7)).Return(storedUser(), nil).Once()

		uc := app.NewUserUseCase(userRepo, passwordSvc)

		user, err := uc.GetUser(context.Background(), 7)

		require.NoError(t, err)
		assert.Equal(t, "bob@example.com", user.Email)
	})

	t.Run("error - absent user is 404 with id in message", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)

		userRepo.On("FindByID", mock.Anything, int64(100)).Return(nil, entities.ErrUserNotFound).Once()

		uc := app.NewUserUseCase(userRepo, passwordSvc)

		_, err := uc.GetUser(context.Background(), 100)

		apiErr := requireAPIStatus(t, err, http.StatusNotFound)
		assert.Contains(t, apiErr.Message, "100")
	})
}

func TestListUsers(t *testing.T) {
	t.Run("success - empty page is 200, never an error", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)

		userRepo.On("List", mock.Anything, 8, 0).Return([]*entities.User{}, 0, nil).Once()

		uc := app.NewUserUseCase(userRepo, passwordSvc)

		users, total, err := uc.ListUsers(context.Background(), 0, 0)

		require.NoError(t, err)
		assert.Empty(t, users)
		assert.Zero(t, total)
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)

		userRepo.On("Delete", mock.Anything, int64(7)).Return(nil).Once()

		uc := app.NewUserUseCase(userRepo, passwordSvc)

		require.NoError(t, uc.DeleteUser(context.Background(), 7))
	})

	t.Run("error - absent user is 404", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)

		userRepo.On("Delete", mock.Anything, int64(100)).Return(entities.ErrUserNotFound).Once()

		uc := app.NewUserUseCase(userRepo, passwordSvc)

		err := uc.DeleteUser(context.Background(), 100)

		requireAPIStatus(t, err, http.StatusNotFound)
	})
}
