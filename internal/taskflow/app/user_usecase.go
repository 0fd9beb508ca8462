package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"taskflow/internal/taskflow/domain/entities"
	"taskflow/internal/taskflow/ports/api"
	"taskflow/internal/taskflow/ports/repositories"
	"taskflow/internal/taskflow/ports/services"
	"taskflow/pkg/apierrors"
	"taskflow/pkg/logger"
)

// Константы для логирования операций над пользователями.
const (
	methodGetUser    = "GetUser"
	methodListUsers  = "ListUsers"
	methodCreateUser = "CreateUser"
	methodUpdateUser = "UpdateUser"
	methodDeleteUser = "DeleteUser"

	msgUserNotFound   = "user not found"
	msgEmailConflict  = "email already taken"
	msgUserCreated    = "user created"
	msgUserUpdated    = "user updated"
	msgUserDeleted    = "user deleted"
	msgPasswordRehash = "password changed, rehashing"

	errCtxFindingUserByID = "finding user by id"
	errCtxListingUsers    = "listing users"
	errCtxCheckingEmail   = "checking email uniqueness"
	errCtxHashingPassword = "hashing password"
	errCtxCreatingUser    = "creating user"
	errCtxUpdatingUser    = "updating user"
	errCtxDeletingUser    = "deleting user"
)

// UserUseCaseImpl реализует интерфейс UserUseCase.
type UserUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc services.PasswordService
}

// NewUserUseCase создает новый экземпляр сценариев администрирования пользователей.
func NewUserUseCase(
	userRepo repositories.UserRepository,
	passwordSvc services.PasswordService,
) api.UserUseCase {
	return &UserUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
	}
}

func emailConflictError(email string) *apierrors.APIError {
	return apierrors.NewConflict(fmt.Sprintf("User with email '%s' already exists", email))
}

// GetUser возвращает пользователя по идентификатору.
func (uc *UserUseCaseImpl) GetUser(ctx context.Context, id int64) (*entities.User, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodGetUser),
		zap.Int64("userId", id),
	)

	user, err := uc.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Info(ctx, msgUserNotFound)
			return nil, apierrors.NewNotFound("User", "id", id)
		}
		log.Error(ctx, errCtxFindingUserByID, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUserByID, err)
	}

	return user, nil
}

// ListUsers возвращает страницу пользователей и общее количество.
func (uc *UserUseCaseImpl) ListUsers(ctx context.Context, page, size int) ([]*entities.User, int, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodListUsers),
		zap.Int("page", page),
		zap.Int("size", size),
	)

	page, size = normalizePage(page, size)

	users, total, err := uc.userRepo.List(ctx, size, page*size)
	if err != nil {
		log.Error(ctx, errCtxListingUsers, zap.Error(err))
		return nil, 0, fmt.Errorf("%s: %w", errCtxListingUsers, err)
	}

	return users, total, nil
}

// CreateUser регистрирует нового пользователя. Порядок проверок
// фиксирован: сначала валидация полей, затем уникальность email.
func (uc *UserUseCaseImpl) CreateUser(ctx context.Context, data api.UserData) (*entities.User, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodCreateUser),
		zap.String("email", data.Email),
	)

	if fields := validateUserData(data, true); len(fields) > 0 {
		return nil, apierrors.NewValidation(fields)
	}

	if _, err := uc.userRepo.FindByEmail(ctx, data.Email); err == nil {
		log.Info(ctx, msgEmailConflict)
		return nil, emailConflictError(data.Email)
	} else if !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, errCtxCheckingEmail, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingEmail, err)
	}

	hash, err := uc.passwordSvc.Hash(ctx, data.Password)
	if err != nil {
		log.Error(ctx, errCtxHashingPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	user := &entities.User{
		FullName:     data.FullName,
		Age:          data.Age,
		Email:        data.Email,
		PasswordHash: hash,
	}

	created, err := uc.userRepo.Create(ctx, user)
	if err != nil {
		// Гонка двух одновременных регистраций: уникальный индекс
		// хранилища остается последней линией защиты.
		if apierrors.IsUniqueViolation(err) {
			log.Info(ctx, msgEmailConflict)
			return nil, emailConflictError(data.Email)
		}
		log.Error(ctx, errCtxCreatingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserCreated, zap.Int64("userId", created.ID))
	return created, nil
}

// UpdateUser полностью перезаписывает профиль пользователя. Пустой
// пароль означает "не менять", непустой проходит валидацию и
// хэшируется заново.
func (uc *UserUseCaseImpl) UpdateUser(ctx context.Context, id int64, data api.UserData) (*entities.User, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodUpdateUser),
		zap.Int64("userId", id),
	)

	user, err := uc.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Info(ctx, msgUserNotFound)
			return nil, apierrors.NewNotFound("User", "id", id)
		}
		log.Error(ctx, errCtxFindingUserByID, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUserByID, err)
	}

	if fields := validateUserData(data, false); len(fields) > 0 {
		return nil, apierrors.NewValidation(fields)
	}

	if data.Email != user.Email {
		if found, findErr := uc.userRepo.FindByEmail(ctx, data.Email); findErr == nil && found.ID != id {
			log.Info(ctx, msgEmailConflict)
			return nil, emailConflictError(data.Email)
		} else if findErr != nil && !errors.Is(findErr, entities.ErrUserNotFound) {
			log.Error(ctx, errCtxCheckingEmail, zap.Error(findErr))
			return nil, fmt.Errorf("%s: %w", errCtxCheckingEmail, findErr)
		}
	}

	user.FullName = data.FullName
	user.Age = data.Age
	user.Email = data.Email

	if strings.TrimSpace(data.Password) != "" {
		log.Debug(ctx, msgPasswordRehash)
		hash, hashErr := uc.passwordSvc.Hash(ctx, data.Password)
		if hashErr != nil {
			log.Error(ctx, errCtxHashingPassword, zap.Error(hashErr))
			return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, hashErr)
		}
		user.PasswordHash = hash
	}

	updated, err := uc.userRepo.Update(ctx, user)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, apierrors.NewNotFound("User", "id", id)
		}
		if apierrors.IsUniqueViolation(err) {
			return nil, emailConflictError(data.Email)
		}
		log.Error(ctx, errCtxUpdatingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingUser, err)
	}

	log.Info(ctx, msgUserUpdated)
	return updated, nil
}

// DeleteUser удаляет пользователя. Задачи удаляются каскадом на уровне
// схемы хранилища.
func (uc *UserUseCaseImpl) DeleteUser(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(
		zap.String("method", methodDeleteUser),
		zap.Int64("userId", id),
	)

	if err := uc.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Info(ctx, msgUserNotFound)
			return apierrors.NewNotFound("User", "id", id)
		}
		log.Error(ctx, errCtxDeletingUser, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingUser, err)
	}

	log.Info(ctx, msgUserDeleted)
	return nil
}
