package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/taskflow/adapters/postgres"
	"taskflow/internal/taskflow/domain/entities"
	"taskflow/pkg/logger"
)

const userColumnsQuery = "SELECT id, full_name, age, email, password_hash, created_at, updated_at"

func testContext(t *testing.T) context.Context {
	t.Helper()
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func testUser() entities.User {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return entities.User{
		ID:           1,
		FullName:     "Alice Smith",
		Age:          30,
		Email:        "alice@example.com",
		PasswordHash: "hashed_password",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func userRows(user entities.User) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "full_name", "age", "email", "password_hash", "created_at", "updated_at"}).
		AddRow(user.ID, user.FullName, user.Age, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
}

func TestUserRepository_FindByEmail(t *testing.T) {
	ctx := testContext(t)
	user := testUser()

	t.Run("Успешное получение пользователя по email", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(userColumnsQuery).
			WithArgs(user.Email).
			WillReturnRows(userRows(user))

		repo := postgres.NewUserRepository(mock)

		found, err := repo.FindByEmail(ctx, user.Email)

		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
		assert.Equal(t, user.Email, found.Email)
		assert.Equal(t, user.PasswordHash, found.PasswordHash)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Пользователь не найден по email", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(userColumnsQuery).
			WithArgs("nonexistent@example.com").
			WillReturnError(pgx.ErrNoRows)

		repo := postgres.NewUserRepository(mock)

		found, err := repo.FindByEmail(ctx, "nonexistent@example.com")

		assert.Nil(t, found)
		assert.ErrorIs(t, err, entities.ErrUserNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ошибка базы данных при поиске по email", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(userColumnsQuery).
			WithArgs(user.Email).
			WillReturnError(errors.New("database connection failed"))

		repo := postgres.NewUserRepository(mock)

		found, err := repo.FindByEmail(ctx, user.Email)

		assert.Nil(t, found)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error querying user by email")

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_FindByID(t *testing.T) {
	ctx := testContext(t)
	user := testUser()

	t.Run("Успешное получение пользователя по ID", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(userColumnsQuery).
			WithArgs(user.ID).
			WillReturnRows(userRows(user))

		repo := postgres.NewUserRepository(mock)

		found, err := repo.FindByID(ctx, user.ID)

		require.NoError(t, err)
		assert.Equal(t, user.Email, found.Email)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Пользователь не найден по ID", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(userColumnsQuery).
			WithArgs(int64(999)).
			WillReturnError(pgx.ErrNoRows)

		repo := postgres.NewUserRepository(mock)

		found, err := repo.FindByID(ctx, 999)

		assert.Nil(t, found)
		assert.ErrorIs(t, err, entities.ErrUserNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Create(t *testing.T) {
	ctx := testContext(t)
	user := testUser()

	t.Run("Успешное создание пользователя", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO users").
			WithArgs(user.FullName, user.Age, user.Email, user.PasswordHash).
			WillReturnRows(userRows(user))

		repo := postgres.NewUserRepository(mock)

		created, err := repo.Create(ctx, &entities.User{
			FullName:     user.FullName,
			Age:          user.Age,
			Email:        user.Email,
			PasswordHash: user.PasswordHash,
		})

		require.NoError(t, err)
		assert.Equal(t, user.ID, created.ID)
		assert.False(t, created.CreatedAt.IsZero())

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Нарушение уникальности email", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO users").
			WithArgs(user.FullName, user.Age, user.Email, user.PasswordHash).
			WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email" (SQLSTATE 23505)`))

		repo := postgres.NewUserRepository(mock)

		created, err := repo.Create(ctx, &entities.User{
			FullName:     user.FullName,
			Age:          user.Age,
			Email:        user.Email,
			PasswordHash: user.PasswordHash,
		})

		assert.Nil(t, created)
		require.Error(t, err)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Update(t *testing.T) {
	ctx := testContext(t)
	user := testUser()

	t.Run("Успешное обновление пользователя", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("UPDATE users").
			WithArgs(user.ID, user.FullName, user.Age, user.Email, user.PasswordHash).
			WillReturnRows(userRows(user))

		repo := postgres.NewUserRepository(mock)

		updated, err := repo.Update(ctx, &user)

		require.NoError(t, err)
		assert.Equal(t, user.ID, updated.ID)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Обновление несуществующего пользователя", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("UPDATE users").
			WithArgs(user.ID, user.FullName, user.Age, user.Email, user.PasswordHash).
			WillReturnError(pgx.ErrNoRows)

		repo := postgres.NewUserRepository(mock)

		updated, err := repo.Update(ctx, &user)

		assert.Nil(t, updated)
		assert.ErrorIs(t, err, entities.ErrUserNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Delete(t *testing.T) {
	ctx := testContext(t)

	t.Run("Успешное удаление пользователя", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM users").
			WithArgs(int64(1)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		repo := postgres.NewUserRepository(mock)

		require.NoError(t, repo.Delete(ctx, 1))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Удаление несуществующего пользователя", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM users").
			WithArgs(int64(999)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		repo := postgres.NewUserRepository(mock)

		assert.ErrorIs(t, repo.Delete(ctx, 999), entities.ErrUserNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_List(t *testing.T) {
	ctx := testContext(t)
	user := testUser()

	t.Run("Страница пользователей с общим количеством", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT COUNT").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(userColumnsQuery).
			WithArgs(8, 0).
			WillReturnRows(userRows(user))

		repo := postgres.NewUserRepository(mock)

		users, total, err := repo.List(ctx, 8, 0)

		require.NoError(t, err)
		assert.Len(t, users, 1)
		assert.Equal(t, 1, total)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Пустая страница не является ошибкой", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT COUNT").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(userColumnsQuery).
			WithArgs(8, 0).
			WillReturnRows(pgxmock.NewRows([]string{"id", "full_name", "age", "email", "password_hash", "created_at", "updated_at"}))

		repo := postgres.NewUserRepository(mock)

		users, total, err := repo.List(ctx, 8, 0)

		require.NoError(t, err)
		assert.Empty(t, users)
		assert.Zero(t, total)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}
