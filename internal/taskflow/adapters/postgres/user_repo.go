// Package postgres реализует хранилища поверх PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"taskflow/internal/taskflow/domain/entities"
	"taskflow/internal/taskflow/ports/repositories"
	"taskflow/pkg/logger"
)

// PgxPoolInterface описывает используемое подмножество pgxpool.Pool,
// чтобы репозитории можно было тестировать через pgxmock.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// UserRepository реализует интерфейс repositories.UserRepository для работы с Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

// FindByID находит пользователя по ID.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByID"))

	query := `
        SELECT id, full_name, age, email, password_hash, created_at, updated_at
        FROM users
        WHERE id = $1
    `

	var user entities.User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.FullName,
		&user.Age,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.Int64("id", id))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by id", zap.Error(err))
		return nil, fmt.Errorf("error querying user by id: %w", err)
	}

	return &user, nil
}

// FindByEmail находит пользователя по email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByEmail"))

	query := `
        SELECT id, full_name, age, email, password_hash, created_at, updated_at
        FROM users
        WHERE email = $1
    `

	var user entities.User
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.FullName,
		&user.Age,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("email", email))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by email", zap.Error(err))
		return nil, fmt.Errorf("error querying user by email: %w", err)
	}

	return &user, nil
}

// List возвращает страницу пользователей и общее количество записей.
// Пустой результат не является ошибкой.
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*entities.User, int, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "List"))

	var totalCount int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&totalCount)
	if err != nil {
		log.Error(ctx, "error counting users", zap.Error(err))
		return nil, 0, fmt.Errorf("error counting users: %w", err)
	}

	query := `
        SELECT id, full_name, age, email, password_hash, created_at, updated_at
        FROM users
        ORDER BY id
        LIMIT $1 OFFSET $2
    `

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		log.Error(ctx, "error listing users", zap.Error(err))
		return nil, 0, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	users := make([]*entities.User, 0)
	for rows.Next() {
		var user entities.User
		err := rows.Scan(
			&user.ID,
			&user.FullName,
			&user.Age,
			&user.Email,
			&user.PasswordHash,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			log.Error(ctx, "error scanning user", zap.Error(err))
			return nil, 0, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return users, totalCount, nil
}

// Create создает нового пользователя. Временные метки выставляет БД.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	query := `
        INSERT INTO users (full_name, age, email, password_hash)
        VALUES ($1, $2, $3, $4)
        RETURNING id, full_name, age, email, password_hash, created_at, updated_at
    `

	var createdUser entities.User
	err := r.pool.QueryRow(ctx, query,
		user.FullName,
		user.Age,
		user.Email,
		user.PasswordHash,
	).Scan(
		&createdUser.ID,
		&createdUser.FullName,
		&createdUser.Age,
		&createdUser.Email,
		&createdUser.PasswordHash,
		&createdUser.CreatedAt,
		&createdUser.UpdatedAt,
	)

	if err != nil {
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return &createdUser, nil
}

// Update обновляет информацию о пользователе одним запросом,
// попутно переставляя updated_at.
func (r *UserRepository) Update(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Update"))

	query := `
        UPDATE users
        SET full_name = $2, age = $3, email = $4, password_hash = $5, updated_at = now()
        WHERE id = $1
        RETURNING id, full_name, age, email, password_hash, created_at, updated_at
    `

	var updatedUser entities.User
	err := r.pool.QueryRow(ctx, query,
		user.ID,
		user.FullName,
		user.Age,
		user.Email,
		user.PasswordHash,
	).Scan(
		&updatedUser.ID,
		&updatedUser.FullName,
		&updatedUser.Age,
		&updatedUser.Email,
		&updatedUser.PasswordHash,
		&updatedUser.CreatedAt,
		&updatedUser.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found for update", zap.Int64("id", user.ID))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error updating user", zap.Error(err))
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	return &updatedUser, nil
}

// Delete удаляет пользователя по ID. Задачи пользователя удаляются
// каскадно внешним ключом.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Delete"))

	query := `
        DELETE FROM users
        WHERE id = $1
    `

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		log.Error(ctx, "error deleting user", zap.Error(err))
		return fmt.Errorf("error deleting user: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "user not found for deletion", zap.Int64("id", id))
		return entities.ErrUserNotFound
	}

	return nil
}
