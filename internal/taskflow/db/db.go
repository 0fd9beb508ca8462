// Package db инициализирует базу данных сервиса трекера задач.
package db

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"taskflow/internal/taskflow/config"
	"taskflow/pkg/db/postgres"
	"taskflow/pkg/logger"
)

// Константы для сообщений логгера.
const (
	LogDBInitializing    = "initializing taskflow database"
	LogDBInitialized     = "taskflow database initialized successfully"
	LogMigrationStarting = "starting database migrations"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations = "failed to apply database migrations"
	ErrDBConnection = "failed to connect to database"
	ErrGetPath      = "failed to get path"
)

// DB представляет соединение с базой данных сервиса.
type DB struct {
	database *postgres.Database
}

// New инициализирует соединение с базой данных, предварительно применив миграции.
func New(ctx context.Context, cfg *config.PostgresConfig) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	migrationsDir := cfg.MigrationsDir
	if !filepath.IsAbs(migrationsDir) {
		absPath, err := filepath.Abs(migrationsDir)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", ErrDBMigrations, ErrGetPath, err)
		}
		migrationsDir = absPath
	}
	migrationsPath := "file://" + migrationsDir

	log.Info(ctx, LogMigrationStarting, zap.String("migrations_path", migrationsPath))
	if err := postgres.MigrateDSN(ctx, cfg.GetConnectionURL(), migrationsPath); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	database, err := postgres.New(ctx, cfg.GetDSN(), cfg.MinConn, cfg.MaxConn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized)

	return &DB{database: database}, nil
}

// Close закрывает соединение с базой данных.
func (db *DB) Close(ctx context.Context) {
	db.database.Close(ctx)
}

// Pool возвращает пул соединений с базой данных.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping проверяет соединение с базой данных.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.database.Ping(ctx); err != nil {
		return fmt.Errorf("pinging taskflow database: %w", err)
	}
	return nil
}
