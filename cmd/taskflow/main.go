package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"taskflow/internal/taskflow/adapters/cache"
	httpServer "taskflow/internal/taskflow/adapters/http"
	"taskflow/internal/taskflow/adapters/postgres"
	"taskflow/internal/taskflow/adapters/services"
	"taskflow/internal/taskflow/app"
	"taskflow/internal/taskflow/config"
	"taskflow/internal/taskflow/db"
	portscache "taskflow/internal/taskflow/ports/cache"
	"taskflow/pkg/logger"
	"taskflow/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "TASKFLOW_LOGGER_MODE"
	EnvLoggerLevel = "TASKFLOW_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDatabase         = "failed to initialize database"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "taskflow service started"
	LogServiceShutdownDone = "taskflow service shutdown complete"
	LogInitDatabase        = "initializing database"
	LogInitCache           = "initializing cache"
	LogCacheDisabled       = "cache disabled, task lists will be read from storage"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingDatabase     = "closing database connection"
	LogClosingRedis        = "closing Redis connection"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitDatabase)
		database, err := db.New(ctx, &cfg.Postgres)
		if err != nil {
			log.Error(ctx, ErrInitDatabase, zap.Error(err))
			exitCode = 1
			return
		}

		var taskCache portscache.Cache
		if cfg.Redis.Enabled {
			log.Info(ctx, LogInitCache)
			taskCache, err = cache.NewRedisCache(ctx, &cfg.Redis)
			if err != nil {
				log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
				exitCode = 1
				return
			}
		} else {
			log.Info(ctx, LogCacheDisabled)
		}

		log.Info(ctx, LogInitUseCases)
		repoFactory := postgres.NewRepositoryFactory(database.Pool())
		serviceFactory := services.NewServiceFactory(cfg.JWT.SecretKey, cfg.JWT.GetTokenTTL(), cfg.JWT.BCryptCost)

		authUseCase := app.NewAuthUseCase(
			repoFactory.UserRepository(),
			serviceFactory.PasswordService(),
			serviceFactory.TokenService(),
		)
		taskUseCase := app.NewTaskUseCase(
			repoFactory.TaskRepository(),
			repoFactory.UserRepository(),
			taskCache,
		)
		userUseCase := app.NewUserUseCase(
			repoFactory.UserRepository(),
			serviceFactory.PasswordService(),
		)

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
			ErrorHandler: httpServer.NewErrorHandler(),
		})

		httpServer.SetupRouter(fiberApp, authUseCase, taskUseCase, userUseCase, serviceFactory.TokenService())

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			// Остановка HTTP сервера.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return fiberApp.Shutdown()
			},
			// Закрытие Redis соединения.
			func(ctx context.Context) error {
				if taskCache == nil {
					return nil
				}
				log.Info(ctx, LogClosingRedis)
				return taskCache.Close()
			},
			// Закрытие соединения с базой данных.
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingDatabase)
				database.Close(ctx)
				return nil
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
