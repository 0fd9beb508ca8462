// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"taskflow/internal/taskflow/adapters/http/auth"
	"taskflow/internal/taskflow/adapters/http/middleware"
	"taskflow/internal/taskflow/adapters/http/tasks"
	"taskflow/internal/taskflow/adapters/http/users"
	"taskflow/internal/taskflow/ports/api"
	"taskflow/internal/taskflow/ports/services"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(
	app *fiber.App,
	authUseCase api.AuthUseCase,
	taskUseCase api.TaskUseCase,
	userUseCase api.UserUseCase,
	tokenService services.TokenService,
) {
	authHandler := auth.NewHandler(authUseCase)
	taskHandler := tasks.NewHandler(taskUseCase)
	userHandler := users.NewHandler(userUseCase)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Аутентификация (публичный маршрут).
	app.Post("/auth", authHandler.Login)

	// Маршруты задач (требуют авторизации). Статический /paged
	// регистрируется раньше параметрического /:task_id.
	taskRoutes := app.Group("/tasks")
	taskRoutes.Use(authMiddleware)
	taskRoutes.Get("/paged", taskHandler.ListTasksPaged)
	taskRoutes.Get("/", taskHandler.ListTasks)
	taskRoutes.Post("/", taskHandler.CreateTask)
	taskRoutes.Get("/:task_id", taskHandler.GetTask)
	taskRoutes.Put("/:task_id", taskHandler.UpdateTask)
	taskRoutes.Delete("/:task_id", taskHandler.DeleteTask)

	// Регистрация публична, остальные операции над пользователями
	// требуют авторизации.
	app.Post("/users", userHandler.CreateUser)

	userRoutes := app.Group("/users")
	userRoutes.Use(authMiddleware)
	userRoutes.Get("/", userHandler.ListUsers)
	userRoutes.Get("/:user_id", userHandler.GetUser)
	userRoutes.Put("/:user_id", userHandler.UpdateUser)
	userRoutes.Delete("/:user_id", userHandler.DeleteUser)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Route not found")
	})
}
