// Package http содержит компоненты HTTP сервера сервиса задач.
package http

import (
	"github.com/gofiber/fiber/v3"

	"tasknest/internal/tasks/adapters/http/auth"
	"tasknest/internal/tasks/adapters/http/middleware"
	"tasknest/internal/tasks/adapters/http/tasks"
	"tasknest/internal/tasks/app"
	svc "tasknest/internal/tasks/ports/services"
)

// SetupRouter настраивает маршрутизацию HTTP сервера.
func SetupRouter(fiberApp *fiber.App, authUseCase *app.AuthUseCase, taskUseCase *app.TaskUseCase, tokenSvc svc.TokenService) {
	authHandler := auth.NewHandler(authUseCase)
	taskHandler := tasks.NewHandler(taskUseCase)

	// Middleware для всех запросов.
	fiberApp.Use(middleware.NewLoggerMiddleware())
	fiberApp.Use(middleware.NewRecoveryMiddleware())

	// API версии 1.
	apiV1 := fiberApp.Group("/api/v1")

	// Auth routes (публичные).
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)

	// Маршруты задач (требуют авторизации).
	taskRoutes := apiV1.Group("/tasks")
	taskRoutes.Use(middleware.NewAuthMiddleware(tokenSvc))
	taskRoutes.Post("/", taskHandler.CreateTask)
	taskRoutes.Get("/", taskHandler.ListTasks)
	taskRoutes.Get("/stats", taskHandler.Stats)
	taskRoutes.Get("/:task_id", taskHandler.GetTask)
	taskRoutes.Put("/:task_id", taskHandler.UpdateTask)
	taskRoutes.Patch("/:task_id/completed", taskHandler.SetCompleted)
	taskRoutes.Delete("/:task_id", taskHandler.DeleteTask)

	// Обработчик для несуществующих маршрутов.
	fiberApp.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
