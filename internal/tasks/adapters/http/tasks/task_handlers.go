// Package tasks содержит HTTP-обработчики для управления задачами.
package tasks

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"tasknest/internal/tasks/adapters/http/middleware"
	"tasknest/internal/tasks/app"
	"tasknest/internal/tasks/app/dto"
	"tasknest/internal/tasks/domain/entities"
	"tasknest/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerCreateTask   = "handling create task request"
	LogHandlerListTasks    = "handling list tasks request"
	LogHandlerGetTask      = "handling get task request"
	LogHandlerUpdateTask   = "handling update task request"
	LogHandlerDeleteTask   = "handling delete task request"
	LogHandlerSetCompleted = "handling set completed request"
	LogHandlerStats        = "handling stats request"

	ErrMsgInvalidTaskID      = "invalid task id"
	ErrMsgInvalidStatus      = "invalid status filter"
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgUnauthorized       = "unauthorized"
	ErrMsgInternal           = "internal server error"
)

// Handler обработчик HTTP-запросов для работы с задачами.
type Handler struct {
	taskUseCase *app.TaskUseCase
}

// NewHandler создает новый экземпляр обработчика задач.
func NewHandler(taskUseCase *app.TaskUseCase) *Handler {
	return &Handler{
		taskUseCase: taskUseCase,
	}
}

// ownerID извлекает идентификатор владельца, положенный auth middleware.
func ownerID(ctx fiber.Ctx) (int64, bool) {
	id, ok := ctx.Locals(middleware.UserIDKey).(int64)
	return id, ok
}

func sendError(ctx fiber.Ctx, statusCode int, message string) error {
	if err := ctx.Status(statusCode).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// resultStatus сопоставляет неуспешный результат операции с HTTP-статусом.
func resultStatus(result entities.OperationResult) int {
	switch result.Message {
	case app.MsgTaskNotFound, app.MsgOwnerNotFound:
		return fiber.StatusNotFound
	case app.MsgDuplicateTitle:
		return fiber.StatusConflict
	default:
		return fiber.StatusBadRequest
	}
}

func taskIDParam(ctx fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(ctx.Params("task_id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing task id: %w", err)
	}
	if id <= 0 {
		return 0, errors.New(ErrMsgInvalidTaskID)
	}
	return id, nil
}

// CreateTask обрабатывает запрос на создание новой задачи.
func (h *Handler) CreateTask(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateTask"))
	log.Debug(requestCtx, LogHandlerCreateTask)

	owner, ok := ownerID(ctx)
	if !ok {
		return sendError(ctx, fiber.StatusUnauthorized, ErrMsgUnauthorized)
	}

	var req dto.CreateTaskRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	task, result, err := h.taskUseCase.CreateTask(requestCtx, owner, req.Title, req.Description)
	if err != nil {
		if errors.Is(err, entities.ErrEmptyTitle) || errors.Is(err, entities.ErrTitleTooLong) {
			return sendError(ctx, fiber.StatusBadRequest, result.Message)
		}
		log.Error(requestCtx, "failed to create task", zap.Error(err))
		return sendError(ctx, fiber.StatusInternalServerError, ErrMsgInternal)
	}
	if !result.OK {
		return sendError(ctx, resultStatus(result), result.Message)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(dto.TaskResponse{
		Task:    dto.TaskFromEntity(task),
		Message: result.Message,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ListTasks обрабатывает запрос на получение списка задач.
// Параметр completed фильтрует по статусу, параметр q ищет по заголовку.
func (h *Handler) ListTasks(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ListTasks"))
	log.Debug(requestCtx, LogHandlerListTasks)

	owner, ok := ownerID(ctx)
	if !ok {
		return sendError(ctx, fiber.StatusUnauthorized, ErrMsgUnauthorized)
	}

	var (
		tasks []*entities.Task
		err   error
	)

	switch {
	case ctx.Query("q") != "":
		tasks, err = h.taskUseCase.SearchTasks(requestCtx, owner, ctx.Query("q"))
	case ctx.Query("completed") != "":
		completed, parseErr := strconv.ParseBool(ctx.Query("completed"))
		if parseErr != nil {
			log.Error(requestCtx, ErrMsgInvalidStatus, zap.Error(parseErr))
			return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidStatus)
		}
		tasks, err = h.taskUseCase.ListTasksByStatus(requestCtx, owner, completed)
	default:
		tasks, err = h.taskUseCase.ListTasks(requestCtx, owner)
	}
	if err != nil {
		log.Error(requestCtx, "failed to list tasks", zap.Error(err))
		return sendError(ctx, fiber.StatusInternalServerError, ErrMsgInternal)
	}

	if err := ctx.JSON(dto.ListTasksResponse{
		Tasks:      dto.TasksFromEntities(tasks),
		TotalCount: len(tasks),
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// GetTask обрабатывает запрос на получение задачи по ID.
func (h *Handler) GetTask(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetTask"))
	log.Debug(requestCtx, LogHandlerGetTask)

	owner, ok := ownerID(ctx)
	if !ok {
		return sendError(ctx, fiber.StatusUnauthorized, ErrMsgUnauthorized)
	}

	taskID, err := taskIDParam(ctx)
	if err != nil {
		log.Error(requestCtx, ErrMsgInvalidTaskID, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidTaskID)
	}

	task, err := h.taskUseCase.GetTask(requestCtx, owner, taskID)
	if err != nil {
		log.Error(requestCtx, "failed to get task", zap.Error(err))
		return sendError(ctx, fiber.StatusInternalServerError, ErrMsgInternal)
	}
	if task == nil {
		return sendError(ctx, fiber.StatusNotFound, app.MsgTaskNotFound)
	}

	if err := ctx.JSON(dto.TaskFromEntity(task)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// UpdateTask обрабатывает запрос на обновление задачи.
func (h *Handler) UpdateTask(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UpdateTask"))
	log.Debug(requestCtx, LogHandlerUpdateTask)

	owner, ok := ownerID(ctx)
	if !ok {
		return sendError(ctx, fiber.StatusUnauthorized, ErrMsgUnauthorized)
	}

	taskID, err := taskIDParam(ctx)
	if err != nil {
		log.Error(requestCtx, ErrMsgInvalidTaskID, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidTaskID)
	}

	var req dto.UpdateTaskRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	return h.respondResult(ctx, log, "failed to update task")(
		h.taskUseCase.EditTask(requestCtx, owner, taskID, req.Title, req.Description))
}

// DeleteTask обрабатывает запрос на удаление задачи.
func (h *Handler) DeleteTask(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DeleteTask"))
	log.Debug(requestCtx, LogHandlerDeleteTask)

	owner, ok := ownerID(ctx)
	if !ok {
		return sendError(ctx, fiber.StatusUnauthorized, ErrMsgUnauthorized)
	}

	taskID, err := taskIDParam(ctx)
	if err != nil {
		log.Error(requestCtx, ErrMsgInvalidTaskID, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidTaskID)
	}

	return h.respondResult(ctx, log, "failed to delete task")(
		h.taskUseCase.DeleteTask(requestCtx, owner, taskID))
}

// SetCompleted обрабатывает запрос на смену статуса задачи.
func (h *Handler) SetCompleted(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.SetCompleted"))
	log.Debug(requestCtx, LogHandlerSetCompleted)

	owner, ok := ownerID(ctx)
	if !ok {
		return sendError(ctx, fiber.StatusUnauthorized, ErrMsgUnauthorized)
	}

	taskID, err := taskIDParam(ctx)
	if err != nil {
		log.Error(requestCtx, ErrMsgInvalidTaskID, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidTaskID)
	}

	var req dto.SetCompletedRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	return h.respondResult(ctx, log, "failed to set task status")(
		h.taskUseCase.SetCompleted(requestCtx, owner, taskID, req.Completed))
}

// Stats обрабатывает запрос статистики задач для панели управления.
func (h *Handler) Stats(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.Stats"))
	log.Debug(requestCtx, LogHandlerStats)

	owner, ok := ownerID(ctx)
	if !ok {
		return sendError(ctx, fiber.StatusUnauthorized, ErrMsgUnauthorized)
	}

	stats, err := h.taskUseCase.Stats(requestCtx, owner)
	if err != nil {
		log.Error(requestCtx, "failed to load stats", zap.Error(err))
		return sendError(ctx, fiber.StatusInternalServerError, ErrMsgInternal)
	}

	if err := ctx.JSON(dto.StatsFromEntity(stats)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// respondResult отдает результат операции как JSON с подходящим статусом.
func (h *Handler) respondResult(ctx fiber.Ctx, log *logger.Logger, failMsg string) func(entities.OperationResult, error) error {
	return func(result entities.OperationResult, err error) error {
		requestCtx := ctx.Context()
		if err != nil {
			log.Error(requestCtx, failMsg, zap.Error(err))
			return sendError(ctx, fiber.StatusInternalServerError, ErrMsgInternal)
		}
		if !result.OK {
			return sendError(ctx, resultStatus(result), result.Message)
		}
		if err := ctx.JSON(dto.OperationResponse{Message: result.Message}); err != nil {
			return fmt.Errorf("error sending response: %w", err)
		}
		return nil
	}
}
