// Package app implements application business logic for the task service.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tasknest/internal/tasks/domain/entities"
	"tasknest/internal/tasks/ports/cache"
	"tasknest/internal/tasks/ports/repositories"
	"tasknest/pkg/logger"
)

// Сообщения, которые слой представления показывает пользователю.
const (
	MsgTaskCreated    = "task created successfully"
	MsgTaskUpdated    = "task updated successfully"
	MsgTaskDeleted    = "task deleted successfully"
	MsgStatusUpdated  = "task status updated successfully"
	MsgTaskNotFound   = "the task does not exist"
	MsgOwnerNotFound  = "the user does not exist"
	MsgEmptyTitle     = "the title cannot be empty"
	MsgTitleTooLong   = "the title is too long"
	MsgDuplicateTitle = "a task with this title already exists for this user"
)

// TaskUseCase представляет собой бизнес-логику работы с задачами.
// Нормализует ввод, делегирует репозиторию и сворачивает ожидаемые
// бизнес-исходы в OperationResult.
type TaskUseCase struct {
	taskRepo repositories.TaskRepository
	cache    cache.Cache
}

// NewTaskUseCase создает новый экземпляр TaskUseCase.
// Кэш опционален: nil отключает кэширование списков.
func NewTaskUseCase(taskRepo repositories.TaskRepository, listCache cache.Cache) *TaskUseCase {
	return &TaskUseCase{
		taskRepo: taskRepo,
		cache:    listCache,
	}
}

// CreateTask создает новую задачу для пользователя.
// Пустой заголовок - ошибка валидации, репозиторий не вызывается.
// Дубликат заголовка - ожидаемый исход: возвращается nil-задача и
// неуспешный результат без ошибки.
func (uc *TaskUseCase) CreateTask(ctx context.Context, ownerID int64, title, description string) (*entities.Task, entities.OperationResult, error) {
	task, err := entities.NewTask(ownerID, title, description)
	if err != nil {
		return nil, entities.Failure(titleMessage(err)), fmt.Errorf("validating title: %w", err)
	}

	created, err := uc.taskRepo.Create(ctx, task)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrDuplicateTitle):
			return nil, entities.Failure(MsgDuplicateTitle), nil
		case errors.Is(err, entities.ErrOwnerNotFound):
			return nil, entities.Failure(MsgOwnerNotFound), nil
		default:
			return nil, entities.OperationResult{}, fmt.Errorf("failed to create task: %w", err)
		}
	}

	uc.invalidateList(ctx, ownerID)
	return created, entities.Success(MsgTaskCreated), nil
}

// ListTasks возвращает все задачи пользователя, новые первыми.
func (uc *TaskUseCase) ListTasks(ctx context.Context, ownerID int64) ([]*entities.Task, error) {
	if cached, ok := uc.cachedList(ctx, ownerID); ok {
		return cached, nil
	}

	tasks, err := uc.taskRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	uc.storeList(ctx, ownerID, tasks)
	return tasks, nil
}

// ListTasksByStatus возвращает задачи пользователя с заданным статусом.
func (uc *TaskUseCase) ListTasksByStatus(ctx context.Context, ownerID int64, completed bool) ([]*entities.Task, error) {
	tasks, err := uc.taskRepo.ListByOwnerAndStatus(ctx, ownerID, completed)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks by status: %w", err)
	}
	return tasks, nil
}

// SearchTasks ищет задачи пользователя по частичному совпадению заголовка.
// Пустой запрос эквивалентен полному списку.
func (uc *TaskUseCase) SearchTasks(ctx context.Context, ownerID int64, query string) ([]*entities.Task, error) {
	if query == "" {
		return uc.ListTasks(ctx, ownerID)
	}

	tasks, err := uc.taskRepo.SearchByTitle(ctx, ownerID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search tasks: %w", err)
	}
	return tasks, nil
}

// GetTask возвращает задачу пользователя или nil, если она не существует
// либо принадлежит другому пользователю.
func (uc *TaskUseCase) GetTask(ctx context.Context, ownerID, taskID int64) (*entities.Task, error) {
	task, err := uc.taskRepo.GetByID(ctx, ownerID, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// EditTask обновляет заголовок и описание задачи.
func (uc *TaskUseCase) EditTask(ctx context.Context, ownerID, taskID int64, title, description string) (entities.OperationResult, error) {
	if _, err := uc.taskRepo.Update(ctx, ownerID, taskID, title, description); err != nil {
		return uc.collapse(err)
	}

	uc.invalidateList(ctx, ownerID)
	return entities.Success(MsgTaskUpdated), nil
}

// DeleteTask удаляет задачу пользователя.
func (uc *TaskUseCase) DeleteTask(ctx context.Context, ownerID, taskID int64) (entities.OperationResult, error) {
	if err := uc.taskRepo.Delete(ctx, ownerID, taskID); err != nil {
		return uc.collapse(err)
	}

	uc.invalidateList(ctx, ownerID)
	return entities.Success(MsgTaskDeleted), nil
}

// SetCompleted устанавливает флаг завершенности задачи.
func (uc *TaskUseCase) SetCompleted(ctx context.Context, ownerID, taskID int64, completed bool) (entities.OperationResult, error) {
	if _, err := uc.taskRepo.SetCompleted(ctx, ownerID, taskID, completed); err != nil {
		return uc.collapse(err)
	}

	uc.invalidateList(ctx, ownerID)
	return entities.Success(MsgStatusUpdated), nil
}

// Stats возвращает статистику задач пользователя для панели управления.
func (uc *TaskUseCase) Stats(ctx context.Context, ownerID int64) (entities.TaskStats, error) {
	stats, err := uc.taskRepo.CountByOwner(ctx, ownerID)
	if err != nil {
		return entities.TaskStats{}, fmt.Errorf("failed to count tasks: %w", err)
	}
	return stats, nil
}

// collapse сворачивает ожидаемые ошибки репозитория в OperationResult.
// Инфраструктурные ошибки возвращаются вызывающему как есть.
func (uc *TaskUseCase) collapse(err error) (entities.OperationResult, error) {
	switch {
	case errors.Is(err, entities.ErrTaskNotFound):
		return entities.Failure(MsgTaskNotFound), nil
	case errors.Is(err, entities.ErrEmptyTitle):
		return entities.Failure(MsgEmptyTitle), nil
	case errors.Is(err, entities.ErrTitleTooLong):
		return entities.Failure(MsgTitleTooLong), nil
	case errors.Is(err, entities.ErrDuplicateTitle):
		return entities.Failure(MsgDuplicateTitle), nil
	default:
		return entities.OperationResult{}, err
	}
}

// titleMessage подбирает текст для ошибки валидации заголовка.
func titleMessage(err error) string {
	if errors.Is(err, entities.ErrTitleTooLong) {
		return MsgTitleTooLong
	}
	return MsgEmptyTitle
}

func listCacheKey(ownerID int64) string {
	return fmt.Sprintf("tasks:%d", ownerID)
}

// cachedList пытается отдать список задач из кэша.
// Любая ошибка кэша трактуется как промах.
func (uc *TaskUseCase) cachedList(ctx context.Context, ownerID int64) ([]*entities.Task, bool) {
	if uc.cache == nil {
		return nil, false
	}

	log := logger.Log(ctx).With(zap.String("method", "TaskUseCase.cachedList"))

	raw, err := uc.cache.Get(ctx, listCacheKey(ownerID))
	if err != nil || raw == "" {
		return nil, false
	}

	var tasks []*entities.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		log.Warn(ctx, "failed to decode cached task list", zap.Error(err))
		return nil, false
	}

	return tasks, true
}

func (uc *TaskUseCase) storeList(ctx context.Context, ownerID int64, tasks []*entities.Task) {
	if uc.cache == nil {
		return
	}

	log := logger.Log(ctx).With(zap.String("method", "TaskUseCase.storeList"))

	raw, err := json.Marshal(tasks)
	if err != nil {
		log.Warn(ctx, "failed to encode task list for cache", zap.Error(err))
		return
	}

	if err := uc.cache.Set(ctx, listCacheKey(ownerID), string(raw), 0); err != nil {
		log.Warn(ctx, "failed to store task list in cache", zap.Error(err))
	}
}

func (uc *TaskUseCase) invalidateList(ctx context.Context, ownerID int64) {
	if uc.cache == nil {
		return
	}

	if err := uc.cache.Delete(ctx, listCacheKey(ownerID)); err != nil {
		logger.Log(ctx).Warn(ctx, "failed to invalidate task list cache", zap.Error(err))
	}
}
