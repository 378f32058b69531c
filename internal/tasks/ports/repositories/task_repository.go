// Package repositories defines repository interfaces for the task service.
package repositories

import (
	"context"

	"tasknest/internal/tasks/domain/entities"
)

// TaskRepository определяет интерфейс для работы с хранилищем задач.
// Все операции ограничены идентификатором владельца: фильтр по владельцу
// выполняется в том же запросе, что и фильтр по задаче.
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) (*entities.Task, error)
	GetByID(ctx context.Context, ownerID, taskID int64) (*entities.Task, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*entities.Task, error)
	ListByOwnerAndStatus(ctx context.Context, ownerID int64, completed bool) ([]*entities.Task, error)
	SearchByTitle(ctx context.Context, ownerID int64, query string) ([]*entities.Task, error)
	Update(ctx context.Context, ownerID, taskID int64, title, description string) (*entities.Task, error)
	Delete(ctx context.Context, ownerID, taskID int64) error
	SetCompleted(ctx context.Context, ownerID, taskID int64, completed bool) (*entities.Task, error)
	CountByOwner(ctx context.Context, ownerID int64) (entities.TaskStats, error)
}
