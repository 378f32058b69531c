package repositories

import (
	"context"

	"tasknest/internal/tasks/domain/entities"
)

// UserRepository определяет интерфейс для работы с репозиторием пользователей.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)
	CreateIfAbsent(ctx context.Context, user *entities.User) (*entities.User, error)
	FindByID(ctx context.Context, id int64) (*entities.User, error)
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	Delete(ctx context.Context, id int64) error
}
