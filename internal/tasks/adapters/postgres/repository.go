// Package postgres provides PostgreSQL implementations of repositories.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"tasknest/internal/tasks/ports/repositories"
)

// PgxPool - подмножество методов pgxpool.Pool, используемое репозиториями.
// Выделено в интерфейс для подмены в тестах (pgxmock).
type PgxPool interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// RepositoryFactory создает репозитории для работы с базой данных.
type RepositoryFactory struct {
	pool PgxPool
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPool) *RepositoryFactory {
	return &RepositoryFactory{pool: pool}
}

// TaskRepository возвращает репозиторий для работы с задачами.
func (f *RepositoryFactory) TaskRepository() repositories.TaskRepository {
	return NewTaskRepository(f.pool)
}

// UserRepository возвращает репозиторий для работы с пользователями.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return NewUserRepository(f.pool)
}
