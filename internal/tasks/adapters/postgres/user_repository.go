package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"tasknest/internal/tasks/domain/entities"
	"tasknest/internal/tasks/ports/repositories"
	pgdb "tasknest/pkg/db/postgres"
	"tasknest/pkg/logger"
)

const userColumns = `id, username, password_hash, created_at`

// UserRepository реализует интерфейс repositories.UserRepository.
type UserRepository struct {
	pool PgxPool
}

// NewUserRepository создает новый репозиторий пользователей.
func NewUserRepository(pool PgxPool) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

// Create создает нового пользователя.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	var created entities.User
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (username, password_hash)
         VALUES ($1, $2)
         RETURNING `+userColumns,
		user.Username, user.PasswordHash,
	).Scan(&created.ID, &created.Username, &created.PasswordHash, &created.CreatedAt)

	if err != nil {
		if pgdb.IsUniqueViolation(err) {
			log.Debug(ctx, "username is already taken", zap.String("username", user.Username))
			return nil, entities.ErrUsernameTaken
		}
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return &created, nil
}

// CreateIfAbsent создает пользователя, если пользователя с таким именем еще
// нет, и возвращает существующую запись в противном случае. Используется
// загрузчиком демонстрационных данных, чтобы повторный запуск был идемпотентным.
func (r *UserRepository) CreateIfAbsent(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "CreateIfAbsent"))

	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (username, password_hash)
         VALUES ($1, $2)
         ON CONFLICT (username) DO NOTHING`,
		user.Username, user.PasswordHash,
	)
	if err != nil {
		log.Error(ctx, "error inserting user", zap.Error(err))
		return nil, fmt.Errorf("error inserting user: %w", err)
	}

	return r.FindByUsername(ctx, user.Username)
}

// FindByID находит пользователя по ID.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByID"))

	var user entities.User
	err := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)

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

// FindByUsername находит пользователя по имени.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByUsername"))

	var user entities.User
	err := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`,
		username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("username", username))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by username", zap.Error(err))
		return nil, fmt.Errorf("error querying user by username: %w", err)
	}

	return &user, nil
}

// Delete удаляет пользователя и его задачи в одной транзакции.
// Каскад выполняется явным двухшаговым удалением, а не объектным графом.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Delete"))

	return pgdb.WithinTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM tasks WHERE user_id = $1`, id); err != nil {
			log.Error(ctx, "error deleting user tasks", zap.Error(err))
			return fmt.Errorf("error deleting user tasks: %w", err)
		}

		result, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			log.Error(ctx, "error deleting user", zap.Error(err))
			return fmt.Errorf("error deleting user: %w", err)
		}

		if result.RowsAffected() == 0 {
			log.Debug(ctx, "user not found for deletion", zap.Int64("id", id))
			return entities.ErrUserNotFound
		}

		return nil
	})
}
