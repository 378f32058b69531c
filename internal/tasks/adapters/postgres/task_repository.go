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

// Колонки задачи, возвращаемые каждым запросом.
const taskColumns = `id, user_id, title, coalesce(description, ''), completed, created_at, updated_at`

// TaskRepository реализует интерфейс repositories.TaskRepository.
type TaskRepository struct {
	pool PgxPool
}

// NewTaskRepository создает новый репозиторий задач.
func NewTaskRepository(pool PgxPool) repositories.TaskRepository {
	return &TaskRepository{pool: pool}
}

// Create сохраняет новую задачу. Заголовок нормализуется до обращения к БД:
// пустой после обрезки заголовок не доходит до хранилища.
func (r *TaskRepository) Create(ctx context.Context, task *entities.Task) (*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("method", "TaskRepository.Create"))
	log.Debug(ctx, "creating new task", zap.Int64("ownerID", task.UserID))

	title, err := entities.NormalizeTitle(task.Title)
	if err != nil {
		return nil, err
	}

	var created entities.Task
	err = r.pool.QueryRow(ctx,
		`INSERT INTO tasks (user_id, title, description)
         VALUES ($1, $2, NULLIF($3, ''))
         RETURNING `+taskColumns,
		task.UserID, title, task.Description,
	).Scan(
		&created.ID, &created.UserID, &created.Title, &created.Description,
		&created.Completed, &created.CreatedAt, &created.UpdatedAt,
	)

	if err != nil {
		if pgdb.IsUniqueViolation(err) {
			log.Debug(ctx, "duplicate title for owner", zap.String("title", title))
			return nil, entities.ErrDuplicateTitle
		}
		if pgdb.IsForeignKeyViolation(err) {
			log.Debug(ctx, "owner does not exist", zap.Int64("ownerID", task.UserID))
			return nil, entities.ErrOwnerNotFound
		}
		log.Error(ctx, "failed to create task", zap.Error(err))
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	log.Debug(ctx, "task created", zap.Int64("taskID", created.ID))
	return &created, nil
}

// GetByID получает задачу по ID в рамках владельца. Возвращает nil без
// ошибки, если задача отсутствует или принадлежит другому пользователю -
// эти случаи для вызывающего неразличимы.
func (r *TaskRepository) GetByID(ctx context.Context, ownerID, taskID int64) (*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("method", "TaskRepository.GetByID"))

	var task entities.Task
	err := r.pool.QueryRow(ctx,
		`SELECT `+taskColumns+`
         FROM tasks
         WHERE id = $1 AND user_id = $2`,
		taskID, ownerID,
	).Scan(
		&task.ID, &task.UserID, &task.Title, &task.Description,
		&task.Completed, &task.CreatedAt, &task.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "task not found", zap.Int64("taskID", taskID), zap.Int64("ownerID", ownerID))
			return nil, nil
		}
		log.Error(ctx, "failed to get task", zap.Error(err))
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return &task, nil
}

// ListByOwner получает все задачи пользователя, новые первыми.
func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*entities.Task, error) {
	return r.list(ctx,
		`SELECT `+taskColumns+`
         FROM tasks
         WHERE user_id = $1
         ORDER BY created_at DESC`,
		ownerID)
}

// ListByOwnerAndStatus получает задачи пользователя с заданным статусом.
func (r *TaskRepository) ListByOwnerAndStatus(ctx context.Context, ownerID int64, completed bool) ([]*entities.Task, error) {
	return r.list(ctx,
		`SELECT `+taskColumns+`
         FROM tasks
         WHERE user_id = $1 AND completed = $2
         ORDER BY created_at DESC`,
		ownerID, completed)
}

// SearchByTitle ищет задачи пользователя по частичному совпадению заголовка
// без учета регистра.
func (r *TaskRepository) SearchByTitle(ctx context.Context, ownerID int64, query string) ([]*entities.Task, error) {
	return r.list(ctx,
		`SELECT `+taskColumns+`
         FROM tasks
         WHERE user_id = $1 AND title ILIKE '%' || $2 || '%'
         ORDER BY created_at DESC`,
		ownerID, query)
}

func (r *TaskRepository) list(ctx context.Context, query string, args ...interface{}) ([]*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("method", "TaskRepository.list"))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		log.Error(ctx, "failed to list tasks", zap.Error(err))
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*entities.Task, 0)
	for rows.Next() {
		var task entities.Task
		err := rows.Scan(
			&task.ID, &task.UserID, &task.Title, &task.Description,
			&task.Completed, &task.CreatedAt, &task.UpdatedAt,
		)
		if err != nil {
			log.Error(ctx, "failed to scan task", zap.Error(err))
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return tasks, nil
}

// Update обновляет заголовок и описание задачи и освежает updated_at.
// Фильтры по задаче и владельцу выполняются одним запросом, поэтому
// переименование задачи в ее собственный заголовок не считается дубликатом.
func (r *TaskRepository) Update(ctx context.Context, ownerID, taskID int64, title, description string) (*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("method", "TaskRepository.Update"))

	title, err := entities.NormalizeTitle(title)
	if err != nil {
		return nil, err
	}

	var updated entities.Task
	err = r.pool.QueryRow(ctx,
		`UPDATE tasks
         SET title = $1, description = NULLIF($2, ''), updated_at = now()
         WHERE id = $3 AND user_id = $4
         RETURNING `+taskColumns,
		title, description, taskID, ownerID,
	).Scan(
		&updated.ID, &updated.UserID, &updated.Title, &updated.Description,
		&updated.Completed, &updated.CreatedAt, &updated.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "task not found or not owned by user", zap.Int64("taskID", taskID))
			return nil, entities.ErrTaskNotFound
		}
		if pgdb.IsUniqueViolation(err) {
			log.Debug(ctx, "duplicate title for owner", zap.String("title", title))
			return nil, entities.ErrDuplicateTitle
		}
		log.Error(ctx, "failed to update task", zap.Error(err))
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return &updated, nil
}

// Delete удаляет задачу в рамках владельца.
func (r *TaskRepository) Delete(ctx context.Context, ownerID, taskID int64) error {
	log := logger.Log(ctx).With(zap.String("method", "TaskRepository.Delete"))

	result, err := r.pool.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`,
		taskID, ownerID,
	)
	if err != nil {
		log.Error(ctx, "failed to delete task", zap.Error(err))
		return fmt.Errorf("failed to delete task: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "task not found or not owned by user", zap.Int64("taskID", taskID))
		return entities.ErrTaskNotFound
	}

	return nil
}

// SetCompleted устанавливает флаг завершенности и освежает updated_at.
func (r *TaskRepository) SetCompleted(ctx context.Context, ownerID, taskID int64, completed bool) (*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("method", "TaskRepository.SetCompleted"))

	var updated entities.Task
	err := r.pool.QueryRow(ctx,
		`UPDATE tasks
         SET completed = $1, updated_at = now()
         WHERE id = $2 AND user_id = $3
         RETURNING `+taskColumns,
		completed, taskID, ownerID,
	).Scan(
		&updated.ID, &updated.UserID, &updated.Title, &updated.Description,
		&updated.Completed, &updated.CreatedAt, &updated.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "task not found or not owned by user", zap.Int64("taskID", taskID))
			return nil, entities.ErrTaskNotFound
		}
		log.Error(ctx, "failed to set task status", zap.Error(err))
		return nil, fmt.Errorf("failed to set task status: %w", err)
	}

	return &updated, nil
}

// CountByOwner возвращает статистику задач пользователя.
func (r *TaskRepository) CountByOwner(ctx context.Context, ownerID int64) (entities.TaskStats, error) {
	log := logger.Log(ctx).With(zap.String("method", "TaskRepository.CountByOwner"))

	var stats entities.TaskStats
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE completed)
         FROM tasks
         WHERE user_id = $1`,
		ownerID,
	).Scan(&stats.Total, &stats.Completed)

	if err != nil {
		log.Error(ctx, "failed to count tasks", zap.Error(err))
		return entities.TaskStats{}, fmt.Errorf("failed to count tasks: %w", err)
	}

	stats.Pending = stats.Total - stats.Completed
	return stats, nil
}
