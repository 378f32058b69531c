package seed_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasknest/internal/tasks/adapters/services"
	"tasknest/internal/tasks/domain/entities"
	"tasknest/internal/tasks/seed"
)

// fakeUserRepo хранит пользователей в памяти.
type fakeUserRepo struct {
	nextID int64
	byName map[string]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byName: make(map[string]*entities.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entities.User) (*entities.User, error) {
	if _, ok := f.byName[user.Username]; ok {
		return nil, entities.ErrUsernameTaken
	}
	f.nextID++
	stored := &entities.User{
		ID:           f.nextID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		CreatedAt:    time.Now(),
	}
	f.byName[user.Username] = stored
	return stored, nil
}

func (f *fakeUserRepo) CreateIfAbsent(ctx context.Context, user *entities.User) (*entities.User, error) {
	if existing, ok := f.byName[user.Username]; ok {
		return existing, nil
	}
	return f.Create(ctx, user)
}

func (f *fakeUserRepo) FindByID(_ context.Context, id int64) (*entities.User, error) {
	for _, user := range f.byName {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entities.User, error) {
	user, ok := f.byName[username]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, _ int64) error {
	return nil
}

// fakeTaskRepo хранит задачи в памяти с уникальностью (владелец, заголовок).
type fakeTaskRepo struct {
	nextID int64
	tasks  map[int64]*entities.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[int64]*entities.Task)}
}

func (f *fakeTaskRepo) Create(_ context.Context, task *entities.Task) (*entities.Task, error) {
	title, err := entities.NormalizeTitle(task.Title)
	if err != nil {
		return nil, err
	}
	for _, existing := range f.tasks {
		if existing.UserID == task.UserID && existing.Title == title {
			return nil, entities.ErrDuplicateTitle
		}
	}
	f.nextID++
	stored := &entities.Task{
		ID:          f.nextID,
		UserID:      task.UserID,
		Title:       title,
		Description: task.Description,
	}
	f.tasks[stored.ID] = stored
	return stored, nil
}

func (f *fakeTaskRepo) GetByID(_ context.Context, ownerID, taskID int64) (*entities.Task, error) {
	task, ok := f.tasks[taskID]
	if !ok || task.UserID != ownerID {
		return nil, nil
	}
	return task, nil
}

func (f *fakeTaskRepo) ListByOwner(_ context.Context, ownerID int64) ([]*entities.Task, error) {
	var out []*entities.Task
	for _, task := range f.tasks {
		if task.UserID == ownerID {
			out = append(out, task)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) ListByOwnerAndStatus(ctx context.Context, ownerID int64, completed bool) ([]*entities.Task, error) {
	all, _ := f.ListByOwner(ctx, ownerID)
	var out []*entities.Task
	for _, task := range all {
		if task.Completed == completed {
			out = append(out, task)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) SearchByTitle(ctx context.Context, ownerID int64, _ string) ([]*entities.Task, error) {
	return f.ListByOwner(ctx, ownerID)
}

func (f *fakeTaskRepo) Update(_ context.Context, _, _ int64, _, _ string) (*entities.Task, error) {
	return nil, entities.ErrTaskNotFound
}

func (f *fakeTaskRepo) Delete(_ context.Context, _, _ int64) error {
	return entities.ErrTaskNotFound
}

func (f *fakeTaskRepo) SetCompleted(_ context.Context, ownerID, taskID int64, completed bool) (*entities.Task, error) {
	task, ok := f.tasks[taskID]
	if !ok || task.UserID != ownerID {
		return nil, entities.ErrTaskNotFound
	}
	task.Completed = completed
	return task, nil
}

func (f *fakeTaskRepo) CountByOwner(_ context.Context, ownerID int64) (entities.TaskStats, error) {
	stats := entities.TaskStats{}
	for _, task := range f.tasks {
		if task.UserID != ownerID {
			continue
		}
		stats.Total++
		if task.Completed {
			stats.Completed++
		} else {
			stats.Pending++
		}
	}
	return stats, nil
}

func (f *fakeTaskRepo) countCompleted() (completed, pending int) {
	for _, task := range f.tasks {
		if task.Completed {
			completed++
		} else {
			pending++
		}
	}
	return completed, pending
}

func TestSeederRun(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepo()
	taskRepo := newFakeTaskRepo()
	passwordSvc := services.NewSHA256()

	seeder := seed.NewSeeder(userRepo, taskRepo, passwordSvc)

	inserted, err := seeder.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, inserted)

	completed, pending := taskRepo.countCompleted()
	assert.Equal(t, 10, completed)
	assert.Equal(t, 10, pending)

	// Демо-пароли совместимы с обычным входом.
	juan, err := userRepo.FindByUsername(ctx, "Juan")
	require.NoError(t, err)
	ok, err := passwordSvc.Verify(ctx, "admin123", juan.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	marleni, err := userRepo.FindByUsername(ctx, "Marleni")
	require.NoError(t, err)
	ok, err = passwordSvc.Verify(ctx, "colab123", marleni.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSeederIsIdempotent(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepo()
	taskRepo := newFakeTaskRepo()

	seeder := seed.NewSeeder(userRepo, taskRepo, services.NewSHA256())

	first, err := seeder.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 20, first)

	second, err := seeder.Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, second, fmt.Sprintf("expected no new tasks, got %d", second))

	stats, err := taskRepo.CountByOwner(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, stats.Total)
}
