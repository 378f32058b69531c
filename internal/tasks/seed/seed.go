// Package seed наполняет хранилище демонстрационными данными.
package seed

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tasknest/internal/tasks/domain/entities"
	"tasknest/internal/tasks/ports/repositories"
	svc "tasknest/internal/tasks/ports/services"
	"tasknest/pkg/logger"
)

// demoUser описывает демо-пользователя и его задачи.
type demoUser struct {
	username  string
	password  string
	pending   []demoTask
	completed []demoTask
}

type demoTask struct {
	title       string
	description string
}

// Демо-учетные записи. Пароли хэшируются выбранным PasswordService,
// поэтому вход через API работает сразу после наполнения.
var demoUsers = []demoUser{
	{
		username: "Juan",
		password: "admin123",
		pending: []demoTask{
			{"Prepare weekly report", "Summarize project progress, risks and next steps. Attach metrics and relevant screenshots."},
			{"Review API pull request", "Check style, tests and error handling. Leave comments and request changes if needed."},
			{"Call the internet provider", "Ask about recent outages and request a stability fix. Get a ticket number and an ETA."},
			{"Update repository README", "Add install instructions, test commands and project layout. Verify the steps on a clean machine."},
			{"Plan tasks for the week", "Set priorities, estimates and dependencies. Block focus time in the calendar."},
		},
		completed: []demoTask{
			{"Install project dependencies", "Environment prepared and requirements installed. Verified the test suite runs clean."},
			{"Design dashboard mockup", "Defined layout: header, stats cards and task lists. Aligned with the agreed visual style."},
			{"Set up the database", "Created the schema and verified the users and tasks tables. Enabled integrity constraints."},
			{"Implement search by title", "Wired the search input to the list with partial matching. Clearing the query restores the full list."},
			{"Fix button styles", "Adjusted colors and hover states for better contrast. Checked that labels stay readable."},
		},
	},
	{
		username: "Marleni",
		password: "colab123",
		pending: []demoTask{
			{"Organize assets folder", "Sort images, icons and style files. Remove duplicates and use consistent names."},
			{"Prepare class presentation", "One slide per user story: login, CRUD, completion. Include the layered architecture diagram."},
			{"Register sample tasks", "Load a realistic task set for the demo. Verify pending and completed sections render correctly."},
			{"Review business rules", "Confirm validations: required title, per-user duplicates and session-scoped access."},
			{"Optimize list rendering", "Review widget creation in the list view. Avoid unnecessary refreshes while searching."},
		},
		completed: []demoTask{
			{"Integrate screen navigation", "Connected login, dashboard and task form flows. Verified back and logout transitions."},
			{"Add task form validation", "Saving without a title is blocked with a message. The form resets on cancel."},
			{"Implement task editing", "The task loads into the form, updates and returns to the dashboard. Data stays consistent."},
			{"Mark tasks as completed", "Added the complete action and it updates the stored state. The task moves to the completed section."},
			{"Set up project structure", "Organized packages by layer and verified the imports. The build passes from a clean checkout."},
		},
	},
}

// Seeder идемпотентно создает демо-пользователей и их задачи.
type Seeder struct {
	userRepo    repositories.UserRepository
	taskRepo    repositories.TaskRepository
	passwordSvc svc.PasswordService
}

// NewSeeder создает новый экземпляр наполнителя демо-данных.
func NewSeeder(
	userRepo repositories.UserRepository,
	taskRepo repositories.TaskRepository,
	passwordSvc svc.PasswordService,
) *Seeder {
	return &Seeder{
		userRepo:    userRepo,
		taskRepo:    taskRepo,
		passwordSvc: passwordSvc,
	}
}

// Run наполняет хранилище. Повторный запуск безопасен: существующие
// пользователи переиспользуются, дубликаты задач пропускаются.
// Возвращает число вставленных задач.
func (s *Seeder) Run(ctx context.Context) (int, error) {
	log := logger.Log(ctx).With(zap.String("method", "Seeder.Run"))

	inserted := 0
	for _, demo := range demoUsers {
		user, err := s.ensureUser(ctx, demo)
		if err != nil {
			return inserted, err
		}

		n, err := s.createTasks(ctx, user.ID, demo.pending, false)
		inserted += n
		if err != nil {
			return inserted, err
		}

		n, err = s.createTasks(ctx, user.ID, demo.completed, true)
		inserted += n
		if err != nil {
			return inserted, err
		}

		log.Info(ctx, "demo user seeded",
			zap.String("username", user.Username),
			zap.Int64("userID", user.ID),
		)
	}

	log.Info(ctx, "seed completed", zap.Int("tasksInserted", inserted))
	return inserted, nil
}

func (s *Seeder) ensureUser(ctx context.Context, demo demoUser) (*entities.User, error) {
	hash, err := s.passwordSvc.Hash(ctx, demo.password)
	if err != nil {
		return nil, fmt.Errorf("hashing password for %s: %w", demo.username, err)
	}

	user, err := s.userRepo.CreateIfAbsent(ctx, &entities.User{
		Username:     demo.username,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, fmt.Errorf("seeding user %s: %w", demo.username, err)
	}
	return user, nil
}

func (s *Seeder) createTasks(ctx context.Context, ownerID int64, tasks []demoTask, completed bool) (int, error) {
	inserted := 0
	for _, demo := range tasks {
		created, err := s.taskRepo.Create(ctx, &entities.Task{
			UserID:      ownerID,
			Title:       demo.title,
			Description: demo.description,
		})
		if err != nil {
			if errors.Is(err, entities.ErrDuplicateTitle) {
				continue
			}
			return inserted, fmt.Errorf("seeding task %q: %w", demo.title, err)
		}
		inserted++

		if completed {
			if _, err := s.taskRepo.SetCompleted(ctx, ownerID, created.ID, true); err != nil {
				return inserted, fmt.Errorf("completing task %q: %w", demo.title, err)
			}
		}
	}
	return inserted, nil
}
