package dto

import (
	"time"

	"tasknest/internal/tasks/domain/entities"
)

// CreateTaskRequest содержит данные для создания задачи.
type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// UpdateTaskRequest содержит данные для обновления задачи.
type UpdateTaskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// SetCompletedRequest содержит желаемый статус задачи.
type SetCompletedRequest struct {
	Completed bool `json:"completed"`
}

// Task представляет задачу в ответах API.
type Task struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskResponse содержит задачу и результат операции.
type TaskResponse struct {
	Task    *Task  `json:"task,omitempty"`
	Message string `json:"message"`
}

// ListTasksResponse содержит список задач пользователя.
type ListTasksResponse struct {
	Tasks      []*Task `json:"tasks"`
	TotalCount int     `json:"total_count"`
}

// OperationResponse содержит результат операции без данных.
type OperationResponse struct {
	Message string `json:"message"`
}

// StatsResponse содержит статистику задач пользователя.
type StatsResponse struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
}

// TaskFromEntity преобразует доменную задачу в DTO.
func TaskFromEntity(task *entities.Task) *Task {
	if task == nil {
		return nil
	}
	return &Task{
		ID:          task.ID,
		UserID:      task.UserID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// TasksFromEntities преобразует список доменных задач в DTO.
func TasksFromEntities(tasks []*entities.Task) []*Task {
	out := make([]*Task, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, TaskFromEntity(task))
	}
	return out
}

// StatsFromEntity преобразует доменную статистику в DTO.
func StatsFromEntity(stats entities.TaskStats) StatsResponse {
	return StatsResponse{
		Total:     stats.Total,
		Pending:   stats.Pending,
		Completed: stats.Completed,
	}
}
