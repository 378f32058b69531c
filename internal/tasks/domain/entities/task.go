// Package entities defines the domain entities for the task service.
package entities

import (
	"errors"
	"strings"
	"time"
)

// Ошибки домена задач.
var (
	ErrEmptyTitle     = errors.New("task title cannot be empty")
	ErrTitleTooLong   = errors.New("task title exceeds the maximum length")
	ErrTaskNotFound   = errors.New("task not found or not owned by user")
	ErrDuplicateTitle = errors.New("a task with this title already exists for this user")
	ErrOwnerNotFound  = errors.New("owner does not exist")
)

// MaxTitleLength - максимальная длина заголовка задачи.
const MaxTitleLength = 120

// Task представляет собой задачу пользователя.
type Task struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTask создает новую задачу с нормализованным заголовком.
// Заголовок и описание очищаются от пробельных символов по краям.
func NewTask(userID int64, title, description string) (*Task, error) {
	title, err := NormalizeTitle(title)
	if err != nil {
		return nil, err
	}

	return &Task{
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Completed:   false,
	}, nil
}

// NormalizeTitle очищает заголовок и проверяет его на пустоту и длину.
func NormalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return "", ErrTitleTooLong
	}
	return title, nil
}

// TaskStats содержит статистику задач пользователя для панели управления.
type TaskStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
}
