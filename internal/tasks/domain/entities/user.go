package entities

import (
	"errors"
	"time"
)

// Ошибки домена пользователя.
var (
	ErrEmptyUsername      = errors.New("username cannot be empty")
	ErrUsernameTooLong    = errors.New("username exceeds the maximum length")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrPasswordTooShort   = errors.New("password must contain at least 6 characters")
)

// Ограничения учетных данных.
const (
	MaxUsernameLength = 50
	MinPasswordLength = 6
)

// User представляет основную сущность домена пользователя.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
