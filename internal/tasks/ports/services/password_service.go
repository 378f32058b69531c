// Package services defines service interfaces used by the application layer.
package services

import (
	"context"
	"errors"
)

// Ошибки сервисов.
var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrHashingFailed   = errors.New("password hashing failed")
)

// PasswordService определяет интерфейс для хэширования и проверки паролей.
type PasswordService interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, password, hash string) (bool, error)
}
