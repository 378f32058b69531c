package services

import (
	"context"
	"errors"
)

// Ошибки проверки токенов.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// TokenService определяет интерфейс для выдачи и проверки токенов сессии.
type TokenService interface {
	Generate(ctx context.Context, userID int64, username string) (string, error)
	Validate(ctx context.Context, token string) (int64, error)
}
