// Package dto содержит объекты передачи данных для HTTP API.
package dto

import (
	"time"
)

// RegisterRequest содержит данные для регистрации пользователя.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest содержит данные для входа пользователя.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse содержит данные сессии после входа.
type TokenResponse struct {
	UserID      int64  `json:"user_id"`
	Username    string `json:"username"`
	AccessToken string `json:"access_token"`
}

// UserResponse содержит публичные данные пользователя.
type UserResponse struct {
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
