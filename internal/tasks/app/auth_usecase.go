package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tasknest/internal/tasks/domain/entities"
	"tasknest/internal/tasks/ports/repositories"
	svc "tasknest/internal/tasks/ports/services"
	"tasknest/pkg/logger"
)

const (
	msgLoginAttempt        = "login attempt"
	msgLoginNonExistent    = "login attempt with non-existent username"
	msgInvalidPasswordAuth = "invalid password provided"
	msgUserLoggedIn        = "user logged in successfully"
	msgStartRegistration   = "starting user registration"
	msgUserRegistered      = "user registered successfully"
)

// AuthUseCase реализует аутентификацию: проверку учетных данных по хэшу
// пароля и выдачу токена сессии, которым слой представления скоупит
// дальнейшие операции с задачами.
type AuthUseCase struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
}

// NewAuthUseCase создает новый экземпляр сервиса аутентификации.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// Register создает нового пользователя с предоставленными учетными данными.
func (a *AuthUseCase) Register(ctx context.Context, username, password string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", "AuthUseCase.Register"))
	log.Debug(ctx, msgStartRegistration)

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("validating username: %w", entities.ErrEmptyUsername)
	}
	if len(username) > entities.MaxUsernameLength {
		return nil, fmt.Errorf("validating username: %w", entities.ErrUsernameTooLong)
	}
	if len(password) < entities.MinPasswordLength {
		return nil, fmt.Errorf("validating password: %w", entities.ErrPasswordTooShort)
	}

	hash, err := a.passwordSvc.Hash(ctx, password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user, err := a.userRepo.Create(ctx, &entities.User{
		Username:     username,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, entities.ErrUsernameTaken) {
			return nil, entities.ErrUsernameTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	log.Info(ctx, msgUserRegistered, zap.Int64("userID", user.ID))
	return user, nil
}

// Login проверяет учетные данные и возвращает токен сессии.
// Несуществующий пользователь и неверный пароль неразличимы для вызывающего.
func (a *AuthUseCase) Login(ctx context.Context, username, password string) (string, *entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", "AuthUseCase.Login"))
	log.Debug(ctx, msgLoginAttempt, zap.String("username", username))

	user, err := a.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			return "", nil, entities.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("finding user: %w", err)
	}

	ok, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		return "", nil, fmt.Errorf("verifying password: %w", err)
	}
	if !ok {
		log.Debug(ctx, msgInvalidPasswordAuth)
		return "", nil, entities.ErrInvalidCredentials
	}

	token, err := a.tokenSvc.Generate(ctx, user.ID, user.Username)
	if err != nil {
		return "", nil, fmt.Errorf("generating token: %w", err)
	}

	log.Info(ctx, msgUserLoggedIn, zap.Int64("userID", user.ID))
	return token, user, nil
}
