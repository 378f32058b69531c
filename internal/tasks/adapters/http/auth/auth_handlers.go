// Package auth содержит HTTP-обработчики для регистрации и входа.
package auth

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"tasknest/internal/tasks/app"
	"tasknest/internal/tasks/app/dto"
	"tasknest/internal/tasks/domain/entities"
	"tasknest/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister = "auth handler: register"
	LogHandlerLogin    = "auth handler: login"

	ErrorInvalidRequest     = "invalid request"
	ErrorCredentialsNeeded  = "username and password are required"
	ErrorInvalidCredentials = "invalid username or password"
	ErrorUsernameTaken      = "username is already taken"
	ErrorInternal           = "internal server error"
)

func sendErrorResponse(ctx fiber.Ctx, statusCode int, message string) error {
	if err := ctx.Status(statusCode).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Handler содержит HTTP обработчики для аутентификации.
type Handler struct {
	authUseCase *app.AuthUseCase
}

// NewHandler создает новый экземпляр обработчика аутентификации.
func NewHandler(authUseCase *app.AuthUseCase) *Handler {
	return &Handler{
		authUseCase: authUseCase,
	}
}

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, fiber.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.Username == "" || req.Password == "" {
		return sendErrorResponse(ctx, fiber.StatusBadRequest, ErrorCredentialsNeeded)
	}

	user, err := h.authUseCase.Register(requestCtx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrUsernameTaken):
			return sendErrorResponse(ctx, fiber.StatusConflict, ErrorUsernameTaken)
		case errors.Is(err, entities.ErrEmptyUsername),
			errors.Is(err, entities.ErrUsernameTooLong),
			errors.Is(err, entities.ErrPasswordTooShort):
			return sendErrorResponse(ctx, fiber.StatusBadRequest, err.Error())
		default:
			log.Error(requestCtx, "failed to register user", zap.Error(err))
			return sendErrorResponse(ctx, fiber.StatusInternalServerError, ErrorInternal)
		}
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(dto.UserResponse{
		UserID:    user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Login обрабатывает запрос на вход пользователя.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, fiber.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.Username == "" || req.Password == "" {
		return sendErrorResponse(ctx, fiber.StatusBadRequest, ErrorCredentialsNeeded)
	}

	token, user, err := h.authUseCase.Login(requestCtx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidCredentials) {
			return sendErrorResponse(ctx, fiber.StatusUnauthorized, ErrorInvalidCredentials)
		}
		log.Error(requestCtx, "failed to login user", zap.Error(err))
		return sendErrorResponse(ctx, fiber.StatusInternalServerError, ErrorInternal)
	}

	if err := ctx.Status(fiber.StatusOK).JSON(dto.TokenResponse{
		UserID:      user.ID,
		Username:    user.Username,
		AccessToken: token,
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}
