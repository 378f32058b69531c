// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"tasknest/pkg/logger"
)

// Константы для логирования и ответов.
const (
	LogPanicRecovered    = "recovered from handler panic"
	ErrMsgInternalServer = "Internal Server Error"
)

// NewRecoveryMiddleware перехватывает панику обработчика и превращает ее
// в ответ 500, не роняя процесс.
func NewRecoveryMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				requestCtx := ctx.Context()
				logger.Log(requestCtx).Error(requestCtx, LogPanicRecovered,
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)

				err = ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": ErrMsgInternalServer,
				})
			}
		}()

		return ctx.Next()
	}
}
