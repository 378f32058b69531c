package logger

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ctxKeyRequestID struct{}

// NewRequestIDContext привязывает идентификатор запроса к контексту.
// Пустой идентификатор заменяется свежесгенерированным.
func NewRequestIDContext(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = GenerateRequestID()
	}
	return context.WithValue(ctx, ctxKeyRequestID{}, requestID)
}

// GetRequestID возвращает идентификатор запроса, если он был привязан.
func GetRequestID(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(ctxKeyRequestID{}).(string)
	return requestID, ok
}

// GenerateRequestID возвращает новый случайный идентификатор запроса.
func GenerateRequestID() string {
	return uuid.NewString()
}

// WithRequestID возвращает логгер с полем request_id из контекста.
// Без идентификатора в контексте логгер остается прежним.
func (l *Logger) WithRequestID(ctx context.Context) *Logger {
	requestID, ok := GetRequestID(ctx)
	if !ok {
		return l
	}
	return l.With(zap.String(RequestID, requestID))
}
