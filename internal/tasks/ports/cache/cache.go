// Package cache defines the cache interface for the task service.
package cache

import (
	"context"
	"time"
)

// Cache определяет интерфейс кэша значений по ключу.
// Get возвращает пустую строку без ошибки при отсутствии ключа.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
