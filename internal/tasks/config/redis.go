package config

import (
	"fmt"
	"time"
)

// RedisConfig содержит настройки подключения к Redis.
// Кэш опционален: при Enabled=false сервис работает напрямую с базой.
type RedisConfig struct {
	Enabled        bool          `yaml:"enabled" env:"TASKS_REDIS_ENABLED" env-default:"false"`
	Host           string        `yaml:"host" env:"TASKS_REDIS_HOST" env-default:"0.0.0.0"`
	Port           int           `yaml:"port" env:"TASKS_REDIS_PORT" env-default:"6379"`
	Password       string        `yaml:"password" env:"TASKS_REDIS_PASSWORD" env-default:""`
	DB             int           `yaml:"db" env:"TASKS_REDIS_DB" env-default:"0"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"TASKS_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"TASKS_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"TASKS_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	DefaultTTL     time.Duration `yaml:"default_ttl" env:"TASKS_REDIS_DEFAULT_TTL" env-default:"5m"`
}

// GetAddress возвращает адрес Redis сервера.
func (r *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
