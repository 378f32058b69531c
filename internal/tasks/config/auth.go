package config

import (
	"time"
)

// AuthConfig содержит настройки аутентификации.
type AuthConfig struct {
	SecretKey  string        `yaml:"secret_key" env:"TASKS_AUTH_SECRET_KEY" env-default:"development-secret"`
	TokenTTL   time.Duration `yaml:"token_ttl" env:"TASKS_AUTH_TOKEN_TTL" env-default:"24h"`
	HashAlgo   string        `yaml:"hash_algo" env:"TASKS_AUTH_HASH_ALGO" env-default:"sha256"`
	BcryptCost int           `yaml:"bcrypt_cost" env:"TASKS_AUTH_BCRYPT_COST" env-default:"10"`
}
