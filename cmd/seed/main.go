// Command seed наполняет базу сервиса задач демонстрационными данными.
package main

import (
	"context"
	"os"
	"strings"

	"go.uber.org/zap"

	"tasknest/internal/tasks/adapters/postgres"
	"tasknest/internal/tasks/adapters/services"
	"tasknest/internal/tasks/config"
	"tasknest/internal/tasks/db"
	"tasknest/internal/tasks/seed"
	"tasknest/pkg/logger"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "TASKS_LOGGER_MODE"
	EnvLoggerLevel = "TASKS_LOGGER_LEVEL"
)

// Константы для сообщений.
const (
	ErrInitLogger   = "failed to initialize logger"
	ErrLoadConfig   = "failed to load configuration"
	ErrInitDatabase = "failed to initialize database"
	ErrRunSeed      = "failed to seed demo data"

	LogSeedDone = "demo data seeded"
)

const migrationsDir = "migrations/tasks"

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}
	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Error(ctx, ErrLoadConfig, zap.Error(err))
		os.Exit(1)
	}

	database, err := db.New(ctx, &cfg.Postgres, migrationsDir)
	if err != nil {
		log.Error(ctx, ErrInitDatabase, zap.Error(err))
		os.Exit(1)
	}
	defer database.Close(ctx)

	repos := postgres.NewRepositoryFactory(database.Pool())
	passwordSvc := services.NewPasswordService(cfg.Auth.HashAlgo, cfg.Auth.BcryptCost)

	seeder := seed.NewSeeder(repos.UserRepository(), repos.TaskRepository(), passwordSvc)

	inserted, err := seeder.Run(ctx)
	if err != nil {
		log.Error(ctx, ErrRunSeed, zap.Error(err))
		os.Exit(1)
	}

	log.Info(ctx, LogSeedDone, zap.Int("tasks_inserted", inserted))
}
