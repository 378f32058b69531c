// Package postgres предоставляет соединение с Postgres и транзакционные границы.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"tasknest/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogConnecting = "connecting to Postgres database"
	LogConnected  = "successfully connected to Postgres"
	LogClosing    = "closing Postgres connection pool"
)

// Константы для сообщений об ошибках.
const (
	ErrParseConfig  = "failed to parse connection config"
	ErrCreatePool   = "failed to create connection pool"
	ErrPingDatabase = "failed to ping database"
	ErrBeginTx      = "failed to begin transaction"
	ErrCommitTx     = "failed to commit transaction"
)

// Коды SQLSTATE для нарушений целостности.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

// Database представляет соединение с Postgres.
type Database struct {
	pool *pgxpool.Pool
}

// New создает новое соединение с базой данных Postgres.
func New(ctx context.Context, dsn string, minConn, maxConn int) (*Database, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogConnecting)

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Error(ctx, ErrParseConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrParseConfig, err)
	}

	poolCfg.MinConns = int32(minConn)
	poolCfg.MaxConns = int32(maxConn)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Error(ctx, ErrCreatePool, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrCreatePool, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		log.Error(ctx, ErrPingDatabase, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrPingDatabase, err)
	}

	log.Info(ctx, LogConnected)
	return &Database{pool: pool}, nil
}

// Pool возвращает подключение к пулу соединений.
func (db *Database) Pool() *pgxpool.Pool {
	return db.pool
}

// Close закрывает соединение с базой данных.
func (db *Database) Close(ctx context.Context) {
	logger.Log(ctx).Info(ctx, LogClosing)
	db.pool.Close()
}

// Ping проверяет доступность базы данных.
func (db *Database) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Beginner открывает транзакции. Интерфейсу соответствуют pgxpool.Pool
// и pgxmock в тестах.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// WithinTx выполняет fn в границах одной транзакции над db: commit при nil,
// rollback при ошибке или панике.
func (db *Database) WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	return WithinTx(ctx, db.pool, fn)
}

// WithinTx выполняет fn в границах одной транзакции: commit при nil,
// rollback при ошибке или панике. Ошибка fn возвращается без обертки.
func WithinTx(ctx context.Context, db Beginner, fn func(ctx context.Context, tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrBeginTx, err)
	}

	defer func() {
		// Rollback после commit - no-op, ошибка здесь не интересна.
		_ = tx.Rollback(ctx)
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrCommitTx, err)
	}
	return nil
}

// IsUniqueViolation сообщает, вызвана ли ошибка нарушением уникальности.
func IsUniqueViolation(err error) bool {
	return hasSQLState(err, uniqueViolationCode)
}

// IsForeignKeyViolation сообщает, вызвана ли ошибка нарушением внешнего ключа.
func IsForeignKeyViolation(err error) bool {
	return hasSQLState(err, foreignKeyViolationCode)
}

func hasSQLState(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
