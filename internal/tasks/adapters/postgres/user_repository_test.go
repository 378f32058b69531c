package postgres_test

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasknest/internal/tasks/adapters/postgres"
	"tasknest/internal/tasks/domain/entities"
)

var userColumns = []string{"id", "username", "password_hash", "created_at"}

func userRow(id int64, username, hash string) *pgxmock.Rows {
	return pgxmock.NewRows(userColumns).AddRow(id, username, hash, time.Now().UTC())
}

func TestUserRepositoryCreate(t *testing.T) {
	ctx := testContext(t)

	t.Run("successful creation", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("juan", "somehash").
			WillReturnRows(userRow(1, "juan", "somehash"))

		repo := postgres.NewUserRepository(mock)
		created, err := repo.Create(ctx, &entities.User{Username: "juan", PasswordHash: "somehash"})

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, int64(1), created.ID)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate username", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("juan", "somehash").
			WillReturnError(&pgconn.PgError{Code: "23505"})

		repo := postgres.NewUserRepository(mock)
		created, err := repo.Create(ctx, &entities.User{Username: "juan", PasswordHash: "somehash"})

		require.ErrorIs(t, err, entities.ErrUsernameTaken)
		require.Nil(t, created)
	})
}

func TestUserRepositoryCreateIfAbsent(t *testing.T) {
	ctx := testContext(t)

	t.Run("inserts then returns the row", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`INSERT INTO users .+ ON CONFLICT \(username\) DO NOTHING`).
			WithArgs("juan", "somehash").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectQuery(`SELECT .+ FROM users WHERE username = \$1`).
			WithArgs("juan").
			WillReturnRows(userRow(1, "juan", "somehash"))

		repo := postgres.NewUserRepository(mock)
		user, err := repo.CreateIfAbsent(ctx, &entities.User{Username: "juan", PasswordHash: "somehash"})

		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, int64(1), user.ID)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("pre-existing row is returned untouched", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`INSERT INTO users .+ ON CONFLICT \(username\) DO NOTHING`).
			WithArgs("juan", "otherhash").
			WillReturnResult(pgxmock.NewResult("INSERT", 0))
		mock.ExpectQuery(`SELECT .+ FROM users WHERE username = \$1`).
			WithArgs("juan").
			WillReturnRows(userRow(1, "juan", "somehash"))

		repo := postgres.NewUserRepository(mock)
		user, err := repo.CreateIfAbsent(ctx, &entities.User{Username: "juan", PasswordHash: "otherhash"})

		require.NoError(t, err)
		assert.Equal(t, "somehash", user.PasswordHash)
	})
}

func TestUserRepositoryFind(t *testing.T) {
	ctx := testContext(t)

	t.Run("find by username", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT .+ FROM users WHERE username = \$1`).
			WithArgs("juan").
			WillReturnRows(userRow(1, "juan", "somehash"))

		repo := postgres.NewUserRepository(mock)
		user, err := repo.FindByUsername(ctx, "juan")

		require.NoError(t, err)
		assert.Equal(t, "juan", user.Username)
	})

	t.Run("find by id not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1`).
			WithArgs(int64(99)).
			WillReturnError(pgx.ErrNoRows)

		repo := postgres.NewUserRepository(mock)
		user, err := repo.FindByID(ctx, 99)

		require.ErrorIs(t, err, entities.ErrUserNotFound)
		require.Nil(t, user)
	})
}

func TestUserRepositoryDelete(t *testing.T) {
	ctx := testContext(t)

	t.Run("deletes tasks and user in one transaction", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM tasks WHERE user_id = \$1`).
			WithArgs(int64(1)).
			WillReturnResult(pgxmock.NewResult("DELETE", 3))
		mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
			WithArgs(int64(1)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectCommit()
		mock.ExpectRollback()

		repo := postgres.NewUserRepository(mock)
		require.NoError(t, repo.Delete(ctx, 1))

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing user rolls back", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM tasks WHERE user_id = \$1`).
			WithArgs(int64(9)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
			WithArgs(int64(9)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectRollback()

		repo := postgres.NewUserRepository(mock)
		err = repo.Delete(ctx, 9)

		require.ErrorIs(t, err, entities.ErrUserNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
