package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasknest/internal/tasks/adapters/services"
	svc "tasknest/internal/tasks/ports/services"
)

func TestSHA256Service(t *testing.T) {
	ctx := context.Background()
	hasher := services.NewSHA256()

	t.Run("deterministic digest", func(t *testing.T) {
		first, err := hasher.Hash(ctx, "admin123")
		require.NoError(t, err)
		second, err := hasher.Hash(ctx, "admin123")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("matches seeded digest format", func(t *testing.T) {
		// sha256("admin123") - хэш, который записывает загрузчик демо-данных.
		hash, err := hasher.Hash(ctx, "admin123")
		require.NoError(t, err)
		assert.Equal(t, "240be518fabd2724ddb6f04eeb1da5967448d7e831c08c8fa822809f74c720a9", hash)
	})

	t.Run("verify", func(t *testing.T) {
		hash, err := hasher.Hash(ctx, "colab123")
		require.NoError(t, err)

		ok, err := hasher.Verify(ctx, "colab123", hash)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = hasher.Verify(ctx, "wrong", hash)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("empty password rejected", func(t *testing.T) {
		_, err := hasher.Hash(ctx, "")
		require.ErrorIs(t, err, svc.ErrInvalidPassword)

		_, err = hasher.Verify(ctx, "", "hash")
		require.ErrorIs(t, err, svc.ErrInvalidPassword)
	})
}

func TestBcryptService(t *testing.T) {
	ctx := context.Background()
	hasher := services.NewBcrypt(4)

	t.Run("round trip", func(t *testing.T) {
		hash, err := hasher.Hash(ctx, "secret-password")
		require.NoError(t, err)
		require.NotEmpty(t, hash)

		ok, err := hasher.Verify(ctx, "secret-password", hash)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = hasher.Verify(ctx, "other-password", hash)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("empty password rejected", func(t *testing.T) {
		_, err := hasher.Hash(ctx, "")
		require.ErrorIs(t, err, svc.ErrInvalidPassword)
	})
}

func TestNewPasswordService(t *testing.T) {
	assert.IsType(t, &services.ServiceBcrypt{}, services.NewPasswordService(services.HashAlgoBcrypt, 10))
	assert.IsType(t, &services.ServiceSHA256{}, services.NewPasswordService(services.HashAlgoSHA256, 0))
	assert.IsType(t, &services.ServiceSHA256{}, services.NewPasswordService("", 0))
}

func TestJWTService(t *testing.T) {
	ctx := context.Background()

	t.Run("generate and validate", func(t *testing.T) {
		tokens := services.NewJWT("test-secret", time.Hour)

		token, err := tokens.Generate(ctx, 42, "juan")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		userID, err := tokens.Validate(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, int64(42), userID)
	})

	t.Run("expired token", func(t *testing.T) {
		tokens := services.NewJWT("test-secret", -time.Minute)

		token, err := tokens.Generate(ctx, 42, "juan")
		require.NoError(t, err)

		_, err = tokens.Validate(ctx, token)
		require.ErrorIs(t, err, svc.ErrExpiredToken)
	})

	t.Run("foreign signature rejected", func(t *testing.T) {
		issuer := services.NewJWT("issuer-secret", time.Hour)
		verifier := services.NewJWT("other-secret", time.Hour)

		token, err := issuer.Generate(ctx, 42, "juan")
		require.NoError(t, err)

		_, err = verifier.Validate(ctx, token)
		require.ErrorIs(t, err, svc.ErrInvalidToken)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		tokens := services.NewJWT("test-secret", time.Hour)

		_, err := tokens.Validate(ctx, "not-a-token")
		require.ErrorIs(t, err, svc.ErrInvalidToken)
	})
}
