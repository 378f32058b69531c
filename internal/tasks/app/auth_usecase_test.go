package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tasknest/internal/tasks/app"
	"tasknest/internal/tasks/domain/entities"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) CreateIfAbsent(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) Hash(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) Verify(ctx context.Context, password, hash string) (bool, error) {
	args := m.Called(ctx, password, hash)
	return args.Bool(0), args.Error(1)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) Generate(ctx context.Context, userID int64, username string) (string, error) {
	args := m.Called(ctx, userID, username)
	return args.String(0), args.Error(1)
}

func (m *mockTokenService) Validate(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Error(1)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("success trims username and stores the hash", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)

		passwordSvc.On("Hash", ctx, "admin123").Return("digest", nil)
		userRepo.On("Create", ctx, mock.MatchedBy(func(u *entities.User) bool {
			return u.Username == "Juan" && u.PasswordHash == "digest"
		})).Return(&entities.User{ID: 1, Username: "Juan", PasswordHash: "digest"}, nil)

		uc := app.NewAuthUseCase(userRepo, passwordSvc, new(mockTokenService))
		user, err := uc.Register(ctx, "  Juan  ", "admin123")

		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		userRepo.AssertExpectations(t)
	})

	t.Run("empty username", func(t *testing.T) {
		uc := app.NewAuthUseCase(new(mockUserRepository), new(mockPasswordService), new(mockTokenService))
		_, err := uc.Register(ctx, "   ", "admin123")
		require.ErrorIs(t, err, entities.ErrEmptyUsername)
	})

	t.Run("short password", func(t *testing.T) {
		uc := app.NewAuthUseCase(new(mockUserRepository), new(mockPasswordService), new(mockTokenService))
		_, err := uc.Register(ctx, "Juan", "123")
		require.ErrorIs(t, err, entities.ErrPasswordTooShort)
	})

	t.Run("taken username", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)

		passwordSvc.On("Hash", ctx, "admin123").Return("digest", nil)
		userRepo.On("Create", ctx, mock.Anything).Return(nil, entities.ErrUsernameTaken)

		uc := app.NewAuthUseCase(userRepo, passwordSvc, new(mockTokenService))
		_, err := uc.Register(ctx, "Juan", "admin123")

		require.ErrorIs(t, err, entities.ErrUsernameTaken)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("success returns token and user", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)
		tokenSvc := new(mockTokenService)

		stored := &entities.User{ID: 1, Username: "Juan", PasswordHash: "digest"}
		userRepo.On("FindByUsername", ctx, "Juan").Return(stored, nil)
		passwordSvc.On("Verify", ctx, "admin123", "digest").Return(true, nil)
		tokenSvc.On("Generate", ctx, int64(1), "Juan").Return("token", nil)

		uc := app.NewAuthUseCase(userRepo, passwordSvc, tokenSvc)
		token, user, err := uc.Login(ctx, "Juan", "admin123")

		require.NoError(t, err)
		assert.Equal(t, "token", token)
		assert.Equal(t, stored, user)
	})

	t.Run("unknown username yields invalid credentials", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		userRepo.On("FindByUsername", ctx, "Nobody").Return(nil, entities.ErrUserNotFound)

		uc := app.NewAuthUseCase(userRepo, new(mockPasswordService), new(mockTokenService))
		_, _, err := uc.Login(ctx, "Nobody", "admin123")

		require.ErrorIs(t, err, entities.ErrInvalidCredentials)
	})

	t.Run("wrong password yields invalid credentials", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)

		stored := &entities.User{ID: 1, Username: "Juan", PasswordHash: "digest"}
		userRepo.On("FindByUsername", ctx, "Juan").Return(stored, nil)
		passwordSvc.On("Verify", ctx, "wrong", "digest").Return(false, nil)

		uc := app.NewAuthUseCase(userRepo, passwordSvc, new(mockTokenService))
		_, _, err := uc.Login(ctx, "Juan", "wrong")

		require.ErrorIs(t, err, entities.ErrInvalidCredentials)
	})
}
