package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"twoem/internal/config"
	"twoem/internal/model"
	repoMocks "twoem/internal/repository/mocks"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testAuthCfg = config.AuthConfig{
	JWTSecret:     "test-secret",
	TokenTTLHours: 1,
	AdminEmail:    "admin@example.com",
	AdminPassword: "admin-pass",
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates account with hashed password", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		svc := NewAuthService(mRepo, testAuthCfg)

		mRepo.On("FindByEmail", ctx, "new@example.com").Return(nil, sql.ErrNoRows)
		mRepo.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
			return u.Email == "new@example.com" &&
				!u.IsAdmin &&
				u.HashedPassword != "secret" &&
				bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte("secret")) == nil
		})).Return(&model.User{ID: "u1", Email: "new@example.com"}, nil)

		u, err := svc.Register(ctx, RegisterInput{
			Email:    "new@example.com",
			FullName: "New User",
			Password: "secret",
		})
		assert.NoError(t, err)
		assert.Equal(t, "u1", u.ID)
		mRepo.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		svc := NewAuthService(mRepo, testAuthCfg)

		mRepo.On("FindByEmail", ctx, "dup@example.com").
			Return(&model.User{ID: "u1", Email: "dup@example.com"}, nil)

		_, err := svc.Register(ctx, RegisterInput{Email: "dup@example.com", Password: "x"})
		assert.ErrorIs(t, err, ErrEmailTaken)
		mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	stored := &model.User{
		ID:             "u1",
		Email:          "user@example.com",
		IsAdmin:        true,
		HashedPassword: hashFor(t, "secret"),
	}

	t.Run("issues token with identity claims", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		svc := NewAuthService(mRepo, testAuthCfg)

		mRepo.On("FindByEmail", ctx, "user@example.com").Return(stored, nil)

		signed, u, err := svc.Login(ctx, "user@example.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, "u1", u.ID)

		token, err := jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
			return []byte(testAuthCfg.JWTSecret), nil
		})
		require.NoError(t, err)
		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, "u1", claims["sub"])
		assert.Equal(t, "user@example.com", claims["email"])
		assert.Equal(t, true, claims["admin"])

		exp := time.Unix(int64(claims["exp"].(float64)), 0)
		assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)
	})

	t.Run("wrong password", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		svc := NewAuthService(mRepo, testAuthCfg)

		mRepo.On("FindByEmail", ctx, "user@example.com").Return(stored, nil)

		_, _, err := svc.Login(ctx, "user@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		svc := NewAuthService(mRepo, testAuthCfg)

		mRepo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, sql.ErrNoRows)

		_, _, err := svc.Login(ctx, "nobody@example.com", "secret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds admin on first run", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		svc := NewAuthService(mRepo, testAuthCfg)

		mRepo.On("FindByEmail", ctx, testAuthCfg.AdminEmail).Return(nil, sql.ErrNoRows)
		mRepo.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
			return u.Email == testAuthCfg.AdminEmail && u.IsAdmin
		})).Return(&model.User{ID: "admin-1"}, nil)

		assert.NoError(t, svc.EnsureAdmin(ctx))
		mRepo.AssertExpectations(t)
	})

	t.Run("no-op when admin exists", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		svc := NewAuthService(mRepo, testAuthCfg)

		mRepo.On("FindByEmail", ctx, testAuthCfg.AdminEmail).
			Return(&model.User{ID: "admin-1", IsAdmin: true}, nil)

		assert.NoError(t, svc.EnsureAdmin(ctx))
		mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("no-op without bootstrap config", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		svc := NewAuthService(mRepo, config.AuthConfig{JWTSecret: "s"})

		assert.NoError(t, svc.EnsureAdmin(ctx))
		mRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})
}
