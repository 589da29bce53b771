package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"twoem/internal/config"
	"twoem/internal/model"
	"twoem/internal/repository"
)

// RegisterInput carries a new account request.
type RegisterInput struct {
	Email    string
	FullName string
	Password string
}

// AuthService defines account and token use cases.
type AuthService interface {
	// Register creates a regular (non-admin) account.
	Register(ctx context.Context, in RegisterInput) (*model.User, error)

	// Login verifies credentials and returns a signed bearer token plus
	// the account it belongs to.
	Login(ctx context.Context, email, password string) (string, *model.User, error)

	// GetUser fetches an account by ID.
	GetUser(ctx context.Context, id string) (*model.User, error)

	// EnsureAdmin creates the bootstrap admin account if it does not
	// exist. Called once at startup; a no-op on later runs.
	EnsureAdmin(ctx context.Context) error
}

type authService struct {
	repo repository.UserRepository
	cfg  config.AuthConfig
}

// NewAuthService constructs an AuthService.
func NewAuthService(repo repository.UserRepository, cfg config.AuthConfig) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if _, err := s.repo.FindByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		ID:             uuid.New().String(),
		Email:          in.Email,
		FullName:       in.FullName,
		HashedPassword: string(hash),
		CreatedAt:      time.Now().UTC(),
	}
	return s.repo.Create(ctx, u)
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	ttl := time.Duration(s.cfg.TokenTTLHours) * time.Hour
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   u.ID,
		"email": u.Email,
		"admin": u.IsAdmin,
		"exp":   time.Now().Add(ttl).Unix(),
	})
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, u, nil
}

func (s *authService) GetUser(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *authService) EnsureAdmin(ctx context.Context) error {
	if s.cfg.AdminEmail == "" || s.cfg.AdminPassword == "" {
		return nil
	}
	if _, err := s.repo.FindByEmail(ctx, s.cfg.AdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	_, err = s.repo.Create(ctx, &model.User{
		ID:             uuid.New().String(),
		Email:          s.cfg.AdminEmail,
		FullName:       "Administrator",
		IsAdmin:        true,
		HashedPassword: string(hash),
		CreatedAt:      time.Now().UTC(),
	})
	return err
}
