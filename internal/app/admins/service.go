package admins

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backstage/internal/auth"
	"backstage/internal/models"
	"backstage/internal/store"
)

// Store captures the persistence needs for admin accounts.
type Store interface {
	CreateAdmin(ctx context.Context, admin models.Admin) (models.Admin, error)
	AdminByUsername(ctx context.Context, username string) (models.Admin, error)
}

// Tokens issues and verifies session tokens.
type Tokens interface {
	Issue(admin models.Admin) (string, time.Time, error)
	Verify(token string) (*auth.Claims, error)
}

// Service handles admin registration, login and token checks.
type Service interface {
	Register(ctx context.Context, input models.AdminRegistration) (models.Admin, error)
	Login(ctx context.Context, creds models.Credentials) (models.Session, error)
	VerifyToken(token string) (*auth.Claims, error)
	EnsureAdmin(ctx context.Context, username, password string) (bool, error)
}

type service struct {
	store  Store
	tokens Tokens
}

// New constructs a Service backed by the provided Store and token issuer.
func New(store Store, tokens Tokens) Service {
	return &service{store: store, tokens: tokens}
}

func (s *service) Register(ctx context.Context, input models.AdminRegistration) (models.Admin, error) {
	if err := ctx.Err(); err != nil {
		return models.Admin{}, err
	}
	if err := models.Validate(input); err != nil {
		return models.Admin{}, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return models.Admin{}, err
	}
	return s.store.CreateAdmin(ctx, models.Admin{
		Username:     input.Username,
		PasswordHash: hash,
		Phone:        input.Phone,
	})
}

// Login checks the credentials and issues a session token. Unknown users and
// wrong passwords both yield auth.ErrInvalidCredentials.
func (s *service) Login(ctx context.Context, creds models.Credentials) (models.Session, error) {
	if err := ctx.Err(); err != nil {
		return models.Session{}, err
	}
	if err := models.Validate(creds); err != nil {
		return models.Session{}, err
	}

	admin, err := s.store.AdminByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			auth.BurnPasswordCheck(creds.Password)
			return models.Session{}, auth.ErrInvalidCredentials
		}
		return models.Session{}, err
	}

	if err := auth.VerifyPassword(admin.PasswordHash, creds.Password); err != nil {
		return models.Session{}, err
	}

	token, expiresAt, err := s.tokens.Issue(admin)
	if err != nil {
		return models.Session{}, fmt.Errorf("issue token: %w", err)
	}
	return models.Session{Token: token, ExpiresAt: expiresAt, Admin: admin}, nil
}

func (s *service) VerifyToken(token string) (*auth.Claims, error) {
	return s.tokens.Verify(token)
}

// EnsureAdmin creates the admin unless the username is taken. It reports
// whether a new account was written.
func (s *service) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	_, err := s.Register(ctx, models.AdminRegistration{Username: username, Password: password})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, store.ErrAdminExists):
		return false, nil
	default:
		return false, err
	}
}
