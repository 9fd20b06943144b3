package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/loinx/user-management/internal/core/domain"
	"github.com/loinx/user-management/internal/core/ports"
)

// AuthService implements registration, login and token refresh.
type AuthService struct {
	users     ports.UserRepository
	tokens    ports.TokenService
	lastLogin ports.LastLoginStore
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, lastLogin ports.LastLoginStore, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, lastLogin: lastLogin, log: log}
}

// Register creates a user with the default USER role and issues a
// token for the new identity. A duplicate email surfaces as
// domain.ErrEmailExists.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (string, *domain.User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Roles:        []domain.Role{domain.RoleUser},
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(created, nil)
	if err != nil {
		return "", nil, err
	}
	return token, created, nil
}

// Login verifies the credentials and issues a token for the record
// looked up by email. An unknown email, a disabled account and a wrong
// password all collapse to domain.ErrInvalidCredentials so the
// response never reveals whether the email is registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !user.Enabled || !VerifyPassword(password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user, nil)
	if err != nil {
		return "", nil, err
	}

	if s.lastLogin != nil {
		if err := s.lastLogin.Touch(ctx, user.ID, time.Now().UTC()); err != nil {
			s.log.Warn().Err(err).Str("user_id", user.ID).Msg("last-login touch failed")
		}
	}

	return token, user, nil
}

// Refresh issues a new token for an already-authenticated caller.
// No rotation state is kept; the old token stays usable until expiry.
func (s *AuthService) Refresh(ctx context.Context, user *domain.User) (string, error) {
	return s.tokens.Issue(user, nil)
}
