package service

import (
	"context"
	"errors"
	"time"

	"github.com/loinx/user-management/internal/core/domain"
	"github.com/loinx/user-management/internal/core/ports"
)

// UserService implements CRUD on the user directory.
type UserService struct {
	users ports.UserRepository
}

func NewUserService(users ports.UserRepository) *UserService {
	return &UserService{users: users}
}

// Create persists a new user. Roles default to {USER} when empty and
// unknown roles are rejected. The repository's unique index is the
// authoritative duplicate-email guard.
func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	roles := in.Roles
	if len(roles) == 0 {
		roles = []domain.Role{domain.RoleUser}
	}
	for _, r := range roles {
		if !domain.ValidRole(r) {
			return nil, domain.ErrInvalidRole
		}
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	enabled := true
	if in.Enabled != nil {
		enabled = *in.Enabled
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Roles:        roles,
		Enabled:      enabled,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.users.Create(ctx, user)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.FindAll(ctx)
}

// Update overwrites the record's fields. The password is re-hashed
// only when a new plaintext is supplied; roles and enabled are applied
// only when present in the input. Changing the email to one owned by a
// different user fails with domain.ErrEmailExists.
func (s *UserService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != "" && in.Email != user.Email {
		other, err := s.users.FindByEmail(ctx, in.Email)
		if err == nil && other.ID != id {
			return nil, domain.ErrEmailExists
		}
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		user.Email = in.Email
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Password != "" {
		hash, err := HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if in.Roles != nil {
		for _, r := range in.Roles {
			if !domain.ValidRole(r) {
				return nil, domain.ErrInvalidRole
			}
		}
		user.Roles = in.Roles
	}
	if in.Enabled != nil {
		user.Enabled = *in.Enabled
	}
	user.UpdatedAt = time.Now().UTC()

	return s.users.Update(ctx, user)
}

// Delete removes the record permanently. There is no tombstone.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}
