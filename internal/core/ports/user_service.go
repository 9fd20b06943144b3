package ports

import (
	"context"

	"github.com/loinx/user-management/internal/core/domain"
)

// CreateUserInput carries the fields accepted on admin user creation.
type CreateUserInput struct {
	Email    string
	Password string
	Name     string
	Roles    []domain.Role
	Enabled  *bool
}

// UpdateUserInput carries the fields accepted on user update. Password
// is re-hashed only when non-empty; Roles and Enabled are applied only
// when set, so callers can withhold them from non-admin requests.
type UpdateUserInput struct {
	Email    string
	Password string
	Name     string
	Roles    []domain.Role
	Enabled  *bool
}

// UserService implements CRUD on the user directory.
type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
