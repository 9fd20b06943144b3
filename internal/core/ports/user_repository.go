package ports

import (
	"context"

	"github.com/loinx/user-management/internal/core/domain"
)

// UserRepository defines the interface for user record persistence.
// Implementations must enforce email uniqueness atomically at the
// storage layer; Create and Update return domain.ErrEmailExists when
// the email is already owned by another record.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]*domain.User, error)
}
