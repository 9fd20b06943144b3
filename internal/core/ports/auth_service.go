package ports

import (
	"context"

	"github.com/loinx/user-management/internal/core/domain"
)

// AuthService implements registration, login and token refresh.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Refresh(ctx context.Context, user *domain.User) (string, error)
}
