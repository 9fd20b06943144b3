package service

import (
	"errors"
	"testing"

	"github.com/loinx/user-management/internal/core/domain"
)

func TestRequireRole(t *testing.T) {
	plain := &domain.User{ID: "u1", Roles: []domain.Role{domain.RoleUser}}
	admin := &domain.User{ID: "u2", Roles: []domain.Role{domain.RoleAdmin, domain.RoleUser}}

	if err := RequireRole(plain, domain.RoleAdmin); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected deny for {USER}, got %v", err)
	}
	if err := RequireRole(admin, domain.RoleAdmin); err != nil {
		t.Fatalf("expected allow for {ADMIN, USER}, got %v", err)
	}
	if err := RequireRole(nil, domain.RoleAdmin); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected deny for nil caller, got %v", err)
	}
}

func TestRequireSelfOrRole(t *testing.T) {
	plain := &domain.User{ID: "u1", Roles: []domain.Role{domain.RoleUser}}

	if err := RequireSelfOrRole(plain, "u1", domain.RoleAdmin); err != nil {
		t.Fatalf("self access should be allowed without ADMIN, got %v", err)
	}
	if err := RequireSelfOrRole(plain, "u2", domain.RoleAdmin); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected deny for other user without ADMIN, got %v", err)
	}

	admin := &domain.User{ID: "u3", Roles: []domain.Role{domain.RoleAdmin}}
	if err := RequireSelfOrRole(admin, "u2", domain.RoleAdmin); err != nil {
		t.Fatalf("admin should reach any target, got %v", err)
	}
}
