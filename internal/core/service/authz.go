package service

import "github.com/loinx/user-management/internal/core/domain"

// Authorization guards. Callers pass the user freshly loaded by the
// auth middleware, so role checks always see the directory's current
// role set rather than claims embedded in the token at mint time.
// Authentication is asserted upstream; a nil caller here is a denial,
// not a 401.

// RequireRole allows the call iff the caller's role set contains role.
func RequireRole(caller *domain.User, role domain.Role) error {
	if caller == nil || !caller.HasRole(role) {
		return domain.ErrForbidden
	}
	return nil
}

// RequireSelfOrRole allows the call iff the caller is the target user
// or holds the given role.
func RequireSelfOrRole(caller *domain.User, targetID string, role domain.Role) error {
	if caller != nil && caller.ID == targetID {
		return nil
	}
	return RequireRole(caller, role)
}
