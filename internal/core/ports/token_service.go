package ports

import "github.com/loinx/user-management/internal/core/domain"

// TokenService issues and checks signed bearer tokens.
type TokenService interface {
	// Issue returns a signed token for user with extra claims merged in.
	Issue(user *domain.User, extraClaims map[string]any) (string, error)
	// ExtractSubject decodes the subject claim after verifying the
	// signature. Expiry is not checked; callers that need a validity
	// decision use Validate. Returns domain.ErrMalformedToken when the
	// token cannot be parsed or the signature does not verify.
	ExtractSubject(token string) (string, error)
	// Validate reports whether token is currently valid for user:
	// signature verifies, expiry has not passed, and the subject claim
	// equals the user's email. Any failure yields false.
	Validate(token string, user *domain.User) bool
}
