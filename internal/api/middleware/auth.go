package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/loinx/user-management/internal/core/domain"
	"github.com/loinx/user-management/internal/core/ports"
)

const callerKey = "caller"

// Auth validates the bearer token and injects the caller into context.
// The caller is re-read from the directory on every request so role
// checks downstream see the current role set, not the claims embedded
// at mint time. A token whose subject no longer resolves to a record,
// or that fails the subject-bound validation, is rejected with 401.
func Auth(tokens ports.TokenService, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}
			raw := parts[1]

			subject, err := tokens.ExtractSubject(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			caller, err := users.FindByEmail(c.Request().Context(), subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			if !tokens.Validate(raw, caller) {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}
			if !caller.Enabled {
				return echo.NewHTTPError(http.StatusUnauthorized, "account disabled")
			}

			c.Set(callerKey, caller)
			return next(c)
		}
	}
}

// Caller returns the authenticated user injected by Auth, or nil when
// the middleware did not run.
func Caller(c echo.Context) *domain.User {
	caller, _ := c.Get(callerKey).(*domain.User)
	return caller
}
