package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/loinx/user-management/internal/api/middleware"
	"github.com/loinx/user-management/internal/core/domain"
)

// requireCaller extracts the user injected by the Auth middleware and
// performs a fast-fail check before any service call: an absent caller
// means the route was wired without Auth, which must read as 401, not
// as a nil-pointer panic deeper in the handler.
func requireCaller(c echo.Context) (*domain.User, error) {
	caller := middleware.Caller(c)
	if caller == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return caller, nil
}
