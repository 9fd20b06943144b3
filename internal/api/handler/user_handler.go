package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/loinx/user-management/internal/api/metrics"
	"github.com/loinx/user-management/internal/core/domain"
	"github.com/loinx/user-management/internal/core/ports"
	"github.com/loinx/user-management/internal/core/service"
)

type UserHandler struct {
	userService ports.UserService
	lastLogin   ports.LastLoginStore
}

func NewUserHandler(userService ports.UserService, lastLogin ports.LastLoginStore) *UserHandler {
	return &UserHandler{userService: userService, lastLogin: lastLogin}
}

type createUserRequest struct {
	Email    string        `json:"email" validate:"required,email"`
	Password string        `json:"password" validate:"required,min=8"`
	Name     string        `json:"name" validate:"required"`
	Roles    []domain.Role `json:"roles"`
	Enabled  *bool         `json:"enabled"`
}

type updateUserRequest struct {
	Email    string        `json:"email" validate:"omitempty,email"`
	Password string        `json:"password" validate:"omitempty,min=8"`
	Name     string        `json:"name"`
	Roles    []domain.Role `json:"roles"`
	Enabled  *bool         `json:"enabled"`
}

// List returns all users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	if err := service.RequireRole(caller, domain.RoleAdmin); err != nil {
		return err
	}

	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get returns one user; callers may read themselves, admins anyone.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	if err := service.RequireSelfOrRole(caller, id, domain.RoleAdmin); err != nil {
		return err
	}

	user, err := h.userService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Create adds a user with an explicit role set (admin only).
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	if err := service.RequireRole(caller, domain.RoleAdmin); err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userService.Create(c.Request().Context(), ports.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Roles:    req.Roles,
		Enabled:  req.Enabled,
	})
	if err != nil {
		return err
	}

	metrics.UserOperationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, user)
}

// Update overwrites a user's fields; callers may update themselves,
// admins anyone. Role and enabled changes are admin-only and silently
// withheld from self-service updates.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to overwrite"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	if err := service.RequireSelfOrRole(caller, id, domain.RoleAdmin); err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	in := ports.UpdateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	}
	if caller.HasRole(domain.RoleAdmin) {
		in.Roles = req.Roles
		in.Enabled = req.Enabled
	}

	user, err := h.userService.Update(c.Request().Context(), id, in)
	if err != nil {
		return err
	}

	metrics.UserOperationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, user)
}

// Delete removes a user permanently (admin only).
//
// @Summary      Delete a user
// @Tags         users
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	if err := service.RequireRole(caller, domain.RoleAdmin); err != nil {
		return err
	}

	if err := h.userService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.UserOperationsTotal.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated caller's own record, enriched with the
// last-login time when one is known.
//
// @Summary      Get the current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	if h.lastLogin != nil {
		if at, ok, err := h.lastLogin.Get(c.Request().Context(), caller.ID); err == nil && ok {
			caller.LastLogin = &at
		}
	}
	return c.JSON(http.StatusOK, caller)
}
