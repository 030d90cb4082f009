package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/pkg/auth"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/repositories"
)

// UserHandler handles account administration. Its routes are registered on
// an admin-only group.
type UserHandler struct {
	repo *repositories.UserRepository
}

// NewUserHandler creates a new user handler
func NewUserHandler(repo *repositories.UserRepository) *UserHandler {
	return &UserHandler{repo: repo}
}

// CreateUserRequest is the request body for creating a user
type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=admin user"`
}

// UpdateRoleRequest is the request body for changing a user's role
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin user"`
}

// UpdatePasswordRequest is the request body for resetting a user's password
type UpdatePasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

// RegisterRoutes registers the user administration routes
func (h *UserHandler) RegisterRoutes(g *echo.Group) {
	users := g.Group("/users")
	users.GET("", h.List)
	users.POST("", h.Create)
	users.PUT("/:id/role", h.UpdateRole)
	users.PUT("/:id/password", h.UpdatePassword)
	users.DELETE("/:id", h.Delete)
}

// List handles GET /users
func (h *UserHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.repo.List(ctx)
	if err != nil {
		return err
	}

	return SuccessResponse(c, users)
}

// Create handles POST /users
func (h *UserHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateUserRequest
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}

	user := &models.User{
		Username: req.Username,
		Password: hash,
		Role:     req.Role,
	}
	if err := h.repo.Create(ctx, user); err != nil {
		return err
	}

	return CreatedResponse(c, user)
}

// UpdateRole handles PUT /users/:id/role
func (h *UserHandler) UpdateRole(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateRoleRequest
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.repo.UpdateRole(ctx, id, req.Role); err != nil {
		return err
	}

	return NoContentResponse(c)
}

// UpdatePassword handles PUT /users/:id/password
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	var req UpdatePasswordRequest
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}

	if err := h.repo.UpdatePassword(ctx, id, hash); err != nil {
		return err
	}

	return NoContentResponse(c)
}

// Delete handles DELETE /users/:id
func (h *UserHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		return err
	}

	return NoContentResponse(c)
}
