package handlers

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/pkg/auth"
	appctx "github.com/Ramsey-B/fern/pkg/context"
	"github.com/Ramsey-B/fern/pkg/models"
)

// AuthHandler handles login and logout
type AuthHandler struct {
	service *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service *auth.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the signed token and the account it belongs to
type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// RegisterPublicRoutes registers the routes that do not require a token
func (h *AuthHandler) RegisterPublicRoutes(g *echo.Group) {
	g.POST("/auth/login", h.Login)
}

// RegisterRoutes registers the authenticated auth routes
func (h *AuthHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/auth/logout", h.Logout)
	g.GET("/auth/me", h.Me)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.service.Login(ctx, req.Username, req.Password)
	if err != nil {
		return err
	}

	return SuccessResponse(c, LoginResponse{Token: token, User: user})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	header := c.Request().Header.Get(echo.HeaderAuthorization)
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	h.service.Logout(ctx, token)

	return NoContentResponse(c)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	ctx := c.Request().Context()

	return SuccessResponse(c, map[string]string{
		"id":       appctx.GetUserID(ctx),
		"username": appctx.GetUsername(ctx),
		"role":     appctx.GetUserRole(ctx),
	})
}
