package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Ramsey-B/fern/pkg/auth"
	"github.com/Ramsey-B/fern/pkg/context"
	"github.com/labstack/echo/v4"
)

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	VerifyToken(token string) (*auth.Claims, error)
}

// Authentication requires a valid bearer token and places the caller's
// identity on the request context.
func Authentication(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return httperror.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if token == "" {
				return httperror.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				return httperror.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			req := c.Request()
			ctx := req.Context()
			ctx = context.SetUserID(ctx, strconv.FormatInt(claims.UserID, 10))
			ctx = context.SetUsername(ctx, claims.Username)
			ctx = context.SetUserRole(ctx, claims.Role)
			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	}
}

// RequireRole rejects requests whose authenticated role does not match.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if context.GetUserRole(c.Request().Context()) != role {
				return httperror.NewHTTPError(http.StatusForbidden, "insufficient permissions")
			}
			return next(c)
		}
	}
}
