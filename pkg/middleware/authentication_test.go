package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/auth"
	appctx "github.com/Ramsey-B/fern/pkg/context"
	"github.com/Ramsey-B/fern/pkg/middleware"
	"github.com/Ramsey-B/fern/pkg/models"
)

type stubVerifier struct {
	claims *auth.Claims
	err    error
}

func (s *stubVerifier) VerifyToken(token string) (*auth.Claims, error) {
	return s.claims, s.err
}

func invoke(t *testing.T, mw echo.MiddlewareFunc, authorization string, next echo.HandlerFunc) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	c := e.NewContext(req, httptest.NewRecorder())
	return mw(next)(c)
}

func TestAuthentication(t *testing.T) {
	verifier := &stubVerifier{claims: &auth.Claims{UserID: 7, Username: "dana", Role: models.RoleAdmin}}
	mw := middleware.Authentication(verifier)

	t.Run("SetsIdentityOnContext", func(t *testing.T) {
		var called bool
		err := invoke(t, mw, "Bearer some-token", func(c echo.Context) error {
			called = true
			ctx := c.Request().Context()
			assert.Equal(t, "7", appctx.GetUserID(ctx))
			assert.Equal(t, "dana", appctx.GetUsername(ctx))
			assert.Equal(t, models.RoleAdmin, appctx.GetUserRole(ctx))
			return nil
		})
		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("MissingHeader", func(t *testing.T) {
		err := invoke(t, mw, "", func(c echo.Context) error { return nil })
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, httperror.GetStatusCode(err))
	})

	t.Run("NotBearer", func(t *testing.T) {
		err := invoke(t, mw, "Basic dXNlcjpwYXNz", func(c echo.Context) error { return nil })
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, httperror.GetStatusCode(err))
	})

	t.Run("EmptyToken", func(t *testing.T) {
		err := invoke(t, mw, "Bearer   ", func(c echo.Context) error { return nil })
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, httperror.GetStatusCode(err))
	})

	t.Run("RejectedToken", func(t *testing.T) {
		rejecting := middleware.Authentication(&stubVerifier{err: errors.New("revoked")})
		err := invoke(t, rejecting, "Bearer some-token", func(c echo.Context) error { return nil })
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, httperror.GetStatusCode(err))
	})
}

func TestRequireRole(t *testing.T) {
	admin := &stubVerifier{claims: &auth.Claims{UserID: 1, Username: "root", Role: models.RoleAdmin}}
	regular := &stubVerifier{claims: &auth.Claims{UserID: 2, Username: "dana", Role: models.RoleUser}}

	chain := func(verifier middleware.TokenVerifier) echo.MiddlewareFunc {
		authn := middleware.Authentication(verifier)
		authz := middleware.RequireRole(models.RoleAdmin)
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return authn(authz(next))
		}
	}

	t.Run("MatchingRolePasses", func(t *testing.T) {
		err := invoke(t, chain(admin), "Bearer some-token", func(c echo.Context) error { return nil })
		require.NoError(t, err)
	})

	t.Run("OtherRoleIsForbidden", func(t *testing.T) {
		err := invoke(t, chain(regular), "Bearer some-token", func(c echo.Context) error { return nil })
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, httperror.GetStatusCode(err))
	})

	t.Run("UnauthenticatedIsForbidden", func(t *testing.T) {
		authz := middleware.RequireRole(models.RoleAdmin)
		err := invoke(t, authz, "", func(c echo.Context) error { return nil })
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, httperror.GetStatusCode(err))
	})
}
