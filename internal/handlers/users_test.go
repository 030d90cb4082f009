package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/internal/handlers"
)

func bindJSON(t *testing.T, body string, req any) error {
	t.Helper()
	e := echo.New()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(r, httptest.NewRecorder())
	return handlers.BindAndValidate(c, req)
}

func TestCreateUserRequest_RoleValues(t *testing.T) {
	t.Run("AdminAndUserAreAccepted", func(t *testing.T) {
		for _, role := range []string{"admin", "user"} {
			var req handlers.CreateUserRequest
			err := bindJSON(t, `{"username":"dana","password":"long-enough","role":"`+role+`"}`, &req)
			require.NoError(t, err)
			assert.Equal(t, role, req.Role)
		}
	})

	t.Run("OtherRolesAreRejected", func(t *testing.T) {
		for _, role := range []string{"viewer", "root", ""} {
			var req handlers.CreateUserRequest
			err := bindJSON(t, `{"username":"dana","password":"long-enough","role":"`+role+`"}`, &req)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, httperror.GetStatusCode(err))
		}
	})
}

func TestUpdateRoleRequest_RoleValues(t *testing.T) {
	var req handlers.UpdateRoleRequest
	require.NoError(t, bindJSON(t, `{"role":"user"}`, &req))

	var rejected handlers.UpdateRoleRequest
	err := bindJSON(t, `{"role":"viewer"}`, &rejected)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httperror.GetStatusCode(err))
}
