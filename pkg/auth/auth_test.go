package auth_test

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Ramsey-B/fern/pkg/auth"
	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/repositories"
)

func getTestLogger() ectologger.Logger {
	zapLogger, _ := zap.NewDevelopment()
	return zapadapter.NewZapEctoLogger(zapLogger, nil)
}

func getTestUserRepo(t *testing.T) *repositories.UserRepository {
	sqlDB, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	schema, err := os.ReadFile(filepath.Join("..", "..", "db", "sqlite", "0001_init.up.sql"))
	require.NoError(t, err)
	_, err = sqlDB.Exec(string(schema))
	require.NoError(t, err)

	db := database.NewDatabaseInstance(sqlDB, getTestLogger())
	return repositories.NewUserRepository(db, getTestLogger())
}

func newTestService(t *testing.T, ttl time.Duration) (*auth.Service, *repositories.UserRepository) {
	users := getTestUserRepo(t)
	issuer := auth.NewTokenIssuer("test-secret", ttl)
	return auth.NewService(users, issuer, getTestLogger()), users
}

func TestTokenIssuer_IssueAndParse(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	user := &models.User{ID: 7, Username: "dana", Role: models.RoleAdmin}

	token, claims, err := issuer.Issue(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, claims.ID, "each token gets a unique id")

	parsed, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), parsed.UserID)
	assert.Equal(t, "dana", parsed.Username)
	assert.Equal(t, models.RoleAdmin, parsed.Role)
	assert.Equal(t, claims.ID, parsed.ID)
}

func TestTokenIssuer_RejectsWrongSecret(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	other := auth.NewTokenIssuer("another-secret", time.Hour)

	token, _, err := issuer.Issue(&models.User{ID: 1, Username: "dana"})
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestTokenIssuer_RejectsExpiredToken(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", -time.Minute)

	token, _, err := issuer.Issue(&models.User{ID: 1, Username: "dana"})
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	assert.Error(t, err)
}

func TestRevocationList(t *testing.T) {
	list := auth.NewRevocationList()

	assert.False(t, list.IsRevoked("abc"))

	list.Revoke("abc", time.Now().Add(time.Hour))
	assert.True(t, list.IsRevoked("abc"))
	assert.False(t, list.IsRevoked("other"))

	// expired entries fall out on the next touch
	list.Revoke("stale", time.Now().Add(-time.Second))
	assert.False(t, list.IsRevoked("stale"))

	// empty ids are never tracked
	list.Revoke("", time.Now().Add(time.Hour))
	assert.False(t, list.IsRevoked(""))
}

func TestService_Login(t *testing.T) {
	service, users := newTestService(t, time.Hour)
	ctx := context.Background()

	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, &models.User{Username: "dana", Password: hash, Role: models.RoleUser}))

	t.Run("Success", func(t *testing.T) {
		token, user, err := service.Login(ctx, "dana", "s3cret-pass")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "dana", user.Username)

		claims, err := service.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, "dana", claims.Username)
		assert.Equal(t, models.RoleUser, claims.Role)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, _, err := service.Login(ctx, "dana", "wrong")
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, httperror.GetStatusCode(err))
	})

	t.Run("UnknownUserLooksTheSame", func(t *testing.T) {
		_, _, knownErr := service.Login(ctx, "dana", "wrong")
		_, _, unknownErr := service.Login(ctx, "nobody", "wrong")
		require.Error(t, unknownErr)
		assert.Equal(t, http.StatusUnauthorized, httperror.GetStatusCode(unknownErr))
		assert.Equal(t, knownErr.Error(), unknownErr.Error())
	})
}

func TestService_Logout(t *testing.T) {
	service, users := newTestService(t, time.Hour)
	ctx := context.Background()

	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, &models.User{Username: "dana", Password: hash, Role: models.RoleUser}))

	token, _, err := service.Login(ctx, "dana", "s3cret-pass")
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	require.NoError(t, err)

	service.Logout(ctx, token)

	_, err = service.VerifyToken(token)
	assert.Error(t, err, "revoked tokens no longer verify")

	// logging out a garbage token is a no-op
	service.Logout(ctx, "not-a-token")
}

func TestService_EnsureAdmin(t *testing.T) {
	service, users := newTestService(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, service.EnsureAdmin(ctx, "admin", "admin123"))

	admin, err := users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.NotEqual(t, "admin123", admin.Password, "password is stored hashed")

	// second call leaves the existing account alone
	require.NoError(t, service.EnsureAdmin(ctx, "admin", "different-password"))
	again, err := users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, admin.Password, again.Password)

	_, _, err = service.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
}
