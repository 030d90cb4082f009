package repositories_test

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/repositories"
)

func getTestLogger() ectologger.Logger {
	zapLogger, _ := zap.NewDevelopment()
	return zapadapter.NewZapEctoLogger(zapLogger, nil)
}

func getTestDB(t *testing.T) database.DB {
	sqlDB, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err, "Failed to open test database")
	// a second pool connection would get its own empty memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	schema, err := os.ReadFile(filepath.Join("..", "..", "db", "sqlite", "0001_init.up.sql"))
	require.NoError(t, err, "Failed to read schema")
	_, err = sqlDB.Exec(string(schema))
	require.NoError(t, err, "Failed to apply schema")

	return database.NewDatabaseInstance(sqlDB, getTestLogger())
}

// assertNotFound asserts that err is an HTTP 404 error
func assertNotFound(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, httperror.IsHTTPError(err), "expected HTTP error, got: %v", err)
	assert.Equal(t, http.StatusNotFound, httperror.GetStatusCode(err), "expected 404, got: %d", httperror.GetStatusCode(err))
}

// assertBadRequest asserts that err is an HTTP 400 error
func assertBadRequest(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, httperror.IsHTTPError(err), "expected HTTP error, got: %v", err)
	assert.Equal(t, http.StatusBadRequest, httperror.GetStatusCode(err), "expected 400, got: %d", httperror.GetStatusCode(err))
}

func strPtr(s string) *string { return &s }
func int64Ptr(v int64) *int64 { return &v }

func TestUserRepository_CRUD(t *testing.T) {
	db := getTestDB(t)
	repo := repositories.NewUserRepository(db, getTestLogger())
	ctx := context.Background()

	user := &models.User{
		Username: "dana",
		Password: "hashed-password",
		Role:     models.RoleUser,
	}
	err := repo.Create(ctx, user)
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	// Duplicate usernames are rejected
	err = repo.Create(ctx, &models.User{Username: "dana", Password: "x", Role: models.RoleUser})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, httperror.GetStatusCode(err))

	fetched, err := repo.GetByUsername(ctx, "dana")
	require.NoError(t, err)
	assert.Equal(t, user.ID, fetched.ID)
	assert.Equal(t, "hashed-password", fetched.Password)
	assert.Equal(t, "user", fetched.Role)

	_, err = repo.GetByUsername(ctx, "nobody")
	assertNotFound(t, err)

	require.NoError(t, repo.Create(ctx, &models.User{Username: "avi", Password: "x", Role: models.RoleAdmin}))
	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "avi", users[0].Username)
	assert.Equal(t, "dana", users[1].Username)

	err = repo.UpdateRole(ctx, user.ID, models.RoleAdmin)
	require.NoError(t, err)
	fetched, err = repo.GetByUsername(ctx, "dana")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, fetched.Role)

	err = repo.UpdatePassword(ctx, user.ID, "new-hash")
	require.NoError(t, err)
	fetched, err = repo.GetByUsername(ctx, "dana")
	require.NoError(t, err)
	assert.Equal(t, "new-hash", fetched.Password)

	assertNotFound(t, repo.UpdateRole(ctx, 9999, models.RoleUser))
	assertNotFound(t, repo.UpdatePassword(ctx, 9999, "x"))

	err = repo.Delete(ctx, user.ID)
	require.NoError(t, err)
	_, err = repo.GetByUsername(ctx, "dana")
	assertNotFound(t, err)

	assertNotFound(t, repo.Delete(ctx, user.ID))
}
