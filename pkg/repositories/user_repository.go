package repositories

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/mattn/go-sqlite3"

	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

var userStruct = database.NewStruct(new(models.User))

// UserRepository handles database operations for portal accounts
type UserRepository struct {
	*Repository
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.DB, logger ectologger.Logger) *UserRepository {
	return &UserRepository{
		Repository: NewRepository(db, logger),
	}
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, span := tracing.StartSpan(ctx, "UserRepository.GetByUsername")
	defer span.End()

	sb := userStruct.SelectFrom(UsersTable)
	sb.Where(sb.Equal("username", username))

	query, args := sb.Build()
	var user models.User
	err := r.DB().GetContext(ctx, &user, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, httperror.NewHTTPErrorf(http.StatusNotFound, "user '%s' does not exist", username)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"username": username,
		}).Error("failed to get user by username")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get user")
	}

	return &user, nil
}

// Create inserts a new user. The password must already be hashed.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	ctx, span := tracing.StartSpan(ctx, "UserRepository.Create")
	defer span.End()

	ib := database.NewInsertBuilder()
	ib.InsertInto(UsersTable).
		Cols("username", "password", "role").
		Values(user.Username, user.Password, user.Role)

	query, args := ib.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return httperror.NewHTTPErrorf(http.StatusConflict, "user '%s' already exists", user.Username)
		}
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"username": user.Username,
		}).Error("failed to create user")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to create user")
	}

	user.ID, err = result.LastInsertId()
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to create user")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"user_id":  user.ID,
		"username": user.Username,
	}).Debugf("Created %s", UsersTable)
	return nil
}

// List retrieves all users ordered by username
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	ctx, span := tracing.StartSpan(ctx, "UserRepository.List")
	defer span.End()

	sb := userStruct.SelectFrom(UsersTable)
	sb.OrderBy("username")

	query, args := sb.Build()
	var users []models.User
	err := r.DB().SelectContext(ctx, &users, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list users")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list users")
	}

	return users, nil
}

// UpdateRole changes a user's role
func (r *UserRepository) UpdateRole(ctx context.Context, id int64, role string) error {
	ctx, span := tracing.StartSpan(ctx, "UserRepository.UpdateRole")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(UsersTable).
		Set(ub.Assign("role", role)).
		Where(ub.Equal("id", id))

	query, args := ub.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"user_id": id,
		}).Error("failed to update user role")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to update user")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return httperror.NewHTTPErrorf(http.StatusNotFound, "user %d does not exist", id)
	}

	return nil
}

// UpdatePassword replaces a user's password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	ctx, span := tracing.StartSpan(ctx, "UserRepository.UpdatePassword")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(UsersTable).
		Set(ub.Assign("password", passwordHash)).
		Where(ub.Equal("id", id))

	query, args := ub.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"user_id": id,
		}).Error("failed to update user password")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to update user")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return httperror.NewHTTPErrorf(http.StatusNotFound, "user %d does not exist", id)
	}

	return nil
}

// Delete removes a user by id
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	ctx, span := tracing.StartSpan(ctx, "UserRepository.Delete")
	defer span.End()

	db := database.NewDeleteBuilder()
	db.DeleteFrom(UsersTable).Where(db.Equal("id", id))

	query, args := db.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"user_id": id,
		}).Error("failed to delete user")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete user")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return httperror.NewHTTPErrorf(http.StatusNotFound, "user %d does not exist", id)
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"user_id": id,
	}).Debugf("Deleted %s", UsersTable)
	return nil
}
