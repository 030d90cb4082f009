package repositories

import (
	"context"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// PermissionRepository handles database operations for Hilan permission grants
type PermissionRepository struct {
	*Repository
}

// NewPermissionRepository creates a new permission repository
func NewPermissionRepository(db database.DB, logger ectologger.Logger) *PermissionRepository {
	return &PermissionRepository{
		Repository: NewRepository(db, logger),
	}
}

// ListByEmployee returns an employee's permissions with their system grants
func (r *PermissionRepository) ListByEmployee(ctx context.Context, employeeID int64) ([]models.EmployeePermission, error) {
	ctx, span := tracing.StartSpan(ctx, "PermissionRepository.ListByEmployee")
	defer span.End()

	const query = `
		SELECT p.id, p.hilan_employee_id, p.permission_name,
		       s.id AS system_id, s.system_name, s.permission_type, s.population
		FROM hilan_employee_permissions p
		LEFT JOIN hilan_permission_systems s ON p.id = s.permission_id
		WHERE p.hilan_employee_id = ?
		ORDER BY p.id, s.id`

	rows, err := r.DB().QueryxContext(ctx, query, employeeID)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"hilan_employee_id": employeeID,
		}).Error("failed to list permissions")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list permissions")
	}
	defer rows.Close()

	permissions := []models.EmployeePermission{}
	index := map[int64]int{}
	for rows.Next() {
		var row struct {
			ID              int64   `db:"id"`
			HilanEmployeeID int64   `db:"hilan_employee_id"`
			PermissionName  string  `db:"permission_name"`
			SystemID        *int64  `db:"system_id"`
			SystemName      *string `db:"system_name"`
			PermissionType  *string `db:"permission_type"`
			Population      *string `db:"population"`
		}
		if err := rows.StructScan(&row); err != nil {
			r.logger.WithContext(ctx).WithError(err).Error("failed to scan permission row")
			return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list permissions")
		}

		pos, ok := index[row.ID]
		if !ok {
			permissions = append(permissions, models.EmployeePermission{
				ID:              row.ID,
				HilanEmployeeID: row.HilanEmployeeID,
				PermissionName:  row.PermissionName,
				Systems:         []models.PermissionSystem{},
			})
			pos = len(permissions) - 1
			index[row.ID] = pos
		}
		if row.SystemID != nil {
			system := models.PermissionSystem{
				ID:             *row.SystemID,
				PermissionID:   row.ID,
				PermissionType: row.PermissionType,
				Population:     row.Population,
			}
			if row.SystemName != nil {
				system.SystemName = *row.SystemName
			}
			permissions[pos].Systems = append(permissions[pos].Systems, system)
		}
	}
	if err := rows.Err(); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list permissions")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list permissions")
	}

	return permissions, nil
}

// Add grants a permission to an employee and returns the new row id
func (r *PermissionRepository) Add(ctx context.Context, employeeID int64, permissionName string) (int64, error) {
	ctx, span := tracing.StartSpan(ctx, "PermissionRepository.Add")
	defer span.End()

	ib := database.NewInsertBuilder()
	ib.InsertInto(PermissionsTable).
		Cols("hilan_employee_id", "permission_name").
		Values(employeeID, permissionName)

	query, args := ib.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"hilan_employee_id": employeeID,
		}).Error("failed to add permission")
		return 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to add permission")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to add permission")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"permission_id":     id,
		"hilan_employee_id": employeeID,
	}).Debugf("Created %s", PermissionsTable)
	return id, nil
}

// AddSystem attaches a system grant to a permission and returns the new row id
func (r *PermissionRepository) AddSystem(ctx context.Context, permissionID int64, systemName string, permissionType, population *string) (int64, error) {
	ctx, span := tracing.StartSpan(ctx, "PermissionRepository.AddSystem")
	defer span.End()

	ib := database.NewInsertBuilder()
	ib.InsertInto(PermissionSysTable).
		Cols("permission_id", "system_name", "permission_type", "population").
		Values(permissionID, systemName, permissionType, population)

	query, args := ib.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"permission_id": permissionID,
		}).Error("failed to add permission system")
		return 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to add permission system")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to add permission system")
	}

	return id, nil
}

// Update renames a permission and replaces its system grants in one transaction
func (r *PermissionRepository) Update(ctx context.Context, permission *models.EmployeePermission) error {
	ctx, span := tracing.StartSpan(ctx, "PermissionRepository.Update")
	defer span.End()

	ctx, tx, err := r.DB().GetTx(ctx, nil)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to update permission")
	}
	defer tx.Rollback(ctx)

	result, err := tx.ExecContext(ctx,
		"UPDATE hilan_employee_permissions SET permission_name = ? WHERE id = ?",
		permission.PermissionName, permission.ID)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"permission_id": permission.ID,
		}).Error("failed to update permission")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to update permission")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return httperror.NewHTTPErrorf(http.StatusNotFound, "permission %d does not exist", permission.ID)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM hilan_permission_systems WHERE permission_id = ?", permission.ID); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"permission_id": permission.ID,
		}).Error("failed to replace permission systems")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to update permission")
	}

	for _, system := range permission.Systems {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO hilan_permission_systems (permission_id, system_name, permission_type, population) VALUES (?, ?, ?, ?)",
			permission.ID, system.SystemName, system.PermissionType, system.Population); err != nil {
			r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
				"permission_id": permission.ID,
			}).Error("failed to replace permission systems")
			return httperror.NewHTTPError(http.StatusInternalServerError, "failed to update permission")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to update permission")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"permission_id": permission.ID,
	}).Debugf("Updated %s", PermissionsTable)
	return nil
}

// Delete removes a permission and its system grants in one transaction
func (r *PermissionRepository) Delete(ctx context.Context, id int64) error {
	ctx, span := tracing.StartSpan(ctx, "PermissionRepository.Delete")
	defer span.End()

	ctx, tx, err := r.DB().GetTx(ctx, nil)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete permission")
	}
	defer tx.Rollback(ctx)

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM hilan_permission_systems WHERE permission_id = ?", id); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"permission_id": id,
		}).Error("failed to delete permission systems")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete permission")
	}

	result, err := tx.ExecContext(ctx,
		"DELETE FROM hilan_employee_permissions WHERE id = ?", id)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"permission_id": id,
		}).Error("failed to delete permission")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete permission")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return httperror.NewHTTPErrorf(http.StatusNotFound, "permission %d does not exist", id)
	}

	if err := tx.Commit(ctx); err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete permission")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"permission_id": id,
	}).Debugf("Deleted %s", PermissionsTable)
	return nil
}
