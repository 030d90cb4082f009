package repositories

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

var hilanEmployeeStruct = database.NewStruct(new(models.HilanEmployee))

// HilanEmployeeRepository handles database operations for the Hilan employee table
type HilanEmployeeRepository struct {
	*Repository
}

// NewHilanEmployeeRepository creates a new Hilan employee repository
func NewHilanEmployeeRepository(db database.DB, logger ectologger.Logger) *HilanEmployeeRepository {
	return &HilanEmployeeRepository{
		Repository: NewRepository(db, logger),
	}
}

// Search returns a page of employees whose first name, last name or id
// contains the query. An empty query matches every row.
func (r *HilanEmployeeRepository) Search(ctx context.Context, query string, page, pageSize int, sortField, sortOrder string) (models.Page[models.HilanEmployee], error) {
	ctx, span := tracing.StartSpan(ctx, "HilanEmployeeRepository.Search")
	defer span.End()

	var empty models.Page[models.HilanEmployee]

	if sortField == "" {
		sortField = "hilan_last_name"
	}
	if !ColumnAllowed(HilanEmployeesTable, sortField) {
		return empty, BadRequest("invalid sort field")
	}
	page, pageSize = normalizePage(page, pageSize)
	pattern := "%" + query + "%"

	csb := database.NewSelectBuilder()
	csb.Select("COUNT(*)").From(HilanEmployeesTable)
	csb.Where(csb.Or(
		csb.Like("hilan_last_name", pattern),
		csb.Like("hilan_first_name", pattern),
		csb.Like("hilan_employee_id", pattern),
	))

	countQuery, countArgs := csb.Build()
	var total int
	err := r.DB().GetContext(ctx, &total, countQuery, countArgs...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to count hilan employees")
		return empty, httperror.NewHTTPError(http.StatusInternalServerError, "failed to search employees")
	}

	sb := hilanEmployeeStruct.SelectFrom(HilanEmployeesTable)
	sb.Where(sb.Or(
		sb.Like("hilan_last_name", pattern),
		sb.Like("hilan_first_name", pattern),
		sb.Like("hilan_employee_id", pattern),
	))
	sb.OrderBy(sortField)
	if isDescending(sortOrder) {
		sb.Desc()
	}
	sb.Limit(pageSize).Offset((page - 1) * pageSize)

	selectQuery, selectArgs := sb.Build()
	var employees []models.HilanEmployee
	err = r.DB().SelectContext(ctx, &employees, selectQuery, selectArgs...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to search hilan employees")
		return empty, httperror.NewHTTPError(http.StatusInternalServerError, "failed to search employees")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"query": query,
		"total": total,
	}).Debugf("Searched %s", HilanEmployeesTable)
	return models.NewPage(employees, total, page, pageSize), nil
}

// GetByID retrieves an employee by its Hilan employee id
func (r *HilanEmployeeRepository) GetByID(ctx context.Context, id int64) (*models.HilanEmployee, error) {
	ctx, span := tracing.StartSpan(ctx, "HilanEmployeeRepository.GetByID")
	defer span.End()

	sb := hilanEmployeeStruct.SelectFrom(HilanEmployeesTable)
	sb.Where(sb.Equal("hilan_employee_id", id))

	query, args := sb.Build()
	var employee models.HilanEmployee
	err := r.DB().GetContext(ctx, &employee, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, httperror.NewHTTPErrorf(http.StatusNotFound, "hilan employee %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"hilan_employee_id": id,
		}).Error("failed to get hilan employee by ID")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get employee")
	}

	return &employee, nil
}

// Count returns the number of rows in the Hilan employee table
func (r *HilanEmployeeRepository) Count(ctx context.Context) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "HilanEmployeeRepository.Count")
	defer span.End()

	var total int
	err := r.DB().GetContext(ctx, &total, "SELECT COUNT(*) FROM "+HilanEmployeesTable)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to count hilan employees")
		return 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to count employees")
	}
	return total, nil
}
