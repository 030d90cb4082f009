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

var sapEmployeeStruct = database.NewStruct(new(models.SAPEmployee))

// SAPEmployeeRepository handles database operations for the SAP employee table
type SAPEmployeeRepository struct {
	*Repository
}

// NewSAPEmployeeRepository creates a new SAP employee repository
func NewSAPEmployeeRepository(db database.DB, logger ectologger.Logger) *SAPEmployeeRepository {
	return &SAPEmployeeRepository{
		Repository: NewRepository(db, logger),
	}
}

// Search returns a page of employees whose name or id contains the query.
// An empty query matches every row.
func (r *SAPEmployeeRepository) Search(ctx context.Context, query string, page, pageSize int, sortField, sortOrder string) (models.Page[models.SAPEmployee], error) {
	ctx, span := tracing.StartSpan(ctx, "SAPEmployeeRepository.Search")
	defer span.End()

	var empty models.Page[models.SAPEmployee]

	if sortField == "" {
		sortField = "sap_name"
	}
	if !ColumnAllowed(SAPEmployeesTable, sortField) {
		return empty, BadRequest("invalid sort field")
	}
	page, pageSize = normalizePage(page, pageSize)
	pattern := "%" + query + "%"

	csb := database.NewSelectBuilder()
	csb.Select("COUNT(*)").From(SAPEmployeesTable)
	csb.Where(csb.Or(csb.Like("sap_name", pattern), csb.Like("sap_employee_id", pattern)))

	countQuery, countArgs := csb.Build()
	var total int
	err := r.DB().GetContext(ctx, &total, countQuery, countArgs...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to count sap employees")
		return empty, httperror.NewHTTPError(http.StatusInternalServerError, "failed to search employees")
	}

	sb := sapEmployeeStruct.SelectFrom(SAPEmployeesTable)
	sb.Where(sb.Or(sb.Like("sap_name", pattern), sb.Like("sap_employee_id", pattern)))
	sb.OrderBy(sortField)
	if isDescending(sortOrder) {
		sb.Desc()
	}
	sb.Limit(pageSize).Offset((page - 1) * pageSize)

	selectQuery, selectArgs := sb.Build()
	var employees []models.SAPEmployee
	err = r.DB().SelectContext(ctx, &employees, selectQuery, selectArgs...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to search sap employees")
		return empty, httperror.NewHTTPError(http.StatusInternalServerError, "failed to search employees")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"query": query,
		"total": total,
	}).Debugf("Searched %s", SAPEmployeesTable)
	return models.NewPage(employees, total, page, pageSize), nil
}

// GetByID retrieves an employee by its SAP employee id
func (r *SAPEmployeeRepository) GetByID(ctx context.Context, id int64) (*models.SAPEmployee, error) {
	ctx, span := tracing.StartSpan(ctx, "SAPEmployeeRepository.GetByID")
	defer span.End()

	sb := sapEmployeeStruct.SelectFrom(SAPEmployeesTable)
	sb.Where(sb.Equal("sap_employee_id", id))

	query, args := sb.Build()
	var employee models.SAPEmployee
	err := r.DB().GetContext(ctx, &employee, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, httperror.NewHTTPErrorf(http.StatusNotFound, "sap employee %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"sap_employee_id": id,
		}).Error("failed to get sap employee by ID")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get employee")
	}

	return &employee, nil
}

// Count returns the number of rows in the SAP employee table
func (r *SAPEmployeeRepository) Count(ctx context.Context) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "SAPEmployeeRepository.Count")
	defer span.End()

	var total int
	err := r.DB().GetContext(ctx, &total, "SELECT COUNT(*) FROM "+SAPEmployeesTable)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to count sap employees")
		return 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to count employees")
	}
	return total, nil
}
