package repositories

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// ReportFilter restricts a report column to (or away from) a set of values.
type ReportFilter struct {
	Values    []string `json:"values"`
	Operation string   `json:"operation"` // "include" or "exclude"
}

// ReportRepository runs filtered column projections over the employee tables
type ReportRepository struct {
	*Repository
}

// NewReportRepository creates a new report repository
func NewReportRepository(db database.DB, logger ectologger.Logger) *ReportRepository {
	return &ReportRepository{
		Repository: NewRepository(db, logger),
	}
}

func employeeTableFor(source string) (string, error) {
	switch source {
	case "sap":
		return SAPEmployeesTable, nil
	case "hilan":
		return HilanEmployeesTable, nil
	default:
		return "", BadRequest(fmt.Sprintf("unknown data source %q", source))
	}
}

// Generate selects the requested columns with the given filters applied.
// Date columns are rendered as YYYY-MM-DD. Rows preserve insertion order
// through the returned column slice.
func (r *ReportRepository) Generate(ctx context.Context, source string, filters map[string]ReportFilter, columns []string) ([]map[string]any, error) {
	ctx, span := tracing.StartSpan(ctx, "ReportRepository.Generate")
	defer span.End()

	table, err := employeeTableFor(source)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, BadRequest("no columns selected")
	}

	selects := make([]string, 0, len(columns))
	for _, col := range columns {
		if !ColumnAllowed(table, col) {
			return nil, BadRequest(fmt.Sprintf("unknown column %q", col))
		}
		if strings.Contains(strings.ToLower(col), "date") {
			selects = append(selects, fmt.Sprintf("strftime('%%Y-%%m-%%d', %s) AS %s", col, col))
		} else {
			selects = append(selects, col)
		}
	}

	var conditions []string
	var args []any
	for field, filter := range filters {
		if len(filter.Values) == 0 {
			continue
		}
		if !ColumnAllowed(table, field) {
			return nil, BadRequest(fmt.Sprintf("unknown filter column %q", field))
		}
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(filter.Values)), ", ")
		operator := "IN"
		if filter.Operation == "exclude" {
			operator = "NOT IN"
		}
		conditions = append(conditions, fmt.Sprintf("%s %s (%s)", field, operator, placeholders))
		for _, v := range filter.Values {
			args = append(args, v)
		}
	}

	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(selects, ", "), table)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := r.DB().QueryxContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"source": source,
		}).Error("failed to generate report")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to generate report")
	}
	defer rows.Close()

	results := []map[string]any{}
	for rows.Next() {
		row := map[string]any{}
		if err := rows.MapScan(row); err != nil {
			r.logger.WithContext(ctx).WithError(err).Error("failed to scan report row")
			return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to generate report")
		}
		for key, value := range row {
			if b, ok := value.([]byte); ok {
				row[key] = string(b)
			}
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to generate report")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to generate report")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"source": source,
		"rows":   len(results),
	}).Debug("Generated report")
	return results, nil
}

// UniqueValues returns the distinct values of one column, sorted
func (r *ReportRepository) UniqueValues(ctx context.Context, source, column string) ([]any, error) {
	ctx, span := tracing.StartSpan(ctx, "ReportRepository.UniqueValues")
	defer span.End()

	table, err := employeeTableFor(source)
	if err != nil {
		return nil, err
	}
	if !ColumnAllowed(table, column) {
		return nil, BadRequest(fmt.Sprintf("unknown column %q", column))
	}

	query := fmt.Sprintf("SELECT DISTINCT %s FROM %s ORDER BY %s", column, table, column)
	rows, err := r.DB().QueryxContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"source": source,
			"column": column,
		}).Error("failed to get unique column values")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get column values")
	}
	defer rows.Close()

	values := []any{}
	for rows.Next() {
		var value any
		if err := rows.Scan(&value); err != nil {
			return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get column values")
		}
		if b, ok := value.([]byte); ok {
			value = string(b)
		}
		values = append(values, value)
	}
	if err := rows.Err(); err != nil {
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get column values")
	}

	return values, nil
}
