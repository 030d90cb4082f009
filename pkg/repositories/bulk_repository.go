package repositories

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// ProgressFunc reports rows processed so far out of a total.
type ProgressFunc func(done, total int)

// BulkRepository loads spreadsheet rows into the employee and attendance
// tables with insert-or-replace semantics.
type BulkRepository struct {
	*Repository
}

// NewBulkRepository creates a new bulk load repository
func NewBulkRepository(db database.DB, logger ectologger.Logger) *BulkRepository {
	return &BulkRepository{
		Repository: NewRepository(db, logger),
	}
}

// ReplaceRows writes every row into the table in a single transaction.
// Existing rows with the same primary key are replaced. The table and every
// column must be on the bulk-load allow-list.
func (r *BulkRepository) ReplaceRows(ctx context.Context, table string, columns []string, rows [][]any, progress ProgressFunc) error {
	ctx, span := tracing.StartSpan(ctx, "BulkRepository.ReplaceRows")
	defer span.End()

	if _, ok := TableColumns(table); !ok {
		return BadRequest(fmt.Sprintf("table %q does not accept bulk loads", table))
	}
	if len(columns) == 0 {
		return BadRequest("no columns to load")
	}
	for _, col := range columns {
		if !ColumnAllowed(table, col) && !isPrimaryKeyColumn(table, col) {
			return BadRequest(fmt.Sprintf("unknown column %q for table %q", col, table))
		}
	}
	if len(rows) == 0 {
		return nil
	}

	if len(rows[0]) != len(columns) {
		return BadRequest(fmt.Sprintf("row 1 has %d values, expected %d", len(rows[0]), len(columns)))
	}

	// REPLACE INTO; every row binds against the same statement
	query, _ := database.NewInsertBuilder().
		ReplaceInto(table).
		Cols(columns...).
		Values(rows[0]...).
		Build()

	ctx, tx, err := r.DB().GetTx(ctx, nil)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to begin bulk load")
	}
	defer tx.Rollback(ctx)

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"table": table,
		}).Error("failed to prepare bulk load statement")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to load rows")
	}
	defer stmt.Close()

	total := len(rows)
	for i, row := range rows {
		if len(row) != len(columns) {
			return BadRequest(fmt.Sprintf("row %d has %d values, expected %d", i+1, len(row), len(columns)))
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
				"table": table,
				"row":   i + 1,
			}).Error("failed to load row")
			return httperror.NewHTTPError(http.StatusInternalServerError, "failed to load rows")
		}
		if progress != nil {
			progress(i+1, total)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to commit bulk load")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"table": table,
		"rows":  total,
	}).Infof("Loaded rows into %s", table)
	return nil
}

// The attendance table carries a surrogate primary key that spreadsheets
// never include, so it is absent from the column allow-list.
func isPrimaryKeyColumn(table, col string) bool {
	return table == AttendanceTable && col == "id"
}
