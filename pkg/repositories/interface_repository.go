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

var interfaceStruct = database.NewStruct(new(models.InterfaceRecord))

// InterfaceFilters narrows an interface record listing. Zero values mean
// "no filter" for their field.
type InterfaceFilters struct {
	EventID    *int64
	EmployeeID *int64
	Status     string
	StartDate  string
	EndDate    string
}

// InterfaceRepository handles database operations for the payroll interface feed
type InterfaceRepository struct {
	*Repository
}

// NewInterfaceRepository creates a new interface record repository
func NewInterfaceRepository(db database.DB, logger ectologger.Logger) *InterfaceRepository {
	return &InterfaceRepository{
		Repository: NewRepository(db, logger),
	}
}

// UpsertBatch writes the rows in a single transaction, processing batchSize
// rows between progress reports. Rows whose (EventID, Status, Date,
// EmployeeID) key already exists have their mutable fields updated; reviewer
// fields on existing rows are overwritten by the feed.
func (r *InterfaceRepository) UpsertBatch(ctx context.Context, rows []models.InterfaceRecord, batchSize int, progress ProgressFunc) error {
	ctx, span := tracing.StartSpan(ctx, "InterfaceRepository.UpsertBatch")
	defer span.End()

	if len(rows) == 0 {
		return nil
	}
	if batchSize < 1 {
		batchSize = 1000
	}

	ctx, tx, err := r.DB().GetTx(ctx, nil)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to begin interface load")
	}
	defer tx.Rollback(ctx)

	const checkQuery = `
		SELECT id FROM hilan_interface
		WHERE EventID = ? AND Status = ? AND Date = ? AND EmployeeID = ?`
	const updateQuery = `
		UPDATE hilan_interface SET
		SendCode = ?, SubEvent = ?, EventName = ?, LastName = ?,
		FirstName = ?, CorrectedValue = ?, Error = ?, Note = ?
		WHERE id = ?`
	const insertQuery = `
		INSERT INTO hilan_interface
		(EventID, Status, Date, EmployeeID, SendCode, SubEvent, EventName, LastName, FirstName, CorrectedValue, Error, Note)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	totalBatches := (len(rows) + batchSize - 1) / batchSize
	for i, row := range rows {
		var existingID int64
		err := tx.GetContext(ctx, &existingID, checkQuery, row.EventID, row.Status, row.Date, row.EmployeeID)
		switch {
		case err == nil:
			_, err = tx.ExecContext(ctx, updateQuery,
				row.SendCode, row.SubEvent, row.EventName, row.LastName,
				row.FirstName, row.CorrectedValue, row.Error, row.Note, existingID)
		case errors.Is(err, sql.ErrNoRows):
			_, err = tx.ExecContext(ctx, insertQuery,
				row.EventID, row.Status, row.Date, row.EmployeeID, row.SendCode, row.SubEvent,
				row.EventName, row.LastName, row.FirstName, row.CorrectedValue, row.Error, row.Note)
		}
		if err != nil {
			r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
				"row": i + 1,
			}).Error("failed to upsert interface record")
			return httperror.NewHTTPError(http.StatusInternalServerError, "failed to load interface records")
		}

		if progress != nil && (i+1)%batchSize == 0 {
			progress((i+1)/batchSize, totalBatches)
		}
	}
	if progress != nil && len(rows)%batchSize != 0 {
		progress(totalBatches, totalBatches)
	}

	if err := tx.Commit(ctx); err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to commit interface load")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"rows": len(rows),
	}).Infof("Loaded rows into %s", InterfaceTable)
	return nil
}

// List returns a page of interface records, newest first
func (r *InterfaceRepository) List(ctx context.Context, page, pageSize int, filters InterfaceFilters) (models.Page[models.InterfaceRecord], error) {
	ctx, span := tracing.StartSpan(ctx, "InterfaceRepository.List")
	defer span.End()

	var empty models.Page[models.InterfaceRecord]
	page, pageSize = normalizePage(page, pageSize)

	applyFilters := func(sb *database.SelectBuilder) {
		conds := []string{}
		if filters.EventID != nil {
			conds = append(conds, sb.Equal("EventID", *filters.EventID))
		}
		if filters.EmployeeID != nil {
			conds = append(conds, sb.Equal("EmployeeID", *filters.EmployeeID))
		}
		if filters.Status != "" {
			conds = append(conds, sb.Equal("Status", filters.Status))
		}
		if filters.StartDate != "" {
			conds = append(conds, sb.GreaterEqualThan("Date", filters.StartDate))
		}
		if filters.EndDate != "" {
			conds = append(conds, sb.LessEqualThan("Date", filters.EndDate))
		}
		if len(conds) > 0 {
			sb.Where(conds...)
		}
	}

	csb := database.NewSelectBuilder()
	csb.Select("COUNT(*)").From(InterfaceTable)
	applyFilters(csb)

	countQuery, countArgs := csb.Build()
	var total int
	err := r.DB().GetContext(ctx, &total, countQuery, countArgs...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to count interface records")
		return empty, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list interface records")
	}

	sb := interfaceStruct.SelectFrom(InterfaceTable)
	applyFilters(sb)
	sb.OrderBy("Date").Desc()
	sb.Limit(pageSize).Offset((page - 1) * pageSize)

	selectQuery, selectArgs := sb.Build()
	var records []models.InterfaceRecord
	err = r.DB().SelectContext(ctx, &records, selectQuery, selectArgs...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list interface records")
		return empty, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list interface records")
	}

	return models.NewPage(records, total, page, pageSize), nil
}

// UpdateReview sets the reviewer-owned fields on a record
func (r *InterfaceRepository) UpdateReview(ctx context.Context, id int64, status, note string) error {
	ctx, span := tracing.StartSpan(ctx, "InterfaceRepository.UpdateReview")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(InterfaceTable).
		Set(
			ub.Assign("Status", status),
			ub.Assign("Note", note),
		).
		Where(ub.Equal("id", id))

	query, args := ub.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"record_id": id,
		}).Error("failed to update interface record")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to update interface record")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to update interface record")
	}
	if rows == 0 {
		return httperror.NewHTTPErrorf(http.StatusNotFound, "interface record %d does not exist", id)
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"record_id": id,
	}).Debugf("Updated %s", InterfaceTable)
	return nil
}
