package repositories

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// AttendanceRepository handles database operations for attendance records
type AttendanceRepository struct {
	*Repository
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db database.DB, logger ectologger.Logger) *AttendanceRepository {
	return &AttendanceRepository{
		Repository: NewRepository(db, logger),
	}
}

// ListRange returns an employee's attendance between two dates, inclusive,
// ordered by date. The date columns hold epoch milliseconds as text.
func (r *AttendanceRepository) ListRange(ctx context.Context, employeeID int64, start, end time.Time) ([]models.AttendanceEntry, error) {
	ctx, span := tracing.StartSpan(ctx, "AttendanceRepository.ListRange")
	defer span.End()

	query := `
		SELECT id, hilan_employee_id, date, start_time, end_time, attendance_type
		FROM hilan_attendance
		WHERE hilan_employee_id = ? AND CAST(date AS INTEGER) BETWEEN ? AND ?
		ORDER BY date`

	var records []models.AttendanceRecord
	err := r.DB().SelectContext(ctx, &records, query, employeeID, start.UnixMilli(), end.UnixMilli())
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"hilan_employee_id": employeeID,
		}).Error("failed to list attendance records")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list attendance records")
	}

	entries := make([]models.AttendanceEntry, 0, len(records))
	for _, rec := range records {
		entry := models.AttendanceEntry{
			ID:              rec.ID,
			HilanEmployeeID: rec.HilanEmployeeID,
			Date:            formatEpochMillis(rec.Date, "2006-01-02"),
			StartTime:       formatEpochMillis(rec.StartTime, "15:04:05"),
			EndTime:         formatEpochMillis(rec.EndTime, "15:04:05"),
		}
		if rec.AttendanceType != nil {
			entry.AttendanceType = *rec.AttendanceType
		}
		entries = append(entries, entry)
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"hilan_employee_id": employeeID,
		"count":             len(entries),
	}).Debugf("Listed %s", AttendanceTable)
	return entries, nil
}

// Count returns the number of attendance rows
func (r *AttendanceRepository) Count(ctx context.Context) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "AttendanceRepository.Count")
	defer span.End()

	var total int
	err := r.DB().GetContext(ctx, &total, "SELECT COUNT(*) FROM "+AttendanceTable)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to count attendance records")
		return 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to count attendance records")
	}
	return total, nil
}

func formatEpochMillis(value *string, layout string) string {
	if value == nil {
		return ""
	}
	ms, err := strconv.ParseInt(*value, 10, 64)
	if err != nil {
		return *value
	}
	return time.UnixMilli(ms).UTC().Format(layout)
}
