package repositories_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/repositories"
)

func insertAttendance(t *testing.T, db database.DB, employeeID int64, date, start, end time.Time, attendanceType string) {
	t.Helper()
	_, err := db.ExecContext(context.Background(),
		"INSERT INTO hilan_attendance (hilan_employee_id, date, start_time, end_time, attendance_type) VALUES (?, ?, ?, ?, ?)",
		employeeID,
		strconv.FormatInt(date.UnixMilli(), 10),
		strconv.FormatInt(start.UnixMilli(), 10),
		strconv.FormatInt(end.UnixMilli(), 10),
		attendanceType)
	require.NoError(t, err)
}

func TestAttendanceRepository_ListRange(t *testing.T) {
	db := getTestDB(t)
	repo := repositories.NewAttendanceRepository(db, getTestLogger())
	ctx := context.Background()

	day := func(y int, m time.Month, d, hour, min int) time.Time {
		return time.Date(y, m, d, hour, min, 0, 0, time.UTC)
	}

	insertAttendance(t, db, 1001,
		day(2024, time.March, 4, 0, 0), day(2024, time.March, 4, 8, 30), day(2024, time.March, 4, 17, 0), "עבודה")
	insertAttendance(t, db, 1001,
		day(2024, time.March, 5, 0, 0), day(2024, time.March, 5, 9, 0), day(2024, time.March, 5, 18, 15), "עבודה")
	insertAttendance(t, db, 1001,
		day(2024, time.April, 1, 0, 0), day(2024, time.April, 1, 8, 0), day(2024, time.April, 1, 16, 0), "חופשה")
	// different employee, same range
	insertAttendance(t, db, 2002,
		day(2024, time.March, 4, 0, 0), day(2024, time.March, 4, 7, 0), day(2024, time.March, 4, 15, 0), "עבודה")

	t.Run("RangeIsInclusiveAndScopedToEmployee", func(t *testing.T) {
		entries, err := repo.ListRange(ctx, 1001,
			day(2024, time.March, 1, 0, 0), day(2024, time.March, 31, 23, 59))
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "2024-03-04", entries[0].Date)
		assert.Equal(t, "08:30:00", entries[0].StartTime)
		assert.Equal(t, "17:00:00", entries[0].EndTime)
		assert.Equal(t, "עבודה", entries[0].AttendanceType)
		assert.Equal(t, "2024-03-05", entries[1].Date)
	})

	t.Run("EmptyRange", func(t *testing.T) {
		entries, err := repo.ListRange(ctx, 1001,
			day(2023, time.January, 1, 0, 0), day(2023, time.December, 31, 0, 0))
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("UnknownEmployee", func(t *testing.T) {
		entries, err := repo.ListRange(ctx, 5555,
			day(2024, time.March, 1, 0, 0), day(2024, time.March, 31, 0, 0))
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("Count", func(t *testing.T) {
		total, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 4, total)
	})
}

func TestAttendanceRepository_NonNumericDatePassesThrough(t *testing.T) {
	db := getTestDB(t)
	repo := repositories.NewAttendanceRepository(db, getTestLogger())
	ctx := context.Background()

	// rows loaded before the export switched to epoch milliseconds
	_, err := db.ExecContext(ctx,
		"INSERT INTO hilan_attendance (hilan_employee_id, date, start_time, end_time, attendance_type) VALUES (?, ?, ?, ?, ?)",
		1001, "0", "not-a-number", nil, "עבודה")
	require.NoError(t, err)

	entries, err := repo.ListRange(ctx, 1001,
		time.UnixMilli(0).UTC(), time.UnixMilli(0).UTC().Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "not-a-number", entries[0].StartTime)
	assert.Equal(t, "", entries[0].EndTime)
}
