package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/repositories"
)

func interfaceRow(eventID int64, status, date string, employeeID int64, errText string) models.InterfaceRecord {
	return models.InterfaceRecord{
		EventID:    int64Ptr(eventID),
		Status:     strPtr(status),
		Date:       strPtr(date),
		EmployeeID: int64Ptr(employeeID),
		EventName:  strPtr("שינוי דרגה"),
		LastName:   strPtr("Cohen"),
		FirstName:  strPtr("Avi"),
		Error:      strPtr(errText),
	}
}

func TestInterfaceRepository_UpsertBatch(t *testing.T) {
	db := getTestDB(t)
	repo := repositories.NewInterfaceRepository(db, getTestLogger())
	ctx := context.Background()

	t.Run("InsertsNewRows", func(t *testing.T) {
		rows := []models.InterfaceRecord{
			interfaceRow(10, "שגוי", "2024-03-04", 1001, "missing value"),
			interfaceRow(11, "שגוי", "2024-03-04", 1002, "bad date"),
		}
		require.NoError(t, repo.UpsertBatch(ctx, rows, 1000, nil))

		var total int
		require.NoError(t, db.GetContext(ctx, &total, "SELECT COUNT(*) FROM hilan_interface"))
		assert.Equal(t, 2, total)
	})

	t.Run("ReloadUpdatesExistingKey", func(t *testing.T) {
		rows := []models.InterfaceRecord{
			interfaceRow(10, "שגוי", "2024-03-04", 1001, "corrected error text"),
		}
		require.NoError(t, repo.UpsertBatch(ctx, rows, 1000, nil))

		var total int
		require.NoError(t, db.GetContext(ctx, &total, "SELECT COUNT(*) FROM hilan_interface"))
		assert.Equal(t, 2, total, "reload must not duplicate the natural key")

		var errText string
		require.NoError(t, db.GetContext(ctx, &errText,
			"SELECT Error FROM hilan_interface WHERE EventID = 10 AND EmployeeID = 1001"))
		assert.Equal(t, "corrected error text", errText)
	})

	t.Run("DifferentStatusIsANewRow", func(t *testing.T) {
		rows := []models.InterfaceRecord{
			interfaceRow(10, "תקין", "2024-03-04", 1001, ""),
		}
		require.NoError(t, repo.UpsertBatch(ctx, rows, 1000, nil))

		var total int
		require.NoError(t, db.GetContext(ctx, &total, "SELECT COUNT(*) FROM hilan_interface"))
		assert.Equal(t, 3, total)
	})

	t.Run("ProgressPerBatch", func(t *testing.T) {
		var calls [][2]int
		rows := []models.InterfaceRecord{
			interfaceRow(20, "שגוי", "2024-03-05", 2001, "a"),
			interfaceRow(21, "שגוי", "2024-03-05", 2002, "b"),
			interfaceRow(22, "שגוי", "2024-03-05", 2003, "c"),
		}
		require.NoError(t, repo.UpsertBatch(ctx, rows, 2, func(done, total int) {
			calls = append(calls, [2]int{done, total})
		}))
		require.NotEmpty(t, calls)
		assert.Equal(t, [2]int{2, 2}, calls[len(calls)-1])
	})

	t.Run("EmptyInputIsANoOp", func(t *testing.T) {
		require.NoError(t, repo.UpsertBatch(ctx, nil, 1000, nil))
	})
}

func TestInterfaceRepository_List(t *testing.T) {
	db := getTestDB(t)
	repo := repositories.NewInterfaceRepository(db, getTestLogger())
	ctx := context.Background()

	rows := []models.InterfaceRecord{
		interfaceRow(10, "שגוי", "2024-03-01", 1001, "a"),
		interfaceRow(11, "תקין", "2024-03-02", 1001, ""),
		interfaceRow(12, "שגוי", "2024-03-03", 1002, "b"),
	}
	require.NoError(t, repo.UpsertBatch(ctx, rows, 1000, nil))

	t.Run("NewestFirst", func(t *testing.T) {
		page, err := repo.List(ctx, 1, 10, repositories.InterfaceFilters{})
		require.NoError(t, err)
		assert.Equal(t, 3, page.Total)
		require.Len(t, page.Items, 3)
		assert.Equal(t, "2024-03-03", *page.Items[0].Date)
	})

	t.Run("FilterByStatus", func(t *testing.T) {
		page, err := repo.List(ctx, 1, 10, repositories.InterfaceFilters{Status: "שגוי"})
		require.NoError(t, err)
		assert.Equal(t, 2, page.Total)
	})

	t.Run("FilterByEmployee", func(t *testing.T) {
		page, err := repo.List(ctx, 1, 10, repositories.InterfaceFilters{EmployeeID: int64Ptr(1002)})
		require.NoError(t, err)
		assert.Equal(t, 1, page.Total)
		require.Len(t, page.Items, 1)
		assert.Equal(t, int64(12), *page.Items[0].EventID)
	})

	t.Run("FilterByDateRange", func(t *testing.T) {
		page, err := repo.List(ctx, 1, 10, repositories.InterfaceFilters{
			StartDate: "2024-03-02",
			EndDate:   "2024-03-03",
		})
		require.NoError(t, err)
		assert.Equal(t, 2, page.Total)
	})

	t.Run("Pagination", func(t *testing.T) {
		page, err := repo.List(ctx, 2, 2, repositories.InterfaceFilters{})
		require.NoError(t, err)
		assert.Equal(t, 3, page.Total)
		assert.Equal(t, 2, page.TotalPages)
		require.Len(t, page.Items, 1)
	})
}

func TestInterfaceRepository_UpdateReview(t *testing.T) {
	db := getTestDB(t)
	repo := repositories.NewInterfaceRepository(db, getTestLogger())
	ctx := context.Background()

	require.NoError(t, repo.UpsertBatch(ctx, []models.InterfaceRecord{
		interfaceRow(10, "שגוי", "2024-03-01", 1001, "a"),
	}, 1000, nil))

	var id int64
	require.NoError(t, db.GetContext(ctx, &id, "SELECT id FROM hilan_interface WHERE EventID = 10"))

	require.NoError(t, repo.UpdateReview(ctx, id, "טופל", "fixed manually"))

	page, err := repo.List(ctx, 1, 10, repositories.InterfaceFilters{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "טופל", *page.Items[0].Status)
	assert.Equal(t, "fixed manually", *page.Items[0].Note)

	assertNotFound(t, repo.UpdateReview(ctx, 9999, "x", ""))
}
