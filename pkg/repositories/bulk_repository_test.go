package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/repositories"
)

func TestBulkRepository_ReplaceRows(t *testing.T) {
	db := getTestDB(t)
	repo := repositories.NewBulkRepository(db, getTestLogger())
	ctx := context.Background()

	columns := []string{"sap_employee_id", "sap_name", "sap_department"}

	t.Run("InsertsAndReportsProgress", func(t *testing.T) {
		var calls [][2]int
		rows := [][]any{
			{int64(1001), "Avi Cohen", "HR"},
			{int64(1002), "Dana Levi", "Finance"},
			{int64(1003), "Noa Peretz", "IT"},
		}
		err := repo.ReplaceRows(ctx, repositories.SAPEmployeesTable, columns, rows, func(done, total int) {
			calls = append(calls, [2]int{done, total})
		})
		require.NoError(t, err)
		require.Len(t, calls, 3)
		assert.Equal(t, [2]int{3, 3}, calls[2])

		var total int
		require.NoError(t, db.GetContext(ctx, &total, "SELECT COUNT(*) FROM sap_employees"))
		assert.Equal(t, 3, total)
	})

	t.Run("ReplacesExistingPrimaryKey", func(t *testing.T) {
		rows := [][]any{{int64(1001), "Avi Cohen-Updated", "Legal"}}
		err := repo.ReplaceRows(ctx, repositories.SAPEmployeesTable, columns, rows, nil)
		require.NoError(t, err)

		var name string
		require.NoError(t, db.GetContext(ctx, &name, "SELECT sap_name FROM sap_employees WHERE sap_employee_id = 1001"))
		assert.Equal(t, "Avi Cohen-Updated", name)

		var total int
		require.NoError(t, db.GetContext(ctx, &total, "SELECT COUNT(*) FROM sap_employees"))
		assert.Equal(t, 3, total)
	})

	t.Run("RejectsUnknownTable", func(t *testing.T) {
		err := repo.ReplaceRows(ctx, "users", []string{"username"}, [][]any{{"x"}}, nil)
		assertBadRequest(t, err)
	})

	t.Run("RejectsUnknownColumn", func(t *testing.T) {
		err := repo.ReplaceRows(ctx, repositories.SAPEmployeesTable,
			[]string{"sap_name, password"}, [][]any{{"x"}}, nil)
		assertBadRequest(t, err)
	})

	t.Run("RejectsRowWidthMismatch", func(t *testing.T) {
		err := repo.ReplaceRows(ctx, repositories.SAPEmployeesTable, columns,
			[][]any{{int64(1), "only two"}}, nil)
		assertBadRequest(t, err)
	})

	t.Run("NoRowsIsANoOp", func(t *testing.T) {
		err := repo.ReplaceRows(ctx, repositories.SAPEmployeesTable, columns, nil, nil)
		require.NoError(t, err)
	})

	t.Run("FailedLoadLeavesTableUntouched", func(t *testing.T) {
		rows := [][]any{
			{int64(1004), "Rina Bar", "Oncology"},
			{int64(1005), "short"},
		}
		err := repo.ReplaceRows(ctx, repositories.SAPEmployeesTable, columns, rows, nil)
		assertBadRequest(t, err)

		// the valid first row must roll back with the bad second row
		var total int
		require.NoError(t, db.GetContext(ctx, &total, "SELECT COUNT(*) FROM sap_employees"))
		assert.Equal(t, 3, total)

		var loaded int
		require.NoError(t, db.GetContext(ctx, &loaded, "SELECT COUNT(*) FROM sap_employees WHERE sap_employee_id = 1004"))
		assert.Equal(t, 0, loaded)
	})

	t.Run("AttendanceAllowsSurrogateID", func(t *testing.T) {
		err := repo.ReplaceRows(ctx, repositories.AttendanceTable,
			[]string{"id", "hilan_employee_id", "date"},
			[][]any{{int64(1), int64(1001), "1709510400000"}}, nil)
		require.NoError(t, err)
	})
}
