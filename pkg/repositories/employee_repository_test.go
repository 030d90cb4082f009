package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/repositories"
)

func seedSAPEmployees(t *testing.T, db database.DB) {
	t.Helper()
	ctx := context.Background()
	names := []struct {
		id   int64
		name string
	}{
		{1001, "Avi Cohen"},
		{1002, "Dana Levi"},
		{1003, "Dana Mizrahi"},
		{2001, "Noa Peretz"},
	}
	for _, n := range names {
		_, err := db.ExecContext(ctx,
			"INSERT INTO sap_employees (sap_employee_id, sap_name, sap_department) VALUES (?, ?, ?)",
			n.id, n.name, "HR")
		require.NoError(t, err)
	}
}

func seedHilanEmployees(t *testing.T, db database.DB) {
	t.Helper()
	ctx := context.Background()
	rows := []struct {
		id    int64
		last  string
		first string
	}{
		{1001, "Cohen", "Avi"},
		{1002, "Levi", "Dana"},
		{3001, "Peretz", "Noa"},
	}
	for _, r := range rows {
		_, err := db.ExecContext(ctx,
			"INSERT INTO hilan_employees (hilan_employee_id, hilan_last_name, hilan_first_name) VALUES (?, ?, ?)",
			r.id, r.last, r.first)
		require.NoError(t, err)
	}
}

func TestSAPEmployeeRepository_Search(t *testing.T) {
	db := getTestDB(t)
	repo := repositories.NewSAPEmployeeRepository(db, getTestLogger())
	ctx := context.Background()
	seedSAPEmployees(t, db)

	t.Run("MatchesName", func(t *testing.T) {
		page, err := repo.Search(ctx, "Dana", 1, 10, "", "")
		require.NoError(t, err)
		assert.Equal(t, 2, page.Total)
		assert.Equal(t, 1, page.TotalPages)
		require.Len(t, page.Items, 2)
		assert.Equal(t, "Dana Levi", *page.Items[0].Name)
	})

	t.Run("MatchesID", func(t *testing.T) {
		page, err := repo.Search(ctx, "2001", 1, 10, "", "")
		require.NoError(t, err)
		assert.Equal(t, 1, page.Total)
		require.Len(t, page.Items, 1)
		assert.Equal(t, int64(2001), page.Items[0].SAPEmployeeID)
	})

	t.Run("EmptyQueryMatchesAll", func(t *testing.T) {
		page, err := repo.Search(ctx, "", 1, 10, "", "")
		require.NoError(t, err)
		assert.Equal(t, 4, page.Total)
	})

	t.Run("Pagination", func(t *testing.T) {
		page, err := repo.Search(ctx, "", 2, 3, "", "")
		require.NoError(t, err)
		assert.Equal(t, 4, page.Total)
		assert.Equal(t, 2, page.TotalPages)
		assert.Equal(t, 2, page.Page)
		require.Len(t, page.Items, 1)
	})

	t.Run("SortDescending", func(t *testing.T) {
		page, err := repo.Search(ctx, "", 1, 10, "sap_employee_id", "desc")
		require.NoError(t, err)
		require.Len(t, page.Items, 4)
		assert.Equal(t, int64(2001), page.Items[0].SAPEmployeeID)
	})

	t.Run("InvalidSortField", func(t *testing.T) {
		_, err := repo.Search(ctx, "", 1, 10, "sap_name; DROP TABLE users", "")
		assertBadRequest(t, err)
	})

	t.Run("NoMatches", func(t *testing.T) {
		page, err := repo.Search(ctx, "does-not-exist", 1, 10, "", "")
		require.NoError(t, err)
		assert.Equal(t, 0, page.Total)
		assert.Equal(t, 0, page.TotalPages)
		assert.NotNil(t, page.Items)
		assert.Empty(t, page.Items)
	})
}

func TestSAPEmployeeRepository_GetByID(t *testing.T) {
	db := getTestDB(t)
	repo := repositories.NewSAPEmployeeRepository(db, getTestLogger())
	ctx := context.Background()
	seedSAPEmployees(t, db)

	employee, err := repo.GetByID(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, "Avi Cohen", *employee.Name)

	_, err = repo.GetByID(ctx, 9999)
	assertNotFound(t, err)
}

func TestHilanEmployeeRepository_Search(t *testing.T) {
	db := getTestDB(t)
	repo := repositories.NewHilanEmployeeRepository(db, getTestLogger())
	ctx := context.Background()
	seedHilanEmployees(t, db)

	t.Run("MatchesFirstOrLastName", func(t *testing.T) {
		page, err := repo.Search(ctx, "Dana", 1, 10, "", "")
		require.NoError(t, err)
		assert.Equal(t, 1, page.Total)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "Levi", *page.Items[0].LastName)
	})

	t.Run("MatchesID", func(t *testing.T) {
		page, err := repo.Search(ctx, "3001", 1, 10, "", "")
		require.NoError(t, err)
		assert.Equal(t, 1, page.Total)
	})

	t.Run("DefaultSortByLastName", func(t *testing.T) {
		page, err := repo.Search(ctx, "", 1, 10, "", "")
		require.NoError(t, err)
		require.Len(t, page.Items, 3)
		assert.Equal(t, "Cohen", *page.Items[0].LastName)
		assert.Equal(t, "Peretz", *page.Items[2].LastName)
	})
}

func TestHilanEmployeeRepository_GetByID(t *testing.T) {
	db := getTestDB(t)
	repo := repositories.NewHilanEmployeeRepository(db, getTestLogger())
	ctx := context.Background()
	seedHilanEmployees(t, db)

	employee, err := repo.GetByID(ctx, 1002)
	require.NoError(t, err)
	assert.Equal(t, "Dana", *employee.FirstName)

	_, err = repo.GetByID(ctx, 42)
	assertNotFound(t, err)
}

func TestEmployeeRepositories_Count(t *testing.T) {
	db := getTestDB(t)
	ctx := context.Background()
	seedSAPEmployees(t, db)
	seedHilanEmployees(t, db)

	sapCount, err := repositories.NewSAPEmployeeRepository(db, getTestLogger()).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, sapCount)

	hilanCount, err := repositories.NewHilanEmployeeRepository(db, getTestLogger()).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, hilanCount)
}
