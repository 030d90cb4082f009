package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/repositories"
)

func seedReportData(t *testing.T, db database.DB) {
	t.Helper()
	ctx := context.Background()
	rows := []struct {
		id         int64
		name       string
		department string
		birthDate  string
	}{
		{1001, "Avi Cohen", "HR", "1985-02-11"},
		{1002, "Dana Levi", "Finance", "1990-07-30"},
		{1003, "Noa Peretz", "HR", "1979-12-01"},
	}
	for _, r := range rows {
		_, err := db.ExecContext(ctx,
			"INSERT INTO sap_employees (sap_employee_id, sap_name, sap_department, sap_birth_date) VALUES (?, ?, ?, ?)",
			r.id, r.name, r.department, r.birthDate)
		require.NoError(t, err)
	}
}

func TestReportRepository_Generate(t *testing.T) {
	db := getTestDB(t)
	repo := repositories.NewReportRepository(db, getTestLogger())
	ctx := context.Background()
	seedReportData(t, db)

	t.Run("NoFilters", func(t *testing.T) {
		rows, err := repo.Generate(ctx, "sap", nil, []string{"sap_name", "sap_department"})
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "Avi Cohen", rows[0]["sap_name"])
		assert.Equal(t, "HR", rows[0]["sap_department"])
	})

	t.Run("IncludeFilter", func(t *testing.T) {
		rows, err := repo.Generate(ctx, "sap", map[string]repositories.ReportFilter{
			"sap_department": {Values: []string{"HR"}, Operation: "include"},
		}, []string{"sap_name"})
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("ExcludeFilter", func(t *testing.T) {
		rows, err := repo.Generate(ctx, "sap", map[string]repositories.ReportFilter{
			"sap_department": {Values: []string{"HR"}, Operation: "exclude"},
		}, []string{"sap_name"})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Dana Levi", rows[0]["sap_name"])
	})

	t.Run("EmptyFilterIsIgnored", func(t *testing.T) {
		rows, err := repo.Generate(ctx, "sap", map[string]repositories.ReportFilter{
			"sap_department": {Values: nil, Operation: "include"},
		}, []string{"sap_name"})
		require.NoError(t, err)
		assert.Len(t, rows, 3)
	})

	t.Run("DateColumnsRenderAsCalendarDates", func(t *testing.T) {
		rows, err := repo.Generate(ctx, "sap", nil, []string{"sap_name", "sap_birth_date"})
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "1985-02-11", rows[0]["sap_birth_date"])
	})

	t.Run("UnknownSource", func(t *testing.T) {
		_, err := repo.Generate(ctx, "oracle", nil, []string{"sap_name"})
		assertBadRequest(t, err)
	})

	t.Run("UnknownColumn", func(t *testing.T) {
		_, err := repo.Generate(ctx, "sap", nil, []string{"password"})
		assertBadRequest(t, err)
	})

	t.Run("UnknownFilterColumn", func(t *testing.T) {
		_, err := repo.Generate(ctx, "sap", map[string]repositories.ReportFilter{
			"role": {Values: []string{"admin"}},
		}, []string{"sap_name"})
		assertBadRequest(t, err)
	})

	t.Run("NoColumns", func(t *testing.T) {
		_, err := repo.Generate(ctx, "sap", nil, nil)
		assertBadRequest(t, err)
	})
}

func TestReportRepository_UniqueValues(t *testing.T) {
	db := getTestDB(t)
	repo := repositories.NewReportRepository(db, getTestLogger())
	ctx := context.Background()
	seedReportData(t, db)

	values, err := repo.UniqueValues(ctx, "sap", "sap_department")
	require.NoError(t, err)
	assert.Equal(t, []any{"Finance", "HR"}, values)

	_, err = repo.UniqueValues(ctx, "sap", "sqlite_master")
	assertBadRequest(t, err)

	_, err = repo.UniqueValues(ctx, "payroll", "sap_department")
	assertBadRequest(t, err)
}
