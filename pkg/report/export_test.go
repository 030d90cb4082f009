package report_test

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Ramsey-B/fern/pkg/report"
)

var exportColumns = []string{"sap_name", "sap_department", "sap_job_percentage"}

func exportRows() []map[string]any {
	return []map[string]any{
		{"sap_name": "Avi Cohen", "sap_department": "HR", "sap_job_percentage": float64(100)},
		{"sap_name": "Dana Levi", "sap_department": "Finance", "sap_job_percentage": 87.5},
		{"sap_name": "Noa Peretz", "sap_department": nil, "sap_job_percentage": []byte("50")},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := report.WriteCSV(&buf, exportColumns, exportRows())
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\ufeff"), "CSV starts with a UTF-8 BOM")

	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, "\ufeff"))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, exportColumns, records[0])
	assert.Equal(t, []string{"Avi Cohen", "HR", "100"}, records[1])
	assert.Equal(t, []string{"Dana Levi", "Finance", "87.5"}, records[2])
	assert.Equal(t, []string{"Noa Peretz", "", "50"}, records[3])
}

func TestWriteCSV_NoRows(t *testing.T) {
	var buf bytes.Buffer
	err := report.WriteCSV(&buf, exportColumns, nil)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(buf.String(), "\ufeff"))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	err := report.WriteXLSX(&buf, exportColumns, exportRows())
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Report")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, exportColumns, rows[0])
	assert.Equal(t, "Avi Cohen", rows[1][0])
	assert.Equal(t, "87.5", rows[2][2])
}

func TestWriteDocument(t *testing.T) {
	var buf bytes.Buffer
	err := report.WriteDocument(&buf, []string{"sap_name"}, exportRows())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "sap_name\n")
	assert.Contains(t, out, "Avi Cohen\n")
	assert.Contains(t, out, "Page 1 of 1\n")
	assert.NotContains(t, out, "\f", "a single page has no page break")
}

func TestWriteDocument_Pagination(t *testing.T) {
	rows := make([]map[string]any, 0, 85)
	for i := 0; i < 85; i++ {
		rows = append(rows, map[string]any{"sap_name": fmt.Sprintf("Employee %02d", i)})
	}

	var buf bytes.Buffer
	err := report.WriteDocument(&buf, []string{"sap_name"}, rows)
	require.NoError(t, err)

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "\f"), "85 rows at 40 per page is 3 pages")
	assert.Equal(t, 3, strings.Count(out, "sap_name\n"), "header repeats on every page")
	assert.Contains(t, out, "Page 1 of 3\n")
	assert.Contains(t, out, "Page 3 of 3\n")
}

func TestWriteDocument_EmptyReportStillHasAPage(t *testing.T) {
	var buf bytes.Buffer
	err := report.WriteDocument(&buf, []string{"sap_name"}, nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Page 1 of 1\n")
}
