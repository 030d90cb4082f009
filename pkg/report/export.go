package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// utf8BOM lets spreadsheet applications detect the encoding of exported CSVs.
const utf8BOM = "\ufeff"

// WriteCSV writes the rows as UTF-8 CSV with a byte-order mark.
func WriteCSV(w io.Writer, columns []string, rows []map[string]any) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		record := make([]string, len(columns))
		for i, col := range columns {
			record[i] = formatValue(row[col])
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the rows as a single-sheet workbook.
func WriteXLSX(w io.Writer, columns []string, rows []map[string]any) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Report"
	f.SetSheetName(f.GetSheetName(0), sheet)

	header := make([]any, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		record := make([]any, len(columns))
		for j, col := range columns {
			record[j] = row[col]
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// documentRowsPerPage is the number of data lines on one page of a text
// document export.
const documentRowsPerPage = 40

// WriteDocument writes the rows as a paginated plain-text document with a
// header line repeated on every page.
func WriteDocument(w io.Writer, columns []string, rows []map[string]any) error {
	header := strings.Join(columns, ", ")
	pages := (len(rows) + documentRowsPerPage - 1) / documentRowsPerPage
	if pages == 0 {
		pages = 1
	}

	for page := 0; page < pages; page++ {
		if page > 0 {
			if _, err := io.WriteString(w, "\f"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s\n%s\n", header, strings.Repeat("-", len(header))); err != nil {
			return err
		}

		start := page * documentRowsPerPage
		end := start + documentRowsPerPage
		if end > len(rows) {
			end = len(rows)
		}
		for _, row := range rows[start:end] {
			values := make([]string, len(columns))
			for i, col := range columns {
				values[i] = formatValue(row[col])
			}
			if _, err := fmt.Fprintf(w, "%s\n", strings.Join(values, ", ")); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(w, "\nPage %d of %d\n", page+1, pages); err != nil {
			return err
		}
	}
	return nil
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
