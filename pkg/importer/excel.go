package importer

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadSheet reads the first worksheet of an xlsx file. The first row is
// treated as the header row. Cells are returned as strings; missing trailing
// cells are nil so they load as NULL.
func ReadSheet(path string) (headers []string, rows [][]any, err error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, nil, fmt.Errorf("spreadsheet has no worksheets")
	}

	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read worksheet %q: %w", sheet, err)
	}
	if len(raw) == 0 {
		return nil, nil, fmt.Errorf("worksheet %q is empty", sheet)
	}

	headers = raw[0]
	if len(headers) == 0 {
		return nil, nil, fmt.Errorf("worksheet %q has no header row", sheet)
	}

	rows = make([][]any, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		row := make([]any, len(headers))
		for i := range headers {
			if i < len(cells) && cells[i] != "" {
				row[i] = cells[i]
			}
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}
