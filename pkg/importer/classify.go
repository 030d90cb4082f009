package importer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Ramsey-B/fern/pkg/repositories"
)

// DetermineTable maps a spreadsheet file name to its destination table by
// keyword. A name matching more than one keyword is rejected rather than
// guessed at; callers can pass an explicit table to resolve it.
func DetermineTable(fileName string) (string, error) {
	base := strings.ToLower(strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName)))

	var matches []string
	if strings.Contains(base, "hilaninterface") {
		matches = append(matches, repositories.InterfaceTable)
	}
	if strings.Contains(base, "sap") {
		matches = append(matches, repositories.SAPEmployeesTable)
	}
	if strings.Contains(base, "hilan") && !strings.Contains(base, "interface") {
		matches = append(matches, repositories.HilanEmployeesTable)
	}
	if strings.Contains(base, "attendance") {
		matches = append(matches, repositories.AttendanceTable)
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf(`file name %q does not identify a table: it must contain "sap", "hilan", "attendance" or "hilaninterface"`, fileName)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("file name %q matches multiple tables (%s): pass an explicit table", fileName, strings.Join(matches, ", "))
	}
}

// ImportableTable reports whether a table accepts spreadsheet imports.
func ImportableTable(table string) bool {
	if table == repositories.InterfaceTable {
		return true
	}
	_, ok := repositories.TableColumns(table)
	return ok
}
