// Package testutil builds xlsx fixtures for tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Sheet is a named grid of cells; the first row is the header.
type Sheet struct {
	Name string
	Rows [][]string
}

// WriteWorkbook writes the given sheets into a temp xlsx file and returns
// its path. The default "Sheet1" is removed.
func WriteWorkbook(t *testing.T, sheets []Sheet) string {
	t.Helper()

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			t.Logf("closing fixture workbook: %v", err)
		}
	}()

	for _, sheet := range sheets {
		if _, err := f.NewSheet(sheet.Name); err != nil {
			t.Fatalf("creating sheet %s: %v", sheet.Name, err)
		}
		for i, row := range sheet.Rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			cells := make([]any, len(row))
			for j, v := range row {
				cells[j] = v
			}
			if err := f.SetSheetRow(sheet.Name, cell, &cells); err != nil {
				t.Fatalf("writing row %d of %s: %v", i+1, sheet.Name, err)
			}
		}
	}
	if len(sheets) > 0 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			t.Fatalf("deleting default sheet: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("saving fixture workbook: %v", err)
	}
	return path
}
