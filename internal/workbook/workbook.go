// Package workbook streams rows of spreadsheet sheets as ordered
// header-to-value mappings.
package workbook

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mirri-tools/strainsync/internal/errors"
)

// Sentinel errors surfaced to validation as EXL00 / EFS codes.
var (
	ErrNotAnExcelFile = fmt.Errorf("file is not a valid xlsx workbook")
	ErrSheetMissing   = fmt.Errorf("sheet missing")
)

// Workbook wraps an open spreadsheet file.
type Workbook struct {
	f    *excelize.File
	path string
}

// Open opens the workbook read-only with computed cell values.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Newf("%w: %s: %v", ErrNotAnExcelFile, path, err).
			Category(errors.CategoryWorkbook).Component("workbook").
			Context("path", path).Build()
	}
	return &Workbook{f: f, path: path}, nil
}

// Close releases the underlying file.
func (wb *Workbook) Close() error {
	return wb.f.Close()
}

// HasSheet reports whether the named sheet exists.
func (wb *Workbook) HasSheet(name string) bool {
	idx, err := wb.f.GetSheetIndex(name)
	return err == nil && idx >= 0
}

// Row is one spreadsheet row keyed by the header row's cell values, in
// header order. Cell strings are whitespace-stripped; empty cells are unset.
type Row struct {
	headers []string
	cells   map[string]string
}

// Headers returns the sheet's header labels in declaration order.
func (r Row) Headers() []string { return r.headers }

// Value returns the stripped cell value under col, or "" when unset.
func (r Row) Value(col string) string { return r.cells[col] }

// IsSet reports whether the cell under col holds a non-empty value.
func (r Row) IsSet(col string) bool {
	_, ok := r.cells[col]
	return ok
}

// HasColumn reports whether col appears in the header row.
func (r Row) HasColumn(col string) bool {
	for _, h := range r.headers {
		if h == col {
			return true
		}
	}
	return false
}

// Rows reads the named sheet and returns its data rows. The first row is the
// header. When mandatoryCol is non-empty, rows with no value in that column
// are treated as spacers and skipped.
func (wb *Workbook) Rows(sheet, mandatoryCol string) ([]Row, error) {
	if !wb.HasSheet(sheet) {
		return nil, errors.Newf("%w: %s", ErrSheetMissing, sheet).
			Category(errors.CategoryWorkbook).Component("workbook").
			Context("sheet", sheet).Build()
	}
	raw, err := wb.f.GetRows(sheet)
	if err != nil {
		return nil, errors.Newf("reading sheet %s: %w", sheet, err).
			Category(errors.CategoryWorkbook).Component("workbook").Build()
	}
	if len(raw) == 0 {
		return nil, nil
	}

	headers := make([]string, 0, len(raw[0]))
	for _, h := range raw[0] {
		headers = append(headers, strings.TrimSpace(h))
	}

	var rows []Row
	for _, line := range raw[1:] {
		cells := make(map[string]string)
		for i, header := range headers {
			if header == "" || i >= len(line) {
				continue
			}
			value := strings.TrimSpace(line[i])
			if value != "" {
				cells[header] = value
			}
		}
		if len(cells) == 0 {
			continue
		}
		row := Row{headers: headers, cells: cells}
		if mandatoryCol != "" && !row.IsSet(mandatoryCol) {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Headers returns the header row of the named sheet.
func (wb *Workbook) Headers(sheet string) ([]string, error) {
	if !wb.HasSheet(sheet) {
		return nil, errors.Newf("%w: %s", ErrSheetMissing, sheet).
			Category(errors.CategoryWorkbook).Component("workbook").
			Context("sheet", sheet).Build()
	}
	raw, err := wb.f.GetRows(sheet)
	if err != nil || len(raw) == 0 {
		return nil, err
	}
	headers := make([]string, 0, len(raw[0]))
	for _, h := range raw[0] {
		headers = append(headers, strings.TrimSpace(h))
	}
	return headers, nil
}
