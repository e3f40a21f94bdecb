package parser

import (
	"github.com/mirri-tools/strainsync/internal/errlog"
	"github.com/mirri-tools/strainsync/internal/validation"
	"github.com/mirri-tools/strainsync/internal/workbook"
)

// ParseFile opens a workbook, validates it and decodes its content. When
// validation reports errors the returned Result is nil and the caller is
// expected to render the log; an unreadable file yields an EXL00 log entry.
func ParseFile(path string, failFast bool) (*Result, *errlog.Log, error) {
	wb, err := workbook.Open(path)
	if err != nil {
		log := errlog.NewLog()
		log.Addf("EXL00", "", path)
		return nil, log, nil
	}
	defer func() {
		_ = wb.Close()
	}()

	log := validation.ValidateWorkbook(wb)
	if !log.IsEmpty() {
		return nil, log, nil
	}

	result, err := ParseWorkbook(wb, log, failFast)
	if err != nil {
		return nil, log, err
	}
	return result, log, nil
}
