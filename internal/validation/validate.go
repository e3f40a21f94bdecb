package validation

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mirri-tools/strainsync/internal/daterange"
	"github.com/mirri-tools/strainsync/internal/errlog"
	"github.com/mirri-tools/strainsync/internal/logging"
	"github.com/mirri-tools/strainsync/internal/model"
	"github.com/mirri-tools/strainsync/internal/workbook"
)

var logger *slog.Logger

func init() {
	logger = logging.ForService("validation")
}

// minYear bounds DATE cells; nothing in a culture collection predates 1700.
const minYear = 1700

// ValidateFile opens the workbook at path and validates it against the MIRRI
// schema. An unreadable file yields a log with the single EXL00 error.
func ValidateFile(path string) *errlog.Log {
	wb, err := workbook.Open(path)
	if err != nil {
		log := errlog.NewLog()
		log.Addf("EXL00", "", path)
		return log
	}
	defer func() {
		if err := wb.Close(); err != nil {
			logger.Warn("closing workbook", "path", path, "error", err)
		}
	}()
	return ValidateWorkbook(wb)
}

// ValidateWorkbook validates an open workbook against the MIRRI schema.
func ValidateWorkbook(wb *workbook.Workbook) *errlog.Log {
	return validate(wb, MIRRISchema())
}

func validate(wb *workbook.Workbook, schema *Schema) *errlog.Log {
	log := errlog.NewLog()

	// Structural pass. Content validation is unsafe without the declared
	// sheets and columns, so any structural error short-circuits.
	if structuralPass(wb, schema, log); !log.IsEmpty() {
		logger.Info("structural validation failed", "errors", log.Count())
		return log
	}

	idx := buildIndexes(wb, schema)

	for _, sheet := range schema.Sheets {
		validateSheet(wb, sheet, idx, log)
	}
	logger.Info("content validation finished", "errors", log.Count())
	return log
}

func structuralPass(wb *workbook.Workbook, schema *Schema, log *errlog.Log) {
	for _, sheet := range schema.Sheets {
		if !wb.HasSheet(sheet.Name) {
			if sheet.Mandatory {
				log.Addf(sheet.MissingCode, "", sheet.Name)
			}
			continue
		}
		headers, err := wb.Headers(sheet.Name)
		if err != nil {
			log.Addf(sheet.MissingCode, "", sheet.Name)
			continue
		}
		headerSet := make(map[string]bool, len(headers))
		for _, h := range headers {
			headerSet[h] = true
		}
		for _, col := range sheet.Columns {
			for _, rule := range col.Rules {
				if rule.Kind == KindMandatory && !headerSet[col.Field] {
					log.Addf(rule.Code, sheet.Name, col.Field)
				}
			}
		}
	}
}

// indexes holds the cross-reference views built before the content pass.
type indexes struct {
	sets map[string]map[string]bool
	rows map[string]map[string]workbook.Row
}

func buildIndexes(wb *workbook.Workbook, schema *Schema) *indexes {
	idx := &indexes{
		sets: make(map[string]map[string]bool),
		rows: make(map[string]map[string]workbook.Row),
	}
	for _, ref := range schema.CrossRefs {
		idx.sets[ref.Name] = make(map[string]bool)
		if ref.WholeRow {
			idx.rows[ref.Name] = make(map[string]workbook.Row)
		}
		rows, err := wb.Rows(ref.Sheet, "")
		if err != nil {
			continue
		}
		for _, row := range rows {
			for _, col := range ref.Columns {
				if v := row.Value(col); v != "" {
					idx.sets[ref.Name][v] = true
				}
			}
			if ref.WholeRow {
				if key := row.Value(ref.KeyColumn); key != "" {
					idx.rows[ref.Name][key] = row
				}
			}
		}
	}
	return idx
}

func validateSheet(wb *workbook.Workbook, sheet SheetSchema, idx *indexes, log *errlog.Log) {
	rows, err := wb.Rows(sheet.Name, "")
	if err != nil {
		return
	}
	seen := make(map[string]map[string]bool) // field -> value -> seen, for UNIQUE
	for _, row := range rows {
		pk := row.Value(sheet.IDField)
		if pk == "" {
			log.Addf(sheet.IDMissingCode, "", "")
			continue
		}
		rowClean := true
		for _, col := range sheet.Columns {
			if !validateColumn(row, col, pk, seen, idx, log) {
				rowClean = false
			}
		}
		if rowClean {
			for _, rule := range sheet.RowRules {
				validateRowRule(row, rule, pk, idx, log)
			}
		}
	}
}

// validateColumn runs the column's steps in order, stopping at the first
// failure. It returns false when an error was emitted.
func validateColumn(row workbook.Row, col Column, pk string, seen map[string]map[string]bool, idx *indexes, log *errlog.Log) bool {
	value := row.Value(col.Field)
	for _, rule := range col.Rules {
		switch rule.Kind {
		case KindMandatory:
			// handled by the structural pass
			continue
		case KindMissing:
			if value == "" {
				log.Addf(rule.Code, pk, "")
				return false
			}
		default:
			if value == "" {
				return true
			}
			if !checkRule(rule, col.Field, value, seen, idx) {
				log.Addf(rule.Code, pk, value)
				return false
			}
		}
	}
	return true
}

func checkRule(rule Rule, field, value string, seen map[string]map[string]bool, idx *indexes) bool {
	switch rule.Kind {
	case KindRegexp:
		re := compiled(rule.Pattern)
		for _, piece := range splitCell(value, rule.Separator) {
			if !re.MatchString(piece) {
				return false
			}
		}
		return true
	case KindChoices:
		choiceSet := make(map[string]bool, len(rule.Choices))
		for _, c := range rule.Choices {
			choiceSet[c] = true
		}
		for _, piece := range splitCell(value, rule.Separator) {
			if !choiceSet[piece] {
				return false
			}
		}
		return true
	case KindCrossRef:
		set := idx.sets[rule.CrossRef]
		for _, piece := range splitCell(value, rule.Separator) {
			if !set[piece] {
				return false
			}
		}
		return true
	case KindDate:
		return validDateCell(value)
	case KindCoordinates:
		return validCoordinates(value)
	case KindNumber:
		for _, piece := range splitCell(value, rule.Separator) {
			f, err := strconv.ParseFloat(piece, 64)
			if err != nil {
				return false
			}
			if rule.Min != nil && f < *rule.Min {
				return false
			}
			if rule.Max != nil && f > *rule.Max {
				return false
			}
		}
		return true
	case KindTaxon:
		for _, piece := range splitCell(value, rule.Separator) {
			if _, err := model.ParseTaxon(piece); err != nil {
				return false
			}
		}
		return true
	case KindUnique:
		if seen[field] == nil {
			seen[field] = make(map[string]bool)
		}
		if seen[field][value] {
			return false
		}
		seen[field][value] = true
		return true
	}
	return true
}

func validateRowRule(row workbook.Row, rule RowRule, pk string, idx *indexes, log *errlog.Log) {
	switch rule.Kind {
	case RowNagoya:
		if !nagoyaRowValid(row, idx) {
			log.Addf(rule.Code, pk, "")
		}
	case RowBiblio:
		if !biblioRowValid(row) {
			log.Addf(rule.Code, pk, "")
		}
	}
}

// nagoyaRowValid checks that a strain whose latest known date falls in 2014
// or later resolves to a country, as required by the Nagoya protocol.
func nagoyaRowValid(row workbook.Row, idx *indexes) bool {
	latest := 0
	for _, field := range []string{
		FieldDateOfCollection, FieldDateOfIsolation, FieldDateOfDeposit, FieldDateOfInclusion,
	} {
		v := row.Value(field)
		if v == "" {
			continue
		}
		d, err := daterange.Strpdate(v)
		if err != nil {
			continue
		}
		if d.Year() > latest {
			latest = d.Year()
		}
	}
	if latest < 2014 {
		return true
	}
	geoRow, ok := idx.rows[RefGeographic][row.Value(FieldGeographicOrigin)]
	if !ok {
		return false
	}
	return model.ValidCountryCode(geoRow.Value("Country"))
}

// biblioRowValid enforces the minimum fields of a journal article (title
// present) or a book chapter, unless a full reference is given.
func biblioRowValid(row workbook.Row) bool {
	if row.Value("Full reference") != "" {
		return true
	}
	required := []string{"Authors", "Year", "Editors", "Publisher", "Book title"}
	if row.Value("Title") != "" {
		required = []string{"Authors", "Journal", "Year", "Volume", "First page"}
	}
	for _, field := range required {
		if row.Value(field) == "" {
			return false
		}
	}
	return true
}

// splitCell splits value on any of the separator characters, trimming pieces.
// With no separator, the whole value is the single piece.
func splitCell(value, separators string) []string {
	if separators == "" {
		return []string{value}
	}
	pieces := strings.FieldsFunc(value, func(r rune) bool {
		return strings.ContainsRune(separators, r)
	})
	for i, p := range pieces {
		pieces[i] = strings.TrimSpace(p)
	}
	return pieces
}

func validDateCell(value string) bool {
	d, err := daterange.Strpdate(value)
	if err != nil {
		return false
	}
	return d.Year() >= minYear && d.Year() <= time.Now().Year()
}

func validCoordinates(value string) bool {
	pieces := splitCell(value, ";")
	if len(pieces) != 2 && len(pieces) != 3 {
		return false
	}
	lat, err := strconv.ParseFloat(pieces[0], 64)
	if err != nil || lat < -90 || lat > 90 {
		return false
	}
	long, err := strconv.ParseFloat(pieces[1], 64)
	if err != nil || long < -180 || long > 180 {
		return false
	}
	if len(pieces) == 3 {
		if _, err := strconv.ParseFloat(pieces[2], 64); err != nil {
			return false
		}
	}
	return true
}

var (
	regexCache   = make(map[string]*regexp.Regexp)
	regexCacheMu sync.Mutex
)

// compiled returns the anchored, cached regexp for pattern.
func compiled(pattern string) *regexp.Regexp {
	regexCacheMu.Lock()
	defer regexCacheMu.Unlock()
	if re, ok := regexCache[pattern]; ok {
		return re
	}
	re := regexp.MustCompile(`^(?:` + pattern + `)$`)
	regexCache[pattern] = re
	return re
}
