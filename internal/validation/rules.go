// Package validation applies the declarative MIRRI sheet schema to a
// workbook and collects every failure into an error log.
package validation

// RuleKind enumerates the per-cell validation steps. The engine dispatches
// over this closed set.
type RuleKind int

const (
	KindMandatory RuleKind = iota // column must exist in the header row
	KindMissing                   // cell must be non-empty
	KindRegexp                    // cell fully matches a regex
	KindChoices                   // cell value in an enumerated set
	KindCrossRef                  // cell value exists in another sheet's index
	KindDate                      // cell is a (partial) date in [1700, now]
	KindCoordinates               // "lat;long[;precision]"
	KindNumber                    // float, optionally bounded
	KindTaxon                     // taxon micro-grammar
	KindUnique                    // first occurrence of the value in the column
)

// Rule is one validation step of a column.
type Rule struct {
	Kind      RuleKind
	Code      string   // error code emitted on failure
	Pattern   string   // KindRegexp: anchored pattern
	Choices   []string // KindChoices
	CrossRef  string   // KindCrossRef: index name
	Separator string   // split the cell and validate each piece
	Min, Max  *float64 // KindNumber bounds
}

// RowRuleKind enumerates cross-column row rules. They run only after every
// cell rule of the row passed.
type RowRuleKind int

const (
	RowNagoya RowRuleKind = iota // country must resolve when latest date >= 2014
	RowBiblio                    // minimum fields of an article or book chapter
)

// RowRule is one cross-column rule of a sheet.
type RowRule struct {
	Kind RowRuleKind
	Code string
}

// Column binds a header label to its ordered validation steps.
type Column struct {
	Field string
	Rules []Rule
}

// CrossRef declares an index built from another sheet before the content
// pass. With Columns set, the index is the value set of those columns; with
// WholeRow, rows are indexed by KeyColumn for later field lookup.
type CrossRef struct {
	Name      string
	Sheet     string
	Columns   []string
	WholeRow  bool
	KeyColumn string
}

// SheetSchema describes the validation of one sheet.
type SheetSchema struct {
	Name          string
	IDField       string
	Mandatory     bool
	MissingCode   string // emitted when a mandatory sheet is absent
	IDMissingCode string // emitted when a row's id cell is empty
	Columns       []Column
	RowRules      []RowRule
}

// Schema is the whole workbook schema.
type Schema struct {
	Sheets    []SheetSchema
	CrossRefs []CrossRef
}

func fptr(v float64) *float64 { return &v }
