// Package errlog collects validation errors keyed by domain tag and renders
// the grouped summary table.
package errlog

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Domain tags. The tag of an error is the first three characters of its code.
const (
	TagExcelStructure   = "EFS"
	TagGrowthMedia      = "GMD"
	TagGeographicOrigin = "GOD"
	TagLiterature       = "LID"
	TagStrains          = "STD"
	TagGenomicInfo      = "GID"
	TagOntobiotope      = "OTD"
	TagUncategorized    = "UCT"
)

// tagTitles orders and names the sections of the rendered summary.
var tagTitles = []struct {
	tag   string
	title string
}{
	{TagExcelStructure, "Excel file structure"},
	{TagGrowthMedia, "Growth media"},
	{TagGeographicOrigin, "Geographic origin"},
	{TagLiterature, "Literature"},
	{TagStrains, "Strains"},
	{TagGenomicInfo, "Genomic information"},
	{TagOntobiotope, "Ontobiotope"},
	{TagUncategorized, "Uncategorized"},
}

// Error is one validation failure.
type Error struct {
	Code string // e.g. "STD44"
	PK   string // row primary key, when known
	Data string // offending value, when relevant
}

// Tag returns the domain tag of the error, UCT when the code is unknown.
func (e Error) Tag() string {
	if len(e.Code) < 3 {
		return TagUncategorized
	}
	tag := e.Code[:3]
	for _, t := range tagTitles {
		if t.tag == tag {
			return tag
		}
	}
	return TagUncategorized
}

// Message renders the error text from the fixed message table, interpolating
// the primary key and offending value where the template asks for them.
func (e Error) Message() string {
	template, ok := messages[e.Code]
	if !ok {
		if e.Data != "" {
			return fmt.Sprintf("unrecognized error %s: %s", e.Code, e.Data)
		}
		return fmt.Sprintf("unrecognized error %s", e.Code)
	}
	msg := strings.ReplaceAll(template, "{pk}", e.PK)
	msg = strings.ReplaceAll(msg, "{value}", e.Data)
	return msg
}

// Log accumulates errors grouped by domain tag.
type Log struct {
	errors map[string][]Error
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{errors: make(map[string][]Error)}
}

// Add appends an error under its domain tag.
func (l *Log) Add(err Error) {
	tag := err.Tag()
	l.errors[tag] = append(l.errors[tag], err)
}

// Addf is shorthand for Add with code, pk and value.
func (l *Log) Addf(code, pk, value string) {
	l.Add(Error{Code: code, PK: pk, Data: value})
}

// Errors returns the collected errors for one tag, in insertion order.
func (l *Log) Errors(tag string) []Error {
	return l.errors[tag]
}

// All returns every collected error grouped by tag.
func (l *Log) All() map[string][]Error {
	return l.errors
}

// Count returns the total number of collected errors.
func (l *Log) Count() int {
	n := 0
	for _, errs := range l.errors {
		n += len(errs)
	}
	return n
}

// IsEmpty reports whether no error has been collected.
func (l *Log) IsEmpty() bool {
	return l.Count() == 0
}

// Render writes the grouped two-column summary: sections by tag in the fixed
// order, rows ordered by code.
func (l *Log) Render(w io.Writer) error {
	for _, section := range tagTitles {
		errs := l.errors[section.tag]
		if len(errs) == 0 {
			continue
		}
		ordered := make([]Error, len(errs))
		copy(ordered, errs)
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Code < ordered[j].Code
		})

		if _, err := fmt.Fprintf(w, "%s\n%s\n", section.title, strings.Repeat("-", len(section.title))); err != nil {
			return err
		}
		for _, e := range ordered {
			if _, err := fmt.Fprintf(w, "%-8s %s\n", e.Code, e.Message()); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
