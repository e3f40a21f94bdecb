package model

import (
	"github.com/mirri-tools/strainsync/internal/errors"
)

// GenomicSequence is a marker sequence attached to a strain.
type GenomicSequence struct {
	MarkerType string // one of MarkerTypes
	MarkerID   string // INSDC accession number
	MarkerSeq  string

	// Remote-side identity, present once synchronized.
	RecordID   int
	RecordName string
}

// MarkerTypes is the fixed list of marker acronyms carried by the standard.
var MarkerTypes = []string{
	"16S rRNA", "ACT", "CaM", "EF-1α", "ITS", "LSU", "RPB1", "RPB2", "TUBB",
}

// markerFields maps each marker acronym to the catalog field the sequence
// link is emitted under.
var markerFields = map[string]string{
	"16S rRNA": "16S rRNA sequence",
	"ACT":      "Actin sequence",
	"CaM":      "Calmodulin sequence",
	"EF-1α":    "Elongation factor 1-alpha sequence",
	"ITS":      "ITS sequence",
	"LSU":      "LSU rDNA sequence",
	"RPB1":     "RNA polymerase II largest subunit sequence",
	"RPB2":     "RNA polymerase II second largest subunit sequence",
	"TUBB":     "Beta tubulin sequence",
}

// ValidMarkerType reports whether acronym is one of the known marker types.
func ValidMarkerType(acronym string) bool {
	_, ok := markerFields[acronym]
	return ok
}

// MarkerField returns the catalog field name for a marker acronym.
func MarkerField(acronym string) (string, error) {
	field, ok := markerFields[acronym]
	if !ok {
		return "", errors.Newf("marker type %q: value not in allowed set", acronym).
			Category(errors.CategoryValidation).Component("model").Build()
	}
	return field, nil
}

// MarkerTypeForField resolves a catalog field name back to the marker acronym.
func MarkerTypeForField(field string) (string, bool) {
	for acronym, f := range markerFields {
		if f == field {
			return acronym, true
		}
	}
	return "", false
}
