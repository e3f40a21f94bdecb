package model

import (
	"strconv"

	"github.com/mirri-tools/strainsync/internal/errors"
)

// RestrictionOnUse captures the MIRRI "Restrictions on use" enumeration.
type RestrictionOnUse string

const (
	NoRestriction              RestrictionOnUse = "no_restriction"
	OnlyResearch               RestrictionOnUse = "only_research"
	CommercialUseWithAgreement RestrictionOnUse = "commercial_use_with_agreement"
)

var restrictionByCode = map[string]RestrictionOnUse{
	"1": NoRestriction,
	"2": OnlyResearch,
	"3": CommercialUseWithAgreement,
}

// Catalog phrases for restriction on use, keyed by enum value.
var restrictionPhrases = map[RestrictionOnUse]string{
	NoRestriction:              "No restrictions apply",
	OnlyResearch:               "For research use only",
	CommercialUseWithAgreement: "Commercial use requires an agreement",
}

// ParseRestrictionOnUse accepts a workbook code, an enum value or a catalog phrase.
func ParseRestrictionOnUse(value string) (RestrictionOnUse, error) {
	if r, ok := restrictionByCode[value]; ok {
		return r, nil
	}
	switch r := RestrictionOnUse(value); r {
	case NoRestriction, OnlyResearch, CommercialUseWithAgreement:
		return r, nil
	}
	for r, phrase := range restrictionPhrases {
		if phrase == value {
			return r, nil
		}
	}
	return "", errors.Newf("restriction on use %q: value not in allowed set", value).
		Category(errors.CategoryValidation).Component("model").Build()
}

// Phrase returns the catalog wording for the enum value.
func (r RestrictionOnUse) Phrase() string {
	return restrictionPhrases[r]
}

// NagoyaProtocol captures the MIRRI Nagoya protocol applicability enumeration.
type NagoyaProtocol string

const (
	NagoyaNoRestrictions NagoyaProtocol = "no_known_restrictions"
	NagoyaDocsAvailable  NagoyaProtocol = "docs_available"
	NagoyaProbablyScope  NagoyaProtocol = "probably_in_scope"
)

var nagoyaByCode = map[string]NagoyaProtocol{
	"1": NagoyaNoRestrictions,
	"2": NagoyaDocsAvailable,
	"3": NagoyaProbablyScope,
}

var nagoyaPhrases = map[NagoyaProtocol]string{
	NagoyaNoRestrictions: "No known restrictions under the Nagoya protocol",
	NagoyaDocsAvailable:  "Documents providing proof of legal access and terms of use available at the collection",
	NagoyaProbablyScope:  "Strain probably in scope, please contact the culture collection",
}

// ParseNagoyaProtocol accepts a workbook code, an enum value or a catalog phrase.
func ParseNagoyaProtocol(value string) (NagoyaProtocol, error) {
	if n, ok := nagoyaByCode[value]; ok {
		return n, nil
	}
	switch n := NagoyaProtocol(value); n {
	case NagoyaNoRestrictions, NagoyaDocsAvailable, NagoyaProbablyScope:
		return n, nil
	}
	for n, phrase := range nagoyaPhrases {
		if phrase == value {
			return n, nil
		}
	}
	return "", errors.Newf("nagoya protocol %q: value not in allowed set", value).
		Category(errors.CategoryValidation).Component("model").Build()
}

// Phrase returns the catalog wording for the enum value.
func (n NagoyaProtocol) Phrase() string {
	return nagoyaPhrases[n]
}

// FormsOfSupply is the fixed list of supply forms, in catalog order.
var FormsOfSupply = []string{
	"Agar", "Cryo", "Dry Ice", "Liquid Culture Medium", "Lyo", "Oil", "Water",
}

// ValidFormOfSupply reports whether form is one of the known supply forms.
func ValidFormOfSupply(form string) bool {
	for _, f := range FormsOfSupply {
		if f == form {
			return true
		}
	}
	return false
}

// Ploidy code to catalog word. Unknown codes deliberately collapse to
// "Polyploid"; this matches the catalog's historic behavior.
var ploidyWords = map[int]string{
	0: "Aneuploid",
	1: "Haploid",
	2: "Diploid",
	3: "Triploid",
	4: "Tetraploid",
	9: "Polyploid",
}

// PloidyWord maps a ploidy code to its catalog word.
func PloidyWord(code int) string {
	if w, ok := ploidyWords[code]; ok {
		return w
	}
	return "Polyploid"
}

// PloidyCode maps a catalog word back to the ploidy code.
func PloidyCode(word string) (int, bool) {
	for code, w := range ploidyWords {
		if w == word {
			return code, true
		}
	}
	// some catalog records carry the raw code
	if code, err := strconv.Atoi(word); err == nil {
		if _, ok := ploidyWords[code]; ok {
			return code, true
		}
	}
	return 0, false
}
