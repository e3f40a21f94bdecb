// Package model holds the normalized in-memory entities for MIRRI strain
// data: strains, taxonomy, locations, growth media, publications and
// genomic sequences. Entities validate at assignment time and expose
// structural equality for the upload diff step.
package model

import (
	"strings"

	"github.com/mirri-tools/strainsync/internal/daterange"
	"github.com/mirri-tools/strainsync/internal/errors"
)

// StrainID is the composite accession identifier of a strain.
type StrainID struct {
	Collection string // collection code, e.g. "CECT"
	Number     string // collection-local number
}

// ParseStrainID splits an accession number on the first space.
// A piece without a space becomes a number-only id.
func ParseStrainID(text string) StrainID {
	text = strings.TrimSpace(text)
	collection, number, found := strings.Cut(text, " ")
	if !found {
		return StrainID{Number: text}
	}
	return StrainID{Collection: collection, Number: strings.TrimSpace(number)}
}

// String renders the canonical "{collection} {number}" form.
func (id StrainID) String() string {
	if id.Collection == "" {
		return id.Number
	}
	return id.Collection + " " + id.Number
}

// Valid reports whether both components are set.
func (id StrainID) Valid() bool {
	return id.Collection != "" && id.Number != ""
}

// IsZero reports whether no component is set.
func (id StrainID) IsZero() bool {
	return id.Collection == "" && id.Number == ""
}

// MinMax is an inclusive numeric range, used for growth temperatures.
type MinMax struct {
	Min float64
	Max float64
}

// Deposit records who deposited the strain and when.
type Deposit struct {
	Who  string
	Date daterange.DateRange
}

// Collect records the collection event of the strain.
type Collect struct {
	Who                string
	Date               daterange.DateRange
	Location           Location
	Habitat            string
	HabitatOntobiotope string // ontobiotope term id, e.g. "OBT:000001"
}

// Isolation records the isolation event of the strain.
type Isolation struct {
	Who                      string
	Date                     daterange.DateRange
	SubstrateHostOfIsolation string
}

// Growth holds culture conditions.
type Growth struct {
	RecommendedTemp  *MinMax
	TestedTempRange  *MinMax
	RecommendedMedia []string // growth medium acronyms, ordered
}

// Genetics holds genetic traits and marker sequences.
type Genetics struct {
	GMO                   *bool
	GMOConstruction       string
	MutantInfo            string
	Genotype              string
	SexualState           string
	Ploidy                *int // one of 0,1,2,3,4,9
	Plasmids              []string
	PlasmidsInCollections []string
	Markers               []GenomicSequence
}

// Strain is the central entity of the model.
type Strain struct {
	ID                         StrainID
	OtherNumbers               []StrainID
	RestrictionOnUse           RestrictionOnUse
	NagoyaProtocol             NagoyaProtocol
	RiskGroup                  string // "1".."4"
	IsFromRegisteredCollection *bool
	IsPotentiallyHarmful       *bool // dual use
	IsSubjectToQuarantine      *bool
	Taxonomy                   Taxonomy
	Status                     string
	History                    []string // deposit hops, oldest last
	Deposit                    Deposit
	Collect                    Collect
	Isolation                  Isolation
	CatalogInclusionDate       daterange.DateRange
	Growth                     Growth
	FormOfSupply               []string
	OtherDenominations         []string
	Genetics                   Genetics
	Publications               []Publication

	Pathogenicity           string
	EnzymeProduction        string
	ProductionOfMetabolites string
	Applications            string
	Remarks                 string
	ABSRelatedFiles         []string
	MTAFiles                []string

	// Remote-side identity, present once synchronized.
	RecordID   int
	RecordName string
	Synonyms   []string
}

// SetRestrictionOnUse accepts a workbook code ("1".."3") or an enum value.
func (s *Strain) SetRestrictionOnUse(value string) error {
	r, err := ParseRestrictionOnUse(value)
	if err != nil {
		return err
	}
	s.RestrictionOnUse = r
	return nil
}

// SetNagoyaProtocol accepts a workbook code ("1".."3") or an enum value.
func (s *Strain) SetNagoyaProtocol(value string) error {
	n, err := ParseNagoyaProtocol(value)
	if err != nil {
		return err
	}
	s.NagoyaProtocol = n
	return nil
}

// SetRiskGroup validates the risk group against "1".."4".
func (s *Strain) SetRiskGroup(value string) error {
	switch value {
	case "1", "2", "3", "4":
		s.RiskGroup = value
		return nil
	}
	return errors.Newf("risk group %q: value not in allowed set", value).
		Category(errors.CategoryValidation).Component("model").Build()
}

// SetHistory splits a ">"-separated hop string into the ordered hop list.
func (s *Strain) SetHistory(value string) {
	s.History = nil
	for _, hop := range strings.Split(value, ">") {
		hop = strings.TrimSpace(hop)
		if hop != "" {
			s.History = append(s.History, hop)
		}
	}
}

// SetFormOfSupply validates each form against the known supply forms.
func (s *Strain) SetFormOfSupply(forms []string) error {
	for _, f := range forms {
		if !ValidFormOfSupply(f) {
			return errors.Newf("form of supply %q: value not in allowed set", f).
				Category(errors.CategoryValidation).Component("model").Build()
		}
	}
	s.FormOfSupply = forms
	return nil
}

// SetPloidy validates the ploidy code against the known set.
func (g *Genetics) SetPloidy(value int) error {
	switch value {
	case 0, 1, 2, 3, 4, 9:
		g.Ploidy = &value
		return nil
	}
	return errors.Newf("ploidy %d: value not in allowed set", value).
		Category(errors.CategoryValidation).Component("model").Build()
}

// Bool returns a pointer to b, for tri-state boolean fields.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }
