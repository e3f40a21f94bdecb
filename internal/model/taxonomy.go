package model

import (
	"strings"

	"github.com/mirri-tools/strainsync/internal/errors"
)

// Rank is an infraspecific taxonomic rank.
type Rank string

const (
	RankSubspecies  Rank = "subspecies"
	RankVariety     Rank = "variety"
	RankConvarietas Rank = "convarietas"
	RankGroup       Rank = "group"
	RankForma       Rank = "forma"
)

// rankOrder fixes the assembly order of the long name.
var rankOrder = []Rank{RankSubspecies, RankVariety, RankConvarietas, RankGroup, RankForma}

// Long-name abbreviations per rank.
var rankAbbrev = map[Rank]string{
	RankSubspecies:  "subsp.",
	RankVariety:     "var.",
	RankConvarietas: "convar.",
	RankGroup:       "Group",
	RankForma:       "f.",
}

// rankTokens maps the workbook micro-grammar tokens to ranks.
var rankTokens = map[string]Rank{
	"subsp.":  RankSubspecies,
	"var.":    RankVariety,
	"convar.": RankConvarietas,
	"group.":  RankGroup,
	"f.":      RankForma,
}

// RankFromToken resolves a workbook rank token ("subsp.", "var.", ...).
func RankFromToken(token string) (Rank, bool) {
	r, ok := rankTokens[token]
	return r, ok
}

// RankName is an infraspecific epithet with its optional author.
type RankName struct {
	Name   string
	Author string
}

// Taxonomy is the taxonomic classification of a strain.
type Taxonomy struct {
	OrganismTypes        []OrganismType
	Genus                string
	Species              string
	SpeciesAuthor        string
	Ranks                map[Rank]RankName
	InfrasubspecificName string
	Comments             string
	InterspecificHybrid  *bool

	// HybridFormula keeps the raw multi-taxon string ("Genus a; Genus b")
	// when the workbook names more than one taxon.
	HybridFormula string
}

// rejected placeholder epithets that mean "species unknown"
var placeholderSpecies = map[string]bool{
	"sp": true, "sp.": true, "spp": true, ".sp": true,
}

// IsPlaceholderSpecies reports whether the epithet is an "unknown species"
// placeholder like "sp." and must not be stored as a species name.
func IsPlaceholderSpecies(epithet string) bool {
	return placeholderSpecies[epithet]
}

// SetRank stores an infraspecific epithet under the given rank.
func (t *Taxonomy) SetRank(rank Rank, name, author string) error {
	if _, ok := rankAbbrev[rank]; !ok {
		return errors.Newf("taxonomic rank %q: value not in allowed set", rank).
			Category(errors.CategoryValidation).Component("model").Build()
	}
	if t.Ranks == nil {
		t.Ranks = make(map[Rank]RankName)
	}
	t.Ranks[rank] = RankName{Name: name, Author: author}
	return nil
}

// LongName assembles the taxonomic string with rank abbreviations:
// "Genus species subsp. x var. y". For hybrids the raw multi-taxon
// formula wins.
func (t *Taxonomy) LongName() string {
	if t.HybridFormula != "" {
		return t.HybridFormula
	}
	var parts []string
	if t.Genus != "" {
		parts = append(parts, t.Genus)
	}
	if t.Species != "" {
		parts = append(parts, t.Species)
		if t.SpeciesAuthor != "" {
			parts = append(parts, t.SpeciesAuthor)
		}
	}
	for _, rank := range rankOrder {
		rn, ok := t.Ranks[rank]
		if !ok || rn.Name == "" {
			continue
		}
		parts = append(parts, rankAbbrev[rank], rn.Name)
		if rn.Author != "" {
			parts = append(parts, rn.Author)
		}
	}
	return strings.Join(parts, " ")
}

// IsZero reports whether nothing has been classified.
func (t *Taxonomy) IsZero() bool {
	return len(t.OrganismTypes) == 0 && t.Genus == "" && t.Species == "" &&
		len(t.Ranks) == 0 && t.InfrasubspecificName == "" && t.Comments == "" &&
		t.InterspecificHybrid == nil
}
