package model

import (
	"fmt"
	"strings"

	"github.com/mirri-tools/strainsync/internal/errors"
)

// ErrPlaceholderSpecies marks a taxon whose species epithet is an “unknown
// species” placeholder (sp., spp, ...). Validation rejects these; the lenient
// parser keeps the genus and drops the epithet.
var ErrPlaceholderSpecies = fmt.Errorf("placeholder species epithet")

// ParseTaxon parses the workbook taxon micro-grammar:
//
//	Genus [species [rank_token name]*]
//
// where every rank_token is one of subsp., var., convar., group., f.
// A placeholder species returns the genus-only taxonomy together with
// ErrPlaceholderSpecies.
func ParseTaxon(text string) (*Taxonomy, error) {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil, errors.Newf("empty taxon name").
			Category(errors.CategoryValidation).Component("model").Build()
	}

	tax := &Taxonomy{Genus: tokens[0]}
	if len(tokens) == 1 {
		return tax, nil
	}

	species := tokens[1]
	if IsPlaceholderSpecies(species) {
		return tax, errors.Newf("%w: %q in %q", ErrPlaceholderSpecies, species, text).
			Category(errors.CategoryValidation).Component("model").Build()
	}
	tax.Species = species

	rest := tokens[2:]
	if len(rest)%2 != 0 {
		return nil, errors.Newf("taxon name %q: dangling rank token", text).
			Category(errors.CategoryValidation).Component("model").Build()
	}
	for i := 0; i < len(rest); i += 2 {
		rank, ok := RankFromToken(rest[i])
		if !ok {
			return nil, errors.Newf("taxon name %q: %q is not a rank token", text, rest[i]).
				Category(errors.CategoryValidation).Component("model").Build()
		}
		if err := tax.SetRank(rank, rest[i+1], ""); err != nil {
			return nil, err
		}
	}
	return tax, nil
}
