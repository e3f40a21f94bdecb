package model

import (
	"strconv"

	"github.com/mirri-tools/strainsync/internal/errors"
)

// OrganismType is one of the six MIRRI organism kinds, identified by both a
// numeric code and a name.
type OrganismType struct {
	Code int
	Name string
}

var organismNames = map[int]string{
	1: "algae",
	2: "archaea",
	3: "bacteria",
	4: "fungi",
	5: "virus",
	6: "yeast",
}

// OrganismTypes returns all six kinds in code order.
func OrganismTypes() []OrganismType {
	types := make([]OrganismType, 0, len(organismNames))
	for code := 1; code <= 6; code++ {
		types = append(types, OrganismType{Code: code, Name: organismNames[code]})
	}
	return types
}

// NewOrganismType accepts either a code ("3") or a name ("bacteria") and
// derives the other half.
func NewOrganismType(value string) (OrganismType, error) {
	if code, err := strconv.Atoi(value); err == nil {
		if name, ok := organismNames[code]; ok {
			return OrganismType{Code: code, Name: name}, nil
		}
		return OrganismType{}, errors.Newf("organism type code %d: value not in allowed set", code).
			Category(errors.CategoryValidation).Component("model").Build()
	}
	for code, name := range organismNames {
		if name == value {
			return OrganismType{Code: code, Name: name}, nil
		}
	}
	return OrganismType{}, errors.Newf("organism type %q: value not in allowed set", value).
		Category(errors.CategoryValidation).Component("model").Build()
}
