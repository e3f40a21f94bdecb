package parser

import (
	"strconv"
	"strings"

	"github.com/mirri-tools/strainsync/internal/daterange"
	"github.com/mirri-tools/strainsync/internal/errors"
	"github.com/mirri-tools/strainsync/internal/model"
)

func decodeAccession(s *model.Strain, value string, _ *context) error {
	id := model.ParseStrainID(value)
	if !id.Valid() {
		return errors.Newf("accession %q: collection and number required", value).
			Category(errors.CategoryParsing).Component("parser").Build()
	}
	s.ID = id
	return nil
}

func decodeOtherNumbers(s *model.Strain, value string, _ *context) error {
	for _, piece := range splitList(value, ";") {
		s.OtherNumbers = append(s.OtherNumbers, model.ParseStrainID(piece))
	}
	return nil
}

func decodeRestriction(s *model.Strain, value string, _ *context) error {
	return s.SetRestrictionOnUse(value)
}

func decodeNagoya(s *model.Strain, value string, _ *context) error {
	return s.SetNagoyaProtocol(value)
}

func decodeABSFiles(s *model.Strain, value string, _ *context) error {
	s.ABSRelatedFiles = splitList(value, ";")
	return nil
}

func decodeMTAFiles(s *model.Strain, value string, _ *context) error {
	s.MTAFiles = splitList(value, ";")
	return nil
}

func decodeOtherDenominations(s *model.Strain, value string, _ *context) error {
	s.OtherDenominations = splitList(value, ";")
	return nil
}

func decodeHistory(s *model.Strain, value string, _ *context) error {
	s.SetHistory(value)
	return nil
}

func decodeDepositor(s *model.Strain, value string, _ *context) error {
	s.Deposit.Who = value
	return nil
}

func decodeDateOfDeposit(s *model.Strain, value string, _ *context) error {
	d, err := daterange.Strpdate(value)
	if err != nil {
		return err
	}
	s.Deposit.Date = d
	return nil
}

func decodeDateOfInclusion(s *model.Strain, value string, _ *context) error {
	d, err := daterange.Strpdate(value)
	if err != nil {
		return err
	}
	s.CatalogInclusionDate = d
	return nil
}

func decodeCollectedBy(s *model.Strain, value string, _ *context) error {
	s.Collect.Who = value
	return nil
}

func decodeDateOfCollection(s *model.Strain, value string, _ *context) error {
	d, err := daterange.Strpdate(value)
	if err != nil {
		return err
	}
	s.Collect.Date = d
	return nil
}

// decodeGeographicOrigin copies country, region, city and locality from the
// referenced Geographic origin row onto the strain's collect location.
func decodeGeographicOrigin(s *model.Strain, value string, ctx *context) error {
	row, ok := ctx.locations[value]
	if !ok {
		return errors.Newf("geographic origin %q: not a location id", value).
			Category(errors.CategoryParsing).Component("parser").Build()
	}
	if country := row.Value("Country"); country != "" {
		if err := s.Collect.Location.SetCountry(country); err != nil {
			return err
		}
	}
	s.Collect.Location.State = row.Value("Region")
	s.Collect.Location.Municipality = row.Value("City")
	s.Collect.Location.Site = row.Value("Locality")
	return nil
}

func decodeCoordinates(s *model.Strain, value string, _ *context) error {
	pieces := splitList(value, ";")
	if len(pieces) != 2 && len(pieces) != 3 {
		return errors.Newf("coordinates %q: expected lat;long[;precision]", value).
			Category(errors.CategoryParsing).Component("parser").Build()
	}
	lat, err := strconv.ParseFloat(pieces[0], 64)
	if err != nil {
		return err
	}
	long, err := strconv.ParseFloat(pieces[1], 64)
	if err != nil {
		return err
	}
	if err := s.Collect.Location.SetCoordinates(lat, long); err != nil {
		return err
	}
	if len(pieces) == 3 {
		precision, err := strconv.ParseFloat(pieces[2], 64)
		if err != nil {
			return err
		}
		s.Collect.Location.CoordUncertainty = &precision
	}
	return nil
}

func decodeAltitude(s *model.Strain, value string, _ *context) error {
	alt, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return err
	}
	s.Collect.Location.Altitude = &alt
	return nil
}

func decodeIsolatedBy(s *model.Strain, value string, _ *context) error {
	s.Isolation.Who = value
	return nil
}

func decodeDateOfIsolation(s *model.Strain, value string, _ *context) error {
	d, err := daterange.Strpdate(value)
	if err != nil {
		return err
	}
	s.Isolation.Date = d
	return nil
}

func decodeSubstrateHost(s *model.Strain, value string, _ *context) error {
	s.Isolation.SubstrateHostOfIsolation = value
	return nil
}

func decodeIsolationHabitat(s *model.Strain, value string, _ *context) error {
	s.Collect.Habitat = value
	return nil
}

func decodeOntobiotope(s *model.Strain, value string, _ *context) error {
	s.Collect.HabitatOntobiotope = value
	return nil
}

func decodeOrganismTypes(s *model.Strain, value string, _ *context) error {
	for _, piece := range splitList(value, ";") {
		ot, err := model.NewOrganismType(piece)
		if err != nil {
			return err
		}
		s.Taxonomy.OrganismTypes = append(s.Taxonomy.OrganismTypes, ot)
	}
	return nil
}

// decodeTaxonName parses the taxon micro-grammar. Placeholder species like
// "Genus sp." keep the genus; multi-taxon cells keep the raw hybrid formula.
func decodeTaxonName(s *model.Strain, value string, _ *context) error {
	pieces := splitList(value, ";")
	if len(pieces) == 0 {
		return nil
	}
	tax, err := model.ParseTaxon(pieces[0])
	if err != nil && !errors.Is(err, model.ErrPlaceholderSpecies) {
		return err
	}
	organismTypes := s.Taxonomy.OrganismTypes
	hybrid := s.Taxonomy.InterspecificHybrid
	s.Taxonomy = *tax
	s.Taxonomy.OrganismTypes = organismTypes
	s.Taxonomy.InterspecificHybrid = hybrid
	if len(pieces) > 1 {
		for _, piece := range pieces[1:] {
			if _, err := model.ParseTaxon(piece); err != nil && !errors.Is(err, model.ErrPlaceholderSpecies) {
				return err
			}
		}
		s.Taxonomy.HybridFormula = strings.Join(pieces, "; ")
	}
	return nil
}

func decodeInfrasubspecific(s *model.Strain, value string, _ *context) error {
	s.Taxonomy.InfrasubspecificName = value
	return nil
}

func decodeTaxonomyComment(s *model.Strain, value string, _ *context) error {
	s.Taxonomy.Comments = value
	return nil
}

func decodeStatus(s *model.Strain, value string, _ *context) error {
	s.Status = value
	return nil
}

func decodeRiskGroup(s *model.Strain, value string, _ *context) error {
	return s.SetRiskGroup(value)
}

func decodeDualUse(s *model.Strain, value string, _ *context) error {
	b, err := parseBool(value)
	if err != nil {
		return err
	}
	s.IsPotentiallyHarmful = b
	return nil
}

func decodeQuarantine(s *model.Strain, value string, _ *context) error {
	b, err := parseBool(value)
	if err != nil {
		return err
	}
	s.IsSubjectToQuarantine = b
	return nil
}

func decodeInterspecificHybrid(s *model.Strain, value string, _ *context) error {
	b, err := parseBool(value)
	if err != nil {
		return err
	}
	s.Taxonomy.InterspecificHybrid = b
	return nil
}

func decodeRegisteredCollection(s *model.Strain, value string, _ *context) error {
	b, err := parseBool(value)
	if err != nil {
		return err
	}
	s.IsFromRegisteredCollection = b
	return nil
}

func decodeGMO(s *model.Strain, value string, _ *context) error {
	b, err := parseBool(value)
	if err != nil {
		return err
	}
	s.Genetics.GMO = b
	return nil
}

func decodeGMOConstruction(s *model.Strain, value string, _ *context) error {
	s.Genetics.GMOConstruction = value
	return nil
}

func decodeMutantInfo(s *model.Strain, value string, _ *context) error {
	s.Genetics.MutantInfo = value
	return nil
}

func decodeGenotype(s *model.Strain, value string, _ *context) error {
	s.Genetics.Genotype = value
	return nil
}

func decodeSexualState(s *model.Strain, value string, _ *context) error {
	s.Genetics.SexualState = value
	return nil
}

func decodePloidy(s *model.Strain, value string, _ *context) error {
	code, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	return s.Genetics.SetPloidy(code)
}

func decodePlasmids(s *model.Strain, value string, _ *context) error {
	s.Genetics.Plasmids = splitList(value, ";")
	return nil
}

func decodePlasmidsColl(s *model.Strain, value string, _ *context) error {
	s.Genetics.PlasmidsInCollections = splitList(value, ";")
	return nil
}

func decodeLiterature(s *model.Strain, value string, ctx *context) error {
	for _, id := range splitList(value, ";") {
		pub, ok := ctx.publications[id]
		if !ok {
			return errors.Newf("literature %q: not an id of the Literature sheet", id).
				Category(errors.CategoryParsing).Component("parser").Build()
		}
		s.Publications = append(s.Publications, *pub)
	}
	return nil
}

func decodeRecommendedTemp(s *model.Strain, value string, _ *context) error {
	mm, err := parseMinMax(value)
	if err != nil {
		return err
	}
	s.Growth.RecommendedTemp = mm
	return nil
}

// decodeRecommendedMedia splits on ";" or "/"; every acronym must exist in
// the growth media sheet.
func decodeRecommendedMedia(s *model.Strain, value string, ctx *context) error {
	acronyms := splitList(value, ";/")
	for _, acronym := range acronyms {
		if !ctx.mediaSet[acronym] {
			return errors.Newf("growth medium %q: not an acronym of the Growth media sheet", acronym).
				Category(errors.CategoryParsing).Component("parser").Build()
		}
	}
	s.Growth.RecommendedMedia = acronyms
	return nil
}

func decodeFormOfSupply(s *model.Strain, value string, _ *context) error {
	return s.SetFormOfSupply(splitList(value, ";"))
}

func decodeTestedTempRange(s *model.Strain, value string, _ *context) error {
	mm, err := parseMinMax(value)
	if err != nil {
		return err
	}
	s.Growth.TestedTempRange = mm
	return nil
}

func decodePathogenicity(s *model.Strain, value string, _ *context) error {
	s.Pathogenicity = value
	return nil
}

func decodeEnzymeProduction(s *model.Strain, value string, _ *context) error {
	s.EnzymeProduction = value
	return nil
}

func decodeMetabolites(s *model.Strain, value string, _ *context) error {
	s.ProductionOfMetabolites = value
	return nil
}

func decodeApplications(s *model.Strain, value string, _ *context) error {
	s.Applications = value
	return nil
}

func decodeRemarks(s *model.Strain, value string, _ *context) error {
	s.Remarks = value
	return nil
}
