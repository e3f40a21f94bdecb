// Package parser converts validated workbook rows into domain entities.
package parser

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/mirri-tools/strainsync/internal/errlog"
	"github.com/mirri-tools/strainsync/internal/errors"
	"github.com/mirri-tools/strainsync/internal/logging"
	"github.com/mirri-tools/strainsync/internal/model"
	"github.com/mirri-tools/strainsync/internal/validation"
	"github.com/mirri-tools/strainsync/internal/workbook"
)

var logger *slog.Logger

func init() {
	logger = logging.ForService("parser")
}

// Result is the normalized content of a workbook.
type Result struct {
	Strains []*model.Strain
	Media   []*model.GrowthMedium
}

// context carries the pre-indexed side sheets while strain rows are decoded.
type context struct {
	mediaSet     map[string]bool
	locations    map[string]workbook.Row
	publications map[string]*model.Publication
	markers      map[string][]model.GenomicSequence

	log      *errlog.Log
	failFast bool
}

// fail either aborts the row (failFast) or records the error and lets the
// caller continue with the next field.
func (c *context) fail(code, pk, value string) error {
	if c.failFast {
		return errors.Newf("decoding %s: %s", pk, errlog.Error{Code: code, PK: pk, Data: value}.Message()).
			Category(errors.CategoryParsing).Component("parser").
			Context("code", code).Build()
	}
	if c.log != nil {
		c.log.Addf(code, pk, value)
	}
	return nil
}

// ParseWorkbook decodes the workbook into entities. The workbook is expected
// to have passed validation; residual decoding failures are appended to log,
// or abort immediately when failFast is set.
func ParseWorkbook(wb *workbook.Workbook, log *errlog.Log, failFast bool) (*Result, error) {
	ctx := &context{log: log, failFast: failFast}

	media, err := parseGrowthMedia(wb, ctx)
	if err != nil {
		return nil, err
	}
	ctx.mediaSet = make(map[string]bool, len(media))
	for _, m := range media {
		ctx.mediaSet[m.Acronym] = true
	}

	ctx.locations, err = indexLocations(wb)
	if err != nil {
		return nil, err
	}
	ctx.publications, err = parseLiterature(wb, ctx)
	if err != nil {
		return nil, err
	}
	ctx.markers, err = parseMarkers(wb, ctx)
	if err != nil {
		return nil, err
	}

	strains, err := parseStrains(wb, ctx)
	if err != nil {
		return nil, err
	}
	logger.Info("workbook parsed", "strains", len(strains), "media", len(media))
	return &Result{Strains: strains, Media: media}, nil
}

func parseGrowthMedia(wb *workbook.Workbook, ctx *context) ([]*model.GrowthMedium, error) {
	rows, err := wb.Rows(validation.SheetGrowthMedia, "Acronym")
	if err != nil {
		return nil, err
	}
	media := make([]*model.GrowthMedium, 0, len(rows))
	for _, row := range rows {
		m := &model.GrowthMedium{
			Acronym:                 row.Value("Acronym"),
			Description:             row.Value("Description"),
			FullDescription:         row.Value("Full description"),
			Ingredients:             row.Value("Ingredients"),
			OtherName:               row.Value("Other name"),
			SterilizationConditions: row.Value("Sterilization conditions"),
		}
		if ph := row.Value("pH"); ph != "" {
			v, err := strconv.ParseFloat(ph, 64)
			if err != nil {
				if ferr := ctx.fail("GMD06", m.Acronym, ph); ferr != nil {
					return nil, ferr
				}
			} else {
				m.PH = &v
			}
		}
		media = append(media, m)
	}
	return media, nil
}

func indexLocations(wb *workbook.Workbook) (map[string]workbook.Row, error) {
	rows, err := wb.Rows(validation.SheetGeographic, "ID")
	if err != nil {
		return nil, err
	}
	index := make(map[string]workbook.Row, len(rows))
	for _, row := range rows {
		index[row.Value("ID")] = row
	}
	return index, nil
}

func parseLiterature(wb *workbook.Workbook, ctx *context) (map[string]*model.Publication, error) {
	rows, err := wb.Rows(validation.SheetLiterature, "ID")
	if err != nil {
		return nil, err
	}
	pubs := make(map[string]*model.Publication, len(rows))
	for _, row := range rows {
		pub := &model.Publication{
			ID:          row.Value("ID"),
			PubMedID:    row.Value("PubMed ID"),
			DOI:         row.Value("DOI"),
			Title:       row.Value("Title"),
			Authors:     row.Value("Authors"),
			Journal:     row.Value("Journal"),
			Volume:      row.Value("Volume"),
			Issue:       row.Value("Issue"),
			FirstPage:   row.Value("First page"),
			LastPage:    row.Value("Last page"),
			Editor:      row.Value("Editors"),
			Publisher:   row.Value("Publisher"),
			ISBN:        row.Value("ISBN"),
			ISSN:        row.Value("ISSN"),
			JournalBook: row.Value("Book title"),
		}
		if pub.Title == "" {
			pub.Title = row.Value("Full reference")
		}
		if year := row.Value("Year"); year != "" {
			y, err := strconv.Atoi(year)
			if err != nil {
				if ferr := ctx.fail("LID04", pub.ID, year); ferr != nil {
					return nil, ferr
				}
			} else {
				pub.Year = &y
			}
		}
		pubs[pub.ID] = pub
	}
	return pubs, nil
}

func parseMarkers(wb *workbook.Workbook, ctx *context) (map[string][]model.GenomicSequence, error) {
	rows, err := wb.Rows(validation.SheetGenomic, validation.FieldStrainAN)
	if err != nil {
		return nil, err
	}
	markers := make(map[string][]model.GenomicSequence)
	for _, row := range rows {
		an := row.Value(validation.FieldStrainAN)
		markerType := row.Value(validation.FieldMarker)
		if markerType != "" && !model.ValidMarkerType(markerType) {
			if ferr := ctx.fail("GID04", an, markerType); ferr != nil {
				return nil, ferr
			}
			continue
		}
		markers[an] = append(markers[an], model.GenomicSequence{
			MarkerType: markerType,
			MarkerID:   row.Value(validation.FieldINSDCAN),
			MarkerSeq:  row.Value(validation.FieldSequence),
		})
	}
	return markers, nil
}

func parseStrains(wb *workbook.Workbook, ctx *context) ([]*model.Strain, error) {
	rows, err := wb.Rows(validation.SheetStrains, validation.FieldAccessionNumber)
	if err != nil {
		return nil, err
	}
	strains := make([]*model.Strain, 0, len(rows))
	for _, row := range rows {
		strain, err := parseStrainRow(row, ctx)
		if err != nil {
			return nil, err
		}
		// markers for the row's accession come from the pre-indexed sheet
		strain.Genetics.Markers = ctx.markers[strain.ID.String()]
		strains = append(strains, strain)
	}
	return strains, nil
}

// fieldDecoder decodes one cell into the strain under construction.
type fieldDecoder struct {
	label  string
	code   string // error code on decoding failure
	decode func(s *model.Strain, value string, ctx *context) error
}

// strainFields is the ordered MIRRI field walk of a strain row.
var strainFields = []fieldDecoder{
	{validation.FieldAccessionNumber, "STD03", decodeAccession},
	{validation.FieldOtherNumbers, "STD11", decodeOtherNumbers},
	{validation.FieldRestrictionsOnUse, "STD07", decodeRestriction},
	{validation.FieldNagoyaProtocol, "STD10", decodeNagoya},
	{validation.FieldABSFiles, "", decodeABSFiles},
	{validation.FieldMTAFile, "", decodeMTAFiles},
	{validation.FieldOtherDenomination, "", decodeOtherDenominations},
	{validation.FieldHistoryOfDeposit, "", decodeHistory},
	{validation.FieldDepositor, "", decodeDepositor},
	{validation.FieldDateOfDeposit, "STD25", decodeDateOfDeposit},
	{validation.FieldDateOfInclusion, "STD28", decodeDateOfInclusion},
	{validation.FieldCollectedBy, "", decodeCollectedBy},
	{validation.FieldDateOfCollection, "STD26", decodeDateOfCollection},
	{validation.FieldGeographicOrigin, "STD31", decodeGeographicOrigin},
	{validation.FieldCoordinates, "STD32", decodeCoordinates},
	{validation.FieldAltitude, "STD33", decodeAltitude},
	{validation.FieldIsolatedBy, "", decodeIsolatedBy},
	{validation.FieldDateOfIsolation, "STD27", decodeDateOfIsolation},
	{validation.FieldSubstrateHost, "", decodeSubstrateHost},
	{validation.FieldIsolationHabitat, "", decodeIsolationHabitat},
	{validation.FieldOntobiotopeTerm, "", decodeOntobiotope},
	{validation.FieldOrganismType, "STD20", decodeOrganismTypes},
	{validation.FieldTaxonName, "STD44", decodeTaxonName},
	{validation.FieldInfrasubspecific, "", decodeInfrasubspecific},
	{validation.FieldCommentOnTaxonomy, "", decodeTaxonomyComment},
	{validation.FieldStatus, "", decodeStatus},
	{validation.FieldRiskGroup, "STD14", decodeRiskGroup},
	{validation.FieldDualUse, "STD16", decodeDualUse},
	{validation.FieldQuarantine, "STD17", decodeQuarantine},
	{validation.FieldInterspecificHybrid, "STD23", decodeInterspecificHybrid},
	{validation.FieldRegisteredColl, "STD15", decodeRegisteredCollection},
	{validation.FieldGMO, "STD34", decodeGMO},
	{validation.FieldGMOConstruction, "", decodeGMOConstruction},
	{validation.FieldMutantInfo, "", decodeMutantInfo},
	{validation.FieldGenotype, "", decodeGenotype},
	{validation.FieldSexualState, "", decodeSexualState},
	{validation.FieldPloidy, "STD35", decodePloidy},
	{validation.FieldPlasmids, "", decodePlasmids},
	{validation.FieldPlasmidsColl, "", decodePlasmidsColl},
	{validation.FieldLiterature, "STD36", decodeLiterature},
	{validation.FieldRecommendedTemp, "STD39", decodeRecommendedTemp},
	{validation.FieldRecommendedMedia, "STD42", decodeRecommendedMedia},
	{validation.FieldFormOfSupply, "STD45", decodeFormOfSupply},
	{validation.FieldTestedTempRange, "STD46", decodeTestedTempRange},
	{validation.FieldPathogenicity, "", decodePathogenicity},
	{validation.FieldEnzymeProduction, "", decodeEnzymeProduction},
	{validation.FieldMetabolites, "", decodeMetabolites},
	{validation.FieldApplications, "", decodeApplications},
	{validation.FieldRemarks, "", decodeRemarks},
}

func parseStrainRow(row workbook.Row, ctx *context) (*model.Strain, error) {
	strain := &model.Strain{}
	pk := row.Value(validation.FieldAccessionNumber)
	for _, field := range strainFields {
		value := row.Value(field.label)
		if value == "" {
			continue
		}
		if err := field.decode(strain, value, ctx); err != nil {
			code := field.code
			if code == "" {
				code = "UCT00"
			}
			if ferr := ctx.fail(code, pk, value); ferr != nil {
				return nil, ferr
			}
		}
	}
	return strain, nil
}

// parseBool applies the 1|2 workbook convention: 1 is false, 2 is true.
func parseBool(value string) (*bool, error) {
	switch value {
	case "1":
		return model.Bool(false), nil
	case "2":
		return model.Bool(true), nil
	}
	return nil, errors.Newf("boolean code %q: value not in allowed set", value).
		Category(errors.CategoryParsing).Component("parser").Build()
}

func splitList(value string, separators string) []string {
	pieces := strings.FieldsFunc(value, func(r rune) bool {
		return strings.ContainsRune(separators, r)
	})
	out := pieces[:0]
	for _, p := range pieces {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseMinMax(value string) (*model.MinMax, error) {
	pieces := splitList(value, ";")
	if len(pieces) == 0 || len(pieces) > 2 {
		return nil, errors.Newf("range %q: expected one or two values", value).
			Category(errors.CategoryParsing).Component("parser").Build()
	}
	min, err := strconv.ParseFloat(pieces[0], 64)
	if err != nil {
		return nil, errors.Newf("range %q: %w", value, err).
			Category(errors.CategoryParsing).Component("parser").Build()
	}
	max := min
	if len(pieces) == 2 {
		if max, err = strconv.ParseFloat(pieces[1], 64); err != nil {
			return nil, errors.Newf("range %q: %w", value, err).
				Category(errors.CategoryParsing).Component("parser").Build()
		}
	}
	return &model.MinMax{Min: min, Max: max}, nil
}
