package parser

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirri-tools/strainsync/internal/errlog"
	"github.com/mirri-tools/strainsync/internal/model"
	"github.com/mirri-tools/strainsync/internal/testutil"
	"github.com/mirri-tools/strainsync/internal/validation"
	"github.com/mirri-tools/strainsync/internal/workbook"
)

func openFixture(t *testing.T, mutate func(sheets map[string]*testutil.Sheet)) *workbook.Workbook {
	t.Helper()
	sheets := map[string]*testutil.Sheet{
		validation.SheetStrains: {
			Name: validation.SheetStrains,
			Rows: [][]string{
				{
					validation.FieldAccessionNumber, validation.FieldOtherNumbers,
					validation.FieldRestrictionsOnUse, validation.FieldNagoyaProtocol,
					validation.FieldRiskGroup, validation.FieldOrganismType,
					validation.FieldTaxonName, validation.FieldGeographicOrigin,
					validation.FieldCoordinates, validation.FieldRecommendedTemp,
					validation.FieldRecommendedMedia, validation.FieldFormOfSupply,
					validation.FieldHistoryOfDeposit, validation.FieldDateOfCollection,
					validation.FieldDualUse, validation.FieldGMO, validation.FieldPloidy,
					validation.FieldLiterature, validation.FieldOntobiotopeTerm,
					validation.FieldRemarks,
				},
				{
					"CECT 1", "CBS 100.11; IHEM 2222", "2", "1", "2", "4;6",
					"Aspergillus niger var. phoenicis", "1", "39.47;-0.37;50",
					"20;30", "AAA/BBB", "Agar;Lyo", "UCL > IHEM > CBS", "2004-05",
					"2", "1", "2", "1", "OBT:000001", "type strain",
				},
			},
		},
		validation.SheetGrowthMedia: {
			Name: validation.SheetGrowthMedia,
			Rows: [][]string{
				{"Acronym", "Description", "Full description", "pH", "Sterilization conditions"},
				{"AAA", "Nutrient agar", "Nutrient agar, full recipe", "7.2", "121C, 15 min"},
				{"BBB", "Malt extract", "", "", ""},
			},
		},
		validation.SheetGeographic: {
			Name: validation.SheetGeographic,
			Rows: [][]string{
				{"ID", "Country", "Region", "City", "Locality"},
				{"1", "ESP", "Valencia", "Valencia", "Huerta Oeste"},
			},
		},
		validation.SheetLiterature: {
			Name: validation.SheetLiterature,
			Rows: [][]string{
				{"ID", "Title", "Authors", "Journal", "Year", "Volume", "First page"},
				{"1", "Strain notes", "Doe J.", "J Microbiol", "2001", "12", "1"},
			},
		},
		validation.SheetGenomic: {
			Name: validation.SheetGenomic,
			Rows: [][]string{
				{validation.FieldStrainAN, validation.FieldMarker, validation.FieldINSDCAN, validation.FieldSequence},
				{"CECT 1", "ITS", "AB123456", "ACGTACGT"},
				{"CECT 1", "LSU", "AB123457", ""},
			},
		},
		validation.SheetOntobiotope: {
			Name: validation.SheetOntobiotope,
			Rows: [][]string{
				{"ID", "Name"},
				{"OBT:000001", "soil"},
			},
		},
	}
	if mutate != nil {
		mutate(sheets)
	}
	ordered := make([]testutil.Sheet, 0, len(sheets))
	for _, name := range []string{
		validation.SheetStrains, validation.SheetGrowthMedia, validation.SheetGeographic,
		validation.SheetLiterature, validation.SheetGenomic, validation.SheetOntobiotope,
	} {
		if s, ok := sheets[name]; ok {
			ordered = append(ordered, *s)
		}
	}
	path := testutil.WriteWorkbook(t, ordered)
	wb, err := workbook.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = wb.Close() })
	return wb
}

func TestParseWorkbook_Strain(t *testing.T) {
	wb := openFixture(t, nil)
	log := errlog.NewLog()

	result, err := ParseWorkbook(wb, log, false)
	require.NoError(t, err)
	assert.True(t, log.IsEmpty(), "unexpected decode errors: %+v", log.All())
	require.Len(t, result.Strains, 1)
	require.Len(t, result.Media, 2)

	s := result.Strains[0]
	assert.Equal(t, model.StrainID{Collection: "CECT", Number: "1"}, s.ID)
	assert.Equal(t, []model.StrainID{
		{Collection: "CBS", Number: "100.11"},
		{Collection: "IHEM", Number: "2222"},
	}, s.OtherNumbers)
	assert.Equal(t, model.OnlyResearch, s.RestrictionOnUse)
	assert.Equal(t, model.NagoyaNoRestrictions, s.NagoyaProtocol)
	assert.Equal(t, "2", s.RiskGroup)

	// organism types: codes 4 and 6
	require.Len(t, s.Taxonomy.OrganismTypes, 2)
	assert.Equal(t, "fungi", s.Taxonomy.OrganismTypes[0].Name)
	assert.Equal(t, "yeast", s.Taxonomy.OrganismTypes[1].Name)

	assert.Equal(t, "Aspergillus", s.Taxonomy.Genus)
	assert.Equal(t, "niger", s.Taxonomy.Species)
	assert.Equal(t, "phoenicis", s.Taxonomy.Ranks[model.RankVariety].Name)

	// geographic origin copied from the locations sheet
	assert.Equal(t, "ESP", s.Collect.Location.CountryCode)
	assert.Equal(t, "Valencia", s.Collect.Location.State)
	assert.Equal(t, "Valencia", s.Collect.Location.Municipality)
	assert.Equal(t, "Huerta Oeste", s.Collect.Location.Site)

	require.NotNil(t, s.Collect.Location.Latitude)
	assert.InDelta(t, 39.47, *s.Collect.Location.Latitude, 0.001)
	require.NotNil(t, s.Collect.Location.CoordUncertainty)
	assert.InDelta(t, 50, *s.Collect.Location.CoordUncertainty, 0.001)

	require.NotNil(t, s.Growth.RecommendedTemp)
	assert.Equal(t, model.MinMax{Min: 20, Max: 30}, *s.Growth.RecommendedTemp)
	assert.Equal(t, []string{"AAA", "BBB"}, s.Growth.RecommendedMedia)
	assert.Equal(t, []string{"Agar", "Lyo"}, s.FormOfSupply)
	assert.Equal(t, []string{"UCL", "IHEM", "CBS"}, s.History)

	assert.Equal(t, "200405--", s.Collect.Date.Strfdate())

	require.NotNil(t, s.IsPotentiallyHarmful)
	assert.True(t, *s.IsPotentiallyHarmful)
	require.NotNil(t, s.Genetics.GMO)
	assert.False(t, *s.Genetics.GMO)
	require.NotNil(t, s.Genetics.Ploidy)
	assert.Equal(t, 2, *s.Genetics.Ploidy)

	require.Len(t, s.Publications, 1)
	assert.Equal(t, "Strain notes", s.Publications[0].Title)

	// markers attached from the genomic information sheet
	require.Len(t, s.Genetics.Markers, 2)
	assert.Equal(t, "ITS", s.Genetics.Markers[0].MarkerType)
	assert.Equal(t, "AB123456", s.Genetics.Markers[0].MarkerID)
	assert.Equal(t, "LSU", s.Genetics.Markers[1].MarkerType)
	assert.Equal(t, "OBT:000001", s.Collect.HabitatOntobiotope)
	assert.Equal(t, "type strain", s.Remarks)
}

func TestParseWorkbook_Media(t *testing.T) {
	wb := openFixture(t, nil)
	result, err := ParseWorkbook(wb, errlog.NewLog(), false)
	require.NoError(t, err)

	m := result.Media[0]
	assert.Equal(t, "AAA", m.Acronym)
	assert.Equal(t, "Nutrient agar", m.Description)
	require.NotNil(t, m.PH)
	assert.InDelta(t, 7.2, *m.PH, 0.001)
	assert.Equal(t, "121C, 15 min", m.SterilizationConditions)

	assert.Nil(t, result.Media[1].PH)
}

func TestParseWorkbook_PlaceholderSpeciesKeepsGenus(t *testing.T) {
	wb := openFixture(t, func(sheets map[string]*testutil.Sheet) {
		sheets[validation.SheetStrains].Rows[1][6] = "Aspergillus sp."
	})
	result, err := ParseWorkbook(wb, errlog.NewLog(), false)
	require.NoError(t, err)

	s := result.Strains[0]
	assert.Equal(t, "Aspergillus", s.Taxonomy.Genus)
	assert.Empty(t, s.Taxonomy.Species)
}

func TestParseWorkbook_HybridFormula(t *testing.T) {
	wb := openFixture(t, func(sheets map[string]*testutil.Sheet) {
		sheets[validation.SheetStrains].Rows[1][6] = "Saccharomyces cerevisiae; Saccharomyces uvarum"
	})
	result, err := ParseWorkbook(wb, errlog.NewLog(), false)
	require.NoError(t, err)

	s := result.Strains[0]
	assert.Equal(t, "Saccharomyces", s.Taxonomy.Genus)
	assert.Equal(t, "Saccharomyces cerevisiae; Saccharomyces uvarum", s.Taxonomy.LongName())
}

func TestParseWorkbook_DecodeErrorCollected(t *testing.T) {
	wb := openFixture(t, func(sheets map[string]*testutil.Sheet) {
		sheets[validation.SheetStrains].Rows[1][16] = "5" // ploidy not in set
	})
	log := errlog.NewLog()
	result, err := ParseWorkbook(wb, log, false)
	require.NoError(t, err)

	errs := log.Errors(errlog.TagStrains)
	require.Len(t, errs, 1)
	assert.Equal(t, "STD35", errs[0].Code)
	// the rest of the row still parsed
	assert.Equal(t, "type strain", result.Strains[0].Remarks)
}

func TestParseWorkbook_FailFast(t *testing.T) {
	wb := openFixture(t, func(sheets map[string]*testutil.Sheet) {
		sheets[validation.SheetStrains].Rows[1][16] = "5"
	})
	_, err := ParseWorkbook(wb, errlog.NewLog(), true)
	require.Error(t, err)
}

func TestParseWorkbook_UnknownMedium(t *testing.T) {
	wb := openFixture(t, func(sheets map[string]*testutil.Sheet) {
		sheets[validation.SheetStrains].Rows[1][10] = "ZZZ"
	})
	log := errlog.NewLog()
	_, err := ParseWorkbook(wb, log, false)
	require.NoError(t, err)

	errs := log.Errors(errlog.TagStrains)
	require.Len(t, errs, 1)
	assert.Equal(t, "STD42", errs[0].Code)
}

func TestParseFile_UnreadableFile(t *testing.T) {
	result, log, err := ParseFile(filepath.Join(t.TempDir(), "missing.xlsx"), false)
	require.NoError(t, err)
	assert.Nil(t, result)
	require.NotNil(t, log)

	errs := log.Errors(errlog.TagUncategorized)
	require.Len(t, errs, 1)
	assert.Equal(t, "EXL00", errs[0].Code)
}
