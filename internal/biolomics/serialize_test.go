package biolomics

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirri-tools/strainsync/internal/daterange"
	"github.com/mirri-tools/strainsync/internal/model"
	"github.com/mirri-tools/strainsync/internal/validation"
)

// mapResolver resolves names from a fixed table, standing in for the remote
// catalog in serializer tests.
type mapResolver struct {
	records map[Endpoint]map[string]*Record
}

func (r *mapResolver) ResolveName(_ context.Context, endpoint Endpoint, name string) (*Record, error) {
	if byName, ok := r.records[endpoint]; ok {
		if rec, ok := byName[name]; ok {
			return rec, nil
		}
	}
	return nil, nil
}

func (r *mapResolver) add(endpoint Endpoint, name string, recordID int) {
	if r.records == nil {
		r.records = make(map[Endpoint]map[string]*Record)
	}
	if r.records[endpoint] == nil {
		r.records[endpoint] = make(map[string]*Record)
	}
	r.records[endpoint][name] = &Record{RecordID: recordID, RecordName: name}
}

func sampleStrain(t *testing.T) *model.Strain {
	t.Helper()
	s := &model.Strain{ID: model.StrainID{Collection: "CECT", Number: "1"}}
	s.OtherNumbers = []model.StrainID{{Collection: "CBS", Number: "100.11"}}
	require.NoError(t, s.SetRestrictionOnUse("2"))
	require.NoError(t, s.SetNagoyaProtocol("1"))
	require.NoError(t, s.SetRiskGroup("2"))
	s.IsPotentiallyHarmful = model.Bool(true)
	s.Genetics.GMO = model.Bool(false)
	require.NoError(t, s.Genetics.SetPloidy(2))
	s.SetHistory("UCL > IHEM > CBS")
	s.Taxonomy.Genus = "Aspergillus"
	s.Taxonomy.Species = "niger"
	ot, err := model.NewOrganismType("4")
	require.NoError(t, err)
	s.Taxonomy.OrganismTypes = []model.OrganismType{ot}
	var derr error
	s.Collect.Date, derr = daterange.Strpdate("2004-05")
	require.NoError(t, derr)
	require.NoError(t, s.Collect.Location.SetCountry("ESP"))
	require.NoError(t, s.Collect.Location.SetCoordinates(39.47, -0.37))
	s.Collect.Location.State = "Valencia"
	s.Collect.Location.Site = "Huerta Oeste"
	s.Growth.RecommendedTemp = &model.MinMax{Min: 20, Max: 30}
	s.Growth.RecommendedMedia = []string{"AAA"}
	require.NoError(t, s.SetFormOfSupply([]string{"Agar", "Lyo"}))
	s.Remarks = "type strain"
	return s
}

func TestStrainToBiolomics_Plain(t *testing.T) {
	s := sampleStrain(t)
	rec, err := StrainToBiolomics(context.Background(), s, nil, false)
	require.NoError(t, err)

	assert.Equal(t, "MIRRI", rec.Acronym)
	assert.Equal(t, "CECT 1", rec.RecordName)
	assert.Zero(t, rec.RecordID)

	f, ok := rec.Field(validation.FieldAccessionNumber)
	require.True(t, ok)
	assert.Equal(t, "CECT 1", f.Text())
	assert.Equal(t, TypeText, f.FieldType)

	f, _ = rec.Field(validation.FieldRestrictionsOnUse)
	assert.Equal(t, "For research use only", f.Text())
	assert.Equal(t, TypeChoiceSingle, f.FieldType)

	f, _ = rec.Field(validation.FieldNagoyaProtocol)
	assert.Equal(t, "No known restrictions under the Nagoya protocol", f.Text())

	f, _ = rec.Field(validation.FieldDualUse)
	assert.Equal(t, "yes", f.Text())
	f, _ = rec.Field(validation.FieldGMO)
	assert.Equal(t, "No", f.Text())

	f, _ = rec.Field(validation.FieldDateOfCollection)
	assert.Equal(t, "2004-05-01", f.Text())
	assert.Equal(t, TypeDate, f.FieldType)

	f, _ = rec.Field(validation.FieldHistoryOfDeposit)
	assert.Equal(t, "UCL < IHEM < CBS", f.Text())

	f, _ = rec.Field(validation.FieldPloidy)
	assert.Equal(t, "Diploid", f.Text())

	f, _ = rec.Field(validation.FieldRecommendedTemp)
	min, max, ok := f.Span()
	require.True(t, ok)
	assert.Equal(t, 20.0, min)
	assert.Equal(t, 30.0, max)

	f, _ = rec.Field(validation.FieldCoordinates)
	coords, ok := f.Coordinates()
	require.True(t, ok)
	assert.InDelta(t, 39.47, coords.Latitude, 0.001)

	f, _ = rec.Field(validation.FieldOrganismType)
	items := f.Choices()
	require.Len(t, items, 6)
	byName := map[string]string{}
	for _, item := range items {
		byName[item.Name] = item.Value
	}
	assert.Equal(t, "yes", byName["fungi"])
	assert.Equal(t, "no", byName["yeast"])

	f, _ = rec.Field(validation.FieldFormOfSupply)
	items = f.Choices()
	require.Len(t, items, 7)

	f, _ = rec.Field(validation.FieldGeographicOrigin)
	assert.Equal(t, "Valencia; Huerta Oeste", f.Text())

	// without a resolver no reference fields are emitted
	_, ok = rec.Field(validation.FieldRecommendedMedia)
	assert.False(t, ok)
	_, ok = rec.Field(fieldCountry)
	assert.False(t, ok)

	// taxon degrades to plain text
	f, _ = rec.Field(validation.FieldTaxonName)
	assert.Equal(t, "Aspergillus niger", f.Text())
}

func TestStrainToBiolomics_References(t *testing.T) {
	s := sampleStrain(t)
	s.Collect.HabitatOntobiotope = "OBT:000001"
	s.Publications = []model.Publication{{Title: "Strain notes"}}
	s.Genetics.Markers = []model.GenomicSequence{{MarkerType: "ITS", MarkerID: "AB123456"}}

	r := &mapResolver{}
	r.add(EndpointGrowthMedium, "AAA", 11)
	r.add(EndpointTaxonomy, "Aspergillus niger", 22)
	r.add(EndpointCountry, "Spain", 33)
	r.add(EndpointOntobiotope, "OBT:000001", 44)
	r.add(EndpointBibliography, "Strain notes", 55)
	r.add(EndpointSequence, "AB123456", 66)

	rec, err := StrainToBiolomics(context.Background(), s, r, false)
	require.NoError(t, err)

	f, ok := rec.Field(validation.FieldRecommendedMedia)
	require.True(t, ok)
	assert.Equal(t, TypeRLink, f.FieldType)
	links := f.Links()
	require.Len(t, links, 1)
	assert.Equal(t, "AAA", links[0].Name.Text())
	assert.Equal(t, 11, links[0].RecordID)

	f, _ = rec.Field(validation.FieldTaxonName)
	assert.Equal(t, TypeSynLink, f.FieldType)
	links = f.Links()
	require.Len(t, links, 1)
	assert.Equal(t, 22, links[0].RecordID)

	f, _ = rec.Field(fieldCountry)
	links = f.Links()
	require.Len(t, links, 1)
	assert.Equal(t, "Spain", links[0].Name.Text())

	f, _ = rec.Field(validation.FieldOntobiotopeTerm)
	require.Len(t, f.Links(), 1)

	f, _ = rec.Field(validation.FieldLiterature)
	require.Len(t, f.Links(), 1)
	assert.Equal(t, 55, f.Links()[0].RecordID)

	f, ok = rec.Field("ITS sequence")
	require.True(t, ok)
	assert.Equal(t, TypeNLink, f.FieldType)
	assert.Equal(t, "AB123456", f.Links()[0].Name.Text())
}

func TestStrainToBiolomics_MissingMediumFails(t *testing.T) {
	s := sampleStrain(t)
	r := &mapResolver{}
	r.add(EndpointCountry, "Spain", 33)
	r.add(EndpointTaxonomy, "Aspergillus niger", 22)

	_, err := StrainToBiolomics(context.Background(), s, r, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AAA")
}

func TestStrainToBiolomics_UnknownTaxonSkipped(t *testing.T) {
	s := sampleStrain(t)
	s.Growth.RecommendedMedia = nil
	r := &mapResolver{}
	r.add(EndpointCountry, "Spain", 33)

	rec, err := StrainToBiolomics(context.Background(), s, r, false)
	require.NoError(t, err)
	_, ok := rec.Field(validation.FieldTaxonName)
	assert.False(t, ok, "unresolvable taxon parts are skipped, not failed")
}

func TestStrainToBiolomics_Update(t *testing.T) {
	s := sampleStrain(t)
	s.RecordID = 99
	s.RecordName = "MIRRI CECT 1"

	rec, err := StrainToBiolomics(context.Background(), s, nil, true)
	require.NoError(t, err)
	assert.Equal(t, 99, rec.RecordID)
	assert.Equal(t, "MIRRI CECT 1", rec.RecordName)
	assert.Empty(t, rec.Acronym)
}

func TestStrainRoundTrip(t *testing.T) {
	s := sampleStrain(t)
	s.Collect.HabitatOntobiotope = "OBT:000001"
	s.Genetics.Markers = []model.GenomicSequence{{MarkerType: "ITS", MarkerID: "AB123456"}}

	r := &mapResolver{}
	r.add(EndpointGrowthMedium, "AAA", 11)
	r.add(EndpointTaxonomy, "Aspergillus niger", 22)
	r.add(EndpointCountry, "Spain", 33)
	r.add(EndpointOntobiotope, "OBT:000001", 44)
	r.add(EndpointSequence, "AB123456", 66)

	rec, err := StrainToBiolomics(context.Background(), s, r, false)
	require.NoError(t, err)

	back, err := StrainFromBiolomics(rec)
	require.NoError(t, err)

	assert.Equal(t, s.ID, back.ID)
	assert.Equal(t, s.OtherNumbers, back.OtherNumbers)
	assert.Equal(t, s.RestrictionOnUse, back.RestrictionOnUse)
	assert.Equal(t, s.NagoyaProtocol, back.NagoyaProtocol)
	assert.Equal(t, s.RiskGroup, back.RiskGroup)
	assert.Equal(t, s.IsPotentiallyHarmful, back.IsPotentiallyHarmful)
	assert.Equal(t, s.Genetics.GMO, back.Genetics.GMO)
	assert.Equal(t, s.Genetics.Ploidy, back.Genetics.Ploidy)
	assert.Equal(t, s.History, back.History)
	assert.Equal(t, "2004-05-01", back.Collect.Date.ISOFormat())
	assert.Equal(t, "ESP", back.Collect.Location.CountryCode)
	assert.Equal(t, s.Growth.RecommendedTemp, back.Growth.RecommendedTemp)
	assert.Equal(t, s.Growth.RecommendedMedia, back.Growth.RecommendedMedia)
	assert.ElementsMatch(t, s.FormOfSupply, back.FormOfSupply)
	assert.Equal(t, "Aspergillus", back.Taxonomy.Genus)
	assert.Equal(t, "niger", back.Taxonomy.Species)
	assert.Equal(t, "OBT:000001", back.Collect.HabitatOntobiotope)
	require.Len(t, back.Genetics.Markers, 1)
	assert.Equal(t, "ITS", back.Genetics.Markers[0].MarkerType)
	assert.Equal(t, "AB123456", back.Genetics.Markers[0].MarkerID)
	assert.Equal(t, s.Remarks, back.Remarks)
}

func TestStrainRoundTrip_ThroughJSON(t *testing.T) {
	s := sampleStrain(t)
	r := &mapResolver{}
	r.add(EndpointGrowthMedium, "AAA", 11)
	r.add(EndpointTaxonomy, "Aspergillus niger", 22)
	r.add(EndpointCountry, "Spain", 33)

	rec, err := StrainToBiolomics(context.Background(), s, r, false)
	require.NoError(t, err)

	// through the wire: marshal and decode into the generic value shapes
	raw, err := json.Marshal(rec)
	require.NoError(t, err)
	var decoded Record
	require.NoError(t, json.Unmarshal(raw, &decoded))

	back, err := StrainFromBiolomics(&decoded)
	require.NoError(t, err)
	assert.Equal(t, s.ID, back.ID)
	assert.Equal(t, s.Growth.RecommendedMedia, back.Growth.RecommendedMedia)
	assert.Equal(t, "ESP", back.Collect.Location.CountryCode)
	require.NotNil(t, back.Collect.Location.Latitude)
	assert.InDelta(t, 39.47, *back.Collect.Location.Latitude, 0.001)
	assert.Equal(t, s.RestrictionOnUse, back.RestrictionOnUse)
}

func TestStrainFromBiolomics_SkipsEmptyFields(t *testing.T) {
	rec := &Record{RecordID: 5, RecordName: "CECT 1"}
	rec.setField(validation.FieldAccessionNumber, TextField("CECT 1"))
	rec.setField(validation.FieldRemarks, Field{Value: "stale", FieldType: TypeText, IsEmpty: true})

	s, err := StrainFromBiolomics(rec)
	require.NoError(t, err)
	assert.Equal(t, 5, s.RecordID)
	assert.Empty(t, s.Remarks)
}

func TestMediumRoundTrip(t *testing.T) {
	ph := 7.2
	m := &model.GrowthMedium{
		Acronym:                 "AAA",
		Description:             "Nutrient agar",
		FullDescription:         "Nutrient agar, full recipe",
		PH:                      &ph,
		SterilizationConditions: "121C, 15 min",
	}
	rec, err := MediumToBiolomics(m, false)
	require.NoError(t, err)
	assert.Equal(t, "AAA", rec.RecordName)
	assert.Equal(t, "MIRRI", rec.Acronym)

	back, err := MediumFromBiolomics(rec)
	require.NoError(t, err)
	assert.Equal(t, m.Acronym, back.Acronym)
	assert.Equal(t, m.Description, back.Description)
	require.NotNil(t, back.PH)
	assert.InDelta(t, 7.2, *back.PH, 0.001)
	assert.Equal(t, m.SterilizationConditions, back.SterilizationConditions)
}

func TestPublicationRoundTrip(t *testing.T) {
	year := 2001
	pub := &model.Publication{
		Title:     "Strain notes",
		Authors:   "Doe J.",
		Journal:   "J Microbiol",
		Year:      &year,
		Volume:    "12",
		FirstPage: "1",
	}
	rec, err := PublicationToBiolomics(pub, false)
	require.NoError(t, err)
	assert.Equal(t, "Strain notes", rec.RecordName)

	back, err := PublicationFromBiolomics(rec)
	require.NoError(t, err)
	assert.Equal(t, pub.Title, back.Title)
	assert.Equal(t, pub.Authors, back.Authors)
	require.NotNil(t, back.Year)
	assert.Equal(t, 2001, *back.Year)
}

func TestSequenceRoundTrip(t *testing.T) {
	seq := &model.GenomicSequence{MarkerType: "ITS", MarkerID: "AB123456", MarkerSeq: "ACGT"}
	rec, err := SequenceToBiolomics(seq, false)
	require.NoError(t, err)
	assert.Equal(t, "AB123456", rec.RecordName)

	back, err := SequenceFromBiolomics(rec)
	require.NoError(t, err)
	assert.Equal(t, seq.MarkerType, back.MarkerType)
	assert.Equal(t, seq.MarkerID, back.MarkerID)
	assert.Equal(t, seq.MarkerSeq, back.MarkerSeq)
}
