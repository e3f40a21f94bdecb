package biolomics

import (
	"context"
	"strings"

	"github.com/mirri-tools/strainsync/internal/daterange"
	"github.com/mirri-tools/strainsync/internal/errors"
	"github.com/mirri-tools/strainsync/internal/model"
	"github.com/mirri-tools/strainsync/internal/validation"
)

// Resolver is the narrow capability serializers need to turn reference
// fields into catalog links. A nil Resolver degrades reference fields to
// text-only emission.
type Resolver interface {
	ResolveName(ctx context.Context, endpoint Endpoint, name string) (*Record, error)
}

// Catalog field labels that exist only on the remote side.
const (
	fieldCountry  = "Country"
	fieldSynonyms = "Synonyms"
)

// createAcronym tags newly created records with their origin collection
// network.
const createAcronym = "MIRRI"

// StrainToBiolomics converts a strain into its record envelope. Null
// attributes are skipped. With update set, the envelope carries the remote
// identity; otherwise it is a create payload tagged with the MIRRI acronym.
// Reference fields (media, taxon, country, ontobiotope, literature, markers)
// are resolved through r; without a resolver they are left out.
func StrainToBiolomics(ctx context.Context, s *model.Strain, r Resolver, update bool) (*Record, error) {
	rec := &Record{RecordName: s.ID.String()}
	if update {
		rec.RecordID = s.RecordID
		if s.RecordName != "" {
			rec.RecordName = s.RecordName
		}
	} else {
		rec.Acronym = createAcronym
	}

	setText(rec, validation.FieldAccessionNumber, s.ID.String())
	setText(rec, validation.FieldOtherNumbers, joinIDs(s.OtherNumbers))
	if s.RestrictionOnUse != "" {
		rec.setField(validation.FieldRestrictionsOnUse, ChoiceField(s.RestrictionOnUse.Phrase()))
	}
	if s.NagoyaProtocol != "" {
		rec.setField(validation.FieldNagoyaProtocol, ChoiceField(s.NagoyaProtocol.Phrase()))
	}
	if len(s.ABSRelatedFiles) > 0 {
		rec.setField(validation.FieldABSFiles, URLField(s.ABSRelatedFiles))
	}
	if len(s.MTAFiles) > 0 {
		rec.setField(validation.FieldMTAFile, URLField(s.MTAFiles))
	}
	setText(rec, validation.FieldOtherDenomination, strings.Join(s.OtherDenominations, "; "))
	setText(rec, validation.FieldHistoryOfDeposit, strings.Join(s.History, " < "))
	setText(rec, validation.FieldDepositor, s.Deposit.Who)
	setDate(rec, validation.FieldDateOfDeposit, s.Deposit.Date)
	setDate(rec, validation.FieldDateOfInclusion, s.CatalogInclusionDate)
	setText(rec, validation.FieldCollectedBy, s.Collect.Who)
	setDate(rec, validation.FieldDateOfCollection, s.Collect.Date)
	setText(rec, validation.FieldIsolatedBy, s.Isolation.Who)
	setDate(rec, validation.FieldDateOfIsolation, s.Isolation.Date)
	setText(rec, validation.FieldSubstrateHost, s.Isolation.SubstrateHostOfIsolation)
	setText(rec, validation.FieldIsolationHabitat, s.Collect.Habitat)

	if err := emitGeographicOrigin(ctx, rec, &s.Collect.Location, r); err != nil {
		return nil, err
	}
	if s.Collect.Location.Latitude != nil && s.Collect.Location.Longitude != nil {
		rec.setField(validation.FieldCoordinates, CoordinatesField(
			*s.Collect.Location.Latitude, *s.Collect.Location.Longitude,
			s.Collect.Location.CoordUncertainty))
	}
	if s.Collect.Location.Altitude != nil {
		rec.setField(validation.FieldAltitude, NumberField(*s.Collect.Location.Altitude))
	}
	if err := emitOntobiotope(ctx, rec, s.Collect.HabitatOntobiotope, r); err != nil {
		return nil, err
	}

	if len(s.Taxonomy.OrganismTypes) > 0 {
		rec.setField(validation.FieldOrganismType, MultiChoiceField(organismChoices(s.Taxonomy.OrganismTypes)))
	}
	if err := emitTaxonName(ctx, rec, &s.Taxonomy, r); err != nil {
		return nil, err
	}
	setText(rec, validation.FieldInfrasubspecific, s.Taxonomy.InfrasubspecificName)
	setText(rec, validation.FieldCommentOnTaxonomy, s.Taxonomy.Comments)
	setText(rec, validation.FieldStatus, s.Status)
	if s.RiskGroup != "" {
		rec.setField(validation.FieldRiskGroup, ChoiceField(s.RiskGroup))
	}
	setBool(rec, validation.FieldDualUse, s.IsPotentiallyHarmful, "yes", "no")
	setBool(rec, validation.FieldQuarantine, s.IsSubjectToQuarantine, "yes", "no")
	setBool(rec, validation.FieldInterspecificHybrid, s.Taxonomy.InterspecificHybrid, "yes", "no")
	setBool(rec, validation.FieldRegisteredColl, s.IsFromRegisteredCollection, "yes", "no")
	setBool(rec, validation.FieldGMO, s.Genetics.GMO, "Yes", "No")
	setText(rec, validation.FieldGMOConstruction, s.Genetics.GMOConstruction)
	setText(rec, validation.FieldMutantInfo, s.Genetics.MutantInfo)
	setText(rec, validation.FieldGenotype, s.Genetics.Genotype)
	setText(rec, validation.FieldSexualState, s.Genetics.SexualState)
	if s.Genetics.Ploidy != nil {
		rec.setField(validation.FieldPloidy, ChoiceField(model.PloidyWord(*s.Genetics.Ploidy)))
	}
	setText(rec, validation.FieldPlasmids, strings.Join(s.Genetics.Plasmids, "; "))
	setText(rec, validation.FieldPlasmidsColl, strings.Join(s.Genetics.PlasmidsInCollections, "; "))

	if err := emitLiterature(ctx, rec, s.Publications, r); err != nil {
		return nil, err
	}
	if s.Growth.RecommendedTemp != nil {
		rec.setField(validation.FieldRecommendedTemp, SpanField(s.Growth.RecommendedTemp.Min, s.Growth.RecommendedTemp.Max))
	}
	if s.Growth.TestedTempRange != nil {
		rec.setField(validation.FieldTestedTempRange, SpanField(s.Growth.TestedTempRange.Min, s.Growth.TestedTempRange.Max))
	}
	if err := emitRecommendedMedia(ctx, rec, s.Growth.RecommendedMedia, r); err != nil {
		return nil, err
	}
	if len(s.FormOfSupply) > 0 {
		rec.setField(validation.FieldFormOfSupply, MultiChoiceField(supplyChoices(s.FormOfSupply)))
	}
	if err := emitMarkers(ctx, rec, s.Genetics.Markers, r); err != nil {
		return nil, err
	}

	setText(rec, validation.FieldPathogenicity, s.Pathogenicity)
	setText(rec, validation.FieldEnzymeProduction, s.EnzymeProduction)
	setText(rec, validation.FieldMetabolites, s.ProductionOfMetabolites)
	setText(rec, validation.FieldApplications, s.Applications)
	setText(rec, validation.FieldRemarks, s.Remarks)
	return rec, nil
}

func setText(rec *Record, label, value string) {
	if value != "" {
		rec.setField(label, TextField(value))
	}
}

func setDate(rec *Record, label string, d daterange.DateRange) {
	if !d.IsZero() {
		rec.setField(label, DateField(d.ISOFormat()))
	}
}

func setBool(rec *Record, label string, b *bool, yes, no string) {
	if b != nil {
		rec.setField(label, BoolField(*b, yes, no))
	}
}

func joinIDs(ids []model.StrainID) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, id.String())
	}
	return strings.Join(parts, "; ")
}

func organismChoices(types []model.OrganismType) []ChoiceItem {
	member := make(map[string]bool, len(types))
	for _, t := range types {
		member[t.Name] = true
	}
	items := make([]ChoiceItem, 0, 6)
	for _, t := range model.OrganismTypes() {
		value := "no"
		if member[t.Name] {
			value = "yes"
		}
		items = append(items, ChoiceItem{Name: t.Name, Value: value})
	}
	return items
}

func supplyChoices(forms []string) []ChoiceItem {
	member := make(map[string]bool, len(forms))
	for _, f := range forms {
		member[f] = true
	}
	items := make([]ChoiceItem, 0, len(model.FormsOfSupply))
	for _, f := range model.FormsOfSupply {
		value := "no"
		if member[f] {
			value = "yes"
		}
		items = append(items, ChoiceItem{Name: f, Value: value})
	}
	return items
}

// emitRecommendedMedia resolves each acronym against the growth medium
// endpoint. A medium the catalog does not know fails the serialization,
// since the strain link would dangle.
func emitRecommendedMedia(ctx context.Context, rec *Record, acronyms []string, r Resolver) error {
	if r == nil || len(acronyms) == 0 {
		return nil
	}
	links := make([]Link, 0, len(acronyms))
	for _, acronym := range acronyms {
		remote, err := r.ResolveName(ctx, EndpointGrowthMedium, acronym)
		if err != nil {
			return err
		}
		if remote == nil {
			return errors.Newf("growth medium %q not found in catalog", acronym).
				Category(errors.CategoryNotFound).Component("biolomics").
				Context("acronym", acronym).Build()
		}
		links = append(links, Link{Name: TextField(acronym), RecordID: remote.RecordID})
	}
	rec.setField(validation.FieldRecommendedMedia, LinkField(TypeRLink, links))
	return nil
}

// emitTaxonName resolves each part of the taxon formula against the taxonomy
// endpoint. Parts the catalog does not carry are skipped with a warning.
func emitTaxonName(ctx context.Context, rec *Record, tax *model.Taxonomy, r Resolver) error {
	longName := tax.LongName()
	if longName == "" {
		return nil
	}
	if r == nil {
		setText(rec, validation.FieldTaxonName, longName)
		return nil
	}
	var links []Link
	for _, part := range strings.Split(longName, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		remote, err := r.ResolveName(ctx, EndpointTaxonomy, part)
		if err != nil {
			return err
		}
		if remote == nil {
			logger.Warn("taxon not found in catalog, skipping", "taxon", part)
			continue
		}
		links = append(links, Link{Name: TextField(part), RecordID: remote.RecordID})
	}
	if len(links) > 0 {
		rec.setField(validation.FieldTaxonName, LinkField(TypeSynLink, links))
	}
	return nil
}

// emitGeographicOrigin emits the country as a reference link and collapses
// the sub-country parts into the free-text origin field.
func emitGeographicOrigin(ctx context.Context, rec *Record, loc *model.Location, r Resolver) error {
	var parts []string
	for _, p := range []string{loc.State, loc.Municipality, loc.Site} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	setText(rec, validation.FieldGeographicOrigin, strings.Join(parts, "; "))

	if r == nil || loc.CountryCode == "" {
		return nil
	}
	var link *Link
	for _, name := range model.CountryNames(loc.CountryCode) {
		remote, err := r.ResolveName(ctx, EndpointCountry, name)
		if err != nil {
			return err
		}
		if remote != nil {
			link = &Link{Name: TextField(name), RecordID: remote.RecordID}
			break
		}
	}
	if link == nil {
		return errors.Newf("country %q not found in catalog", loc.CountryCode).
			Category(errors.CategoryNotFound).Component("biolomics").
			Context("country", loc.CountryCode).Build()
	}
	rec.setField(fieldCountry, LinkField(TypeRLink, []Link{*link}))
	return nil
}

func emitOntobiotope(ctx context.Context, rec *Record, term string, r Resolver) error {
	if r == nil || term == "" {
		return nil
	}
	remote, err := r.ResolveName(ctx, EndpointOntobiotope, term)
	if err != nil {
		return err
	}
	if remote == nil {
		return errors.Newf("ontobiotope term %q not found in catalog", term).
			Category(errors.CategoryNotFound).Component("biolomics").
			Context("term", term).Build()
	}
	rec.setField(validation.FieldOntobiotopeTerm, LinkField(TypeRLink,
		[]Link{{Name: TextField(term), RecordID: remote.RecordID}}))
	return nil
}

func emitLiterature(ctx context.Context, rec *Record, pubs []model.Publication, r Resolver) error {
	if r == nil || len(pubs) == 0 {
		return nil
	}
	links := make([]Link, 0, len(pubs))
	for i := range pubs {
		pub := &pubs[i]
		remote, err := r.ResolveName(ctx, EndpointBibliography, pub.Title)
		if err != nil {
			return err
		}
		if remote == nil {
			return errors.Newf("publication %q not found in catalog", pub.Title).
				Category(errors.CategoryNotFound).Component("biolomics").
				Context("title", pub.Title).Build()
		}
		links = append(links, Link{Name: TextField(pub.Title), RecordID: remote.RecordID})
	}
	rec.setField(validation.FieldLiterature, LinkField(TypeRLink, links))
	return nil
}

// emitMarkers looks up each sequence by its INSDC accession and emits the
// link under the marker-type-specific catalog field.
func emitMarkers(ctx context.Context, rec *Record, markers []model.GenomicSequence, r Resolver) error {
	if r == nil || len(markers) == 0 {
		return nil
	}
	byField := make(map[string][]Link)
	for i := range markers {
		m := &markers[i]
		field, err := model.MarkerField(m.MarkerType)
		if err != nil {
			return err
		}
		remote, err := r.ResolveName(ctx, EndpointSequence, m.MarkerID)
		if err != nil {
			return err
		}
		if remote == nil {
			return errors.Newf("sequence %q not found in catalog", m.MarkerID).
				Category(errors.CategoryNotFound).Component("biolomics").
				Context("marker_id", m.MarkerID).Build()
		}
		byField[field] = append(byField[field], Link{Name: TextField(m.MarkerID), RecordID: remote.RecordID})
	}
	for field, links := range byField {
		rec.setField(field, LinkField(TypeNLink, links))
	}
	return nil
}

// StrainFromBiolomics is the inverse conversion. Fields flagged IsEmpty are
// skipped; reference fields come back as their identifying names.
func StrainFromBiolomics(rec *Record) (*model.Strain, error) {
	s := &model.Strain{RecordID: rec.RecordID, RecordName: rec.RecordName}
	for label, f := range rec.RecordDetails {
		if f.IsEmpty {
			continue
		}
		if err := decodeStrainField(s, label, f); err != nil {
			return nil, errors.Newf("field %q: %w", label, err).
				Category(errors.CategoryParsing).Component("biolomics").
				Context("record_name", rec.RecordName).Build()
		}
	}
	return s, nil
}

func decodeStrainField(s *model.Strain, label string, f Field) error {
	switch label {
	case validation.FieldAccessionNumber:
		s.ID = model.ParseStrainID(f.Text())
	case validation.FieldOtherNumbers:
		for _, piece := range splitJoined(f.Text()) {
			s.OtherNumbers = append(s.OtherNumbers, model.ParseStrainID(piece))
		}
	case validation.FieldRestrictionsOnUse:
		return s.SetRestrictionOnUse(f.Text())
	case validation.FieldNagoyaProtocol:
		return s.SetNagoyaProtocol(f.Text())
	case validation.FieldABSFiles:
		s.ABSRelatedFiles = f.URLs()
	case validation.FieldMTAFile:
		s.MTAFiles = f.URLs()
	case validation.FieldOtherDenomination:
		s.OtherDenominations = splitJoined(f.Text())
	case validation.FieldHistoryOfDeposit:
		s.History = splitOn(f.Text(), "<")
	case validation.FieldDepositor:
		s.Deposit.Who = f.Text()
	case validation.FieldDateOfDeposit:
		return decodeDate(&s.Deposit.Date, f)
	case validation.FieldDateOfInclusion:
		return decodeDate(&s.CatalogInclusionDate, f)
	case validation.FieldCollectedBy:
		s.Collect.Who = f.Text()
	case validation.FieldDateOfCollection:
		return decodeDate(&s.Collect.Date, f)
	case validation.FieldIsolatedBy:
		s.Isolation.Who = f.Text()
	case validation.FieldDateOfIsolation:
		return decodeDate(&s.Isolation.Date, f)
	case validation.FieldSubstrateHost:
		s.Isolation.SubstrateHostOfIsolation = f.Text()
	case validation.FieldIsolationHabitat:
		s.Collect.Habitat = f.Text()
	case fieldCountry:
		return decodeCountry(&s.Collect.Location, f)
	case validation.FieldGeographicOrigin:
		decodeOriginText(&s.Collect.Location, f.Text())
	case validation.FieldCoordinates:
		if c, ok := f.Coordinates(); ok {
			if err := s.Collect.Location.SetCoordinates(c.Latitude, c.Longitude); err != nil {
				return err
			}
			s.Collect.Location.CoordUncertainty = c.Precision
		}
	case validation.FieldAltitude:
		if v, ok := f.Number(); ok {
			s.Collect.Location.Altitude = &v
		}
	case validation.FieldOntobiotopeTerm:
		if links := f.Links(); len(links) > 0 {
			s.Collect.HabitatOntobiotope = links[0].Name.Text()
		} else {
			s.Collect.HabitatOntobiotope = f.Text()
		}
	case validation.FieldOrganismType:
		for _, item := range f.Choices() {
			if item.Value != "yes" {
				continue
			}
			t, err := model.NewOrganismType(item.Name)
			if err != nil {
				return err
			}
			s.Taxonomy.OrganismTypes = append(s.Taxonomy.OrganismTypes, t)
		}
	case validation.FieldTaxonName:
		return decodeTaxonLinks(&s.Taxonomy, f)
	case validation.FieldInfrasubspecific:
		s.Taxonomy.InfrasubspecificName = f.Text()
	case validation.FieldCommentOnTaxonomy:
		s.Taxonomy.Comments = f.Text()
	case validation.FieldStatus:
		s.Status = f.Text()
	case validation.FieldRiskGroup:
		return s.SetRiskGroup(f.Text())
	case validation.FieldDualUse:
		s.IsPotentiallyHarmful = yesNoValue(f.Text())
	case validation.FieldQuarantine:
		s.IsSubjectToQuarantine = yesNoValue(f.Text())
	case validation.FieldInterspecificHybrid:
		s.Taxonomy.InterspecificHybrid = yesNoValue(f.Text())
	case validation.FieldRegisteredColl:
		s.IsFromRegisteredCollection = yesNoValue(f.Text())
	case validation.FieldGMO:
		s.Genetics.GMO = yesNoValue(f.Text())
	case validation.FieldGMOConstruction:
		s.Genetics.GMOConstruction = f.Text()
	case validation.FieldMutantInfo:
		s.Genetics.MutantInfo = f.Text()
	case validation.FieldGenotype:
		s.Genetics.Genotype = f.Text()
	case validation.FieldSexualState:
		s.Genetics.SexualState = f.Text()
	case validation.FieldPloidy:
		if code, ok := model.PloidyCode(f.Text()); ok {
			s.Genetics.Ploidy = &code
		}
	case validation.FieldPlasmids:
		s.Genetics.Plasmids = splitJoined(f.Text())
	case validation.FieldPlasmidsColl:
		s.Genetics.PlasmidsInCollections = splitJoined(f.Text())
	case validation.FieldLiterature:
		for _, link := range f.Links() {
			s.Publications = append(s.Publications, model.Publication{
				Title:      link.Name.Text(),
				RecordID:   link.RecordID,
				RecordName: link.Name.Text(),
			})
		}
	case validation.FieldRecommendedTemp:
		if min, max, ok := f.Span(); ok {
			s.Growth.RecommendedTemp = &model.MinMax{Min: min, Max: max}
		}
	case validation.FieldTestedTempRange:
		if min, max, ok := f.Span(); ok {
			s.Growth.TestedTempRange = &model.MinMax{Min: min, Max: max}
		}
	case validation.FieldRecommendedMedia:
		for _, link := range f.Links() {
			s.Growth.RecommendedMedia = append(s.Growth.RecommendedMedia, link.Name.Text())
		}
	case validation.FieldFormOfSupply:
		var forms []string
		for _, item := range f.Choices() {
			if item.Value == "yes" {
				forms = append(forms, item.Name)
			}
		}
		return s.SetFormOfSupply(forms)
	case fieldSynonyms:
		for _, link := range f.Links() {
			s.Synonyms = append(s.Synonyms, link.Name.Text())
		}
	case validation.FieldPathogenicity:
		s.Pathogenicity = f.Text()
	case validation.FieldEnzymeProduction:
		s.EnzymeProduction = f.Text()
	case validation.FieldMetabolites:
		s.ProductionOfMetabolites = f.Text()
	case validation.FieldApplications:
		s.Applications = f.Text()
	case validation.FieldRemarks:
		s.Remarks = f.Text()
	default:
		if acronym, ok := model.MarkerTypeForField(label); ok {
			for _, link := range f.Links() {
				s.Genetics.Markers = append(s.Genetics.Markers, model.GenomicSequence{
					MarkerType: acronym,
					MarkerID:   link.Name.Text(),
					RecordID:   link.RecordID,
					RecordName: link.Name.Text(),
				})
			}
		}
		// unknown labels are ignored; the catalog carries fields the
		// workbook standard does not cover
	}
	return nil
}

func decodeDate(dst *daterange.DateRange, f Field) error {
	text := f.Text()
	if text == "" {
		return nil
	}
	d, err := daterange.Strpdate(text)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}

func decodeCountry(loc *model.Location, f Field) error {
	name := f.Text()
	if links := f.Links(); len(links) > 0 {
		name = links[0].Name.Text()
	}
	if name == "" {
		return nil
	}
	code, ok := model.CountryCodeFromName(name)
	if !ok {
		return errors.Newf("country %q: not a known country name", name).
			Category(errors.CategoryParsing).Component("biolomics").Build()
	}
	return loc.SetCountry(code)
}

// decodeOriginText reverses the state/municipality/site collapse. The join
// is lossy: absent middle parts shift the remainder leftward.
func decodeOriginText(loc *model.Location, text string) {
	parts := splitJoined(text)
	if len(parts) > 0 {
		loc.State = parts[0]
	}
	if len(parts) > 1 {
		loc.Municipality = parts[1]
	}
	if len(parts) > 2 {
		loc.Site = strings.Join(parts[2:], "; ")
	}
}

func decodeTaxonLinks(tax *model.Taxonomy, f Field) error {
	var names []string
	if links := f.Links(); len(links) > 0 {
		for _, link := range links {
			names = append(names, link.Name.Text())
		}
	} else if text := f.Text(); text != "" {
		for _, piece := range strings.Split(text, ";") {
			if piece = strings.TrimSpace(piece); piece != "" {
				names = append(names, piece)
			}
		}
	}
	if len(names) == 0 {
		return nil
	}
	parsed, err := model.ParseTaxon(names[0])
	if err != nil && !errors.Is(err, model.ErrPlaceholderSpecies) {
		return err
	}
	organismTypes := tax.OrganismTypes
	hybrid := tax.InterspecificHybrid
	infra := tax.InfrasubspecificName
	comments := tax.Comments
	*tax = *parsed
	tax.OrganismTypes = organismTypes
	tax.InterspecificHybrid = hybrid
	tax.InfrasubspecificName = infra
	tax.Comments = comments
	if len(names) > 1 {
		tax.HybridFormula = strings.Join(names, "; ")
	}
	return nil
}

func yesNoValue(text string) *bool {
	switch strings.ToLower(text) {
	case "yes":
		return model.Bool(true)
	case "no":
		return model.Bool(false)
	}
	return nil
}

// splitJoined splits a "; "-joined list back into its trimmed pieces.
func splitJoined(text string) []string {
	return splitOn(text, ";")
}

func splitOn(text, sep string) []string {
	if text == "" {
		return nil
	}
	var pieces []string
	for _, piece := range strings.Split(text, sep) {
		if piece = strings.TrimSpace(piece); piece != "" {
			pieces = append(pieces, piece)
		}
	}
	return pieces
}
