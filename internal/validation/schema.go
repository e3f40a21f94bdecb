package validation

import "github.com/mirri-tools/strainsync/internal/model"

// Sheet names fixed by the MIRRI 20200601 template.
const (
	SheetStrains         = "Strains"
	SheetGrowthMedia     = "Growth media"
	SheetGeographic      = "Geographic origin"
	SheetGenomic         = "Genomic information"
	SheetLiterature      = "Literature"
	SheetSexualState     = "Sexual state"
	SheetResourceTypes   = "Resource types values"
	SheetFormsOfSupply   = "Forms of supply"
	SheetPloidy          = "Ploidy"
	SheetOntobiotope     = "Ontobiotope"
	SheetMarkers         = "Markers"
)

// Strain sheet column labels, in template order. The parser walks this list.
const (
	FieldAccessionNumber     = "Accession number"
	FieldOtherNumbers        = "Other culture collection numbers"
	FieldRestrictionsOnUse   = "Restrictions on use"
	FieldNagoyaProtocol      = "Nagoya protocol restrictions and compliance conditions"
	FieldABSFiles            = "ABS related files"
	FieldMTAFile             = "MTA file"
	FieldOtherDenomination   = "Other denomination"
	FieldHistoryOfDeposit    = "History of deposit"
	FieldDepositor           = "Depositor"
	FieldDateOfDeposit       = "Date of deposit"
	FieldDateOfInclusion     = "Date of inclusion in the catalogue"
	FieldCollectedBy         = "Collected by"
	FieldDateOfCollection    = "Date of collection"
	FieldGeographicOrigin    = "Geographic origin"
	FieldCoordinates         = "Coordinates of geographic origin"
	FieldAltitude            = "Altitude of geographic origin"
	FieldIsolatedBy          = "Isolated by"
	FieldDateOfIsolation     = "Date of isolation"
	FieldSubstrateHost       = "Substrate/host of isolation"
	FieldIsolationHabitat    = "Isolation habitat"
	FieldOntobiotopeTerm     = "Ontobiotope term for the isolation habitat"
	FieldOrganismType        = "Organism type"
	FieldTaxonName           = "Taxon name"
	FieldInfrasubspecific    = "Infrasubspecific names"
	FieldCommentOnTaxonomy   = "Comment on taxonomy"
	FieldStatus              = "Status"
	FieldRiskGroup           = "Risk group"
	FieldDualUse             = "Dual use"
	FieldQuarantine          = "Quarantine in Europe"
	FieldInterspecificHybrid = "Interspecific hybrid"
	FieldRegisteredColl      = "Strain from a registered collection"
	FieldGMO                 = "GMO"
	FieldGMOConstruction     = "GMO construction information"
	FieldMutantInfo          = "Mutant information"
	FieldGenotype            = "Genotype"
	FieldSexualState         = "Sexual state"
	FieldPloidy              = "Ploidy"
	FieldPlasmids            = "Plasmids"
	FieldPlasmidsColl        = "Plasmids collections fields"
	FieldLiterature          = "Literature"
	FieldRecommendedTemp     = "Recommended growth temperature"
	FieldRecommendedMedia    = "Recommended medium for growth"
	FieldFormOfSupply        = "Form of supply"
	FieldTestedTempRange     = "Tested temperature growth range"
	FieldPathogenicity       = "Pathogenicity"
	FieldEnzymeProduction    = "Enzyme production"
	FieldMetabolites         = "Production of metabolites"
	FieldApplications        = "Applications"
	FieldRemarks             = "Remarks"
)

// Genomic information sheet column labels.
const (
	FieldStrainAN = "Strain AN"
	FieldMarker   = "Marker"
	FieldINSDCAN  = "INSDC AN"
	FieldSequence = "Sequence"
)

// Cross-reference index names.
const (
	RefGrowthMedia = "growth_media"
	RefGeographic  = "geographic_origin"
	RefStrains     = "strains"
	RefLiterature  = "literature"
	RefOntobiotope = "ontobiotope"
)

// yesNoCodes is the 1|2 workbook boolean convention (1 no, 2 yes).
var yesNoCodes = []string{"1", "2"}

// MIRRISchema returns the declarative validation schema for MIRRI spec
// version 20200601.
func MIRRISchema() *Schema {
	return &Schema{
		CrossRefs: []CrossRef{
			{Name: RefGrowthMedia, Sheet: SheetGrowthMedia, Columns: []string{"Acronym"}},
			{Name: RefGeographic, Sheet: SheetGeographic, Columns: []string{"ID"}, WholeRow: true, KeyColumn: "ID"},
			{Name: RefStrains, Sheet: SheetStrains, Columns: []string{FieldAccessionNumber}},
			{Name: RefLiterature, Sheet: SheetLiterature, Columns: []string{"ID"}},
			{Name: RefOntobiotope, Sheet: SheetOntobiotope, Columns: []string{"ID"}},
		},
		Sheets: []SheetSchema{
			growthMediaSchema(),
			geographicSchema(),
			literatureSchema(),
			ontobiotopeSchema(),
			strainsSchema(),
			genomicSchema(),
		},
	}
}

func growthMediaSchema() SheetSchema {
	return SheetSchema{
		Name:          SheetGrowthMedia,
		IDField:       "Acronym",
		Mandatory:     true,
		MissingCode:   "EFS02",
		IDMissingCode: "GMD02",
		Columns: []Column{
			{Field: "Acronym", Rules: []Rule{
				{Kind: KindMandatory, Code: "GMD01"},
				{Kind: KindUnique, Code: "GMD05"},
			}},
			{Field: "Description", Rules: []Rule{
				{Kind: KindMandatory, Code: "GMD03"},
				{Kind: KindMissing, Code: "GMD04"},
			}},
			{Field: "pH", Rules: []Rule{
				{Kind: KindNumber, Code: "GMD06", Min: fptr(0), Max: fptr(14)},
			}},
		},
	}
}

func geographicSchema() SheetSchema {
	return SheetSchema{
		Name:          SheetGeographic,
		IDField:       "ID",
		Mandatory:     true,
		MissingCode:   "EFS03",
		IDMissingCode: "GOD02",
		Columns: []Column{
			{Field: "ID", Rules: []Rule{
				{Kind: KindMandatory, Code: "GOD01"},
				{Kind: KindUnique, Code: "GOD06"},
			}},
			{Field: "Country", Rules: []Rule{
				{Kind: KindMandatory, Code: "GOD03"},
				{Kind: KindMissing, Code: "GOD04"},
				{Kind: KindChoices, Code: "GOD05", Choices: countryChoices()},
			}},
		},
	}
}

func literatureSchema() SheetSchema {
	return SheetSchema{
		Name:          SheetLiterature,
		IDField:       "ID",
		Mandatory:     true,
		MissingCode:   "EFS04",
		IDMissingCode: "LID02",
		Columns: []Column{
			{Field: "ID", Rules: []Rule{
				{Kind: KindMandatory, Code: "LID01"},
				{Kind: KindUnique, Code: "LID05"},
			}},
			{Field: "Year", Rules: []Rule{
				{Kind: KindNumber, Code: "LID04", Min: fptr(1700)},
			}},
		},
		RowRules: []RowRule{{Kind: RowBiblio, Code: "LID03"}},
	}
}

func ontobiotopeSchema() SheetSchema {
	return SheetSchema{
		Name:          SheetOntobiotope,
		IDField:       "ID",
		Mandatory:     true,
		MissingCode:   "EFS06",
		IDMissingCode: "OTD02",
		Columns: []Column{
			{Field: "ID", Rules: []Rule{
				{Kind: KindMandatory, Code: "OTD01"},
				{Kind: KindRegexp, Code: "OTD03", Pattern: `OBT:[0-9]{6}`},
				{Kind: KindUnique, Code: "OTD04"},
			}},
		},
	}
}

func genomicSchema() SheetSchema {
	return SheetSchema{
		Name:          SheetGenomic,
		IDField:       FieldStrainAN,
		Mandatory:     true,
		MissingCode:   "EFS05",
		IDMissingCode: "GID02",
		Columns: []Column{
			{Field: FieldStrainAN, Rules: []Rule{
				{Kind: KindMandatory, Code: "GID01"},
				{Kind: KindCrossRef, Code: "GID03", CrossRef: RefStrains},
			}},
			{Field: FieldMarker, Rules: []Rule{
				{Kind: KindChoices, Code: "GID04", Choices: model.MarkerTypes},
			}},
			{Field: FieldINSDCAN, Rules: []Rule{
				{Kind: KindRegexp, Code: "GID05", Pattern: `[A-Z]{1,6}[0-9]{5,8}(\.[0-9]+)?`},
			}},
		},
	}
}

func strainsSchema() SheetSchema {
	return SheetSchema{
		Name:          SheetStrains,
		IDField:       FieldAccessionNumber,
		Mandatory:     true,
		MissingCode:   "EFS01",
		IDMissingCode: "STD02",
		Columns: []Column{
			{Field: FieldAccessionNumber, Rules: []Rule{
				{Kind: KindMandatory, Code: "STD01"},
				{Kind: KindRegexp, Code: "STD03", Pattern: `[^ ]+ .+`},
				{Kind: KindUnique, Code: "STD04"},
			}},
			{Field: FieldOtherNumbers, Rules: []Rule{
				{Kind: KindRegexp, Code: "STD11", Pattern: `[^;]+`, Separator: ";"},
			}},
			{Field: FieldRestrictionsOnUse, Rules: []Rule{
				{Kind: KindMandatory, Code: "STD05"},
				{Kind: KindMissing, Code: "STD06"},
				{Kind: KindChoices, Code: "STD07", Choices: []string{"1", "2", "3"}},
			}},
			{Field: FieldNagoyaProtocol, Rules: []Rule{
				{Kind: KindMandatory, Code: "STD08"},
				{Kind: KindMissing, Code: "STD09"},
				{Kind: KindChoices, Code: "STD10", Choices: []string{"1", "2", "3"}},
			}},
			{Field: FieldRiskGroup, Rules: []Rule{
				{Kind: KindMandatory, Code: "STD12"},
				{Kind: KindMissing, Code: "STD13"},
				{Kind: KindChoices, Code: "STD14", Choices: []string{"1", "2", "3", "4"}},
			}},
			{Field: FieldRegisteredColl, Rules: []Rule{
				{Kind: KindChoices, Code: "STD15", Choices: yesNoCodes},
			}},
			{Field: FieldDualUse, Rules: []Rule{
				{Kind: KindChoices, Code: "STD16", Choices: yesNoCodes},
			}},
			{Field: FieldQuarantine, Rules: []Rule{
				{Kind: KindChoices, Code: "STD17", Choices: yesNoCodes},
			}},
			{Field: FieldOrganismType, Rules: []Rule{
				{Kind: KindMandatory, Code: "STD18"},
				{Kind: KindMissing, Code: "STD19"},
				{Kind: KindChoices, Code: "STD20", Choices: []string{"1", "2", "3", "4", "5", "6"}, Separator: ";"},
			}},
			{Field: FieldTaxonName, Rules: []Rule{
				{Kind: KindMandatory, Code: "STD21"},
				{Kind: KindMissing, Code: "STD22"},
				{Kind: KindTaxon, Code: "STD44", Separator: ";"},
			}},
			{Field: FieldInterspecificHybrid, Rules: []Rule{
				{Kind: KindChoices, Code: "STD23", Choices: yesNoCodes},
			}},
			{Field: FieldDateOfDeposit, Rules: []Rule{
				{Kind: KindDate, Code: "STD25"},
			}},
			{Field: FieldDateOfCollection, Rules: []Rule{
				{Kind: KindDate, Code: "STD26"},
			}},
			{Field: FieldDateOfIsolation, Rules: []Rule{
				{Kind: KindDate, Code: "STD27"},
			}},
			{Field: FieldDateOfInclusion, Rules: []Rule{
				{Kind: KindDate, Code: "STD28"},
			}},
			{Field: FieldGeographicOrigin, Rules: []Rule{
				{Kind: KindMandatory, Code: "STD29"},
				{Kind: KindMissing, Code: "STD30"},
				{Kind: KindCrossRef, Code: "STD31", CrossRef: RefGeographic},
			}},
			{Field: FieldCoordinates, Rules: []Rule{
				{Kind: KindCoordinates, Code: "STD32"},
			}},
			{Field: FieldAltitude, Rules: []Rule{
				{Kind: KindNumber, Code: "STD33"},
			}},
			{Field: FieldOntobiotopeTerm, Rules: []Rule{
				{Kind: KindCrossRef, Code: "STD49", CrossRef: RefOntobiotope},
			}},
			{Field: FieldGMO, Rules: []Rule{
				{Kind: KindChoices, Code: "STD34", Choices: yesNoCodes},
			}},
			{Field: FieldPloidy, Rules: []Rule{
				{Kind: KindChoices, Code: "STD35", Choices: []string{"0", "1", "2", "3", "4", "9"}},
			}},
			{Field: FieldLiterature, Rules: []Rule{
				{Kind: KindCrossRef, Code: "STD36", CrossRef: RefLiterature, Separator: ";"},
			}},
			{Field: FieldRecommendedTemp, Rules: []Rule{
				{Kind: KindMandatory, Code: "STD37"},
				{Kind: KindMissing, Code: "STD38"},
				{Kind: KindNumber, Code: "STD39", Separator: ";"},
			}},
			{Field: FieldRecommendedMedia, Rules: []Rule{
				{Kind: KindMandatory, Code: "STD40"},
				{Kind: KindMissing, Code: "STD41"},
				{Kind: KindCrossRef, Code: "STD42", CrossRef: RefGrowthMedia, Separator: ";/"},
			}},
			{Field: FieldFormOfSupply, Rules: []Rule{
				{Kind: KindMandatory, Code: "STD48"},
				{Kind: KindMissing, Code: "STD43"},
				{Kind: KindChoices, Code: "STD45", Choices: model.FormsOfSupply, Separator: ";"},
			}},
			{Field: FieldTestedTempRange, Rules: []Rule{
				{Kind: KindNumber, Code: "STD46", Separator: ";"},
			}},
		},
		RowRules: []RowRule{{Kind: RowNagoya, Code: "STD47"}},
	}
}

func countryChoices() []string {
	return model.AllCountryCodes()
}
