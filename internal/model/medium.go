package model

// GrowthMedium is a culture medium referenced by strains through its acronym.
type GrowthMedium struct {
	Acronym                 string
	Description             string
	FullDescription         string
	Ingredients             string
	OtherName               string
	PH                      *float64
	SterilizationConditions string

	// Remote-side identity, present once synchronized.
	RecordID   int
	RecordName string
}

// CatalogName derives the record name the catalog indexes the medium under:
// the acronym, falling back to the description.
func (m *GrowthMedium) CatalogName() string {
	if m.Acronym != "" {
		return m.Acronym
	}
	return m.Description
}
