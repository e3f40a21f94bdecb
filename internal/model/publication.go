package model

// Publication is a literature record linked to a strain.
type Publication struct {
	ID          string
	PubMedID    string
	DOI         string
	Title       string
	Authors     string
	Journal     string
	Volume      string
	Issue       string
	FirstPage   string
	LastPage    string
	Year        *int
	Editor      string
	Publisher   string
	ISBN        string
	ISSN        string
	JournalBook string

	// Remote-side identity, present once synchronized.
	RecordID   int
	RecordName string
}
