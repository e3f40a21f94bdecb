package biolomics

import (
	"github.com/mirri-tools/strainsync/internal/model"
)

// Growth medium catalog field labels.
const (
	fieldMediumDescription     = "Medium description"
	fieldMediumFullDescription = "Full description"
	fieldMediumIngredients     = "Ingredients"
	fieldMediumOtherName       = "Other name"
	fieldMediumPH              = "pH"
	fieldMediumSterilization   = "Sterilization conditions"
)

// MediumToBiolomics converts a growth medium into its record envelope.
func MediumToBiolomics(m *model.GrowthMedium, update bool) (*Record, error) {
	rec := &Record{RecordName: m.CatalogName()}
	if update {
		rec.RecordID = m.RecordID
		if m.RecordName != "" {
			rec.RecordName = m.RecordName
		}
	} else {
		rec.Acronym = createAcronym
	}
	setText(rec, fieldMediumDescription, m.Description)
	setText(rec, fieldMediumFullDescription, m.FullDescription)
	setText(rec, fieldMediumIngredients, m.Ingredients)
	setText(rec, fieldMediumOtherName, m.OtherName)
	if m.PH != nil {
		rec.setField(fieldMediumPH, NumberField(*m.PH))
	}
	setText(rec, fieldMediumSterilization, m.SterilizationConditions)
	return rec, nil
}

// MediumFromBiolomics is the inverse conversion. The acronym comes back from
// the record name, which the catalog derives from it on create.
func MediumFromBiolomics(rec *Record) (*model.GrowthMedium, error) {
	m := &model.GrowthMedium{
		Acronym:    rec.RecordName,
		RecordID:   rec.RecordID,
		RecordName: rec.RecordName,
	}
	for label, f := range rec.RecordDetails {
		if f.IsEmpty {
			continue
		}
		switch label {
		case fieldMediumDescription:
			m.Description = f.Text()
		case fieldMediumFullDescription:
			m.FullDescription = f.Text()
		case fieldMediumIngredients:
			m.Ingredients = f.Text()
		case fieldMediumOtherName:
			m.OtherName = f.Text()
		case fieldMediumPH:
			if v, ok := f.Number(); ok {
				m.PH = &v
			}
		case fieldMediumSterilization:
			m.SterilizationConditions = f.Text()
		}
	}
	return m, nil
}

// Sequence catalog field labels.
const (
	fieldSequenceMarker = "Marker name"
	fieldSequenceINSDC  = "INSDC number"
	fieldSequenceBases  = "Sequence"
)

// SequenceToBiolomics converts a marker sequence into its record envelope.
// The record is named after the INSDC accession.
func SequenceToBiolomics(seq *model.GenomicSequence, update bool) (*Record, error) {
	rec := &Record{RecordName: seq.MarkerID}
	if update {
		rec.RecordID = seq.RecordID
		if seq.RecordName != "" {
			rec.RecordName = seq.RecordName
		}
	} else {
		rec.Acronym = createAcronym
	}
	setText(rec, fieldSequenceMarker, seq.MarkerType)
	setText(rec, fieldSequenceINSDC, seq.MarkerID)
	if seq.MarkerSeq != "" {
		rec.setField(fieldSequenceBases, SequenceField(seq.MarkerSeq))
	}
	return rec, nil
}

// SequenceFromBiolomics is the inverse conversion.
func SequenceFromBiolomics(rec *Record) (*model.GenomicSequence, error) {
	seq := &model.GenomicSequence{
		RecordID:   rec.RecordID,
		RecordName: rec.RecordName,
	}
	for label, f := range rec.RecordDetails {
		if f.IsEmpty {
			continue
		}
		switch label {
		case fieldSequenceMarker:
			seq.MarkerType = f.Text()
		case fieldSequenceINSDC:
			seq.MarkerID = f.Text()
		case fieldSequenceBases:
			seq.MarkerSeq = f.Text()
		}
	}
	if seq.MarkerID == "" {
		seq.MarkerID = rec.RecordName
	}
	return seq, nil
}

// Bibliography catalog field labels.
const (
	fieldPubAuthors   = "Authors"
	fieldPubJournal   = "Journal"
	fieldPubYear      = "Year"
	fieldPubVolume    = "Volume"
	fieldPubIssue     = "Issue"
	fieldPubFirstPage = "First page"
	fieldPubLastPage  = "Last page"
	fieldPubEditors   = "Editors"
	fieldPubPublisher = "Publisher"
	fieldPubISBN      = "ISBN"
	fieldPubISSN      = "ISSN"
	fieldPubDOI       = "DOI"
	fieldPubPubMedID  = "PubMed ID"
	fieldPubBookTitle = "Book title"
)

// PublicationToBiolomics converts a publication into its record envelope.
// The record is named after the title, which is also the key the pipeline
// looks publications up by.
func PublicationToBiolomics(pub *model.Publication, update bool) (*Record, error) {
	rec := &Record{RecordName: pub.Title}
	if update {
		rec.RecordID = pub.RecordID
		if pub.RecordName != "" {
			rec.RecordName = pub.RecordName
		}
	} else {
		rec.Acronym = createAcronym
	}
	setText(rec, fieldPubAuthors, pub.Authors)
	setText(rec, fieldPubJournal, pub.Journal)
	if pub.Year != nil {
		rec.setField(fieldPubYear, NumberField(float64(*pub.Year)))
	}
	setText(rec, fieldPubVolume, pub.Volume)
	setText(rec, fieldPubIssue, pub.Issue)
	setText(rec, fieldPubFirstPage, pub.FirstPage)
	setText(rec, fieldPubLastPage, pub.LastPage)
	setText(rec, fieldPubEditors, pub.Editor)
	setText(rec, fieldPubPublisher, pub.Publisher)
	setText(rec, fieldPubISBN, pub.ISBN)
	setText(rec, fieldPubISSN, pub.ISSN)
	setText(rec, fieldPubDOI, pub.DOI)
	setText(rec, fieldPubPubMedID, pub.PubMedID)
	setText(rec, fieldPubBookTitle, pub.JournalBook)
	return rec, nil
}

// PublicationFromBiolomics is the inverse conversion.
func PublicationFromBiolomics(rec *Record) (*model.Publication, error) {
	pub := &model.Publication{
		Title:      rec.RecordName,
		RecordID:   rec.RecordID,
		RecordName: rec.RecordName,
	}
	for label, f := range rec.RecordDetails {
		if f.IsEmpty {
			continue
		}
		switch label {
		case fieldPubAuthors:
			pub.Authors = f.Text()
		case fieldPubJournal:
			pub.Journal = f.Text()
		case fieldPubYear:
			if v, ok := f.Number(); ok {
				year := int(v)
				pub.Year = &year
			}
		case fieldPubVolume:
			pub.Volume = f.Text()
		case fieldPubIssue:
			pub.Issue = f.Text()
		case fieldPubFirstPage:
			pub.FirstPage = f.Text()
		case fieldPubLastPage:
			pub.LastPage = f.Text()
		case fieldPubEditors:
			pub.Editor = f.Text()
		case fieldPubPublisher:
			pub.Publisher = f.Text()
		case fieldPubISBN:
			pub.ISBN = f.Text()
		case fieldPubISSN:
			pub.ISSN = f.Text()
		case fieldPubDOI:
			pub.DOI = f.Text()
		case fieldPubPubMedID:
			pub.PubMedID = f.Text()
		case fieldPubBookTitle:
			pub.JournalBook = f.Text()
		}
	}
	return pub, nil
}
