// Package biolomics implements the remote catalog wire format: typed field
// envelopes, record envelopes, search queries, the bidirectional serializers
// between domain entities and envelopes, and the HTTP client with its
// client-side transaction log.
package biolomics

import (
	"strconv"
)

// FieldType tags the semantic type of an envelope field value.
type FieldType string

const (
	TypeText         FieldType = "E" // free text
	TypeNumber       FieldType = "D"
	TypeDate         FieldType = "H"
	TypeLocation     FieldType = "L" // latitude/longitude
	TypeSpan         FieldType = "S" // min/max numeric range
	TypeChoiceMulti  FieldType = "C" // every option tagged yes/no
	TypeChoiceSingle FieldType = "T"
	TypeURLList      FieldType = "U"
	TypeBoolean      FieldType = "V" // yes/no text
	TypeSequence     FieldType = "N" // nucleotide sequence
	TypeRLink        FieldType = "RLink"
	TypeSynLink      FieldType = "SynLink" // taxon synonym link
	TypeNLink        FieldType = "NLink"   // marker sequence link
)

// Field is one envelope entry of a record. Exactly one value shape is used
// depending on FieldType: Value for scalars, links and option lists,
// MinValue/MaxValue for spans.
type Field struct {
	Value     any       `json:"Value,omitempty"`
	MinValue  *float64  `json:"MinValue,omitempty"`
	MaxValue  *float64  `json:"MaxValue,omitempty"`
	FieldType FieldType `json:"FieldType,omitempty"`
	IsEmpty   bool      `json:"IsEmpty,omitempty"`
}

// Link is one element of a reference-typed field value.
type Link struct {
	Name             Field  `json:"Name"`
	RecordID         int    `json:"RecordId"`
	TargetFieldValue string `json:"TargetFieldValue,omitempty"`
}

// ChoiceItem is one option of a multi-choice field, tagged yes or no.
type ChoiceItem struct {
	Name  string `json:"Name"`
	Value string `json:"Value"`
}

// URLItem wraps one URL of a URL-list field.
type URLItem struct {
	Name  string `json:"Name"`
	Value string `json:"Value"`
}

// Coordinates is the value shape of a location-typed field.
type Coordinates struct {
	Latitude  float64  `json:"Latitude"`
	Longitude float64  `json:"Longitude"`
	Precision *float64 `json:"Precision,omitempty"`
}

// Record is the envelope of one catalog record.
type Record struct {
	RecordID      int              `json:"RecordId,omitempty"`
	RecordName    string           `json:"RecordName,omitempty"`
	Acronym       string           `json:"Acronym,omitempty"`
	RecordDetails map[string]Field `json:"RecordDetails,omitempty"`
}

// Field returns the named detail field, a zero Field when absent.
func (r *Record) Field(name string) (Field, bool) {
	f, ok := r.RecordDetails[name]
	return f, ok
}

func (r *Record) setField(name string, f Field) {
	if r.RecordDetails == nil {
		r.RecordDetails = make(map[string]Field)
	}
	r.RecordDetails[name] = f
}

// TextField builds a text-valued field.
func TextField(value string) Field {
	return Field{Value: value, FieldType: TypeText}
}

// NumberField builds a numeric field.
func NumberField(value float64) Field {
	return Field{Value: value, FieldType: TypeNumber}
}

// DateField builds a date field from an ISO "YYYY-MM-DD" string.
func DateField(iso string) Field {
	return Field{Value: iso, FieldType: TypeDate}
}

// BoolField builds a yes/no field. The catalog is case-sensitive about the
// tags, so callers pass the exact pair to use.
func BoolField(set bool, yes, no string) Field {
	v := no
	if set {
		v = yes
	}
	return Field{Value: v, FieldType: TypeBoolean}
}

// SpanField builds a min/max range field.
func SpanField(min, max float64) Field {
	return Field{MinValue: &min, MaxValue: &max, FieldType: TypeSpan}
}

// ChoiceField builds a single-choice field.
func ChoiceField(value string) Field {
	return Field{Value: value, FieldType: TypeChoiceSingle}
}

// MultiChoiceField builds a multi-choice field with every option tagged.
func MultiChoiceField(items []ChoiceItem) Field {
	return Field{Value: items, FieldType: TypeChoiceMulti}
}

// URLField builds a URL-list field.
func URLField(urls []string) Field {
	items := make([]URLItem, 0, len(urls))
	for _, u := range urls {
		items = append(items, URLItem{Name: "link", Value: u})
	}
	return Field{Value: items, FieldType: TypeURLList}
}

// LinkField builds a reference field of the given link flavor.
func LinkField(typ FieldType, links []Link) Field {
	return Field{Value: links, FieldType: typ}
}

// CoordinatesField builds a location field.
func CoordinatesField(lat, long float64, precision *float64) Field {
	return Field{Value: Coordinates{Latitude: lat, Longitude: long, Precision: precision}, FieldType: TypeLocation}
}

// SequenceField builds a nucleotide sequence field.
func SequenceField(seq string) Field {
	return Field{Value: seq, FieldType: TypeSequence}
}

// Text returns the field value as a string. Decoded JSON numbers render
// through strconv so integer-looking values keep their text form.
func (f Field) Text() string {
	switch v := f.Value.(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// Number returns the field value as a float.
func (f Field) Number() (float64, bool) {
	switch v := f.Value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(v, 64)
		return n, err == nil
	}
	return 0, false
}

// Links returns the field value as a link list. It accepts both locally
// built []Link values and the generic shapes produced by JSON decoding.
func (f Field) Links() []Link {
	switch v := f.Value.(type) {
	case []Link:
		return v
	case []any:
		links := make([]Link, 0, len(v))
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			var link Link
			if id, ok := m["RecordId"].(float64); ok {
				link.RecordID = int(id)
			}
			if target, ok := m["TargetFieldValue"].(string); ok {
				link.TargetFieldValue = target
			}
			if name, ok := m["Name"].(map[string]any); ok {
				if value, ok := name["Value"].(string); ok {
					link.Name.Value = value
				}
				if typ, ok := name["FieldType"].(string); ok {
					link.Name.FieldType = FieldType(typ)
				}
			}
			links = append(links, link)
		}
		return links
	}
	return nil
}

// Choices returns the field value as a multi-choice option list.
func (f Field) Choices() []ChoiceItem {
	switch v := f.Value.(type) {
	case []ChoiceItem:
		return v
	case []any:
		items := make([]ChoiceItem, 0, len(v))
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			ci := ChoiceItem{}
			ci.Name, _ = m["Name"].(string)
			ci.Value, _ = m["Value"].(string)
			items = append(items, ci)
		}
		return items
	}
	return nil
}

// URLs returns the field value as a plain URL list.
func (f Field) URLs() []string {
	switch v := f.Value.(type) {
	case []URLItem:
		urls := make([]string, 0, len(v))
		for _, item := range v {
			urls = append(urls, item.Value)
		}
		return urls
	case []any:
		urls := make([]string, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				if value, ok := m["Value"].(string); ok {
					urls = append(urls, value)
				}
			}
		}
		return urls
	}
	return nil
}

// Coordinates returns the field value as a location.
func (f Field) Coordinates() (Coordinates, bool) {
	switch v := f.Value.(type) {
	case Coordinates:
		return v, true
	case map[string]any:
		var c Coordinates
		lat, latOK := v["Latitude"].(float64)
		long, longOK := v["Longitude"].(float64)
		if !latOK || !longOK {
			return Coordinates{}, false
		}
		c.Latitude, c.Longitude = lat, long
		if p, ok := v["Precision"].(float64); ok {
			c.Precision = &p
		}
		return c, true
	}
	return Coordinates{}, false
}

// Span returns the min/max pair of a range field.
func (f Field) Span() (min, max float64, ok bool) {
	if f.MinValue == nil || f.MaxValue == nil {
		return 0, 0, false
	}
	return *f.MinValue, *f.MaxValue, true
}

// Search query operations understood by the catalog.
const (
	OpExactMatch = "TextExactMatch"
	OpContains   = "TextContains"
)

// SearchClause is one field/op/value triple of a search query.
type SearchClause struct {
	Index     int    `json:"Index"`
	FieldName string `json:"FieldName"`
	Operation string `json:"Operation"`
	Value     string `json:"Value"`
}

// SearchQuery is the catalog-native structured filter: a clause list plus a
// combining expression referencing clauses as Q0, Q1, ...
type SearchQuery struct {
	Query         []SearchClause `json:"Query"`
	Expression    string         `json:"Expression"`
	DisplayStart  int            `json:"DisplayStart"`
	DisplayLength int            `json:"DisplayLength"`
}

// ExactMatchQuery builds the common single-clause exact-match query.
func ExactMatchQuery(fieldName, value string) SearchQuery {
	return SearchQuery{
		Query:         []SearchClause{{Index: 0, FieldName: fieldName, Operation: OpExactMatch, Value: value}},
		Expression:    "Q0",
		DisplayStart:  0,
		DisplayLength: 50,
	}
}

// searchResponse is the raw search result envelope.
type searchResponse struct {
	Total   int      `json:"TotalCount"`
	Records []Record `json:"Records"`
}
