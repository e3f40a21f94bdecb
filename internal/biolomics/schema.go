package biolomics

import (
	"strings"

	"github.com/mirri-tools/strainsync/internal/errors"
	"github.com/mirri-tools/strainsync/internal/validation"
)

// Catalog schema response shapes, as served by {server}/schemas.
type schemaTable struct {
	TableViews []tableView `json:"TableViews"`
}

type tableView struct {
	TableViewName string        `json:"TableViewName"`
	ResultFields  []resultField `json:"ResultFields"`
}

type resultField struct {
	Title     string        `json:"title"`
	FieldType FieldType     `json:"FieldType"`
	States    []string      `json:"states,omitempty"`
	Subfields []resultField `json:"subfields,omitempty"`
}

// catalogSchema is the allowed-fields view derived from the schema response:
// per table view, field title to its declaration.
type catalogSchema map[string]map[string]resultField

func buildCatalogSchema(tables []schemaTable) catalogSchema {
	schema := make(catalogSchema)
	for _, table := range tables {
		for _, view := range table.TableViews {
			fields := make(map[string]resultField, len(view.ResultFields))
			for _, f := range view.ResultFields {
				fields[f.Title] = f
			}
			schema[view.TableViewName] = fields
		}
	}
	return schema
}

// stripState removes a trailing parenthesized annotation from a state label:
// "Diploid (2n)" validates as "Diploid".
func stripState(state string) string {
	state = strings.TrimSpace(state)
	if strings.HasSuffix(state, ")") {
		if i := strings.LastIndex(state, " ("); i > 0 {
			return state[:i]
		}
	}
	return state
}

func stateAllowed(states []string, value string) bool {
	for _, s := range states {
		if stripState(s) == value {
			return true
		}
	}
	return false
}

// validateRecord checks a create/update payload against the endpoint's
// schema: every detail field must be declared, with a matching FieldType,
// and choice values must be among the declared states.
func validateRecord(fields map[string]resultField, rec *Record, update bool) error {
	if update && rec.RecordID == 0 {
		return errors.New(errors.ErrRecordIDRequired).
			Category(errors.CategoryState).Component("biolomics").
			Context("record_name", rec.RecordName).Build()
	}
	for label, f := range rec.RecordDetails {
		decl, ok := fields[label]
		if !ok {
			return errors.New(errors.ErrFieldNotAllowed).
				Category(errors.CategoryValidation).Component("biolomics").
				Context("field", label).Build()
		}
		if decl.FieldType != "" && decl.FieldType != f.FieldType {
			return errors.New(errors.ErrBadFieldType).
				Category(errors.CategoryValidation).Component("biolomics").
				Context("field", label).
				Context("got", string(f.FieldType)).
				Context("want", string(decl.FieldType)).Build()
		}
		if len(decl.States) == 0 {
			continue
		}
		switch value := f.Value.(type) {
		case string:
			if !stateAllowed(decl.States, value) {
				return stateError(label, value)
			}
		case []ChoiceItem:
			for _, item := range value {
				if !stateAllowed(decl.States, item.Value) {
					return stateError(label, item.Value)
				}
			}
		}
	}
	return nil
}

func stateError(label, value string) error {
	return errors.New(errors.ErrValueNotInStates).
		Category(errors.CategoryValidation).Component("biolomics").
		Context("field", label).
		Context("value", value).Build()
}

// diagnoseSchema logs every local strain field label the catalog schema does
// not recognize. Labels have drifted between standard revisions before; the
// warning surfaces the drift at startup instead of on the first failing
// upload.
func diagnoseSchema(fields map[string]resultField) {
	for _, sheet := range validation.MIRRISchema().Sheets {
		if sheet.Name != validation.SheetStrains {
			continue
		}
		for _, column := range sheet.Columns {
			if _, ok := fields[column.Field]; !ok {
				logger.Warn("catalog schema does not carry strain field", "field", column.Field)
			}
		}
	}
}
