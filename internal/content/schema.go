package content

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/editfolio/editfolio-backend/internal/store"
)

// FieldType declares how a field is validated and coerced at the accessor
// boundary.
type FieldType int

const (
	FieldText FieldType = iota
	FieldNumber
)

// Field is one declared field of a collection schema.
type Field struct {
	Name     string
	Type     FieldType
	Required bool
	// numeric bounds, only checked when HasRange is set
	Min, Max float64
	HasRange bool
}

// Schema enumerates the declared fields of a collection. Undeclared fields
// are allowed and stored as-is; the documents stay schemaless beyond what
// is listed here.
type Schema struct {
	Collection string
	Fields     []Field
}

var schemas = map[string]Schema{
	CollectionPortfolioItems: {
		Collection: CollectionPortfolioItems,
		Fields: []Field{
			{Name: "title", Required: true},
			{Name: "videoUrl", Required: true},
			{Name: "sectionId", Required: true},
			{Name: "description"},
			{Name: "thumbnailUrl"},
			{Name: "tools"},
			{Name: "duration"},
			{Name: "client"},
		},
	},
	CollectionSections: {
		Collection: CollectionSections,
		Fields:     []Field{{Name: "name", Required: true}},
	},
	CollectionStats: {
		Collection: CollectionStats,
		Fields: []Field{
			{Name: "label", Required: true},
			{Name: "value", Required: true},
			{Name: "icon"},
		},
	},
	CollectionSkills: {
		Collection: CollectionSkills,
		Fields: []Field{
			{Name: "name", Required: true},
			{Name: "level", Type: FieldNumber, Required: true, Min: 0, Max: 100, HasRange: true},
		},
	},
	CollectionServices: {
		Collection: CollectionServices,
		Fields: []Field{
			{Name: "title", Required: true},
			{Name: "description", Required: true},
			{Name: "icon"},
		},
	},
	CollectionServiceList: {
		Collection: CollectionServiceList,
		Fields:     []Field{{Name: "name", Required: true}},
	},
	CollectionReviews: {
		Collection: CollectionReviews,
		Fields: []Field{
			{Name: "name", Required: true},
			{Name: "review", Required: true},
			{Name: "rating", Type: FieldNumber, Required: true, Min: 1, Max: 5, HasRange: true},
		},
	},
	CollectionFAQs: {
		Collection: CollectionFAQs,
		Fields: []Field{
			{Name: "question", Required: true},
			{Name: "answer", Required: true},
		},
	},
}

// SchemaFor returns the schema for a managed collection.
func SchemaFor(collection string) (Schema, bool) {
	s, ok := schemas[collection]
	return s, ok
}

// Collections lists every managed collection name.
func Collections() []string {
	out := make([]string, 0, len(schemas))
	for name := range schemas {
		out = append(out, name)
	}
	return out
}

// ValidationError reports a single missing or malformed field. It is a
// local error: the accessor never reaches the store when validation fails.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a complete record: every required field must be present,
// and declared numeric fields must parse and stay in range. The record may
// carry any additional undeclared fields.
func (s Schema) Validate(rec store.Fields) error {
	for _, f := range s.Fields {
		v, present := rec[f.Name]
		if !present || v == nil {
			if f.Required {
				return &ValidationError{Field: f.Name, Message: "required"}
			}
			continue
		}
		if err := checkField(f, v); err != nil {
			return err
		}
	}
	return nil
}

// ValidateMerge checks only the fields the payload actually carries, so a
// partial merge-update never fails over a field it leaves untouched. A
// present field still has to be well-formed: a required text field cannot
// be blanked out, and numbers keep their type and range checks.
func (s Schema) ValidateMerge(rec store.Fields) error {
	for _, f := range s.Fields {
		v, present := rec[f.Name]
		if !present || v == nil {
			continue
		}
		if err := checkField(f, v); err != nil {
			return err
		}
	}
	return nil
}

func checkField(f Field, v any) error {
	switch f.Type {
	case FieldText:
		if str, ok := v.(string); ok && f.Required && strings.TrimSpace(str) == "" {
			return &ValidationError{Field: f.Name, Message: "required"}
		}
	case FieldNumber:
		n, err := toNumber(v)
		if err != nil {
			return &ValidationError{Field: f.Name, Message: "must be a number"}
		}
		if f.HasRange && (n < f.Min || n > f.Max) {
			return &ValidationError{Field: f.Name, Message: fmt.Sprintf("must be between %g and %g", f.Min, f.Max)}
		}
	}
	return nil
}

// Coerce converts string input in declared numeric fields to float64
// in place, the way form input arrives from the editing surface.
func (s Schema) Coerce(rec store.Fields) error {
	for _, f := range s.Fields {
		if f.Type != FieldNumber {
			continue
		}
		v, present := rec[f.Name]
		if !present || v == nil {
			continue
		}
		n, err := toNumber(v)
		if err != nil {
			return &ValidationError{Field: f.Name, Message: "must be a number"}
		}
		rec[f.Name] = n
	}
	return nil
}

func toNumber(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	default:
		return 0, fmt.Errorf("not a number: %T", v)
	}
}
