// Package forms turns stored field schemas into a closed set of field kinds
// and renders or validates answers against them.
package forms

import (
	"fmt"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
)

// Kind is the typed variant of a field. The set is closed: Text, Number,
// Date, Boolean, Select, Signature, Photo and Table.
type Kind interface {
	Type() models.FieldType
	sealed()
}

type Text struct{}
type Number struct{}
type Date struct{}
type Boolean struct{}
type Signature struct{}
type Photo struct{}

type Select struct {
	Options []string
}

// Table holds its columns already classified. Columns are never tables.
type Table struct {
	Columns []Field
}

func (Text) Type() models.FieldType      { return models.FieldText }
func (Number) Type() models.FieldType    { return models.FieldNumber }
func (Date) Type() models.FieldType      { return models.FieldDate }
func (Boolean) Type() models.FieldType   { return models.FieldBoolean }
func (Signature) Type() models.FieldType { return models.FieldSignature }
func (Photo) Type() models.FieldType     { return models.FieldPhoto }
func (Select) Type() models.FieldType    { return models.FieldSelect }
func (Table) Type() models.FieldType     { return models.FieldTable }

func (Text) sealed()      {}
func (Number) sealed()    {}
func (Date) sealed()      {}
func (Boolean) sealed()   {}
func (Signature) sealed() {}
func (Photo) sealed()     {}
func (Select) sealed()    {}
func (Table) sealed()     {}

// Field is a classified FieldSchema.
type Field struct {
	ID       string
	Label    string
	Required bool
	Default  any
	Kind     Kind
}

// Classify converts the wire schema into a Field. Nested tables and unknown
// types are rejected.
func Classify(fs models.FieldSchema) (Field, error) {
	return classify(fs, false)
}

func classify(fs models.FieldSchema, inTable bool) (Field, error) {
	f := Field{ID: fs.ID, Label: fs.Label, Required: fs.Required, Default: fs.DefaultValue}
	if fs.Type != models.FieldTable && len(fs.Columns) > 0 {
		return f, fmt.Errorf("field %q: columns are only allowed on table fields: %w", fs.ID, models.ErrValidation)
	}
	switch fs.Type {
	case models.FieldText:
		f.Kind = Text{}
	case models.FieldNumber:
		f.Kind = Number{}
	case models.FieldDate:
		f.Kind = Date{}
	case models.FieldBoolean:
		f.Kind = Boolean{}
	case models.FieldSignature:
		f.Kind = Signature{}
	case models.FieldPhoto:
		f.Kind = Photo{}
	case models.FieldSelect:
		f.Kind = Select{Options: append([]string(nil), fs.Options...)}
	case models.FieldTable:
		if inTable {
			return f, fmt.Errorf("column %q: tables cannot be nested: %w", fs.ID, models.ErrValidation)
		}
		cols := make([]Field, 0, len(fs.Columns))
		for _, c := range fs.Columns {
			col, err := classify(c, true)
			if err != nil {
				return f, fmt.Errorf("field %q: %w", fs.ID, err)
			}
			cols = append(cols, col)
		}
		f.Kind = Table{Columns: cols}
	default:
		return f, fmt.Errorf("field %q: unknown type %q: %w", fs.ID, fs.Type, models.ErrValidation)
	}
	return f, nil
}

// ClassifyAll classifies a template's fields in order.
func ClassifyAll(fields []models.FieldSchema) ([]Field, error) {
	out := make([]Field, 0, len(fields))
	for _, fs := range fields {
		f, err := Classify(fs)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// CheckSchema enforces the structural rules of a template's field list:
// non-empty unique ids, known types, columns only on tables and one level of
// nesting. A table without columns is an incomplete draft and passes.
func CheckSchema(fields []models.FieldSchema) error {
	seen := make(map[string]bool, len(fields))
	for _, fs := range fields {
		if fs.ID == "" {
			return fmt.Errorf("field %q has no id: %w", fs.Label, models.ErrValidation)
		}
		if seen[fs.ID] {
			return fmt.Errorf("duplicate field id %q: %w", fs.ID, models.ErrValidation)
		}
		seen[fs.ID] = true
		if _, err := Classify(fs); err != nil {
			return err
		}
		cols := make(map[string]bool, len(fs.Columns))
		for _, c := range fs.Columns {
			if c.ID == "" {
				return fmt.Errorf("field %q: column %q has no id: %w", fs.ID, c.Label, models.ErrValidation)
			}
			if cols[c.ID] {
				return fmt.Errorf("field %q: duplicate column id %q: %w", fs.ID, c.ID, models.ErrValidation)
			}
			cols[c.ID] = true
		}
	}
	return nil
}

// Normalize returns a copy of fields with options dropped from non-select
// fields and columns forced to an empty list on table fields.
func Normalize(fields []models.FieldSchema) []models.FieldSchema {
	out := make([]models.FieldSchema, len(fields))
	for i, fs := range fields {
		out[i] = normalizeOne(fs.Clone())
	}
	return out
}

func normalizeOne(fs models.FieldSchema) models.FieldSchema {
	if fs.Type != models.FieldSelect {
		fs.Options = nil
	}
	if fs.Type == models.FieldTable {
		if fs.Columns == nil {
			fs.Columns = []models.FieldSchema{}
		}
		for i := range fs.Columns {
			fs.Columns[i] = normalizeOne(fs.Columns[i])
		}
	}
	return fs
}
