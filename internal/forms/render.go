package forms

import (
	"fmt"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
)

// FieldView is one rendered question: its schema, its current answer and
// whether the viewer may change it.
type FieldView struct {
	ID       string           `json:"id"`
	Label    string           `json:"label"`
	Type     models.FieldType `json:"type"`
	Required bool             `json:"required"`
	ReadOnly bool             `json:"read_only"`
	Value    any              `json:"value,omitempty"`
	Options  []string         `json:"options,omitempty"`
	Columns  []ColumnView     `json:"columns,omitempty"`
	Rows     [][]CellView     `json:"rows,omitempty"`
}

type ColumnView struct {
	ID       string           `json:"id"`
	Label    string           `json:"label"`
	Type     models.FieldType `json:"type"`
	Required bool             `json:"required"`
	Options  []string         `json:"options,omitempty"`
}

type CellView struct {
	ColumnID string `json:"column_id"`
	Value    any    `json:"value,omitempty"`
}

// Render lays the template's fields out against the filled data. Keys in
// data that do not name a field are ignored.
func Render(tpl *models.Template, data map[string]any, readOnly bool) ([]FieldView, error) {
	fields, err := ClassifyAll(tpl.Fields)
	if err != nil {
		return nil, fmt.Errorf("render template %s: %w", tpl.ID, err)
	}
	views := make([]FieldView, 0, len(fields))
	for _, f := range fields {
		views = append(views, renderField(f, data, readOnly))
	}
	return views, nil
}

func renderField(f Field, data map[string]any, readOnly bool) FieldView {
	v := FieldView{
		ID:       f.ID,
		Label:    f.Label,
		Type:     f.Kind.Type(),
		Required: f.Required,
		ReadOnly: readOnly,
	}
	raw, ok := data[f.ID]
	if !ok || raw == nil {
		raw = f.Default
	}
	switch k := f.Kind.(type) {
	case Text, Number, Date, Signature, Photo:
		v.Value = raw
	case Boolean:
		b, _ := raw.(bool)
		v.Value = b
	case Select:
		v.Options = append([]string(nil), k.Options...)
		v.Value = raw
	case Table:
		v.Columns = make([]ColumnView, 0, len(k.Columns))
		for _, c := range k.Columns {
			cv := ColumnView{ID: c.ID, Label: c.Label, Type: c.Kind.Type(), Required: c.Required}
			if s, ok := c.Kind.(Select); ok {
				cv.Options = append([]string(nil), s.Options...)
			}
			v.Columns = append(v.Columns, cv)
		}
		for _, row := range tableRows(raw) {
			cells := make([]CellView, 0, len(k.Columns))
			for _, c := range k.Columns {
				cells = append(cells, CellView{ColumnID: c.ID, Value: row[c.ID]})
			}
			v.Rows = append(v.Rows, cells)
		}
	default:
		panic(fmt.Sprintf("forms: unhandled field kind %T", k))
	}
	return v
}

// tableRows accepts the shapes a decoded JSON table answer can take.
func tableRows(raw any) []map[string]any {
	switch rows := raw.(type) {
	case []map[string]any:
		return rows
	case []any:
		out := make([]map[string]any, 0, len(rows))
		for _, r := range rows {
			m, _ := r.(map[string]any)
			if m == nil {
				m = map[string]any{}
			}
			out = append(out, m)
		}
		return out
	}
	return nil
}
