package models

import "time"

type FieldType string

const (
	FieldText      FieldType = "text"
	FieldNumber    FieldType = "number"
	FieldDate      FieldType = "date"
	FieldBoolean   FieldType = "boolean"
	FieldSelect    FieldType = "select"
	FieldSignature FieldType = "signature"
	FieldPhoto     FieldType = "photo"
	FieldTable     FieldType = "table"
)

// FieldSchema is one question of a template. Columns are only meaningful
// for table fields and never contain another table.
type FieldSchema struct {
	ID           string        `json:"id"`
	Label        string        `json:"label"`
	Type         FieldType     `json:"type"`
	Required     bool          `json:"required"`
	Options      []string      `json:"options,omitempty"`
	DefaultValue any           `json:"default_value,omitempty"`
	Columns      []FieldSchema `json:"columns,omitempty"`
}

// Clone returns a deep copy so drafts never share column slices.
func (f FieldSchema) Clone() FieldSchema {
	out := f
	if f.Options != nil {
		out.Options = append([]string(nil), f.Options...)
	}
	if f.Columns != nil {
		out.Columns = make([]FieldSchema, len(f.Columns))
		for i, c := range f.Columns {
			out.Columns[i] = c.Clone()
		}
	}
	return out
}

type Category string

const (
	CategoryChecklist Category = "Checklist"
	CategoryReport    Category = "Report"
	CategoryISM       Category = "ISM"
	CategoryPMS       Category = "PMS"
	CategoryHR        Category = "HR"
)

var Categories = []Category{CategoryChecklist, CategoryReport, CategoryISM, CategoryPMS, CategoryHR}

type Schedule string

const (
	ScheduleDaily      Schedule = "daily"
	ScheduleWeekly     Schedule = "weekly"
	ScheduleMonthly    Schedule = "monthly"
	ScheduleQuarterly  Schedule = "quarterly"
	ScheduleHalfYearly Schedule = "halfyearly"
	ScheduleYearly     Schedule = "yearly"
)

type Template struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Category          Category      `json:"category"`
	Description       string        `json:"description,omitempty"`
	Fields            []FieldSchema `json:"fields"`
	ApprovalRequired  bool          `json:"approval_required"`
	ManualReferenceID string        `json:"manual_reference_id,omitempty"`
	Scheduled         Schedule      `json:"scheduled"`
	Role              Role          `json:"role"`
	CreatedBy         string        `json:"created_by"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// TemplateInput is the authored part of a template, shared by create and
// update.
type TemplateInput struct {
	Name              string        `json:"name" validate:"required"`
	Category          Category      `json:"category" validate:"required,oneof=Checklist Report ISM PMS HR"`
	Description       string        `json:"description,omitempty"`
	Fields            []FieldSchema `json:"fields"`
	ApprovalRequired  bool          `json:"approval_required"`
	ManualReferenceID string        `json:"manual_reference_id,omitempty"`
	Scheduled         Schedule      `json:"scheduled" validate:"omitempty,oneof=daily weekly monthly quarterly halfyearly yearly"`
	Role              Role          `json:"role" validate:"omitempty,oneof=crew staff master"`
}

func (t *Template) Input() TemplateInput {
	fields := make([]FieldSchema, len(t.Fields))
	for i, f := range t.Fields {
		fields[i] = f.Clone()
	}
	return TemplateInput{
		Name:              t.Name,
		Category:          t.Category,
		Description:       t.Description,
		Fields:            fields,
		ApprovalRequired:  t.ApprovalRequired,
		ManualReferenceID: t.ManualReferenceID,
		Scheduled:         t.Scheduled,
		Role:              t.Role,
	}
}
