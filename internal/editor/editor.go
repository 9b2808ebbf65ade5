// Package editor holds the local draft of a template while staff author
// it, and saves it through a Store.
package editor

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/outcome"
)

// Store persists templates. Creating and updating are separate calls:
// saving a draft opened from an existing template never creates a copy.
type Store interface {
	CreateTemplate(ctx context.Context, in models.TemplateInput) (*models.Template, error)
	UpdateTemplate(ctx context.Context, id string, in models.TemplateInput) (*models.Template, error)
}

// FieldPatch lists the properties to change; nil members are left alone.
type FieldPatch struct {
	Label    *string
	Type     *models.FieldType
	Required *bool
	Options  *[]string
}

type Draft struct {
	// ID is empty until the draft has been saved once.
	ID                string
	Name              string
	Category          models.Category
	Description       string
	ApprovalRequired  bool
	ManualReferenceID string
	Scheduled         models.Schedule
	Role              models.Role
	Fields            []models.FieldSchema

	mu     sync.Mutex
	saving bool
}

// NewDraft starts a template with a single optional comments field.
func NewDraft() *Draft {
	return &Draft{
		Category:         models.CategoryChecklist,
		ApprovalRequired: true,
		Scheduled:        models.ScheduleWeekly,
		Role:             models.RoleCrew,
		Fields: []models.FieldSchema{
			{ID: "f1", Label: "Comments", Type: models.FieldText},
		},
	}
}

// EditDraft opens an existing template for editing.
func EditDraft(t *models.Template) *Draft {
	in := t.Input()
	return &Draft{
		ID:                t.ID,
		Name:              in.Name,
		Category:          in.Category,
		Description:       in.Description,
		ApprovalRequired:  in.ApprovalRequired,
		ManualReferenceID: in.ManualReferenceID,
		Scheduled:         in.Scheduled,
		Role:              in.Role,
		Fields:            in.Fields,
	}
}

func (d *Draft) AddField() models.FieldSchema {
	f := models.FieldSchema{
		ID:    nextID("f", fieldIDs(d.Fields)),
		Label: "New Question",
		Type:  models.FieldText,
	}
	d.Fields = append(d.Fields, f)
	return f
}

func (d *Draft) RemoveField(i int) error {
	if err := d.checkField(i); err != nil {
		return err
	}
	d.Fields = append(d.Fields[:i], d.Fields[i+1:]...)
	return nil
}

// UpdateField merges p into field i. Becoming a table starts an empty
// column list; leaving table or select drops columns or options.
func (d *Draft) UpdateField(i int, p FieldPatch) error {
	if err := d.checkField(i); err != nil {
		return err
	}
	f, err := patch(d.Fields[i], p, false)
	if err != nil {
		return err
	}
	d.Fields[i] = f
	return nil
}

func (d *Draft) AddColumn(fi int) (models.FieldSchema, error) {
	if err := d.checkTable(fi); err != nil {
		return models.FieldSchema{}, err
	}
	c := models.FieldSchema{
		ID:    nextID("c", fieldIDs(d.Fields[fi].Columns)),
		Label: "New Column",
		Type:  models.FieldText,
	}
	d.Fields[fi].Columns = append(d.Fields[fi].Columns, c)
	return c, nil
}

func (d *Draft) RemoveColumn(fi, ci int) error {
	if err := d.checkColumn(fi, ci); err != nil {
		return err
	}
	cols := d.Fields[fi].Columns
	d.Fields[fi].Columns = append(cols[:ci], cols[ci+1:]...)
	return nil
}

// UpdateColumn merges p into column ci of table field fi. A column cannot
// become a table.
func (d *Draft) UpdateColumn(fi, ci int, p FieldPatch) error {
	if err := d.checkColumn(fi, ci); err != nil {
		return err
	}
	c, err := patch(d.Fields[fi].Columns[ci], p, true)
	if err != nil {
		return err
	}
	d.Fields[fi].Columns[ci] = c
	return nil
}

// Input returns a deep copy of the draft as a save payload.
func (d *Draft) Input() models.TemplateInput {
	fields := make([]models.FieldSchema, len(d.Fields))
	for i, f := range d.Fields {
		fields[i] = f.Clone()
	}
	return models.TemplateInput{
		Name:              strings.TrimSpace(d.Name),
		Category:          d.Category,
		Description:       d.Description,
		Fields:            fields,
		ApprovalRequired:  d.ApprovalRequired,
		ManualReferenceID: d.ManualReferenceID,
		Scheduled:         d.Scheduled,
		Role:              d.Role,
	}
}

// Saving reports whether a save is in flight.
func (d *Draft) Saving() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.saving
}

// Save validates the name locally, then creates or updates the template.
// On failure the draft is left exactly as it was.
func (d *Draft) Save(ctx context.Context, store Store) (*models.Template, error) {
	const op = "save template"
	in := d.Input()
	if in.Name == "" {
		return nil, outcome.Invalid(op, "template name is required")
	}
	d.mu.Lock()
	if d.saving {
		d.mu.Unlock()
		return nil, outcome.Busy(op)
	}
	d.saving = true
	d.mu.Unlock()
	defer func() {
		d.mu.Lock()
		d.saving = false
		d.mu.Unlock()
	}()

	var (
		t   *models.Template
		err error
	)
	if d.ID == "" {
		t, err = store.CreateTemplate(ctx, in)
	} else {
		t, err = store.UpdateTemplate(ctx, d.ID, in)
	}
	if err != nil {
		return nil, outcome.Backend(op, err)
	}
	d.ID = t.ID
	return t, nil
}

func (d *Draft) checkField(i int) error {
	if i < 0 || i >= len(d.Fields) {
		return outcome.Invalid("edit field", fmt.Sprintf("no field at position %d", i))
	}
	return nil
}

func (d *Draft) checkTable(fi int) error {
	if err := d.checkField(fi); err != nil {
		return err
	}
	if d.Fields[fi].Type != models.FieldTable {
		return outcome.Invalid("edit column", fmt.Sprintf("field %q is not a table", d.Fields[fi].ID))
	}
	return nil
}

func (d *Draft) checkColumn(fi, ci int) error {
	if err := d.checkTable(fi); err != nil {
		return err
	}
	if ci < 0 || ci >= len(d.Fields[fi].Columns) {
		return outcome.Invalid("edit column", fmt.Sprintf("no column at position %d", ci))
	}
	return nil
}

func patch(f models.FieldSchema, p FieldPatch, column bool) (models.FieldSchema, error) {
	if p.Type != nil {
		t := *p.Type
		if !knownType(t) {
			return f, outcome.Invalid("edit field", fmt.Sprintf("unknown field type %q", t))
		}
		if column && t == models.FieldTable {
			return f, outcome.Invalid("edit column", "a table column cannot be a table")
		}
		if t == models.FieldTable && f.Type != models.FieldTable {
			f.Columns = []models.FieldSchema{}
		}
		if t != models.FieldTable {
			f.Columns = nil
		}
		if t != models.FieldSelect {
			f.Options = nil
		}
		f.Type = t
	}
	if p.Options != nil {
		if f.Type != models.FieldSelect {
			return f, outcome.Invalid("edit field", "options apply to select fields only")
		}
		f.Options = append([]string{}, (*p.Options)...)
	}
	if p.Label != nil {
		f.Label = *p.Label
	}
	if p.Required != nil {
		f.Required = *p.Required
	}
	return f, nil
}

func knownType(t models.FieldType) bool {
	switch t {
	case models.FieldText, models.FieldNumber, models.FieldDate, models.FieldBoolean,
		models.FieldSelect, models.FieldSignature, models.FieldPhoto, models.FieldTable:
		return true
	}
	return false
}

func fieldIDs(fields []models.FieldSchema) map[string]bool {
	ids := make(map[string]bool, len(fields))
	for _, f := range fields {
		ids[f.ID] = true
	}
	return ids
}

// nextID returns the first prefix+N, counting from len(taken)+1, that is
// not already taken.
func nextID(prefix string, taken map[string]bool) string {
	for n := len(taken) + 1; ; n++ {
		id := prefix + strconv.Itoa(n)
		if !taken[id] {
			return id
		}
	}
}
