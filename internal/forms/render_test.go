package forms

import (
	"testing"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
)

func inspectionTemplate() *models.Template {
	return &models.Template{
		ID:   "tpl1",
		Name: "Weekly Inspection",
		Fields: []models.FieldSchema{
			{ID: "f1", Label: "Comments", Type: models.FieldText},
			{ID: "f2", Label: "Hours", Type: models.FieldNumber, DefaultValue: 0.0},
			{ID: "f3", Label: "Condition", Type: models.FieldSelect, Options: []string{"Good", "Poor"}},
			{ID: "f4", Label: "Checked", Type: models.FieldBoolean},
			{ID: "f5", Label: "Items", Type: models.FieldTable, Columns: []models.FieldSchema{
				{ID: "item", Label: "Item", Type: models.FieldText},
				{ID: "ok", Label: "OK", Type: models.FieldBoolean},
			}},
		},
	}
}

func TestRender_FieldsInOrder(t *testing.T) {
	data := map[string]any{
		"f1": "All clear",
		"f3": "Good",
		"f5": []any{
			map[string]any{"item": "Lifebuoy", "ok": true},
			map[string]any{"item": "Flare"},
		},
		"stray": "ignored",
	}
	views, err := Render(inspectionTemplate(), data, false)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(views) != 5 {
		t.Fatalf("views = %d, want 5", len(views))
	}
	if views[0].Value != "All clear" || views[0].ReadOnly {
		t.Fatalf("f1 view = %#v", views[0])
	}
	if views[1].Value != 0.0 {
		t.Fatalf("f2 default = %v", views[1].Value)
	}
	if len(views[2].Options) != 2 {
		t.Fatalf("f3 options = %v", views[2].Options)
	}
	if views[3].Value != false {
		t.Fatalf("f4 value = %v", views[3].Value)
	}

	tbl := views[4]
	if len(tbl.Columns) != 2 || len(tbl.Rows) != 2 {
		t.Fatalf("table = %d columns, %d rows", len(tbl.Columns), len(tbl.Rows))
	}
	if tbl.Rows[0][0].Value != "Lifebuoy" || tbl.Rows[0][1].Value != true {
		t.Fatalf("row 0 = %#v", tbl.Rows[0])
	}
	if tbl.Rows[1][1].Value != nil {
		t.Fatalf("missing cell = %v, want nil", tbl.Rows[1][1].Value)
	}
}

func TestRender_NonTableHasNoColumns(t *testing.T) {
	views, err := Render(inspectionTemplate(), nil, true)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, v := range views {
		if !v.ReadOnly {
			t.Fatalf("%s not read-only", v.ID)
		}
		if v.Type != models.FieldTable && (v.Columns != nil || v.Rows != nil) {
			t.Fatalf("%s has table data", v.ID)
		}
	}
}

func TestRender_EmptyTableDraft(t *testing.T) {
	tpl := &models.Template{Fields: []models.FieldSchema{{ID: "t", Type: models.FieldTable, Columns: []models.FieldSchema{}}}}
	views, err := Render(tpl, map[string]any{}, false)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(views[0].Columns) != 0 || len(views[0].Rows) != 0 {
		t.Fatalf("view = %#v", views[0])
	}
}

func TestRender_RejectsBrokenSchema(t *testing.T) {
	tpl := &models.Template{Fields: []models.FieldSchema{{ID: "x", Type: "hologram"}}}
	if _, err := Render(tpl, nil, false); err == nil {
		t.Fatal("expected error for unknown field type")
	}
}
