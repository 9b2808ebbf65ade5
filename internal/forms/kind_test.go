package forms

import (
	"errors"
	"testing"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
)

func TestClassify_AllKinds(t *testing.T) {
	cases := map[models.FieldType]Kind{
		models.FieldText:      Text{},
		models.FieldNumber:    Number{},
		models.FieldDate:      Date{},
		models.FieldBoolean:   Boolean{},
		models.FieldSignature: Signature{},
		models.FieldPhoto:     Photo{},
	}
	for typ, want := range cases {
		f, err := Classify(models.FieldSchema{ID: "f", Type: typ})
		if err != nil {
			t.Fatalf("classify %s: %v", typ, err)
		}
		if f.Kind != want {
			t.Fatalf("classify %s: kind = %T", typ, f.Kind)
		}
		if f.Kind.Type() != typ {
			t.Fatalf("kind %T reports type %s", f.Kind, f.Kind.Type())
		}
	}

	f, err := Classify(models.FieldSchema{ID: "s", Type: models.FieldSelect, Options: []string{"A", "B"}})
	if err != nil {
		t.Fatalf("classify select: %v", err)
	}
	sel, ok := f.Kind.(Select)
	if !ok || len(sel.Options) != 2 {
		t.Fatalf("select kind = %#v", f.Kind)
	}
}

func TestClassify_TableColumns(t *testing.T) {
	f, err := Classify(models.FieldSchema{
		ID:   "t",
		Type: models.FieldTable,
		Columns: []models.FieldSchema{
			{ID: "c1", Label: "Item", Type: models.FieldText},
			{ID: "c2", Label: "OK", Type: models.FieldBoolean},
		},
	})
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	tbl, ok := f.Kind.(Table)
	if !ok {
		t.Fatalf("kind = %T, want Table", f.Kind)
	}
	if len(tbl.Columns) != 2 || tbl.Columns[1].Kind != (Boolean{}) {
		t.Fatalf("columns = %#v", tbl.Columns)
	}
}

func TestClassify_Rejects(t *testing.T) {
	cases := []struct {
		name string
		fs   models.FieldSchema
	}{
		{"unknown type", models.FieldSchema{ID: "x", Type: "rating"}},
		{"columns on text", models.FieldSchema{ID: "x", Type: models.FieldText, Columns: []models.FieldSchema{{ID: "c", Type: models.FieldText}}}},
		{"nested table", models.FieldSchema{ID: "x", Type: models.FieldTable, Columns: []models.FieldSchema{{ID: "c", Type: models.FieldTable}}}},
	}
	for _, tc := range cases {
		if _, err := Classify(tc.fs); !errors.Is(err, models.ErrValidation) {
			t.Fatalf("%s: err = %v, want ErrValidation", tc.name, err)
		}
	}
}

func TestCheckSchema(t *testing.T) {
	ok := []models.FieldSchema{
		{ID: "f1", Label: "Comments", Type: models.FieldText},
		{ID: "f2", Label: "Log", Type: models.FieldTable, Columns: []models.FieldSchema{}},
	}
	if err := CheckSchema(ok); err != nil {
		t.Fatalf("empty table columns should pass: %v", err)
	}

	bad := map[string][]models.FieldSchema{
		"missing id":       {{Label: "x", Type: models.FieldText}},
		"duplicate id":     {{ID: "a", Type: models.FieldText}, {ID: "a", Type: models.FieldNumber}},
		"duplicate column": {{ID: "t", Type: models.FieldTable, Columns: []models.FieldSchema{{ID: "c", Type: models.FieldText}, {ID: "c", Type: models.FieldText}}}},
		"column no id":     {{ID: "t", Type: models.FieldTable, Columns: []models.FieldSchema{{Label: "c", Type: models.FieldText}}}},
	}
	for name, fields := range bad {
		if err := CheckSchema(fields); !errors.Is(err, models.ErrValidation) {
			t.Fatalf("%s: err = %v, want ErrValidation", name, err)
		}
	}
}

func TestNormalize(t *testing.T) {
	in := []models.FieldSchema{
		{ID: "a", Type: models.FieldText, Options: []string{"stale"}},
		{ID: "b", Type: models.FieldTable},
		{ID: "c", Type: models.FieldSelect, Options: []string{"Yes", "No"}},
	}
	out := Normalize(in)
	if out[0].Options != nil {
		t.Fatalf("text options kept: %v", out[0].Options)
	}
	if out[1].Columns == nil || len(out[1].Columns) != 0 {
		t.Fatalf("table columns = %#v, want empty list", out[1].Columns)
	}
	if len(out[2].Options) != 2 {
		t.Fatalf("select options = %v", out[2].Options)
	}
	if in[0].Options == nil {
		t.Fatal("Normalize modified its input")
	}
}
