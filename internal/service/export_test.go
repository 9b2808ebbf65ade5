package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
)

func TestExport_Workbook(t *testing.T) {
	f := newFleet(t)
	ctx := context.Background()
	tmpl := f.safetyRound(t)
	ana := f.crew[0]
	sub := mine(t, f.trigger(t, tmpl), ana)

	answers := map[string]any{
		"f1": "All clear",
		"f2": []any{
			map[string]any{"c1": "Galley", "c2": true},
			map[string]any{"c1": "Bridge", "c2": false},
		},
	}
	if _, err := f.subs.Update(ctx, ana, sub.ID, models.SubmissionUpdate{Status: models.StatusSubmitted, FilledData: answers}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	file, err := f.subs.Export(ctx, f.staff, tmpl.ID)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(file.Name, "Weekly_Safety_Round_") || !strings.HasSuffix(file.Name, ".xlsx") {
		t.Fatalf("name = %s", file.Name)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(file.Data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows("Submissions")
	if err != nil {
		t.Fatalf("summary rows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("summary has %d rows, want header + 3", len(rows))
	}
	if rows[0][0] != "Submission ID" || rows[0][len(rows[0])-1] != "Remarks" {
		t.Fatalf("header = %v", rows[0])
	}
	var found bool
	for _, r := range rows[1:] {
		if r[0] == sub.ID {
			found = true
			if r[3] != "submitted" || r[len(r)-1] != "All clear" {
				t.Fatalf("row = %v", r)
			}
		}
	}
	if !found {
		t.Fatalf("submission %s missing from export", sub.ID)
	}

	table, err := wb.GetRows("Extinguishers 1")
	if err != nil {
		t.Fatalf("table rows: %v", err)
	}
	if len(table) != 3 || table[1][3] != "Galley" || table[1][4] != "Yes" || table[2][4] != "No" {
		t.Fatalf("table = %v", table)
	}

	if _, err := f.subs.Export(ctx, ana, tmpl.ID); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("crew export: %v", err)
	}
	if _, err := f.subs.Export(ctx, f.staff, "missing"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("missing template: %v", err)
	}
}

func TestSheetName(t *testing.T) {
	if got := sheetName("Tanks: Port/Stbd", 0); got != "Tanks_ Port_Stbd 1" {
		t.Fatalf("got %q", got)
	}
	long := strings.Repeat("ÄÖ", 30)
	if got := sheetName(long, 9); len([]rune(got)) != 31 || !strings.HasSuffix(got, " 10") {
		t.Fatalf("got %q", got)
	}
	if got := sheetName("submissions", 1); got != "Table 2" {
		t.Fatalf("got %q", got)
	}
}
