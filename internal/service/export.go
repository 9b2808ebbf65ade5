package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
)

const summarySheet = "Submissions"

var summaryHeader = []string{
	"Submission ID", "Vessel", "Assigned To", "Status",
	"Submitted By", "Submitted At", "Reviewed By", "Reviewed At", "Notes",
}

// ExportFile is a finished workbook ready to be streamed.
type ExportFile struct {
	Name string
	Data []byte
}

// Export renders every visible submission of a template into an xlsx
// workbook. Scalar answers become columns of the summary sheet; each table
// field gets its own sheet with one line per row.
func (s *SubmissionService) Export(ctx context.Context, sess models.Session, templateID string) (*ExportFile, error) {
	if !sess.CanManageTemplates() {
		return nil, fmt.Errorf("staff or master access required: %w", models.ErrForbidden)
	}
	if templateID == "" {
		return nil, fmt.Errorf("template_id is required: %w", models.ErrValidation)
	}
	t, err := s.templates.FindByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("template: %w", models.ErrNotFound)
	}
	subs, err := s.List(ctx, sess, models.SubmissionFilter{TemplateID: templateID})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	var scalars, tables []models.FieldSchema
	for _, fs := range t.Fields {
		if fs.Type == models.FieldTable {
			tables = append(tables, fs)
		} else {
			scalars = append(scalars, fs)
		}
	}

	header := make([]any, 0, len(summaryHeader)+len(scalars))
	for _, h := range summaryHeader {
		header = append(header, h)
	}
	for _, fs := range scalars {
		header = append(header, fs.Label)
	}
	if err := writeRow(f, summarySheet, 1, header); err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(summarySheet, 1, 1, bold); err != nil {
		return nil, err
	}
	for i, sub := range subs {
		row := []any{
			sub.ID, sub.VesselName, sub.AssignedToName, string(sub.Status),
			sub.SubmittedByName, formatTime(sub.SubmittedAt),
			sub.ReviewedByName, formatTime(sub.ReviewedAt), sub.ApprovalNotes,
		}
		for _, fs := range scalars {
			row = append(row, cellValue(sub.FilledData[fs.ID]))
		}
		if err := writeRow(f, summarySheet, i+2, row); err != nil {
			return nil, err
		}
	}

	for n, tf := range tables {
		sheet := sheetName(tf.Label, n)
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
		head := []any{"Submission ID", "Vessel", "Row"}
		for _, c := range tf.Columns {
			head = append(head, c.Label)
		}
		if err := writeRow(f, sheet, 1, head); err != nil {
			return nil, err
		}
		if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
			return nil, err
		}
		line := 2
		for _, sub := range subs {
			rows, _ := sub.FilledData[tf.ID].([]any)
			for r, raw := range rows {
				cells, _ := raw.(map[string]any)
				out := []any{sub.ID, sub.VesselName, r + 1}
				for _, c := range tf.Columns {
					out = append(out, cellValue(cells[c.ID]))
				}
				if err := writeRow(f, sheet, line, out); err != nil {
					return nil, err
				}
				line++
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return &ExportFile{
		Name: fmt.Sprintf("%s_%s.xlsx", fileSafe(t.Name), time.Now().UTC().Format("20060102")),
		Data: buf.Bytes(),
	}, nil
}

func writeRow(f *excelize.File, sheet string, line int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, line)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func cellValue(v any) any {
	switch t := v.(type) {
	case nil:
		return ""
	case bool:
		if t {
			return "Yes"
		}
		return "No"
	case json.Number:
		if n, err := t.Float64(); err == nil {
			return n
		}
		return t.String()
	case string, float64, int, int64:
		return t
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func fileSafe(name string) string {
	s := strings.Trim(unsafeChars.ReplaceAllString(name, "_"), "_.")
	if s == "" {
		return "export"
	}
	return s
}

// sheetName builds a unique, Excel-legal sheet title: at most 31 characters
// and none of : \ / ? * [ ].
func sheetName(label string, n int) string {
	clean := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(label))
	suffix := " " + strconv.Itoa(n+1)
	if clean == "" || strings.EqualFold(clean, summarySheet) {
		clean = "Table"
	}
	if r := []rune(clean); len(r)+len(suffix) > 31 {
		clean = string(r[:31-len(suffix)])
	}
	return clean + suffix
}
