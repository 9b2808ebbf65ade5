package forms

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
)

// AnswerError describes one rejected answer.
type AnswerError struct {
	FieldID string
	Message string
}

// AnswerErrors collects every rejected answer of a submission.
type AnswerErrors []AnswerError

func (e AnswerErrors) Error() string {
	parts := make([]string, len(e))
	for i, a := range e {
		parts[i] = a.FieldID + ": " + a.Message
	}
	return "invalid answers: " + strings.Join(parts, "; ")
}

func (e AnswerErrors) Unwrap() error { return models.ErrValidation }

// ValidateAnswers checks a submission's answers against the template before
// it is handed in. Drafts are not validated. Keys the template no longer
// defines are left alone; the renderer skips them too.
func ValidateAnswers(fields []models.FieldSchema, data map[string]any) error {
	classified, err := ClassifyAll(fields)
	if err != nil {
		return err
	}
	var errs AnswerErrors
	for _, f := range classified {
		errs = append(errs, checkAnswer(f, f.ID, data[f.ID])...)
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func checkAnswer(f Field, path string, v any) []AnswerError {
	if isEmpty(v) {
		if f.Required {
			return []AnswerError{{FieldID: path, Message: "is required"}}
		}
		return nil
	}
	fail := func(msg string) []AnswerError {
		return []AnswerError{{FieldID: path, Message: msg}}
	}
	switch k := f.Kind.(type) {
	case Text, Signature, Photo:
		if _, ok := v.(string); !ok {
			return fail("must be a string")
		}
	case Number:
		if !isNumber(v) {
			return fail("must be a number")
		}
	case Date:
		s, ok := v.(string)
		if !ok || !isDate(s) {
			return fail("must be a date")
		}
	case Boolean:
		if _, ok := v.(bool); !ok {
			return fail("must be true or false")
		}
	case Select:
		s, ok := v.(string)
		if !ok || !contains(k.Options, s) {
			return fail("must be one of " + strings.Join(k.Options, ", "))
		}
	case Table:
		rows, ok := v.([]any)
		if !ok {
			return fail("must be a list of rows")
		}
		var errs []AnswerError
		for i, r := range rows {
			row, ok := r.(map[string]any)
			if !ok {
				errs = append(errs, AnswerError{FieldID: fmt.Sprintf("%s[%d]", path, i), Message: "must be an object"})
				continue
			}
			for _, c := range k.Columns {
				errs = append(errs, checkAnswer(c, fmt.Sprintf("%s[%d].%s", path, i, c.ID), row[c.ID])...)
			}
		}
		return errs
	default:
		panic(fmt.Sprintf("forms: unhandled field kind %T", k))
	}
	return nil
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	}
	return false
}

func isNumber(v any) bool {
	switch t := v.(type) {
	case float64, float32, int, int64, int32:
		return true
	case json.Number:
		_, err := t.Float64()
		return err == nil
	case string:
		_, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return err == nil
	}
	return false
}

func isDate(s string) bool {
	if _, err := time.Parse(time.RFC3339, s); err == nil {
		return true
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
