package console

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/client"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/outcome"
)

const manualsCategory = "LAYER_1_MANUALS"

type ManualBackend interface {
	Upload(ctx context.Context, category, subcategory, filename string, r io.Reader) (*client.UploadResult, error)
	CreateManual(ctx context.Context, m models.Manual) (*models.Manual, error)
}

type File struct {
	Name string
	Body io.Reader
}

// ManualUpload uploads a batch of manual files and records each one.
type ManualUpload struct {
	Title       string
	Type        models.ManualType
	Version     string
	Description string
	Files       []File
}

type ItemFailure struct {
	File string
	Err  error
}

type BatchResult struct {
	Created   []models.Manual
	Succeeded int
	Failed    int
	Failures  []ItemFailure
	Message   string
	// Closed is true only when every file went through.
	Closed bool
}

// Run processes every file even when some fail. The returned error is
// reserved for input problems caught before any upload.
func (u *ManualUpload) Run(ctx context.Context, b ManualBackend) (*BatchResult, error) {
	const op = "upload manuals"
	if len(u.Files) == 0 {
		return nil, outcome.Invalid(op, "select at least one file")
	}
	if u.Type == "" {
		return nil, outcome.Invalid(op, "select a manual type")
	}
	version := u.Version
	if version == "" {
		version = "1.0"
	}

	res := &BatchResult{}
	for _, f := range u.Files {
		title := stem(f.Name)
		if len(u.Files) == 1 && strings.TrimSpace(u.Title) != "" {
			title = strings.TrimSpace(u.Title)
		}
		up, err := b.Upload(ctx, manualsCategory, string(u.Type), f.Name, f.Body)
		if err == nil {
			var m *models.Manual
			m, err = b.CreateManual(ctx, models.Manual{
				Title:       title,
				ManualType:  u.Type,
				Version:     version,
				FileURL:     up.URL,
				Description: u.Description,
			})
			if err == nil {
				res.Created = append(res.Created, *m)
			}
		}
		if err != nil {
			res.Failed++
			res.Failures = append(res.Failures, ItemFailure{File: f.Name, Err: err})
			continue
		}
		res.Succeeded++
	}
	res.Closed = res.Failed == 0
	res.Message = summary(res.Succeeded, res.Failed)
	return res, nil
}

func summary(ok, failed int) string {
	switch {
	case failed == 0:
		return fmt.Sprintf("%d manual(s) uploaded", ok)
	case ok == 0:
		return fmt.Sprintf("all %d upload(s) failed", failed)
	}
	return fmt.Sprintf("%d manual(s) uploaded, %d failed", ok, failed)
}

func stem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
