package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
)

// Upload categories, one directory each under the upload root.
const (
	UploadManuals     = "LAYER_1_MANUALS"
	UploadTemplates   = "LAYER_2_FORM_TEMPLATES"
	UploadSubmissions = "LAYER_3_FORM_SUBMISSIONS"
)

const MaxUploadBytes = 50 << 20

type UploadService struct {
	dir     string
	baseURL string
}

// NewUploadService stores files under dir and reports them relative to
// baseURL, where the router serves dir.
func NewUploadService(dir, baseURL string) *UploadService {
	return &UploadService{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

type UploadResult struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
}

// Save writes body to <dir>/<category>/<subcategory>/<unique name>. Crew may
// only attach files to submissions.
func (s *UploadService) Save(ctx context.Context, sess models.Session, category, subcategory, filename string, body io.Reader) (*UploadResult, error) {
	switch category {
	case UploadManuals, UploadTemplates:
		if !sess.CanManageTemplates() {
			return nil, fmt.Errorf("staff or master access required: %w", models.ErrForbidden)
		}
	case UploadSubmissions:
	default:
		return nil, fmt.Errorf("unknown upload category %q: %w", category, models.ErrValidation)
	}
	sub := sanitizeName(subcategory)
	if sub == "" {
		sub = "general"
	}
	name := sanitizeName(filepath.Base(filename))
	if name == "" {
		return nil, fmt.Errorf("file name is required: %w", models.ErrValidation)
	}
	name = uuid.NewString()[:8] + "_" + name

	dir := filepath.Join(s.dir, category, sub)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	dst := filepath.Join(dir, name)
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create upload: %w", err)
	}
	n, err := io.Copy(out, io.LimitReader(body, MaxUploadBytes+1))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > MaxUploadBytes {
		err = fmt.Errorf("file exceeds %d MB: %w", MaxUploadBytes>>20, models.ErrValidation)
	}
	if err != nil {
		os.Remove(dst)
		if errors.Is(err, models.ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("write upload: %w", err)
	}
	slog.Info("file uploaded", "category", category, "subcategory", sub, "file", name, "bytes", n, "by", sess.UserID)
	return &UploadResult{
		Filename: name,
		URL:      s.baseURL + "/" + path.Join(category, sub, name),
		Size:     n,
	}, nil
}

// sanitizeName keeps letters, digits, dot, dash and underscore, and never
// returns a path element like "..".
func sanitizeName(name string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, strings.TrimSpace(name))
	clean = strings.TrimLeft(clean, ".")
	return clean
}
