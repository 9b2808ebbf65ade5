package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/forms"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/repository"
)

type TemplateService struct {
	templates *repository.TemplateRepo
}

func NewTemplateService(templates *repository.TemplateRepo) *TemplateService {
	return &TemplateService{templates: templates}
}

func (s *TemplateService) Create(ctx context.Context, sess models.Session, in models.TemplateInput) (*models.Template, error) {
	if !sess.CanManageTemplates() {
		return nil, fmt.Errorf("staff or master access required: %w", models.ErrForbidden)
	}
	if err := prepareTemplate(&in); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	t := &models.Template{CreatedBy: sess.UserID, CreatedAt: now, UpdatedAt: now}
	applyInput(t, in)
	id, err := s.templates.Create(ctx, t)
	if err != nil {
		return nil, err
	}
	t.ID = id
	slog.Info("template created", "template_id", id, "category", t.Category, "fields", len(t.Fields), "by", sess.UserID)
	return t, nil
}

// Update replaces the authored content of an existing template in place.
func (s *TemplateService) Update(ctx context.Context, sess models.Session, id string, in models.TemplateInput) (*models.Template, error) {
	if !sess.CanManageTemplates() {
		return nil, fmt.Errorf("staff or master access required: %w", models.ErrForbidden)
	}
	if err := prepareTemplate(&in); err != nil {
		return nil, err
	}
	t, err := s.Get(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	applyInput(t, in)
	t.UpdatedAt = time.Now().UTC()
	if err := s.templates.Update(ctx, id, t); err != nil {
		return nil, fmt.Errorf("template %s: %w", id, err)
	}
	slog.Info("template updated", "template_id", id, "fields", len(t.Fields), "by", sess.UserID)
	return t, nil
}

func (s *TemplateService) List(ctx context.Context, sess models.Session, category models.Category) ([]models.Template, error) {
	if !sess.CanManageTemplates() {
		return nil, fmt.Errorf("staff or master access required: %w", models.ErrForbidden)
	}
	if category != "" && !validCategory(category) {
		return nil, fmt.Errorf("unknown category %q: %w", category, models.ErrValidation)
	}
	return s.templates.FindAll(ctx, category)
}

// Get is open to every role: crew need the template to render their forms.
func (s *TemplateService) Get(ctx context.Context, sess models.Session, id string) (*models.Template, error) {
	t, err := s.templates.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("template: %w", models.ErrNotFound)
	}
	return t, nil
}

func prepareTemplate(in *models.TemplateInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Scheduled == "" {
		in.Scheduled = models.ScheduleWeekly
	}
	if in.Role == "" {
		in.Role = models.RoleCrew
	}
	if in.Fields == nil {
		in.Fields = []models.FieldSchema{}
	}
	if err := validateStruct(*in); err != nil {
		return err
	}
	if err := forms.CheckSchema(in.Fields); err != nil {
		return err
	}
	in.Fields = forms.Normalize(in.Fields)
	return nil
}

func applyInput(t *models.Template, in models.TemplateInput) {
	t.Name = in.Name
	t.Category = in.Category
	t.Description = in.Description
	t.Fields = in.Fields
	t.ApprovalRequired = in.ApprovalRequired
	t.ManualReferenceID = in.ManualReferenceID
	t.Scheduled = in.Scheduled
	t.Role = in.Role
}

func validCategory(c models.Category) bool {
	for _, known := range models.Categories {
		if c == known {
			return true
		}
	}
	return false
}
