package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/repository"
)

type ManualService struct {
	manuals *repository.ManualRepo
}

func NewManualService(manuals *repository.ManualRepo) *ManualService {
	return &ManualService{manuals: manuals}
}

type ManualInput struct {
	Title       string            `json:"title" validate:"required"`
	ManualType  models.ManualType `json:"manual_type" validate:"required,oneof=FPM SMM CPM Other"`
	Version     string            `json:"version,omitempty"`
	FileURL     string            `json:"file_url" validate:"required"`
	Description string            `json:"description,omitempty"`
}

func (s *ManualService) Create(ctx context.Context, sess models.Session, in ManualInput) (*models.Manual, error) {
	if !sess.CanManageTemplates() {
		return nil, fmt.Errorf("staff or master access required: %w", models.ErrForbidden)
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.Version == "" {
		in.Version = "1.0"
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	m := &models.Manual{
		Title:       in.Title,
		ManualType:  in.ManualType,
		Version:     in.Version,
		FileURL:     in.FileURL,
		Description: in.Description,
		CreatedBy:   sess.UserID,
	}
	id, err := s.manuals.Create(ctx, m)
	if err != nil {
		return nil, err
	}
	m.ID = id
	return m, nil
}

func (s *ManualService) List(ctx context.Context, manualType models.ManualType) ([]models.Manual, error) {
	switch manualType {
	case "", models.ManualFPM, models.ManualSMM, models.ManualCPM, models.ManualOther:
	default:
		return nil, fmt.Errorf("unknown manual type %q: %w", manualType, models.ErrValidation)
	}
	return s.manuals.FindAll(ctx, manualType)
}
