package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/repository"
)

type VesselService struct {
	vessels *repository.VesselRepo
	users   *repository.UserRepo
}

func NewVesselService(vessels *repository.VesselRepo, users *repository.UserRepo) *VesselService {
	return &VesselService{vessels: vessels, users: users}
}

type VesselInput struct {
	Name       string `json:"name" validate:"required"`
	IMO        string `json:"imo,omitempty"`
	VesselType string `json:"vessel_type,omitempty"`
	Flag       string `json:"flag,omitempty"`
}

func (s *VesselService) Create(ctx context.Context, sess models.Session, in VesselInput) (*models.Vessel, error) {
	if !sess.IsStaff() {
		return nil, fmt.Errorf("staff access required: %w", models.ErrForbidden)
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	v := &models.Vessel{
		Name:       in.Name,
		IMO:        in.IMO,
		VesselType: in.VesselType,
		Flag:       in.Flag,
		Active:     true,
	}
	id, err := s.vessels.Create(ctx, v)
	if err != nil {
		return nil, err
	}
	v.ID = id
	return v, nil
}

func (s *VesselService) List(ctx context.Context) ([]models.Vessel, error) {
	return s.vessels.FindAll(ctx)
}

func (s *VesselService) Get(ctx context.Context, id string) (*models.Vessel, error) {
	v, err := s.vessels.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, fmt.Errorf("vessel: %w", models.ErrNotFound)
	}
	return v, nil
}

// Crew returns the active crew-role users currently on the vessel.
func (s *VesselService) Crew(ctx context.Context, vesselID string) ([]models.User, error) {
	users, err := s.users.Find(ctx, vesselID, models.RoleCrew)
	if err != nil {
		return nil, err
	}
	return activeOnly(users), nil
}

func activeOnly(users []models.User) []models.User {
	out := users[:0]
	for _, u := range users {
		if u.Active {
			out = append(out, u)
		}
	}
	return out
}
