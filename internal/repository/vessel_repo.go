package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
)

type vesselRow struct {
	ID         string `gorm:"primaryKey;size:36"`
	Name       string `gorm:"not null;size:200"`
	IMO        string `gorm:"size:20;index"`
	VesselType string `gorm:"size:50"`
	Flag       string `gorm:"size:50"`
	Active     bool   `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (vesselRow) TableName() string { return "vessels" }

type VesselRepo struct {
	db *gorm.DB
}

func NewVesselRepo(db *gorm.DB) *VesselRepo {
	return &VesselRepo{db: db}
}

func (r *VesselRepo) Create(ctx context.Context, v *models.Vessel) (string, error) {
	row := vesselRow{
		ID:         v.ID,
		Name:       v.Name,
		IMO:        v.IMO,
		VesselType: v.VesselType,
		Flag:       v.Flag,
		Active:     v.Active,
	}
	if row.ID == "" {
		row.ID = newID()
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", err
	}
	v.CreatedAt, v.UpdatedAt = row.CreatedAt, row.UpdatedAt
	return row.ID, nil
}

func (r *VesselRepo) FindAll(ctx context.Context) ([]models.Vessel, error) {
	var rows []vesselRow
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	vessels := make([]models.Vessel, 0, len(rows))
	for i := range rows {
		vessels = append(vessels, *rowToVessel(&rows[i]))
	}
	return vessels, nil
}

func (r *VesselRepo) FindByID(ctx context.Context, id string) (*models.Vessel, error) {
	var row vesselRow
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rowToVessel(&row), nil
}

func rowToVessel(row *vesselRow) *models.Vessel {
	return &models.Vessel{
		ID:         row.ID,
		Name:       row.Name,
		IMO:        row.IMO,
		VesselType: row.VesselType,
		Flag:       row.Flag,
		Active:     row.Active,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

func (r *VesselRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&vesselRow{}).Count(&n).Error
	return n, err
}
