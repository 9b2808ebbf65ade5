package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
)

type manualRow struct {
	ID          string `gorm:"primaryKey;size:36"`
	Title       string `gorm:"not null;size:300"`
	ManualType  string `gorm:"not null;size:20;index"`
	Version     string `gorm:"not null;size:50"`
	FileURL     string `gorm:"not null;size:1000"`
	Description string `gorm:"type:text"`
	CreatedBy   string `gorm:"not null;size:36"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (manualRow) TableName() string { return "manuals" }

type ManualRepo struct {
	db *gorm.DB
}

func NewManualRepo(db *gorm.DB) *ManualRepo {
	return &ManualRepo{db: db}
}

func (r *ManualRepo) Create(ctx context.Context, m *models.Manual) (string, error) {
	row := manualRow{
		ID:          newID(),
		Title:       m.Title,
		ManualType:  string(m.ManualType),
		Version:     m.Version,
		FileURL:     m.FileURL,
		Description: m.Description,
		CreatedBy:   m.CreatedBy,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", err
	}
	m.CreatedAt, m.UpdatedAt = row.CreatedAt, row.UpdatedAt
	return row.ID, nil
}

// FindAll lists manuals, newest first, optionally of one type.
func (r *ManualRepo) FindAll(ctx context.Context, manualType models.ManualType) ([]models.Manual, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if manualType != "" {
		q = q.Where("manual_type = ?", string(manualType))
	}
	var rows []manualRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	manuals := make([]models.Manual, 0, len(rows))
	for _, row := range rows {
		manuals = append(manuals, models.Manual{
			ID:          row.ID,
			Title:       row.Title,
			ManualType:  models.ManualType(row.ManualType),
			Version:     row.Version,
			FileURL:     row.FileURL,
			Description: row.Description,
			CreatedBy:   row.CreatedBy,
			CreatedAt:   row.CreatedAt,
			UpdatedAt:   row.UpdatedAt,
		})
	}
	return manuals, nil
}

func (r *ManualRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&manualRow{}).Count(&n).Error
	return n, err
}
