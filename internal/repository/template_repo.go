package repository

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
)

type templateRow struct {
	ID                string `gorm:"primaryKey;size:36"`
	Name              string `gorm:"not null;size:200"`
	Category          string `gorm:"not null;size:20;index"`
	Description       string `gorm:"type:text"`
	Fields            datatypes.JSONType[[]models.FieldSchema]
	ApprovalRequired  bool   `gorm:"not null"`
	ManualReferenceID string `gorm:"size:36"`
	Scheduled         string `gorm:"not null;size:20"`
	Role              string `gorm:"not null;size:20"`
	CreatedBy         string `gorm:"not null;size:36"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (templateRow) TableName() string { return "form_templates" }

type TemplateRepo struct {
	db *gorm.DB
}

func NewTemplateRepo(db *gorm.DB) *TemplateRepo {
	return &TemplateRepo{db: db}
}

func (r *TemplateRepo) Create(ctx context.Context, t *models.Template) (string, error) {
	row := templateToRow(t)
	row.ID = newID()
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", err
	}
	t.CreatedAt, t.UpdatedAt = row.CreatedAt, row.UpdatedAt
	return row.ID, nil
}

// Update overwrites the authored part of a template. Identity and audit
// fields (id, created_by, created_at) never change.
func (r *TemplateRepo) Update(ctx context.Context, id string, t *models.Template) error {
	res := r.db.WithContext(ctx).Model(&templateRow{}).Where("id = ?", id).Updates(map[string]any{
		"name":                t.Name,
		"category":            string(t.Category),
		"description":         t.Description,
		"fields":              datatypes.NewJSONType(t.Fields),
		"approval_required":   t.ApprovalRequired,
		"manual_reference_id": t.ManualReferenceID,
		"scheduled":           string(t.Scheduled),
		"role":                string(t.Role),
		"updated_at":          t.UpdatedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// FindAll lists templates, newest first, optionally of one category.
func (r *TemplateRepo) FindAll(ctx context.Context, category models.Category) ([]models.Template, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if category != "" {
		q = q.Where("category = ?", string(category))
	}
	var rows []templateRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rowsToTemplates(rows), nil
}

func (r *TemplateRepo) FindByID(ctx context.Context, id string) (*models.Template, error) {
	var row templateRow
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rowToTemplate(&row), nil
}

// FindByIDs returns the templates that exist among ids, in the order given.
func (r *TemplateRepo) FindByIDs(ctx context.Context, ids []string) ([]models.Template, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []templateRow
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]*templateRow, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}
	out := make([]models.Template, 0, len(rows))
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			out = append(out, *rowToTemplate(row))
			delete(byID, id)
		}
	}
	return out, nil
}

func (r *TemplateRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&templateRow{}).Count(&n).Error
	return n, err
}

func templateToRow(t *models.Template) templateRow {
	return templateRow{
		ID:                t.ID,
		Name:              t.Name,
		Category:          string(t.Category),
		Description:       t.Description,
		Fields:            datatypes.NewJSONType(t.Fields),
		ApprovalRequired:  t.ApprovalRequired,
		ManualReferenceID: t.ManualReferenceID,
		Scheduled:         string(t.Scheduled),
		Role:              string(t.Role),
		CreatedBy:         t.CreatedBy,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

func rowToTemplate(row *templateRow) *models.Template {
	fields := row.Fields.Data()
	if fields == nil {
		fields = []models.FieldSchema{}
	}
	return &models.Template{
		ID:                row.ID,
		Name:              row.Name,
		Category:          models.Category(row.Category),
		Description:       row.Description,
		Fields:            fields,
		ApprovalRequired:  row.ApprovalRequired,
		ManualReferenceID: row.ManualReferenceID,
		Scheduled:         models.Schedule(row.Scheduled),
		Role:              models.Role(row.Role),
		CreatedBy:         row.CreatedBy,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}

func rowsToTemplates(rows []templateRow) []models.Template {
	out := make([]models.Template, 0, len(rows))
	for i := range rows {
		out = append(out, *rowToTemplate(&rows[i]))
	}
	return out
}
