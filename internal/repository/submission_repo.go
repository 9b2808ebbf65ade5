package repository

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
)

type submissionRow struct {
	ID              string `gorm:"primaryKey;size:36"`
	TemplateID      string `gorm:"not null;size:36;index"`
	TemplateName    string `gorm:"not null;size:200"`
	VesselID        string `gorm:"not null;size:36;index"`
	VesselName      string `gorm:"not null;size:200"`
	FilledData      datatypes.JSONMap
	Status          string `gorm:"not null;size:20;index"`
	AssignedTo      string `gorm:"size:36;index"`
	AssignedToName  string `gorm:"size:200"`
	AssignedBy      string `gorm:"size:36"`
	AssignedByName  string `gorm:"size:200"`
	AssignedAt      *time.Time
	SubmittedBy     string `gorm:"size:36"`
	SubmittedByName string `gorm:"size:200"`
	SubmittedAt     *time.Time
	ReviewedBy      string `gorm:"size:36"`
	ReviewedByName  string `gorm:"size:200"`
	ReviewedAt      *time.Time
	ApprovalNotes   string `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time `gorm:"index"`
}

func (submissionRow) TableName() string { return "form_submissions" }

type SubmissionRepo struct {
	db *gorm.DB
}

func NewSubmissionRepo(db *gorm.DB) *SubmissionRepo {
	return &SubmissionRepo{db: db}
}

// CreateBatch inserts all submissions in one transaction and fills in their
// ids and timestamps.
func (r *SubmissionRepo) CreateBatch(ctx context.Context, subs []models.Submission) error {
	if len(subs) == 0 {
		return nil
	}
	rows := make([]submissionRow, len(subs))
	for i := range subs {
		rows[i] = submissionToRow(&subs[i])
		rows[i].ID = newID()
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(rows, 100).Error
	})
	if err != nil {
		return err
	}
	for i := range subs {
		subs[i].ID = rows[i].ID
		subs[i].CreatedAt = rows[i].CreatedAt
		subs[i].UpdatedAt = rows[i].UpdatedAt
	}
	return nil
}

func (r *SubmissionRepo) FindByID(ctx context.Context, id string) (*models.Submission, error) {
	var row submissionRow
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rowToSubmission(&row), nil
}

// Find lists submissions matching every non-empty filter field, most
// recently updated first.
func (r *SubmissionRepo) Find(ctx context.Context, f models.SubmissionFilter) ([]models.Submission, error) {
	q := r.db.WithContext(ctx).Order("updated_at DESC")
	if f.VesselID != "" {
		q = q.Where("vessel_id = ?", f.VesselID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}
	if f.TemplateID != "" {
		q = q.Where("template_id = ?", f.TemplateID)
	}
	if f.AssignedTo != "" {
		q = q.Where("assigned_to = ?", f.AssignedTo)
	}
	var rows []submissionRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	subs := make([]models.Submission, 0, len(rows))
	for i := range rows {
		subs = append(subs, *rowToSubmission(&rows[i]))
	}
	return subs, nil
}

// Transition persists sub only if the stored row is still in status from.
// A concurrent change in between yields models.ErrConflict.
func (r *SubmissionRepo) Transition(ctx context.Context, sub *models.Submission, from models.Status) error {
	row := submissionToRow(sub)
	res := r.db.WithContext(ctx).Model(&submissionRow{}).
		Where("id = ? AND status = ?", sub.ID, string(from)).
		Select("*").Updates(&row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrConflict
	}
	return nil
}

// CountByStatus returns how many submissions sit in each status,
// optionally for one vessel.
func (r *SubmissionRepo) CountByStatus(ctx context.Context, vesselID string) (map[models.Status]int64, error) {
	type bucket struct {
		Status string
		N      int64
	}
	q := r.db.WithContext(ctx).Model(&submissionRow{}).Select("status, count(*) AS n").Group("status")
	if vesselID != "" {
		q = q.Where("vessel_id = ?", vesselID)
	}
	var buckets []bucket
	if err := q.Scan(&buckets).Error; err != nil {
		return nil, err
	}
	out := make(map[models.Status]int64, len(buckets))
	for _, b := range buckets {
		out[models.Status(b.Status)] = b.N
	}
	return out, nil
}

func submissionToRow(s *models.Submission) submissionRow {
	data := datatypes.JSONMap(s.FilledData)
	if data == nil {
		data = datatypes.JSONMap{}
	}
	return submissionRow{
		ID:              s.ID,
		TemplateID:      s.TemplateID,
		TemplateName:    s.TemplateName,
		VesselID:        s.VesselID,
		VesselName:      s.VesselName,
		FilledData:      data,
		Status:          string(s.Status),
		AssignedTo:      s.AssignedTo,
		AssignedToName:  s.AssignedToName,
		AssignedBy:      s.AssignedBy,
		AssignedByName:  s.AssignedByName,
		AssignedAt:      s.AssignedAt,
		SubmittedBy:     s.SubmittedBy,
		SubmittedByName: s.SubmittedByName,
		SubmittedAt:     s.SubmittedAt,
		ReviewedBy:      s.ReviewedBy,
		ReviewedByName:  s.ReviewedByName,
		ReviewedAt:      s.ReviewedAt,
		ApprovalNotes:   s.ApprovalNotes,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func rowToSubmission(row *submissionRow) *models.Submission {
	data := map[string]any(row.FilledData)
	if data == nil {
		data = map[string]any{}
	}
	return &models.Submission{
		ID:              row.ID,
		TemplateID:      row.TemplateID,
		TemplateName:    row.TemplateName,
		VesselID:        row.VesselID,
		VesselName:      row.VesselName,
		FilledData:      data,
		Status:          models.Status(row.Status),
		AssignedTo:      row.AssignedTo,
		AssignedToName:  row.AssignedToName,
		AssignedBy:      row.AssignedBy,
		AssignedByName:  row.AssignedByName,
		AssignedAt:      row.AssignedAt,
		SubmittedBy:     row.SubmittedBy,
		SubmittedByName: row.SubmittedByName,
		SubmittedAt:     row.SubmittedAt,
		ReviewedBy:      row.ReviewedBy,
		ReviewedByName:  row.ReviewedByName,
		ReviewedAt:      row.ReviewedAt,
		ApprovalNotes:   row.ApprovalNotes,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}
