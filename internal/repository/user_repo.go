package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
)

type userRow struct {
	ID           string `gorm:"primaryKey;size:36"`
	Email        string `gorm:"uniqueIndex;not null;size:200"`
	PasswordHash string `gorm:"not null"`
	Name         string `gorm:"not null;size:200"`
	Role         string `gorm:"not null;size:20;index"`
	ShipID       string `gorm:"size:36;index"`
	Active       bool   `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userRow) TableName() string { return "users" }

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) (string, error) {
	row := userToRow(user)
	if row.ID == "" {
		row.ID = newID()
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", err
	}
	user.CreatedAt, user.UpdatedAt = row.CreatedAt, row.UpdatedAt
	return row.ID, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var row userRow
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&row).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rowToUser(&row), nil
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	var row userRow
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rowToUser(&row), nil
}

// FindByIDs returns the users that exist among ids, in the order given.
func (r *UserRepo) FindByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []userRow
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]*userRow, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}
	users := make([]models.User, 0, len(rows))
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			users = append(users, *rowToUser(row))
			delete(byID, id)
		}
	}
	return users, nil
}

// Find lists users, optionally narrowed to a ship and a role.
func (r *UserRepo) Find(ctx context.Context, shipID string, role models.Role) ([]models.User, error) {
	q := r.db.WithContext(ctx).Order("name ASC")
	if shipID != "" {
		q = q.Where("ship_id = ?", shipID)
	}
	if role != "" {
		q = q.Where("role = ?", string(role))
	}
	var rows []userRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(rows))
	for i := range rows {
		users = append(users, *rowToUser(&rows[i]))
	}
	return users, nil
}

func userToRow(u *models.User) userRow {
	return userRow{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		Role:         string(u.Role),
		ShipID:       u.ShipID,
		Active:       u.Active,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func rowToUser(row *userRow) *models.User {
	return &models.User{
		ID:           row.ID,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Name:         row.Name,
		Role:         models.Role(row.Role),
		ShipID:       row.ShipID,
		Active:       row.Active,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
