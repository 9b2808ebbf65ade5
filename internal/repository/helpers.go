package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Migrate creates or updates every table the repositories use.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userRow{},
		&vesselRow{},
		&manualRow{},
		&templateRow{},
		&submissionRow{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func newID() string {
	return uuid.NewString()
}

// notFound reports whether err is gorm's missing-row error. Repositories
// translate that case into a nil result so services decide what it means.
func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
