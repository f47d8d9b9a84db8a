package repository

import (
	"loanportal/internal/domain"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the four portal tables. Run by the API
// on startup and by the seed command before inserting fixtures.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&profileModel{},
		&domain.Loan{},
		&domain.Product{},
	)
}
