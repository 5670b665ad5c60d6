package postgres

import (
	"github.com/SAP-F-2025/form-builder-service/internal/models"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the form tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Form{}, &models.FormQuestion{})
}
