package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/janenicoldelacruz-web/lakson-inventory/models"
)

// AutoMigrate runs auto migration for all models in dependency order
func AutoMigrate(db *gorm.DB) error {
	for _, model := range models.AllModels() {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("auto migrate %T: %w", model, err)
		}
	}
	return nil
}
