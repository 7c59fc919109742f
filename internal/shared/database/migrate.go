package database

import (
	"fmt"

	"ticketly/internal/seats"

	"gorm.io/gorm"
)

// Migrate runs schema migrations for the postgres seat store
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&seats.Seat{}); err != nil {
		return fmt.Errorf("failed to migrate seats table: %w", err)
	}
	return nil
}
