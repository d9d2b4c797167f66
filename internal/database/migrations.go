package database

import (
	"gorm.io/gorm"
)

// createIndexes creates database indexes
func createIndexes(db *gorm.DB) error {
	// Index for history listing, newest first
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_queries_time
		ON queries(query_time)
	`).Error; err != nil {
		return err
	}

	// Index for per-case query lookups
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_queries_case
		ON queries(case_type, case_number, filing_year)
	`).Error; err != nil {
		return err
	}

	return nil
}
