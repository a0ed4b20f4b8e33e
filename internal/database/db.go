package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ymgta/jobdraft-api/internal/models"
)

// Connect opens the process-wide database handle. It is called once at
// startup; every service receives this handle by injection and no component
// re-creates it per request.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the schema for all entities. Shared with the
// test setup, which runs it against sqlite.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Industry{},
		&models.HearingItem{},
		&models.HearingSession{},
		&models.HearingResponse{},
		&models.JobTemplate{},
		&models.JobTemplateSection{},
		&models.JobDescription{},
		&models.JobDescriptionSection{},
		&models.AIProvider{},
	)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
