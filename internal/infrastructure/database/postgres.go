package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/you/communitysvc/internal/infrastructure/repositories"
)

// Open creates a new database connection.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
}

// AutoMigrate creates or updates every table the service owns. The casbin
// policy table is created separately by the gorm adapter.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&repositories.DBUser{},
		&repositories.DBRole{},
		&repositories.DBUserRole{},
		&repositories.DBPermission{},
		&repositories.DBRefreshToken{},
		&repositories.DBPost{},
		&repositories.DBComment{},
		&repositories.DBCategory{},
		&repositories.DBCourse{},
		&repositories.DBLearningRecord{},
		&repositories.DBTool{},
		&repositories.DBCase{},
		&repositories.DBBanner{},
	); err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}
	return nil
}
