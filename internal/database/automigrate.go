package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"activity-service/internal/domain"
)

// modelInfo holds information about a domain model and its table name
type modelInfo struct {
	model     interface{}
	tableName string
}

func models() []modelInfo {
	return []modelInfo{
		{&domain.Student{}, "students"},
		{&domain.Activity{}, "activities"},
		{&domain.Participation{}, "participations"},
	}
}

// AutoMigrate creates the tables and indexes that are missing.
// Existing tables are left as they are; there is no versioned migration.
func AutoMigrate(db *gorm.DB, logger *zap.Logger) error {
	migrator := db.Migrator()

	for _, m := range models() {
		if migrator.HasTable(m.model) {
			logger.Debug("Table exists, skipping creation", zap.String("table", m.tableName))
			continue
		}

		if err := migrator.CreateTable(m.model); err != nil {
			logger.Error("Failed to create table",
				zap.String("table", m.tableName),
				zap.Error(err),
			)
			return fmt.Errorf("failed to create table %s: %w", m.tableName, err)
		}

		logger.Info("Created table", zap.String("table", m.tableName))
	}

	return nil
}
