package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ipremium/repairdesk-api/internal/config"
	"github.com/ipremium/repairdesk-api/internal/domain/entity"
)

func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Receipt{},
		&entity.ReceiptSequence{},
		&entity.IdempotencyKey{},
	)
}
