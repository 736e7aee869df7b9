// Package database opens the identity database connection.
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/creativehub/backend/config"
	"github.com/creativehub/backend/internal/identity"
)

// New connects to the identity database and configures the pool.
func New(cfg *config.Config) (*gorm.DB, error) {
	log.Printf("[Database] connecting to %s:%s as %s", cfg.DBHost, cfg.DBPort, cfg.DBUser)

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	return db, nil
}

// Migrate brings the identity schema up to date.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&identity.Account{})
}
