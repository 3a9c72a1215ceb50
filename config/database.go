package config

import (
	"fmt"
	"log"

	"table-ordering-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB connects to the sqlite file at path and migrates all models.
// Pass ":memory:" for a throwaway database.
func OpenDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	// sqlite serializes writers; a single connection also keeps
	// in-memory databases from splitting across pool connections.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
	); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	log.Println("✅ Database connected and migrated successfully")
	return db, nil
}
