package database

import (
	"log"

	"supplychain-backend/internal/config"
	"supplychain-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to the database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	log.Println("Database connected, migration complete.")
}

// Migrate creates/updates the schema. Shared with the test databases.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RawMaterial{},
		&models.Product{},
		&models.InventoryItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Shipment{},
		&models.Payment{},
		&models.Return{},
		&models.Rating{},
		&models.Sale{},
		&models.SaleItem{},
		&models.FinanceEntry{},
		&models.DomainEvent{},
	)
}
