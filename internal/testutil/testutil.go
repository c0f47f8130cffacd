package testutil

import (
	"testing"

	"supplychain-backend/internal/database"
	"supplychain-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB returns an isolated in-memory database with the full schema.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return db
}

func CreateUser(t *testing.T, db *gorm.DB, role models.Role, name string) *models.User {
	t.Helper()

	user := &models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "x",
		Role:         role,
		Address:      "1 Test Street",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateRawMaterial(t *testing.T, db *gorm.DB, supplierID uint, name string, unitPrice float64, qty int) *models.RawMaterial {
	t.Helper()

	m := &models.RawMaterial{
		SupplierID:        supplierID,
		Name:              name,
		UnitPrice:         decimal.NewFromFloat(unitPrice),
		QuantityAvailable: qty,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

func CreateProduct(t *testing.T, db *gorm.DB, manufacturerID uint, name string, cost, selling float64) *models.Product {
	t.Helper()

	p := &models.Product{
		ManufacturerID:  manufacturerID,
		Name:            name,
		CostPrice:       decimal.NewFromFloat(cost),
		SellingPrice:    decimal.NewFromFloat(selling),
		ProductionStage: models.StageCompleted,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func CreateInventoryItem(t *testing.T, db *gorm.DB, ownerID, productID uint, qty, reorder int, cost, selling float64) *models.InventoryItem {
	t.Helper()

	item := &models.InventoryItem{
		OwnerID:           ownerID,
		ProductID:         productID,
		QuantityAvailable: qty,
		ReorderLevel:      reorder,
		CostPrice:         decimal.NewFromFloat(cost),
		SellingPrice:      decimal.NewFromFloat(selling),
	}
	require.NoError(t, db.Create(item).Error)
	return item
}
