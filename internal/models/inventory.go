package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem: one stock row per (owner, product). The owner may be a
// manufacturer (finished goods), a warehouse or a retailer.
type InventoryItem struct {
	ID                uint `gorm:"primaryKey"`
	OwnerID           uint `gorm:"not null;uniqueIndex:idx_inventory_owner_product"`
	Owner             User
	ProductID         uint `gorm:"not null;uniqueIndex:idx_inventory_owner_product"`
	Product           Product
	QuantityAvailable int             `gorm:"not null;default:0"`
	ReorderLevel      int             `gorm:"not null;default:0"`
	CostPrice         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	SellingPrice      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	LastRestocked     time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
