package inventory

import (
	"fmt"
	"time"

	"supplychain-backend/internal/domainerr"
	"supplychain-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReceiveStockInput struct {
	OwnerID      uint
	ProductID    uint
	Quantity     int
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
	ReorderLevel int
}

// GetInventory returns all stock rows owned by the given party.
func GetInventory(db *gorm.DB, ownerID uint) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := db.Preload("Product").
		Where("owner_id = ?", ownerID).
		Order("product_id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ReceiveStock upserts the (owner, product) row and increases its quantity.
func ReceiveStock(db *gorm.DB, in ReceiveStockInput) (*models.InventoryItem, error) {
	if in.Quantity <= 0 {
		return nil, domainerr.ValidationFailed("Quantity must be greater than zero")
	}
	if in.CostPrice.IsNegative() || in.SellingPrice.IsNegative() {
		return nil, domainerr.ValidationFailed("Prices cannot be negative")
	}
	if in.ReorderLevel < 0 {
		return nil, domainerr.ValidationFailed("Reorder level cannot be negative")
	}

	var item models.InventoryItem
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("owner_id = ? AND product_id = ?", in.OwnerID, in.ProductID).
			First(&item).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			item = models.InventoryItem{
				OwnerID:           in.OwnerID,
				ProductID:         in.ProductID,
				QuantityAvailable: in.Quantity,
				ReorderLevel:      in.ReorderLevel,
				CostPrice:         in.CostPrice,
				SellingPrice:      in.SellingPrice,
				LastRestocked:     time.Now(),
			}
			return tx.Create(&item).Error
		case err != nil:
			return err
		}

		item.QuantityAvailable += in.Quantity
		// zero values mean "keep what the row already has"
		if in.ReorderLevel > 0 {
			item.ReorderLevel = in.ReorderLevel
		}
		if in.CostPrice.IsPositive() {
			item.CostPrice = in.CostPrice
		}
		if in.SellingPrice.IsPositive() {
			item.SellingPrice = in.SellingPrice
		}
		item.LastRestocked = time.Now()
		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// DecrementStock is the single choke point through which stock leaves a
// party's inventory. The guard lives in the UPDATE itself so two concurrent
// calls cannot both pass a stale sufficiency check.
func DecrementStock(db *gorm.DB, ownerID, productID uint, quantity int) error {
	if quantity <= 0 {
		return domainerr.ValidationFailed("Quantity must be greater than zero")
	}

	res := db.Model(&models.InventoryItem{}).
		Where("owner_id = ? AND product_id = ? AND quantity_available >= ?", ownerID, productID, quantity).
		Update("quantity_available", gorm.Expr("quantity_available - ?", quantity))
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		var count int64
		if err := db.Model(&models.InventoryItem{}).
			Where("owner_id = ? AND product_id = ?", ownerID, productID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerr.NotFound(fmt.Sprintf("No inventory row for product %d", productID))
		}
		return domainerr.InsufficientStock(fmt.Sprintf("Not enough stock for product %d", productID))
	}

	return nil
}

// LowStockItems lists rows at or below their reorder level. Pure read.
func LowStockItems(db *gorm.DB, ownerID uint) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := db.Preload("Product").
		Where("owner_id = ? AND quantity_available <= reorder_level", ownerID).
		Order("product_id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
