package sales

import (
	"fmt"

	"supplychain-backend/internal/domainerr"
	"supplychain-backend/internal/event"
	"supplychain-backend/internal/inventory"
	"supplychain-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleItemInput struct {
	ProductID uint
	Quantity  int
	UnitPrice *decimal.Decimal // nil falls back to the retailer's selling price
}

// RecordSale logs a direct-to-consumer sale, decrementing the retailer's own
// inventory for every item. If any single item lacks stock the whole sale is
// rolled back and inventory is left untouched.
func RecordSale(db *gorm.DB, retailerID uint, items []SaleItemInput, note string) (*models.Sale, error) {
	if len(items) == 0 {
		return nil, domainerr.ValidationFailed("A sale needs at least one item")
	}

	var sale models.Sale
	err := db.Transaction(func(tx *gorm.DB) error {
		totalAmount := decimal.Zero
		saleItems := make([]models.SaleItem, 0, len(items))

		for _, it := range items {
			if it.Quantity <= 0 {
				return domainerr.ValidationFailed("Item quantity must be greater than zero")
			}

			var row models.InventoryItem
			if err := tx.Where("owner_id = ? AND product_id = ?", retailerID, it.ProductID).
				First(&row).Error; err != nil {
				return domainerr.NotFound(fmt.Sprintf("No inventory row for product %d", it.ProductID))
			}

			unitPrice := row.SellingPrice
			if it.UnitPrice != nil {
				if it.UnitPrice.IsNegative() {
					return domainerr.ValidationFailed("Item price cannot be negative")
				}
				unitPrice = *it.UnitPrice
			}

			if err := inventory.DecrementStock(tx, retailerID, it.ProductID, it.Quantity); err != nil {
				return err
			}

			totalPrice := unitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
			totalAmount = totalAmount.Add(totalPrice)

			saleItems = append(saleItems, models.SaleItem{
				ProductID:  it.ProductID,
				Quantity:   it.Quantity,
				UnitPrice:  unitPrice,
				TotalPrice: totalPrice,
			})
		}

		sale = models.Sale{
			RetailerID:  retailerID,
			TotalAmount: totalAmount,
			Note:        note,
			Items:       saleItems,
		}
		if err := tx.Create(&sale).Error; err != nil {
			return err
		}

		return event.Record(tx, event.Options{
			ActorID:    retailerID,
			EntityType: "sale",
			EntityID:   sale.ID,
			Action:     models.EventActionRecorded,
			Detail:     fmt.Sprintf("Sale of %d item(s), total %s", len(saleItems), totalAmount),
			Payload:    sale,
		})
	})
	if err != nil {
		return nil, err
	}

	return &sale, nil
}

// ListSales returns a retailer's sales newest-first.
func ListSales(db *gorm.DB, retailerID uint) ([]models.Sale, error) {
	var salesList []models.Sale
	if err := db.Preload("Items").
		Where("retailer_id = ?", retailerID).
		Order("created_at desc").
		Find(&salesList).Error; err != nil {
		return nil, err
	}
	return salesList, nil
}
