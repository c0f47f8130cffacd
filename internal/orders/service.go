package orders

import (
	"fmt"
	"time"

	"supplychain-backend/internal/domainerr"
	"supplychain-backend/internal/event"
	"supplychain-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UnknownItemLabel is used when an order item no longer resolves to a catalog
// record (the record was deleted, or the id crosses catalogs).
const UnknownItemLabel = "Unknown Item"

type PlaceOrderItem struct {
	ItemID    uint
	Quantity  int
	UnitPrice *decimal.Decimal // negotiated price; nil falls back to the catalog price
}

type PlaceOrderInput struct {
	BuyerID         uint
	SellerID        uint
	ShippingAddress string
	Items           []PlaceOrderItem
}

type OrderItemView struct {
	ID        uint
	ItemID    uint
	ItemName  string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

type OrderView struct {
	ID              uint
	OrderedBy       uint
	DeliveredBy     uint
	TotalAmount     decimal.Decimal
	Status          models.OrderStatus
	ShippingAddress string
	OrderDate       time.Time
	Items           []OrderItemView
}

// PlaceOrder validates the line items against the seller's catalog and writes
// the order header plus all items as one transaction. Nothing persists if any
// item is rejected.
func PlaceOrder(db *gorm.DB, in PlaceOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, domainerr.ValidationFailed("An order needs at least one item")
	}
	if in.BuyerID == in.SellerID {
		return nil, domainerr.ValidationFailed("Buyer and seller cannot be the same party")
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		var seller models.User
		if err := tx.First(&seller, in.SellerID).Error; err != nil {
			return domainerr.NotFound("Seller not found")
		}

		totalAmount := decimal.Zero
		items := make([]models.OrderItem, 0, len(in.Items))

		for _, it := range in.Items {
			if it.Quantity <= 0 {
				return domainerr.ValidationFailed("Item quantity must be greater than zero")
			}

			catalogPrice, err := sellerCatalogPrice(tx, &seller, it.ItemID)
			if err != nil {
				return err
			}

			// The persisted total is always recomputed server-side, but a
			// negotiated unit price may replace the catalog one per item.
			unitPrice := catalogPrice
			if it.UnitPrice != nil {
				if it.UnitPrice.IsNegative() {
					return domainerr.ValidationFailed("Item unit price cannot be negative")
				}
				unitPrice = *it.UnitPrice
			}

			subtotal := unitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
			totalAmount = totalAmount.Add(subtotal)

			items = append(items, models.OrderItem{
				ItemID:    it.ItemID,
				Quantity:  it.Quantity,
				UnitPrice: unitPrice,
			})
		}

		order = models.Order{
			OrderedBy:       in.BuyerID,
			DeliveredBy:     in.SellerID,
			TotalAmount:     totalAmount,
			Status:          models.OrderStatusPending,
			ShippingAddress: in.ShippingAddress,
			OrderDate:       time.Now(),
			Items:           items,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		return event.Record(tx, event.Options{
			ActorID:    in.BuyerID,
			EntityType: "order",
			EntityID:   order.ID,
			Action:     models.EventActionCreated,
			Detail:     fmt.Sprintf("Order placed with %d item(s), total %s", len(items), totalAmount),
			Payload:    order,
		})
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// sellerCatalogPrice resolves an item against the catalog the seller's role
// owns: raw materials for suppliers, products for manufacturers, stocked
// products for warehouses.
func sellerCatalogPrice(tx *gorm.DB, seller *models.User, itemID uint) (decimal.Decimal, error) {
	switch seller.Role {
	case models.RoleSupplier:
		var material models.RawMaterial
		if err := tx.Where("id = ? AND supplier_id = ?", itemID, seller.ID).First(&material).Error; err != nil {
			return decimal.Zero, domainerr.NotFound(fmt.Sprintf("Material %d is not in this supplier's catalog", itemID))
		}
		return material.UnitPrice, nil

	case models.RoleManufacturer:
		var product models.Product
		if err := tx.Where("id = ? AND manufacturer_id = ?", itemID, seller.ID).First(&product).Error; err != nil {
			return decimal.Zero, domainerr.NotFound(fmt.Sprintf("Product %d is not in this manufacturer's catalog", itemID))
		}
		return product.SellingPrice, nil

	case models.RoleWarehouse:
		var item models.InventoryItem
		if err := tx.Where("owner_id = ? AND product_id = ?", seller.ID, itemID).First(&item).Error; err != nil {
			return decimal.Zero, domainerr.NotFound(fmt.Sprintf("Product %d is not stocked by this warehouse", itemID))
		}
		return item.SellingPrice, nil

	default:
		return decimal.Zero, domainerr.ValidationFailed("This party does not sell anything")
	}
}

// AdvanceOrderStatus drives the order status state machine. The current
// status is re-read inside the transaction so the forward-only rule holds
// under concurrent requests.
func AdvanceOrderStatus(db *gorm.DB, orderID, callerID uint, target models.OrderStatus) (*models.Order, error) {
	if !target.IsValid() {
		return nil, domainerr.ValidationFailed(fmt.Sprintf("Unknown order status %q", target))
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&order, orderID).Error; err != nil {
			return domainerr.NotFound("Order not found")
		}

		switch callerID {
		case order.DeliveredBy:
			// seller advances forward, or cancels while still pending
		case order.OrderedBy:
			// the buyer may only withdraw an order the seller has not picked up
			if target != models.OrderStatusCancelled {
				return domainerr.Forbidden("Only the seller can change the order status")
			}
		default:
			return domainerr.NotFound("Order not found")
		}

		if !order.Status.CanTransitionTo(target) {
			return domainerr.InvalidTransition(
				fmt.Sprintf("Cannot move order from %s to %s", order.Status, target))
		}

		previous := order.Status
		order.Status = target
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		return event.Record(tx, event.Options{
			ActorID:    callerID,
			EntityType: "order",
			EntityID:   order.ID,
			Action:     models.EventActionStatusChanged,
			Detail:     fmt.Sprintf("Order status %s -> %s", previous, target),
			Payload:    order,
		})
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// ListOrders returns a party's orders newest-first, as buyer or as seller,
// with item names resolved against both catalogs.
func ListOrders(db *gorm.DB, userID uint, asSeller bool) ([]OrderView, error) {
	q := db.Preload("Items").Order("order_date desc, id desc")
	if asSeller {
		q = q.Where("delivered_by = ?", userID)
	} else {
		q = q.Where("ordered_by = ?", userID)
	}

	var ordersList []models.Order
	if err := q.Find(&ordersList).Error; err != nil {
		return nil, err
	}

	itemIDs := make([]uint, 0)
	for _, o := range ordersList {
		for _, it := range o.Items {
			itemIDs = append(itemIDs, it.ItemID)
		}
	}

	names, err := resolveItemNames(db, itemIDs)
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(ordersList))
	for _, o := range ordersList {
		itemViews := make([]OrderItemView, 0, len(o.Items))
		for _, it := range o.Items {
			name, ok := names[it.ItemID]
			if !ok {
				name = UnknownItemLabel
			}
			itemViews = append(itemViews, OrderItemView{
				ID:        it.ID,
				ItemID:    it.ItemID,
				ItemName:  name,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
				Subtotal:  it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))),
			})
		}
		views = append(views, OrderView{
			ID:              o.ID,
			OrderedBy:       o.OrderedBy,
			DeliveredBy:     o.DeliveredBy,
			TotalAmount:     o.TotalAmount,
			Status:          o.Status,
			ShippingAddress: o.ShippingAddress,
			OrderDate:       o.OrderDate,
			Items:           itemViews,
		})
	}

	return views, nil
}

// resolveItemNames joins order item ids against products first, then raw
// materials. Ids matching neither stay absent and render as UnknownItemLabel.
func resolveItemNames(db *gorm.DB, itemIDs []uint) (map[uint]string, error) {
	names := make(map[uint]string, len(itemIDs))
	if len(itemIDs) == 0 {
		return names, nil
	}

	var products []models.Product
	if err := db.Where("id IN ?", itemIDs).Find(&products).Error; err != nil {
		return nil, err
	}
	for _, p := range products {
		names[p.ID] = p.Name
	}

	var materials []models.RawMaterial
	if err := db.Where("id IN ?", itemIDs).Find(&materials).Error; err != nil {
		return nil, err
	}
	for _, m := range materials {
		if _, exists := names[m.ID]; !exists {
			names[m.ID] = m.Name
		}
	}

	return names, nil
}
