package shipment

import (
	"fmt"
	"time"

	"supplychain-backend/internal/domainerr"
	"supplychain-backend/internal/event"
	"supplychain-backend/internal/inventory"
	"supplychain-backend/internal/models"

	"gorm.io/gorm"
)

type CreateShipmentInput struct {
	ManufacturerID       uint
	WarehouseID          uint
	ProductID            uint
	Quantity             int
	ShippingAddress      string
	ExpectedDeliveryDate time.Time
}

// CreateShipment opens a manufacturer → warehouse transfer in the preparing
// state.
func CreateShipment(db *gorm.DB, in CreateShipmentInput) (*models.Shipment, error) {
	if in.Quantity <= 0 {
		return nil, domainerr.ValidationFailed("Quantity must be greater than zero")
	}

	var sh models.Shipment
	err := db.Transaction(func(tx *gorm.DB) error {
		var warehouse models.User
		if err := tx.First(&warehouse, in.WarehouseID).Error; err != nil {
			return domainerr.NotFound("Warehouse not found")
		}
		if warehouse.Role != models.RoleWarehouse {
			return domainerr.ValidationFailed("Shipment target must be a warehouse")
		}

		var product models.Product
		if err := tx.Where("id = ? AND manufacturer_id = ?", in.ProductID, in.ManufacturerID).
			First(&product).Error; err != nil {
			return domainerr.NotFound("Product is not in this manufacturer's catalog")
		}

		sh = models.Shipment{
			ManufacturerID:       in.ManufacturerID,
			WarehouseID:          in.WarehouseID,
			ProductID:            in.ProductID,
			Quantity:             in.Quantity,
			ShippingAddress:      in.ShippingAddress,
			Status:               models.ShipmentStatusPreparing,
			ExpectedDeliveryDate: in.ExpectedDeliveryDate,
		}
		if err := tx.Create(&sh).Error; err != nil {
			return err
		}

		return event.Record(tx, event.Options{
			ActorID:    in.ManufacturerID,
			EntityType: "shipment",
			EntityID:   sh.ID,
			Action:     models.EventActionCreated,
			Detail:     fmt.Sprintf("Shipment of %d x product %d to warehouse %d", in.Quantity, in.ProductID, in.WarehouseID),
			Payload:    sh,
		})
	})
	if err != nil {
		return nil, err
	}

	return &sh, nil
}

// AdvanceShipmentStatus moves the shipment state machine. Transitioning into
// delivered credits the warehouse inventory in the same transaction, so a
// crash can never leave a delivered shipment without its stock credit.
// Re-submitting delivered for an already-delivered shipment is a no-op, never
// a double credit.
func AdvanceShipmentStatus(db *gorm.DB, shipmentID, callerID uint, target models.ShipmentStatus) (*models.Shipment, error) {
	if !target.IsValid() {
		return nil, domainerr.ValidationFailed(fmt.Sprintf("Unknown shipment status %q", target))
	}

	var sh models.Shipment
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Product").First(&sh, shipmentID).Error; err != nil {
			return domainerr.NotFound("Shipment not found")
		}

		if callerID != sh.ManufacturerID && callerID != sh.WarehouseID {
			return domainerr.NotFound("Shipment not found")
		}

		// idempotency guard for repeated delivery confirmations
		if sh.Status == models.ShipmentStatusDelivered && target == models.ShipmentStatusDelivered {
			return nil
		}

		if !sh.Status.CanTransitionTo(target) {
			return domainerr.InvalidTransition(
				fmt.Sprintf("Cannot move shipment from %s to %s", sh.Status, target))
		}

		previous := sh.Status
		sh.Status = target

		if target == models.ShipmentStatusDelivered {
			now := time.Now()
			sh.ActualDeliveryDate = &now

			if _, err := inventory.ReceiveStock(tx, inventory.ReceiveStockInput{
				OwnerID:      sh.WarehouseID,
				ProductID:    sh.ProductID,
				Quantity:     sh.Quantity,
				CostPrice:    sh.Product.CostPrice,
				SellingPrice: sh.Product.SellingPrice,
			}); err != nil {
				return err
			}
		}

		if err := tx.Save(&sh).Error; err != nil {
			return err
		}

		return event.Record(tx, event.Options{
			ActorID:    callerID,
			EntityType: "shipment",
			EntityID:   sh.ID,
			Action:     models.EventActionStatusChanged,
			Detail:     fmt.Sprintf("Shipment status %s -> %s", previous, target),
			Payload:    sh,
		})
	})
	if err != nil {
		return nil, err
	}

	return &sh, nil
}

// ListShipments returns the shipments a party is on either end of,
// newest-first.
func ListShipments(db *gorm.DB, userID uint) ([]models.Shipment, error) {
	var shipments []models.Shipment
	if err := db.Preload("Product").
		Where("manufacturer_id = ? OR warehouse_id = ?", userID, userID).
		Order("created_at desc").
		Find(&shipments).Error; err != nil {
		return nil, err
	}
	return shipments, nil
}
