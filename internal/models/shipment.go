package models

import "time"

type ShipmentStatus string

const (
	ShipmentStatusPreparing ShipmentStatus = "preparing"
	ShipmentStatusInTransit ShipmentStatus = "in_transit"
	ShipmentStatusDelivered ShipmentStatus = "delivered"
	ShipmentStatusDelayed   ShipmentStatus = "delayed"
	ShipmentStatusReturned  ShipmentStatus = "returned"
)

func (s ShipmentStatus) IsValid() bool {
	switch s {
	case ShipmentStatusPreparing, ShipmentStatusInTransit, ShipmentStatusDelivered,
		ShipmentStatusDelayed, ShipmentStatusReturned:
		return true
	default:
		return false
	}
}

func (s ShipmentStatus) String() string {
	return string(s)
}

// CanTransitionTo: every status can move to every other one, except that
// delivered is terminal.
func (s ShipmentStatus) CanTransitionTo(target ShipmentStatus) bool {
	if s == ShipmentStatusDelivered {
		return false
	}
	return target.IsValid() && target != s
}

// Shipment: one-directional manufacturer → warehouse transfer, independent
// of any order. Marking it delivered credits the warehouse inventory.
type Shipment struct {
	ID                   uint `gorm:"primaryKey"`
	ManufacturerID       uint `gorm:"index;not null"`
	Manufacturer         User `gorm:"foreignKey:ManufacturerID"`
	WarehouseID          uint `gorm:"index;not null"`
	Warehouse            User `gorm:"foreignKey:WarehouseID"`
	ProductID            uint `gorm:"index;not null"`
	Product              Product
	Quantity             int            `gorm:"not null"`
	ShippingAddress      string         `gorm:"size:255"`
	Status               ShipmentStatus `gorm:"size:20;not null;default:preparing"`
	ExpectedDeliveryDate time.Time
	ActualDeliveryDate   *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
