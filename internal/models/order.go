package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo: strictly forward through pending → processing → shipped →
// delivered. Cancelled is an escape state reachable only from pending.
// Delivered and cancelled are terminal.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusProcessing || target == OrderStatusCancelled
	case OrderStatusProcessing:
		return target == OrderStatusShipped
	case OrderStatusShipped:
		return target == OrderStatusDelivered
	default: // delivered, cancelled
		return false
	}
}

// Order: one buyer → seller edge. The same schema carries material purchases
// (manufacturer buys from a supplier) and goods purchases (retailer buys from
// a warehouse).
type Order struct {
	ID              uint `gorm:"primaryKey"`
	OrderedBy       uint `gorm:"index;not null"` // buyer
	Buyer           User `gorm:"foreignKey:OrderedBy"`
	DeliveredBy     uint `gorm:"index;not null"` // seller
	Seller          User `gorm:"foreignKey:DeliveredBy"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Status          OrderStatus     `gorm:"size:20;not null;default:pending"`
	ShippingAddress string          `gorm:"size:255"`
	OrderDate       time.Time       `gorm:"index;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem: immutable once the order is created. ItemID points into the
// seller's catalog (raw material, product or warehouse stock row product).
type OrderItem struct {
	ID        uint `gorm:"primaryKey"`
	OrderID   uint `gorm:"index;not null"`
	ItemID    uint `gorm:"index;not null"`
	Quantity  int  `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
