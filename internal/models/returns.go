package models

import "time"

type ReturnStatus string

const (
	ReturnStatusPending  ReturnStatus = "pending"
	ReturnStatusApproved ReturnStatus = "approved"
	ReturnStatusRejected ReturnStatus = "rejected"
)

func (s ReturnStatus) IsValid() bool {
	switch s {
	case ReturnStatusPending, ReturnStatusApproved, ReturnStatusRejected:
		return true
	default:
		return false
	}
}

// Return: allowed only against a delivered order, by the buyer who placed it.
// Always starts pending; the seller decides approval.
type Return struct {
	ID         uint `gorm:"primaryKey"`
	OrderID    uint `gorm:"index;not null"`
	Order      Order
	ProductID  uint         `gorm:"index;not null"`
	Quantity   int          `gorm:"not null"`
	Reason     string       `gorm:"size:255"`
	Status     ReturnStatus `gorm:"size:20;not null;default:pending"`
	ReturnDate time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Rating: one per (order, rater), only once the order is delivered.
type Rating struct {
	ID        uint `gorm:"primaryKey"`
	OrderID   uint `gorm:"not null;uniqueIndex:idx_rating_order_rater"`
	Order     Order
	GivenBy   uint   `gorm:"not null;uniqueIndex:idx_rating_order_rater"`
	GivenTo   uint   `gorm:"index;not null"`
	Value     int    `gorm:"not null"` // 1..5
	Review    string `gorm:"size:500"`
	CreatedAt time.Time
}
