package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusUnpaid, PaymentStatusFailed:
		return true
	default:
		return false
	}
}

func (s PaymentStatus) String() string {
	return string(s)
}

// ParsePaymentStatus normalizes a caller-supplied status string into the
// closed vocabulary. Common synonyms are mapped; anything else is rejected
// (ok = false) rather than stored verbatim.
func ParsePaymentStatus(raw string) (PaymentStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending", "processing", "awaiting":
		return PaymentStatusPending, true
	case "paid", "completed", "complete", "success", "done":
		return PaymentStatusPaid, true
	case "unpaid", "partial", "due", "owed":
		return PaymentStatusUnpaid, true
	case "failed", "cancelled", "canceled", "declined", "error":
		return PaymentStatusFailed, true
	default:
		return "", false
	}
}

// Payment: at most one per order, enforced by the unique index on OrderID.
// Amount is immutable after creation.
type Payment struct {
	ID          uint `gorm:"primaryKey"`
	OrderID     uint `gorm:"uniqueIndex;not null"`
	Order       Order
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Status      PaymentStatus   `gorm:"size:20;not null;default:pending"`
	PaymentDate time.Time
	RecordedBy  uint `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
