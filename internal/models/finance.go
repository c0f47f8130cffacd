package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type FinanceKind string

const (
	FinanceKindExpense FinanceKind = "expense"
	FinanceKindRevenue FinanceKind = "revenue"
)

func (k FinanceKind) IsValid() bool {
	return k == FinanceKindExpense || k == FinanceKindRevenue
}

// FinanceEntry: an expense or revenue row. Rows with a non-nil OrderID are
// system-generated (written when a payment settles) and immutable; rows with
// a nil OrderID are manual and editable by their owner only.
type FinanceEntry struct {
	ID          uint `gorm:"primaryKey"`
	UserID      uint `gorm:"index;not null"`
	User        User
	Kind        FinanceKind     `gorm:"size:10;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Category    string          `gorm:"size:50"`
	OrderID     *uint           `gorm:"index"`
	Description string          `gorm:"size:255"`
	Date        time.Time       `gorm:"index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SystemGenerated reports whether the row was written by the engine itself.
func (e *FinanceEntry) SystemGenerated() bool {
	return e.OrderID != nil
}
