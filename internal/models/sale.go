package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale: a retailer's direct-to-consumer sale, independent of any order.
// Each item decrements the retailer's own inventory row.
type Sale struct {
	ID          uint `gorm:"primaryKey"`
	RetailerID  uint `gorm:"index;not null"`
	Retailer    User `gorm:"foreignKey:RetailerID"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Note        string          `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

type SaleItem struct {
	ID         uint `gorm:"primaryKey"`
	SaleID     uint `gorm:"index;not null"`
	ProductID  uint `gorm:"index;not null"`
	Quantity   int  `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
