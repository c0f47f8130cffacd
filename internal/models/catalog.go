package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawMaterial: supplier catalog record. Owned by exactly one supplier and
// mutated only by that supplier.
type RawMaterial struct {
	ID                uint `gorm:"primaryKey"`
	SupplierID        uint `gorm:"index;not null"`
	Supplier          User
	Name              string          `gorm:"size:100;not null"`
	Description       string          `gorm:"size:255"`
	UnitPrice         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	QuantityAvailable int             `gorm:"not null;default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type ProductionStage string

const (
	StagePlanning     ProductionStage = "planning"
	StageProduction   ProductionStage = "production"
	StageQualityCheck ProductionStage = "quality_check"
	StageCompleted    ProductionStage = "completed"
)

func (s ProductionStage) IsValid() bool {
	switch s {
	case StagePlanning, StageProduction, StageQualityCheck, StageCompleted:
		return true
	default:
		return false
	}
}

// Product: manufacturer catalog record. ProductionStage normally moves
// forward but the entity does not enforce forward-only moves.
type Product struct {
	ID              uint `gorm:"primaryKey"`
	ManufacturerID  uint `gorm:"index;not null"`
	Manufacturer    User
	Name            string          `gorm:"size:100;not null"`
	Category        string          `gorm:"size:50"`
	Size            string          `gorm:"size:20"`
	Color           string          `gorm:"size:30"`
	CostPrice       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	SellingPrice    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	ProductionStage ProductionStage `gorm:"size:20;not null;default:planning"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
