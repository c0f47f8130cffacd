package finance

import (
	"time"

	"supplychain-backend/internal/domainerr"
	"supplychain-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ManualEntryInput struct {
	Kind        models.FinanceKind
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        time.Time
}

// AddManualEntry creates a user-entered expense or revenue row (OrderID nil,
// freely editable by its owner).
func AddManualEntry(db *gorm.DB, userID uint, in ManualEntryInput) (*models.FinanceEntry, error) {
	if !in.Kind.IsValid() {
		return nil, domainerr.ValidationFailed("Kind must be 'expense' or 'revenue'")
	}
	if !in.Amount.IsPositive() {
		return nil, domainerr.ValidationFailed("Amount must be greater than zero")
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}

	entry := models.FinanceEntry{
		UserID:      userID,
		Kind:        in.Kind,
		Amount:      in.Amount,
		Category:    in.Category,
		Description: in.Description,
		Date:        in.Date,
	}
	if err := db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

type UpdateEntryInput struct {
	Amount      *decimal.Decimal
	Category    *string
	Description *string
	Date        *time.Time
}

// UpdateManualEntry edits a manual row. System-generated rows (those tied to
// an order) are immutable.
func UpdateManualEntry(db *gorm.DB, userID, entryID uint, in UpdateEntryInput) (*models.FinanceEntry, error) {
	var entry models.FinanceEntry
	if err := db.Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error; err != nil {
		return nil, domainerr.NotFound("Entry not found")
	}
	if entry.SystemGenerated() {
		return nil, domainerr.Immutable("System-generated entries cannot be edited")
	}

	if in.Amount != nil {
		if !in.Amount.IsPositive() {
			return nil, domainerr.ValidationFailed("Amount must be greater than zero")
		}
		entry.Amount = *in.Amount
	}
	if in.Category != nil {
		entry.Category = *in.Category
	}
	if in.Description != nil {
		entry.Description = *in.Description
	}
	if in.Date != nil {
		entry.Date = *in.Date
	}

	if err := db.Save(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteManualEntry removes a manual row; system rows are immutable.
func DeleteManualEntry(db *gorm.DB, userID, entryID uint) error {
	var entry models.FinanceEntry
	if err := db.Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error; err != nil {
		return domainerr.NotFound("Entry not found")
	}
	if entry.SystemGenerated() {
		return domainerr.Immutable("System-generated entries cannot be deleted")
	}
	return db.Delete(&entry).Error
}

// ListEntries returns a user's entries newest-first, optionally filtered by
// kind.
func ListEntries(db *gorm.DB, userID uint, kind models.FinanceKind) ([]models.FinanceEntry, error) {
	q := db.Where("user_id = ?", userID).Order("date desc, id desc")
	if kind != "" {
		if !kind.IsValid() {
			return nil, domainerr.ValidationFailed("Kind must be 'expense' or 'revenue'")
		}
		q = q.Where("kind = ?", kind)
	}

	var entries []models.FinanceEntry
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

type Summary struct {
	TotalExpenses decimal.Decimal
	TotalRevenues decimal.Decimal
	Net           decimal.Decimal
}

// Summarize totals a user's expenses and revenues.
func Summarize(db *gorm.DB, userID uint) (*Summary, error) {
	entries, err := ListEntries(db, userID, "")
	if err != nil {
		return nil, err
	}

	s := Summary{TotalExpenses: decimal.Zero, TotalRevenues: decimal.Zero}
	for _, e := range entries {
		if e.Kind == models.FinanceKindExpense {
			s.TotalExpenses = s.TotalExpenses.Add(e.Amount)
		} else {
			s.TotalRevenues = s.TotalRevenues.Add(e.Amount)
		}
	}
	s.Net = s.TotalRevenues.Sub(s.TotalExpenses)
	return &s, nil
}

// RecordOrderSettlement writes the immutable system rows for a settled
// order payment: revenue for the seller, expense for the buyer. Runs on the
// caller's transaction.
func RecordOrderSettlement(tx *gorm.DB, order *models.Order, amount decimal.Decimal) error {
	now := time.Now()
	orderID := order.ID

	rows := []models.FinanceEntry{
		{
			UserID:      order.DeliveredBy,
			Kind:        models.FinanceKindRevenue,
			Amount:      amount,
			Category:    "order",
			OrderID:     &orderID,
			Description: "Payment received for order",
			Date:        now,
		},
		{
			UserID:      order.OrderedBy,
			Kind:        models.FinanceKindExpense,
			Amount:      amount,
			Category:    "order",
			OrderID:     &orderID,
			Description: "Payment made for order",
			Date:        now,
		},
	}
	return tx.Create(&rows).Error
}
