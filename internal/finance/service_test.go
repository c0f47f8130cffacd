package finance

import (
	"testing"
	"time"

	"supplychain-backend/internal/domainerr"
	"supplychain-backend/internal/models"
	"supplychain-backend/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createSystemEntry(t *testing.T, db *gorm.DB, userID, orderID uint) *models.FinanceEntry {
	t.Helper()

	entry := &models.FinanceEntry{
		UserID:  userID,
		Kind:    models.FinanceKindRevenue,
		Amount:  decimal.NewFromInt(100),
		OrderID: &orderID,
		Date:    time.Now(),
	}
	require.NoError(t, db.Create(entry).Error)
	return entry
}

func TestManualEntryLifecycle(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.CreateUser(t, db, models.RoleRetailer, "retailer")

	entry, err := AddManualEntry(db, user.ID, ManualEntryInput{
		Kind:     models.FinanceKindExpense,
		Amount:   decimal.NewFromInt(75),
		Category: "rent",
	})
	require.NoError(t, err)
	assert.False(t, entry.SystemGenerated())

	newAmount := decimal.NewFromInt(80)
	updated, err := UpdateManualEntry(db, user.ID, entry.ID, UpdateEntryInput{
		Amount: &newAmount,
	})
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(newAmount))

	require.NoError(t, DeleteManualEntry(db, user.ID, entry.ID))

	var count int64
	require.NoError(t, db.Model(&models.FinanceEntry{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestManualEntryValidation(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.CreateUser(t, db, models.RoleRetailer, "retailer")

	var de *domainerr.Error

	_, err := AddManualEntry(db, user.ID, ManualEntryInput{
		Kind:   models.FinanceKind("loan"),
		Amount: decimal.NewFromInt(10),
	})
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domainerr.CodeValidationFailed, de.Code)

	_, err = AddManualEntry(db, user.ID, ManualEntryInput{
		Kind:   models.FinanceKindExpense,
		Amount: decimal.Zero,
	})
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domainerr.CodeValidationFailed, de.Code)
}

func TestSystemEntriesAreImmutable(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.CreateUser(t, db, models.RoleSupplier, "supplier")
	entry := createSystemEntry(t, db, user.ID, 1)

	var de *domainerr.Error

	amount := decimal.NewFromInt(1)
	_, err := UpdateManualEntry(db, user.ID, entry.ID, UpdateEntryInput{Amount: &amount})
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domainerr.CodeImmutable, de.Code)

	err = DeleteManualEntry(db, user.ID, entry.ID)
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domainerr.CodeImmutable, de.Code)

	var stored models.FinanceEntry
	require.NoError(t, db.First(&stored, entry.ID).Error)
	assert.True(t, stored.Amount.Equal(decimal.NewFromInt(100)))
}

func TestEntriesAreOwnerScoped(t *testing.T) {
	db := testutil.OpenDB(t)
	owner := testutil.CreateUser(t, db, models.RoleRetailer, "owner")
	other := testutil.CreateUser(t, db, models.RoleRetailer, "other")

	entry, err := AddManualEntry(db, owner.ID, ManualEntryInput{
		Kind:   models.FinanceKindExpense,
		Amount: decimal.NewFromInt(20),
	})
	require.NoError(t, err)

	var de *domainerr.Error
	err = DeleteManualEntry(db, other.ID, entry.ID)
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domainerr.CodeNotFound, de.Code)

	entries, err := ListEntries(db, other.ID, "")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSummarize(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.CreateUser(t, db, models.RoleManufacturer, "manufacturer")

	_, err := AddManualEntry(db, user.ID, ManualEntryInput{
		Kind: models.FinanceKindExpense, Amount: decimal.NewFromInt(40),
	})
	require.NoError(t, err)
	_, err = AddManualEntry(db, user.ID, ManualEntryInput{
		Kind: models.FinanceKindRevenue, Amount: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	createSystemEntry(t, db, user.ID, 1) // revenue 100

	s, err := Summarize(db, user.ID)
	require.NoError(t, err)
	assert.True(t, s.TotalExpenses.Equal(decimal.NewFromInt(40)))
	assert.True(t, s.TotalRevenues.Equal(decimal.NewFromInt(200)))
	assert.True(t, s.Net.Equal(decimal.NewFromInt(160)))
}

func TestListEntriesKindFilter(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.CreateUser(t, db, models.RoleSupplier, "supplier")

	_, err := AddManualEntry(db, user.ID, ManualEntryInput{
		Kind: models.FinanceKindExpense, Amount: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	_, err = AddManualEntry(db, user.ID, ManualEntryInput{
		Kind: models.FinanceKindRevenue, Amount: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	expenses, err := ListEntries(db, user.ID, models.FinanceKindExpense)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, models.FinanceKindExpense, expenses[0].Kind)

	_, err = ListEntries(db, user.ID, models.FinanceKind("loan"))
	var de *domainerr.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domainerr.CodeValidationFailed, de.Code)
}
