package payment

import (
	"testing"

	"supplychain-backend/internal/domainerr"
	"supplychain-backend/internal/models"
	"supplychain-backend/internal/orders"
	"supplychain-backend/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func placeTestOrder(t *testing.T, db *gorm.DB) (*models.Order, *models.User, *models.User) {
	t.Helper()

	supplier := testutil.CreateUser(t, db, models.RoleSupplier, "supplier")
	manufacturer := testutil.CreateUser(t, db, models.RoleManufacturer, "manufacturer")
	material := testutil.CreateRawMaterial(t, db, supplier.ID, "Steel", 5.00, 1000)

	order, err := orders.PlaceOrder(db, orders.PlaceOrderInput{
		BuyerID:  manufacturer.ID,
		SellerID: supplier.ID,
		Items:    []orders.PlaceOrderItem{{ItemID: material.ID, Quantity: 10}},
	})
	require.NoError(t, err)
	return order, manufacturer, supplier
}

func TestRecordPaymentDefaultsToOrderTotal(t *testing.T) {
	db := testutil.OpenDB(t)
	order, buyer, _ := placeTestOrder(t, db)

	pay, err := RecordOrCreatePayment(db, RecordPaymentInput{
		OrderID:    order.ID,
		Status:     "pending",
		RecorderID: buyer.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, pay.Status)
	assert.True(t, pay.Amount.Equal(order.TotalAmount),
		"expected %s, got %s", order.TotalAmount, pay.Amount)
}

func TestRecordPaymentUpdatesNotInserts(t *testing.T) {
	db := testutil.OpenDB(t)
	order, buyer, seller := placeTestOrder(t, db)

	first, err := RecordOrCreatePayment(db, RecordPaymentInput{
		OrderID: order.ID, Status: "pending", RecorderID: buyer.ID,
	})
	require.NoError(t, err)

	second, err := RecordOrCreatePayment(db, RecordPaymentInput{
		OrderID: order.ID, Status: "paid", RecorderID: seller.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, models.PaymentStatusPaid, second.Status)

	var count int64
	require.NoError(t, db.Model(&models.Payment{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRecordPaymentAmountImmutable(t *testing.T) {
	db := testutil.OpenDB(t)
	order, buyer, _ := placeTestOrder(t, db)

	partial := decimal.NewFromInt(30)
	first, err := RecordOrCreatePayment(db, RecordPaymentInput{
		OrderID: order.ID, Amount: &partial, Status: "unpaid", RecorderID: buyer.ID,
	})
	require.NoError(t, err)
	assert.True(t, first.Amount.Equal(partial))

	// later status updates cannot rewrite the amount
	bigger := decimal.NewFromInt(999)
	second, err := RecordOrCreatePayment(db, RecordPaymentInput{
		OrderID: order.ID, Amount: &bigger, Status: "paid", RecorderID: buyer.ID,
	})
	require.NoError(t, err)
	assert.True(t, second.Amount.Equal(partial),
		"amount changed from %s to %s", partial, second.Amount)
}

func TestRecordPaymentRejectsUnknownStatus(t *testing.T) {
	db := testutil.OpenDB(t)
	order, buyer, _ := placeTestOrder(t, db)

	_, err := RecordOrCreatePayment(db, RecordPaymentInput{
		OrderID: order.ID, Status: "maybe", RecorderID: buyer.ID,
	})
	var de *domainerr.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domainerr.CodeInvalidStatus, de.Code)

	var count int64
	require.NoError(t, db.Model(&models.Payment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecordPaymentNormalizesSynonyms(t *testing.T) {
	db := testutil.OpenDB(t)
	order, buyer, _ := placeTestOrder(t, db)

	pay, err := RecordOrCreatePayment(db, RecordPaymentInput{
		OrderID: order.ID, Status: "Completed", RecorderID: buyer.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, pay.Status)
}

func TestPaidPaymentWritesSettlementRows(t *testing.T) {
	db := testutil.OpenDB(t)
	order, buyer, seller := placeTestOrder(t, db)

	_, err := RecordOrCreatePayment(db, RecordPaymentInput{
		OrderID: order.ID, Status: "paid", RecorderID: buyer.ID,
	})
	require.NoError(t, err)

	var sellerRevenue models.FinanceEntry
	require.NoError(t, db.Where("user_id = ? AND kind = ?", seller.ID, models.FinanceKindRevenue).
		First(&sellerRevenue).Error)
	require.NotNil(t, sellerRevenue.OrderID)
	assert.Equal(t, order.ID, *sellerRevenue.OrderID)
	assert.True(t, sellerRevenue.Amount.Equal(order.TotalAmount))

	var buyerExpense models.FinanceEntry
	require.NoError(t, db.Where("user_id = ? AND kind = ?", buyer.ID, models.FinanceKindExpense).
		First(&buyerExpense).Error)
	assert.True(t, buyerExpense.Amount.Equal(order.TotalAmount))

	// re-recording paid must not double-book the settlement
	_, err = RecordOrCreatePayment(db, RecordPaymentInput{
		OrderID: order.ID, Status: "paid", RecorderID: seller.ID,
	})
	require.NoError(t, err)

	var entryCount int64
	require.NoError(t, db.Model(&models.FinanceEntry{}).Count(&entryCount).Error)
	assert.EqualValues(t, 2, entryCount)
}

func TestPaymentVisibility(t *testing.T) {
	db := testutil.OpenDB(t)
	order, buyer, seller := placeTestOrder(t, db)
	stranger := testutil.CreateUser(t, db, models.RoleRetailer, "stranger")

	var de *domainerr.Error

	// a stranger cannot even create a payment against the order
	_, err := RecordOrCreatePayment(db, RecordPaymentInput{
		OrderID: order.ID, Status: "pending", RecorderID: stranger.ID,
	})
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domainerr.CodeNotFound, de.Code)

	_, err = RecordOrCreatePayment(db, RecordPaymentInput{
		OrderID: order.ID, Status: "pending", RecorderID: buyer.ID,
	})
	require.NoError(t, err)

	_, err = GetPayment(db, order.ID, seller.ID)
	require.NoError(t, err)

	_, err = GetPayment(db, order.ID, stranger.ID)
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domainerr.CodeNotFound, de.Code)
}
