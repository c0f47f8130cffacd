package payment

import (
	"fmt"
	"time"

	"supplychain-backend/internal/domainerr"
	"supplychain-backend/internal/event"
	"supplychain-backend/internal/finance"
	"supplychain-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RecordPaymentInput struct {
	OrderID    uint
	Amount     *decimal.Decimal // nil defaults to the order total on creation
	Status     string           // raw caller input, normalized here
	RecorderID uint
}

// RecordOrCreatePayment creates the order's payment if none exists, otherwise
// updates its status. Amount is fixed at creation; the unique index on
// order_id keeps the order↔payment relation 1:1 even under races.
func RecordOrCreatePayment(db *gorm.DB, in RecordPaymentInput) (*models.Payment, error) {
	status, ok := models.ParsePaymentStatus(in.Status)
	if !ok {
		return nil, domainerr.InvalidStatus(fmt.Sprintf("Unknown payment status %q", in.Status))
	}

	var pay models.Payment
	err := db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, in.OrderID).Error; err != nil {
			return domainerr.NotFound("Order not found")
		}

		if in.RecorderID != order.OrderedBy && in.RecorderID != order.DeliveredBy {
			return domainerr.NotFound("Order not found")
		}

		err := tx.Where("order_id = ?", in.OrderID).First(&pay).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			amount := order.TotalAmount
			if in.Amount != nil {
				if in.Amount.IsNegative() {
					return domainerr.ValidationFailed("Amount cannot be negative")
				}
				amount = *in.Amount
			}

			pay = models.Payment{
				OrderID:     in.OrderID,
				Amount:      amount,
				Status:      status,
				PaymentDate: time.Now(),
				RecordedBy:  in.RecorderID,
			}
			if err := tx.Create(&pay).Error; err != nil {
				// a concurrent creator won the unique index race
				return domainerr.AlreadyExists("A payment already exists for this order")
			}

			if status == models.PaymentStatusPaid {
				if err := finance.RecordOrderSettlement(tx, &order, pay.Amount); err != nil {
					return err
				}
			}

		case err != nil:
			return err

		default:
			// existing payment: status is the only mutable field
			wasPaid := pay.Status == models.PaymentStatusPaid
			pay.Status = status
			pay.RecordedBy = in.RecorderID
			if err := tx.Save(&pay).Error; err != nil {
				return err
			}

			if status == models.PaymentStatusPaid && !wasPaid {
				if err := finance.RecordOrderSettlement(tx, &order, pay.Amount); err != nil {
					return err
				}
			}
		}

		return event.Record(tx, event.Options{
			ActorID:    in.RecorderID,
			EntityType: "payment",
			EntityID:   pay.ID,
			Action:     models.EventActionRecorded,
			Detail:     fmt.Sprintf("Payment for order %d recorded as %s", in.OrderID, status),
			Payload:    pay,
		})
	})
	if err != nil {
		return nil, err
	}

	return &pay, nil
}

// GetPayment returns the payment for an order, visible only to the two
// parties on the order.
func GetPayment(db *gorm.DB, orderID, callerID uint) (*models.Payment, error) {
	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		return nil, domainerr.NotFound("Order not found")
	}
	if callerID != order.OrderedBy && callerID != order.DeliveredBy {
		return nil, domainerr.NotFound("Order not found")
	}

	var pay models.Payment
	if err := db.Where("order_id = ?", orderID).First(&pay).Error; err != nil {
		return nil, domainerr.NotFound("No payment recorded for this order")
	}
	return &pay, nil
}
