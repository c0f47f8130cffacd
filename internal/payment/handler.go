package payment

import (
	"supplychain-backend/internal/auth"
	"supplychain-backend/internal/database"
	"supplychain-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type RecordPaymentRequest struct {
	OrderID uint             `json:"order_id"`
	Amount  *decimal.Decimal `json:"amount"`
	Status  string           `json:"status"`
}

type PaymentResponse struct {
	ID          uint            `json:"id"`
	OrderID     uint            `json:"order_id"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	PaymentDate string          `json:"payment_date"`
	RecordedBy  uint            `json:"recorded_by"`
}

func toPaymentResponse(p *models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		OrderID:     p.OrderID,
		Amount:      p.Amount,
		Status:      string(p.Status),
		PaymentDate: p.PaymentDate.Format("2006-01-02 15:04:05"),
		RecordedBy:  p.RecordedBy,
	}
}

// POST /api/payments
func RecordPaymentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		var body RecordPaymentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		pay, err := RecordOrCreatePayment(database.DB, RecordPaymentInput{
			OrderID:    body.OrderID,
			Amount:     body.Amount,
			Status:     body.Status,
			RecorderID: identity.UserID,
		})
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(toPaymentResponse(pay))
	}
}

// GET /api/payments/:orderId
func GetPaymentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		orderID, err := c.ParamsInt("orderId")
		if err != nil || orderID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid order id")
		}

		pay, err := GetPayment(database.DB, uint(orderID), identity.UserID)
		if err != nil {
			return err
		}

		return c.JSON(toPaymentResponse(pay))
	}
}
