package orders

import (
	"supplychain-backend/internal/auth"
	"supplychain-backend/internal/database"
	"supplychain-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type PlaceOrderRequest struct {
	SellerID        uint                    `json:"seller_id"`
	ShippingAddress string                  `json:"shipping_address"`
	Items           []PlaceOrderItemRequest `json:"items"`
}

type PlaceOrderItemRequest struct {
	ItemID    uint             `json:"item_id"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"` // optional negotiated price
}

type AdvanceOrderStatusRequest struct {
	Status string `json:"status"`
}

type OrderItemResponse struct {
	ID        uint            `json:"id"`
	ItemID    uint            `json:"item_id"`
	ItemName  string          `json:"item_name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type OrderResponse struct {
	ID              uint                `json:"id"`
	OrderedBy       uint                `json:"ordered_by"`
	DeliveredBy     uint                `json:"delivered_by"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	Status          string              `json:"status"`
	ShippingAddress string              `json:"shipping_address"`
	OrderDate       string              `json:"order_date"`
	Items           []OrderItemResponse `json:"items"`
}

func toOrderResponse(v OrderView) OrderResponse {
	items := make([]OrderItemResponse, 0, len(v.Items))
	for _, it := range v.Items {
		items = append(items, OrderItemResponse{
			ID:        it.ID,
			ItemID:    it.ItemID,
			ItemName:  it.ItemName,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return OrderResponse{
		ID:              v.ID,
		OrderedBy:       v.OrderedBy,
		DeliveredBy:     v.DeliveredBy,
		TotalAmount:     v.TotalAmount,
		Status:          string(v.Status),
		ShippingAddress: v.ShippingAddress,
		OrderDate:       v.OrderDate.Format("2006-01-02 15:04:05"),
		Items:           items,
	}
}

// POST /api/orders
func PlaceOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		var body PlaceOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		items := make([]PlaceOrderItem, 0, len(body.Items))
		for _, it := range body.Items {
			items = append(items, PlaceOrderItem{
				ItemID:    it.ItemID,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
			})
		}

		order, err := PlaceOrder(database.DB, PlaceOrderInput{
			BuyerID:         identity.UserID,
			SellerID:        body.SellerID,
			ShippingAddress: body.ShippingAddress,
			Items:           items,
		})
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":           order.ID,
			"status":       order.Status,
			"total_amount": order.TotalAmount,
			"order_date":   order.OrderDate.Format("2006-01-02 15:04:05"),
		})
	}
}

// GET /api/orders?side=buyer|seller
func ListOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		side := c.Query("side", "buyer")
		if side != "buyer" && side != "seller" {
			return fiber.NewError(fiber.StatusBadRequest, "side must be 'buyer' or 'seller'")
		}

		views, err := ListOrders(database.DB, identity.UserID, side == "seller")
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list orders")
		}

		resp := make([]OrderResponse, 0, len(views))
		for _, v := range views {
			resp = append(resp, toOrderResponse(v))
		}
		return c.JSON(resp)
	}
}

// PUT /api/orders/:id/status
func AdvanceOrderStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		orderID, err := c.ParamsInt("id")
		if err != nil || orderID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid order id")
		}

		var body AdvanceOrderStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		order, err := AdvanceOrderStatus(database.DB, uint(orderID), identity.UserID, models.OrderStatus(body.Status))
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"id":           order.ID,
			"status":       order.Status,
			"total_amount": order.TotalAmount,
		})
	}
}
