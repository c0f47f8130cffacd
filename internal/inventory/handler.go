package inventory

import (
	"supplychain-backend/internal/auth"
	"supplychain-backend/internal/database"
	"supplychain-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ReceiveStockRequest struct {
	ProductID    uint            `json:"product_id"`
	Quantity     int             `json:"quantity"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	ReorderLevel int             `json:"reorder_level"`
}

type DecrementStockRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type InventoryItemResponse struct {
	ID                uint            `json:"id"`
	ProductID         uint            `json:"product_id"`
	ProductName       string          `json:"product_name"`
	QuantityAvailable int             `json:"quantity_available"`
	ReorderLevel      int             `json:"reorder_level"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	SellingPrice      decimal.Decimal `json:"selling_price"`
	LastRestocked     string          `json:"last_restocked"`
}

func toItemResponse(item models.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ID:                item.ID,
		ProductID:         item.ProductID,
		ProductName:       item.Product.Name,
		QuantityAvailable: item.QuantityAvailable,
		ReorderLevel:      item.ReorderLevel,
		CostPrice:         item.CostPrice,
		SellingPrice:      item.SellingPrice,
		LastRestocked:     item.LastRestocked.Format("2006-01-02 15:04:05"),
	}
}

// GET /api/inventory
func ListInventoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		items, err := GetInventory(database.DB, identity.UserID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list inventory")
		}

		resp := make([]InventoryItemResponse, 0, len(items))
		for _, item := range items {
			resp = append(resp, toItemResponse(item))
		}
		return c.JSON(resp)
	}
}

// POST /api/inventory
func ReceiveStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		var body ReceiveStockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		item, err := ReceiveStock(database.DB, ReceiveStockInput{
			OwnerID:      identity.UserID,
			ProductID:    body.ProductID,
			Quantity:     body.Quantity,
			CostPrice:    body.CostPrice,
			SellingPrice: body.SellingPrice,
			ReorderLevel: body.ReorderLevel,
		})
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(toItemResponse(*item))
	}
}

// POST /api/inventory/decrement
func DecrementStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		var body DecrementStockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if err := DecrementStock(database.DB, identity.UserID, body.ProductID, body.Quantity); err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"message":    "Stock decremented",
			"product_id": body.ProductID,
			"quantity":   body.Quantity,
		})
	}
}

// GET /api/inventory/low-stock
func LowStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		items, err := LowStockItems(database.DB, identity.UserID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list low stock items")
		}

		resp := make([]InventoryItemResponse, 0, len(items))
		for _, item := range items {
			resp = append(resp, toItemResponse(item))
		}
		return c.JSON(resp)
	}
}
