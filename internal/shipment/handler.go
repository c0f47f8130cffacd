package shipment

import (
	"time"

	"supplychain-backend/internal/auth"
	"supplychain-backend/internal/database"
	"supplychain-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateShipmentRequest struct {
	WarehouseID          uint   `json:"warehouse_id"`
	ProductID            uint   `json:"product_id"`
	Quantity             int    `json:"quantity"`
	ShippingAddress      string `json:"shipping_address"`
	ExpectedDeliveryDate string `json:"expected_delivery_date"` // "2026-01-15"
}

type AdvanceShipmentStatusRequest struct {
	Status string `json:"status"`
}

type ShipmentResponse struct {
	ID                   uint   `json:"id"`
	ManufacturerID       uint   `json:"manufacturer_id"`
	WarehouseID          uint   `json:"warehouse_id"`
	ProductID            uint   `json:"product_id"`
	ProductName          string `json:"product_name"`
	Quantity             int    `json:"quantity"`
	ShippingAddress      string `json:"shipping_address"`
	Status               string `json:"status"`
	ExpectedDeliveryDate string `json:"expected_delivery_date"`
	ActualDeliveryDate   string `json:"actual_delivery_date,omitempty"`
}

func toShipmentResponse(sh *models.Shipment) ShipmentResponse {
	resp := ShipmentResponse{
		ID:                   sh.ID,
		ManufacturerID:       sh.ManufacturerID,
		WarehouseID:          sh.WarehouseID,
		ProductID:            sh.ProductID,
		ProductName:          sh.Product.Name,
		Quantity:             sh.Quantity,
		ShippingAddress:      sh.ShippingAddress,
		Status:               string(sh.Status),
		ExpectedDeliveryDate: sh.ExpectedDeliveryDate.Format("2006-01-02"),
	}
	if sh.ActualDeliveryDate != nil {
		resp.ActualDeliveryDate = sh.ActualDeliveryDate.Format("2006-01-02")
	}
	return resp
}

// POST /api/shipments
func CreateShipmentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		var body CreateShipmentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		var expected time.Time
		if body.ExpectedDeliveryDate != "" {
			expected, err = time.Parse("2006-01-02", body.ExpectedDeliveryDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "expected_delivery_date must be 'YYYY-MM-DD'")
			}
		}

		sh, err := CreateShipment(database.DB, CreateShipmentInput{
			ManufacturerID:       identity.UserID,
			WarehouseID:          body.WarehouseID,
			ProductID:            body.ProductID,
			Quantity:             body.Quantity,
			ShippingAddress:      body.ShippingAddress,
			ExpectedDeliveryDate: expected,
		})
		if err != nil {
			return err
		}

		// reload for the product name
		_ = database.DB.Preload("Product").First(sh, sh.ID).Error

		return c.Status(fiber.StatusCreated).JSON(toShipmentResponse(sh))
	}
}

// GET /api/shipments
func ListShipmentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		shipments, err := ListShipments(database.DB, identity.UserID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list shipments")
		}

		resp := make([]ShipmentResponse, 0, len(shipments))
		for i := range shipments {
			resp = append(resp, toShipmentResponse(&shipments[i]))
		}
		return c.JSON(resp)
	}
}

// PUT /api/shipments/:id/status
func AdvanceShipmentStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		shipmentID, err := c.ParamsInt("id")
		if err != nil || shipmentID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid shipment id")
		}

		var body AdvanceShipmentStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		sh, err := AdvanceShipmentStatus(database.DB, uint(shipmentID), identity.UserID, models.ShipmentStatus(body.Status))
		if err != nil {
			return err
		}

		return c.JSON(toShipmentResponse(sh))
	}
}
