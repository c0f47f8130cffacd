package catalog

import (
	"strings"

	"supplychain-backend/internal/auth"
	"supplychain-backend/internal/database"
	"supplychain-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type MaterialResponse struct {
	ID                uint            `json:"id"`
	SupplierID        uint            `json:"supplier_id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	QuantityAvailable int             `json:"quantity_available"`
}

type CreateMaterialRequest struct {
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	QuantityAvailable int             `json:"quantity_available"`
}

type UpdateMaterialRequest struct {
	Name              *string          `json:"name"`
	Description       *string          `json:"description"`
	UnitPrice         *decimal.Decimal `json:"unit_price"`
	QuantityAvailable *int             `json:"quantity_available"`
}

func toMaterialResponse(m *models.RawMaterial) MaterialResponse {
	return MaterialResponse{
		ID:                m.ID,
		SupplierID:        m.SupplierID,
		Name:              m.Name,
		Description:       m.Description,
		UnitPrice:         m.UnitPrice,
		QuantityAvailable: m.QuantityAvailable,
	}
}

// GET /api/materials?supplier_id=2
// Buyers browse a supplier's catalog; suppliers see their own when the
// filter is absent.
func ListMaterialsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		supplierID := c.QueryInt("supplier_id")
		if supplierID <= 0 {
			if identity.Role != models.RoleSupplier {
				return fiber.NewError(fiber.StatusBadRequest, "supplier_id query parameter is required")
			}
			supplierID = int(identity.UserID)
		}

		var materials []models.RawMaterial
		if err := database.DB.Where("supplier_id = ?", supplierID).
			Order("name asc").
			Find(&materials).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list materials")
		}

		resp := make([]MaterialResponse, 0, len(materials))
		for i := range materials {
			resp = append(resp, toMaterialResponse(&materials[i]))
		}
		return c.JSON(resp)
	}
}

// POST /api/materials
func CreateMaterialHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		var body CreateMaterialRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name is required")
		}
		if body.UnitPrice.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "Unit price cannot be negative")
		}
		if body.QuantityAvailable < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Quantity cannot be negative")
		}

		m := models.RawMaterial{
			SupplierID:        identity.UserID,
			Name:              body.Name,
			Description:       strings.TrimSpace(body.Description),
			UnitPrice:         body.UnitPrice,
			QuantityAvailable: body.QuantityAvailable,
		}

		if err := database.DB.Create(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create material")
		}

		return c.Status(fiber.StatusCreated).JSON(toMaterialResponse(&m))
	}
}

// PUT /api/materials/:id
func UpdateMaterialHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		id := c.Params("id")

		var m models.RawMaterial
		if err := database.DB.Where("id = ? AND supplier_id = ?", id, identity.UserID).
			First(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Material not found")
		}

		var body UpdateMaterialRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name cannot be empty")
			}
			m.Name = name
		}
		if body.Description != nil {
			m.Description = strings.TrimSpace(*body.Description)
		}
		if body.UnitPrice != nil {
			if body.UnitPrice.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "Unit price cannot be negative")
			}
			m.UnitPrice = *body.UnitPrice
		}
		if body.QuantityAvailable != nil {
			if *body.QuantityAvailable < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Quantity cannot be negative")
			}
			m.QuantityAvailable = *body.QuantityAvailable
		}

		if err := database.DB.Save(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update material")
		}

		return c.JSON(toMaterialResponse(&m))
	}
}

// DELETE /api/materials/:id
func DeleteMaterialHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		id := c.Params("id")

		res := database.DB.Where("id = ? AND supplier_id = ?", id, identity.UserID).
			Delete(&models.RawMaterial{})
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete material")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Material not found")
		}

		return c.JSON(fiber.Map{"message": "Material deleted"})
	}
}
