package catalog

import (
	"strings"

	"supplychain-backend/internal/auth"
	"supplychain-backend/internal/database"
	"supplychain-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ProductResponse struct {
	ID              uint            `json:"id"`
	ManufacturerID  uint            `json:"manufacturer_id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Size            string          `json:"size"`
	Color           string          `json:"color"`
	CostPrice       decimal.Decimal `json:"cost_price"`
	SellingPrice    decimal.Decimal `json:"selling_price"`
	ProductionStage string          `json:"production_stage"`
}

type CreateProductRequest struct {
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Size         string          `json:"size"`
	Color        string          `json:"color"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
}

type UpdateProductRequest struct {
	Name         *string          `json:"name"`
	Category     *string          `json:"category"`
	Size         *string          `json:"size"`
	Color        *string          `json:"color"`
	CostPrice    *decimal.Decimal `json:"cost_price"`
	SellingPrice *decimal.Decimal `json:"selling_price"`
}

type UpdateStageRequest struct {
	Stage string `json:"stage"`
}

func toProductResponse(p *models.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		ManufacturerID:  p.ManufacturerID,
		Name:            p.Name,
		Category:        p.Category,
		Size:            p.Size,
		Color:           p.Color,
		CostPrice:       p.CostPrice,
		SellingPrice:    p.SellingPrice,
		ProductionStage: string(p.ProductionStage),
	}
}

// GET /api/products?manufacturer_id=3
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		manufacturerID := c.QueryInt("manufacturer_id")
		if manufacturerID <= 0 {
			if identity.Role != models.RoleManufacturer {
				return fiber.NewError(fiber.StatusBadRequest, "manufacturer_id query parameter is required")
			}
			manufacturerID = int(identity.UserID)
		}

		var products []models.Product
		if err := database.DB.Where("manufacturer_id = ?", manufacturerID).
			Order("name asc").
			Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list products")
		}

		resp := make([]ProductResponse, 0, len(products))
		for i := range products {
			resp = append(resp, toProductResponse(&products[i]))
		}
		return c.JSON(resp)
	}
}

// POST /api/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name is required")
		}
		if body.CostPrice.IsNegative() || body.SellingPrice.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "Prices cannot be negative")
		}

		p := models.Product{
			ManufacturerID:  identity.UserID,
			Name:            body.Name,
			Category:        strings.TrimSpace(body.Category),
			Size:            strings.TrimSpace(body.Size),
			Color:           strings.TrimSpace(body.Color),
			CostPrice:       body.CostPrice,
			SellingPrice:    body.SellingPrice,
			ProductionStage: models.StagePlanning,
		}

		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create product")
		}

		return c.Status(fiber.StatusCreated).JSON(toProductResponse(&p))
	}
}

// PUT /api/products/:id
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		id := c.Params("id")

		var p models.Product
		if err := database.DB.Where("id = ? AND manufacturer_id = ?", id, identity.UserID).
			First(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name cannot be empty")
			}
			p.Name = name
		}
		if body.Category != nil {
			p.Category = strings.TrimSpace(*body.Category)
		}
		if body.Size != nil {
			p.Size = strings.TrimSpace(*body.Size)
		}
		if body.Color != nil {
			p.Color = strings.TrimSpace(*body.Color)
		}
		if body.CostPrice != nil {
			if body.CostPrice.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "Cost price cannot be negative")
			}
			p.CostPrice = *body.CostPrice
		}
		if body.SellingPrice != nil {
			if body.SellingPrice.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "Selling price cannot be negative")
			}
			p.SellingPrice = *body.SellingPrice
		}

		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update product")
		}

		return c.JSON(toProductResponse(&p))
	}
}

// PUT /api/products/:id/stage
// Stage moves are enum-validated but not forced forward-only; a failed
// quality check legitimately drops a product back into production.
func UpdateProductionStageHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		id := c.Params("id")

		var p models.Product
		if err := database.DB.Where("id = ? AND manufacturer_id = ?", id, identity.UserID).
			First(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		var body UpdateStageRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		stage := models.ProductionStage(body.Stage)
		if !stage.IsValid() {
			return fiber.NewError(fiber.StatusBadRequest, "Stage must be one of planning, production, quality_check, completed")
		}

		p.ProductionStage = stage
		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update production stage")
		}

		return c.JSON(toProductResponse(&p))
	}
}

// DELETE /api/products/:id
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		id := c.Params("id")

		res := database.DB.Where("id = ? AND manufacturer_id = ?", id, identity.UserID).
			Delete(&models.Product{})
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete product")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		return c.JSON(fiber.Map{"message": "Product deleted"})
	}
}
