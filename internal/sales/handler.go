package sales

import (
	"supplychain-backend/internal/auth"
	"supplychain-backend/internal/database"
	"supplychain-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type RecordSaleRequest struct {
	Items []SaleItemRequest `json:"items"`
	Note  string            `json:"note"`
}

type SaleItemRequest struct {
	ProductID uint             `json:"product_id"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"price"`
}

type SaleItemResponse struct {
	ID         uint            `json:"id"`
	ProductID  uint            `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type SaleResponse struct {
	ID          uint               `json:"id"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	Note        string             `json:"note"`
	CreatedAt   string             `json:"created_at"`
	Items       []SaleItemResponse `json:"items"`
}

func toSaleResponse(s *models.Sale) SaleResponse {
	items := make([]SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, SaleItemResponse{
			ID:         it.ID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
		})
	}
	return SaleResponse{
		ID:          s.ID,
		TotalAmount: s.TotalAmount,
		Note:        s.Note,
		CreatedAt:   s.CreatedAt.Format("2006-01-02 15:04:05"),
		Items:       items,
	}
}

// POST /api/sales
func RecordSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		var body RecordSaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		items := make([]SaleItemInput, 0, len(body.Items))
		for _, it := range body.Items {
			items = append(items, SaleItemInput{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
			})
		}

		sale, err := RecordSale(database.DB, identity.UserID, items, body.Note)
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(toSaleResponse(sale))
	}
}

// GET /api/sales
func ListSalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		salesList, err := ListSales(database.DB, identity.UserID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list sales")
		}

		resp := make([]SaleResponse, 0, len(salesList))
		for i := range salesList {
			resp = append(resp, toSaleResponse(&salesList[i]))
		}
		return c.JSON(resp)
	}
}
