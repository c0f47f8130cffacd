package finance

import (
	"time"

	"supplychain-backend/internal/auth"
	"supplychain-backend/internal/database"
	"supplychain-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateEntryRequest struct {
	Kind        string          `json:"kind"` // "expense" or "revenue"
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"` // "2026-08-01", optional
}

type UpdateEntryRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	Category    *string          `json:"category"`
	Description *string          `json:"description"`
	Date        *string          `json:"date"`
}

type EntryResponse struct {
	ID          uint            `json:"id"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	OrderID     *uint           `json:"order_id"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	System      bool            `json:"system"`
}

func toEntryResponse(e *models.FinanceEntry) EntryResponse {
	return EntryResponse{
		ID:          e.ID,
		Kind:        string(e.Kind),
		Amount:      e.Amount,
		Category:    e.Category,
		OrderID:     e.OrderID,
		Description: e.Description,
		Date:        e.Date.Format("2006-01-02"),
		System:      e.SystemGenerated(),
	}
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// POST /api/expenses
func CreateEntryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		var body CreateEntryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		kind := models.FinanceKind(body.Kind)
		if body.Kind == "" {
			kind = models.FinanceKindExpense
		}

		var date time.Time
		if body.Date != "" {
			date, err = parseDate(body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
			}
		}

		entry, err := AddManualEntry(database.DB, identity.UserID, ManualEntryInput{
			Kind:        kind,
			Amount:      body.Amount,
			Category:    body.Category,
			Description: body.Description,
			Date:        date,
		})
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(toEntryResponse(entry))
	}
}

// PUT /api/expenses/:id
func UpdateEntryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		entryID, err := c.ParamsInt("id")
		if err != nil || entryID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid entry id")
		}

		var body UpdateEntryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		in := UpdateEntryInput{
			Amount:      body.Amount,
			Category:    body.Category,
			Description: body.Description,
		}
		if body.Date != nil {
			date, err := parseDate(*body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
			}
			in.Date = &date
		}

		entry, err := UpdateManualEntry(database.DB, identity.UserID, uint(entryID), in)
		if err != nil {
			return err
		}

		return c.JSON(toEntryResponse(entry))
	}
}

// DELETE /api/expenses/:id
func DeleteEntryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		entryID, err := c.ParamsInt("id")
		if err != nil || entryID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid entry id")
		}

		if err := DeleteManualEntry(database.DB, identity.UserID, uint(entryID)); err != nil {
			return err
		}

		return c.JSON(fiber.Map{"message": "Entry deleted"})
	}
}

// GET /api/expenses?kind=expense
func ListEntriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		entries, err := ListEntries(database.DB, identity.UserID, models.FinanceKind(c.Query("kind")))
		if err != nil {
			return err
		}

		resp := make([]EntryResponse, 0, len(entries))
		for i := range entries {
			resp = append(resp, toEntryResponse(&entries[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/finance/summary
func SummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		s, err := Summarize(database.DB, identity.UserID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build summary")
		}

		return c.JSON(fiber.Map{
			"total_expenses": s.TotalExpenses,
			"total_revenues": s.TotalRevenues,
			"net":            s.Net,
		})
	}
}
