package partner

import (
	"supplychain-backend/internal/database"
	"supplychain-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type PartnerResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Address string `json:"address"`
	Contact string `json:"contact"`
}

// GET /api/partners?role=supplier
// Directory of counterparties; buyers use it to find seller ids.
func ListPartnersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Model(&models.User{}).Order("name asc")

		if roleStr := c.Query("role"); roleStr != "" {
			role, ok := models.ParseRole(roleStr)
			if !ok {
				return fiber.NewError(fiber.StatusBadRequest, "Unknown role filter")
			}
			q = q.Where("role = ?", role)
		}

		var users []models.User
		if err := q.Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list partners")
		}

		resp := make([]PartnerResponse, 0, len(users))
		for _, u := range users {
			resp = append(resp, PartnerResponse{
				ID:      u.ID,
				Name:    u.Name,
				Role:    string(u.Role),
				Address: u.Address,
				Contact: u.Contact,
			})
		}

		return c.JSON(resp)
	}
}
