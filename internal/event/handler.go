package event

import (
	"supplychain-backend/internal/database"

	"github.com/gofiber/fiber/v2"
)

type EventResponse struct {
	ID         uint   `json:"id"`
	ActorID    uint   `json:"actor_id"`
	EntityType string `json:"entity_type"`
	EntityID   uint   `json:"entity_id"`
	Action     string `json:"action"`
	Detail     string `json:"detail"`
	CreatedAt  string `json:"created_at"`
}

// GET /api/events?entity_type=order&limit=50
func ListEventsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		events, err := List(database.DB, c.Query("entity_type"), c.QueryInt("limit"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list events")
		}

		resp := make([]EventResponse, 0, len(events))
		for _, ev := range events {
			resp = append(resp, EventResponse{
				ID:         ev.ID,
				ActorID:    ev.ActorID,
				EntityType: ev.EntityType,
				EntityID:   ev.EntityID,
				Action:     string(ev.Action),
				Detail:     ev.Detail,
				CreatedAt:  ev.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(resp)
	}
}
