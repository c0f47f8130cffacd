package returns

import (
	"supplychain-backend/internal/auth"
	"supplychain-backend/internal/database"
	"supplychain-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateReturnRequest struct {
	OrderID   uint   `json:"order_id"`
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
}

type DecideReturnRequest struct {
	Approve bool `json:"approve"`
}

type ReturnResponse struct {
	ID         uint   `json:"id"`
	OrderID    uint   `json:"order_id"`
	ProductID  uint   `json:"product_id"`
	Quantity   int    `json:"quantity"`
	Reason     string `json:"reason"`
	Status     string `json:"status"`
	ReturnDate string `json:"return_date"`
}

func toReturnResponse(r *models.Return) ReturnResponse {
	return ReturnResponse{
		ID:         r.ID,
		OrderID:    r.OrderID,
		ProductID:  r.ProductID,
		Quantity:   r.Quantity,
		Reason:     r.Reason,
		Status:     string(r.Status),
		ReturnDate: r.ReturnDate.Format("2006-01-02"),
	}
}

// POST /api/returns
func CreateReturnHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		var body CreateReturnRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		ret, err := CreateReturn(database.DB, CreateReturnInput{
			OrderID:   body.OrderID,
			ProductID: body.ProductID,
			Quantity:  body.Quantity,
			Reason:    body.Reason,
			CallerID:  identity.UserID,
		})
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(toReturnResponse(ret))
	}
}

// PUT /api/returns/:id/decision
func DecideReturnHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		returnID, err := c.ParamsInt("id")
		if err != nil || returnID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid return id")
		}

		var body DecideReturnRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		ret, err := DecideReturn(database.DB, uint(returnID), identity.UserID, body.Approve)
		if err != nil {
			return err
		}

		return c.JSON(toReturnResponse(ret))
	}
}

type SubmitRatingRequest struct {
	OrderID uint   `json:"order_id"`
	GivenTo uint   `json:"rated_user_id"`
	Value   int    `json:"value"`
	Review  string `json:"review"`
}

type RatingResponse struct {
	ID      uint   `json:"id"`
	OrderID uint   `json:"order_id"`
	GivenBy uint   `json:"given_by"`
	GivenTo uint   `json:"given_to"`
	Value   int    `json:"value"`
	Review  string `json:"review"`
}

// POST /api/ratings
func SubmitRatingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.CurrentIdentity(c)
		if err != nil {
			return err
		}

		var body SubmitRatingRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		rating, err := SubmitRating(database.DB, SubmitRatingInput{
			OrderID:  body.OrderID,
			GivenTo:  body.GivenTo,
			Value:    body.Value,
			Review:   body.Review,
			CallerID: identity.UserID,
		})
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(RatingResponse{
			ID:      rating.ID,
			OrderID: rating.OrderID,
			GivenBy: rating.GivenBy,
			GivenTo: rating.GivenTo,
			Value:   rating.Value,
			Review:  rating.Review,
		})
	}
}

// GET /api/ratings?user_id=3
func ListRatingsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.QueryInt("user_id")
		if userID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "user_id query parameter is required")
		}

		ratings, avg, err := RatingsFor(database.DB, uint(userID))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list ratings")
		}

		resp := make([]RatingResponse, 0, len(ratings))
		for _, r := range ratings {
			resp = append(resp, RatingResponse{
				ID:      r.ID,
				OrderID: r.OrderID,
				GivenBy: r.GivenBy,
				GivenTo: r.GivenTo,
				Value:   r.Value,
				Review:  r.Review,
			})
		}

		return c.JSON(fiber.Map{
			"average": avg,
			"count":   len(resp),
			"ratings": resp,
		})
	}
}
