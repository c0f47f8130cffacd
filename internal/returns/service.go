package returns

import (
	"fmt"
	"time"

	"supplychain-backend/internal/domainerr"
	"supplychain-backend/internal/event"
	"supplychain-backend/internal/models"

	"gorm.io/gorm"
)

type CreateReturnInput struct {
	OrderID   uint
	ProductID uint
	Quantity  int
	Reason    string
	CallerID  uint
}

// CreateReturn opens a pending return against a delivered order. Only the
// buyer who placed the order may return, and only items that were on it.
func CreateReturn(db *gorm.DB, in CreateReturnInput) (*models.Return, error) {
	if in.Quantity <= 0 {
		return nil, domainerr.ValidationFailed("Quantity must be greater than zero")
	}

	var ret models.Return
	err := db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Items").First(&order, in.OrderID).Error; err != nil {
			return domainerr.NotFound("Order not found")
		}

		if in.CallerID != order.OrderedBy {
			return domainerr.NotOwner("Only the buyer of the order can open a return")
		}
		if order.Status != models.OrderStatusDelivered {
			return domainerr.OrderNotDelivered("Returns are only possible for delivered orders")
		}

		var orderedQty int
		for _, it := range order.Items {
			if it.ItemID == in.ProductID {
				orderedQty += it.Quantity
			}
		}
		if orderedQty == 0 {
			return domainerr.NotFound("This item was not part of the order")
		}
		if in.Quantity > orderedQty {
			return domainerr.ValidationFailed("Cannot return more than was ordered")
		}

		ret = models.Return{
			OrderID:    in.OrderID,
			ProductID:  in.ProductID,
			Quantity:   in.Quantity,
			Reason:     in.Reason,
			Status:     models.ReturnStatusPending,
			ReturnDate: time.Now(),
		}
		if err := tx.Create(&ret).Error; err != nil {
			return err
		}

		return event.Record(tx, event.Options{
			ActorID:    in.CallerID,
			EntityType: "return",
			EntityID:   ret.ID,
			Action:     models.EventActionCreated,
			Detail:     fmt.Sprintf("Return of %d x product %d on order %d", in.Quantity, in.ProductID, in.OrderID),
			Payload:    ret,
		})
	})
	if err != nil {
		return nil, err
	}

	return &ret, nil
}

// DecideReturn lets the order's seller approve or reject a pending return.
func DecideReturn(db *gorm.DB, returnID, callerID uint, approve bool) (*models.Return, error) {
	var ret models.Return
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Order").First(&ret, returnID).Error; err != nil {
			return domainerr.NotFound("Return not found")
		}

		if callerID != ret.Order.DeliveredBy {
			return domainerr.NotOwner("Only the seller of the order decides returns")
		}
		if ret.Status != models.ReturnStatusPending {
			return domainerr.InvalidTransition("This return has already been decided")
		}

		if approve {
			ret.Status = models.ReturnStatusApproved
		} else {
			ret.Status = models.ReturnStatusRejected
		}
		if err := tx.Save(&ret).Error; err != nil {
			return err
		}

		return event.Record(tx, event.Options{
			ActorID:    callerID,
			EntityType: "return",
			EntityID:   ret.ID,
			Action:     models.EventActionStatusChanged,
			Detail:     fmt.Sprintf("Return %d %s", ret.ID, ret.Status),
			Payload:    ret,
		})
	})
	if err != nil {
		return nil, err
	}

	return &ret, nil
}

type SubmitRatingInput struct {
	OrderID  uint
	GivenTo  uint
	Value    int
	Review   string
	CallerID uint
}

// SubmitRating records a rating for the opposite party on a delivered order.
// At most one rating per (order, rater).
func SubmitRating(db *gorm.DB, in SubmitRatingInput) (*models.Rating, error) {
	if in.Value < 1 || in.Value > 5 {
		return nil, domainerr.ValidationFailed("Rating value must be between 1 and 5")
	}

	var rating models.Rating
	err := db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, in.OrderID).Error; err != nil {
			return domainerr.NotFound("Order not found")
		}

		if in.CallerID != order.OrderedBy && in.CallerID != order.DeliveredBy {
			return domainerr.NotFound("Order not found")
		}
		if order.Status != models.OrderStatusDelivered {
			return domainerr.OrderNotDelivered("Ratings are only possible for delivered orders")
		}

		// the rated party must be the other end of the order
		expected := order.DeliveredBy
		if in.CallerID == order.DeliveredBy {
			expected = order.OrderedBy
		}
		if in.GivenTo != expected {
			return domainerr.ValidationFailed("Rated user must be the other party on the order")
		}

		var count int64
		if err := tx.Model(&models.Rating{}).
			Where("order_id = ? AND given_by = ?", in.OrderID, in.CallerID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domainerr.DuplicateRating("You have already rated this order")
		}

		rating = models.Rating{
			OrderID: in.OrderID,
			GivenBy: in.CallerID,
			GivenTo: in.GivenTo,
			Value:   in.Value,
			Review:  in.Review,
		}
		if err := tx.Create(&rating).Error; err != nil {
			// unique index backstop for concurrent submissions
			return domainerr.DuplicateRating("You have already rated this order")
		}

		return event.Record(tx, event.Options{
			ActorID:    in.CallerID,
			EntityType: "rating",
			EntityID:   rating.ID,
			Action:     models.EventActionCreated,
			Detail:     fmt.Sprintf("Rating %d/5 for user %d on order %d", in.Value, in.GivenTo, in.OrderID),
			Payload:    rating,
		})
	})
	if err != nil {
		return nil, err
	}

	return &rating, nil
}

// RatingsFor lists ratings received by a user, newest-first, with the mean
// value.
func RatingsFor(db *gorm.DB, userID uint) ([]models.Rating, float64, error) {
	var ratings []models.Rating
	if err := db.Where("given_to = ?", userID).
		Order("created_at desc").
		Find(&ratings).Error; err != nil {
		return nil, 0, err
	}

	if len(ratings) == 0 {
		return ratings, 0, nil
	}

	var sum int
	for _, r := range ratings {
		sum += r.Value
	}
	return ratings, float64(sum) / float64(len(ratings)), nil
}
