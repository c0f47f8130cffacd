package event

import (
	"encoding/json"
	"fmt"

	"supplychain-backend/internal/models"

	"gorm.io/gorm"
)

type Options struct {
	ActorID    uint
	EntityType string
	EntityID   uint
	Action     models.EventAction
	Detail     string
	Payload    any
}

// Record appends a domain event. It takes the caller's transaction handle so
// the event commits or rolls back together with the write that caused it.
func Record(db *gorm.DB, opts Options) error {
	// jsonb needs the literal "null", not an empty string
	payload := "null"
	if opts.Payload != nil {
		if b, err := json.Marshal(opts.Payload); err == nil {
			payload = string(b)
		}
	}

	ev := models.DomainEvent{
		ActorID:    opts.ActorID,
		EntityType: opts.EntityType,
		EntityID:   opts.EntityID,
		Action:     opts.Action,
		Detail:     opts.Detail,
		Payload:    payload,
	}

	if err := db.Create(&ev).Error; err != nil {
		return fmt.Errorf("could not record domain event: %w", err)
	}

	return nil
}

// List returns the newest events first, optionally filtered by entity type.
func List(db *gorm.DB, entityType string, limit int) ([]models.DomainEvent, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	q := db.Model(&models.DomainEvent{}).Order("id desc").Limit(limit)
	if entityType != "" {
		q = q.Where("entity_type = ?", entityType)
	}

	var events []models.DomainEvent
	if err := q.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
