package models

import "time"

type EventAction string

const (
	EventActionCreated       EventAction = "created"
	EventActionStatusChanged EventAction = "status_changed"
	EventActionRecorded      EventAction = "recorded"
)

// DomainEvent: append-only record emitted by the lifecycle engine for the
// analytics/notification collaborator. Payload holds the entity snapshot as
// JSON ("null" when absent, jsonb rejects the empty string).
type DomainEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	ActorID    uint      `json:"actor_id"`
	EntityType string    `gorm:"size:50;index" json:"entity_type"`
	EntityID   uint      `gorm:"index" json:"entity_id"`
	Action     EventAction `gorm:"size:30" json:"action"`
	Detail     string      `gorm:"size:255" json:"detail"`
	Payload    string      `gorm:"type:jsonb" json:"payload"`
}
