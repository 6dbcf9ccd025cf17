package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents what happened to the entity
type EventType string

const (
	EventTypeUpdated  EventType = "updated"
	EventTypeAppended EventType = "appended"
	EventTypeSynced   EventType = "synced"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeLedger   EntityType = "ledger"
	EntityTypeActivity EntityType = "activity"
	EntityTypeProfile  EntityType = "profile"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "ledger.updated"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "ledger"
	Payload   interface{} `json:"payload"`   // Event data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// LedgerUpdated creates a ledger.updated event; payload names the touched days
func LedgerUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeLedger, payload)
}

// ActivityAppended creates an activity.appended event carrying the new log entry
func ActivityAppended(payload interface{}) Event {
	return NewEvent(EventTypeAppended, EntityTypeActivity, payload)
}

// ProfileSynced creates a profile.synced event after a simulated login
func ProfileSynced(payload interface{}) Event {
	return NewEvent(EventTypeSynced, EntityTypeProfile, payload)
}
