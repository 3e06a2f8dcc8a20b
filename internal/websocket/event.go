package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents what happened to an entity
type EventType string

const (
	EventTypeCreated   EventType = "created"
	EventTypeUpdated   EventType = "updated"
	EventTypeDeleted   EventType = "deleted"
	EventTypeConfirmed EventType = "confirmed"
	EventTypeDue       EventType = "due"
	EventTypeAppended  EventType = "appended"
	EventTypeImported  EventType = "imported"
	EventTypeExported  EventType = "exported"
	EventTypeReset     EventType = "reset"
	EventTypeBackedUp  EventType = "backed_up"
	EventTypeFailed    EventType = "failed"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeAsset       EntityType = "asset"
	EntityTypeLiability   EntityType = "liability"
	EntityTypeCreditCard  EntityType = "credit_card"
	EntityTypeTransaction EntityType = "transaction"
	EntityTypeSettings    EntityType = "settings"
	EntityTypeSnapshot    EntityType = "snapshot"
	EntityTypeData        EntityType = "data"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "asset.created"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "asset"
	Payload   interface{} `json:"payload"`   // Full entity data
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

func AssetCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeAsset, payload)
}

func AssetUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeAsset, payload)
}

func AssetDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeAsset, payload)
}

func LiabilityCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeLiability, payload)
}

func LiabilityUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeLiability, payload)
}

func LiabilityDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeLiability, payload)
}

func CreditCardCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeCreditCard, payload)
}

func CreditCardUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeCreditCard, payload)
}

func CreditCardDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeCreditCard, payload)
}

// TransactionCreated creates a transaction.created event
func TransactionCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeTransaction, payload)
}

// TransactionUpdated creates a transaction.updated event
func TransactionUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeTransaction, payload)
}

// TransactionDeleted creates a transaction.deleted event
func TransactionDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeTransaction, payload)
}

// TransactionConfirmed creates a transaction.confirmed event
func TransactionConfirmed(payload interface{}) Event {
	return NewEvent(EventTypeConfirmed, EntityTypeTransaction, payload)
}

// TransactionsDue creates a transaction.due event carrying the current due list
func TransactionsDue(payload interface{}) Event {
	return NewEvent(EventTypeDue, EntityTypeTransaction, payload)
}

func SettingsUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeSettings, payload)
}

// SnapshotAppended creates a snapshot.appended event
func SnapshotAppended(payload interface{}) Event {
	return NewEvent(EventTypeAppended, EntityTypeSnapshot, payload)
}

func DataImported(payload interface{}) Event {
	return NewEvent(EventTypeImported, EntityTypeData, payload)
}

func DataExported(payload interface{}) Event {
	return NewEvent(EventTypeExported, EntityTypeData, payload)
}

func DataReset(payload interface{}) Event {
	return NewEvent(EventTypeReset, EntityTypeData, payload)
}

func DataBackedUp(payload interface{}) Event {
	return NewEvent(EventTypeBackedUp, EntityTypeData, payload)
}

// OperationFailed creates a <entity>.failed event
func OperationFailed(entity EntityType, payload interface{}) Event {
	return NewEvent(EventTypeFailed, entity, payload)
}
