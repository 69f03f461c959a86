package events

import (
	"context"
	"time"
)

// Domain event codes. Each maps to a notification type in the registry.
const (
	TypeNoteShared        = "NOTE_SHARED"
	TypeNoteAccessRevoked = "NOTE_ACCESS_REVOKED"
	TypeReminderDue       = "REMINDER_DUE"
)

// SubjectPrefix is prepended to the event type to form the bus subject.
const SubjectPrefix = "events."

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "NOTE_SHARED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func NewEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Handler processes one delivered event. A non-nil error asks for redelivery.
type Handler func(ctx context.Context, event Event) error

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type Subscriber interface {
	// Subscribe registers handler for subject, which may end in the ">"
	// wildcard. durableName identifies the consumer across restarts.
	Subscribe(subject, durableName string, handler Handler) error
}
