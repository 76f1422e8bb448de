package events

import "time"

const (
	TypeSessionCreated = "SESSION_CREATED"
	TypeSessionDeleted = "SESSION_DELETED"
	TypeMessageAdded   = "MESSAGE_ADDED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "SESSION_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the plain implementation used across the backend.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
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

// NewSessionCreated builds the event emitted after a session is durably
// created for a user.
func NewSessionCreated(sessionId, username, name string) BaseEvent {
	return BaseEvent{
		Type: TypeSessionCreated,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"username":   username,
			"name":       name,
		},
		OccurredAt: time.Now(),
	}
}

// NewMessageAdded builds the event emitted after a turn is appended.
func NewMessageAdded(sessionId, username, role string) BaseEvent {
	return BaseEvent{
		Type: TypeMessageAdded,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"username":   username,
			"role":       role,
		},
		OccurredAt: time.Now(),
	}
}

// NewSessionDeleted builds the event emitted after a session is removed.
func NewSessionDeleted(sessionId, username string) BaseEvent {
	return BaseEvent{
		Type: TypeSessionDeleted,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"username":   username,
		},
		OccurredAt: time.Now(),
	}
}
