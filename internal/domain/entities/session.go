package entities

import "time"

// SessionEventType distinguishes session bus notifications
type SessionEventType string

const (
	SessionSignedIn  SessionEventType = "session.signed_in"
	SessionSignedOut SessionEventType = "session.signed_out"
)

// SessionEvent is broadcast on the event bus whenever a session is
// set or cleared, so every attached tab or gateway instance can react
// without polling the store.
type SessionEvent struct {
	ID        string           `json:"id"`
	SessionID string           `json:"sessionId"`
	EventType SessionEventType `json:"eventType"`
	Identity  *Identity        `json:"identity,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}
