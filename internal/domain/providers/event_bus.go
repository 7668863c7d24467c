package providers

import (
	"context"

	"github.com/carebridge/hms-gateway/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to
// session change notifications
type EventBus interface {
	// Publish publishes an event to all subscribers of a channel
	Publish(ctx context.Context, channel string, event *entities.SessionEvent) error

	// Subscribe subscribes to events on a channel; the returned channel
	// closes when ctx is cancelled
	Subscribe(ctx context.Context, channel string) (<-chan *entities.SessionEvent, error)

	// Unsubscribe tears down a channel's subscription
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

const (
	// EventChannelSessions carries every session change
	EventChannelSessions = "sessions:updates"

	// eventChannelSessionPrefix prefixes per-session channels
	eventChannelSessionPrefix = "sessions:"
)

// GetSessionChannel returns the channel name for one session, used by
// the per-tab notification stream.
func GetSessionChannel(sessionID string) string {
	return eventChannelSessionPrefix + sessionID
}
