package providers

import (
	"context"

	"github.com/carebridge/hms-gateway/internal/domain/entities"
)

// SessionStore is the durable holder of authenticated identities. It
// survives gateway restarts; a missing session is reported with a nil
// identity and no error.
type SessionStore interface {
	// Get returns the identity for a session, or nil when none exists
	Get(ctx context.Context, sessionID string) (*entities.Identity, error)

	// Set stores the identity for a session and broadcasts the change
	Set(ctx context.Context, sessionID string, identity *entities.Identity) error

	// Clear removes a session and broadcasts the sign-out
	Clear(ctx context.Context, sessionID string) error
}
