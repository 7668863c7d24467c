package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/carebridge/hms-gateway/internal/domain/entities"
	"github.com/carebridge/hms-gateway/internal/domain/providers"
	"github.com/carebridge/hms-gateway/internal/infrastructure/observability"
)

// MemoryStore implements SessionStore in process memory, for tests
// and single instance deployments without Redis.
type MemoryStore struct {
	sessions map[string]entities.Identity
	bus      providers.EventBus
	mu       sync.RWMutex
}

// NewMemoryStore creates an in-memory session store
func NewMemoryStore(bus providers.EventBus) providers.SessionStore {
	return &MemoryStore{
		sessions: make(map[string]entities.Identity),
		bus:      bus,
	}
}

// Get returns the identity for a session, or nil when none exists
func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*entities.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	identity, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return &identity, nil
}

// Set stores the identity for a session and broadcasts the sign-in
func (s *MemoryStore) Set(ctx context.Context, sessionID string, identity *entities.Identity) error {
	s.mu.Lock()
	s.sessions[sessionID] = *identity
	s.mu.Unlock()

	s.broadcast(ctx, sessionID, entities.SessionSignedIn, identity)
	return nil
}

// Clear removes a session and broadcasts the sign-out
func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	s.broadcast(ctx, sessionID, entities.SessionSignedOut, nil)
	return nil
}

func (s *MemoryStore) broadcast(ctx context.Context, sessionID string, eventType entities.SessionEventType, identity *entities.Identity) {
	observability.RecordSessionEvent(ctx, string(eventType))
	if s.bus == nil {
		return
	}

	event := &entities.SessionEvent{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		EventType: eventType,
		Identity:  identity,
		Timestamp: time.Now().UTC(),
	}
	for _, channel := range []string{providers.EventChannelSessions, providers.GetSessionChannel(sessionID)} {
		_ = s.bus.Publish(ctx, channel, event)
	}
}
