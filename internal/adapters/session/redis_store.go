// Package session contains the SessionStore implementations. The
// store holds the single "user" identity per browser session and
// announces every change on the event bus.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/carebridge/hms-gateway/internal/domain/entities"
	"github.com/carebridge/hms-gateway/internal/domain/providers"
	redisclient "github.com/carebridge/hms-gateway/internal/infrastructure/clients/redis"
	"github.com/carebridge/hms-gateway/internal/infrastructure/observability"
)

const keyPrefix = "session:user:"

// RedisStore implements SessionStore on Redis. Sessions survive
// gateway restarts and expire after the configured TTL.
type RedisStore struct {
	client *redisclient.Client
	bus    providers.EventBus
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store
func NewRedisStore(client *redisclient.Client, bus providers.EventBus, ttl time.Duration) providers.SessionStore {
	return &RedisStore{
		client: client,
		bus:    bus,
		ttl:    ttl,
	}
}

// Get returns the identity for a session, or nil when none exists
func (s *RedisStore) Get(ctx context.Context, sessionID string) (*entities.Identity, error) {
	data, err := s.client.Client().Get(ctx, keyPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var identity entities.Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &identity, nil
}

// Set stores the identity for a session and broadcasts the sign-in
func (s *RedisStore) Set(ctx context.Context, sessionID string, identity *entities.Identity) error {
	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := s.client.Client().Set(ctx, keyPrefix+sessionID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	s.broadcast(ctx, sessionID, entities.SessionSignedIn, identity)
	return nil
}

// Clear removes a session and broadcasts the sign-out
func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Client().Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	s.broadcast(ctx, sessionID, entities.SessionSignedOut, nil)
	return nil
}

// broadcast publishes the change on the shared channel and the
// session's own channel. Publish failures are logged, not returned;
// the store update already succeeded.
func (s *RedisStore) broadcast(ctx context.Context, sessionID string, eventType entities.SessionEventType, identity *entities.Identity) {
	event := &entities.SessionEvent{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		EventType: eventType,
		Identity:  identity,
		Timestamp: time.Now().UTC(),
	}

	for _, channel := range []string{providers.EventChannelSessions, providers.GetSessionChannel(sessionID)} {
		if err := s.bus.Publish(ctx, channel, event); err != nil {
			log.Warn().Err(err).Str("channel", channel).Msg("failed to publish session event")
		}
	}
	observability.RecordSessionEvent(ctx, string(eventType))
}
