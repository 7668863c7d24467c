package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/hms-gateway/internal/adapters/events"
	"github.com/carebridge/hms-gateway/internal/domain/entities"
	"github.com/carebridge/hms-gateway/internal/domain/providers"
)

func TestStreamSessionRequiresSession(t *testing.T) {
	handler := NewSSEHandler(events.NewMemoryEventBus())

	rec := httptest.NewRecorder()
	handler.StreamSession(rec, httptest.NewRequest(http.MethodGet, "/api/stream/session", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStreamAllSessionsEmitsFrames(t *testing.T) {
	bus := events.NewMemoryEventBus()
	handler := NewSSEHandler(bus)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/stream/sessions", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		handler.StreamAllSessions(rec, req)
		close(done)
	}()

	// Let the subscription attach before publishing
	time.Sleep(100 * time.Millisecond)

	err := bus.Publish(context.Background(), providers.EventChannelSessions, &entities.SessionEvent{
		ID:        "evt-1",
		SessionID: "sess-1",
		EventType: entities.SessionSignedIn,
		Identity:  &entities.Identity{UserID: 42, Name: "Grace", Role: entities.RoleDoctor},
	})
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not exit after cancel")
	}

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))

	body := rec.Body.String()
	assert.Contains(t, body, "event: connected\n")
	assert.Contains(t, body, "event: session.signed_in\n")
	assert.Contains(t, body, `"sessionId":"sess-1"`)
}

func TestStreamEndsWhenSubscriptionCloses(t *testing.T) {
	bus := events.NewMemoryEventBus()
	handler := NewSSEHandler(bus)

	req := httptest.NewRequest(http.MethodGet, "/api/stream/sessions", nil)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		handler.StreamAllSessions(rec, req)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, bus.Unsubscribe(context.Background(), providers.EventChannelSessions))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not exit after subscription closed")
	}
}
