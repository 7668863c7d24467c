package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/hms-gateway/internal/domain/entities"
	"github.com/carebridge/hms-gateway/internal/domain/providers"
)

func TestMemoryEventBusPublishSubscribe(t *testing.T) {
	bus := NewMemoryEventBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := bus.Subscribe(ctx, providers.EventChannelSessions)
	require.NoError(t, err)

	event := &entities.SessionEvent{
		ID:        "evt-1",
		SessionID: "sess-1",
		EventType: entities.SessionSignedIn,
		Identity:  &entities.Identity{UserID: 1, Name: "Ada", Role: entities.RolePatient},
	}
	require.NoError(t, bus.Publish(ctx, providers.EventChannelSessions, event))

	select {
	case got := <-ch:
		assert.Equal(t, "evt-1", got.ID)
		assert.Equal(t, entities.SessionSignedIn, got.EventType)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestMemoryEventBusChannelIsolation(t *testing.T) {
	bus := NewMemoryEventBus()
	defer bus.Close()

	ctx := context.Background()
	chA, err := bus.Subscribe(ctx, providers.GetSessionChannel("a"))
	require.NoError(t, err)

	require.NoError(t, bus.Publish(ctx, providers.GetSessionChannel("b"), &entities.SessionEvent{ID: "evt-b"}))

	select {
	case got := <-chA:
		t.Fatalf("unexpected event on other channel: %v", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryEventBusUnsubscribeClosesChannel(t *testing.T) {
	bus := NewMemoryEventBus()
	defer bus.Close()

	ctx := context.Background()
	ch, err := bus.Subscribe(ctx, providers.EventChannelSessions)
	require.NoError(t, err)

	require.NoError(t, bus.Unsubscribe(ctx, providers.EventChannelSessions))

	select {
	case _, open := <-ch:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("channel not closed after unsubscribe")
	}
}

func TestMemoryEventBusContextCancelRemovesSubscriber(t *testing.T) {
	bus := NewMemoryEventBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := bus.Subscribe(ctx, providers.EventChannelSessions)
	require.NoError(t, err)

	cancel()

	select {
	case _, open := <-ch:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("channel not closed after context cancel")
	}
}
