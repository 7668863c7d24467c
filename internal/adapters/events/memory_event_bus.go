package events

import (
	"context"
	"sync"

	"github.com/carebridge/hms-gateway/internal/domain/entities"
	"github.com/carebridge/hms-gateway/internal/domain/providers"
)

// MemoryEventBus is an in-process EventBus for tests and single
// instance deployments without Redis.
type MemoryEventBus struct {
	subscribers map[string]map[chan *entities.SessionEvent]struct{}
	mu          sync.RWMutex
	closed      bool
}

// NewMemoryEventBus creates an in-memory event bus
func NewMemoryEventBus() providers.EventBus {
	return &MemoryEventBus{
		subscribers: make(map[string]map[chan *entities.SessionEvent]struct{}),
	}
}

// Publish delivers the event to every subscriber of the channel
func (b *MemoryEventBus) Publish(ctx context.Context, channel string, event *entities.SessionEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for subscriber := range b.subscribers[channel] {
		select {
		case subscriber <- event:
		default:
		}
	}
	return nil
}

// Subscribe registers a listener on the channel
func (b *MemoryEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.SessionEvent, error) {
	b.mu.Lock()
	if b.subscribers[channel] == nil {
		b.subscribers[channel] = make(map[chan *entities.SessionEvent]struct{})
	}
	eventChan := make(chan *entities.SessionEvent, 16)
	b.subscribers[channel][eventChan] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.remove(channel, eventChan)
	}()

	return eventChan, nil
}

func (b *MemoryEventBus) remove(channel string, eventChan chan *entities.SessionEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subscribers, ok := b.subscribers[channel]
	if !ok {
		return
	}
	if _, ok := subscribers[eventChan]; !ok {
		return
	}
	delete(subscribers, eventChan)
	close(eventChan)
	if len(subscribers) == 0 {
		delete(b.subscribers, channel)
	}
}

// Unsubscribe drops every listener on the channel
func (b *MemoryEventBus) Unsubscribe(ctx context.Context, channel string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for subscriber := range b.subscribers[channel] {
		close(subscriber)
	}
	delete(b.subscribers, channel)
	return nil
}

// Close drops every subscription
func (b *MemoryEventBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for channel, subscribers := range b.subscribers {
		for subscriber := range subscribers {
			close(subscriber)
		}
		delete(b.subscribers, channel)
	}
	return nil
}
