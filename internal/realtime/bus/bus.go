package bus

import (
	"context"
	"sync"

	"github.com/yungbote/bandit-backend/internal/realtime"
)

type Bus interface {
	Publish(ctx context.Context, ev realtime.Event) error
	Close() error
}

type noopBus struct{}

// NewNoopBus drops every event. Used when no broker is configured.
func NewNoopBus() Bus { return noopBus{} }

func (noopBus) Publish(context.Context, realtime.Event) error { return nil }
func (noopBus) Close() error                                  { return nil }

// MemoryBus records published events in order.
type MemoryBus struct {
	mu     sync.Mutex
	events []realtime.Event
}

func NewMemoryBus() *MemoryBus { return &MemoryBus{} }

func (b *MemoryBus) Publish(_ context.Context, ev realtime.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, ev)
	return nil
}

func (b *MemoryBus) Close() error { return nil }

func (b *MemoryBus) Events() []realtime.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]realtime.Event, len(b.events))
	copy(out, b.events)
	return out
}
