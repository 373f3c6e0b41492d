package mocks

import (
	"context"
	"sync"

	"github.com/amirasaad/finance-tracker/pkg/domain"
	"github.com/amirasaad/finance-tracker/pkg/eventbus"
)

// RecordingBus wraps a Bus and keeps every emitted event for assertions.
type RecordingBus struct {
	eventbus.Bus

	mu     sync.Mutex
	events []domain.Event
}

var _ eventbus.Bus = (*RecordingBus)(nil)

func NewRecordingBus(bus eventbus.Bus) *RecordingBus {
	return &RecordingBus{Bus: bus}
}

func (r *RecordingBus) Emit(ctx context.Context, event domain.Event) error {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
	return r.Bus.Emit(ctx, event)
}

// Published returns a copy of the events emitted so far.
func (r *RecordingBus) Published() []domain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Event(nil), r.events...)
}

// OfType returns the recorded events whose Type is eventType.
func (r *RecordingBus) OfType(eventType string) []domain.Event {
	var out []domain.Event
	for _, e := range r.Published() {
		if e.Type() == eventType {
			out = append(out, e)
		}
	}
	return out
}
