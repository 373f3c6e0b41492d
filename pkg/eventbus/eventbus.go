package eventbus

import (
	"context"

	"github.com/amirasaad/finance-tracker/pkg/domain"
)

// HandlerFunc handles one event. Returned errors are logged by the bus and
// never reach the emitter.
type HandlerFunc func(ctx context.Context, e domain.Event) error

// Bus defines the contract for publishing and subscribing to domain events.
type Bus interface {
	Register(eventType string, handler HandlerFunc)
	Emit(ctx context.Context, event domain.Event) error
}
