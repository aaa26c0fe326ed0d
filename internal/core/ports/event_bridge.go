package ports

import (
	"context"

	"AppEvents/internal/core/domain"
)

// EventBridge forwards raised events to an external system (NATS, Redis, ...)
// so other processes can observe this application's lifecycle. Bridges are
// fire-and-forget observers: a failed publish is logged by the caller, never
// surfaced to the code that raised the event.
type EventBridge interface {
	// Publish forwards one raised event.
	Publish(ctx context.Context, rec *domain.EventRecord) error

	// Close releases the underlying connection.
	Close() error
}
