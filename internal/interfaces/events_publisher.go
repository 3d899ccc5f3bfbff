package interfaces

import "context"

// EventPublisher delivers audit/notification events to an external sink.
// Publishing is best-effort from the caller's point of view: the ledger core
// logs a failed publish but never lets it change a request's outcome.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event any) error
}
