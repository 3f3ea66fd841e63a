package ports

import (
	"context"

	"github.com/aretw0/gestalt/pkg/domain"
)

// EventPublisher delivers action events to an external consumer.
type EventPublisher interface {
	// Publish sends a single event. Implementations must be safe for concurrent use.
	Publish(ctx context.Context, ev domain.ActionEvent) error
}

// EventLog is an EventPublisher that retains what it published.
type EventLog interface {
	EventPublisher

	// Read returns up to count events, oldest first. A count <= 0 returns all of them.
	Read(ctx context.Context, count int) ([]domain.ActionEvent, error)
}
