package memory

import (
	"context"
	"sync"

	"github.com/aretw0/gestalt/pkg/domain"
)

// Publisher implements ports.EventLog in memory.
// Safe for concurrent use.
type Publisher struct {
	events []domain.ActionEvent
	mu     sync.RWMutex
}

// NewPublisher creates an empty in-memory publisher.
func NewPublisher() *Publisher {
	return &Publisher{}
}

// Publish records the event.
func (p *Publisher) Publish(ctx context.Context, ev domain.ActionEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

// Read returns up to count recorded events, oldest first.
func (p *Publisher) Read(ctx context.Context, count int) ([]domain.ActionEvent, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	n := len(p.events)
	if count > 0 && count < n {
		n = count
	}
	out := make([]domain.ActionEvent, n)
	copy(out, p.events)
	return out, nil
}

// Len returns the number of recorded events.
func (p *Publisher) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.events)
}

// Reset forgets every recorded event.
func (p *Publisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}
