// Package relay forwards the engine's event stream to external publishers.
package relay

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/aretw0/gestalt/pkg/domain"
	"github.com/aretw0/gestalt/pkg/ports"
)

// Relay drains an event channel and hands each event to every publisher in order.
// A failing publisher is logged and skipped; it never stops the relay.
type Relay struct {
	events     <-chan domain.ActionEvent
	publishers []ports.EventPublisher
	timeout    time.Duration
	logger     *slog.Logger

	published atomic.Int64
	failed    atomic.Int64
}

// Option configures a Relay.
type Option func(*Relay)

// WithPublisher appends a publisher. Publishers receive events in the order they were added.
func WithPublisher(p ports.EventPublisher) Option {
	return func(r *Relay) {
		if p != nil {
			r.publishers = append(r.publishers, p)
		}
	}
}

// WithLogger sets the logger used for publish failures.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Relay) {
		r.logger = logger
	}
}

// WithPublishTimeout bounds each Publish call. Zero means no per-call timeout.
func WithPublishTimeout(d time.Duration) Option {
	return func(r *Relay) {
		r.timeout = d
	}
}

// New creates a relay reading from events.
func New(events <-chan domain.ActionEvent, opts ...Option) *Relay {
	r := &Relay{events: events}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r
}

// Run forwards events until the channel closes (returns nil) or ctx is done
// (returns ctx.Err()).
func (r *Relay) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-r.events:
			if !ok {
				r.logger.Debug("event stream closed, relay stopping",
					"published", r.published.Load(),
					"failed", r.failed.Load(),
				)
				return nil
			}
			r.forward(ctx, ev)
		}
	}
}

func (r *Relay) forward(ctx context.Context, ev domain.ActionEvent) {
	for _, p := range r.publishers {
		pctx, cancel := ctx, context.CancelFunc(func() {})
		if r.timeout > 0 {
			pctx, cancel = context.WithTimeout(ctx, r.timeout)
		}
		err := p.Publish(pctx, ev)
		cancel()
		if err != nil {
			r.failed.Add(1)
			r.logger.Warn("failed to publish event",
				"action_id", ev.Action(),
				"type", ev.Type(),
				"error", err,
			)
			continue
		}
		r.published.Add(1)
	}
}

// Published returns the number of successful Publish calls.
func (r *Relay) Published() int64 { return r.published.Load() }

// Failed returns the number of failed Publish calls.
func (r *Relay) Failed() int64 { return r.failed.Load() }
