// Package redis publishes action events to a Redis stream.
package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aretw0/gestalt/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultStream is the stream key used when none is configured.
const DefaultStream = "gestalt:events"

// Publisher implements ports.EventLog on a Redis stream.
// Each event is one XADD entry carrying the fields of domain.Record.
type Publisher struct {
	client *backend.Client
	stream string
	maxLen int64
	approx bool
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithStream sets the stream key.
func WithStream(stream string) Option {
	return func(p *Publisher) {
		if stream != "" {
			p.stream = stream
		}
	}
}

// WithMaxLen caps the stream at n entries. Zero leaves it unbounded.
func WithMaxLen(n int64) Option {
	return func(p *Publisher) {
		p.maxLen = n
	}
}

// WithApproxTrim lets Redis trim the stream lazily ("MAXLEN ~").
func WithApproxTrim() Option {
	return func(p *Publisher) {
		p.approx = true
	}
}

// New creates a Publisher connected to addr.
func New(addr string, opts ...Option) *Publisher {
	return NewFromClient(backend.NewClient(&backend.Options{Addr: addr}), opts...)
}

// NewFromClient creates a Publisher on an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Publisher {
	p := &Publisher{client: client, stream: DefaultStream}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Stream returns the stream key.
func (p *Publisher) Stream() string {
	return p.stream
}

// Ping checks connectivity.
func (p *Publisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (p *Publisher) Close() error {
	return p.client.Close()
}

// Publish appends the event to the stream.
func (p *Publisher) Publish(ctx context.Context, ev domain.ActionEvent) error {
	r := domain.ToRecord(ev)
	args := &backend.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: p.approx,
		Values: map[string]any{
			"type":         string(r.Type),
			"action_id":    r.ActionID,
			"timestamp_ms": r.TimestampMs,
			"duration_ms":  r.DurationMs,
		},
	}
	if err := p.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("redis error publishing %s event: %w", r.Type, err)
	}
	return nil
}

// Read returns up to count events from the start of the stream.
func (p *Publisher) Read(ctx context.Context, count int) ([]domain.ActionEvent, error) {
	var (
		msgs []backend.XMessage
		err  error
	)
	if count > 0 {
		msgs, err = p.client.XRangeN(ctx, p.stream, "-", "+", int64(count)).Result()
	} else {
		msgs, err = p.client.XRange(ctx, p.stream, "-", "+").Result()
	}
	if err != nil {
		return nil, fmt.Errorf("redis error reading stream %s: %w", p.stream, err)
	}

	events := make([]domain.ActionEvent, 0, len(msgs))
	for _, msg := range msgs {
		ev, err := decode(msg.Values)
		if err != nil {
			return nil, fmt.Errorf("stream entry %s: %w", msg.ID, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

func decode(values map[string]any) (domain.ActionEvent, error) {
	field := func(key string) string {
		s, _ := values[key].(string)
		return s
	}
	ts, err := strconv.ParseInt(field("timestamp_ms"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp_ms: %w", err)
	}
	var dur int64
	if raw := field("duration_ms"); raw != "" {
		if dur, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid duration_ms: %w", err)
		}
	}
	r := domain.Record{
		Type:        domain.EventType(field("type")),
		ActionID:    field("action_id"),
		TimestampMs: ts,
		DurationMs:  dur,
	}
	return r.Event()
}
