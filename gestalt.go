package gestalt

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/gestalt/internal/runtime"
	"github.com/aretw0/gestalt/pkg/domain"
)

// OverflowPolicy decides what a bounded event buffer does when it is full.
type OverflowPolicy = runtime.OverflowPolicy

const (
	OverflowBlock      = runtime.OverflowBlock
	OverflowDropOldest = runtime.OverflowDropOldest
	OverflowDropNewest = runtime.OverflowDropNewest
)

// ParseOverflowPolicy parses "block", "drop-oldest" or "drop-newest".
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	return runtime.ParseOverflowPolicy(s)
}

// System is the high-level entry point for the Gestalt library.
// It wraps the internal runtime and provides a simplified API for consumers.
type System struct {
	runtime   *runtime.System
	evaluator runtime.ConditionEvaluator
	hooks     domain.LifecycleHooks
	buffer    runtime.EventBuffer
	logger    *slog.Logger
	Name      string
}

// Option defines a functional option for configuring the System.
type Option func(*System)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *System) {
		s.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *System) {
		s.logger = logger
	}
}

// WithConditionEvaluator replaces the default trigger evaluator.
func WithConditionEvaluator(eval runtime.ConditionEvaluator) Option {
	return func(s *System) {
		s.evaluator = eval
	}
}

// WithEventBuffer bounds the event stream to capacity events and applies policy
// when it is full. A capacity of zero keeps the default unbounded stream.
func WithEventBuffer(capacity int, policy OverflowPolicy) Option {
	return func(s *System) {
		s.buffer = runtime.EventBuffer{Capacity: capacity, Overflow: policy}
	}
}

// WithName labels the system in logs.
func WithName(name string) Option {
	return func(s *System) {
		s.Name = name
	}
}

// New initializes a new System with no bindings.
func New(opts ...Option) *System {
	sys := &System{}
	for _, opt := range opts {
		opt(sys)
	}

	// Ensure logger is initialized (so we don't pass nil to runtime)
	if sys.logger == nil {
		sys.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if sys.Name != "" {
		sys.logger = sys.logger.With("system", sys.Name)
	}

	sys.runtime = runtime.NewSystem(
		runtime.WithLogger(sys.logger),
		runtime.WithLifecycleHooks(sys.hooks),
		runtime.WithConditionEvaluator(sys.evaluator),
		runtime.WithEventBuffer(sys.buffer),
	)
	return sys
}

// Register adds a binding. It fails with domain.ErrDuplicateAction if the
// action ID is taken, leaving the existing registration untouched.
func (s *System) Register(b domain.Binding) error {
	return s.runtime.Register(b)
}

// RegisterAll registers bindings in order and stops at the first failure.
func (s *System) RegisterAll(bindings ...domain.Binding) error {
	for _, b := range bindings {
		if err := s.runtime.Register(b); err != nil {
			return fmt.Errorf("failed to register %q: %w", b.ActionID, err)
		}
	}
	return nil
}

// Unregister removes a binding and reports whether it was registered.
func (s *System) Unregister(actionID string) bool {
	return s.runtime.Unregister(actionID)
}

// Clear removes every binding and forgets the latest face and hand snapshots.
func (s *System) Clear() {
	s.runtime.Clear()
}

// Release shuts the system down and closes the Events stream. It is idempotent.
func (s *System) Release() {
	s.runtime.Release()
}

// Released reports whether Release has been called.
func (s *System) Released() bool {
	return s.runtime.Released()
}

// ProcessFace evaluates every binding against a new face frame and the latest hand frame.
func (s *System) ProcessFace(ctx context.Context, data domain.FaceData) []domain.ActionEvent {
	return s.runtime.ProcessFace(ctx, data)
}

// ProcessHand evaluates every binding against a new hand frame and the latest face frame.
func (s *System) ProcessHand(ctx context.Context, data domain.HandData) []domain.ActionEvent {
	return s.runtime.ProcessHand(ctx, data)
}

// Events returns the event stream, closed after Release.
// It is a single channel shared by every caller; read it from one goroutine
// until it closes and fan out with pkg/relay.
func (s *System) Events() <-chan domain.ActionEvent {
	return s.runtime.Events()
}

// Bindings returns the registered bindings in registration order.
func (s *System) Bindings() []domain.Binding {
	return s.runtime.Bindings()
}

// State returns a snapshot of one binding's phase machine.
func (s *System) State(actionID string) (domain.TriggerState, bool) {
	return s.runtime.State(actionID)
}

// Dropped returns the number of events discarded by a bounded event buffer.
func (s *System) Dropped() int64 {
	return s.runtime.Dropped()
}
