package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aretw0/gestalt/internal/logging"
	"github.com/aretw0/gestalt/pkg/domain"
)

// slot pairs a registered binding with its state machine.
type slot struct {
	binding domain.Binding
	state   domain.TriggerState
}

// System is the core action-trigger orchestrator.
//
// A single mutex serializes registry mutation, snapshot updates and the
// per-frame evaluation pass. Events are pushed to the stream and hooks are
// invoked after that mutex is released.
type System struct {
	mu    sync.Mutex
	slots []*slot        // insertion order
	index map[string]int // action ID -> position in slots
	face  *domain.FaceData
	hand  *domain.HandData

	released atomic.Bool
	dropped  atomic.Int64

	sink      sink
	evaluator ConditionEvaluator
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
}

// Option configures the System.
type Option func(*System)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *System) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *System) {
		s.hooks = hooks
	}
}

// WithConditionEvaluator replaces the default Evaluate.
func WithConditionEvaluator(eval ConditionEvaluator) Option {
	return func(s *System) {
		if eval != nil {
			s.evaluator = eval
		}
	}
}

// WithEventBuffer configures the event stream. The default is Unbounded.
func WithEventBuffer(buf EventBuffer) Option {
	return func(s *System) {
		s.sink = newSink(buf)
	}
}

// NewSystem creates an empty System.
func NewSystem(opts ...Option) *System {
	s := &System{
		index:     make(map[string]int),
		evaluator: Evaluate,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sink == nil {
		s.sink = newSink(Unbounded)
	}
	return s
}

// Register adds a binding in Idle phase.
// It fails with domain.ErrDuplicateAction if the action ID is already registered.
// After Release it is a no-op.
func (s *System) Register(b domain.Binding) error {
	if s.released.Load() {
		return nil
	}
	if err := b.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released.Load() {
		return nil
	}
	if _, exists := s.index[b.ActionID]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateAction, b.ActionID)
	}
	s.index[b.ActionID] = len(s.slots)
	s.slots = append(s.slots, &slot{binding: b, state: domain.NewTriggerState()})

	s.logger.Debug("binding registered", "action_id", b.ActionID, "trigger", b.Trigger.String())
	return nil
}

// Unregister removes a binding and its state. It reports whether it was present.
func (s *System) Unregister(actionID string) bool {
	if s.released.Load() {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	pos, ok := s.index[actionID]
	if !ok {
		return false
	}
	s.slots = slices.Delete(s.slots, pos, pos+1)
	delete(s.index, actionID)
	for i := pos; i < len(s.slots); i++ {
		s.index[s.slots[i].binding.ActionID] = i
	}

	s.logger.Debug("binding unregistered", "action_id", actionID)
	return true
}

// Clear removes every binding and forgets both latest snapshots.
func (s *System) Clear() {
	if s.released.Load() {
		return
	}
	s.mu.Lock()
	s.reset()
	s.mu.Unlock()
	s.logger.Info("action system cleared")
}

func (s *System) reset() {
	s.slots = nil
	s.index = make(map[string]int)
	s.face = nil
	s.hand = nil
}

// Release permanently shuts the System down and closes the event stream.
// It is idempotent. Every later call is a silent no-op returning an empty result.
func (s *System) Release() {
	if !s.released.CompareAndSwap(false, true) {
		return
	}
	s.mu.Lock()
	s.reset()
	s.mu.Unlock()
	s.sink.close()
	s.logger.Info("action system released", "dropped_events", s.dropped.Load())
}

// Released reports whether Release has been called.
func (s *System) Released() bool {
	return s.released.Load()
}

// Events returns the event stream. It is closed after Release, once buffered
// events have been delivered. With the default unbounded buffer, events that
// are never received accumulate in memory.
//
// Every call returns the same channel, so it has a single logical consumer:
// concurrent readers split the events between them. Use pkg/relay to fan events
// out to several publishers, such as the HTTP adapter's StreamManager.
// A consumer must keep reading until the channel closes; one that stops early
// leaves the delivery goroutine blocked for the life of the process.
func (s *System) Events() <-chan domain.ActionEvent {
	return s.sink.events()
}

// Dropped returns how many events a bounded buffer has discarded.
func (s *System) Dropped() int64 {
	return s.dropped.Load()
}

// ProcessFace stores data as the latest face snapshot and steps every binding.
func (s *System) ProcessFace(ctx context.Context, data domain.FaceData) []domain.ActionEvent {
	data.BlendShapes = maps.Clone(data.BlendShapes)
	return s.process(ctx, domain.ModalityFace, data.TimestampMs, func() {
		s.face = &data
	})
}

// ProcessHand stores data as the latest hand snapshot and steps every binding.
func (s *System) ProcessHand(ctx context.Context, data domain.HandData) []domain.ActionEvent {
	data.Hands = slices.Clone(data.Hands)
	return s.process(ctx, domain.ModalityHand, data.TimestampMs, func() {
		s.hand = &data
	})
}

func (s *System) process(ctx context.Context, modality domain.Modality, now int64, store func()) []domain.ActionEvent {
	if s.released.Load() {
		return nil
	}

	s.mu.Lock()
	if s.released.Load() {
		s.mu.Unlock()
		return nil
	}
	start := time.Now()
	store()

	var (
		events  []domain.ActionEvent
		changes []domain.PhaseChange
	)
	for _, sl := range s.slots {
		met := s.evaluator(sl.binding.Trigger, s.face, s.hand)
		next, evs, chs := advance(sl.binding, sl.state, met, now)
		sl.state = next
		events = append(events, evs...)
		changes = append(changes, chs...)
	}
	frame := domain.FrameEvent{
		Modality:    modality,
		TimestampMs: now,
		Bindings:    len(s.slots),
		Events:      len(events),
		Elapsed:     time.Since(start),
	}
	s.mu.Unlock()

	for _, ev := range events {
		if dropped := s.sink.push(ctx, ev); dropped != nil {
			s.dropped.Add(1)
			s.logger.Warn("event buffer full, event dropped",
				"action_id", dropped.Action(),
				"type", dropped.Type(),
				"timestamp_ms", dropped.At(),
			)
			if s.hooks.OnDrop != nil {
				s.hooks.OnDrop(ctx, dropped)
			}
		}
	}
	s.notify(ctx, &frame, changes, events)
	return events
}

func (s *System) notify(ctx context.Context, frame *domain.FrameEvent, changes []domain.PhaseChange, events []domain.ActionEvent) {
	for i := range changes {
		s.logger.Debug("phase change",
			"action_id", changes[i].ActionID,
			"from", changes[i].From,
			"to", changes[i].To,
			"timestamp_ms", changes[i].TimestampMs,
		)
		if s.hooks.OnPhaseChange != nil {
			s.hooks.OnPhaseChange(ctx, &changes[i])
		}
	}
	if s.hooks.OnEvent != nil {
		for _, ev := range events {
			s.hooks.OnEvent(ctx, ev)
		}
	}
	if s.hooks.OnFrame != nil {
		s.hooks.OnFrame(ctx, frame)
	}
}

// Bindings returns the registered bindings in registration order.
func (s *System) Bindings() []domain.Binding {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Binding, len(s.slots))
	for i, sl := range s.slots {
		out[i] = sl.binding
	}
	return out
}

// State returns a copy of a binding's state.
func (s *System) State(actionID string) (domain.TriggerState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pos, ok := s.index[actionID]
	if !ok {
		return domain.TriggerState{}, false
	}
	return s.slots[pos].state, true
}
