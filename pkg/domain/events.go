package domain

import (
	"context"
	"fmt"
	"time"
)

// EventType defines the category of an ActionEvent.
type EventType string

const (
	EventStarted  EventType = "started"
	EventHeld     EventType = "held"
	EventReleased EventType = "released"
)

// ActionEvent is produced by the engine when a binding starts, stays held, or releases.
// The set of implementations is closed: Started, Held and Released.
type ActionEvent interface {
	Type() EventType
	Action() string
	At() int64
	sealed()
}

// Started is emitted once when a binding becomes active.
type Started struct {
	ActionID    string
	TimestampMs int64
}

// Held is emitted on every frame a binding stays active, when the binding opts in.
type Held struct {
	ActionID    string
	TimestampMs int64
	DurationMs  int64 // time since the matching Started
}

// Released is emitted once when an active binding's condition has been lost for its debounce.
type Released struct {
	ActionID        string
	TimestampMs     int64
	TotalDurationMs int64 // TimestampMs minus the matching Started.TimestampMs
}

func (Started) Type() EventType  { return EventStarted }
func (e Started) Action() string { return e.ActionID }
func (e Started) At() int64      { return e.TimestampMs }
func (Started) sealed()          {}

func (e Started) String() string {
	return fmt.Sprintf("started(%s @%d)", e.ActionID, e.TimestampMs)
}

func (Held) Type() EventType  { return EventHeld }
func (e Held) Action() string { return e.ActionID }
func (e Held) At() int64      { return e.TimestampMs }
func (Held) sealed()          {}

func (e Held) String() string {
	return fmt.Sprintf("held(%s @%d, %dms)", e.ActionID, e.TimestampMs, e.DurationMs)
}

func (Released) Type() EventType  { return EventReleased }
func (e Released) Action() string { return e.ActionID }
func (e Released) At() int64      { return e.TimestampMs }
func (Released) sealed()          {}

func (e Released) String() string {
	return fmt.Sprintf("released(%s @%d, %dms)", e.ActionID, e.TimestampMs, e.TotalDurationMs)
}

// Record is the flat, serializable form of an ActionEvent.
type Record struct {
	Type        EventType `json:"type"`
	ActionID    string    `json:"action_id"`
	TimestampMs int64     `json:"timestamp_ms"`
	DurationMs  int64     `json:"duration_ms,omitempty"`
}

// ToRecord flattens an event. DurationMs carries Held.DurationMs or Released.TotalDurationMs.
func ToRecord(ev ActionEvent) Record {
	r := Record{Type: ev.Type(), ActionID: ev.Action(), TimestampMs: ev.At()}
	switch e := ev.(type) {
	case Held:
		r.DurationMs = e.DurationMs
	case Released:
		r.DurationMs = e.TotalDurationMs
	}
	return r
}

// Event rebuilds the typed event from a Record.
func (r Record) Event() (ActionEvent, error) {
	switch r.Type {
	case EventStarted:
		return Started{ActionID: r.ActionID, TimestampMs: r.TimestampMs}, nil
	case EventHeld:
		return Held{ActionID: r.ActionID, TimestampMs: r.TimestampMs, DurationMs: r.DurationMs}, nil
	case EventReleased:
		return Released{ActionID: r.ActionID, TimestampMs: r.TimestampMs, TotalDurationMs: r.DurationMs}, nil
	default:
		return nil, fmt.Errorf("unknown event type %q", r.Type)
	}
}

// FrameEvent describes one processed tracking frame.
type FrameEvent struct {
	Modality    Modality
	TimestampMs int64
	Bindings    int
	Events      int
	Elapsed     time.Duration // wall time spent evaluating under the lock
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks run on the caller's goroutine after the registry lock is released.
type LifecycleHooks struct {
	OnFrame       func(context.Context, *FrameEvent)
	OnPhaseChange func(context.Context, *PhaseChange)
	OnEvent       func(context.Context, ActionEvent)
	OnDrop        func(context.Context, ActionEvent)
}
