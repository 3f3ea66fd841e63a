package domain

import (
	"fmt"
	"time"
)

// Binding ties an action ID to a Trigger and its anti-misfire timings.
type Binding struct {
	// ActionID is the unique key of the binding in a registry.
	ActionID string `json:"action_id"`

	// Trigger decides whether the action's condition is met on a frame.
	Trigger Trigger `json:"-"`

	// HoldTime is how long the condition must hold before the action starts.
	HoldTime time.Duration `json:"hold_time"`

	// Cooldown is the refractory period after a release. Zero returns straight to Idle.
	Cooldown time.Duration `json:"cooldown"`

	// Debounce tolerates brief condition loss while active.
	Debounce time.Duration `json:"debounce"`

	// EmitHeldEvents enables a Held event on every frame the action stays active.
	EmitHeldEvents bool `json:"emit_held_events"`
}

// Validate checks the binding's structural invariants.
func (b Binding) Validate() error {
	if b.ActionID == "" {
		return fmt.Errorf("%w: action id is required", ErrInvalidBinding)
	}
	if b.Trigger == nil {
		return fmt.Errorf("%w: action %q has no trigger", ErrInvalidBinding, b.ActionID)
	}
	if err := validateTrigger(b.Trigger); err != nil {
		return fmt.Errorf("action %q: %w", b.ActionID, err)
	}
	if b.HoldTime < 0 || b.Cooldown < 0 || b.Debounce < 0 {
		return fmt.Errorf("%w: action %q has a negative timing", ErrInvalidBinding, b.ActionID)
	}
	return nil
}

// validateTrigger rejects typed-nil pointer triggers and combined triggers that
// did not come from NewCombinedTrigger.
func validateTrigger(t Trigger) error {
	switch v := t.(type) {
	case *GestureTrigger:
		if v == nil {
			return fmt.Errorf("%w: nil gesture trigger", ErrInvalidBinding)
		}
	case *ExpressionTrigger:
		if v == nil {
			return fmt.Errorf("%w: nil expression trigger", ErrInvalidBinding)
		}
	case *CombinedTrigger:
		if v == nil {
			return fmt.Errorf("%w: nil combined trigger", ErrInvalidBinding)
		}
		return validateCombined(*v)
	case CombinedTrigger:
		return validateCombined(v)
	}
	return nil
}

func validateCombined(c CombinedTrigger) error {
	if c.Len() < 2 {
		return &InvalidTriggerError{
			Reason: fmt.Sprintf("combined trigger needs at least 2 sub-triggers, got %d", c.Len()),
		}
	}
	return nil
}

// HoldMs, CooldownMs and DebounceMs express the timings in frame-clock milliseconds.
func (b Binding) HoldMs() int64     { return b.HoldTime.Milliseconds() }
func (b Binding) CooldownMs() int64 { return b.Cooldown.Milliseconds() }
func (b Binding) DebounceMs() int64 { return b.Debounce.Milliseconds() }
