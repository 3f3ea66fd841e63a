package domain

import "fmt"

// TriggerKind discriminates the Trigger variants.
type TriggerKind string

const (
	KindGesture    TriggerKind = "gesture"
	KindExpression TriggerKind = "expression"
	KindCombined   TriggerKind = "combined"
)

// Direction selects how an expression value is compared against its threshold.
type Direction string

const (
	// Above is met when value >= threshold.
	Above Direction = "above"
	// Below is met when value <= threshold.
	Below Direction = "below"
)

// Trigger describes when an action's condition is met.
// The set of implementations is closed: GestureTrigger, ExpressionTrigger and CombinedTrigger.
type Trigger interface {
	Kind() TriggerKind
	String() string
	sealed()
}

// GestureTrigger is met when any tracked hand shows Gesture with enough confidence.
type GestureTrigger struct {
	Gesture       Gesture
	Handedness    Handedness // empty matches either hand
	MinConfidence float64
}

func (GestureTrigger) Kind() TriggerKind { return KindGesture }
func (GestureTrigger) sealed()           {}

func (t GestureTrigger) String() string {
	hand := "any"
	if t.Handedness != "" {
		hand = string(t.Handedness)
	}
	return fmt.Sprintf("gesture(%s, hand=%s, conf>=%.2f)", t.Gesture, hand, t.MinConfidence)
}

// ExpressionTrigger is met when a blend shape crosses Threshold in Direction.
type ExpressionTrigger struct {
	BlendShape BlendShape
	Threshold  float64
	Direction  Direction
}

func (ExpressionTrigger) Kind() TriggerKind { return KindExpression }
func (ExpressionTrigger) sealed()           {}

func (t ExpressionTrigger) String() string {
	op := ">="
	if t.Direction == Below {
		op = "<="
	}
	return fmt.Sprintf("expression(%s %s %.2f)", t.BlendShape, op, t.Threshold)
}

// CombinedTrigger is met when all of its sub-triggers are met.
// It can only be built through NewCombinedTrigger.
type CombinedTrigger struct {
	triggers []Trigger
}

func (CombinedTrigger) Kind() TriggerKind { return KindCombined }
func (CombinedTrigger) sealed()           {}

// Triggers returns a copy of the sub-triggers.
func (t CombinedTrigger) Triggers() []Trigger {
	out := make([]Trigger, len(t.triggers))
	copy(out, t.triggers)
	return out
}

// Len returns the number of sub-triggers.
func (t CombinedTrigger) Len() int { return len(t.triggers) }

// At returns the i-th sub-trigger.
func (t CombinedTrigger) At(i int) Trigger { return t.triggers[i] }

func (t CombinedTrigger) String() string {
	s := "all("
	for i, sub := range t.triggers {
		if i > 0 {
			s += ", "
		}
		s += sub.String()
	}
	return s + ")"
}

// NewCombinedTrigger builds an AND of at least two non-combined triggers.
func NewCombinedTrigger(triggers ...Trigger) (CombinedTrigger, error) {
	if len(triggers) < 2 {
		return CombinedTrigger{}, &InvalidTriggerError{
			Reason: fmt.Sprintf("combined trigger needs at least 2 sub-triggers, got %d", len(triggers)),
		}
	}
	for i, sub := range triggers {
		switch sub.(type) {
		case nil:
			return CombinedTrigger{}, &InvalidTriggerError{Reason: fmt.Sprintf("sub-trigger %d is nil", i)}
		case CombinedTrigger, *CombinedTrigger:
			return CombinedTrigger{}, &InvalidTriggerError{Reason: fmt.Sprintf("sub-trigger %d is a nested combined trigger", i)}
		}
	}
	return CombinedTrigger{triggers: append([]Trigger(nil), triggers...)}, nil
}

// MustCombine is like NewCombinedTrigger but panics on invalid input.
// Intended for static binding tables.
func MustCombine(triggers ...Trigger) CombinedTrigger {
	t, err := NewCombinedTrigger(triggers...)
	if err != nil {
		panic(err)
	}
	return t
}

// OnGesture returns a gesture trigger matching either hand.
func OnGesture(g Gesture, minConfidence float64) GestureTrigger {
	return GestureTrigger{Gesture: g, MinConfidence: minConfidence}
}

// OnGestureBy returns a gesture trigger restricted to one hand.
func OnGestureBy(g Gesture, hand Handedness, minConfidence float64) GestureTrigger {
	return GestureTrigger{Gesture: g, Handedness: hand, MinConfidence: minConfidence}
}

// OnExpression returns an expression trigger.
func OnExpression(bs BlendShape, threshold float64, dir Direction) ExpressionTrigger {
	return ExpressionTrigger{BlendShape: bs, Threshold: threshold, Direction: dir}
}
