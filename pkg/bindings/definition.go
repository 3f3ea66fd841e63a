package bindings

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/aretw0/gestalt/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Duration is a time.Duration that decodes from "150ms"-style strings or
// bare millisecond numbers.
type Duration time.Duration

func (d Duration) String() string { return time.Duration(d).String() }

// MarshalJSON encodes the duration in its string form.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

var durationType = reflect.TypeOf(Duration(0))

// durationHook converts strings and numbers into Duration values.
func durationHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != durationType {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("invalid duration %q: %w", v, err)
		}
		return Duration(d), nil
	case int:
		return Duration(time.Duration(v) * time.Millisecond), nil
	case int64:
		return Duration(time.Duration(v) * time.Millisecond), nil
	case uint64:
		return Duration(time.Duration(v) * time.Millisecond), nil
	case float64:
		return Duration(time.Duration(v * float64(time.Millisecond))), nil
	}
	return data, nil
}

// File is the top-level document of a binding file.
type File struct {
	Bindings []Definition `mapstructure:"bindings" json:"bindings"`
}

// Definition is the declarative form of a domain.Binding.
type Definition struct {
	ActionID       string            `mapstructure:"action_id" json:"action_id"`
	Trigger        TriggerDefinition `mapstructure:"trigger" json:"trigger"`
	HoldTime       Duration          `mapstructure:"hold_time" json:"hold_time"`
	Cooldown       Duration          `mapstructure:"cooldown" json:"cooldown"`
	Debounce       Duration          `mapstructure:"debounce" json:"debounce"`
	EmitHeldEvents bool              `mapstructure:"emit_held_events" json:"emit_held_events"`
}

// TriggerDefinition is the declarative form of a domain.Trigger.
// Type selects which of the remaining fields apply.
type TriggerDefinition struct {
	Type string `mapstructure:"type" json:"type"`

	// gesture
	Gesture       string  `mapstructure:"gesture" json:"gesture,omitempty"`
	Handedness    string  `mapstructure:"handedness" json:"handedness,omitempty"`
	MinConfidence float64 `mapstructure:"min_confidence" json:"min_confidence,omitempty"`

	// expression
	BlendShape string  `mapstructure:"blend_shape" json:"blend_shape,omitempty"`
	Threshold  float64 `mapstructure:"threshold" json:"threshold,omitempty"`
	Direction  string  `mapstructure:"direction" json:"direction,omitempty"`

	// combined
	All []TriggerDefinition `mapstructure:"all" json:"all,omitempty"`
}

func newDecoder(result any) (*mapstructure.Decoder, error) {
	return mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       durationHook,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           result,
	})
}

// DecodeDefinition decodes a single binding from a generic map, as produced by a
// YAML or JSON decoder, and validates it.
func DecodeDefinition(raw map[string]any) (Definition, error) {
	var def Definition
	dec, err := newDecoder(&def)
	if err != nil {
		return Definition{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Definition{}, fmt.Errorf("failed to decode binding: %w", err)
	}
	if errs := def.validate("binding"); len(errs) > 0 {
		return Definition{}, &AggregateError{Errors: errs}
	}
	return def, nil
}

// Build validates the definition and converts it into a domain.Binding.
func (s Definition) Build() (domain.Binding, error) {
	if errs := s.validate("binding"); len(errs) > 0 {
		return domain.Binding{}, &AggregateError{Errors: errs}
	}
	trigger, err := s.Trigger.build()
	if err != nil {
		return domain.Binding{}, err
	}
	return domain.Binding{
		ActionID:       s.ActionID,
		Trigger:        trigger,
		HoldTime:       time.Duration(s.HoldTime),
		Cooldown:       time.Duration(s.Cooldown),
		Debounce:       time.Duration(s.Debounce),
		EmitHeldEvents: s.EmitHeldEvents,
	}, nil
}

func (s Definition) validate(path string) []error {
	var errs []error
	if s.ActionID == "" {
		errs = append(errs, &ValidationError{Key: path + ".action_id", Reason: "is required"})
	}
	timings := []struct {
		key string
		d   Duration
	}{{"hold_time", s.HoldTime}, {"cooldown", s.Cooldown}, {"debounce", s.Debounce}}
	for _, tm := range timings {
		if tm.d < 0 {
			errs = append(errs, &ValidationError{Key: path + "." + tm.key, Reason: "must not be negative", Value: tm.d})
		}
	}
	return append(errs, s.Trigger.validate(path+".trigger", true)...)
}

func (t TriggerDefinition) validate(path string, top bool) []error {
	var errs []error
	bad := func(key, reason string, value any) {
		errs = append(errs, &ValidationError{Key: path + key, Reason: reason, Value: value})
	}

	switch domain.TriggerKind(strings.ToLower(t.Type)) {
	case domain.KindGesture:
		if t.Gesture == "" {
			bad(".gesture", "is required", nil)
		} else if !domain.KnownGesture(domain.Gesture(t.Gesture)) {
			bad(".gesture", "unknown gesture", t.Gesture)
		}
		if _, ok := parseHandedness(t.Handedness); !ok {
			bad(".handedness", "must be Left, Right or empty", t.Handedness)
		}
		if t.MinConfidence < 0 || t.MinConfidence > 1 {
			bad(".min_confidence", "must be within [0, 1]", t.MinConfidence)
		}
	case domain.KindExpression:
		if t.BlendShape == "" {
			bad(".blend_shape", "is required", nil)
		} else if !domain.KnownBlendShape(domain.BlendShape(t.BlendShape)) {
			bad(".blend_shape", "unknown blend shape", t.BlendShape)
		}
		if t.Threshold < 0 || t.Threshold > 1 {
			bad(".threshold", "must be within [0, 1]", t.Threshold)
		}
		if _, ok := parseDirection(t.Direction); !ok {
			bad(".direction", "must be above or below", t.Direction)
		}
	case domain.KindCombined:
		if !top {
			bad(".type", "combined triggers cannot be nested", t.Type)
			break
		}
		if len(t.All) < 2 {
			bad(".all", "needs at least 2 sub-triggers", len(t.All))
		}
		for i, sub := range t.All {
			errs = append(errs, sub.validate(fmt.Sprintf("%s.all[%d]", path, i), false)...)
		}
	case "":
		bad(".type", "is required", nil)
	default:
		bad(".type", "must be gesture, expression or combined", t.Type)
	}
	return errs
}

func (t TriggerDefinition) build() (domain.Trigger, error) {
	switch domain.TriggerKind(strings.ToLower(t.Type)) {
	case domain.KindGesture:
		hand, _ := parseHandedness(t.Handedness)
		return domain.OnGestureBy(domain.Gesture(t.Gesture), hand, t.MinConfidence), nil
	case domain.KindExpression:
		dir, _ := parseDirection(t.Direction)
		return domain.OnExpression(domain.BlendShape(t.BlendShape), t.Threshold, dir), nil
	case domain.KindCombined:
		subs := make([]domain.Trigger, 0, len(t.All))
		for _, sub := range t.All {
			trigger, err := sub.build()
			if err != nil {
				return nil, err
			}
			subs = append(subs, trigger)
		}
		return domain.NewCombinedTrigger(subs...)
	}
	return nil, &domain.InvalidTriggerError{Reason: fmt.Sprintf("unknown trigger type %q", t.Type)}
}

func parseHandedness(s string) (domain.Handedness, bool) {
	switch {
	case s == "", strings.EqualFold(s, "any"):
		return "", true
	case strings.EqualFold(s, string(domain.HandLeft)):
		return domain.HandLeft, true
	case strings.EqualFold(s, string(domain.HandRight)):
		return domain.HandRight, true
	}
	return "", false
}

func parseDirection(s string) (domain.Direction, bool) {
	switch domain.Direction(strings.ToLower(s)) {
	case "", domain.Above:
		return domain.Above, true
	case domain.Below:
		return domain.Below, true
	}
	return "", false
}

// FromBinding converts a domain binding back into its declarative form.
func FromBinding(b domain.Binding) Definition {
	return Definition{
		ActionID:       b.ActionID,
		Trigger:        FromTrigger(b.Trigger),
		HoldTime:       Duration(b.HoldTime),
		Cooldown:       Duration(b.Cooldown),
		Debounce:       Duration(b.Debounce),
		EmitHeldEvents: b.EmitHeldEvents,
	}
}

// FromTrigger converts a domain trigger into its declarative form.
func FromTrigger(t domain.Trigger) TriggerDefinition {
	switch v := t.(type) {
	case domain.GestureTrigger:
		return TriggerDefinition{Type: string(domain.KindGesture), Gesture: string(v.Gesture), Handedness: string(v.Handedness), MinConfidence: v.MinConfidence}
	case *domain.GestureTrigger:
		return FromTrigger(*v)
	case domain.ExpressionTrigger:
		return TriggerDefinition{Type: string(domain.KindExpression), BlendShape: string(v.BlendShape), Threshold: v.Threshold, Direction: string(v.Direction)}
	case *domain.ExpressionTrigger:
		return FromTrigger(*v)
	case domain.CombinedTrigger:
		def := TriggerDefinition{Type: string(domain.KindCombined)}
		for i := 0; i < v.Len(); i++ {
			def.All = append(def.All, FromTrigger(v.At(i)))
		}
		return def
	case *domain.CombinedTrigger:
		return FromTrigger(*v)
	}
	return TriggerDefinition{}
}
