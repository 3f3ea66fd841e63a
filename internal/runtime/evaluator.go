package runtime

import "github.com/aretw0/gestalt/pkg/domain"

// ConditionEvaluator decides whether a trigger is met given the latest snapshots.
type ConditionEvaluator func(trigger domain.Trigger, face *domain.FaceData, hand *domain.HandData) bool

// Evaluate is the default ConditionEvaluator. It is pure and accepts nil snapshots.
//
// Combined triggers are evaluated recursively with no depth limit; the one-level
// nesting rule is enforced by domain.NewCombinedTrigger only.
func Evaluate(trigger domain.Trigger, face *domain.FaceData, hand *domain.HandData) bool {
	switch t := trigger.(type) {
	case domain.GestureTrigger:
		return evaluateGesture(t, hand)
	case *domain.GestureTrigger:
		return t != nil && evaluateGesture(*t, hand)
	case domain.ExpressionTrigger:
		return evaluateExpression(t, face)
	case *domain.ExpressionTrigger:
		return t != nil && evaluateExpression(*t, face)
	case domain.CombinedTrigger:
		return evaluateCombined(t, face, hand)
	case *domain.CombinedTrigger:
		return t != nil && evaluateCombined(*t, face, hand)
	default:
		return false
	}
}

func evaluateGesture(t domain.GestureTrigger, hand *domain.HandData) bool {
	if hand == nil || !hand.IsTracking {
		return false
	}
	for _, h := range hand.Hands {
		if h.Gesture != t.Gesture {
			continue
		}
		if h.GestureConfidence < t.MinConfidence {
			continue
		}
		if t.Handedness != "" && h.Handedness != t.Handedness {
			continue
		}
		return true
	}
	return false
}

func evaluateExpression(t domain.ExpressionTrigger, face *domain.FaceData) bool {
	if face == nil || !face.IsTracking {
		return false
	}
	value := face.BlendShape(t.BlendShape)
	switch t.Direction {
	case domain.Below:
		return value <= t.Threshold
	default:
		return value >= t.Threshold
	}
}

func evaluateCombined(t domain.CombinedTrigger, face *domain.FaceData, hand *domain.HandData) bool {
	if t.Len() == 0 {
		return false
	}
	for i := 0; i < t.Len(); i++ {
		if !Evaluate(t.At(i), face, hand) {
			return false
		}
	}
	return true
}
