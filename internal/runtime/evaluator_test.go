package runtime_test

import (
	"testing"

	"github.com/aretw0/gestalt/internal/runtime"
	"github.com/aretw0/gestalt/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestEvaluate_Gesture(t *testing.T) {
	trigger := domain.OnGesture(domain.GestureThumbUp, 0.7)
	rightOnly := domain.OnGestureBy(domain.GestureThumbUp, domain.HandRight, 0.7)

	hands := &domain.HandData{
		IsTracking: true,
		Hands: []domain.Hand{
			{Handedness: domain.HandLeft, Gesture: domain.GestureOpenPalm, GestureConfidence: 0.99},
			{Handedness: domain.HandLeft, Gesture: domain.GestureThumbUp, GestureConfidence: 0.8},
		},
	}

	tests := []struct {
		name    string
		trigger domain.Trigger
		hand    *domain.HandData
		want    bool
	}{
		{"nil snapshot", trigger, nil, false},
		{"not tracking", trigger, &domain.HandData{Hands: hands.Hands}, false},
		{"any hand matches", trigger, hands, true},
		{"handedness filter rejects", rightOnly, hands, false},
		{"confidence too low", domain.OnGesture(domain.GestureThumbUp, 0.9), hands, false},
		{"confidence equal passes", domain.OnGesture(domain.GestureThumbUp, 0.8), hands, true},
		{"no hands", trigger, &domain.HandData{IsTracking: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, runtime.Evaluate(tt.trigger, nil, tt.hand))
		})
	}
}

func TestEvaluate_Expression(t *testing.T) {
	face := &domain.FaceData{
		IsTracking:  true,
		BlendShapes: map[domain.BlendShape]float64{domain.JawOpen: 0.5},
	}

	tests := []struct {
		name    string
		trigger domain.Trigger
		face    *domain.FaceData
		want    bool
	}{
		{"nil snapshot", domain.OnExpression(domain.JawOpen, 0.3, domain.Above), nil, false},
		{"not tracking", domain.OnExpression(domain.JawOpen, 0.3, domain.Above), &domain.FaceData{BlendShapes: face.BlendShapes}, false},
		{"above met", domain.OnExpression(domain.JawOpen, 0.3, domain.Above), face, true},
		{"above inclusive", domain.OnExpression(domain.JawOpen, 0.5, domain.Above), face, true},
		{"above not met", domain.OnExpression(domain.JawOpen, 0.6, domain.Above), face, false},
		{"below met", domain.OnExpression(domain.JawOpen, 0.6, domain.Below), face, true},
		{"below inclusive", domain.OnExpression(domain.JawOpen, 0.5, domain.Below), face, true},
		{"below not met", domain.OnExpression(domain.JawOpen, 0.4, domain.Below), face, false},
		{"missing shape reads zero", domain.OnExpression(domain.EyeBlinkLeft, 0.1, domain.Below), face, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, runtime.Evaluate(tt.trigger, tt.face, nil))
		})
	}
}

func TestEvaluate_Combined(t *testing.T) {
	combo := domain.MustCombine(
		domain.OnGesture(domain.GestureVictory, 0.5),
		domain.OnExpression(domain.MouthSmileLeft, 0.6, domain.Above),
	)
	face := &domain.FaceData{IsTracking: true, BlendShapes: map[domain.BlendShape]float64{domain.MouthSmileLeft: 0.9}}
	hand := &domain.HandData{IsTracking: true, Hands: []domain.Hand{{Gesture: domain.GestureVictory, GestureConfidence: 0.9}}}

	assert.True(t, runtime.Evaluate(combo, face, hand))
	assert.False(t, runtime.Evaluate(combo, face, nil), "missing hand snapshot")
	assert.False(t, runtime.Evaluate(combo, nil, hand), "missing face snapshot")
	assert.False(t, runtime.Evaluate(&combo, face, &domain.HandData{IsTracking: true}))
	assert.True(t, runtime.Evaluate(&combo, face, hand), "pointer variants are accepted")
}

func TestEvaluate_ZeroValues(t *testing.T) {
	assert.False(t, runtime.Evaluate(nil, nil, nil))
	assert.False(t, runtime.Evaluate(domain.CombinedTrigger{}, nil, nil), "empty combined is never met")
}
