package gestalt_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aretw0/gestalt"
	"github.com/aretw0/gestalt/pkg/domain"
)

// ExampleNew shows a smile binding with a hold time and a debounce.
func ExampleNew() {
	sys := gestalt.New()
	defer sys.Release()

	err := sys.Register(domain.Binding{
		ActionID: "smile",
		Trigger:  domain.OnExpression(domain.MouthSmileLeft, 0.6, domain.Above),
		HoldTime: 80 * time.Millisecond,
		Debounce: 50 * time.Millisecond,
	})
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	smiles := []float64{0.9, 0.9, 0.9, 0.2, 0.9, 0.1, 0.1, 0.1, 0.1}
	for i, v := range smiles {
		frame := domain.FaceData{
			IsTracking:  true,
			TimestampMs: int64(i) * 40,
			BlendShapes: map[domain.BlendShape]float64{domain.MouthSmileLeft: v},
		}
		for _, ev := range sys.ProcessFace(ctx, frame) {
			fmt.Println(ev)
		}
	}
	// Output:
	// started(smile @80)
	// released(smile @280, 200ms)
}

// ExampleSystem_Events shows combining a gesture with an expression and
// consuming the event stream.
func ExampleSystem_Events() {
	sys := gestalt.New()

	wink := domain.MustCombine(
		domain.OnGestureBy(domain.GestureThumbUp, domain.HandRight, 0.8),
		domain.OnExpression(domain.EyeBlinkLeft, 0.5, domain.Above),
	)
	if err := sys.Register(domain.Binding{ActionID: "approve", Trigger: wink}); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	sys.ProcessHand(ctx, domain.HandData{
		IsTracking:  true,
		TimestampMs: 0,
		Hands:       []domain.Hand{{Handedness: domain.HandRight, Gesture: domain.GestureThumbUp, GestureConfidence: 0.93}},
	})
	sys.ProcessFace(ctx, domain.FaceData{
		IsTracking:  true,
		TimestampMs: 10,
		BlendShapes: map[domain.BlendShape]float64{domain.EyeBlinkLeft: 0.8},
	})
	sys.ProcessFace(ctx, domain.FaceData{IsTracking: true, TimestampMs: 30})
	sys.Release()

	for ev := range sys.Events() {
		fmt.Println(ev)
	}
	// Output:
	// started(approve @10)
	// released(approve @30, 20ms)
}
