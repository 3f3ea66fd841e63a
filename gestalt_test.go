package gestalt_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/gestalt"
	"github.com/aretw0/gestalt/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func palm(ts int64, open bool) domain.HandData {
	h := domain.HandData{IsTracking: true, TimestampMs: ts}
	if open {
		h.Hands = []domain.Hand{{Handedness: domain.HandLeft, Gesture: domain.GestureOpenPalm, GestureConfidence: 0.9}}
	}
	return h
}

func TestSystem_RegisterAll(t *testing.T) {
	sys := gestalt.New()
	defer sys.Release()

	err := sys.RegisterAll(
		domain.Binding{ActionID: "wave", Trigger: domain.OnGesture(domain.GestureOpenPalm, 0.5)},
		domain.Binding{ActionID: "fist", Trigger: domain.OnGesture(domain.GestureClosedFist, 0.5)},
		domain.Binding{ActionID: "wave", Trigger: domain.OnGesture(domain.GestureVictory, 0.5)},
	)

	assert.ErrorIs(t, err, domain.ErrDuplicateAction)
	assert.Contains(t, err.Error(), `"wave"`)
	assert.Len(t, sys.Bindings(), 2)
}

func TestSystem_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	sys := gestalt.New(gestalt.WithLogger(logger), gestalt.WithName("booth-1"))

	require.NoError(t, sys.Register(domain.Binding{ActionID: "wave", Trigger: domain.OnGesture(domain.GestureOpenPalm, 0.5)}))
	sys.ProcessHand(context.Background(), palm(0, true))
	sys.Release()

	out := buf.String()
	assert.Contains(t, out, "system=booth-1")
	assert.Contains(t, out, "binding registered")
	assert.Contains(t, out, "to=active")
	assert.Contains(t, out, "action system released")
}

func TestSystem_BoundedDropOldest(t *testing.T) {
	sys := gestalt.New(gestalt.WithEventBuffer(2, gestalt.OverflowDropOldest))
	ctx := context.Background()
	require.NoError(t, sys.Register(domain.Binding{ActionID: "wave", Trigger: domain.OnGesture(domain.GestureOpenPalm, 0.5)}))

	for ts := int64(0); ts < 60; ts += 20 {
		sys.ProcessHand(ctx, palm(ts, true))
		sys.ProcessHand(ctx, palm(ts+10, false))
	}
	sys.Release()

	var streamed []domain.ActionEvent
	for ev := range sys.Events() {
		streamed = append(streamed, ev)
	}
	assert.Equal(t, int64(4), sys.Dropped())
	assert.Equal(t, []domain.ActionEvent{
		domain.Started{ActionID: "wave", TimestampMs: 40},
		domain.Released{ActionID: "wave", TimestampMs: 50, TotalDurationMs: 10},
	}, streamed)
}

func TestParseOverflowPolicy(t *testing.T) {
	p, err := gestalt.ParseOverflowPolicy("drop-newest")
	require.NoError(t, err)
	assert.Equal(t, gestalt.OverflowDropNewest, p)
}
