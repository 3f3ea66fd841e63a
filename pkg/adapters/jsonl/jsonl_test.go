package jsonl_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/gestalt/pkg/adapters/jsonl"
	"github.com/aretw0/gestalt/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader(t *testing.T) {
	input := `
# warm-up
{"face": {"is_tracking": true, "timestamp_ms": 10, "blend_shapes": {"jawOpen": 0.7}}}

{"hand": {"is_tracking": true, "timestamp_ms": 20, "hands": [{"handedness": "Left", "gesture": "Victory", "gesture_confidence": 0.9}]}}
`
	r := jsonl.NewReader(strings.NewReader(input))
	ctx := context.Background()

	f, err := r.Next(ctx)
	require.NoError(t, err)
	require.NotNil(t, f.Face)
	assert.Equal(t, 0.7, f.Face.BlendShape(domain.JawOpen))
	assert.Equal(t, int64(10), f.Face.TimestampMs)

	f, err = r.Next(ctx)
	require.NoError(t, err)
	require.NotNil(t, f.Hand)
	assert.Equal(t, []domain.Hand{{Handedness: domain.HandLeft, Gesture: domain.GestureVictory, GestureConfidence: 0.9}}, f.Hand.Hands)
	assert.Equal(t, 5, r.Line())

	_, err = r.Next(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestReader_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := jsonl.NewReader(strings.NewReader(`{"face": `)).Next(ctx)
	assert.ErrorContains(t, err, "line 1")

	_, err = jsonl.NewReader(strings.NewReader(`{}`)).Next(ctx)
	assert.ErrorContains(t, err, "exactly one")

	_, err = jsonl.NewReader(strings.NewReader(`{"face":{},"hand":{}}`)).Next(ctx)
	assert.ErrorContains(t, err, "exactly one")
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := jsonl.NewWriter(&buf)
	ctx := context.Background()

	require.NoError(t, w.Publish(ctx, domain.Started{ActionID: "peace", TimestampMs: 20}))
	require.NoError(t, w.Publish(ctx, domain.Released{ActionID: "peace", TimestampMs: 90, TotalDurationMs: 70}))

	assert.Equal(t,
		`{"type":"started","action_id":"peace","timestamp_ms":20}`+"\n"+
			`{"type":"released","action_id":"peace","timestamp_ms":90,"duration_ms":70}`+"\n",
		buf.String())
}
