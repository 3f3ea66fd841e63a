package relay_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/aretw0/gestalt"
	"github.com/aretw0/gestalt/pkg/adapters/memory"
	"github.com/aretw0/gestalt/pkg/domain"
	"github.com/aretw0/gestalt/pkg/relay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, domain.ActionEvent) error {
	return errors.New("broker unavailable")
}

type slowPublisher struct{}

func (slowPublisher) Publish(ctx context.Context, _ domain.ActionEvent) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestRelay_ForwardsUntilStreamCloses(t *testing.T) {
	sys := gestalt.New()
	require.NoError(t, sys.Register(domain.Binding{
		ActionID: "victory",
		Trigger:  domain.OnGesture(domain.GestureVictory, 0.5),
	}))

	var logs bytes.Buffer
	pub := memory.NewPublisher()
	r := relay.New(sys.Events(),
		relay.WithPublisher(failingPublisher{}),
		relay.WithPublisher(pub),
		relay.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
	)

	done := make(chan error, 1)
	go func() { done <- r.Run(context.Background()) }()

	ctx := context.Background()
	victory := []domain.Hand{{Gesture: domain.GestureVictory, GestureConfidence: 0.9}}
	sys.ProcessHand(ctx, domain.HandData{IsTracking: true, TimestampMs: 0, Hands: victory})
	sys.ProcessHand(ctx, domain.HandData{IsTracking: true, TimestampMs: 30})
	sys.Release()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("relay did not stop after release")
	}

	events, err := pub.Read(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []domain.ActionEvent{
		domain.Started{ActionID: "victory", TimestampMs: 0},
		domain.Released{ActionID: "victory", TimestampMs: 30, TotalDurationMs: 30},
	}, events)
	assert.Equal(t, int64(2), r.Published())
	assert.Equal(t, int64(2), r.Failed())
	assert.Contains(t, logs.String(), "broker unavailable")
}

func TestRelay_StopsOnContextCancel(t *testing.T) {
	events := make(chan domain.ActionEvent)
	r := relay.New(events)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, r.Run(ctx), context.Canceled)
}

func TestRelay_PublishTimeout(t *testing.T) {
	events := make(chan domain.ActionEvent, 1)
	events <- domain.Started{ActionID: "a"}
	close(events)

	r := relay.New(events,
		relay.WithPublisher(slowPublisher{}),
		relay.WithPublishTimeout(10*time.Millisecond),
	)
	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, int64(1), r.Failed())
}
