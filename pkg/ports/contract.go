package ports

import (
	"context"
	"testing"

	"github.com/aretw0/gestalt/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunEventLogContract runs a suite of tests to verify that an EventLog
// implementation adheres to the interface contract. The log must start empty.
func RunEventLogContract(t *testing.T, log EventLog) {
	ctx := context.Background()

	t.Run("Empty", func(t *testing.T) {
		events, err := log.Read(ctx, 0)
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	published := []domain.ActionEvent{
		domain.Started{ActionID: "smile", TimestampMs: 80},
		domain.Held{ActionID: "smile", TimestampMs: 120, DurationMs: 40},
		domain.Released{ActionID: "smile", TimestampMs: 280, TotalDurationMs: 200},
	}

	t.Run("Publish and Read preserves order", func(t *testing.T) {
		for _, ev := range published {
			require.NoError(t, log.Publish(ctx, ev), "Publish should not return error")
		}

		events, err := log.Read(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, published, events)
	})

	t.Run("Read honors count", func(t *testing.T) {
		events, err := log.Read(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, published[:2], events)
	})

	t.Run("Publish after cancellation", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		// Either outcome is allowed, but a failure must surface as an error, never a panic.
		assert.NotPanics(t, func() {
			_ = log.Publish(cancelled, domain.Started{ActionID: "late"})
		})
	})
}
