package memory_test

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/aretw0/gestalt/pkg/adapters/memory"
	"github.com/aretw0/gestalt/pkg/domain"
	"github.com/aretw0/gestalt/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisher_Contract(t *testing.T) {
	ports.RunEventLogContract(t, memory.NewPublisher())
}

func TestPublisher_Concurrent(t *testing.T) {
	p := memory.NewPublisher()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = p.Publish(ctx, domain.Started{ActionID: "a", TimestampMs: int64(i*100 + j)})
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 800, p.Len())
	p.Reset()
	assert.Equal(t, 0, p.Len())
}

func TestFrames(t *testing.T) {
	face := &domain.FaceData{IsTracking: true, TimestampMs: 1}
	hand := &domain.HandData{IsTracking: true, TimestampMs: 2}
	src := memory.NewFrames(ports.Frame{Face: face}, ports.Frame{Hand: hand})
	ctx := context.Background()

	f, err := src.Next(ctx)
	require.NoError(t, err)
	assert.Same(t, face, f.Face)

	f, err = src.Next(ctx)
	require.NoError(t, err)
	assert.Same(t, hand, f.Hand)

	_, err = src.Next(ctx)
	assert.ErrorIs(t, err, io.EOF)
}
