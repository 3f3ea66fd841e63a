package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/gestalt/pkg/adapters/redis"
	"github.com/aretw0/gestalt/pkg/domain"
	"github.com/aretw0/gestalt/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisPublisher_Contract(t *testing.T) {
	_, client := newClient(t)
	ports.RunEventLogContract(t, redis.NewFromClient(client))
}

func TestRedisPublisher_StreamFields(t *testing.T) {
	mr, client := newClient(t)
	pub := redis.NewFromClient(client, redis.WithStream("test:events"))
	ctx := context.Background()

	require.NoError(t, pub.Ping(ctx))
	require.NoError(t, pub.Publish(ctx, domain.Released{ActionID: "wave", TimestampMs: 300, TotalDurationMs: 120}))

	entries, err := mr.Stream("test:events")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, []string{
		"type", "released",
		"action_id", "wave",
		"timestamp_ms", "300",
		"duration_ms", "120",
	}, sortedPairs(entries[0].Values))
}

func TestRedisPublisher_MaxLen(t *testing.T) {
	_, client := newClient(t)
	pub := redis.NewFromClient(client, redis.WithMaxLen(2))
	ctx := context.Background()

	for ts := int64(1); ts <= 5; ts++ {
		require.NoError(t, pub.Publish(ctx, domain.Started{ActionID: "a", TimestampMs: ts}))
	}

	events, err := pub.Read(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []domain.ActionEvent{
		domain.Started{ActionID: "a", TimestampMs: 4},
		domain.Started{ActionID: "a", TimestampMs: 5},
	}, events)
}

func TestRedisPublisher_ConnectionError(t *testing.T) {
	mr, client := newClient(t)
	pub := redis.NewFromClient(client)
	mr.Close()

	err := pub.Publish(context.Background(), domain.Started{ActionID: "a"})
	assert.Error(t, err)
}

// sortedPairs orders field/value pairs by the field order of domain.Record.
func sortedPairs(values []string) []string {
	order := []string{"type", "action_id", "timestamp_ms", "duration_ms"}
	m := make(map[string]string, len(values)/2)
	for i := 0; i+1 < len(values); i += 2 {
		m[values[i]] = values[i+1]
	}
	out := make([]string, 0, len(values))
	for _, k := range order {
		if v, ok := m[k]; ok {
			out = append(out, k, v)
		}
	}
	return out
}
