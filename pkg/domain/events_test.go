package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord(t *testing.T) {
	events := []ActionEvent{
		Started{ActionID: "a", TimestampMs: 1},
		Held{ActionID: "a", TimestampMs: 5, DurationMs: 4},
		Released{ActionID: "a", TimestampMs: 9, TotalDurationMs: 8},
	}
	for _, ev := range events {
		rec := ToRecord(ev)
		assert.Equal(t, ev.Type(), rec.Type)
		back, err := rec.Event()
		require.NoError(t, err)
		assert.Equal(t, ev, back)
	}

	assert.Equal(t, int64(8), ToRecord(events[2]).DurationMs)

	_, err := Record{Type: "exploded"}.Event()
	assert.Error(t, err)
}

func TestDiff(t *testing.T) {
	idle := NewTriggerState()
	pending := TriggerState{Phase: PhasePending, PhaseEnteredAt: 40, ConditionLostAt: NotLost}

	assert.Nil(t, Diff("a", idle, idle))
	assert.Equal(t, &PhaseChange{ActionID: "a", From: PhaseIdle, To: PhasePending, TimestampMs: 40}, Diff("a", idle, pending))
}
