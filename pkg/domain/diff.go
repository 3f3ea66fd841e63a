package domain

// PhaseChange records a binding moving between two phases on a frame.
type PhaseChange struct {
	ActionID    string `json:"action_id"`
	From        Phase  `json:"from"`
	To          Phase  `json:"to"`
	TimestampMs int64  `json:"timestamp_ms"`
}

// Diff returns the phase change between two states of the same binding,
// or nil when the phase did not change.
func Diff(actionID string, oldState, newState TriggerState) *PhaseChange {
	if oldState.Phase == newState.Phase {
		return nil
	}
	return &PhaseChange{
		ActionID:    actionID,
		From:        oldState.Phase,
		To:          newState.Phase,
		TimestampMs: newState.PhaseEnteredAt,
	}
}
