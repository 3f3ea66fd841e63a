package domain

// Phase is the lifecycle stage of one binding.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhasePending  Phase = "pending"
	PhaseActive   Phase = "active"
	PhaseCooldown Phase = "cooldown"
)

// NotLost is the ConditionLostAt sentinel meaning the condition has not been lost.
const NotLost int64 = -1

// TriggerState represents the mutable lifecycle record of one binding.
type TriggerState struct {
	// Phase is the current lifecycle stage.
	Phase Phase `json:"phase"`

	// PhaseEnteredAt is the timestamp of the frame that caused entry into Phase.
	PhaseEnteredAt int64 `json:"phase_entered_at"`

	// ConditionLostAt is the timestamp of the first frame of condition loss while
	// Active, or NotLost.
	ConditionLostAt int64 `json:"condition_lost_at"`

	// ConditionMet is the last observed evaluation result.
	ConditionMet bool `json:"condition_met"`
}

// NewTriggerState creates a clean Idle state.
func NewTriggerState() TriggerState {
	return TriggerState{
		Phase:           PhaseIdle,
		ConditionLostAt: NotLost,
	}
}
