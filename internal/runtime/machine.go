package runtime

import "github.com/aretw0/gestalt/pkg/domain"

// maxCascade bounds the transitions one binding may take on a single frame:
// at most one per phase.
const maxCascade = 4

// transition applies a single row of the phase table to s.
// It returns the next state and the event the row emits, if any.
func transition(b domain.Binding, s domain.TriggerState, met bool, now int64) (domain.TriggerState, domain.ActionEvent) {
	switch s.Phase {
	case domain.PhaseIdle:
		if met {
			return enter(s, domain.PhasePending, now), nil
		}

	case domain.PhasePending:
		if !met {
			return enter(s, domain.PhaseIdle, now), nil
		}
		if elapsed(now, s.PhaseEnteredAt, b.HoldMs()) {
			return enter(s, domain.PhaseActive, now), domain.Started{ActionID: b.ActionID, TimestampMs: now}
		}

	case domain.PhaseActive:
		if met {
			s.ConditionLostAt = domain.NotLost
			if b.EmitHeldEvents {
				return s, domain.Held{ActionID: b.ActionID, TimestampMs: now, DurationMs: now - s.PhaseEnteredAt}
			}
			return s, nil
		}
		if s.ConditionLostAt == domain.NotLost {
			s.ConditionLostAt = now
		}
		if elapsed(now, s.ConditionLostAt, b.DebounceMs()) {
			released := domain.Released{ActionID: b.ActionID, TimestampMs: now, TotalDurationMs: now - s.PhaseEnteredAt}
			next := domain.PhaseIdle
			if b.CooldownMs() > 0 {
				next = domain.PhaseCooldown
			}
			return enter(s, next, now), released
		}

	case domain.PhaseCooldown:
		if elapsed(now, s.PhaseEnteredAt, b.CooldownMs()) {
			return enter(s, domain.PhaseIdle, now), nil
		}
	}
	return s, nil
}

// advance runs one frame for one binding. It applies transitions until the phase
// settles. Active and Cooldown are only processed when the binding was already in
// that phase when the frame began; entering either of them ends the frame.
func advance(b domain.Binding, s domain.TriggerState, met bool, now int64) (domain.TriggerState, []domain.ActionEvent, []domain.PhaseChange) {
	var (
		events  []domain.ActionEvent
		changes []domain.PhaseChange
	)
	entry := s.Phase
	s.ConditionMet = met

	for i := 0; i < maxCascade; i++ {
		if (s.Phase == domain.PhaseActive || s.Phase == domain.PhaseCooldown) && s.Phase != entry {
			break
		}

		next, ev := transition(b, s, met, now)
		if ev != nil {
			events = append(events, ev)
		}
		change := domain.Diff(b.ActionID, s, next)
		s = next
		if change == nil {
			break
		}
		changes = append(changes, *change)
	}
	return s, events, changes
}

func enter(s domain.TriggerState, p domain.Phase, now int64) domain.TriggerState {
	s.Phase = p
	s.PhaseEnteredAt = now
	s.ConditionLostAt = domain.NotLost
	return s
}

// elapsed reports whether at least threshold ms passed between since and now.
func elapsed(now, since, threshold int64) bool {
	return now-since >= threshold
}
