package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidTrigger is returned when a trigger violates its construction invariants.
var ErrInvalidTrigger = errors.New("invalid trigger")

// ErrInvalidBinding is returned when a binding is malformed (empty ID, nil trigger, negative timings).
var ErrInvalidBinding = errors.New("invalid binding")

// ErrDuplicateAction is returned when registering an action ID that is already registered.
var ErrDuplicateAction = errors.New("action already registered")

// InvalidTriggerError describes why a trigger could not be constructed.
type InvalidTriggerError struct {
	Reason string
}

func (e *InvalidTriggerError) Error() string {
	return fmt.Sprintf("invalid trigger: %s", e.Reason)
}

// Is lets errors.Is match ErrInvalidTrigger.
func (e *InvalidTriggerError) Is(target error) bool {
	return target == ErrInvalidTrigger
}
