/*
Package domain contains the core domain models of the Gestalt action-trigger engine.

It defines what the engine consumes (face and hand tracking snapshots), how an
application describes when an action should fire (Triggers and Bindings), the
per-binding lifecycle record (TriggerState) and what the engine produces
(ActionEvents). This package is kept pure and free of I/O, locking and
persistence.

# Key Entities

  - FaceData / HandData: the latest frame of each tracking modality.
  - Trigger: a closed sum of GestureTrigger, ExpressionTrigger and CombinedTrigger.
  - Binding: an action ID, its Trigger and the anti-misfire timings.
  - TriggerState: the phase and timers of one binding.
  - ActionEvent: a closed sum of Started, Held and Released.
*/
package domain
