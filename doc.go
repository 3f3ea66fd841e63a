/*
Package gestalt is an action-trigger engine that turns noisy per-frame face and
hand tracking signals into discrete, debounced application events.

Each registered Binding runs its own phase machine (Idle → Pending → Active →
Cooldown). A condition must hold for the binding's hold time before the action
Starts, brief losses shorter than the debounce are ignored while active, and
after a Release the binding rests for its cooldown. Timing is driven only by
the timestamps carried on incoming frames.

# Concept

The host drives the System once per tracking frame. Face and hand frames may
arrive at different rates; triggers are always evaluated against the latest
snapshot of each modality. Every call returns the events it produced, and the
same events are pushed, in order, to the Events stream.

# Usage

	sys := gestalt.New(gestalt.WithLogger(logger))
	defer sys.Release()

	err := sys.Register(domain.Binding{
		ActionID: "smile",
		Trigger:  domain.OnExpression(domain.MouthSmileLeft, 0.6, domain.Above),
		HoldTime: 150 * time.Millisecond,
		Debounce: 80 * time.Millisecond,
	})
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		for ev := range sys.Events() {
			log.Println(ev)
		}
	}()

	for frame := range faceFrames {
		sys.ProcessFace(ctx, frame)
	}

# Concurrency

All methods are safe for concurrent use. A single lock serializes registry
changes and evaluation passes; events are published after it is released.
Release is a one-way gate: afterwards every call is a silent no-op and the
Events stream is closed once drained. The default event buffer is unbounded,
so a host that never drains Events must use WithEventBuffer.
*/
package gestalt
