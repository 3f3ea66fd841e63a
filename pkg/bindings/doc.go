/*
Package bindings loads action bindings from YAML or JSON documents.

A binding file lists actions with their trigger and timings:

	bindings:
	  - action_id: smile
	    hold_time: 150ms
	    cooldown: 1s
	    debounce: 80ms
	    trigger:
	      type: expression
	      blend_shape: mouthSmileLeft
	      threshold: 0.6
	      direction: above
	  - action_id: rock-on
	    emit_held_events: true
	    trigger:
	      type: combined
	      all:
	        - type: gesture
	          gesture: ILoveYou
	          handedness: Right
	          min_confidence: 0.7
	        - type: expression
	          blend_shape: jawOpen
	          threshold: 0.4

Durations accept Go duration strings ("150ms", "1.5s") or bare numbers, read
as milliseconds. All problems in a file are reported together as an
*AggregateError.
*/
package bindings
