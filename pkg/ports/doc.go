/*
Package ports defines the driven ports (interfaces) for the Gestalt engine.

These interfaces decouple the engine from the places action events go to and
tracking frames come from, so the same system can feed an in-memory recorder,
a Redis stream or a replayed capture file.

# Key Interfaces

  - EventPublisher: receives every action event the engine emits.
  - EventLog: an EventPublisher that can also read back what it stored.
  - FrameSource: yields tracking frames in arrival order.
*/
package ports
