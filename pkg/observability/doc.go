/*
Package observability provides tools for monitoring the Gestalt engine.

It adapts Prometheus collectors and structured logging to domain.LifecycleHooks,
so the engine reports frames, phase changes, events and drops without depending
on either. Chain merges several hook sets into one.
*/
package observability
