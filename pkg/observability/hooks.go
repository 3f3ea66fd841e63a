package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/gestalt/pkg/domain"
)

// Chain merges several hook sets. Callbacks run in argument order.
func Chain(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range sets {
		h := h
		if h.OnFrame != nil {
			prev := out.OnFrame
			out.OnFrame = func(ctx context.Context, e *domain.FrameEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnFrame(ctx, e)
			}
		}
		if h.OnPhaseChange != nil {
			prev := out.OnPhaseChange
			out.OnPhaseChange = func(ctx context.Context, c *domain.PhaseChange) {
				if prev != nil {
					prev(ctx, c)
				}
				h.OnPhaseChange(ctx, c)
			}
		}
		if h.OnEvent != nil {
			prev := out.OnEvent
			out.OnEvent = func(ctx context.Context, ev domain.ActionEvent) {
				if prev != nil {
					prev(ctx, ev)
				}
				h.OnEvent(ctx, ev)
			}
		}
		if h.OnDrop != nil {
			prev := out.OnDrop
			out.OnDrop = func(ctx context.Context, ev domain.ActionEvent) {
				if prev != nil {
					prev(ctx, ev)
				}
				h.OnDrop(ctx, ev)
			}
		}
	}
	return out
}

// LogHooks logs every action event at Info level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnEvent: func(ctx context.Context, ev domain.ActionEvent) {
			logger.InfoContext(ctx, "action event",
				"action_id", ev.Action(),
				"type", ev.Type(),
				"timestamp_ms", ev.At(),
			)
		},
	}
}
