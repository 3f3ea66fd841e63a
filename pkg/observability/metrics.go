package observability

import (
	"context"
	"time"

	"github.com/aretw0/gestalt/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the engine collectors.
type Metrics struct {
	Frames      *prometheus.CounterVec
	Events      *prometheus.CounterVec
	Transitions *prometheus.CounterVec
	Dropped     *prometheus.CounterVec
	Evaluation  *prometheus.HistogramVec
	Bindings    prometheus.Gauge
}

// New creates the collectors and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Frames: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gestalt_frames_total",
			Help: "Total tracking frames processed by modality",
		}, []string{"modality"}),

		Events: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gestalt_action_events_total",
			Help: "Total action events emitted by action and type",
		}, []string{"action_id", "type"}),

		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gestalt_phase_transitions_total",
			Help: "Total trigger phase transitions by action and target phase",
		}, []string{"action_id", "to"}),

		Dropped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gestalt_dropped_events_total",
			Help: "Total action events discarded by a full event buffer",
		}, []string{"action_id"}),

		Evaluation: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gestalt_frame_evaluation_seconds",
			Help:    "Time spent evaluating all bindings against one frame",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}, []string{"modality"}),

		Bindings: factory.NewGauge(prometheus.GaugeOpts{
			Name: "gestalt_bindings",
			Help: "Number of bindings registered at the last processed frame",
		}),
	}
}

// ObserveFrame records one processed frame.
func (m *Metrics) ObserveFrame(modality domain.Modality, bindings int, elapsed time.Duration) {
	if m != nil {
		m.Frames.WithLabelValues(string(modality)).Inc()
		m.Evaluation.WithLabelValues(string(modality)).Observe(elapsed.Seconds())
		m.Bindings.Set(float64(bindings))
	}
}

// IncrementEvent records an emitted action event.
func (m *Metrics) IncrementEvent(ev domain.ActionEvent) {
	if m != nil {
		m.Events.WithLabelValues(ev.Action(), string(ev.Type())).Inc()
	}
}

// IncrementTransition records a phase change.
func (m *Metrics) IncrementTransition(actionID string, to domain.Phase) {
	if m != nil {
		m.Transitions.WithLabelValues(actionID, string(to)).Inc()
	}
}

// IncrementDropped records an event lost to buffer overflow.
func (m *Metrics) IncrementDropped(ev domain.ActionEvent) {
	if m != nil {
		m.Dropped.WithLabelValues(ev.Action()).Inc()
	}
}

// Hooks adapts the metrics to engine lifecycle hooks.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnFrame: func(_ context.Context, e *domain.FrameEvent) {
			m.ObserveFrame(e.Modality, e.Bindings, e.Elapsed)
		},
		OnPhaseChange: func(_ context.Context, c *domain.PhaseChange) {
			m.IncrementTransition(c.ActionID, c.To)
		},
		OnEvent: func(_ context.Context, ev domain.ActionEvent) {
			m.IncrementEvent(ev)
		},
		OnDrop: func(_ context.Context, ev domain.ActionEvent) {
			m.IncrementDropped(ev)
		},
	}
}
