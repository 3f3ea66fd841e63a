package graph_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aretw0/gestalt/internal/presentation/graph"
	"github.com/aretw0/gestalt/pkg/domain"
)

func TestGenerateMermaid(t *testing.T) {
	base := domain.Binding{
		ActionID: "smile",
		Trigger:  domain.OnExpression(domain.MouthSmileLeft, 0.6, domain.Above),
		HoldTime: 150 * time.Millisecond,
		Debounce: 80 * time.Millisecond,
	}

	tests := []struct {
		name        string
		mutate      func(*domain.Binding)
		overlay     *graph.GraphOverlay
		contains    []string
		notContains []string
	}{
		{
			name: "Timings on edges",
			contains: []string{
				"stateDiagram-v2",
				"%% smile: expression(mouthSmileLeft >= 0.60)",
				"pending --> active : held 150ms / Started",
				"active --> idle : lost 80ms / Released",
			},
			notContains: []string{"cooldown", "/ Held"},
		},
		{
			name: "Cooldown phase",
			mutate: func(b *domain.Binding) {
				b.Cooldown = time.Second
			},
			contains: []string{
				"active --> cooldown : lost 80ms / Released",
				"cooldown --> idle : after 1s",
			},
		},
		{
			name: "Held loop",
			mutate: func(b *domain.Binding) {
				b.EmitHeldEvents = true
			},
			contains: []string{"active --> active : met / Held"},
		},
		{
			name: "Overlay",
			overlay: &graph.GraphOverlay{
				Visited: []domain.Phase{domain.PhaseIdle, domain.PhasePending, domain.PhaseIdle, domain.PhaseActive},
				Current: domain.PhaseActive,
			},
			contains: []string{
				"class idle visited",
				"class pending visited",
				"class active current",
			},
			notContains: []string{"class active visited"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := base
			if tt.mutate != nil {
				tt.mutate(&b)
			}
			got := graph.GenerateMermaid(b, tt.overlay)
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("expected output to contain %q\n%s", s, got)
				}
			}
			for _, s := range tt.notContains {
				if strings.Contains(got, s) {
					t.Errorf("expected output not to contain %q\n%s", s, got)
				}
			}
			if strings.Count(got, "class idle visited") > 1 {
				t.Error("visited phases must be deduplicated")
			}
		})
	}
}
