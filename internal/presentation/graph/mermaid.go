package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/gestalt/pkg/domain"
)

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	Visited []domain.Phase
	Current domain.Phase
}

// GenerateMermaid produces a Mermaid state diagram of one binding's phase machine.
// Edges are labelled with the binding's own timings; phases that the binding
// can never reach (Cooldown without a cooldown) are left out.
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(b domain.Binding, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")
	fmt.Fprintf(&sb, "    %%%% %s: %s\n", b.ActionID, sanitizeLabel(b.Trigger.String()))

	sb.WriteString("    [*] --> idle\n")
	sb.WriteString("    idle --> pending : condition met\n")
	sb.WriteString("    pending --> idle : condition lost\n")
	fmt.Fprintf(&sb, "    pending --> active : held %s / Started\n", b.HoldTime)
	if b.EmitHeldEvents {
		sb.WriteString("    active --> active : met / Held\n")
	}

	release := fmt.Sprintf("lost %s / Released", b.Debounce)
	if b.Cooldown > 0 {
		fmt.Fprintf(&sb, "    active --> cooldown : %s\n", release)
		fmt.Fprintf(&sb, "    cooldown --> idle : after %s\n", b.Cooldown)
	} else {
		fmt.Fprintf(&sb, "    active --> idle : %s\n", release)
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000\n")

		seen := make(map[domain.Phase]bool)
		for _, p := range overlay.Visited {
			if p == "" || seen[p] || p == overlay.Current {
				continue
			}
			seen[p] = true
			fmt.Fprintf(&sb, "    class %s visited\n", p)
		}
		if overlay.Current != "" {
			fmt.Fprintf(&sb, "    class %s current\n", overlay.Current)
		}
	}

	return sb.String()
}

func sanitizeLabel(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\"", "'")
}
