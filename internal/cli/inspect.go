package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aretw0/gestalt/internal/presentation/graph"
	"github.com/aretw0/gestalt/internal/presentation/tui"
	"github.com/aretw0/gestalt/pkg/bindings"
	"github.com/aretw0/gestalt/pkg/domain"
)

// Validate loads a binding file and reports every problem in it.
func Validate(path string) ([]domain.Binding, error) {
	return bindings.Load(path)
}

// InspectOptions configures Inspect.
type InspectOptions struct {
	// Raw writes the Markdown source instead of rendering it for the terminal.
	Raw bool
	// Graph appends a Mermaid state diagram per binding.
	Graph bool
}

// Inspect writes a summary of a binding file to w.
func Inspect(path string, w io.Writer, opts InspectOptions) error {
	list, err := bindings.Load(path)
	if err != nil {
		return err
	}
	md := BindingsMarkdown(path, list)
	if opts.Graph {
		md += BindingsGraphs(list)
	}
	if opts.Raw {
		_, err := io.WriteString(w, md)
		return err
	}

	render, err := tui.NewRenderer(0)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := render(md)
	if err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

// BindingsMarkdown summarizes bindings as a Markdown document.
func BindingsMarkdown(title string, list []domain.Binding) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "%d binding(s)\n\n", len(list))
	if len(list) == 0 {
		return sb.String()
	}

	sb.WriteString("| Action | Hold | Debounce | Cooldown | Held events |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, b := range list {
		fmt.Fprintf(&sb, "| `%s` | %s | %s | %s | %s |\n",
			b.ActionID, ms(b.HoldTime), ms(b.Debounce), ms(b.Cooldown), yesNo(b.EmitHeldEvents))
	}

	sb.WriteString("\n## Triggers\n\n")
	for _, b := range list {
		fmt.Fprintf(&sb, "- **%s**: %s\n", b.ActionID, describe(b.Trigger))
		if c, ok := b.Trigger.(domain.CombinedTrigger); ok {
			for i := 0; i < c.Len(); i++ {
				fmt.Fprintf(&sb, "  - %s\n", describe(c.At(i)))
			}
		}
	}
	return sb.String()
}

// BindingsGraphs renders one Mermaid state diagram per binding.
func BindingsGraphs(list []domain.Binding) string {
	var sb strings.Builder
	sb.WriteString("\n## State machines\n")
	for _, b := range list {
		fmt.Fprintf(&sb, "\n### %s\n\n```mermaid\n%s```\n", b.ActionID, graph.GenerateMermaid(b, nil))
	}
	return sb.String()
}

func describe(t domain.Trigger) string {
	switch v := t.(type) {
	case domain.GestureTrigger:
		hand := "either hand"
		if v.Handedness != "" {
			hand = strings.ToLower(string(v.Handedness)) + " hand"
		}
		return fmt.Sprintf("`%s` on %s, confidence at least %.2f", v.Gesture, hand, v.MinConfidence)
	case domain.ExpressionTrigger:
		cmp := "at least"
		if v.Direction == domain.Below {
			cmp = "at most"
		}
		return fmt.Sprintf("`%s` %s %.2f", v.BlendShape, cmp, v.Threshold)
	case domain.CombinedTrigger:
		return fmt.Sprintf("all of %d conditions", v.Len())
	case nil:
		return "none"
	}
	return t.String()
}

func ms(d time.Duration) string {
	if d == 0 {
		return "-"
	}
	return d.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
