package tui

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/aretw0/gestalt/pkg/domain"
	"github.com/muesli/termenv"
)

// EventPrinter writes action events as colored text, one per line.
// It implements ports.EventPublisher.
type EventPrinter struct {
	mu  sync.Mutex
	w   io.Writer
	out *termenv.Output
}

// NewEventPrinter creates a printer. Colors follow the terminal's capabilities;
// pass termenv.WithProfile(termenv.Ascii) to disable them.
func NewEventPrinter(w io.Writer, opts ...termenv.OutputOption) *EventPrinter {
	return &EventPrinter{w: w, out: termenv.NewOutput(w, opts...)}
}

var eventColors = map[domain.EventType]string{
	domain.EventStarted:  "#22c55e",
	domain.EventHeld:     "#eab308",
	domain.EventReleased: "#a78bfa",
}

// Publish prints ev.
func (p *EventPrinter) Publish(_ context.Context, ev domain.ActionEvent) error {
	label := p.out.String(fmt.Sprintf("%-8s", ev.Type())).
		Foreground(p.out.Color(eventColors[ev.Type()])).
		Bold()

	var detail string
	switch e := ev.(type) {
	case domain.Held:
		detail = fmt.Sprintf(" held for %dms", e.DurationMs)
	case domain.Released:
		detail = fmt.Sprintf(" after %dms", e.TotalDurationMs)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := fmt.Fprintf(p.w, "%8dms  %s %s%s\n", ev.At(), label, ev.Action(), p.out.String(detail).Faint())
	return err
}
