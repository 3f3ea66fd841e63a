package tui

import (
	"bytes"
	"context"
	"testing"

	"github.com/aretw0/gestalt/pkg/domain"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventPrinter_Plain(t *testing.T) {
	var buf bytes.Buffer
	p := NewEventPrinter(&buf, termenv.WithProfile(termenv.Ascii))
	ctx := context.Background()

	require.NoError(t, p.Publish(ctx, domain.Started{ActionID: "smile", TimestampMs: 80}))
	require.NoError(t, p.Publish(ctx, domain.Held{ActionID: "smile", TimestampMs: 120, DurationMs: 40}))
	require.NoError(t, p.Publish(ctx, domain.Released{ActionID: "smile", TimestampMs: 280, TotalDurationMs: 200}))

	assert.Equal(t,
		"      80ms  started  smile\n"+
			"     120ms  held     smile held for 40ms\n"+
			"     280ms  released smile after 200ms\n",
		buf.String())
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "1.2.3")
	assert.Contains(t, buf.String(), "v1.2.3")
}

func TestNewRenderer(t *testing.T) {
	render, err := NewRenderer(80)
	require.NoError(t, err)
	out, err := render("# Bindings\n\n`smile`")
	require.NoError(t, err)
	assert.Contains(t, out, "Bindings")
	assert.Contains(t, out, "smile")
}
