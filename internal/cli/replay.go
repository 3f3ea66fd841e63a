package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/gestalt"
	"github.com/aretw0/gestalt/internal/logging"
	"github.com/aretw0/gestalt/internal/presentation/tui"
	"github.com/aretw0/gestalt/pkg/adapters/jsonl"
	"github.com/aretw0/gestalt/pkg/bindings"
	"github.com/aretw0/gestalt/pkg/domain"
	"github.com/aretw0/gestalt/pkg/observability"
	"github.com/aretw0/gestalt/pkg/ports"
	"golang.org/x/term"
)

// OutputFormat selects how replayed events are printed.
type OutputFormat string

const (
	FormatAuto OutputFormat = ""
	FormatJSON OutputFormat = "json"
	FormatText OutputFormat = "text"
)

// ReplayOptions configures Replay.
type ReplayOptions struct {
	BindingsPath string
	Input        io.Reader
	Output       io.Writer
	Format       OutputFormat
	Debug        bool
}

// ReplayResult summarizes a replay.
type ReplayResult struct {
	Frames int
	Events int
}

// Replay feeds every frame of a JSON lines capture through a fresh system built
// from the binding file and prints the resulting events.
func Replay(ctx context.Context, opts ReplayOptions) (ReplayResult, error) {
	var res ReplayResult

	list, err := bindings.Load(opts.BindingsPath)
	if err != nil {
		return res, err
	}

	logger := createLogger(opts.Debug)
	sysOpts := []gestalt.Option{gestalt.WithLogger(logger), gestalt.WithName("replay")}
	if opts.Debug {
		sysOpts = append(sysOpts, gestalt.WithLifecycleHooks(observability.LogHooks(logger)))
	}
	sys := gestalt.New(sysOpts...)
	defer sys.Release()

	if err := sys.RegisterAll(list...); err != nil {
		return res, err
	}

	out := newEventOutput(opts.Output, opts.Format)
	src := jsonl.NewReader(opts.Input)
	for {
		frame, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return res, err
		}
		res.Frames++

		events := process(ctx, sys, frame)
		for _, ev := range events {
			if err := out.Publish(ctx, ev); err != nil {
				return res, fmt.Errorf("failed to write event: %w", err)
			}
		}
		res.Events += len(events)
	}
}

func process(ctx context.Context, sys *gestalt.System, frame ports.Frame) []domain.ActionEvent {
	if frame.Face != nil {
		return sys.ProcessFace(ctx, *frame.Face)
	}
	return sys.ProcessHand(ctx, *frame.Hand)
}

func newEventOutput(w io.Writer, format OutputFormat) ports.EventPublisher {
	if format == FormatAuto {
		format = FormatJSON
		if isTerminal(w) {
			format = FormatText
		}
	}
	if format == FormatText {
		return tui.NewEventPrinter(w)
	}
	return jsonl.NewWriter(w)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// createLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from Stdout event output).
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}
