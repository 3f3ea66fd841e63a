// Package jsonl reads tracking frames from and writes action events to
// line-delimited JSON streams.
//
// Each input line holds exactly one frame:
//
//	{"face": {"is_tracking": true, "timestamp_ms": 40, "blend_shapes": {"jawOpen": 0.7}}}
//	{"hand": {"is_tracking": true, "timestamp_ms": 40, "hands": [{"gesture": "Victory", "gesture_confidence": 0.9}]}}
//
// Blank lines and lines starting with '#' are skipped.
package jsonl

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/aretw0/gestalt/pkg/domain"
	"github.com/aretw0/gestalt/pkg/ports"
)

const maxLineBytes = 4 << 20

// Reader implements ports.FrameSource over a JSON lines stream.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &Reader{scanner: s}
}

// Next returns the next frame, or io.EOF at the end of the stream.
func (r *Reader) Next(ctx context.Context) (ports.Frame, error) {
	for {
		if err := ctx.Err(); err != nil {
			return ports.Frame{}, err
		}
		if !r.scanner.Scan() {
			if err := r.scanner.Err(); err != nil {
				return ports.Frame{}, fmt.Errorf("line %d: %w", r.line+1, err)
			}
			return ports.Frame{}, io.EOF
		}
		r.line++

		raw := bytes.TrimSpace(r.scanner.Bytes())
		if len(raw) == 0 || raw[0] == '#' {
			continue
		}

		var frame ports.Frame
		if err := json.Unmarshal(raw, &frame); err != nil {
			return ports.Frame{}, fmt.Errorf("line %d: invalid frame: %w", r.line, err)
		}
		if (frame.Face == nil) == (frame.Hand == nil) {
			return ports.Frame{}, fmt.Errorf("line %d: frame must carry exactly one of face or hand", r.line)
		}
		return frame, nil
	}
}

// Line returns the number of the last line read.
func (r *Reader) Line() int {
	return r.line
}

// Writer implements ports.EventPublisher by writing one domain.Record per line.
type Writer struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{enc: json.NewEncoder(w)}
}

// Publish writes the event.
func (w *Writer) Publish(_ context.Context, ev domain.ActionEvent) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.enc.Encode(domain.ToRecord(ev))
}
