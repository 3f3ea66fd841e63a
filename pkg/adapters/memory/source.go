package memory

import (
	"context"
	"io"
	"sync"

	"github.com/aretw0/gestalt/pkg/ports"
)

// Frames implements ports.FrameSource over a fixed list of frames.
type Frames struct {
	frames []ports.Frame
	next   int
	mu     sync.Mutex
}

// NewFrames creates a source that yields frames in order, then io.EOF.
func NewFrames(frames ...ports.Frame) *Frames {
	return &Frames{frames: frames}
}

// Next returns the next frame.
func (f *Frames) Next(ctx context.Context) (ports.Frame, error) {
	if err := ctx.Err(); err != nil {
		return ports.Frame{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.next >= len(f.frames) {
		return ports.Frame{}, io.EOF
	}
	frame := f.frames[f.next]
	f.next++
	return frame, nil
}
