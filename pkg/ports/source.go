package ports

import (
	"context"

	"github.com/aretw0/gestalt/pkg/domain"
)

// Frame is one tracking frame of either modality. Exactly one field is set.
type Frame struct {
	Face *domain.FaceData `json:"face,omitempty"`
	Hand *domain.HandData `json:"hand,omitempty"`
}

// FrameSource yields tracking frames in arrival order.
type FrameSource interface {
	// Next returns the next frame, or io.EOF when the source is exhausted.
	Next(ctx context.Context) (Frame, error)
}
