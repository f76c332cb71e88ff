package mocks

import (
	"context"
	"sync"

	"github.com/user/framedump/pkg/ports"
)

// Prober is a mock implementation of ports.MediaProber.
type Prober struct {
	mu sync.Mutex

	// Info is returned by Probe when ProbeFunc is nil.
	Info ports.MediaInfo
	// ProbedPaths records every path passed to Probe.
	ProbedPaths []string

	ProbeFunc func(ctx context.Context, path string) (ports.MediaInfo, error)
}

// NewProber creates a mock Prober reporting a small 30 fps clip.
func NewProber() *Prober {
	return &Prober{
		Info: ports.MediaInfo{
			Width:      64,
			Height:     64,
			FPS:        30,
			FrameCount: 3,
			DurationMs: 100,
			Codec:      "h264",
		},
	}
}

func (m *Prober) Probe(ctx context.Context, path string) (ports.MediaInfo, error) {
	m.mu.Lock()
	m.ProbedPaths = append(m.ProbedPaths, path)
	m.mu.Unlock()
	if m.ProbeFunc != nil {
		return m.ProbeFunc(ctx, path)
	}
	return m.Info, nil
}

var _ ports.MediaProber = (*Prober)(nil)
