// Package smartprobe provides a media prober that automatically selects a
// probing backend. It prefers ffprobe for its broad container support and
// falls back to pure-Go box parsing when ffprobe is not installed.
package smartprobe

import (
	"context"
	"errors"

	"github.com/user/framedump/pkg/adapters/ffprobe"
	"github.com/user/framedump/pkg/adapters/mp4probe"
	"github.com/user/framedump/pkg/ports"
)

// Backend represents the probing backend used.
type Backend string

const (
	// BackendFFprobe represents probing with the external ffprobe binary.
	BackendFFprobe Backend = "ffprobe"
	// BackendMP4 represents pure-Go MP4 box parsing.
	BackendMP4 Backend = "mp4"
)

var (
	// ErrUnknownBackend is returned when an explicit backend name is not recognized.
	ErrUnknownBackend = errors.New("smartprobe: unknown backend")
)

// Prober wraps ports.MediaProber with backend selection.
type Prober struct {
	inner   ports.MediaProber
	backend Backend
}

// New creates a prober, preferring ffprobe when available.
func New() *Prober {
	if p, err := ffprobe.New(); err == nil {
		return &Prober{inner: p, backend: BackendFFprobe}
	}
	return &Prober{inner: mp4probe.New(), backend: BackendMP4}
}

// NewForBackend creates a prober with an explicit backend.
func NewForBackend(backend Backend) (*Prober, error) {
	switch backend {
	case BackendFFprobe:
		p, err := ffprobe.New()
		if err != nil {
			return nil, err
		}
		return &Prober{inner: p, backend: BackendFFprobe}, nil

	case BackendMP4:
		return &Prober{inner: mp4probe.New(), backend: BackendMP4}, nil

	default:
		return nil, ErrUnknownBackend
	}
}

// Probe inspects the video at path using the selected backend.
func (p *Prober) Probe(ctx context.Context, path string) (ports.MediaInfo, error) {
	return p.inner.Probe(ctx, path)
}

// Backend returns the probing backend being used.
func (p *Prober) Backend() Backend {
	return p.backend
}

// Ensure Prober implements ports.MediaProber
var _ ports.MediaProber = (*Prober)(nil)
