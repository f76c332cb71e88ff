package mocks

import (
	"context"
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/user/framedump/pkg/ports"
)

// Decoder is a mock implementation of ports.VideoDecoder.
// Each Open returns a fresh FrameReader yielding FrameCount blank frames.
type Decoder struct {
	mu sync.Mutex

	// Info describes the clip reported by readers when OpenFunc is nil.
	Info ports.MediaInfo
	// FrameCount is the number of frames each reader yields.
	FrameCount int
	// OpenedPaths records every path passed to Open.
	OpenedPaths []string
	// Readers collects the readers handed out, for Close verification.
	Readers []*FrameReader

	OpenFunc func(ctx context.Context, path string) (ports.FrameReader, error)
}

// NewDecoder creates a mock Decoder yielding three 64x64 frames per video.
func NewDecoder() *Decoder {
	return &Decoder{
		Info: ports.MediaInfo{
			Width:      64,
			Height:     64,
			FPS:        30,
			FrameCount: 3,
			DurationMs: 100,
			Codec:      "h264",
		},
		FrameCount: 3,
	}
}

func (m *Decoder) Open(ctx context.Context, path string) (ports.FrameReader, error) {
	m.mu.Lock()
	m.OpenedPaths = append(m.OpenedPaths, path)
	m.mu.Unlock()
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, path)
	}
	reader := NewFrameReader(m.Info, m.FrameCount)
	m.mu.Lock()
	m.Readers = append(m.Readers, reader)
	m.mu.Unlock()
	return reader, nil
}

var _ ports.VideoDecoder = (*Decoder)(nil)

// FrameReader is a mock implementation of ports.FrameReader.
type FrameReader struct {
	mu     sync.Mutex
	info   ports.MediaInfo
	frames []image.Image
	pos    int
	closed bool

	NextFunc func() (image.Image, error)
}

// NewFrameReader creates a mock reader yielding count blank frames
// sized according to info.
func NewFrameReader(info ports.MediaInfo, count int) *FrameReader {
	frames := make([]image.Image, count)
	for i := range frames {
		frames[i] = image.NewRGBA(image.Rect(0, 0, info.Width, info.Height))
	}
	return &FrameReader{info: info, frames: frames}
}

func (m *FrameReader) Info() ports.MediaInfo {
	return m.info
}

func (m *FrameReader) Next() (image.Image, error) {
	if m.NextFunc != nil {
		return m.NextFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, fmt.Errorf("reader closed")
	}
	if m.pos >= len(m.frames) {
		return nil, io.EOF
	}
	img := m.frames[m.pos]
	m.pos++
	return img, nil
}

func (m *FrameReader) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close has been called (for test verification).
func (m *FrameReader) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

var _ ports.FrameReader = (*FrameReader)(nil)
