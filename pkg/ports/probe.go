package ports

import "context"

// MediaInfo describes a video stream as reported by its container.
type MediaInfo struct {
	Width      int
	Height     int
	FPS        float64
	FrameCount int // 0 when the container does not report a total
	DurationMs int
	Codec      string
}

// MediaProber extracts stream metadata without decoding any frames.
type MediaProber interface {
	// Probe inspects the video at path and returns its stream properties.
	Probe(ctx context.Context, path string) (MediaInfo, error)
}
