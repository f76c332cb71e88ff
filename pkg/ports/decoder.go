package ports

import (
	"context"
	"image"
)

// FrameReader yields decoded frames one at a time in presentation order.
type FrameReader interface {
	// Info returns the stream properties of the opened video.
	Info() MediaInfo

	// Next returns the next decoded frame. It returns io.EOF when the
	// stream is exhausted and a non-EOF error when decoding fails.
	Next() (image.Image, error)

	// Close releases decoder resources. It is safe to call more than once.
	Close() error
}

// VideoDecoder abstracts video decoding operations.
type VideoDecoder interface {
	// Open starts decoding the video at path and returns a reader over its
	// frames. The caller must close the reader.
	Open(ctx context.Context, path string) (FrameReader, error)
}
