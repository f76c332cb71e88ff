package ffmpegdecoder

import "errors"

var (
	// ErrFFmpegNotFound is returned when no usable ffmpeg binary can be located.
	ErrFFmpegNotFound = errors.New("ffmpegdecoder: ffmpeg not found")

	// ErrOpenFailed is returned when a video cannot be opened for decoding.
	ErrOpenFailed = errors.New("ffmpegdecoder: open failed")

	// ErrClosed is returned when reading a frame from a closed reader.
	ErrClosed = errors.New("ffmpegdecoder: reader closed")
)
