package ffprobe

import "errors"

var (
	// ErrFFprobeNotFound is returned when no usable ffprobe binary can be located.
	ErrFFprobeNotFound = errors.New("ffprobe: ffprobe not found")

	// ErrNoVideoStream is returned when a file contains no video stream.
	ErrNoVideoStream = errors.New("ffprobe: no video stream")
)
