package pipeline

import "errors"

var (
	// ErrInputDirNotFound is returned when the input directory does not exist.
	ErrInputDirNotFound = errors.New("pipeline: input directory not found")

	// ErrUnreadableMedia is returned when a video file cannot be opened or decoded.
	ErrUnreadableMedia = errors.New("pipeline: unreadable media")
)
