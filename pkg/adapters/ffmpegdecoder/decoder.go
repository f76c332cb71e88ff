// Package ffmpegdecoder provides video decoding using an external ffmpeg
// process. Frames are streamed as raw RGBA over a pipe and surfaced one at
// a time, so a video is never held in memory whole.
package ffmpegdecoder

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/user/framedump/pkg/ports"
)

// Decoder implements ports.VideoDecoder on top of the ffmpeg binary.
// Stream dimensions come from the injected prober; they are needed to
// slice the raw output stream into frames.
type Decoder struct {
	prober ports.MediaProber
}

// New creates a new ffmpeg-based decoder.
func New(prober ports.MediaProber) *Decoder {
	return &Decoder{prober: prober}
}

// Open probes the video at path and starts an ffmpeg process decoding it
// to raw RGBA frames. The returned reader must be closed by the caller.
func (d *Decoder) Open(ctx context.Context, path string) (ports.FrameReader, error) {
	ffmpegPath, err := FindFFmpeg()
	if err != nil {
		return nil, err
	}

	info, err := d.prober.Probe(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", path, err)
	}
	if info.Width <= 0 || info.Height <= 0 {
		return nil, fmt.Errorf("%w: no decodable video stream in %s", ErrOpenFailed, path)
	}

	args := []string{
		"-loglevel", "error",
		"-i", path,
		"-f", "rawvideo", // Output format
		"-pix_fmt", "rgba", // Output pixel format
		"pipe:1", // Write to stdout
	}

	cmd := exec.CommandContext(ctx, ffmpegPath, args...)

	reader := &frameReader{
		info:      info,
		frameSize: info.Width * info.Height * 4,
		cmd:       cmd,
	}
	cmd.Stderr = &reader.stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to get stdout pipe: %w", err)
	}
	reader.stdout = stdout

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	return reader, nil
}

// Ensure Decoder implements ports.VideoDecoder
var _ ports.VideoDecoder = (*Decoder)(nil)
