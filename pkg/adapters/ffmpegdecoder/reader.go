package ffmpegdecoder

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os/exec"
	"sync"

	"github.com/user/framedump/pkg/ports"
)

// frameReader reads raw RGBA frames from a running ffmpeg process.
type frameReader struct {
	info      ports.MediaInfo
	frameSize int

	mu       sync.Mutex
	cmd      *exec.Cmd
	stdout   io.ReadCloser
	stderr   bytes.Buffer
	finished bool // ffmpeg has been reaped
	waitErr  error
	closed   bool
}

// Info returns the stream properties of the opened video.
func (r *frameReader) Info() ports.MediaInfo {
	return r.info
}

// Next returns the next decoded frame. It returns io.EOF once the stream
// is exhausted; a stream that ends because ffmpeg failed reports the
// failure instead, with ffmpeg's stderr attached.
func (r *frameReader) Next() (image.Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrClosed
	}
	if r.finished {
		// The pipe is gone once ffmpeg is reaped; replay the outcome.
		return nil, r.finish()
	}

	buf := make([]byte, r.frameSize)
	if _, err := io.ReadFull(r.stdout, buf); err != nil {
		// A short trailing read means the stream ended mid-frame; both
		// cases go through the exit-status check below.
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, r.finish()
		}
		return nil, fmt.Errorf("read frame: %w", err)
	}

	return &image.RGBA{
		Pix:    buf,
		Stride: 4 * r.info.Width,
		Rect:   image.Rect(0, 0, r.info.Width, r.info.Height),
	}, nil
}

// finish reaps the ffmpeg process after its output ends. A zero exit status
// means the stream was fully decoded and callers see io.EOF; anything else
// is a decode failure.
func (r *frameReader) finish() error {
	if !r.finished {
		r.finished = true
		r.waitErr = r.cmd.Wait()
	}
	if r.waitErr != nil {
		return fmt.Errorf("ffmpeg decoding failed: %w\nstderr: %s", r.waitErr, r.stderr.String())
	}
	return io.EOF
}

// Close releases decoder resources. Closing mid-stream stops the ffmpeg
// process. It is safe to call more than once.
func (r *frameReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	if !r.finished {
		r.finished = true
		if r.cmd.Process != nil {
			_ = r.cmd.Process.Kill()
		}
		r.waitErr = r.cmd.Wait()
	}
	return nil
}

// Ensure frameReader implements ports.FrameReader
var _ ports.FrameReader = (*frameReader)(nil)
