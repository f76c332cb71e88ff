// Package ffprobe provides media probing using the ffprobe binary from the
// ffmpeg distribution. It reports stream dimensions, frame rate, frame count
// and codec without decoding any frames.
package ffprobe

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/user/framedump/pkg/ports"
)

// Prober implements ports.MediaProber using ffprobe's JSON output.
type Prober struct {
	ffprobePath string
}

// New creates a new ffprobe-based prober. It fails when no ffprobe binary
// can be located.
func New() (*Prober, error) {
	path, err := FindFFprobe()
	if err != nil {
		return nil, err
	}
	return &Prober{ffprobePath: path}, nil
}

// Probe inspects the video at path and returns its stream properties.
func (p *Prober) Probe(ctx context.Context, path string) (ports.MediaInfo, error) {
	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	}

	cmd := exec.CommandContext(ctx, p.ffprobePath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return ports.MediaInfo{}, fmt.Errorf("ffprobe failed for %s: %w", path, err)
	}

	return parseInfo(output, path)
}

// probeResult matches ffprobe JSON output structure
type probeResult struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType  string `json:"codec_type"`
		CodecName  string `json:"codec_name"`
		Width      int    `json:"width"`
		Height     int    `json:"height"`
		RFrameRate string `json:"r_frame_rate"`
		NbFrames   string `json:"nb_frames"`
	} `json:"streams"`
}

// parseInfo extracts the first video stream from ffprobe JSON output.
func parseInfo(output []byte, path string) (ports.MediaInfo, error) {
	var probe probeResult
	if err := json.Unmarshal(output, &probe); err != nil {
		return ports.MediaInfo{}, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	var info ports.MediaInfo

	// Container-level duration
	if dur, err := strconv.ParseFloat(probe.Format.Duration, 64); err == nil {
		info.DurationMs = int(dur * 1000)
	}

	// First video stream wins
	for _, stream := range probe.Streams {
		if stream.CodecType != "video" {
			continue
		}
		info.Width = stream.Width
		info.Height = stream.Height
		info.Codec = stream.CodecName
		if stream.RFrameRate != "" {
			info.FPS = parseFrameRate(stream.RFrameRate)
		}
		// nb_frames is absent in some containers; 0 means unknown
		if n, err := strconv.Atoi(stream.NbFrames); err == nil {
			info.FrameCount = n
		}
		return info, nil
	}

	return ports.MediaInfo{}, fmt.Errorf("%w: %s", ErrNoVideoStream, path)
}

// parseFrameRate parses frame rate from ffprobe format (e.g., "30/1")
func parseFrameRate(s string) float64 {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return 0
	}
	num, err1 := strconv.ParseFloat(parts[0], 64)
	den, err2 := strconv.ParseFloat(parts[1], 64)
	if err1 != nil || err2 != nil || den == 0 {
		return 0
	}
	return num / den
}

// Ensure Prober implements ports.MediaProber
var _ ports.MediaProber = (*Prober)(nil)
