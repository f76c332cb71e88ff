// Package mp4probe provides pure-Go media probing for MP4 and QuickTime
// containers. It walks box metadata only and reads no sample data, so it
// works without any external tooling installed.
package mp4probe

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/framedump/pkg/adapters/codecdetect"
	"github.com/user/framedump/pkg/ports"
)

var (
	// ErrNoVideoTrack is returned when a container has no video track.
	ErrNoVideoTrack = errors.New("mp4probe: no video track found")
)

// Prober implements ports.MediaProber by parsing container boxes.
type Prober struct{}

// New creates a new box-walking prober.
func New() *Prober {
	return &Prober{}
}

// Probe inspects the video at path and returns its stream properties.
func (p *Prober) Probe(ctx context.Context, path string) (ports.MediaInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return ports.MediaInfo{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	mp4File, err := mp4.DecodeFile(f)
	if err != nil {
		return ports.MediaInfo{}, fmt.Errorf("decode mp4: %w", err)
	}

	if mp4File.IsFragmented() {
		return probeFragmented(mp4File)
	}
	return probeProgressive(mp4File)
}

func probeProgressive(mp4File *mp4.File) (ports.MediaInfo, error) {
	if mp4File.Moov == nil {
		return ports.MediaInfo{}, fmt.Errorf("no moov box found")
	}

	trak := findVideoTrak(mp4File.Moov)
	if trak == nil {
		return ports.MediaInfo{}, ErrNoVideoTrack
	}

	var info ports.MediaInfo
	info.Codec = string(codecdetect.FromTrak(trak))

	// Track timescale and duration
	var timescale uint32 = 1000
	var duration uint64
	if trak.Mdia != nil && trak.Mdia.Mdhd != nil {
		if trak.Mdia.Mdhd.Timescale > 0 {
			timescale = trak.Mdia.Mdhd.Timescale
		}
		duration = trak.Mdia.Mdhd.Duration
	}
	info.DurationMs = int(duration * 1000 / uint64(timescale))

	if w, h, ok := sampleEntryDims(trak); ok {
		info.Width = w
		info.Height = h
	}

	if trak.Mdia == nil || trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil {
		return info, nil
	}
	stbl := trak.Mdia.Minf.Stbl

	if stbl.Stsz != nil {
		info.FrameCount = int(stbl.Stsz.SampleNumber)
	}

	// Frame rate from the first time-to-sample entry; constant frame rate
	// files have exactly one. Fall back to count over duration.
	if stbl.Stts != nil && len(stbl.Stts.SampleTimeDelta) > 0 && stbl.Stts.SampleTimeDelta[0] > 0 {
		info.FPS = float64(timescale) / float64(stbl.Stts.SampleTimeDelta[0])
	} else if info.DurationMs > 0 && info.FrameCount > 0 {
		info.FPS = float64(info.FrameCount) * 1000 / float64(info.DurationMs)
	}

	return info, nil
}

func probeFragmented(mp4File *mp4.File) (ports.MediaInfo, error) {
	if mp4File.Init == nil || mp4File.Init.Moov == nil {
		return ports.MediaInfo{}, fmt.Errorf("no init moov box found")
	}

	trak := findVideoTrak(mp4File.Init.Moov)
	if trak == nil {
		return ports.MediaInfo{}, ErrNoVideoTrack
	}

	var info ports.MediaInfo
	info.Codec = string(codecdetect.FromTrak(trak))

	var timescale uint32 = 1000
	if trak.Mdia != nil && trak.Mdia.Mdhd != nil && trak.Mdia.Mdhd.Timescale > 0 {
		timescale = trak.Mdia.Mdhd.Timescale
	}

	if w, h, ok := sampleEntryDims(trak); ok {
		info.Width = w
		info.Height = h
	}

	trackID := trak.Tkhd.TrackID

	// Count samples and accumulate durations across fragments
	var totalDur uint64
	for _, seg := range mp4File.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}
			for _, traf := range frag.Moof.Trafs {
				if traf.Tfhd == nil || traf.Tfhd.TrackID != trackID {
					continue
				}
				for _, trun := range traf.Truns {
					count := int(trun.SampleCount())
					info.FrameCount += count
					if trun.HasSampleDuration() {
						for _, s := range trun.Samples {
							totalDur += uint64(s.Dur)
						}
					} else if traf.Tfhd.HasDefaultSampleDuration() {
						totalDur += uint64(traf.Tfhd.DefaultSampleDuration) * uint64(count)
					}
				}
			}
		}
	}

	info.DurationMs = int(totalDur * 1000 / uint64(timescale))
	if totalDur > 0 && info.FrameCount > 0 {
		info.FPS = float64(info.FrameCount) * float64(timescale) / float64(totalDur)
	}

	return info, nil
}

// findVideoTrak returns the first video track in a moov box.
func findVideoTrak(moov *mp4.MoovBox) *mp4.TrakBox {
	for _, trak := range moov.Traks {
		if trak.Mdia != nil && trak.Mdia.Hdlr != nil && trak.Mdia.Hdlr.HandlerType == "vide" {
			return trak
		}
	}
	return nil
}

// sampleEntryDims extracts pixel dimensions from the visual sample entry.
func sampleEntryDims(trak *mp4.TrakBox) (int, int, bool) {
	if trak.Mdia == nil || trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return 0, 0, false
	}
	for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
		if vse, ok := child.(*mp4.VisualSampleEntryBox); ok {
			return int(vse.Width), int(vse.Height), true
		}
	}
	return 0, 0, false
}

// Ensure Prober implements ports.MediaProber
var _ ports.MediaProber = (*Prober)(nil)
