// Package codecdetect identifies the video codec of MP4 and QuickTime
// tracks from their sample entry boxes.
package codecdetect

import (
	"github.com/Eyevinn/mp4ff/mp4"
)

// Codec represents a video codec type.
type Codec string

const (
	CodecH264    Codec = "h264"
	CodecHEVC    Codec = "hevc"
	CodecAV1     Codec = "av1"
	CodecProRes  Codec = "prores"
	CodecUnknown Codec = "unknown"
)

// FromTrak detects the codec of a single parsed track. It returns
// CodecUnknown for non-video tracks and unrecognized sample entries.
func FromTrak(trak *mp4.TrakBox) Codec {
	if trak.Mdia == nil || trak.Mdia.Hdlr == nil {
		return CodecUnknown
	}

	// Only process video tracks
	if trak.Mdia.Hdlr.HandlerType != "vide" {
		return CodecUnknown
	}

	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return CodecUnknown
	}

	stsd := trak.Mdia.Minf.Stbl.Stsd

	for _, child := range stsd.Children {
		switch child.Type() {
		case "avc1", "avc3":
			// H.264/AVC
			return CodecH264
		case "hvc1", "hev1":
			// H.265/HEVC
			return CodecHEVC
		case "av01":
			// AV1
			return CodecAV1
		case "apch", "apcn", "apcs", "apco", "ap4h":
			// Apple ProRes variants
			return CodecProRes
		}
	}

	return CodecUnknown
}
