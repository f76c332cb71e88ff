package pipeline

import (
	"image/color"

	"github.com/user/framedump/pkg/ports"
)

// =============================================================================
// Common Types
// =============================================================================

// VideoJob describes one discovered video and where its frames go.
type VideoJob struct {
	Source    string            // Video file name inside the input directory
	Input     string            // Full path to the video file
	OutputDir string            // Directory that receives the extracted frames
	Format    ports.ImageFormat // Encoding for the extracted frames
}

// FrameMetadata summarizes one successfully extracted video.
// Frames is the number of frames actually decoded and written, which is
// authoritative even when the container reports a different total.
type FrameMetadata struct {
	Source      string  `json:"source"`
	Frames      int     `json:"total_frames"`
	FPS         float64 `json:"fps"`
	DurationSec float64 `json:"duration_seconds"`

	// Bytes is the combined size of the written frame files. Carried
	// for reporting only; it stays out of the metadata sidecar.
	Bytes int64 `json:"-"`
}

// FailedJob records a video that could not be processed.
type FailedJob struct {
	Source string
	Err    error
}

// =============================================================================
// Scan Stage Types
// =============================================================================

// ScanInput contains parameters for video discovery.
type ScanInput struct {
	InputDir   string
	OutputDir  string            // Base directory; each job gets a subdirectory
	Format     ports.ImageFormat // Propagated to every discovered job
	Extensions []string          // Matched case-insensitively
}

// DefaultScanInput returns ScanInput with default values.
func DefaultScanInput() ScanInput {
	return ScanInput{
		Format:     ports.FormatPNG,
		Extensions: []string{".mov"},
	}
}

// ScanResult contains the discovered jobs, sorted by source name.
type ScanResult struct {
	Jobs []VideoJob
}

// =============================================================================
// Extract Stage Types
// =============================================================================

// ExtractInput contains parameters for frame extraction.
type ExtractInput struct {
	Jobs     []VideoJob
	Parallel bool // Process jobs concurrently with a worker pool
	Quality  int  // JPEG quality 1-100; ignored for PNG

	// Progress, when set, is called after each job finishes, successfully
	// or not. It is never called from more than one goroutine at a time.
	Progress func(done, total int)
}

// DefaultExtractInput returns ExtractInput with default values.
func DefaultExtractInput() ExtractInput {
	return ExtractInput{
		Quality: 85,
	}
}

// ExtractResult contains per-job outcomes, both restored to discovery order.
type ExtractResult struct {
	Videos   []FrameMetadata
	Failures []FailedJob
}

// TotalFrames returns the number of frames written across all videos.
func (r ExtractResult) TotalFrames() int {
	total := 0
	for _, v := range r.Videos {
		total += v.Frames
	}
	return total
}

// TotalBytes returns the combined size of all written frame files.
func (r ExtractResult) TotalBytes() int64 {
	var total int64
	for _, v := range r.Videos {
		total += v.Bytes
	}
	return total
}

// =============================================================================
// Sheet Stage Types
// =============================================================================

// SheetInput contains parameters for contact sheet rendering.
type SheetInput struct {
	Jobs       []VideoJob      // Jobs whose frame directories are sampled
	Videos     []FrameMetadata // Extraction results for the jobs
	Columns    int             // Thumbnails per row
	ThumbWidth int             // Width of each thumbnail in pixels
	Theme      SheetTheme
}

// DefaultSheetInput returns SheetInput with default values.
func DefaultSheetInput() SheetInput {
	return SheetInput{
		Columns:    4,
		ThumbWidth: 240,
		Theme:      DefaultSheetTheme(),
	}
}

// SheetTheme defines contact sheet styling.
type SheetTheme struct {
	BackgroundColor color.Color
	BorderColor     color.Color
	TextColor       color.Color
}

// DefaultSheetTheme returns a default sheet theme.
func DefaultSheetTheme() SheetTheme {
	return SheetTheme{
		BackgroundColor: color.RGBA{R: 30, G: 30, B: 30, A: 255},
		BorderColor:     color.RGBA{R: 80, G: 80, B: 80, A: 255},
		TextColor:       color.White,
	}
}

// SheetResult lists the contact sheets that were written.
type SheetResult struct {
	Sheets []string
}
