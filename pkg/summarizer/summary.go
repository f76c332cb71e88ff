// Package summarizer provides summary generation for extraction results.
package summarizer

import "time"

// Summary contains all data collected during an extraction run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Run locations
	Run RunInfo

	// Per-video outcomes, in discovery order
	Videos   []VideoEntry
	Failures []FailureEntry

	// Aggregated results
	Totals Totals

	// Extraction settings
	Settings Settings
}

// RunInfo identifies the directories the run worked on.
type RunInfo struct {
	InputDir  string
	OutputDir string
}

// VideoEntry describes one successfully extracted video.
type VideoEntry struct {
	Source      string
	Frames      int
	FPS         float64
	DurationSec float64
	Bytes       int64
}

// FailureEntry describes one video that could not be processed.
type FailureEntry struct {
	Source string
	Reason string
}

// Totals aggregates the whole run.
type Totals struct {
	Videos    int
	Failures  int
	Frames    int
	Bytes     int64
	ElapsedMs int
}

// Settings contains the extraction configuration.
type Settings struct {
	Format     string
	Extensions []string
	Parallel   bool
	Workers    int
	Quality    int // JPEG quality; meaningless for PNG
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithRun sets the run directories.
func (b *Builder) WithRun(inputDir, outputDir string) *Builder {
	b.summary.Run = RunInfo{
		InputDir:  inputDir,
		OutputDir: outputDir,
	}
	return b
}

// WithVideos sets the per-video results.
func (b *Builder) WithVideos(videos []VideoEntry) *Builder {
	b.summary.Videos = videos
	return b
}

// WithFailures sets the per-video failures.
func (b *Builder) WithFailures(failures []FailureEntry) *Builder {
	b.summary.Failures = failures
	return b
}

// WithTotals sets the aggregated results.
func (b *Builder) WithTotals(totals Totals) *Builder {
	b.summary.Totals = totals
	return b
}

// WithSettings sets extraction settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
