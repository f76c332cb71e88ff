// Package orchestrator coordinates all pipeline stages.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/user/framedump/pkg/pipeline"
	"github.com/user/framedump/pkg/ports"
)

// Config contains all configuration for the orchestrator.
type Config struct {
	// Input
	InputDir  string
	OutputDir string

	// Discovery
	Extensions []string

	// Extraction
	Format   ports.ImageFormat
	Parallel bool
	Quality  int // JPEG quality (1-100)

	// Contact sheet
	SheetEnabled bool
	SheetColumns int
	ThumbWidth   int
	SheetTheme   pipeline.SheetTheme

	// Progress, when set, receives per-job completion updates during
	// extraction.
	Progress func(done, total int)
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Extensions: []string{".mov"},
		Format:     ports.FormatPNG,
		Quality:    85,

		SheetEnabled: false,
		SheetColumns: 4,
		ThumbWidth:   240,
		SheetTheme:   pipeline.DefaultSheetTheme(),
	}
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	scanStage    pipeline.Stage[pipeline.ScanInput, pipeline.ScanResult]
	extractStage pipeline.Stage[pipeline.ExtractInput, pipeline.ExtractResult]
	sheetStage   pipeline.Stage[pipeline.SheetInput, pipeline.SheetResult]
	sink         ports.DebugSink
	logger       ports.Logger
}

// New creates a new Orchestrator.
func New(
	scanStage pipeline.Stage[pipeline.ScanInput, pipeline.ScanResult],
	extractStage pipeline.Stage[pipeline.ExtractInput, pipeline.ExtractResult],
	sheetStage pipeline.Stage[pipeline.SheetInput, pipeline.SheetResult],
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		scanStage:    scanStage,
		extractStage: extractStage,
		sheetStage:   sheetStage,
		sink:         sink,
		logger:       logger,
	}
}

// Run executes the complete pipeline.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	started := time.Now()
	o.logger.Info("Starting extraction run")

	// 1. Discover videos
	o.logger.Info("Scanning %s for videos", config.InputDir)
	scan, err := o.scanStage.Execute(ctx, o.buildScanInput(config))
	if err != nil {
		o.logger.Error("Failed to scan input: %s", err)
		return RunResult{}, fmt.Errorf("scan stage: %w", err)
	}

	// Save job list debug output
	if o.sink.Enabled() {
		if data, err := json.MarshalIndent(scan.Jobs, "", "  "); err == nil {
			o.sink.SaveJobsJSON(data)
		}
	}

	// 2. Extract frames
	extract, err := o.extractStage.Execute(ctx, o.buildExtractInput(config, scan))
	if err != nil {
		o.logger.Error("Failed to extract frames: %s", err)
		return RunResult{}, fmt.Errorf("extract stage: %w", err)
	}
	if len(extract.Failures) > 0 {
		o.logger.Warn("Skipped %d unreadable videos", len(extract.Failures))
	}

	// 3. Render contact sheets (optional)
	var sheets []string
	if config.SheetEnabled {
		sheet, err := o.sheetStage.Execute(ctx, o.buildSheetInput(config, scan, extract))
		if err != nil {
			o.logger.Error("Failed to render contact sheets: %s", err)
			return RunResult{}, fmt.Errorf("sheet stage: %w", err)
		}
		sheets = sheet.Sheets
	}

	// Build result for summary
	result := RunResult{
		Videos:      extract.Videos,
		Failures:    extract.Failures,
		Sheets:      sheets,
		TotalFrames: extract.TotalFrames(),
		TotalBytes:  extract.TotalBytes(),
		ElapsedMs:   int(time.Since(started).Milliseconds()),
		InputDir:    config.InputDir,
		OutputDir:   config.OutputDir,
		Parallel:    config.Parallel,
	}

	o.logger.Info("Run completed: %d videos, %d frames in %d ms", len(result.Videos), result.TotalFrames, result.ElapsedMs)

	// Save run debug output
	if o.sink.Enabled() {
		if data, err := json.MarshalIndent(runSnapshot(result), "", "  "); err == nil {
			o.sink.SaveRunJSON(data)
		}
	}

	return result, nil
}

func (o *Orchestrator) buildScanInput(config Config) pipeline.ScanInput {
	return pipeline.ScanInput{
		InputDir:   config.InputDir,
		OutputDir:  config.OutputDir,
		Format:     config.Format,
		Extensions: config.Extensions,
	}
}

func (o *Orchestrator) buildExtractInput(config Config, scan pipeline.ScanResult) pipeline.ExtractInput {
	return pipeline.ExtractInput{
		Jobs:     scan.Jobs,
		Parallel: config.Parallel,
		Quality:  config.Quality,
		Progress: config.Progress,
	}
}

func (o *Orchestrator) buildSheetInput(
	config Config,
	scan pipeline.ScanResult,
	extract pipeline.ExtractResult,
) pipeline.SheetInput {
	// Pair each extracted video back with its job; failed jobs have no
	// frames to lay out.
	jobsBySource := make(map[string]pipeline.VideoJob, len(scan.Jobs))
	for _, job := range scan.Jobs {
		jobsBySource[job.Source] = job
	}
	jobs := make([]pipeline.VideoJob, 0, len(extract.Videos))
	for _, meta := range extract.Videos {
		jobs = append(jobs, jobsBySource[meta.Source])
	}

	theme := config.SheetTheme
	if theme.BackgroundColor == nil {
		theme = pipeline.DefaultSheetTheme()
	}

	return pipeline.SheetInput{
		Jobs:       jobs,
		Videos:     extract.Videos,
		Columns:    config.SheetColumns,
		ThumbWidth: config.ThumbWidth,
		Theme:      theme,
	}
}

// RunResult contains the results of an extraction run for summary
// generation.
type RunResult struct {
	// Extraction outcomes in discovery order
	Videos   []pipeline.FrameMetadata
	Failures []pipeline.FailedJob

	// Contact sheets, when enabled
	Sheets []string

	// Totals
	TotalFrames int
	TotalBytes  int64
	ElapsedMs   int

	// Run configuration echoes
	InputDir  string
	OutputDir string
	Parallel  bool
}

// runSnapshot converts a RunResult into a JSON-friendly shape; the
// error values inside Failures do not marshal on their own.
func runSnapshot(result RunResult) any {
	failures := make([]string, 0, len(result.Failures))
	for _, f := range result.Failures {
		failures = append(failures, fmt.Sprintf("%s: %s", f.Source, f.Err))
	}
	return struct {
		Videos      []pipeline.FrameMetadata `json:"videos"`
		Failures    []string                 `json:"failures,omitempty"`
		Sheets      []string                 `json:"sheets,omitempty"`
		TotalFrames int                      `json:"total_frames"`
		TotalBytes  int64                    `json:"total_bytes"`
		ElapsedMs   int                      `json:"elapsed_ms"`
		InputDir    string                   `json:"input_dir"`
		OutputDir   string                   `json:"output_dir"`
		Parallel    bool                     `json:"parallel"`
	}{
		Videos:      result.Videos,
		Failures:    failures,
		Sheets:      result.Sheets,
		TotalFrames: result.TotalFrames,
		TotalBytes:  result.TotalBytes,
		ElapsedMs:   result.ElapsedMs,
		InputDir:    result.InputDir,
		OutputDir:   result.OutputDir,
		Parallel:    result.Parallel,
	}
}
