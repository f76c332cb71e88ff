// Package framedump provides a high-level API for extracting video frames.
package framedump

import (
	"image/color"

	"github.com/user/framedump/pkg/orchestrator"
	"github.com/user/framedump/pkg/pipeline"
	"github.com/user/framedump/pkg/ports"
)

// QualityPreset represents a JPEG quality preset name.
type QualityPreset string

const (
	QualityLow    QualityPreset = "low"
	QualityMedium QualityPreset = "medium"
	QualityHigh   QualityPreset = "high"
)

// PresetQuality returns the JPEG quality for the given preset.
// PNG output ignores quality entirely.
func PresetQuality(preset QualityPreset) int {
	switch preset {
	case QualityLow:
		return 60
	case QualityHigh:
		return 95
	default: // medium
		return 85
	}
}

// Config represents the configuration for a frame extraction run.
type Config struct {
	// Discovery
	Extensions []string // Video file extensions to pick up (default: .mov)

	// Extraction
	Format     ports.ImageFormat // Frame image format (default: PNG)
	Quality    int               // JPEG quality 1-100; ignored for PNG
	Parallel   bool              // Extract videos concurrently
	Workers    int               // Worker pool size; 0 sizes from the CPU count
	FFmpegPath string            // Explicit ffmpeg binary; empty searches PATH

	// Contact sheet
	SheetEnabled    bool
	SheetColumns    int // Thumbnails per row (min: 1)
	ThumbWidth      int // Thumbnail width in pixels (min: 32)
	BackgroundColor color.Color
	BorderColor     color.Color
	TextColor       color.Color

	// Logging. The run always appends to LogFile; Logger, when set,
	// additionally receives every message (e.g. a console logger).
	LogFile  string // Empty disables the log file
	LogLevel ports.LogLevel
	Logger   ports.Logger

	// Progress, when set, is called after each video finishes.
	Progress func(done, total int)

	// Debug
	Debug    bool   // Dump intermediate JSON snapshots
	DebugDir string // Directory for debug output
}

// ConfigBuilder provides a fluent interface for building Config.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder creates a new ConfigBuilder with default settings.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: defaults(),
	}
}

func defaults() Config {
	return Config{
		// Discovery
		Extensions: []string{".mov"},

		// Extraction (medium quality preset)
		Format:  ports.FormatPNG,
		Quality: 85,

		// Contact sheet
		SheetColumns:    4,
		ThumbWidth:      240,
		BackgroundColor: color.RGBA{R: 30, G: 30, B: 30, A: 255},  // #1e1e1e
		BorderColor:     color.RGBA{R: 80, G: 80, B: 80, A: 255},  // #505050
		TextColor:       color.White,

		// Logging
		LogFile:  "video_frame_extraction.log",
		LogLevel: ports.LevelInfo,

		// Debug
		DebugDir: "./debug",
	}
}

// Build returns the final Config, applying validation and constraints.
func (b *ConfigBuilder) Build() Config {
	cfg := b.config

	// Clamp quality into the JPEG range
	if cfg.Quality < 1 {
		cfg.Quality = 1
	}
	if cfg.Quality > 100 {
		cfg.Quality = 100
	}

	// Enforce minimum columns of 1
	if cfg.SheetColumns < 1 {
		cfg.SheetColumns = 1
	}

	// Enforce minimum thumbnail width of 32
	if cfg.ThumbWidth < 32 {
		cfg.ThumbWidth = 32
	}

	if cfg.Workers < 0 {
		cfg.Workers = 0
	}

	return cfg
}

// WithExtensions sets the video file extensions to pick up.
func (b *ConfigBuilder) WithExtensions(exts ...string) *ConfigBuilder {
	b.config.Extensions = exts
	return b
}

// WithFormat sets the frame image format.
func (b *ConfigBuilder) WithFormat(format ports.ImageFormat) *ConfigBuilder {
	b.config.Format = format
	return b
}

// WithQuality sets the JPEG quality (1-100).
func (b *ConfigBuilder) WithQuality(quality int) *ConfigBuilder {
	b.config.Quality = quality
	return b
}

// WithQualityPreset applies a quality preset (low, medium, high).
func (b *ConfigBuilder) WithQualityPreset(preset QualityPreset) *ConfigBuilder {
	b.config.Quality = PresetQuality(preset)
	return b
}

// WithParallel enables or disables concurrent extraction.
func (b *ConfigBuilder) WithParallel(parallel bool) *ConfigBuilder {
	b.config.Parallel = parallel
	return b
}

// WithWorkers sets the worker pool size for concurrent extraction.
// Use 0 to size the pool from the CPU count.
func (b *ConfigBuilder) WithWorkers(workers int) *ConfigBuilder {
	b.config.Workers = workers
	return b
}

// WithFFmpegPath sets an explicit ffmpeg binary path instead of
// searching PATH.
func (b *ConfigBuilder) WithFFmpegPath(path string) *ConfigBuilder {
	b.config.FFmpegPath = path
	return b
}

// WithSheet enables or disables contact sheet rendering.
func (b *ConfigBuilder) WithSheet(enabled bool) *ConfigBuilder {
	b.config.SheetEnabled = enabled
	return b
}

// WithSheetColumns sets the number of thumbnails per contact sheet row.
// Values below 1 will be forced to 1.
func (b *ConfigBuilder) WithSheetColumns(columns int) *ConfigBuilder {
	b.config.SheetColumns = columns
	return b
}

// WithThumbWidth sets the contact sheet thumbnail width in pixels.
func (b *ConfigBuilder) WithThumbWidth(width int) *ConfigBuilder {
	b.config.ThumbWidth = width
	return b
}

// WithBackgroundColor sets the contact sheet background color.
func (b *ConfigBuilder) WithBackgroundColor(c color.Color) *ConfigBuilder {
	b.config.BackgroundColor = c
	return b
}

// WithBorderColor sets the thumbnail border color.
func (b *ConfigBuilder) WithBorderColor(c color.Color) *ConfigBuilder {
	b.config.BorderColor = c
	return b
}

// WithTextColor sets the contact sheet title color.
func (b *ConfigBuilder) WithTextColor(c color.Color) *ConfigBuilder {
	b.config.TextColor = c
	return b
}

// WithLogFile sets the log file path. Use the empty string to disable
// the log file.
func (b *ConfigBuilder) WithLogFile(path string) *ConfigBuilder {
	b.config.LogFile = path
	return b
}

// WithLogLevel sets the minimum level for logged messages.
func (b *ConfigBuilder) WithLogLevel(level ports.LogLevel) *ConfigBuilder {
	b.config.LogLevel = level
	return b
}

// WithLogger sets an additional log destination alongside the log file.
func (b *ConfigBuilder) WithLogger(logger ports.Logger) *ConfigBuilder {
	b.config.Logger = logger
	return b
}

// WithProgress sets a callback invoked after each video finishes.
func (b *ConfigBuilder) WithProgress(fn func(done, total int)) *ConfigBuilder {
	b.config.Progress = fn
	return b
}

// WithDebug enables debug JSON dumps.
func (b *ConfigBuilder) WithDebug(debug bool) *ConfigBuilder {
	b.config.Debug = debug
	return b
}

// WithDebugDir sets the directory for debug output.
func (b *ConfigBuilder) WithDebugDir(dir string) *ConfigBuilder {
	b.config.DebugDir = dir
	return b
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig(inputDir, outputDir string) orchestrator.Config {
	return orchestrator.Config{
		InputDir:  inputDir,
		OutputDir: outputDir,

		Extensions: c.Extensions,

		Format:   c.Format,
		Parallel: c.Parallel,
		Quality:  c.Quality,

		SheetEnabled: c.SheetEnabled,
		SheetColumns: c.SheetColumns,
		ThumbWidth:   c.ThumbWidth,
		SheetTheme: pipeline.SheetTheme{
			BackgroundColor: c.BackgroundColor,
			BorderColor:     c.BorderColor,
			TextColor:       c.TextColor,
		},

		Progress: c.Progress,
	}
}
