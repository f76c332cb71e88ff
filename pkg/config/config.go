// Package config provides configuration loading and management.
package config

import (
	"image/color"
	"os"

	"github.com/user/framedump/pkg/orchestrator"
	"github.com/user/framedump/pkg/pipeline"
	"github.com/user/framedump/pkg/ports"
	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for framedump.
type Config struct {
	// Input/Output
	InputDir   string   `yaml:"input"`
	OutputDir  string   `yaml:"output"`
	Extensions []string `yaml:"extensions"`

	// Extraction
	Format      string `yaml:"format"`
	Quality     int    `yaml:"quality"`
	Concurrency bool   `yaml:"concurrency"`
	Workers     int    `yaml:"workers"`
	FFmpegPath  string `yaml:"ffmpeg_path"`

	// Contact sheet
	SheetEnabled bool        `yaml:"sheet"`
	SheetColumns int         `yaml:"sheet_columns"`
	ThumbWidth   int         `yaml:"thumb_width"`
	SheetTheme   ThemeConfig `yaml:"sheet_theme"`

	// Logging
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	// Summary
	Summary       string `yaml:"summary"`
	SummaryFormat string `yaml:"summary_format"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// ThemeConfig represents contact sheet theming options.
type ThemeConfig struct {
	BackgroundColor string `yaml:"background_color"`
	BorderColor     string `yaml:"border_color"`
	TextColor       string `yaml:"text_color"`
}

// Defaults returns a Config with default values. InputDir has no default
// and must be provided by the caller.
func Defaults() Config {
	return Config{
		// Input/Output
		OutputDir:  "frames",
		Extensions: []string{".mov"},

		// Extraction
		Format:  "png",
		Quality: 85,

		// Contact sheet
		SheetColumns: 4,
		ThumbWidth:   240,
		SheetTheme: ThemeConfig{
			BackgroundColor: "#1e1e1e",
			BorderColor:     "#505050",
			TextColor:       "#ffffff",
		},

		// Logging
		LogLevel: "info",
		LogFile:  "video_frame_extraction.log",

		// Summary
		SummaryFormat: "markdown",

		// Debug
		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ParseColor parses a hex color string to color.Color.
func ParseColor(hex string) color.Color {
	if len(hex) == 0 {
		return color.Black
	}

	if hex[0] == '#' {
		hex = hex[1:]
	}

	if len(hex) != 6 {
		return color.Black
	}

	var r, g, b uint8
	for i, c := range []byte{hex[0], hex[1]} {
		v := hexValue(c)
		if i == 0 {
			r = v << 4
		} else {
			r |= v
		}
	}
	for i, c := range []byte{hex[2], hex[3]} {
		v := hexValue(c)
		if i == 0 {
			g = v << 4
		} else {
			g |= v
		}
	}
	for i, c := range []byte{hex[4], hex[5]} {
		v := hexValue(c)
		if i == 0 {
			b = v << 4
		} else {
			b |= v
		}
	}

	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func hexValue(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}

// ToTheme converts the hex color settings to a pipeline.SheetTheme.
func (t ThemeConfig) ToTheme() pipeline.SheetTheme {
	return pipeline.SheetTheme{
		BackgroundColor: ParseColor(t.BackgroundColor),
		BorderColor:     ParseColor(t.BorderColor),
		TextColor:       ParseColor(t.TextColor),
	}
}

// ToOrchestratorConfig converts Config to orchestrator.Config. It fails
// when the format name is not a known image format.
func (c Config) ToOrchestratorConfig() (orchestrator.Config, error) {
	format, err := ports.ParseImageFormat(c.Format)
	if err != nil {
		return orchestrator.Config{}, err
	}

	return orchestrator.Config{
		InputDir:  c.InputDir,
		OutputDir: c.OutputDir,

		Extensions: c.Extensions,

		Format:   format,
		Parallel: c.Concurrency,
		Quality:  c.Quality,

		SheetEnabled: c.SheetEnabled,
		SheetColumns: c.SheetColumns,
		ThumbWidth:   c.ThumbWidth,
		SheetTheme:   c.SheetTheme.ToTheme(),
	}, nil
}
