package summarizer

import (
	"encoding/json"
	"time"
)

// JSONFormatter renders a Summary as indented JSON for machine
// consumption.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// jsonSummary mirrors Summary with stable field names.
type jsonSummary struct {
	GeneratedAt time.Time     `json:"generated_at"`
	InputDir    string        `json:"input_dir"`
	OutputDir   string        `json:"output_dir"`
	Videos      []jsonVideo   `json:"videos"`
	Failures    []jsonFailure `json:"failures,omitempty"`
	Totals      jsonTotals    `json:"totals"`
	Settings    jsonSettings  `json:"settings"`
}

type jsonVideo struct {
	Source      string  `json:"source"`
	Frames      int     `json:"total_frames"`
	FPS         float64 `json:"fps"`
	DurationSec float64 `json:"duration_seconds"`
	Bytes       int64   `json:"bytes"`
}

type jsonFailure struct {
	Source string `json:"source"`
	Reason string `json:"reason"`
}

type jsonTotals struct {
	Videos    int   `json:"videos"`
	Failures  int   `json:"failures"`
	Frames    int   `json:"frames"`
	Bytes     int64 `json:"bytes"`
	ElapsedMs int   `json:"elapsed_ms"`
}

type jsonSettings struct {
	Format     string   `json:"format"`
	Extensions []string `json:"extensions,omitempty"`
	Parallel   bool     `json:"parallel"`
	Workers    int      `json:"workers,omitempty"`
	Quality    int      `json:"quality,omitempty"`
}

// Format renders the summary as indented JSON.
func (f *JSONFormatter) Format(summary *Summary) string {
	out := jsonSummary{
		GeneratedAt: summary.GeneratedAt,
		InputDir:    summary.Run.InputDir,
		OutputDir:   summary.Run.OutputDir,
		Videos:      make([]jsonVideo, 0, len(summary.Videos)),
		Totals: jsonTotals{
			Videos:    summary.Totals.Videos,
			Failures:  summary.Totals.Failures,
			Frames:    summary.Totals.Frames,
			Bytes:     summary.Totals.Bytes,
			ElapsedMs: summary.Totals.ElapsedMs,
		},
		Settings: jsonSettings{
			Format:     summary.Settings.Format,
			Extensions: summary.Settings.Extensions,
			Parallel:   summary.Settings.Parallel,
			Workers:    summary.Settings.Workers,
			Quality:    summary.Settings.Quality,
		},
	}
	for _, v := range summary.Videos {
		out.Videos = append(out.Videos, jsonVideo{
			Source:      v.Source,
			Frames:      v.Frames,
			FPS:         v.FPS,
			DurationSec: v.DurationSec,
			Bytes:       v.Bytes,
		})
	}
	for _, failure := range summary.Failures {
		out.Failures = append(out.Failures, jsonFailure{
			Source: failure.Source,
			Reason: failure.Reason,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data) + "\n"
}
