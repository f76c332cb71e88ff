package summarizer

import (
	"strings"
	"testing"
	"time"
)

func sampleSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Run: RunInfo{
			InputDir:  "./videos",
			OutputDir: "./frames",
		},
		Videos: []VideoEntry{
			{Source: "a.mov", Frames: 3, FPS: 30, DurationSec: 0.1, Bytes: 1024 * 1024},
			{Source: "b.mov", Frames: 3, FPS: 30, DurationSec: 0.1, Bytes: 512 * 1024},
		},
		Totals: Totals{
			Videos:    2,
			Frames:    6,
			Bytes:     1536 * 1024,
			ElapsedMs: 450,
		},
		Settings: Settings{
			Format:     "png",
			Extensions: []string{".mov"},
			Parallel:   true,
			Workers:    8,
		},
	}
}

func TestMarkdownFormatter_Format_Basic(t *testing.T) {
	formatter := NewMarkdownFormatter()

	result := formatter.Format(sampleSummary())

	// Check required sections
	checks := []string{
		"# Extraction Summary",
		"./videos",
		"./frames",
		"a.mov",
		"b.mov",
		"1.00 MB", // a.mov size
		"6",       // total frames
		"450 ms",  // elapsed
		"png",     // format
		"parallel (8 workers)",
	}

	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q", check)
		}
	}
}

func TestMarkdownFormatter_Format_NoVideos(t *testing.T) {
	formatter := NewMarkdownFormatter()

	summary := sampleSummary()
	summary.Videos = nil
	summary.Totals = Totals{}

	result := formatter.Format(summary)

	if !strings.Contains(result, "No videos were extracted.") {
		t.Error("expected placeholder for empty video list")
	}
	if strings.Contains(result, "| a.mov |") {
		t.Error("expected no video table rows")
	}
}

func TestMarkdownFormatter_Format_Failures(t *testing.T) {
	formatter := NewMarkdownFormatter()

	summary := sampleSummary()
	summary.Failures = []FailureEntry{
		{Source: "bad.mov", Reason: "moov atom not found"},
	}
	summary.Totals.Failures = 1

	result := formatter.Format(summary)

	if !strings.Contains(result, "## Failures") {
		t.Error("expected a Failures section")
	}
	if !strings.Contains(result, "bad.mov: moov atom not found") {
		t.Error("expected the failure entry")
	}
	if !strings.Contains(result, "Skipped: 1") {
		t.Error("expected the skipped count in totals")
	}
}

func TestMarkdownFormatter_Format_NoFailureSection(t *testing.T) {
	formatter := NewMarkdownFormatter()

	result := formatter.Format(sampleSummary())

	if strings.Contains(result, "## Failures") {
		t.Error("expected no Failures section for a clean run")
	}
}

func TestMarkdownFormatter_Format_JPEGQuality(t *testing.T) {
	formatter := NewMarkdownFormatter()

	summary := sampleSummary()
	summary.Settings.Format = "jpg"
	summary.Settings.Quality = 85

	result := formatter.Format(summary)

	if !strings.Contains(result, "JPEG quality: 85") {
		t.Error("expected JPEG quality for jpg format")
	}

	summary.Settings.Format = "png"
	result = formatter.Format(summary)
	if strings.Contains(result, "JPEG quality") {
		t.Error("expected no JPEG quality line for png format")
	}
}

func TestMarkdownFormatter_WithTranslator(t *testing.T) {
	translator := func(key string) string {
		translations := map[string]string{
			"Extraction Summary": "抽出サマリー",
			"Input directory":    "入力フォルダ",
			"Videos":             "動画",
		}
		if v, ok := translations[key]; ok {
			return v
		}
		return key
	}

	formatter := NewMarkdownFormatter(WithTranslator(translator))

	result := formatter.Format(sampleSummary())

	if !strings.Contains(result, "抽出サマリー") {
		t.Error("expected translated 'Extraction Summary'")
	}
	if !strings.Contains(result, "入力フォルダ") {
		t.Error("expected translated 'Input directory'")
	}
	if !strings.Contains(result, "動画") {
		t.Error("expected translated 'Videos'")
	}
}

func TestMarkdownFormatter_WithVersion(t *testing.T) {
	formatter := NewMarkdownFormatter(WithVersion("v1.2.0"))

	result := formatter.Format(sampleSummary())

	if !strings.Contains(result, "v1.2.0") {
		t.Error("expected output to contain version 'v1.2.0'")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{100, "100 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1024 * 1024, "1.00 MB"},
		{1024 * 1024 * 1024, "1.00 GB"},
		{1536 * 1024 * 1024, "1.50 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := formatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("formatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}
