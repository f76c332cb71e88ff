package summarizer

import (
	"fmt"
	"strings"
)

// TranslateFunc translates a display label.
type TranslateFunc func(string) string

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the label translator.
func WithTranslator(translate TranslateFunc) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = translate
	}
}

// WithVersion embeds the generating tool's version in the output.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// MarkdownFormatter renders a Summary as a Markdown report.
type MarkdownFormatter struct {
	translate TranslateFunc
	version   string
}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format renders the summary as Markdown.
func (f *MarkdownFormatter) Format(summary *Summary) string {
	t := f.translate
	var b strings.Builder

	b.WriteString("# " + t("Extraction Summary") + "\n\n")
	if f.version != "" {
		b.WriteString(fmt.Sprintf("%s %s\n\n", t("Generated by framedump"), f.version))
	}
	b.WriteString(fmt.Sprintf("%s: %s\n\n", t("Generated at"), summary.GeneratedAt.Format("2006-01-02 15:04:05")))

	b.WriteString("## " + t("Run") + "\n\n")
	b.WriteString(fmt.Sprintf("- %s: %s\n", t("Input directory"), summary.Run.InputDir))
	b.WriteString(fmt.Sprintf("- %s: %s\n", t("Output directory"), summary.Run.OutputDir))
	b.WriteString("\n")

	b.WriteString("## " + t("Videos") + "\n\n")
	if len(summary.Videos) == 0 {
		b.WriteString(t("No videos were extracted.") + "\n\n")
	} else {
		b.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
			t("Source"), t("Frames"), t("FPS"), t("Duration"), t("Size")))
		b.WriteString("| --- | ---: | ---: | ---: | ---: |\n")
		for _, v := range summary.Videos {
			b.WriteString(fmt.Sprintf("| %s | %d | %.2f | %.2f s | %s |\n",
				v.Source, v.Frames, v.FPS, v.DurationSec, formatBytes(v.Bytes)))
		}
		b.WriteString("\n")
	}

	if len(summary.Failures) > 0 {
		b.WriteString("## " + t("Failures") + "\n\n")
		for _, failure := range summary.Failures {
			b.WriteString(fmt.Sprintf("- %s: %s\n", failure.Source, failure.Reason))
		}
		b.WriteString("\n")
	}

	b.WriteString("## " + t("Totals") + "\n\n")
	b.WriteString(fmt.Sprintf("- %s: %d\n", t("Videos"), summary.Totals.Videos))
	if summary.Totals.Failures > 0 {
		b.WriteString(fmt.Sprintf("- %s: %d\n", t("Skipped"), summary.Totals.Failures))
	}
	b.WriteString(fmt.Sprintf("- %s: %d\n", t("Frames"), summary.Totals.Frames))
	b.WriteString(fmt.Sprintf("- %s: %s\n", t("Output size"), formatBytes(summary.Totals.Bytes)))
	b.WriteString(fmt.Sprintf("- %s: %d ms\n", t("Elapsed"), summary.Totals.ElapsedMs))
	b.WriteString("\n")

	b.WriteString("## " + t("Settings") + "\n\n")
	b.WriteString(fmt.Sprintf("- %s: %s\n", t("Frame format"), summary.Settings.Format))
	if summary.Settings.Format == "jpg" {
		b.WriteString(fmt.Sprintf("- %s: %d\n", t("JPEG quality"), summary.Settings.Quality))
	}
	if len(summary.Settings.Extensions) > 0 {
		b.WriteString(fmt.Sprintf("- %s: %s\n", t("Extensions"), strings.Join(summary.Settings.Extensions, ", ")))
	}
	mode := t("sequential")
	if summary.Settings.Parallel {
		mode = fmt.Sprintf("%s (%d %s)", t("parallel"), summary.Settings.Workers, t("workers"))
	}
	b.WriteString(fmt.Sprintf("- %s: %s\n", t("Mode"), mode))

	return b.String()
}

// formatBytes renders a byte count in human-readable form.
func formatBytes(bytes int64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)
	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(gb))
	case bytes >= mb:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(mb))
	case bytes >= kb:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(kb))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
