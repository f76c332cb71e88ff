// Package main provides the CLI entry point for framedump.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"

	"github.com/user/framedump/pkg/adapters/logger"
	"github.com/user/framedump/pkg/adapters/osfilesystem"
	"github.com/user/framedump/pkg/adapters/smartprobe"
	"github.com/user/framedump/pkg/config"
	"github.com/user/framedump/pkg/framedump"
	"github.com/user/framedump/pkg/orchestrator"
	"github.com/user/framedump/pkg/ports"
	"github.com/user/framedump/pkg/stages/extract"
	"github.com/user/framedump/pkg/summarizer"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "framedump",
		Usage:   l10n.T("Extract frames and metadata from video files"),
		Version: version,
		Commands: []*cli.Command{
			extractCommand(),
			probeCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func extractCommand() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     l10n.T("Extract frames from every video in a directory"),
		ArgsUsage: "<input-dir>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "frames",
				Usage:   l10n.T("Directory where extracted frames are written"),
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "png",
				Usage:   l10n.T("Frame image format (png or jpg)"),
			},
			&cli.BoolFlag{
				Name:    "concurrency",
				Aliases: []string{"c"},
				Usage:   l10n.T("Extract videos concurrently with a worker pool"),
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   l10n.T("Worker pool size (0 = one per CPU)"),
			},
			&cli.IntFlag{
				Name:    "quality",
				Aliases: []string{"q"},
				Value:   85,
				Usage:   l10n.T("JPEG quality (1-100)"),
			},
			&cli.StringFlag{
				Name:  "ffmpeg",
				Usage: l10n.T("Path to the ffmpeg binary (default: search PATH)"),
			},
			&cli.StringSliceFlag{
				Name:  "ext",
				Value: cli.NewStringSlice(".mov"),
				Usage: l10n.T("Video extensions to pick up (repeatable)"),
			},
			&cli.BoolFlag{
				Name:  "sheet",
				Usage: l10n.T("Render a contact sheet per video"),
			},
			&cli.IntFlag{
				Name:  "sheet-columns",
				Value: 4,
				Usage: l10n.T("Contact sheet thumbnails per row"),
			},
			&cli.IntFlag{
				Name:  "thumb-width",
				Value: 240,
				Usage: l10n.T("Contact sheet thumbnail width in pixels"),
			},
			&cli.StringFlag{
				Name:    "summary",
				Aliases: []string{"s"},
				Usage:   l10n.T("Write a run summary to this file"),
			},
			&cli.StringFlag{
				Name:  "summary-format",
				Value: "markdown",
				Usage: l10n.T("Summary format (markdown or json)"),
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: l10n.T("Load settings from a YAML file"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   l10n.T("Log level (debug, info, warn, error)"),
			},
			&cli.StringFlag{
				Name:  "log-file",
				Value: "video_frame_extraction.log",
				Usage: l10n.T("Log file path (empty string disables the log file)"),
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"Q"},
				Usage:   l10n.T("Suppress console output"),
			},
			&cli.BoolFlag{
				Name:  "no-progress",
				Usage: l10n.T("Disable the progress bar"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   l10n.T("Enable debug output"),
			},
			&cli.StringFlag{
				Name:  "debug-dir",
				Value: "./debug",
				Usage: l10n.T("Directory for debug output"),
			},
		},
		Action: runExtract,
	}
}

func runExtract(c *cli.Context) error {
	cfg, err := resolveConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	if cfg.InputDir == "" {
		return cli.Exit(l10n.T("Input directory argument is required"), 2)
	}

	format, err := ports.ParseImageFormat(cfg.Format)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	var console ports.Logger
	if !c.Bool("quiet") {
		console = logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))
	}

	// Progress bar on interactive terminals only; the bar is created
	// lazily because the video count is unknown until the scan runs.
	var bar *progressbar.ProgressBar
	var progress func(done, total int)
	if console != nil && !c.Bool("no-progress") && isatty.IsTerminal(os.Stdout.Fd()) {
		progress = func(done, total int) {
			if bar == nil {
				bar = newProgressBar(total)
			}
			bar.Set(done)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		if console != nil {
			console.Warn("Interrupted, shutting down...")
		}
		cancel()
	}()

	result, err := framedump.Run(ctx, cfg.InputDir, cfg.OutputDir, buildRunConfig(cfg, format, console, progress))
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if cfg.Summary != "" {
		if err := writeSummary(cfg, result); err != nil {
			if console != nil {
				console.Error("Failed to write summary: %s", err)
			}
			return cli.Exit(err.Error(), 1)
		}
		if console != nil {
			console.Info("Summary saved to %s", cfg.Summary)
		}
	}

	return nil
}

// resolveConfig builds the effective configuration from defaults, an
// optional config file, and explicit CLI flags, in that order.
func resolveConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()

	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if c.Args().Len() > 0 {
		cfg.InputDir = c.Args().First()
	}
	if c.IsSet("output") {
		cfg.OutputDir = c.String("output")
	}
	if c.IsSet("format") {
		cfg.Format = c.String("format")
	}
	if c.IsSet("quality") {
		cfg.Quality = c.Int("quality")
	}
	if c.IsSet("concurrency") {
		cfg.Concurrency = c.Bool("concurrency")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("ffmpeg") {
		cfg.FFmpegPath = c.String("ffmpeg")
	}
	if c.IsSet("ext") {
		cfg.Extensions = normalizeExtensions(c.StringSlice("ext"))
	}
	if c.IsSet("sheet") {
		cfg.SheetEnabled = c.Bool("sheet")
	}
	if c.IsSet("sheet-columns") {
		cfg.SheetColumns = c.Int("sheet-columns")
	}
	if c.IsSet("thumb-width") {
		cfg.ThumbWidth = c.Int("thumb-width")
	}
	if c.IsSet("summary") {
		cfg.Summary = c.String("summary")
	}
	if c.IsSet("summary-format") {
		cfg.SummaryFormat = c.String("summary-format")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-file") {
		cfg.LogFile = c.String("log-file")
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}
	if c.IsSet("debug-dir") {
		cfg.DebugDir = c.String("debug-dir")
	}

	return cfg, nil
}

// normalizeExtensions ensures every extension carries a leading dot.
func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

// buildRunConfig converts the CLI configuration to a framedump.Config.
func buildRunConfig(cfg config.Config, format ports.ImageFormat, console ports.Logger, progress func(done, total int)) framedump.Config {
	builder := framedump.NewConfigBuilder().
		WithExtensions(cfg.Extensions...).
		WithFormat(format).
		WithQuality(cfg.Quality).
		WithParallel(cfg.Concurrency).
		WithWorkers(cfg.Workers).
		WithFFmpegPath(cfg.FFmpegPath).
		WithSheet(cfg.SheetEnabled).
		WithSheetColumns(cfg.SheetColumns).
		WithThumbWidth(cfg.ThumbWidth).
		WithBackgroundColor(config.ParseColor(cfg.SheetTheme.BackgroundColor)).
		WithBorderColor(config.ParseColor(cfg.SheetTheme.BorderColor)).
		WithTextColor(config.ParseColor(cfg.SheetTheme.TextColor)).
		WithLogFile(cfg.LogFile).
		WithLogLevel(ports.ParseLogLevel(cfg.LogLevel)).
		WithDebug(cfg.Debug).
		WithDebugDir(cfg.DebugDir)

	if console != nil {
		builder.WithLogger(console)
	}
	if progress != nil {
		builder.WithProgress(progress)
	}

	return builder.Build()
}

func newProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(l10n.T("Extracting")),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "▐",
			BarEnd:        "▌",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// writeSummary renders the run result with the configured formatter.
func writeSummary(cfg config.Config, result orchestrator.RunResult) error {
	formatter, err := summaryFormatter(cfg.SummaryFormat)
	if err != nil {
		return err
	}

	videos := make([]summarizer.VideoEntry, 0, len(result.Videos))
	for _, v := range result.Videos {
		videos = append(videos, summarizer.VideoEntry{
			Source:      v.Source,
			Frames:      v.Frames,
			FPS:         v.FPS,
			DurationSec: v.DurationSec,
			Bytes:       v.Bytes,
		})
	}

	failures := make([]summarizer.FailureEntry, 0, len(result.Failures))
	for _, f := range result.Failures {
		failures = append(failures, summarizer.FailureEntry{
			Source: f.Source,
			Reason: f.Err.Error(),
		})
	}

	workers := 0
	if cfg.Concurrency {
		workers = extract.PoolSize(cfg.Workers)
	}

	summary := summarizer.NewBuilder().
		WithRun(result.InputDir, result.OutputDir).
		WithVideos(videos).
		WithFailures(failures).
		WithTotals(summarizer.Totals{
			Videos:    len(result.Videos),
			Failures:  len(result.Failures),
			Frames:    result.TotalFrames,
			Bytes:     result.TotalBytes,
			ElapsedMs: result.ElapsedMs,
		}).
		WithSettings(summarizer.Settings{
			Format:     cfg.Format,
			Extensions: cfg.Extensions,
			Parallel:   cfg.Concurrency,
			Workers:    workers,
			Quality:    cfg.Quality,
		}).
		Build()

	writer := summarizer.NewWriter(formatter, osfilesystem.New())
	return writer.Write(cfg.Summary, summary)
}

func summaryFormatter(format string) (summarizer.Formatter, error) {
	switch format {
	case "markdown", "md":
		return summarizer.NewMarkdownFormatter(
			summarizer.WithTranslator(l10n.T),
			summarizer.WithVersion(version),
		), nil
	case "json":
		return summarizer.NewJSONFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported summary format: %q", format)
	}
}

func probeCommand() *cli.Command {
	return &cli.Command{
		Name:      "probe",
		Usage:     l10n.T("Print stream metadata for video files as JSON"),
		ArgsUsage: "<video-file>...",
		Action:    runProbe,
	}
}

// probeReport is the JSON shape printed per probed file.
type probeReport struct {
	Path       string  `json:"path"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	FPS        float64 `json:"fps"`
	FrameCount int     `json:"frame_count"`
	DurationMs int     `json:"duration_ms"`
	Codec      string  `json:"codec"`
}

func runProbe(c *cli.Context) error {
	if c.Args().Len() == 0 {
		return cli.Exit(l10n.T("At least one video file argument is required"), 2)
	}

	prober := smartprobe.New()

	for _, path := range c.Args().Slice() {
		info, err := prober.Probe(c.Context, path)
		if err != nil {
			return cli.Exit(fmt.Sprintf("%s: %v", path, err), 1)
		}

		report := probeReport{
			Path:       path,
			Width:      info.Width,
			Height:     info.Height,
			FPS:        info.FPS,
			FrameCount: info.FrameCount,
			DurationMs: info.DurationMs,
			Codec:      info.Codec,
		}

		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		fmt.Println(string(data))
	}

	return nil
}
