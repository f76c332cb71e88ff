package framedump

import (
	"context"
	"fmt"

	"github.com/user/framedump/pkg/adapters/ffmpegdecoder"
	"github.com/user/framedump/pkg/adapters/filesink"
	"github.com/user/framedump/pkg/adapters/ggrenderer"
	"github.com/user/framedump/pkg/adapters/logger"
	"github.com/user/framedump/pkg/adapters/nullsink"
	"github.com/user/framedump/pkg/adapters/osfilesystem"
	"github.com/user/framedump/pkg/adapters/smartprobe"
	"github.com/user/framedump/pkg/orchestrator"
	"github.com/user/framedump/pkg/pipeline"
	"github.com/user/framedump/pkg/ports"
	"github.com/user/framedump/pkg/stages/extract"
	"github.com/user/framedump/pkg/stages/scan"
	"github.com/user/framedump/pkg/stages/sheet"
)

// Extractor runs the frame extraction pipeline over one input directory.
type Extractor struct {
	inputDir  string
	outputDir string
	config    Config
}

// New creates an Extractor with default settings. The format is a name
// such as "png" or "jpg"; concurrent selects worker pool extraction.
func New(inputDir, outputDir, format string, concurrent bool) (*Extractor, error) {
	f, err := ports.ParseImageFormat(format)
	if err != nil {
		return nil, err
	}

	cfg := NewConfigBuilder().
		WithFormat(f).
		WithParallel(concurrent).
		Build()

	return NewWithConfig(inputDir, outputDir, cfg), nil
}

// NewWithConfig creates an Extractor with the given configuration.
func NewWithConfig(inputDir, outputDir string, config Config) *Extractor {
	return &Extractor{
		inputDir:  inputDir,
		outputDir: outputDir,
		config:    config,
	}
}

// Run executes the full pipeline and returns one metadata record per
// successfully extracted video, in discovery order. Use the package
// Run function when the full result, including failures, is needed.
func (e *Extractor) Run(ctx context.Context) ([]pipeline.FrameMetadata, error) {
	result, err := Run(ctx, e.inputDir, e.outputDir, e.config)
	if err != nil {
		return nil, err
	}
	return result.Videos, nil
}

// Run wires the default adapters and executes the pipeline once.
// The log file is opened before the run starts and closed when it
// finishes, so repeated runs append to the same file.
func Run(ctx context.Context, inputDir, outputDir string, config Config) (orchestrator.RunResult, error) {
	if config.FFmpegPath != "" {
		ffmpegdecoder.SetFFmpegPath(config.FFmpegPath)
	}

	fs := osfilesystem.New()
	renderer := ggrenderer.New()
	prober := smartprobe.New()
	decoder := ffmpegdecoder.New(prober)

	log, closeLog, err := buildLogger(config)
	if err != nil {
		return orchestrator.RunResult{}, err
	}
	defer closeLog()

	var sink ports.DebugSink
	if config.Debug {
		if err := fs.MkdirAll(config.DebugDir); err != nil {
			return orchestrator.RunResult{}, fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(config.DebugDir, fs)
	} else {
		sink = nullsink.New()
	}

	scanStage := scan.NewStage(fs, log)
	extractStage := extract.NewStage(decoder, renderer, fs, sink, log, config.Workers)
	sheetStage := sheet.NewStage(renderer, fs, log)

	orch := orchestrator.New(scanStage, extractStage, sheetStage, sink, log)

	return orch.Run(ctx, config.ToOrchestratorConfig(inputDir, outputDir))
}

// buildLogger assembles the run logger from the configured destinations.
// The returned func closes the log file; it is safe to call when no file
// was opened.
func buildLogger(config Config) (ports.Logger, func(), error) {
	var destinations []ports.Logger
	if config.Logger != nil {
		destinations = append(destinations, config.Logger)
	}

	closeLog := func() {}
	if config.LogFile != "" {
		fileLog, err := logger.NewFile(config.LogFile, config.LogLevel)
		if err != nil {
			return nil, nil, err
		}
		closeLog = func() { fileLog.Close() }
		destinations = append(destinations, fileLog)
	}

	switch len(destinations) {
	case 0:
		return logger.NewNoop(), closeLog, nil
	case 1:
		return destinations[0], closeLog, nil
	default:
		return logger.NewTee(destinations...), closeLog, nil
	}
}
