// Package extract implements the frame extraction stage.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/user/framedump/pkg/pipeline"
	"github.com/user/framedump/pkg/ports"
)

// maxWorkers caps the pool so large machines do not spawn an unbounded
// number of decoder processes.
const maxWorkers = 32

// Stage decodes each video and writes its frames as numbered images,
// along with a metadata sidecar per video.
type Stage struct {
	decoder    ports.VideoDecoder
	renderer   ports.Renderer
	fs         ports.FileSystem
	sink       ports.DebugSink
	logger     ports.Logger
	numWorkers int
}

// PoolSize returns the worker pool size for a requested worker count,
// sizing from the CPU count when the request is zero or negative. The
// pool never exceeds maxWorkers.
func PoolSize(requested int) int {
	if requested <= 0 {
		requested = runtime.NumCPU()
	}
	if requested > maxWorkers {
		requested = maxWorkers
	}
	return requested
}

// NewStage creates a new extract stage. Passing numWorkers <= 0 sizes
// the pool from the CPU count; either way the pool never exceeds
// maxWorkers.
func NewStage(
	decoder ports.VideoDecoder,
	renderer ports.Renderer,
	fs ports.FileSystem,
	sink ports.DebugSink,
	logger ports.Logger,
	numWorkers int,
) *Stage {
	numWorkers = PoolSize(numWorkers)
	return &Stage{
		decoder:    decoder,
		renderer:   renderer,
		fs:         fs,
		sink:       sink,
		logger:     logger.WithComponent("extract"),
		numWorkers: numWorkers,
	}
}

// Execute processes all jobs. A job that fails is recorded in
// Failures and never aborts its siblings. Videos keeps the jobs'
// original order even when processing is parallel.
func (s *Stage) Execute(ctx context.Context, input pipeline.ExtractInput) (pipeline.ExtractResult, error) {
	if len(input.Jobs) == 0 {
		return pipeline.ExtractResult{Videos: []pipeline.FrameMetadata{}}, nil
	}

	if input.Parallel {
		s.logger.Info("Extracting frames from %d videos with %d workers", len(input.Jobs), s.numWorkers)
		return s.executeParallel(ctx, input)
	}

	s.logger.Info("Extracting frames from %d videos sequentially", len(input.Jobs))
	return s.executeSequential(ctx, input)
}

func (s *Stage) executeSequential(ctx context.Context, input pipeline.ExtractInput) (pipeline.ExtractResult, error) {
	result := pipeline.ExtractResult{Videos: make([]pipeline.FrameMetadata, 0, len(input.Jobs))}

	for i, job := range input.Jobs {
		select {
		case <-ctx.Done():
			return pipeline.ExtractResult{}, ctx.Err()
		default:
		}

		meta, err := s.ExtractOne(ctx, job, input.Quality)
		if err != nil {
			s.logger.Error("Failed to extract from %s: %s", job.Source, err)
			result.Failures = append(result.Failures, pipeline.FailedJob{Source: job.Source, Err: err})
		} else {
			result.Videos = append(result.Videos, meta)
		}

		if input.Progress != nil {
			input.Progress(i+1, len(input.Jobs))
		}
	}

	return result, nil
}

// indexedResult holds a job outcome with its original index for sorting.
type indexedResult struct {
	index int
	meta  pipeline.FrameMetadata
	err   error
}

// executeParallel processes jobs using a worker pool.
func (s *Stage) executeParallel(ctx context.Context, input pipeline.ExtractInput) (pipeline.ExtractResult, error) {
	numJobs := len(input.Jobs)
	jobs := make(chan int, numJobs)
	results := make(chan indexedResult, numJobs)

	// Start workers
	var wg sync.WaitGroup
	for w := 0; w < s.numWorkers; w++ {
		wg.Add(1)
		go s.worker(ctx, &wg, input, jobs, results)
	}

	// Send jobs
	for i := 0; i < numJobs; i++ {
		jobs <- i
	}
	close(jobs)

	// Wait for workers to finish
	go func() {
		wg.Wait()
		close(results)
	}()

	// Collect results; the collector is the single goroutine allowed
	// to call the progress callback
	done := 0
	collected := make([]indexedResult, 0, numJobs)
	for res := range results {
		if res.err != nil {
			s.logger.Error("Failed to extract from %s: %s", input.Jobs[res.index].Source, res.err)
		}
		collected = append(collected, res)
		done++
		if input.Progress != nil {
			input.Progress(done, numJobs)
		}
	}

	if err := ctx.Err(); err != nil {
		return pipeline.ExtractResult{}, err
	}

	// Sort by index to restore the jobs' original order
	sort.Slice(collected, func(i, j int) bool {
		return collected[i].index < collected[j].index
	})

	result := pipeline.ExtractResult{Videos: make([]pipeline.FrameMetadata, 0, numJobs)}
	for _, res := range collected {
		if res.err != nil {
			result.Failures = append(result.Failures, pipeline.FailedJob{Source: input.Jobs[res.index].Source, Err: res.err})
			continue
		}
		result.Videos = append(result.Videos, res.meta)
	}

	return result, nil
}

// worker processes job indexes from the jobs channel.
func (s *Stage) worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	input pipeline.ExtractInput,
	jobs <-chan int,
	results chan<- indexedResult,
) {
	defer wg.Done()

	for idx := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		meta, err := s.ExtractOne(ctx, input.Jobs[idx], input.Quality)
		results <- indexedResult{index: idx, meta: meta, err: err}
	}
}

// ExtractOne decodes a single video and writes every frame plus a
// metadata.json sidecar into the job's output directory. The reported
// frame total is the number of frames actually decoded, which on
// damaged files can be lower than what the container header claims.
func (s *Stage) ExtractOne(ctx context.Context, job pipeline.VideoJob, quality int) (pipeline.FrameMetadata, error) {
	s.logger.Info("Extracting %s", job.Source)

	reader, err := s.decoder.Open(ctx, job.Input)
	if err != nil {
		return pipeline.FrameMetadata{}, fmt.Errorf("%w: %w", pipeline.ErrUnreadableMedia, err)
	}
	defer reader.Close()

	info := reader.Info()
	s.logger.Debug("Probed %s: %dx%d, %.1f fps", job.Source, info.Width, info.Height, info.FPS)

	// Save probe debug output
	if s.sink.Enabled() {
		if data, err := json.MarshalIndent(info, "", "  "); err == nil {
			s.sink.SaveProbeJSON(job.Source, data)
		}
	}

	if err := s.fs.MkdirAll(job.OutputDir); err != nil {
		return pipeline.FrameMetadata{}, fmt.Errorf("create output directory: %w", err)
	}

	count := 0
	var written int64
	for {
		img, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return pipeline.FrameMetadata{}, fmt.Errorf("decode frame %d: %w", count, err)
		}

		data, err := s.renderer.EncodeImage(img, job.Format, quality)
		if err != nil {
			return pipeline.FrameMetadata{}, fmt.Errorf("encode frame %d: %w", count, err)
		}

		framePath := filepath.Join(job.OutputDir, fmt.Sprintf("%04d.%s", count, job.Format.Ext()))
		if err := s.fs.WriteFile(framePath, data); err != nil {
			return pipeline.FrameMetadata{}, fmt.Errorf("write frame %d: %w", count, err)
		}
		count++
		written += int64(len(data))
	}

	if info.FrameCount > 0 && count < info.FrameCount {
		s.logger.Warn("Decoded only %d of %d reported frames from %s", count, info.FrameCount, job.Source)
	}

	meta := pipeline.FrameMetadata{
		Source:      job.Source,
		Frames:      count,
		FPS:         info.FPS,
		DurationSec: durationSec(count, info.FPS),
		Bytes:       written,
	}

	if err := s.writeMetadata(job, meta); err != nil {
		return pipeline.FrameMetadata{}, err
	}

	s.logger.Info("Extracted frames and metadata from %s", job.Source)
	return meta, nil
}

// writeMetadata drops a metadata.json sidecar next to the frames.
func (s *Stage) writeMetadata(job pipeline.VideoJob, meta pipeline.FrameMetadata) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	path := filepath.Join(job.OutputDir, "metadata.json")
	if err := s.fs.WriteFile(path, data); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}

// durationSec derives the clip duration from the counted frames.
// Unknown or bogus frame rates yield a zero duration rather than an
// infinite one.
func durationSec(frames int, fps float64) float64 {
	if fps <= 0 {
		return 0
	}
	return float64(frames) / fps
}
