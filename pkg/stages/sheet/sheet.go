// Package sheet implements the contact sheet stage.
//
// A contact sheet is a single image per video showing its extracted
// frames as a thumbnail grid, for reviewing a clip at a glance without
// opening the individual frame files. Long clips are thinned to evenly
// spaced frames so the grid never grows past a few rows.
package sheet

import (
	"context"
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/framedump/pkg/pipeline"
	"github.com/user/framedump/pkg/ports"
)

// Layout constants for the thumbnail grid.
const (
	cellGap     = 8
	headerH     = 28
	borderWidth = 1
	maxRows     = 3
)

// Stage renders one contact sheet per extracted video.
type Stage struct {
	renderer ports.Renderer
	fs       ports.FileSystem
	logger   ports.Logger
}

// NewStage creates a new sheet stage.
func NewStage(renderer ports.Renderer, fs ports.FileSystem, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		fs:       fs,
		logger:   logger.WithComponent("sheet"),
	}
}

// Execute renders a sheet for each job. Jobs and Videos are parallel
// slices; callers pass only the jobs that extracted successfully.
// Videos with zero frames are skipped, and a video whose sheet cannot
// be built is logged and skipped rather than failing the stage. The
// frames already extracted stay valid either way.
func (s *Stage) Execute(ctx context.Context, input pipeline.SheetInput) (pipeline.SheetResult, error) {
	result := pipeline.SheetResult{}

	for i, job := range input.Jobs {
		select {
		case <-ctx.Done():
			return pipeline.SheetResult{}, ctx.Err()
		default:
		}

		meta := input.Videos[i]
		if meta.Frames == 0 {
			continue
		}

		path, err := s.buildSheet(job, meta, input)
		if err != nil {
			s.logger.Warn("Skipping contact sheet for %s: %s", job.Source, err)
			continue
		}
		s.logger.Info("Contact sheet saved to %s", path)
		result.Sheets = append(result.Sheets, path)
	}

	return result, nil
}

// buildSheet lays a sample of the video's frames out as a grid and
// writes the composed image next to them.
func (s *Stage) buildSheet(job pipeline.VideoJob, meta pipeline.FrameMetadata, input pipeline.SheetInput) (string, error) {
	cols := input.Columns
	if cols < 1 {
		cols = 1
	}
	frames := sampleIndexes(meta.Frames, cols*maxRows)
	if cols > len(frames) {
		cols = len(frames)
	}
	rows := (len(frames) + cols - 1) / cols

	// The first frame fixes the thumbnail aspect ratio
	first, err := s.loadFrame(job, 0)
	if err != nil {
		return "", err
	}
	thumbW := input.ThumbWidth
	if thumbW < 1 {
		thumbW = 1
	}
	thumbH := thumbW
	if fb := first.Bounds(); fb.Dx() > 0 {
		thumbH = fb.Dy() * thumbW / fb.Dx()
	}
	if thumbH < 1 {
		thumbH = 1
	}

	canvasW := cols*thumbW + (cols+1)*cellGap
	canvasH := headerH + rows*thumbH + (rows+1)*cellGap

	canvas := s.renderer.CreateCanvas(canvasW, canvasH, input.Theme.BackgroundColor)

	title := fmt.Sprintf("%s - %d frames @ %.1f fps (%.2fs)", meta.Source, meta.Frames, meta.FPS, meta.DurationSec)
	titleStyle := ports.TextStyle{
		FontSize: 14,
		Color:    input.Theme.TextColor,
		Align:    ports.AlignLeft,
	}
	canvas.DrawText(title, cellGap, headerH/2, titleStyle)

	for cell, idx := range frames {
		var img image.Image
		if idx == 0 {
			img = first
		} else {
			img, err = s.loadFrame(job, idx)
			if err != nil {
				return "", err
			}
		}

		thumb := s.renderer.ResizeImage(img, thumbW, thumbH)
		x := cellGap + (cell%cols)*(thumbW+cellGap)
		y := headerH + cellGap + (cell/cols)*(thumbH+cellGap)
		canvas.DrawImage(thumb, x, y)
		canvas.DrawRectStroke(x, y, thumbW, thumbH, input.Theme.BorderColor, borderWidth)
	}

	data, err := s.renderer.EncodeImage(canvas.ToImage(), ports.FormatPNG, 0)
	if err != nil {
		return "", fmt.Errorf("encode sheet: %w", err)
	}

	path := filepath.Join(job.OutputDir, "sheet.png")
	if err := s.fs.WriteFile(path, data); err != nil {
		return "", fmt.Errorf("write sheet: %w", err)
	}
	return path, nil
}

// sampleIndexes picks which frames appear on the sheet. Counts within
// the limit keep every frame; larger counts are thinned to evenly
// spaced picks that always include the first and the last frame.
func sampleIndexes(frames, limit int) []int {
	if frames <= limit {
		idx := make([]int, frames)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	idx := make([]int, limit)
	for i := range idx {
		idx[i] = i * (frames - 1) / (limit - 1)
	}
	return idx
}

// loadFrame reads back one extracted frame from the job's output
// directory.
func (s *Stage) loadFrame(job pipeline.VideoJob, idx int) (image.Image, error) {
	path := filepath.Join(job.OutputDir, fmt.Sprintf("%04d.%s", idx, job.Format.Ext()))
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read frame %d: %w", idx, err)
	}
	img, err := s.renderer.DecodeImage(data, job.Format)
	if err != nil {
		return nil, fmt.Errorf("decode frame %d: %w", idx, err)
	}
	return img, nil
}
