// Package scan implements the input directory scanning stage.
package scan

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/user/framedump/pkg/pipeline"
	"github.com/user/framedump/pkg/ports"
)

// Stage discovers video files in the input directory and builds one
// extraction job per match.
type Stage struct {
	fs     ports.FileSystem
	logger ports.Logger
}

// NewStage creates a new scan stage.
func NewStage(fs ports.FileSystem, logger ports.Logger) *Stage {
	return &Stage{
		fs:     fs,
		logger: logger.WithComponent("scan"),
	}
}

// Execute lists the input directory and builds jobs for matching videos.
// Jobs follow the directory listing order, so downstream results are
// deterministic regardless of how they are processed.
func (s *Stage) Execute(ctx context.Context, input pipeline.ScanInput) (pipeline.ScanResult, error) {
	exists, err := s.fs.Exists(input.InputDir)
	if err != nil {
		return pipeline.ScanResult{}, fmt.Errorf("check input directory: %w", err)
	}
	if !exists {
		return pipeline.ScanResult{}, fmt.Errorf("%w: %s", pipeline.ErrInputDirNotFound, input.InputDir)
	}

	s.logger.Debug("Scanning %s", input.InputDir)

	names, err := s.fs.ReadDir(input.InputDir)
	if err != nil {
		return pipeline.ScanResult{}, fmt.Errorf("read input directory: %w", err)
	}

	jobs := make([]pipeline.VideoJob, 0, len(names))
	for _, name := range names {
		if !matchesExtension(name, input.Extensions) {
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		jobs = append(jobs, pipeline.VideoJob{
			Source:    name,
			Input:     filepath.Join(input.InputDir, name),
			OutputDir: filepath.Join(input.OutputDir, stem),
			Format:    input.Format,
		})
	}

	s.logger.Info("Found %d video files", len(jobs))

	if err := s.fs.MkdirAll(input.OutputDir); err != nil {
		return pipeline.ScanResult{}, fmt.Errorf("create output directory: %w", err)
	}
	s.logger.Debug("Created output folder %s", input.OutputDir)

	return pipeline.ScanResult{Jobs: jobs}, nil
}

// matchesExtension reports whether name carries one of the wanted
// extensions. Matching is case-insensitive so camera captures named
// with upper-case suffixes are picked up too.
func matchesExtension(name string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	for _, want := range extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}
