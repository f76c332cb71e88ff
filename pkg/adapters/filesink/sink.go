// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"path/filepath"

	"github.com/user/framedump/pkg/ports"
)

// Sink saves debug output to files.
type Sink struct {
	baseDir string
	fs      ports.FileSystem
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem) *Sink {
	return &Sink{
		baseDir: baseDir,
		fs:      fs,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveJobsJSON saves the discovered job list as JSON.
func (s *Sink) SaveJobsJSON(data []byte) error {
	path := filepath.Join(s.baseDir, "jobs.json")
	return s.fs.WriteFile(path, data)
}

// SaveProbeJSON saves the probe result for a source file as JSON.
func (s *Sink) SaveProbeJSON(source string, data []byte) error {
	path := filepath.Join(s.baseDir, "probe", source+".json")
	return s.fs.WriteFile(path, data)
}

// SaveRunJSON saves the run summary as JSON.
func (s *Sink) SaveRunJSON(data []byte) error {
	path := filepath.Join(s.baseDir, "run.json")
	return s.fs.WriteFile(path, data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
