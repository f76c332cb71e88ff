package ports

// DebugSink abstracts debug output for intermediate results.
// It allows saving intermediate processing results for debugging purposes.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveJobsJSON saves the discovered job list as JSON.
	SaveJobsJSON(data []byte) error

	// SaveProbeJSON saves the probe result for a source file as JSON.
	SaveProbeJSON(source string, data []byte) error

	// SaveRunJSON saves the run summary as JSON.
	SaveRunJSON(data []byte) error
}
