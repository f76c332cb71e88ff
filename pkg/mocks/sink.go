package mocks

import (
	"sync"

	"github.com/user/framedump/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	JobsJSON   []byte
	ProbeJSONs map[string][]byte
	RunJSON    []byte
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:    enabled,
		ProbeJSONs: make(map[string][]byte),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveJobsJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.JobsJSON = data
	return nil
}

func (m *DebugSink) SaveProbeJSON(source string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProbeJSONs[source] = data
	return nil
}

func (m *DebugSink) SaveRunJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RunJSON = data
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)

// NullSink is a no-op implementation of ports.DebugSink.
type NullSink struct{}

func (m *NullSink) Enabled() bool                                  { return false }
func (m *NullSink) SaveJobsJSON(data []byte) error                 { return nil }
func (m *NullSink) SaveProbeJSON(source string, data []byte) error { return nil }
func (m *NullSink) SaveRunJSON(data []byte) error                  { return nil }

var _ ports.DebugSink = (*NullSink)(nil)
