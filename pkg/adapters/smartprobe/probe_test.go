package smartprobe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/framedump/pkg/adapters/ffprobe"
)

func TestNew_SelectsBackend(t *testing.T) {
	p := New()

	if p.Backend() != BackendFFprobe && p.Backend() != BackendMP4 {
		t.Errorf("unexpected backend %q", p.Backend())
	}
	t.Logf("selected backend: %s", p.Backend())
}

func TestNew_FallsBackToMP4(t *testing.T) {
	// Force ffprobe discovery to fail
	ffprobe.SetFFprobePath("/nonexistent/ffprobe")
	defer ffprobe.SetFFprobePath("")

	p := New()
	if p.Backend() != BackendMP4 {
		t.Errorf("expected mp4 backend, got %q", p.Backend())
	}
}

func TestNewForBackend_MP4(t *testing.T) {
	p, err := NewForBackend(BackendMP4)
	if err != nil {
		t.Fatalf("NewForBackend failed: %v", err)
	}
	if p.Backend() != BackendMP4 {
		t.Errorf("expected mp4 backend, got %q", p.Backend())
	}
}

func TestNewForBackend_Unknown(t *testing.T) {
	_, err := NewForBackend("bogus")
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("expected ErrUnknownBackend, got %v", err)
	}
}

func TestProbe_GarbageFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "smartprobe_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "garbage.mov")
	if err := os.WriteFile(path, []byte("not a video"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	p, err := NewForBackend(BackendMP4)
	if err != nil {
		t.Fatalf("NewForBackend failed: %v", err)
	}

	if _, err := p.Probe(context.Background(), path); err == nil {
		t.Error("expected error for non-video file")
	}
}
