// Package e2e contains end-to-end tests for the framedump CLI.
// Tests are gated behind FRAMEDUMP_E2E=1 and run against a freshly built
// binary, or a pre-built one given via FRAMEDUMP_BINARY.
package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// getBinaryName returns the test binary name with platform-specific extension
func getBinaryName() string {
	if runtime.GOOS == "windows" {
		return "framedump-test.exe"
	}
	return "framedump-test"
}

// getBinaryPath returns the path to execute the test binary
// If FRAMEDUMP_BINARY env var is set, use that instead (for CI with pre-built binaries)
func getBinaryPath() string {
	if path := os.Getenv("FRAMEDUMP_BINARY"); path != "" {
		return path
	}
	if runtime.GOOS == "windows" {
		return ".\\framedump-test.exe"
	}
	return "./framedump-test"
}

// shouldBuildBinary returns true if we need to build the binary (no pre-built binary provided)
func shouldBuildBinary() bool {
	return os.Getenv("FRAMEDUMP_BINARY") == ""
}

// frameMetadata mirrors the metadata.json sidecar written next to the frames.
type frameMetadata struct {
	Source          string  `json:"source"`
	TotalFrames     int     `json:"total_frames"`
	FPS             float64 `json:"fps"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// TestExtractCommand tests the extract subcommand with a real video file
func TestExtractCommand(t *testing.T) {
	if os.Getenv("FRAMEDUMP_E2E") != "1" {
		t.Skip("Skipping E2E test (set FRAMEDUMP_E2E=1 to run)")
	}

	// Build the CLI if no pre-built binary is provided
	if shouldBuildBinary() {
		buildCmd := exec.Command("go", "build", "-o", getBinaryName(), "./cmd/framedump")
		buildCmd.Dir = getProjectRoot(t)
		if out, err := buildCmd.CombinedOutput(); err != nil {
			t.Fatalf("Failed to build CLI: %v\n%s", err, out)
		}
		defer os.Remove(filepath.Join(getProjectRoot(t), getBinaryName()))
	}

	tmpDir := t.TempDir()
	inputDir := filepath.Join(tmpDir, "input")
	framesDir := filepath.Join(tmpDir, "frames")
	logPath := filepath.Join(tmpDir, "extraction.log")

	if err := os.MkdirAll(inputDir, 0755); err != nil {
		t.Fatalf("Failed to create input dir: %v", err)
	}
	synthesizeClip(t, filepath.Join(inputDir, "clip.mov"), 30, 30)

	// Run the extract command (flags must come before the directory argument in urfave/cli)
	cmd := exec.Command(
		getBinaryPath(),
		"extract",
		"-o", framesDir,
		"--log-file", logPath,
		inputDir,
	)
	cmd.Dir = getProjectRoot(t)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		t.Fatalf("Extract command failed: %v\nstdout: %s\nstderr: %s", err, stdout.String(), stderr.String())
	}

	// Verify frames were written, numbered from 0000
	if _, err := os.Stat(filepath.Join(framesDir, "clip", "0000.png")); err != nil {
		t.Fatalf("First frame not found: %v", err)
	}

	// Verify the metadata sidecar
	meta := readSidecar(t, filepath.Join(framesDir, "clip", "metadata.json"))
	if meta.Source != "clip.mov" {
		t.Errorf("Unexpected metadata source: %s", meta.Source)
	}
	if meta.TotalFrames < 1 {
		t.Errorf("Expected at least one frame, got %d", meta.TotalFrames)
	}
	if meta.FPS <= 0 {
		t.Errorf("Expected positive fps, got %f", meta.FPS)
	}

	// The frame count in the sidecar matches the files on disk
	frames := countFrameFiles(t, filepath.Join(framesDir, "clip"), ".png")
	if frames != meta.TotalFrames {
		t.Errorf("Sidecar reports %d frames but %d files exist", meta.TotalFrames, frames)
	}

	// Verify the log file was written
	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Log file not found: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Log file is empty")
	}

	t.Logf("Extracted %d frames", frames)
}

// TestExtractConcurrent tests concurrent extraction of multiple videos
func TestExtractConcurrent(t *testing.T) {
	if os.Getenv("FRAMEDUMP_E2E") != "1" {
		t.Skip("Skipping E2E test (set FRAMEDUMP_E2E=1 to run)")
	}

	if shouldBuildBinary() {
		buildCmd := exec.Command("go", "build", "-o", getBinaryName(), "./cmd/framedump")
		buildCmd.Dir = getProjectRoot(t)
		if out, err := buildCmd.CombinedOutput(); err != nil {
			t.Fatalf("Failed to build CLI: %v\n%s", err, out)
		}
		defer os.Remove(filepath.Join(getProjectRoot(t), getBinaryName()))
	}

	tmpDir := t.TempDir()
	inputDir := filepath.Join(tmpDir, "input")
	framesDir := filepath.Join(tmpDir, "frames")

	if err := os.MkdirAll(inputDir, 0755); err != nil {
		t.Fatalf("Failed to create input dir: %v", err)
	}
	synthesizeClip(t, filepath.Join(inputDir, "a.mov"), 20, 20)
	synthesizeClip(t, filepath.Join(inputDir, "b.mov"), 20, 20)

	cmd := exec.Command(
		getBinaryPath(),
		"extract",
		"-c",
		"-o", framesDir,
		"--log-file", filepath.Join(tmpDir, "extraction.log"),
		inputDir,
	)
	cmd.Dir = getProjectRoot(t)

	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Extract command failed: %v\n%s", err, out)
	}

	// Both videos were extracted
	for _, stem := range []string{"a", "b"} {
		if _, err := os.Stat(filepath.Join(framesDir, stem, "0000.png")); err != nil {
			t.Errorf("First frame for %s not found: %v", stem, err)
		}
		meta := readSidecar(t, filepath.Join(framesDir, stem, "metadata.json"))
		if meta.TotalFrames < 1 {
			t.Errorf("Expected frames for %s, got %d", stem, meta.TotalFrames)
		}
	}
}

// TestExtractWithSummary tests the summary report output
func TestExtractWithSummary(t *testing.T) {
	if os.Getenv("FRAMEDUMP_E2E") != "1" {
		t.Skip("Skipping E2E test (set FRAMEDUMP_E2E=1 to run)")
	}

	if shouldBuildBinary() {
		buildCmd := exec.Command("go", "build", "-o", getBinaryName(), "./cmd/framedump")
		buildCmd.Dir = getProjectRoot(t)
		if out, err := buildCmd.CombinedOutput(); err != nil {
			t.Fatalf("Failed to build CLI: %v\n%s", err, out)
		}
		defer os.Remove(filepath.Join(getProjectRoot(t), getBinaryName()))
	}

	tmpDir := t.TempDir()
	inputDir := filepath.Join(tmpDir, "input")
	summaryPath := filepath.Join(tmpDir, "summary.md")

	if err := os.MkdirAll(inputDir, 0755); err != nil {
		t.Fatalf("Failed to create input dir: %v", err)
	}
	synthesizeClip(t, filepath.Join(inputDir, "clip.mov"), 10, 10)

	cmd := exec.Command(
		getBinaryPath(),
		"extract",
		"-o", filepath.Join(tmpDir, "frames"),
		"--log-file", filepath.Join(tmpDir, "extraction.log"),
		"-s", summaryPath,
		inputDir,
	)
	cmd.Dir = getProjectRoot(t)

	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Extract command failed: %v\n%s", err, out)
	}

	data, err := os.ReadFile(summaryPath)
	if err != nil {
		t.Fatalf("Summary file not found: %v", err)
	}
	if !strings.Contains(string(data), "clip.mov") {
		t.Errorf("Summary does not mention the source video:\n%s", data)
	}

	t.Logf("Summary written: %d bytes", len(data))
}

// TestExtractWithContactSheet tests contact sheet generation
func TestExtractWithContactSheet(t *testing.T) {
	if os.Getenv("FRAMEDUMP_E2E") != "1" {
		t.Skip("Skipping E2E test (set FRAMEDUMP_E2E=1 to run)")
	}

	if shouldBuildBinary() {
		buildCmd := exec.Command("go", "build", "-o", getBinaryName(), "./cmd/framedump")
		buildCmd.Dir = getProjectRoot(t)
		if out, err := buildCmd.CombinedOutput(); err != nil {
			t.Fatalf("Failed to build CLI: %v\n%s", err, out)
		}
		defer os.Remove(filepath.Join(getProjectRoot(t), getBinaryName()))
	}

	tmpDir := t.TempDir()
	inputDir := filepath.Join(tmpDir, "input")
	framesDir := filepath.Join(tmpDir, "frames")

	if err := os.MkdirAll(inputDir, 0755); err != nil {
		t.Fatalf("Failed to create input dir: %v", err)
	}
	synthesizeClip(t, filepath.Join(inputDir, "clip.mov"), 12, 12)

	cmd := exec.Command(
		getBinaryPath(),
		"extract",
		"--sheet",
		"-o", framesDir,
		"--log-file", filepath.Join(tmpDir, "extraction.log"),
		inputDir,
	)
	cmd.Dir = getProjectRoot(t)

	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Extract command failed: %v\n%s", err, out)
	}

	info, err := os.Stat(filepath.Join(framesDir, "clip", "sheet.png"))
	if err != nil {
		t.Fatalf("Contact sheet not found: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Contact sheet is empty")
	}
}

// TestExtractWithDebugOutput tests debug output
func TestExtractWithDebugOutput(t *testing.T) {
	if os.Getenv("FRAMEDUMP_E2E") != "1" {
		t.Skip("Skipping E2E test (set FRAMEDUMP_E2E=1 to run)")
	}

	if shouldBuildBinary() {
		buildCmd := exec.Command("go", "build", "-o", getBinaryName(), "./cmd/framedump")
		buildCmd.Dir = getProjectRoot(t)
		if out, err := buildCmd.CombinedOutput(); err != nil {
			t.Fatalf("Failed to build CLI: %v\n%s", err, out)
		}
		defer os.Remove(filepath.Join(getProjectRoot(t), getBinaryName()))
	}

	tmpDir := t.TempDir()
	inputDir := filepath.Join(tmpDir, "input")
	debugDir := filepath.Join(tmpDir, "debug")

	if err := os.MkdirAll(inputDir, 0755); err != nil {
		t.Fatalf("Failed to create input dir: %v", err)
	}
	synthesizeClip(t, filepath.Join(inputDir, "clip.mov"), 10, 10)

	cmd := exec.Command(
		getBinaryPath(),
		"extract",
		"-o", filepath.Join(tmpDir, "frames"),
		"--log-file", filepath.Join(tmpDir, "extraction.log"),
		"-d",
		"--debug-dir", debugDir,
		inputDir,
	)
	cmd.Dir = getProjectRoot(t)

	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Extract command failed: %v\n%s", err, out)
	}

	// Verify debug output
	if _, err := os.Stat(filepath.Join(debugDir, "jobs.json")); os.IsNotExist(err) {
		t.Error("Expected jobs.json in debug output")
	}
	if _, err := os.Stat(filepath.Join(debugDir, "run.json")); os.IsNotExist(err) {
		t.Error("Expected run.json in debug output")
	}

	entries, err := os.ReadDir(debugDir)
	if err != nil {
		t.Fatalf("Failed to read debug dir: %v", err)
	}
	t.Logf("Debug output created with %d entries", len(entries))
}

// TestExtractMissingInputDir tests the error for a nonexistent input directory
func TestExtractMissingInputDir(t *testing.T) {
	if os.Getenv("FRAMEDUMP_E2E") != "1" {
		t.Skip("Skipping E2E test (set FRAMEDUMP_E2E=1 to run)")
	}

	if shouldBuildBinary() {
		buildCmd := exec.Command("go", "build", "-o", getBinaryName(), "./cmd/framedump")
		buildCmd.Dir = getProjectRoot(t)
		if out, err := buildCmd.CombinedOutput(); err != nil {
			t.Fatalf("Failed to build CLI: %v\n%s", err, out)
		}
		defer os.Remove(filepath.Join(getProjectRoot(t), getBinaryName()))
	}

	tmpDir := t.TempDir()

	cmd := exec.Command(
		getBinaryPath(),
		"extract",
		"-o", filepath.Join(tmpDir, "frames"),
		"--log-file", filepath.Join(tmpDir, "extraction.log"),
		filepath.Join(tmpDir, "no-such-dir"),
	)
	cmd.Dir = getProjectRoot(t)

	out, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatal("Expected extract to fail for a missing input directory")
	}
	if !strings.Contains(string(out), "input directory not found") {
		t.Errorf("Unexpected error output: %s", out)
	}
}

// TestProbeCommand tests the probe subcommand
func TestProbeCommand(t *testing.T) {
	if os.Getenv("FRAMEDUMP_E2E") != "1" {
		t.Skip("Skipping E2E test (set FRAMEDUMP_E2E=1 to run)")
	}

	if shouldBuildBinary() {
		buildCmd := exec.Command("go", "build", "-o", getBinaryName(), "./cmd/framedump")
		buildCmd.Dir = getProjectRoot(t)
		if out, err := buildCmd.CombinedOutput(); err != nil {
			t.Fatalf("Failed to build CLI: %v\n%s", err, out)
		}
		defer os.Remove(filepath.Join(getProjectRoot(t), getBinaryName()))
	}

	tmpDir := t.TempDir()
	clipPath := filepath.Join(tmpDir, "clip.mov")
	synthesizeClip(t, clipPath, 30, 30)

	cmd := exec.Command(getBinaryPath(), "probe", clipPath)
	cmd.Dir = getProjectRoot(t)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		t.Fatalf("Probe command failed: %v\nstderr: %s", err, stderr.String())
	}

	var report struct {
		Path       string  `json:"path"`
		Width      int     `json:"width"`
		Height     int     `json:"height"`
		FPS        float64 `json:"fps"`
		FrameCount int     `json:"frame_count"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &report); err != nil {
		t.Fatalf("Probe output is not valid JSON: %v\n%s", err, stdout.String())
	}

	if report.Width != 64 || report.Height != 64 {
		t.Errorf("Expected 64x64, got %dx%d", report.Width, report.Height)
	}
	if report.FPS <= 0 {
		t.Errorf("Expected positive fps, got %f", report.FPS)
	}
	if report.FrameCount < 1 {
		t.Errorf("Expected at least one frame, got %d", report.FrameCount)
	}
}

// TestVersionCommand tests the version flag
func TestVersionCommand(t *testing.T) {
	if os.Getenv("FRAMEDUMP_E2E") != "1" {
		t.Skip("Skipping E2E test (set FRAMEDUMP_E2E=1 to run)")
	}

	if shouldBuildBinary() {
		buildCmd := exec.Command("go", "build", "-o", getBinaryName(), "./cmd/framedump")
		buildCmd.Dir = getProjectRoot(t)
		if out, err := buildCmd.CombinedOutput(); err != nil {
			t.Fatalf("Failed to build CLI: %v\n%s", err, out)
		}
		defer os.Remove(filepath.Join(getProjectRoot(t), getBinaryName()))
	}

	// urfave/cli uses --version flag instead of version subcommand
	cmd := exec.Command(getBinaryPath(), "--version")
	cmd.Dir = getProjectRoot(t)

	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Version command failed: %v", err)
	}

	if !strings.Contains(string(out), "framedump version") {
		t.Errorf("Unexpected version output: %s", out)
	}
}

// TestExtractHelp tests that the extract options appear in help
func TestExtractHelp(t *testing.T) {
	if os.Getenv("FRAMEDUMP_E2E") != "1" {
		t.Skip("Skipping E2E test (set FRAMEDUMP_E2E=1 to run)")
	}

	if shouldBuildBinary() {
		buildCmd := exec.Command("go", "build", "-o", getBinaryName(), "./cmd/framedump")
		buildCmd.Dir = getProjectRoot(t)
		if out, err := buildCmd.CombinedOutput(); err != nil {
			t.Fatalf("Failed to build CLI: %v\n%s", err, out)
		}
		defer os.Remove(filepath.Join(getProjectRoot(t), getBinaryName()))
	}

	cmd := exec.Command(getBinaryPath(), "extract", "--help")
	cmd.Dir = getProjectRoot(t)

	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Help command failed: %v", err)
	}

	for _, flag := range []string{"--format", "--concurrency", "--sheet", "--summary"} {
		if !strings.Contains(string(out), flag) {
			t.Errorf("Expected %s option in help", flag)
		}
	}
}

// synthesizeClip generates a small test pattern video with ffmpeg. The
// extract command decodes through ffmpeg as well, so tests skip when it
// is not installed.
func synthesizeClip(t *testing.T, path string, frames, fps int) {
	t.Helper()
	ffmpegPath, err := exec.LookPath("ffmpeg")
	if err != nil {
		t.Skip("Skipping E2E test (ffmpeg not found in PATH)")
	}
	duration := float64(frames) / float64(fps)
	spec := fmt.Sprintf("testsrc=duration=%.3f:size=64x64:rate=%d", duration, fps)
	// The native mpeg4 encoder is available in every ffmpeg build.
	cmd := exec.Command(ffmpegPath,
		"-loglevel", "error",
		"-f", "lavfi",
		"-i", spec,
		"-c:v", "mpeg4",
		"-pix_fmt", "yuv420p",
		"-y", path,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to synthesize clip: %v\n%s", err, out)
	}
}

// readSidecar parses a metadata.json file written next to extracted frames.
func readSidecar(t *testing.T, path string) frameMetadata {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	var meta frameMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		t.Fatalf("metadata.json is not valid JSON: %v", err)
	}
	return meta
}

// countFrameFiles counts the numbered frame files in a directory.
func countFrameFiles(t *testing.T, dir, ext string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read frames dir: %v", err)
	}
	count := 0
	for _, e := range entries {
		name := e.Name()
		if strings.HasSuffix(name, ext) && name != "sheet.png" && len(name) == len("0000")+len(ext) {
			count++
		}
	}
	return count
}

// getProjectRoot returns the project root directory
func getProjectRoot(t *testing.T) string {
	// Start from current working directory and find go.mod
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("Could not find project root (go.mod)")
		}
		dir = parent
	}
}
