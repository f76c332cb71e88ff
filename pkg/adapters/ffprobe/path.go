package ffprobe

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// customFFprobePath overrides automatic discovery when set via SetFFprobePath.
var customFFprobePath string

// SetFFprobePath overrides ffprobe discovery with an explicit binary path.
// An empty string restores automatic discovery.
func SetFFprobePath(path string) {
	customFFprobePath = path
}

// IsAvailable checks if ffprobe is available on the system.
func IsAvailable() bool {
	_, err := FindFFprobe()
	return err == nil
}

// FindFFprobe searches for ffprobe in PATH and common locations.
// Priority: 1) customFFprobePath (set via SetFFprobePath), 2) FFPROBE_PATH env, 3) PATH, 4) common locations
func FindFFprobe() (string, error) {
	// Check custom path first (set via SetFFprobePath)
	if customFFprobePath != "" {
		if _, err := os.Stat(customFFprobePath); err == nil {
			return customFFprobePath, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", ErrFFprobeNotFound, customFFprobePath)
	}

	// Check FFPROBE_PATH environment variable
	if envPath := os.Getenv("FFPROBE_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: FFPROBE_PATH %s not found", ErrFFprobeNotFound, envPath)
	}

	// Check PATH
	execName := "ffprobe"
	if runtime.GOOS == "windows" {
		execName = "ffprobe.exe"
	}

	path, err := exec.LookPath(execName)
	if err == nil {
		return path, nil
	}

	// Check common locations
	var commonPaths []string
	if runtime.GOOS == "windows" {
		commonPaths = []string{
			`C:\ffmpeg\bin\ffprobe.exe`,
			`C:\Program Files\ffmpeg\bin\ffprobe.exe`,
			`C:\Program Files (x86)\ffmpeg\bin\ffprobe.exe`,
		}
	} else if runtime.GOOS == "darwin" {
		commonPaths = []string{
			"/opt/homebrew/bin/ffprobe",
			"/usr/local/bin/ffprobe",
			"/usr/bin/ffprobe",
		}
	} else {
		commonPaths = []string{
			"/usr/bin/ffprobe",
			"/usr/local/bin/ffprobe",
			"/opt/homebrew/bin/ffprobe",
			"/snap/bin/ffprobe",
		}
	}

	for _, p := range commonPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", ErrFFprobeNotFound
}
