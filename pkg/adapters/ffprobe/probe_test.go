package ffprobe

import (
	"errors"
	"testing"
)

func TestParseFrameRate(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"30/1", 30.0},
		{"30000/1001", 29.97002997002997},
		{"25/1", 25.0},
		{"0/0", 0},
		{"garbage", 0},
		{"", 0},
	}

	for _, tt := range tests {
		got := parseFrameRate(tt.input)
		if got != tt.expected {
			t.Errorf("parseFrameRate(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestParseInfo_VideoStream(t *testing.T) {
	output := []byte(`{
		"streams": [
			{"codec_type": "audio", "codec_name": "aac"},
			{"codec_type": "video", "codec_name": "h264", "width": 1920, "height": 1080, "r_frame_rate": "30/1", "nb_frames": "90"}
		],
		"format": {"duration": "3.000000"}
	}`)

	info, err := parseInfo(output, "clip.mov")
	if err != nil {
		t.Fatalf("parseInfo failed: %v", err)
	}

	if info.Width != 1920 || info.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", info.Width, info.Height)
	}
	if info.FPS != 30.0 {
		t.Errorf("expected fps 30, got %v", info.FPS)
	}
	if info.FrameCount != 90 {
		t.Errorf("expected 90 frames, got %d", info.FrameCount)
	}
	if info.DurationMs != 3000 {
		t.Errorf("expected 3000ms, got %d", info.DurationMs)
	}
	if info.Codec != "h264" {
		t.Errorf("expected codec h264, got %q", info.Codec)
	}
}

func TestParseInfo_MissingFrameCount(t *testing.T) {
	output := []byte(`{
		"streams": [
			{"codec_type": "video", "codec_name": "vp9", "width": 640, "height": 360, "r_frame_rate": "24/1"}
		],
		"format": {}
	}`)

	info, err := parseInfo(output, "clip.webm")
	if err != nil {
		t.Fatalf("parseInfo failed: %v", err)
	}

	if info.FrameCount != 0 {
		t.Errorf("expected unknown frame count 0, got %d", info.FrameCount)
	}
	if info.DurationMs != 0 {
		t.Errorf("expected 0ms for missing duration, got %d", info.DurationMs)
	}
}

func TestParseInfo_NoVideoStream(t *testing.T) {
	output := []byte(`{
		"streams": [
			{"codec_type": "audio", "codec_name": "mp3"}
		],
		"format": {"duration": "10.0"}
	}`)

	_, err := parseInfo(output, "song.mp3")
	if !errors.Is(err, ErrNoVideoStream) {
		t.Errorf("expected ErrNoVideoStream, got %v", err)
	}
}

func TestParseInfo_InvalidJSON(t *testing.T) {
	_, err := parseInfo([]byte("not json"), "clip.mov")
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestNew_NotFound(t *testing.T) {
	SetFFprobePath("/nonexistent/ffprobe")
	defer SetFFprobePath("")

	_, err := New()
	if !errors.Is(err, ErrFFprobeNotFound) {
		t.Errorf("expected ErrFFprobeNotFound, got %v", err)
	}
}
