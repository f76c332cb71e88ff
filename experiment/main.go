// Package main is a test program for timing the frame decode path.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/user/framedump/pkg/adapters/ffmpegdecoder"
	"github.com/user/framedump/pkg/adapters/ggrenderer"
	"github.com/user/framedump/pkg/adapters/smartprobe"
	"github.com/user/framedump/pkg/ports"
)

const (
	framesDir     = "tmp/frames"
	decodeTimeout = 60 * time.Second
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: experiment <video-file>")
		os.Exit(2)
	}

	if err := run(os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(path string) error {
	// 1. Clean the frames directory
	fmt.Printf("Cleaning up %s...\n", framesDir)
	if err := os.RemoveAll(framesDir); err != nil {
		return fmt.Errorf("failed to remove %s: %w", framesDir, err)
	}
	if err := os.MkdirAll(framesDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", framesDir, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), decodeTimeout)
	defer cancel()

	// 2. Probe the container
	fmt.Printf("Probing %s...\n", path)
	prober := smartprobe.New()
	info, err := prober.Probe(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to probe: %w", err)
	}
	fmt.Printf("Probed: %dx%d, %.2f fps, %d reported frames, codec %s\n",
		info.Width, info.Height, info.FPS, info.FrameCount, info.Codec)

	// 3. Open the decoder
	fmt.Println("Opening decoder...")
	decoder := ffmpegdecoder.New(prober)
	reader, err := decoder.Open(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to open decoder: %w", err)
	}
	defer reader.Close()

	renderer := ggrenderer.New()

	// 4. Pull frames until exhaustion, timing each step
	started := time.Now()
	var decodeTotal, encodeTotal time.Duration
	count := 0
	for {
		decodeStart := time.Now()
		img, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to decode frame %d: %w", count, err)
		}
		decodeElapsed := time.Since(decodeStart)
		decodeTotal += decodeElapsed

		encodeStart := time.Now()
		data, err := renderer.EncodeImage(img, ports.FormatPNG, 0)
		if err != nil {
			return fmt.Errorf("failed to encode frame %d: %w", count, err)
		}
		encodeElapsed := time.Since(encodeStart)
		encodeTotal += encodeElapsed

		filename := filepath.Join(framesDir, fmt.Sprintf("%04d.png", count))
		if err := os.WriteFile(filename, data, 0644); err != nil {
			return fmt.Errorf("failed to write frame %d: %w", count, err)
		}

		fmt.Printf("Frame %d: decode %dms, encode %dms (%d bytes)\n",
			count, decodeElapsed.Milliseconds(), encodeElapsed.Milliseconds(), len(data))
		count++
	}

	// 5. Report totals
	elapsed := time.Since(started)
	fmt.Printf("Decoded %d frames in %dms (decode %dms, encode %dms)\n",
		count, elapsed.Milliseconds(), decodeTotal.Milliseconds(), encodeTotal.Milliseconds())
	if info.FrameCount > 0 && count != info.FrameCount {
		fmt.Printf("Container reported %d frames but %d were decoded\n", info.FrameCount, count)
	}

	return nil
}
