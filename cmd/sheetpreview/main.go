// Package main renders contact sheet previews from an already extracted
// frames directory so layout changes can be checked by eye.
package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/user/framedump/pkg/adapters/ggrenderer"
	"github.com/user/framedump/pkg/pipeline"
	"github.com/user/framedump/pkg/ports"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: sheetpreview <frames-dir>")
		os.Exit(2)
	}
	framesDir := os.Args[1]

	renderer := ggrenderer.New()
	frames, err := loadFrames(renderer, framesDir)
	if err != nil {
		fmt.Printf("Error loading frames: %v\n", err)
		os.Exit(1)
	}
	if len(frames) == 0 {
		fmt.Printf("No frame images found in %s\n", framesDir)
		os.Exit(1)
	}

	if err := os.MkdirAll("tmp", 0755); err != nil {
		fmt.Printf("Error creating tmp directory: %v\n", err)
		os.Exit(1)
	}

	widths := []int{160, 240, 320}

	for _, width := range widths {
		sheet := composeSheet(renderer, frames, 4, width)

		data, err := renderer.EncodeImage(sheet, ports.FormatPNG, 0)
		if err != nil {
			fmt.Printf("Error encoding sheet: %v\n", err)
			continue
		}

		filename := fmt.Sprintf("tmp/sheet_%d.png", width)
		if err := os.WriteFile(filename, data, 0644); err != nil {
			fmt.Printf("Error writing file: %v\n", err)
			continue
		}

		fmt.Printf("Generated %s (%dx%d)\n", filename, sheet.Bounds().Dx(), sheet.Bounds().Dy())
	}
}

// loadFrames decodes every frame image in dir, sorted by file name so
// the grid follows the extraction order.
func loadFrames(renderer ports.Renderer, dir string) ([]image.Image, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".png", ".jpg":
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var frames []image.Image
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", name, err)
			continue
		}

		format := ports.FormatPNG
		if strings.ToLower(filepath.Ext(name)) == ".jpg" {
			format = ports.FormatJPEG
		}

		img, err := renderer.DecodeImage(data, format)
		if err != nil {
			fmt.Printf("Error decoding %s: %v\n", name, err)
			continue
		}
		frames = append(frames, img)
	}

	return frames, nil
}

// composeSheet lays the frames out in a fixed-width grid.
func composeSheet(renderer ports.Renderer, frames []image.Image, cols, thumbW int) image.Image {
	const gap = 8

	theme := pipeline.DefaultSheetTheme()

	if cols > len(frames) {
		cols = len(frames)
	}
	rows := (len(frames) + cols - 1) / cols

	first := frames[0].Bounds()
	thumbH := thumbW * first.Dy() / first.Dx()

	canvas := renderer.CreateCanvas(
		cols*thumbW+(cols+1)*gap,
		rows*thumbH+(rows+1)*gap,
		theme.BackgroundColor,
	)

	for i, frame := range frames {
		col := i % cols
		row := i / cols
		x := gap + col*(thumbW+gap)
		y := gap + row*(thumbH+gap)

		thumb := renderer.ResizeImage(frame, thumbW, thumbH)
		canvas.DrawImage(thumb, x, y)
		canvas.DrawRectStroke(x, y, thumbW, thumbH, theme.BorderColor, 1)
	}

	return canvas.ToImage()
}
