package visualtest

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"toybrowser/pkg/browser"
	"toybrowser/pkg/config"
	"toybrowser/pkg/render"
	"toybrowser/pkg/text"
)

var (
	facesOnce sync.Once
	faces     *text.Faces
)

// SharedFaces returns one face cache for all renders in a test binary.
func SharedFaces() *text.Faces {
	facesOnce.Do(func() {
		faces = text.NewFaces(text.DefaultFontConfig())
	})
	return faces
}

// RenderMarkup loads markup into a browser painting on an image surface
// of cfg's size, then scrolls down the given number of steps.
func RenderMarkup(markup string, cfg config.Config, scrolls int) (*render.ImageSurface, error) {
	f := SharedFaces()
	surface := render.NewImageSurface(int(cfg.Width), int(cfg.Height), f)
	b := browser.New(cfg, text.NewGoFontMeasurer(f), surface)
	if err := b.LoadString(markup); err != nil {
		return nil, fmt.Errorf("load error: %w", err)
	}
	for i := 0; i < scrolls; i++ {
		if err := b.ScrollDown(); err != nil {
			return nil, fmt.Errorf("scroll error: %w", err)
		}
	}
	return surface, nil
}

// RenderMarkupToFile renders markup to a PNG file
func RenderMarkupToFile(markup, outputPath string, cfg config.Config) error {
	surface, err := RenderMarkup(markup, cfg, 0)
	if err != nil {
		return err
	}

	// Ensure output directory exists
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := surface.SavePNG(outputPath); err != nil {
		return fmt.Errorf("save error: %w", err)
	}
	return nil
}

// RenderMarkupFile renders a markup file to a PNG file
func RenderMarkupFile(markupPath, outputPath string, cfg config.Config) error {
	content, err := os.ReadFile(markupPath)
	if err != nil {
		return fmt.Errorf("failed to read markup file: %w", err)
	}
	return RenderMarkupToFile(string(content), outputPath, cfg)
}
