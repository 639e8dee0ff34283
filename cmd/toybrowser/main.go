package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"toybrowser/pkg/browser"
	"toybrowser/pkg/config"
	"toybrowser/pkg/js"
	"toybrowser/pkg/logger"
	"toybrowser/pkg/render"
	"toybrowser/pkg/resource"
	"toybrowser/pkg/text"
	"toybrowser/pkg/trace"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type snapshot interface {
	render.Surface
	save(path string) error
}

type pngSnapshot struct{ *render.ImageSurface }

func (s pngSnapshot) save(path string) error { return s.SavePNG(path) }

type pdfSnapshot struct{ *render.PDFSurface }

func (s pdfSnapshot) save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.EncodePDF(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func run(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("toybrowser", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "layout config file (.toml, .yaml)")
	width := fs.Float64("w", 0, "viewport width in pixels (overrides config)")
	height := fs.Float64("h", 0, "viewport height in pixels (overrides config)")
	output := fs.String("o", "output.png", "output file path (.png or .pdf)")
	scrolls := fs.Int("scroll", 0, "scroll down this many steps before saving")
	charset := fs.String("charset", "", "document encoding (default utf-8)")
	script := fs.String("script", "", "breakpoint script run at every checkpoint")
	verbose := fs.Bool("v", false, "log phase timings")
	traceFlag := fs.Bool("trace", false, "log every checkpoint (implies -v)")
	dump := fs.Bool("dump", false, "print the display list to stderr")
	stepDelay := fs.Duration("step-delay", 0, "pause at every checkpoint")
	timeout := fs.Duration("timeout", 0, "abort the pipeline after this long")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: toybrowser [flags] <file|->\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("missing input document")
	}
	input := fs.Arg(0)

	switch {
	case *traceFlag:
		logger.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	case *verbose:
		logger.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	if *width != 0 {
		cfg.Width = *width
	}
	if *height != 0 {
		cfg.Height = *height
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	tracers := trace.Multi{trace.Pacer{Ctx: ctx, Delay: *stepDelay}}
	if *traceFlag {
		tracers = append(tracers, trace.Log{})
	}
	if *script != "" {
		src, err := os.ReadFile(*script)
		if err != nil {
			return fmt.Errorf("reading script: %w", err)
		}
		engine := js.New()
		if err := engine.LoadScript(string(src)); err != nil {
			return err
		}
		tracers = append(tracers, engine)
	}

	fonts := text.DefaultFontConfig()
	faces := text.NewFaces(fonts)
	var surface snapshot
	switch ext := strings.ToLower(filepath.Ext(*output)); ext {
	case ".png":
		surface = pngSnapshot{render.NewImageSurface(int(cfg.Width), int(cfg.Height), faces)}
	case ".pdf":
		surface = pdfSnapshot{render.NewPDFSurface(cfg.Width, cfg.Height, fonts)}
	default:
		return fmt.Errorf("unsupported output format %q", ext)
	}

	r, err := resource.Open(resource.NewFileFetcher(""), input, *charset)
	if err != nil {
		return err
	}

	b := browser.New(cfg, text.NewGoFontMeasurer(faces), surface, browser.WithTracer(tracers))
	start := time.Now()
	if err := b.Load(r); err != nil {
		return err
	}
	for i := 0; i < *scrolls; i++ {
		if err := b.ScrollDown(); err != nil {
			return err
		}
	}
	if *dump {
		trace.Dump(stderr, b.DisplayList())
	}

	if err := surface.save(*output); err != nil {
		return fmt.Errorf("saving %s: %w", *output, err)
	}
	fmt.Fprintf(stderr, "Rendered %s to %s (%d items, scroll %.0f, %s)\n",
		input, *output, len(b.DisplayList()), b.Scroll(), time.Since(start).Round(time.Millisecond))
	return nil
}
