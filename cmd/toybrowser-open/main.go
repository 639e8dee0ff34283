package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"toybrowser/pkg/browser"
	"toybrowser/pkg/config"
	"toybrowser/pkg/js"
	"toybrowser/pkg/logger"
	"toybrowser/pkg/resource"
	"toybrowser/pkg/text"
)

func main() {
	configPath := flag.String("config", "", "layout config file (.toml, .yaml)")
	charset := flag.String("charset", "", "document encoding (default utf-8)")
	script := flag.String("script", "", "breakpoint script run at every checkpoint")
	watch := flag.Bool("watch", false, "reload when the file changes")
	verbose := flag.Bool("v", false, "log to stderr")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: toybrowser-open [flags] [file]\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *verbose {
		logger.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	var opts []browser.Option
	if *script != "" {
		src, err := os.ReadFile(*script)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading script: %v\n", err)
			os.Exit(1)
		}
		engine := js.New()
		if err := engine.LoadScript(string(src)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		opts = append(opts, browser.WithTracer(engine))
	}

	a := app.New()
	w := a.NewWindow("toybrowser")

	target := image.NewRGBA(image.Rect(0, 0, int(cfg.Width), int(cfg.Height)))
	page := resource.NewPage(resource.NewFileFetcher(""), cfg, target, text.DefaultFontConfig(), opts...)
	page.SetCharset(*charset)

	canvasImg := canvas.NewImageFromImage(target)
	canvasImg.FillMode = canvas.ImageFillOriginal
	canvasImg.SetMinSize(fyne.NewSize(float32(cfg.Width), float32(cfg.Height)))

	status := widget.NewLabel("Enter a file path and press Enter")

	// Every browser call happens on the fyne main goroutine, so the
	// browser never sees overlapping calls.
	show := func(err error) {
		if err != nil {
			status.SetText("Error: " + err.Error())
		} else {
			status.SetText(fmt.Sprintf("%s  scroll %.0f", page.URI(), page.Browser().Scroll()))
			w.SetTitle("toybrowser - " + page.URI())
		}
		canvasImg.Refresh()
	}

	pathEntry := widget.NewEntry()
	pathEntry.SetPlaceHolder("page.html")
	pathEntry.OnSubmitted = func(path string) {
		show(page.Open(path))
	}

	up := widget.NewButton("Up", func() { show(page.ScrollUp()) })
	down := widget.NewButton("Down", func() { show(page.ScrollDown()) })

	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyDown:
			show(page.ScrollDown())
		case fyne.KeyUp:
			show(page.ScrollUp())
		}
	})

	// Layout: path bar on top, status and scroll buttons at bottom, page in the center
	topBar := container.NewBorder(nil, nil, nil, nil, pathEntry)
	bottomBar := container.NewBorder(nil, nil, nil, container.NewHBox(up, down), status)
	content := container.NewBorder(topBar, bottomBar, nil, nil, canvasImg)
	w.SetContent(content)

	if flag.NArg() > 0 {
		path := flag.Arg(0)
		pathEntry.SetText(path)
		show(page.Open(path))

		if *watch {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go func() {
				err := resource.Watch(ctx, path, func() {
					fyne.Do(func() { show(page.Reload()) })
				})
				if err != nil {
					fyne.Do(func() { status.SetText("Watch error: " + err.Error()) })
				}
			}()
		}
	}

	w.ShowAndRun()
}
