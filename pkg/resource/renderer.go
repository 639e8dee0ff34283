package resource

import (
	"fmt"
	"image"

	"toybrowser/pkg/browser"
	"toybrowser/pkg/config"
	"toybrowser/pkg/render"
	"toybrowser/pkg/text"
)

// Page renders documents fetched by URI onto an RGBA image and keeps the
// browser session, so scrolling and reloading keep the scroll offset.
type Page struct {
	fetcher Fetcher
	charset string
	target  *image.RGBA
	browser *browser.Browser

	uri string
}

// NewPage creates a Page painting into target. The viewport size is taken
// from the target bounds; cfg supplies the remaining layout constants.
// If fonts is the zero value, the bundled fonts are used.
func NewPage(fetcher Fetcher, cfg config.Config, target *image.RGBA, fonts text.FontConfig, opts ...browser.Option) *Page {
	bounds := target.Bounds()
	cfg.Width = float64(bounds.Dx())
	cfg.Height = float64(bounds.Dy())

	faces := text.NewFaces(fonts)
	surface := render.NewImageSurfaceForRGBA(target, faces)
	return &Page{
		fetcher: fetcher,
		target:  target,
		browser: browser.New(cfg, text.NewGoFontMeasurer(faces), surface, opts...),
	}
}

// SetCharset sets the encoding used for subsequent loads.
func (p *Page) SetCharset(charset string) {
	p.charset = charset
}

// Open fetches uri, decodes it and loads it into the browser.
func (p *Page) Open(uri string) error {
	r, err := Open(p.fetcher, uri, p.charset)
	if err != nil {
		return err
	}
	if err := p.browser.Load(r); err != nil {
		return fmt.Errorf("loading %s: %w", uri, err)
	}
	p.uri = uri
	return nil
}

// Reload fetches the current document again.
func (p *Page) Reload() error {
	if p.uri == "" {
		return fmt.Errorf("no document loaded")
	}
	return p.Open(p.uri)
}

func (p *Page) URI() string {
	return p.uri
}

func (p *Page) ScrollDown() error {
	return p.browser.ScrollDown()
}

func (p *Page) ScrollUp() error {
	return p.browser.ScrollUp()
}

func (p *Page) Browser() *browser.Browser {
	return p.browser
}

func (p *Page) Image() *image.RGBA {
	return p.target
}
