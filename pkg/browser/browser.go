package browser

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"toybrowser/pkg/config"
	"toybrowser/pkg/html"
	"toybrowser/pkg/layout"
	"toybrowser/pkg/logger"
	"toybrowser/pkg/render"
	"toybrowser/pkg/text"
	"toybrowser/pkg/trace"
)

// ErrBusy is returned when Load, Render or a scroll is started while
// another one is still running on the same Browser, typically from inside
// a tracer callback.
var ErrBusy = errors.New("browser: load or render already in progress")

// Browser is one session: a display list, a viewport onto it and the
// surface it paints on. Calls must not overlap; overlapping calls fail
// with ErrBusy rather than corrupt layout state.
type Browser struct {
	cfg      config.Config
	surface  render.Surface
	tracer   trace.Tracer
	engine   *layout.Engine
	viewport *render.Viewport

	displayList []layout.DisplayItem
	busy        atomic.Bool
}

type Option func(*Browser)

// WithTracer observes every checkpoint of subsequent loads and renders.
func WithTracer(t trace.Tracer) Option {
	return func(b *Browser) {
		b.tracer = t
	}
}

func New(cfg config.Config, m text.Measurer, s render.Surface, opts ...Option) *Browser {
	b := &Browser{
		cfg:      cfg,
		surface:  s,
		tracer:   trace.Nop{},
		engine:   layout.NewLayoutEngine(cfg, m),
		viewport: render.NewViewport(cfg, m, s),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.engine.SetHooks(layout.Hooks{
		TokenDispatched: b.tracer.Layout,
		LineFlushed:     b.tracer.Flush,
	})
	b.viewport.SetDrawHook(b.tracer.Render)
	return b
}

func (b *Browser) enter() error {
	if !b.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	return nil
}

func (b *Browser) leave() {
	b.busy.Store(false)
}

// Load clears the surface, tokenizes and lays out the markup read from r,
// replaces the display list and renders it at the current scroll offset.
// If tokenizing or layout fails the previous display list is kept.
func (b *Browser) Load(r io.Reader) error {
	if err := b.enter(); err != nil {
		return err
	}
	defer b.leave()
	defer logger.Timed("load")()

	b.surface.Clear()
	tokens, err := html.TokenizeReader(r, b.tracer.Lex)
	if err != nil {
		return fmt.Errorf("tokenizing: %w", err)
	}
	items, err := b.engine.Layout(tokens)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	b.displayList = items
	logger.Get().Debug("laid out", "tokens", len(tokens), "items", len(items))
	return b.render()
}

func (b *Browser) LoadString(markup string) error {
	return b.Load(strings.NewReader(markup))
}

// Render repaints the current display list without re-running layout.
func (b *Browser) Render() error {
	if err := b.enter(); err != nil {
		return err
	}
	defer b.leave()
	return b.render()
}

func (b *Browser) render() error {
	drawn, err := b.viewport.Render(b.displayList)
	logger.Get().Debug("rendered", "scroll", b.viewport.Scroll(), "drawn", drawn, "items", len(b.displayList))
	if err != nil {
		return fmt.Errorf("rendering: %w", err)
	}
	return nil
}

// ScrollDown moves one scroll step down and repaints.
func (b *Browser) ScrollDown() error {
	if err := b.enter(); err != nil {
		return err
	}
	defer b.leave()
	b.viewport.ScrollDown()
	return b.render()
}

// ScrollUp moves one scroll step up, not past the top, and repaints.
func (b *Browser) ScrollUp() error {
	if err := b.enter(); err != nil {
		return err
	}
	defer b.leave()
	b.viewport.ScrollUp()
	return b.render()
}

func (b *Browser) Scroll() float64 {
	return b.viewport.Scroll()
}

// DisplayList returns the current display list. Callers must not modify it.
func (b *Browser) DisplayList() []layout.DisplayItem {
	return b.displayList
}

func (b *Browser) Config() config.Config {
	return b.cfg
}
