package render

import (
	"fmt"

	"toybrowser/pkg/config"
	"toybrowser/pkg/layout"
	"toybrowser/pkg/text"
)

// Surface is the host drawing capability. y is the baseline in viewport
// coordinates.
type Surface interface {
	Clear()
	DrawText(word string, x, y float64, f text.Font) error
}

// DrawFunc observes each draw call; index counts draws from zero within
// one render pass. A non-nil error stops the pass.
type DrawFunc func(item layout.DisplayItem, index int) error

// Viewport owns the scroll offset and paints the visible part of a
// display list onto a surface.
type Viewport struct {
	cfg      config.Config
	measurer text.Measurer
	surface  Surface
	onDraw   DrawFunc

	scroll float64
}

func NewViewport(cfg config.Config, m text.Measurer, s Surface) *Viewport {
	return &Viewport{cfg: cfg, measurer: m, surface: s}
}

func (v *Viewport) SetDrawHook(fn DrawFunc) {
	v.onDraw = fn
}

func (v *Viewport) Scroll() float64 {
	return v.scroll
}

func (v *Viewport) SetScroll(y float64) {
	v.scroll = y
}

// ScrollDown moves the viewport one step down. It is not clamped.
func (v *Viewport) ScrollDown() {
	v.scroll += v.cfg.ScrollStep
}

// ScrollUp moves the viewport one step up, stopping at the top.
func (v *Viewport) ScrollUp() {
	v.scroll -= v.cfg.ScrollStep
	if v.scroll < 0 {
		v.scroll = 0
	}
}

// Visible reports whether a line at baseline y with the given line height
// overlaps the window [scroll, scroll+height].
func Visible(y, lineHeight, scroll, height float64) bool {
	if y > scroll+height {
		return false
	}
	return y+lineHeight >= scroll
}

// Render clears the surface and draws every visible item in display list
// order. It returns the number of draw calls issued.
func (v *Viewport) Render(displayList []layout.DisplayItem) (int, error) {
	v.surface.Clear()
	drawn := 0
	for _, item := range displayList {
		if item.Y > v.scroll+v.cfg.Height {
			continue
		}
		lineHeight := v.measurer.Metrics(item.Font).LineHeight()
		if !Visible(item.Y, lineHeight, v.scroll, v.cfg.Height) {
			continue
		}
		if err := v.surface.DrawText(item.Word, item.X, item.Y-v.scroll, item.Font); err != nil {
			return drawn, fmt.Errorf("drawing %q: %w", item.Word, err)
		}
		drawn++
		if v.onDraw != nil {
			if err := v.onDraw(item, drawn-1); err != nil {
				return drawn, fmt.Errorf("render checkpoint %d: %w", drawn-1, err)
			}
		}
	}
	return drawn, nil
}
