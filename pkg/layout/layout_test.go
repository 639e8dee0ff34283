package layout

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"toybrowser/pkg/config"
	"toybrowser/pkg/html"
	"toybrowser/pkg/text"
)

// testMeasurer: every rune is half the font size wide, ascent is 3/4 and
// descent 1/4 of the size. At 16px a rune and a space are 8 wide, ascent
// is 12 and descent 4.
var testMeasurer = text.Monospace{Advance: 0.5, Ascent: 0.75, Descent: 0.25}

func newTestEngine(width float64) *Engine {
	cfg := config.Default()
	cfg.Width = width
	return NewLayoutEngine(cfg, testMeasurer)
}

func layoutString(t *testing.T, e *Engine, markup string) []DisplayItem {
	t.Helper()
	items, err := e.Layout(html.Tokenize(markup))
	if err != nil {
		t.Fatalf("unexpected layout error: %v", err)
	}
	return items
}

func TestLayout_BoldAndItalicSingleLine(t *testing.T) {
	e := newTestEngine(800)
	items := layoutString(t, e, "<b>Bold</b> and <i>italic</i>")

	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	wantWords := []string{"Bold", "and", "italic"}
	wantFonts := []text.Font{
		{Size: 16, Weight: text.WeightBold},
		{Size: 16},
		{Size: 16, Style: text.StyleItalic},
	}
	for i, item := range items {
		if item.Word != wantWords[i] {
			t.Errorf("item %d: expected word %q, got %q", i, wantWords[i], item.Word)
		}
		if item.Font != wantFonts[i] {
			t.Errorf("item %d: expected font %v, got %v", i, wantFonts[i], item.Font)
		}
		if item.Y != items[0].Y {
			t.Errorf("item %d: expected shared baseline %f, got %f", i, items[0].Y, item.Y)
		}
	}
	if want := 18 + Leading*12; items[0].Y != want {
		t.Errorf("expected baseline %f, got %f", want, items[0].Y)
	}
}

func TestLayout_SpaceChargedAfterEveryWord(t *testing.T) {
	e := newTestEngine(800)
	items := layoutString(t, e, "ab cde f")
	wantX := []float64{6, 6 + 16 + 8, 6 + 16 + 8 + 24 + 8}
	for i, item := range items {
		if item.X != wantX[i] {
			t.Errorf("item %d: expected x=%f, got %f", i, wantX[i], item.X)
		}
	}
}

func TestLayout_WrapsAtRightMargin(t *testing.T) {
	// Budget is 100-6=94; each "aaaa" is 32 wide plus an 8 wide space, so
	// two fit per line.
	e := newTestEngine(100)
	items := layoutString(t, e, "aaaa aaaa aaaa aaaa aaaa")

	if len(items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(items))
	}
	first := 18 + Leading*12
	second := first + Leading*4 + Leading*12
	third := second + Leading*4 + Leading*12
	wantY := []float64{first, first, second, second, third}
	wantX := []float64{6, 46, 6, 46, 6}
	for i, item := range items {
		if item.Y != wantY[i] {
			t.Errorf("item %d: expected y=%f, got %f", i, wantY[i], item.Y)
		}
		if item.X != wantX[i] {
			t.Errorf("item %d: expected x=%f, got %f", i, wantX[i], item.X)
		}
	}
}

func TestLayout_MixedSizesShareBaseline(t *testing.T) {
	e := newTestEngine(800)
	items := layoutString(t, e, "<big>Big</big> small <small>tiny</small>")

	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Font.Size != 20 || items[1].Font.Size != 16 || items[2].Font.Size != 14 {
		t.Errorf("unexpected sizes: %v %v %v", items[0].Font, items[1].Font, items[2].Font)
	}
	// The tallest ascent on the line is 0.75*20.
	want := 18 + Leading*15
	for i, item := range items {
		if item.Y != want {
			t.Errorf("item %d: expected baseline %f, got %f", i, want, item.Y)
		}
	}
}

func TestLayout_OverWideWordStillPlaced(t *testing.T) {
	e := newTestEngine(100)
	long := strings.Repeat("w", 50)

	items := layoutString(t, e, long)
	if len(items) != 1 {
		t.Fatalf("expected exactly 1 item, got %d", len(items))
	}
	if items[0].X != 6 || items[0].Word != long {
		t.Errorf("unexpected item %+v", items[0])
	}

	items = layoutString(t, e, "a "+long+" b")
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if !(items[0].Y < items[1].Y && items[1].Y < items[2].Y) {
		t.Errorf("expected each word on its own line, got y=%f,%f,%f", items[0].Y, items[1].Y, items[2].Y)
	}
	if items[1].X != 6 || items[2].X != 6 {
		t.Errorf("expected wrapped words at left margin, got x=%f,%f", items[1].X, items[2].X)
	}
}

func TestLayout_EmptyAndWhitespace(t *testing.T) {
	e := newTestEngine(800)
	for _, markup := range []string{"", "   \n\t ", "<b></b>", "<br><br>", "ok<b"} {
		items := layoutString(t, e, markup)
		if markup == "ok<b" {
			if len(items) != 1 {
				t.Errorf("%q: expected 1 item, got %d", markup, len(items))
			}
			continue
		}
		if len(items) != 0 {
			t.Errorf("%q: expected no items, got %d", markup, len(items))
		}
	}
}

func TestLayout_Deterministic(t *testing.T) {
	markup := "<p>Some <b>bold</b> and <big>big <i>italic</i></big> text</p> that " +
		"keeps going <small>for a while</small><br>after a break</p>end"
	tokens := html.Tokenize(markup)
	for _, width := range []float64{120, 300, 800} {
		e := newTestEngine(width)
		first, err := e.Layout(tokens)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := e.Layout(tokens)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("width %f: expected identical display lists", width)
		}
		fresh := Layout(tokens, e.cfg, testMeasurer)
		if !reflect.DeepEqual(first, fresh) {
			t.Errorf("width %f: reused engine differs from fresh engine", width)
		}
	}
}

func TestLayout_UnknownTagsIgnored(t *testing.T) {
	e := newTestEngine(800)
	plain := layoutString(t, e, "one two")
	noisy := layoutString(t, e, `<div>one<B> <b class="x">two</span>`)
	if !reflect.DeepEqual(plain, noisy) {
		t.Errorf("expected unknown tags to leave layout unchanged:\n%v\n%v", plain, noisy)
	}
}

func TestLayout_ParagraphEndOnEmptyLineAddsGap(t *testing.T) {
	e := newTestEngine(800)
	items := layoutString(t, e, "</p>hi")
	if want := 18 + 18 + Leading*12; items[0].Y != want {
		t.Errorf("expected baseline %f, got %f", want, items[0].Y)
	}
}

func TestFlush_ResetsCursorAndLine(t *testing.T) {
	e := newTestEngine(800)
	if err := e.text("hello world"); err != nil {
		t.Fatal(err)
	}
	if e.cursorX == e.cfg.HStep || len(e.line) != 2 {
		t.Fatalf("expected pending line, got x=%f line=%d", e.cursorX, len(e.line))
	}
	before := e.cursorY
	if err := e.flush(); err != nil {
		t.Fatal(err)
	}
	if e.cursorX != e.cfg.HStep {
		t.Errorf("expected cursorX=%f, got %f", e.cfg.HStep, e.cursorX)
	}
	if len(e.line) != 0 {
		t.Errorf("expected empty line, got %d entries", len(e.line))
	}
	baseline := before + Leading*12
	for _, item := range e.displayList {
		if item.Y != baseline {
			t.Errorf("expected y=%f, got %f", baseline, item.Y)
		}
	}
	if want := baseline + Leading*4; e.cursorY != want {
		t.Errorf("expected cursorY=%f, got %f", want, e.cursorY)
	}

	// Flushing an empty line changes nothing.
	y := e.cursorY
	if err := e.flush(); err != nil {
		t.Fatal(err)
	}
	if e.cursorY != y || len(e.displayList) != 2 {
		t.Errorf("expected empty flush to be a no-op")
	}
}

func TestParagraphEnd_OneVStepBelowBreak(t *testing.T) {
	br := newTestEngine(800)
	p := newTestEngine(800)
	for _, e := range []*Engine{br, p} {
		if err := e.text("some words here"); err != nil {
			t.Fatal(err)
		}
	}
	if err := br.tag("br"); err != nil {
		t.Fatal(err)
	}
	if err := p.tag("/p"); err != nil {
		t.Fatal(err)
	}
	if p.cursorY != br.cursorY+br.cfg.VStep {
		t.Errorf("expected /p cursorY %f = br cursorY %f + %f", p.cursorY, br.cursorY, br.cfg.VStep)
	}
	if len(p.line) != 0 || len(br.line) != 0 {
		t.Error("expected both lines flushed")
	}
}

func TestLayout_Hooks(t *testing.T) {
	e := newTestEngine(100)
	var dispatched, flushed int
	var lastLineLen int
	e.SetHooks(Hooks{
		TokenDispatched: func(tok html.Token, line []LineEntry, displayList []DisplayItem) error {
			dispatched++
			lastLineLen = len(line)
			return nil
		},
		LineFlushed: func(items []DisplayItem) error {
			flushed++
			for _, item := range items {
				if item.Y != items[0].Y {
					t.Errorf("flushed line with mixed baselines")
				}
			}
			return nil
		},
	})
	tokens := html.Tokenize("<b>aaaa aaaa aaaa</b><br>bb")
	if _, err := e.Layout(tokens); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dispatched != len(tokens) {
		t.Errorf("expected %d dispatch checkpoints, got %d", len(tokens), dispatched)
	}
	if flushed != 3 {
		t.Errorf("expected 3 flushes, got %d", flushed)
	}
	if lastLineLen != 1 {
		t.Errorf("expected final pending line of 1 entry, got %d", lastLineLen)
	}
}

func TestLayout_HookAborts(t *testing.T) {
	stop := errors.New("stop")
	e := newTestEngine(800)
	e.SetHooks(Hooks{LineFlushed: func([]DisplayItem) error { return stop }})
	items, err := e.Layout(html.Tokenize("a<br>b"))
	if !errors.Is(err, stop) {
		t.Fatalf("expected stop error, got %v", err)
	}
	if items != nil {
		t.Errorf("expected no display list on abort")
	}
}
