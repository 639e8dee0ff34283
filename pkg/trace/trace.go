package trace

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/davecgh/go-spew/spew"

	"toybrowser/pkg/html"
	"toybrowser/pkg/layout"
	"toybrowser/pkg/logger"
)

// Tracer observes the pipeline at its checkpoints: after each token is
// lexed, after each token is dispatched by layout, after each line flush
// and after each draw call. Slices are only valid during the call.
// Returning an error aborts the running phase.
//
// A Tracer must not start another load or render on the browser it
// observes; the browser rejects such calls with ErrBusy.
type Tracer interface {
	Lex(tokens []html.Token) error
	Layout(tok html.Token, line []layout.LineEntry, displayList []layout.DisplayItem) error
	Flush(items []layout.DisplayItem) error
	Render(item layout.DisplayItem, index int) error
}

// Nop ignores every checkpoint. Embed it to implement a subset.
type Nop struct{}

func (Nop) Lex([]html.Token) error                                            { return nil }
func (Nop) Layout(html.Token, []layout.LineEntry, []layout.DisplayItem) error { return nil }
func (Nop) Flush([]layout.DisplayItem) error                                  { return nil }
func (Nop) Render(layout.DisplayItem, int) error                              { return nil }

// Log writes one debug record per checkpoint.
type Log struct {
	Logger *slog.Logger // nil uses logger.Get()
}

func (l Log) log() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return logger.Get()
}

func (l Log) Lex(tokens []html.Token) error {
	l.log().Debug("lex", "count", len(tokens), "token", tokens[len(tokens)-1].String())
	return nil
}

func (l Log) Layout(tok html.Token, line []layout.LineEntry, displayList []layout.DisplayItem) error {
	l.log().Debug("layout", "token", tok.String(), "line", len(line), "items", len(displayList))
	return nil
}

func (l Log) Flush(items []layout.DisplayItem) error {
	l.log().Debug("flush", "baseline", items[0].Y, "words", len(items))
	return nil
}

func (l Log) Render(item layout.DisplayItem, index int) error {
	l.log().Debug("render", "index", index, "word", item.Word, "x", item.X, "y", item.Y, "font", item.Font.String())
	return nil
}

// Pacer waits Delay at every checkpoint and aborts once Ctx is done. It
// is how a host slows the pipeline down for animation or cancels it.
type Pacer struct {
	Ctx   context.Context
	Delay time.Duration
}

func (p Pacer) wait() error {
	ctx := p.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if p.Delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(p.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (p Pacer) Lex([]html.Token) error { return p.wait() }
func (p Pacer) Layout(html.Token, []layout.LineEntry, []layout.DisplayItem) error {
	return p.wait()
}
func (p Pacer) Flush([]layout.DisplayItem) error     { return p.wait() }
func (p Pacer) Render(layout.DisplayItem, int) error { return p.wait() }

// Multi fans each checkpoint out in order, stopping at the first error.
type Multi []Tracer

func (m Multi) Lex(tokens []html.Token) error {
	for _, t := range m {
		if err := t.Lex(tokens); err != nil {
			return err
		}
	}
	return nil
}

func (m Multi) Layout(tok html.Token, line []layout.LineEntry, displayList []layout.DisplayItem) error {
	for _, t := range m {
		if err := t.Layout(tok, line, displayList); err != nil {
			return err
		}
	}
	return nil
}

func (m Multi) Flush(items []layout.DisplayItem) error {
	for _, t := range m {
		if err := t.Flush(items); err != nil {
			return err
		}
	}
	return nil
}

func (m Multi) Render(item layout.DisplayItem, index int) error {
	for _, t := range m {
		if err := t.Render(item, index); err != nil {
			return err
		}
	}
	return nil
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Dump pretty-prints a display list.
func Dump(w io.Writer, displayList []layout.DisplayItem) {
	fmt.Fprintf(w, "display list: %d items\n", len(displayList))
	dumpConfig.Fdump(w, displayList)
}
