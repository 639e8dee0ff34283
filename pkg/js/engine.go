package js

import (
	"fmt"

	"github.com/dop251/goja"

	"toybrowser/pkg/html"
	"toybrowser/pkg/layout"
	"toybrowser/pkg/trace"
)

// Global function names a breakpoint script may define. Each is optional.
const (
	LexHook    = "potentialBreakpointLex"
	LayoutHook = "potentialBreakpointLayout"
	FlushHook  = "potentialBreakpointFlush"
	RenderHook = "potentialBreakpointRender"
)

// Engine runs breakpoint scripts and calls into them at every pipeline
// checkpoint. An exception thrown by a hook aborts the running phase.
type Engine struct {
	vm *goja.Runtime
}

var _ trace.Tracer = (*Engine)(nil)

// New creates a new JS engine with a fresh goja runtime.
func New() *Engine {
	vm := goja.New()
	e := &Engine{vm: vm}

	// Register console API
	c := &consoleAPI{}
	c.register(vm)

	return e
}

// LoadScript evaluates src in the engine's global scope, typically to
// define some of the hook functions.
func (e *Engine) LoadScript(src string) error {
	if _, err := e.vm.RunString(src); err != nil {
		return fmt.Errorf("loading script: %w", err)
	}
	return nil
}

// Execute runs scripts in order, stopping at the first failure.
func (e *Engine) Execute(scripts ...string) error {
	for i, script := range scripts {
		if _, err := e.vm.RunString(script); err != nil {
			return fmt.Errorf("script %d: %w", i, err)
		}
	}
	return nil
}

func (e *Engine) call(name string, args ...goja.Value) error {
	fn, ok := goja.AssertFunction(e.vm.Get(name))
	if !ok {
		return nil
	}
	if _, err := fn(goja.Undefined(), args...); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Lex passes the tokens lexed so far.
func (e *Engine) Lex(tokens []html.Token) error {
	return e.call(LexHook, e.tokens(tokens))
}

// Layout passes the in-progress line and display list.
func (e *Engine) Layout(_ html.Token, line []layout.LineEntry, displayList []layout.DisplayItem) error {
	return e.call(LayoutHook, e.line(line), e.items(displayList))
}

// Flush passes the items of the line just flushed.
func (e *Engine) Flush(items []layout.DisplayItem) error {
	return e.call(FlushHook, e.items(items))
}

// Render passes the number of draws issued earlier in this pass.
func (e *Engine) Render(_ layout.DisplayItem, index int) error {
	return e.call(RenderHook, e.vm.ToValue(index))
}

func (e *Engine) tokens(tokens []html.Token) goja.Value {
	vals := make([]any, len(tokens))
	for i, tok := range tokens {
		obj := e.vm.NewObject()
		switch tok := tok.(type) {
		case html.Text:
			obj.Set("type", "text")
			obj.Set("text", tok.Content)
		case html.Tag:
			obj.Set("type", "tag")
			obj.Set("tag", tok.Name)
		}
		vals[i] = obj
	}
	return e.vm.NewArray(vals...)
}

func (e *Engine) line(line []layout.LineEntry) goja.Value {
	vals := make([]any, len(line))
	for i, entry := range line {
		obj := e.vm.NewObject()
		obj.Set("x", entry.X)
		obj.Set("word", entry.Word)
		obj.Set("font", entry.Font.String())
		vals[i] = obj
	}
	return e.vm.NewArray(vals...)
}

func (e *Engine) items(items []layout.DisplayItem) goja.Value {
	vals := make([]any, len(items))
	for i, item := range items {
		obj := e.vm.NewObject()
		obj.Set("x", item.X)
		obj.Set("y", item.Y)
		obj.Set("word", item.Word)
		obj.Set("font", item.Font.String())
		vals[i] = obj
	}
	return e.vm.NewArray(vals...)
}
