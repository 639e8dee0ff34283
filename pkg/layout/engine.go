package layout

import (
	"fmt"

	"toybrowser/pkg/config"
	"toybrowser/pkg/html"
	"toybrowser/pkg/text"
)

// Engine breaks a token stream into lines and positions each word on its
// line's baseline. An Engine is reusable but not safe for concurrent use:
// cursor and line state are shared across one Layout call.
type Engine struct {
	cfg      config.Config
	measurer text.Measurer
	hooks    Hooks

	cursorX     float64
	cursorY     float64
	state       TypographicState
	line        []LineEntry
	displayList []DisplayItem
}

func NewLayoutEngine(cfg config.Config, m text.Measurer) *Engine {
	e := &Engine{cfg: cfg, measurer: m}
	e.reset()
	return e
}

// SetHooks installs checkpoint callbacks for subsequent Layout calls.
func (e *Engine) SetHooks(h Hooks) {
	e.hooks = h
}

func (e *Engine) reset() {
	e.cursorX = e.cfg.HStep
	e.cursorY = e.cfg.VStep
	e.state = InitialState(e.cfg.BaseFontSize)
	e.line = nil
	e.displayList = nil
}

// Layout consumes tokens in order and returns the display list. The same
// tokens, config and measurer always give the same list.
func (e *Engine) Layout(tokens []html.Token) ([]DisplayItem, error) {
	e.reset()
	for i, tok := range tokens {
		if err := e.token(tok); err != nil {
			return nil, err
		}
		if e.hooks.TokenDispatched != nil {
			if err := e.hooks.TokenDispatched(tok, e.line, e.displayList); err != nil {
				return nil, fmt.Errorf("layout checkpoint %d: %w", i, err)
			}
		}
	}
	if err := e.flush(); err != nil {
		return nil, err
	}
	out := e.displayList
	e.displayList = nil
	return out, nil
}

func (e *Engine) token(tok html.Token) error {
	switch tok := tok.(type) {
	case html.Text:
		return e.text(tok.Content)
	case html.Tag:
		return e.tag(tok.Name)
	}
	return nil
}

func (e *Engine) tag(name string) error {
	switch kind := ClassifyTag(name); kind {
	case TagBreak:
		return e.flush()
	case TagParagraphEnd:
		if err := e.flush(); err != nil {
			return err
		}
		e.cursorY += e.cfg.VStep
	default:
		e.state = e.state.Apply(kind)
	}
	return nil
}

// flush turns the pending line into display items sharing one baseline,
// then moves the cursor to the start of the next line.
func (e *Engine) flush() error {
	if len(e.line) == 0 {
		return nil
	}
	var maxAscent, maxDescent float64
	for _, entry := range e.line {
		m := e.measurer.Metrics(entry.Font)
		if m.Ascent > maxAscent {
			maxAscent = m.Ascent
		}
		if m.Descent > maxDescent {
			maxDescent = m.Descent
		}
	}
	baseline := e.cursorY + Leading*maxAscent

	start := len(e.displayList)
	for _, entry := range e.line {
		e.displayList = append(e.displayList, DisplayItem{
			X:    entry.X,
			Y:    baseline,
			Word: entry.Word,
			Font: entry.Font,
		})
	}
	e.cursorX = e.cfg.HStep
	e.line = nil
	e.cursorY = baseline + Leading*maxDescent

	if e.hooks.LineFlushed != nil {
		end := len(e.displayList)
		if err := e.hooks.LineFlushed(e.displayList[start:end:end]); err != nil {
			return fmt.Errorf("flush checkpoint: %w", err)
		}
	}
	return nil
}

// Layout runs a fresh engine without hooks.
func Layout(tokens []html.Token, cfg config.Config, m text.Measurer) []DisplayItem {
	items, _ := NewLayoutEngine(cfg, m).Layout(tokens)
	return items
}
