package layout

import "strings"

// text places each whitespace-separated word of t, wrapping when the word
// would cross the right margin. A word wider than the whole line still
// lands on its own line; the next word or flush moves past it.
func (e *Engine) text(t string) error {
	font := e.state.Font()
	for _, word := range strings.Fields(t) {
		w := e.measurer.Measure(word, font)
		if e.cursorX+w > e.cfg.Width-e.cfg.HStep {
			if err := e.flush(); err != nil {
				return err
			}
		}
		e.line = append(e.line, LineEntry{X: e.cursorX, Word: word, Font: font})
		e.cursorX += w + e.measurer.Measure(" ", font)
	}
	return nil
}
