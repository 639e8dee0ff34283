package trace

import (
	"toybrowser/pkg/html"
	"toybrowser/pkg/layout"
)

type Kind int

const (
	KindLex Kind = iota
	KindLayout
	KindFlush
	KindRender
)

func (k Kind) String() string {
	switch k {
	case KindLex:
		return "lex"
	case KindLayout:
		return "layout"
	case KindFlush:
		return "flush"
	case KindRender:
		return "render"
	}
	return "unknown"
}

// Checkpoint is a copy of what a tracer saw at one checkpoint. Fields not
// meaningful for Kind are zero.
type Checkpoint struct {
	Kind   Kind
	Token  html.Token
	Tokens int
	Line   []layout.LineEntry
	Items  []layout.DisplayItem
	Index  int
}

// Recorder keeps a copy of every checkpoint, for step debugging after
// the fact.
type Recorder struct {
	Checkpoints []Checkpoint
}

func (r *Recorder) Lex(tokens []html.Token) error {
	r.Checkpoints = append(r.Checkpoints, Checkpoint{
		Kind:   KindLex,
		Token:  tokens[len(tokens)-1],
		Tokens: len(tokens),
	})
	return nil
}

func (r *Recorder) Layout(tok html.Token, line []layout.LineEntry, displayList []layout.DisplayItem) error {
	r.Checkpoints = append(r.Checkpoints, Checkpoint{
		Kind:  KindLayout,
		Token: tok,
		Line:  append([]layout.LineEntry(nil), line...),
		Items: append([]layout.DisplayItem(nil), displayList...),
	})
	return nil
}

func (r *Recorder) Flush(items []layout.DisplayItem) error {
	r.Checkpoints = append(r.Checkpoints, Checkpoint{
		Kind:  KindFlush,
		Items: append([]layout.DisplayItem(nil), items...),
	})
	return nil
}

func (r *Recorder) Render(item layout.DisplayItem, index int) error {
	r.Checkpoints = append(r.Checkpoints, Checkpoint{
		Kind:  KindRender,
		Items: []layout.DisplayItem{item},
		Index: index,
	})
	return nil
}

// Count returns how many checkpoints of kind k were recorded.
func (r *Recorder) Count(k Kind) int {
	n := 0
	for _, c := range r.Checkpoints {
		if c.Kind == k {
			n++
		}
	}
	return n
}

func (r *Recorder) Reset() {
	r.Checkpoints = nil
}
