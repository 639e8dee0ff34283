package layout

import (
	"toybrowser/pkg/html"
	"toybrowser/pkg/text"
)

// Leading is applied above the tallest ascent and below the deepest
// descent of every line.
const Leading = 1.2

// LineEntry is a word placed on the line being built. Its y is not known
// until the line is flushed.
type LineEntry struct {
	X    float64
	Word string
	Font text.Font
}

// DisplayItem is a word positioned on its line's baseline. A slice of
// them in layout order is the display list.
type DisplayItem struct {
	X    float64
	Y    float64
	Word string
	Font text.Font
}

// Hooks are optional checkpoints. The slices passed in are owned by the
// engine and only valid for the duration of the call; copy to retain.
// A non-nil error aborts layout.
type Hooks struct {
	// TokenDispatched runs after every token has been applied.
	TokenDispatched func(tok html.Token, line []LineEntry, displayList []DisplayItem) error
	// LineFlushed runs after a non-empty line became display items.
	LineFlushed func(items []DisplayItem) error
}
