package render

import "toybrowser/pkg/text"

type DrawCall struct {
	Word string
	X, Y float64
	Font text.Font
}

// RecordingSurface keeps every call made to it instead of painting.
// Clear empties Calls, so Calls always holds the latest frame.
type RecordingSurface struct {
	Clears int
	Calls  []DrawCall
}

var _ Surface = (*RecordingSurface)(nil)

func (r *RecordingSurface) Clear() {
	r.Clears++
	r.Calls = nil
}

func (r *RecordingSurface) DrawText(word string, x, y float64, f text.Font) error {
	r.Calls = append(r.Calls, DrawCall{Word: word, X: x, Y: y, Font: f})
	return nil
}
