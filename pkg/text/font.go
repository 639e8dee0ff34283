package text

import (
	"fmt"
	"strconv"
)

type Weight int

const (
	WeightNormal Weight = iota
	WeightBold
)

func (w Weight) String() string {
	if w == WeightBold {
		return "bold"
	}
	return "normal"
}

type Style int

const (
	StyleNormal Style = iota
	StyleItalic
)

func (s Style) String() string {
	if s == StyleItalic {
		return "italic"
	}
	return "normal"
}

// Font is a comparable value; two fonts are equal iff size, weight and
// style are all equal, so it can key a map directly.
type Font struct {
	Size   float64
	Weight Weight
	Style  Style
}

// String formats the font as a canvas font shorthand,
// e.g. "italic bold 16px sans-serif".
func (f Font) String() string {
	return fmt.Sprintf("%s %s %spx sans-serif", f.Style, f.Weight, strconv.FormatFloat(f.Size, 'f', -1, 64))
}

// Metrics are the vertical extents of a font around its baseline.
type Metrics struct {
	Ascent  float64
	Descent float64
}

// LineHeight is ascent plus descent.
func (m Metrics) LineHeight() float64 {
	return m.Ascent + m.Descent
}

// Measurer is the host measurement capability. Implementations must be
// deterministic for a given (text, font) pair.
type Measurer interface {
	Measure(text string, f Font) float64
	Metrics(f Font) Metrics
}
