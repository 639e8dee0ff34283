package text

import "unicode/utf8"

// Monospace is a deterministic Measurer that needs no font files: every
// rune advances by Advance*size, ascent is Ascent*size and descent is
// Descent*size. Zero ratios fall back to 0.6, 0.8 and 0.2.
type Monospace struct {
	Advance float64
	Ascent  float64
	Descent float64
}

func (m Monospace) Measure(s string, f Font) float64 {
	adv := m.Advance
	if adv == 0 {
		adv = 0.6
	}
	return float64(utf8.RuneCountInString(s)) * f.Size * adv
}

func (m Monospace) Metrics(f Font) Metrics {
	asc, desc := m.Ascent, m.Descent
	if asc == 0 {
		asc = 0.8
	}
	if desc == 0 {
		desc = 0.2
	}
	return Metrics{Ascent: asc * f.Size, Descent: desc * f.Size}
}
