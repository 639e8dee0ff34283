package text

import (
	"fmt"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"toybrowser/pkg/logger"
)

// FontConfig holds paths to TrueType files for each weight/style
// combination. An empty path selects the bundled Go font for that slot.
type FontConfig struct {
	Regular    string
	Bold       string
	Italic     string
	BoldItalic string
}

// DefaultFontConfig uses the Go fonts for every slot.
func DefaultFontConfig() FontConfig {
	return FontConfig{}
}

// FontPath returns the configured path for the given style combination,
// or "" when the bundled font is used.
func (fc FontConfig) FontPath(bold, italic bool) string {
	switch {
	case bold && italic:
		return fc.BoldItalic
	case bold:
		return fc.Bold
	case italic:
		return fc.Italic
	}
	return fc.Regular
}

// Source returns the TrueType bytes for f's weight and style.
func (fc FontConfig) Source(f Font) ([]byte, error) {
	bold, italic := f.Weight == WeightBold, f.Style == StyleItalic
	if path := fc.FontPath(bold, italic); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading font %s: %w", path, err)
		}
		return data, nil
	}
	switch {
	case bold && italic:
		return gobolditalic.TTF, nil
	case bold:
		return gobold.TTF, nil
	case italic:
		return goitalic.TTF, nil
	}
	return goregular.TTF, nil
}

type variant struct {
	weight Weight
	style  Style
}

// Faces parses each font file once and hands out one face per Font.
// It is shared by the measurer and the raster surface so both see the
// same glyph advances.
type Faces struct {
	config FontConfig

	mu     sync.Mutex
	parsed map[variant]*truetype.Font
	faces  map[Font]font.Face
}

func NewFaces(fc FontConfig) *Faces {
	return &Faces{
		config: fc,
		parsed: make(map[variant]*truetype.Font),
		faces:  make(map[Font]font.Face),
	}
}

// Face returns the face for f. Sizes below one point are rendered at one
// point; the layout engine does not clamp sizes.
func (fs *Faces) Face(f Font) (font.Face, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if face, ok := fs.faces[f]; ok {
		return face, nil
	}
	v := variant{f.Weight, f.Style}
	ttf, ok := fs.parsed[v]
	if !ok {
		data, err := fs.config.Source(f)
		if err != nil {
			return nil, err
		}
		ttf, err = truetype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing font for %s: %w", f, err)
		}
		fs.parsed[v] = ttf
	}
	size := f.Size
	if size < 1 {
		size = 1
	}
	face := truetype.NewFace(ttf, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingNone})
	fs.faces[f] = face
	logger.Get().Debug("font face created", "font", f.String())
	return face, nil
}

// GoFontMeasurer measures text with real TrueType faces. When a face cannot
// be loaded it falls back to a rough monospace estimate.
type GoFontMeasurer struct {
	faces    *Faces
	fallback Monospace
}

func NewGoFontMeasurer(faces *Faces) *GoFontMeasurer {
	return &GoFontMeasurer{faces: faces}
}

func (m *GoFontMeasurer) Measure(s string, f Font) float64 {
	face, err := m.faces.Face(f)
	if err != nil {
		logger.Get().Warn("measuring with fallback", "font", f.String(), "err", err)
		return m.fallback.Measure(s, f)
	}
	return fixedToFloat(font.MeasureString(face, s))
}

func (m *GoFontMeasurer) Metrics(f Font) Metrics {
	face, err := m.faces.Face(f)
	if err != nil {
		logger.Get().Warn("metrics with fallback", "font", f.String(), "err", err)
		return m.fallback.Metrics(f)
	}
	fm := face.Metrics()
	return Metrics{Ascent: fixedToFloat(fm.Ascent), Descent: fixedToFloat(fm.Descent)}
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
