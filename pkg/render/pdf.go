package render

import (
	"fmt"
	"io"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"toybrowser/pkg/text"
)

// ptToMm converts content units, taken as points, to canvas millimetres.
const ptToMm = 0.352777

type fontVariant struct {
	weight text.Weight
	style  text.Style
}

// PDFSurface paints one viewport-sized page with tdewolff/canvas. Each
// weight/style combination is loaded as its own family from the same
// FontConfig the measurer uses.
type PDFSurface struct {
	width, height float64
	fonts         text.FontConfig
	families      map[fontVariant]*canvas.FontFamily

	canvas *canvas.Canvas
	ctx    *canvas.Context
}

var _ Surface = (*PDFSurface)(nil)

func NewPDFSurface(width, height float64, fc text.FontConfig) *PDFSurface {
	s := &PDFSurface{
		width:    width,
		height:   height,
		fonts:    fc,
		families: map[fontVariant]*canvas.FontFamily{},
	}
	s.Clear()
	return s
}

// Clear starts a fresh page.
func (s *PDFSurface) Clear() {
	s.canvas = canvas.New(s.width*ptToMm, s.height*ptToMm)
	s.ctx = canvas.NewContext(s.canvas)
	s.ctx.SetCoordSystem(canvas.CartesianIV)
}

func (s *PDFSurface) DrawText(word string, x, y float64, f text.Font) error {
	family, err := s.family(f)
	if err != nil {
		return err
	}
	face := family.Face(f.Size, canvas.Black, canvas.FontRegular, canvas.FontNormal)
	s.ctx.DrawText(x*ptToMm, y*ptToMm, canvas.NewTextLine(face, word, canvas.Left))
	return nil
}

func (s *PDFSurface) family(f text.Font) (*canvas.FontFamily, error) {
	v := fontVariant{f.Weight, f.Style}
	if family, ok := s.families[v]; ok {
		return family, nil
	}
	data, err := s.fonts.Source(f)
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily(fmt.Sprintf("toybrowser-%s-%s", f.Weight, f.Style))
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("loading font for %s: %w", f, err)
	}
	s.families[v] = family
	return family, nil
}

// EncodePDF writes the current page as a PDF document.
func (s *PDFSurface) EncodePDF(w io.Writer) error {
	writer := pdf.New(w, s.width*ptToMm, s.height*ptToMm, nil)
	s.canvas.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	return nil
}
