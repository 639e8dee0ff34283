package render

import (
	"image"
	"io"

	"github.com/fogleman/gg"

	"toybrowser/pkg/text"
)

// ImageSurface paints onto a raster image with gg, using the same faces
// the measurer uses.
type ImageSurface struct {
	context *gg.Context
	faces   *text.Faces
}

var _ Surface = (*ImageSurface)(nil)

func NewImageSurface(width, height int, faces *text.Faces) *ImageSurface {
	return &ImageSurface{context: gg.NewContext(width, height), faces: faces}
}

// NewImageSurfaceForRGBA paints directly into target.
func NewImageSurfaceForRGBA(target *image.RGBA, faces *text.Faces) *ImageSurface {
	return &ImageSurface{context: gg.NewContextForRGBA(target), faces: faces}
}

func (s *ImageSurface) Clear() {
	s.context.SetRGB(1, 1, 1)
	s.context.Clear()
}

func (s *ImageSurface) DrawText(word string, x, y float64, f text.Font) error {
	face, err := s.faces.Face(f)
	if err != nil {
		return err
	}
	s.context.SetFontFace(face)
	s.context.SetRGB(0, 0, 0)
	s.context.DrawString(word, x, y)
	return nil
}

func (s *ImageSurface) Image() image.Image {
	return s.context.Image()
}

func (s *ImageSurface) SavePNG(filename string) error {
	return s.context.SavePNG(filename)
}

func (s *ImageSurface) EncodePNG(w io.Writer) error {
	return s.context.EncodePNG(w)
}
