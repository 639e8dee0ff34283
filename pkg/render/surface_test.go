package render_test

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"toybrowser/pkg/render"
	"toybrowser/pkg/text"
	"toybrowser/pkg/visualtest"
)

func TestImageSurface_DrawText(t *testing.T) {
	s := render.NewImageSurface(200, 100, visualtest.SharedFaces())
	s.Clear()
	if ink := visualtest.InkBounds(s.Image()); !ink.Empty() {
		t.Fatalf("cleared surface has ink at %v", ink)
	}
	if err := s.DrawText("Hello", 10, 50, text.Font{Size: 16}); err != nil {
		t.Fatal(err)
	}
	ink := visualtest.InkBounds(s.Image())
	if ink.Empty() {
		t.Fatal("expected ink after drawing")
	}
	if ink.Min.Y > 50 || ink.Max.Y < 40 {
		t.Errorf("glyphs should sit on the baseline at y=50, got %v", ink)
	}

	s.Clear()
	if ink := visualtest.InkBounds(s.Image()); !ink.Empty() {
		t.Errorf("clear left ink at %v", ink)
	}
}

func TestImageSurface_ForRGBA(t *testing.T) {
	target := image.NewRGBA(image.Rect(0, 0, 80, 40))
	s := render.NewImageSurfaceForRGBA(target, visualtest.SharedFaces())
	s.Clear()
	if err := s.DrawText("x", 5, 30, text.Font{Size: 20, Weight: text.WeightBold}); err != nil {
		t.Fatal(err)
	}
	if visualtest.InkBounds(target).Empty() {
		t.Error("expected drawing to land in the target image")
	}
}

func TestImageSurface_EncodePNG(t *testing.T) {
	s := render.NewImageSurface(40, 20, visualtest.SharedFaces())
	s.Clear()
	var buf bytes.Buffer
	if err := s.EncodePNG(&buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 20 {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}
}

func TestPDFSurface_EncodePDF(t *testing.T) {
	s := render.NewPDFSurface(300, 200, text.DefaultFontConfig())
	if err := s.DrawText("portable", 6, 30, text.Font{Size: 16, Style: text.StyleItalic}); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := s.EncodePDF(&buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Errorf("output does not look like a PDF: %q", buf.Bytes()[:min(16, buf.Len())])
	}
}
