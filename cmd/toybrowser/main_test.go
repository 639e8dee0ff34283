package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"toybrowser/pkg/logger"
)

func writeInput(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "page.html")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_PNG(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "<b>Hello</b> <i>world</i><br>"+strings.Repeat("more text ", 200))
	out := filepath.Join(dir, "out.png")

	var stderr bytes.Buffer
	if err := run([]string{"-w", "320", "-h", "200", "-scroll", "2", "-dump", "-o", out, in}, &stderr); err != nil {
		t.Fatalf("run failed: %v\n%s", err, stderr.String())
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 320 || img.Bounds().Dy() != 200 {
		t.Errorf("unexpected size %v", img.Bounds())
	}
	if !strings.Contains(stderr.String(), "display list:") || !strings.Contains(stderr.String(), "scroll 200") {
		t.Errorf("unexpected output:\n%s", stderr.String())
	}
}

func TestRun_PDFWithScript(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "portable <small>document</small>")
	script := filepath.Join(dir, "hooks.js")
	if err := os.WriteFile(script, []byte(`function potentialBreakpointRender(n) { console.log("draw", n); }`), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.pdf")

	var stderr bytes.Buffer
	err := run([]string{"-v", "-script", script, "-o", out, in}, &stderr)
	t.Cleanup(func() { logger.SetLogger(nil) })
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, stderr.String())
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output is not a PDF")
	}
	if !strings.Contains(stderr.String(), `msg="draw 1"`) {
		t.Errorf("script console output missing:\n%s", stderr.String())
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "x")
	tests := []struct {
		name string
		args []string
	}{
		{"no input", nil},
		{"missing file", []string{filepath.Join(dir, "missing.html")}},
		{"bad format", []string{"-o", filepath.Join(dir, "out.gif"), in}},
		{"bad size", []string{"-w", "-5", "-o", filepath.Join(dir, "o.png"), in}},
		{"bad charset", []string{"-charset", "bogus", "-o", filepath.Join(dir, "o.png"), in}},
		{"bad config", []string{"-config", filepath.Join(dir, "missing.toml"), in}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			if err := run(tt.args, &stderr); err == nil {
				t.Errorf("expected error for %v", tt.args)
			}
		})
	}
}
