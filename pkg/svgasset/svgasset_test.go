package svgasset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	carderrors "github.com/matzehuels/cardstock/pkg/errors"
)

const sampleSVG = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 40">
  <path d="M 10,10 L 90,10 L 90,30 L 10,30 Z"/>
  <path d="M 20,20 C 30,5 70,5 80,20 Q 50,35 20,20"/>
</svg>`

func TestRead(t *testing.T) {
	a, err := Read(strings.NewReader(sampleSVG), Options{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if a.W != 100 || a.H != 40 {
		t.Errorf("native size = %gx%g, want 100x40", a.W, a.H)
	}

	wantKinds := []Kind{
		MoveTo, LineTo, LineTo, LineTo, Close,
		MoveTo, CubicTo, QuadTo,
	}
	if len(a.Commands) != len(wantKinds) {
		t.Fatalf("commands = %d, want %d", len(a.Commands), len(wantKinds))
	}
	for i, want := range wantKinds {
		if a.Commands[i].Kind != want {
			t.Errorf("command %d kind = %d, want %d", i, a.Commands[i].Kind, want)
		}
	}

	if got := a.Commands[0].Pts[0]; got != (Point{10, 10}) {
		t.Errorf("first move = %+v, want (10, 10)", got)
	}
	if got := a.Commands[6].Pts; len(got) != 3 || got[2] != (Point{80, 20}) {
		t.Errorf("cubic points = %+v, want 3 points ending at (80, 20)", got)
	}
}

func TestReadMultiPointMove(t *testing.T) {
	// Points after the first in an M run are implicit line segments.
	svg := `<svg viewBox="0 0 10 10"><path d="M 0,0 5,5 10,0"/></svg>`
	a, err := Read(strings.NewReader(svg), Options{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	wantKinds := []Kind{MoveTo, LineTo, LineTo}
	for i, want := range wantKinds {
		if a.Commands[i].Kind != want {
			t.Errorf("command %d kind = %d, want %d", i, a.Commands[i].Kind, want)
		}
	}
}

func TestReadFlipY(t *testing.T) {
	a, err := Read(strings.NewReader(sampleSVG), Options{FlipY: true})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	// (10, 10) mirrored within the 40-unit viewBox height.
	if got := a.Commands[0].Pts[0]; got != (Point{10, 30}) {
		t.Errorf("flipped move = %+v, want (10, 30)", got)
	}
}

func TestReadFitHeight(t *testing.T) {
	a, err := Read(strings.NewReader(sampleSVG), Options{FitHeight: 80})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if a.W != 200 || a.H != 80 {
		t.Errorf("scaled size = %gx%g, want 200x80", a.W, a.H)
	}
	if got := a.Commands[0].Pts[0]; got != (Point{20, 20}) {
		t.Errorf("scaled move = %+v, want (20, 20)", got)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		code carderrors.Code
	}{
		{
			"RelativeCommand",
			`<svg viewBox="0 0 10 10"><path d="m 1,1 l 2,2"/></svg>`,
			carderrors.ErrCodeUnsupportedPathCommand,
		},
		{
			"ArcCommand",
			`<svg viewBox="0 0 10 10"><path d="M 1,1 A 5 5 0 0 1 9,9"/></svg>`,
			carderrors.ErrCodeUnsupportedPathCommand,
		},
		{
			"NoViewBox",
			`<svg><path d="M 0,0 L 1,1"/></svg>`,
			carderrors.ErrCodeInvalidConfig,
		},
		{
			"NoPaths",
			`<svg viewBox="0 0 10 10"><rect width="10" height="10"/></svg>`,
			carderrors.ErrCodeInvalidConfig,
		},
		{
			"ShortCubic",
			`<svg viewBox="0 0 10 10"><path d="M 0,0 C 1,1 2,2"/></svg>`,
			carderrors.ErrCodeInvalidConfig,
		},
		{
			"MalformedPoint",
			`<svg viewBox="0 0 10 10"><path d="M 0;0"/></svg>`,
			carderrors.ErrCodeInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.svg), Options{})
			if !carderrors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.svg")
	if err := os.WriteFile(path, []byte(sampleSVG), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	a, err := ReadFile(path, Options{})
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if a.W != 100 {
		t.Errorf("width = %g, want 100", a.W)
	}

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.svg"), Options{})
	if !carderrors.Is(err, carderrors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
}
