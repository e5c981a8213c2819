package render

import (
	"bytes"
	"image/png"
	"reflect"
	"testing"

	"github.com/jfache/nivo/pkg/calendar"
)

func TestPathVertices(t *testing.T) {
	// February 2015 outline (horizontal, cellSize 10, Sunday start)
	verts, err := pathVertices("M60,0H50V70H80V70H90V0H60Z")
	if err != nil {
		t.Fatalf("pathVertices: %v", err)
	}
	want := [][2]float64{
		{60, 0}, {50, 0}, {50, 70}, {80, 70}, {80, 70}, {90, 70}, {90, 0}, {60, 0},
	}
	if !reflect.DeepEqual(verts, want) {
		t.Errorf("vertices = %v, want %v", verts, want)
	}
}

func TestPathVerticesFractional(t *testing.T) {
	verts, err := pathVertices("M1.5,2.25H3Z")
	if err != nil {
		t.Fatalf("pathVertices: %v", err)
	}
	want := [][2]float64{{1.5, 2.25}, {3, 2.25}}
	if !reflect.DeepEqual(verts, want) {
		t.Errorf("vertices = %v, want %v", verts, want)
	}
}

func TestPathVerticesErrors(t *testing.T) {
	for _, d := range []string{"M60", "Q1,2", "M1,2H", "M1,2Hx"} {
		if _, err := pathVertices(d); err == nil {
			t.Errorf("pathVertices(%q) should fail", d)
		}
	}
}

func TestRenderPNGDimensions(t *testing.T) {
	l := testLayout(t)
	data, err := RenderPNG(l, WithPNGFrame(800, 200), WithPNGScale(1))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 200 {
		t.Errorf("bounds = %dx%d, want 800x200", b.Dx(), b.Dy())
	}
}

func TestRenderPNGScale(t *testing.T) {
	l := testLayout(t)
	legends := calendar.YearLegends(l.Years, calendar.Horizontal, calendar.Before, 10)
	data, err := RenderPNG(l,
		WithPNGFrame(800, 200),
		WithPNGScale(2),
		WithPNGTheme(DarkTheme()),
		WithPNGLegends(legends),
	)
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 1600 || b.Dy() != 400 {
		t.Errorf("bounds = %dx%d, want 1600x400", b.Dx(), b.Dy())
	}
}

func TestRenderPNGEmptyLayout(t *testing.T) {
	if _, err := RenderPNG(calendar.Layout{}); err == nil {
		t.Error("empty layout should error")
	}
}
