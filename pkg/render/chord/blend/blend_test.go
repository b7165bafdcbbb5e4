package blend

import (
	"context"
	"image"
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"honnef.co/go/curve"

	"github.com/matzehuels/chordviz/pkg/matrix"
	"github.com/matzehuels/chordviz/pkg/render/chord/layout"
)

var (
	red  = colorful.Color{R: 1}
	blue = colorful.Color{B: 1}
)

// square is a 2×2 box around the origin with a straight mid curve along x.
func square() (curve.BezPath, curve.QuadBez) {
	var p curve.BezPath
	p.MoveTo(curve.Pt(-1, -1))
	p.LineTo(curve.Pt(1, -1))
	p.LineTo(curve.Pt(1, 1))
	p.LineTo(curve.Pt(-1, 1))
	p.ClosePath()
	return p, curve.QuadBez{P0: curve.Pt(-1, 0), P1: curve.Pt(0, 0), P2: curve.Pt(1, 0)}
}

func TestEquidistant(t *testing.T) {
	// A strongly curved quad: equal parameter steps are not equal lengths.
	q := curve.QuadBez{P0: curve.Pt(0, 0), P1: curve.Pt(5, 10), P2: curve.Pt(10, 0)}
	pts := Equidistant(q, 11)
	if len(pts) != 11 {
		t.Fatalf("len = %d, want 11", len(pts))
	}
	if pts[0] != q.P0 || math.Abs(pts[10].X-q.P2.X) > 1e-6 || math.Abs(pts[10].Y-q.P2.Y) > 1e-6 {
		t.Errorf("end points = %v %v, want %v %v", pts[0], pts[10], q.P0, q.P2)
	}

	step := q.Arclen(1e-9) / 10
	for i, p := range pts {
		_, tp := q.Nearest(p, 1e-12)
		if got := q.Subsegment(0, tp).Arclen(1e-9); math.Abs(got-step*float64(i)) > 1e-3 {
			t.Errorf("sample %d at arclen %v, want %v", i, got, step*float64(i))
		}
	}
}

func TestColormap(t *testing.T) {
	tests := []struct {
		v    float64
		want colorful.Color
	}{
		{0, red},
		{0.3, red},
		{0.5, red.BlendRgb(blue, 0.5)},
		{0.7, blue},
		{1, blue},
	}
	for _, tt := range tests {
		if got := Colormap(red, blue, tt.v); !got.AlmostEqualRgb(tt.want) {
			t.Errorf("Colormap(%v) = %v, want %v", tt.v, got.Hex(), tt.want.Hex())
		}
	}
}

func TestFieldAt(t *testing.T) {
	outline, mid := square()
	f, err := NewField(outline, mid, red, blue, 3, 0.7)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		p      curve.Point
		want   colorful.Color
		inside bool
	}{
		{"SourceSide", curve.Pt(-0.9, 0.5), red, true},
		{"Middle", curve.Pt(0.05, -0.5), red.BlendRgb(blue, 0.5), true},
		{"TargetSide", curve.Pt(0.9, 0.9), blue, true},
		{"Outside", curve.Pt(2, 0), colorful.Color{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, inside := f.At(tt.p)
			if inside != tt.inside {
				t.Fatalf("inside = %v, want %v", inside, tt.inside)
			}
			if inside && !got.AlmostEqualRgb(tt.want) {
				t.Errorf("color = %s, want %s", got.Hex(), tt.want.Hex())
			}
		})
	}
}

func TestNewFieldErrors(t *testing.T) {
	outline, mid := square()
	if _, err := NewField(outline, mid, red, blue, 1, 0.5); err == nil {
		t.Error("expected error for 1 sample")
	}
	if _, err := NewField(outline, mid, red, blue, 10, 1.5); err == nil {
		t.Error("expected error for alpha > 1")
	}
}

func TestRaster(t *testing.T) {
	outline, mid := square()
	f, _ := NewField(outline, mid, red, blue, 30, 1)

	// Twice the outline's size: the outer ring of pixels is outside.
	img, err := f.Raster(context.Background(), curve.Rect{X0: -2, Y0: -2, X1: 2, Y1: 2}, 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	if a := img.NRGBAAt(0, 0).A; a != 0 {
		t.Errorf("corner alpha = %d, want 0", a)
	}
	if c := img.NRGBAAt(2, 4); c.R != 255 || c.B != 0 || c.A != 255 {
		t.Errorf("left pixel = %+v, want opaque red", c)
	}
	if c := img.NRGBAAt(5, 3); c.B != 255 || c.R != 0 {
		t.Errorf("right pixel = %+v, want blue", c)
	}

	if _, err := f.Raster(context.Background(), f.Bounds, 0, 5); err == nil {
		t.Error("expected error for empty raster")
	}
}

func TestRasterCancelled(t *testing.T) {
	outline, mid := square()
	f, _ := NewField(outline, mid, red, blue, 30, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.Rasterize(ctx, 10); err == nil {
		t.Error("expected context error")
	}
}

func TestRasterizeAllChords(t *testing.T) {
	m, err := matrix.New(nil, [][]float64{
		{1, 0.9, -0.5},
		{0.9, 1, 0.4},
		{-0.5, 0.4, 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	l, err := layout.Build(m, layout.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	fields := make([]*Field, len(l.Chords))
	for i, c := range l.Chords {
		fields[i], err = NewField(l.Outline(c), l.MidCurve(c), red, blue, DefaultSamples, 0.6)
		if err != nil {
			t.Fatal(err)
		}
	}

	imgs, err := RasterizeAll(context.Background(), fields, 40)
	if err != nil {
		t.Fatal(err)
	}
	if len(imgs) != 3 {
		t.Fatalf("len(images) = %d, want 3", len(imgs))
	}
	for i, img := range imgs {
		var filled int
		for y := 0; y < 40; y++ {
			for x := 0; x < 40; x++ {
				if img.NRGBAAt(x, y).A > 0 {
					filled++
				}
			}
		}
		if filled == 0 {
			t.Errorf("chord %d: no pixel inside outline", i)
		}
		if a := maxAlpha(img); a != 153 {
			t.Errorf("chord %d: alpha = %d, want 153", i, a)
		}
	}
}

func maxAlpha(img *image.NRGBA) uint8 {
	var a uint8
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			a = max(a, img.NRGBAAt(x, y).A)
		}
	}
	return a
}
