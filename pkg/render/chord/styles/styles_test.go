package styles

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/chordviz/pkg/errors"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"#ff0000", "#ff0000", false},
		{"#F00", "#ff0000", false},
		{"00ff00", "#00ff00", false},
		{"Blue", "#0000ff", false},
		{" tab:red ", "#d62728", false},
		{"#3D3D3D", "#3d3d3d", false},
		{"", "", true},
		{"#12", "", true},
		{"chartreuse-ish", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := ParseColor(tt.input)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidColor) {
					t.Errorf("ParseColor(%q) error = %v, want INVALID_COLOR", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q): %v", tt.input, err)
			}
			if c.Hex() != tt.want {
				t.Errorf("ParseColor(%q) = %s, want %s", tt.input, c.Hex(), tt.want)
			}
		})
	}
}

func TestPalette(t *testing.T) {
	p := Palette(6)
	if len(p) != 6 {
		t.Fatalf("len = %d, want 6", len(p))
	}
	for i, c := range p {
		h, s, l := c.Hsl()
		wantHue := math.Mod((PaletteHue+float64(i)/6)*360, 360)
		if math.Abs(h-wantHue) > 0.5 {
			t.Errorf("color %d hue = %.2f, want %.2f", i, h, wantHue)
		}
		if math.Abs(s-PaletteSaturation) > 0.01 || math.Abs(l-PaletteLightness) > 0.01 {
			t.Errorf("color %d s/l = %.3f/%.3f", i, s, l)
		}
	}
	if Palette(0) == nil || len(Palette(0)) != 0 {
		t.Errorf("Palette(0) should be empty")
	}
}

func TestNodeColors(t *testing.T) {
	red, _ := ParseColor("red")
	blue, _ := ParseColor("blue")

	got := NodeColors(3, []colorful.Color{red, blue})
	want := []string{"#ff0000", "#0000ff", "#ff0000"}
	for i := range want {
		if got[i].Hex() != want[i] {
			t.Errorf("NodeColors[%d] = %s, want %s", i, got[i].Hex(), want[i])
		}
	}
	if len(NodeColors(4, nil)) != 4 {
		t.Errorf("default colors not generated")
	}
}

func TestLighten(t *testing.T) {
	red, _ := ParseColor("red")
	if got := Lighten(red, 0); got.Hex() != "#ff0000" {
		t.Errorf("Lighten(red, 0) = %s", got.Hex())
	}
	if got := Lighten(red, 1); got.Hex() != "#ffffff" {
		t.Errorf("Lighten(red, 1) = %s", got.Hex())
	}
	_, _, l := Lighten(red, 0.5).Hsl()
	if math.Abs(l-0.75) > 0.01 {
		t.Errorf("Lighten(red, 0.5) lightness = %v, want 0.75", l)
	}
}

func TestParseColors(t *testing.T) {
	if _, err := ParseColors([]string{"red", "nope"}); err == nil {
		t.Error("expected error")
	}
	cs, err := ParseColors([]string{"red", "#00f"})
	if err != nil || len(cs) != 2 {
		t.Errorf("ParseColors = %v, %v", cs, err)
	}
}

func TestParseHatch(t *testing.T) {
	tests := []struct {
		input   string
		want    Hatch
		wantErr bool
	}{
		{"", Hatch{}, false},
		{"---", Hatch{Horizontal: 3}, false},
		{"+", Hatch{Horizontal: 1, Vertical: 1}, false},
		{"x/", Hatch{Diagonal: 2, BackDiagonal: 1}, false},
		{`\\..`, Hatch{BackDiagonal: 2, Dots: 2}, false},
		{"o", Hatch{}, true},
	}
	for _, tt := range tests {
		got, err := ParseHatch(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHatch(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHatch(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestHatchSegments(t *testing.T) {
	h, _ := ParseHatch("--")
	segs := h.Segments(HatchTile)
	if len(segs) != 2*linesPerChar {
		t.Fatalf("len(segments) = %d, want %d", len(segs), 2*linesPerChar)
	}
	for _, s := range segs {
		if s.Y1 != s.Y2 || s.X1 != 0 || s.X2 != HatchTile {
			t.Errorf("segment %+v is not a full horizontal line", s)
		}
	}

	d, _ := ParseHatch("/")
	for _, s := range d.Segments(HatchTile) {
		if math.Abs((s.X2-s.X1)+(s.Y2-s.Y1)) > 1e-9 {
			t.Errorf("segment %+v is not a 45° diagonal", s)
		}
	}

	if !(Hatch{}).IsZero() || len((Hatch{}).Segments(HatchTile)) != 0 {
		t.Error("zero hatch should draw nothing")
	}
}

func TestHatchDots(t *testing.T) {
	h, _ := ParseHatch(".")
	centers := h.DotCenters(HatchTile)
	n := linesPerChar / 2
	if len(centers) != n*n {
		t.Errorf("len(centers) = %d, want %d", len(centers), n*n)
	}
	if h.DotRadius(HatchTile) <= 0 {
		t.Error("dot radius should be positive")
	}
	if h.String() != "." {
		t.Errorf("String() = %q", h.String())
	}
}
