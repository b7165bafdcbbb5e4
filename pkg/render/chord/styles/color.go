package styles

import (
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/chordviz/pkg/errors"
)

// Palette defaults, matching an evenly spaced HLS wheel starting just past
// red.
const (
	PaletteHue        = 0.01
	PaletteLightness  = 0.6
	PaletteSaturation = 0.65
)

// EdgeColor is the outline color of blended chords.
const EdgeColor = "#3D3D3D"

var named = map[string]string{
	"black":     "#000000",
	"white":     "#ffffff",
	"red":       "#ff0000",
	"green":     "#008000",
	"blue":      "#0000ff",
	"orange":    "#ffa500",
	"purple":    "#800080",
	"gray":      "#808080",
	"grey":      "#808080",
	"lightgray": "#d3d3d3",
	"tab:blue":  "#1f77b4",
	"tab:red":   "#d62728",
	"tab:green": "#2ca02c",
}

// Palette returns n colors evenly spaced in hue.
func Palette(n int) []colorful.Color {
	colors := make([]colorful.Color, n)
	for i := range colors {
		hue := math.Mod(PaletteHue+float64(i)/float64(n), 1)
		colors[i] = colorful.Hsl(hue*360, PaletteSaturation, PaletteLightness).Clamped()
	}
	return colors
}

// ParseColor reads a #rgb or #rrggbb hex color, or one of a few names.
func ParseColor(s string) (colorful.Color, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if hex, ok := named[key]; ok {
		key = hex
	}
	if !strings.HasPrefix(key, "#") {
		key = "#" + key
	}
	c, err := colorful.Hex(key)
	if err != nil {
		return colorful.Color{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid color %q", s)
	}
	return c, nil
}

// ParseColors parses every entry of list.
func ParseColors(list []string) ([]colorful.Color, error) {
	out := make([]colorful.Color, len(list))
	for i, s := range list {
		c, err := ParseColor(s)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// NodeColors returns n colors: the explicit ones cycled when given, the
// default palette otherwise.
func NodeColors(n int, explicit []colorful.Color) []colorful.Color {
	if len(explicit) == 0 {
		return Palette(n)
	}
	out := make([]colorful.Color, n)
	for i := range out {
		out[i] = explicit[i%len(explicit)]
	}
	return out
}

// Lighten moves c toward white by amount (0 keeps c, 1 gives white) in HSL
// space.
func Lighten(c colorful.Color, amount float64) colorful.Color {
	h, s, l := c.Hsl()
	return colorful.Hsl(h, s, l+(1-l)*amount).Clamped()
}

// MustParse is ParseColor for package-level constants.
func MustParse(s string) colorful.Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
