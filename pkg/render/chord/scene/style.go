package scene

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/chordviz/pkg/errors"
	"github.com/matzehuels/chordviz/pkg/render/chord/blend"
	"github.com/matzehuels/chordviz/pkg/render/chord/styles"
)

// Style defaults.
const (
	DefaultNodeLineWidth  = 10.0
	DefaultLabelPad       = 0.2
	DefaultFontSize       = 15.0
	DefaultChordLineWidth = 1.0
	DefaultChordAlpha     = 0.7

	DefaultWidth  = 800.0
	DefaultHeight = 800.0
)

// Style controls how a layout is painted.
type Style struct {
	Colors         []colorful.Color // node colors, cycled; the palette when empty
	NodeLineWidth  float64          // px; the arc band is twice as wide
	LabelPad       float64          // label distance beyond the circle, in radii
	FontSize       float64          // px
	HideLabels     bool
	ChordLineWidth float64 // px
	ChordAlpha     float64

	Blend           bool // fill chords with a gradient between their node colors
	BlendSamples    int  // points sampled along the middle curve
	BlendResolution int  // raster cells along the longer side of a chord

	PositiveHatch styles.Hatch
	NegativeHatch styles.Hatch
}

// DefaultStyle returns the default style: blended chords, negative
// correlations hatched with horizontal lines.
func DefaultStyle() Style {
	neg, _ := styles.ParseHatch(styles.DefaultNegativeHatch)
	return Style{
		NodeLineWidth:   DefaultNodeLineWidth,
		LabelPad:        DefaultLabelPad,
		FontSize:        DefaultFontSize,
		ChordLineWidth:  DefaultChordLineWidth,
		ChordAlpha:      DefaultChordAlpha,
		Blend:           true,
		BlendSamples:    blend.DefaultSamples,
		BlendResolution: blend.DefaultResolution,
		NegativeHatch:   neg,
	}
}

// Validate reports the first out-of-range field.
func (s Style) Validate() error {
	switch {
	case s.NodeLineWidth < 0 || math.IsNaN(s.NodeLineWidth):
		return errors.New(errors.ErrCodeInvalidOption, "node line width must be non-negative, got %v", s.NodeLineWidth)
	case s.LabelPad < 0 || math.IsNaN(s.LabelPad):
		return errors.New(errors.ErrCodeInvalidOption, "label pad must be non-negative, got %v", s.LabelPad)
	case !(s.FontSize > 0):
		return errors.New(errors.ErrCodeInvalidOption, "font size must be positive, got %v", s.FontSize)
	case s.ChordLineWidth < 0 || math.IsNaN(s.ChordLineWidth):
		return errors.New(errors.ErrCodeInvalidOption, "chord line width must be non-negative, got %v", s.ChordLineWidth)
	case !(s.ChordAlpha >= 0 && s.ChordAlpha <= 1):
		return errors.New(errors.ErrCodeInvalidOption, "chord alpha must be in [0, 1], got %v", s.ChordAlpha)
	}
	if s.Blend {
		if s.BlendSamples < 2 {
			return errors.New(errors.ErrCodeInvalidOption, "blend samples must be at least 2, got %d", s.BlendSamples)
		}
		if s.BlendResolution < 1 {
			return errors.New(errors.ErrCodeInvalidOption, "blend resolution must be positive, got %d", s.BlendResolution)
		}
	}
	return nil
}

// Frame is the pixel size of the output.
type Frame struct {
	Width, Height float64
}

// DefaultFrame returns an 800x800 frame.
func DefaultFrame() Frame { return Frame{Width: DefaultWidth, Height: DefaultHeight} }

func (f Frame) validate() error {
	if !(f.Width > 0) || !(f.Height > 0) {
		return errors.New(errors.ErrCodeInvalidOption, "frame must be positive, got %vx%v", f.Width, f.Height)
	}
	return nil
}
