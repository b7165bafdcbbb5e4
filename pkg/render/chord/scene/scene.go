package scene

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"honnef.co/go/curve"

	"github.com/matzehuels/chordviz/pkg/errors"
	"github.com/matzehuels/chordviz/pkg/render/chord/blend"
	"github.com/matzehuels/chordviz/pkg/render/chord/layout"
	"github.com/matzehuels/chordviz/pkg/render/chord/styles"
)

// Scene is a fully styled chord diagram.
type Scene struct {
	Width, Height float64
	Bounds        curve.Rect   // world rectangle fitted into the frame
	Transform     curve.Affine // world to pixel
	Scale         float64      // pixels per world unit
	Tolerance     float64      // flattening tolerance in world units

	Disc   Disc
	Arcs   []Arc
	Chords []Chord
	Labels []Label

	BlendResolution int
}

// Disc is the circle drawn between the arcs and the chords.
type Disc struct {
	Center curve.Point
	Radius float64
	Fill   colorful.Color
}

// Arc is a node's band on the circle.
type Arc struct {
	Name  string
	Shape curve.CircleSegment
	Path  curve.BezPath // closed outline of Shape
	Color colorful.Color
}

// Chord is a styled chord outline.
type Chord struct {
	Source, Target string
	Rho            float64
	Path           curve.BezPath
	Filled         bool // Fill is used; false for blended chords
	Fill           colorful.Color
	Edge           colorful.Color
	Alpha          float64
	LineWidth      float64 // px
	Hatch          styles.Hatch
	Field          *blend.Field // nil unless blended
}

// Label is a node name placed outside the circle.
type Label struct {
	Text     string
	Pos      curve.Point
	Rotation float64 // degrees, counter-clockwise in world coordinates, in [0, 360)
	FontSize float64 // px
	Color    colorful.Color
}

var (
	discColor  = colorful.Color{R: 1, G: 1, B: 1}
	labelColor = colorful.Color{}
)

// Compose styles l for a frame.
func Compose(l *layout.Layout, style Style, frame Frame) (*Scene, error) {
	if l == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil layout")
	}
	if err := style.Validate(); err != nil {
		return nil, err
	}
	if err := frame.validate(); err != nil {
		return nil, err
	}

	bounds := l.Bounds()
	scale := min(frame.Width/bounds.Width(), frame.Height/bounds.Height())
	center := bounds.Center()
	s := &Scene{
		Width:     frame.Width,
		Height:    frame.Height,
		Bounds:    bounds,
		Scale:     scale,
		Tolerance: l.Tolerance(),
		Transform: curve.Translate(curve.Vec(frame.Width/2, frame.Height/2)).
			Mul(curve.Scale(scale, -scale)).
			Mul(curve.Translate(curve.Vec(-center.X, -center.Y))),
		Disc: Disc{
			Center: l.Options.Center,
			Radius: l.Options.Radius,
			Fill:   discColor,
		},
		BlendResolution: style.BlendResolution,
	}

	colors := styles.NodeColors(len(l.Nodes), style.Colors)
	bandWidth := 2 * style.NodeLineWidth / scale
	for i, n := range l.Nodes {
		shape := l.ArcShape(n, bandWidth)
		path := shape.Path(s.Tolerance)
		path.ClosePath()
		s.Arcs = append(s.Arcs, Arc{Name: n.Name, Shape: shape, Path: path, Color: colors[i]})
	}

	for _, c := range l.Chords {
		sc, err := composeChord(l, c, colors, style)
		if err != nil {
			return nil, err
		}
		s.Chords = append(s.Chords, sc)
	}

	if !style.HideLabels {
		for _, n := range l.Nodes {
			s.Labels = append(s.Labels, placeLabel(l, n, style))
		}
	}
	return s, nil
}

func composeChord(l *layout.Layout, c layout.Chord, colors []colorful.Color, style Style) (Chord, error) {
	out := Chord{
		Source:    l.Nodes[c.Source].Name,
		Target:    l.Nodes[c.Target].Name,
		Rho:       c.Rho,
		Path:      l.Outline(c),
		Alpha:     style.ChordAlpha,
		LineWidth: style.ChordLineWidth,
		Hatch:     style.PositiveHatch,
	}
	if c.Negative() {
		out.Hatch = style.NegativeHatch
	}

	source := colors[c.Source]
	if !style.Blend {
		out.Filled = true
		out.Fill = source
		out.Edge = styles.Lighten(source, 0.5)
		return out, nil
	}

	out.Edge = styles.MustParse(styles.EdgeColor)
	field, err := blend.NewField(out.Path, l.MidCurve(c), source, colors[c.Target], style.BlendSamples, style.ChordAlpha)
	if err != nil {
		return Chord{}, err
	}
	out.Field = field
	return out, nil
}

// placeLabel puts n's name on the ray through its midpoint, rotated so the
// text reads outward from the circle.
func placeLabel(l *layout.Layout, n layout.Node, style Style) Label {
	center := l.Options.Center
	pos := layout.Polar(center, l.Options.Radius*(1+style.LabelPad), n.Mid)
	onCircle := layout.Polar(center, l.Options.Radius, n.Mid)
	rot := n.Mid - sign(onCircle.Y-center.Y)*math.Pi/2
	deg := math.Mod(rot*180/math.Pi, 360)
	if deg < 0 {
		deg += 360
	}
	return Label{
		Text:     n.Name,
		Pos:      pos,
		Rotation: deg,
		FontSize: style.FontSize,
		Color:    labelColor,
	}
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// ToPixel maps a world point into the frame.
func (s *Scene) ToPixel(p curve.Point) curve.Point { return p.Transform(s.Transform) }

// PixelPath maps a world path into the frame.
func (s *Scene) PixelPath(p curve.BezPath) curve.BezPath { return p.Transform(s.Transform) }

// Fields returns the color fields of all blended chords, in drawing order.
func (s *Scene) Fields() []*blend.Field {
	var out []*blend.Field
	for _, c := range s.Chords {
		if c.Field != nil {
			out = append(out, c.Field)
		}
	}
	return out
}

// Empty reports whether there is nothing but the frame to draw.
func (s *Scene) Empty() bool { return len(s.Arcs) == 0 }
