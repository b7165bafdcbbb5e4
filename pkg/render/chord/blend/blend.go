// Package blend fills chords with a gradient that follows their curvature.
//
// A [Field] samples the chord's mid curve at equal arc-length steps. Every
// point inside the chord outline takes the position, from 0 at the source to
// 1 at the target, of its nearest sample and maps it through a colormap
// that holds the source color for the first third, blends across the middle
// third and holds the target color for the last third.
package blend

import (
	"context"
	"image"
	"image/color"
	"math"
	"runtime"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/sync/errgroup"
	"honnef.co/go/curve"

	"github.com/matzehuels/chordviz/pkg/errors"
)

// Defaults for sampling and rasterization.
const (
	DefaultSamples    = 30
	DefaultResolution = 200
	arclenAccuracy    = 1e-6
)

// Field is the color gradient of one chord.
type Field struct {
	Outline curve.BezPath
	Samples []curve.Point
	Source  colorful.Color
	Target  colorful.Color
	Alpha   float64
	Bounds  curve.Rect
}

// NewField samples mid at n equidistant points and returns the gradient
// filling outline from source to target color.
func NewField(outline curve.BezPath, mid curve.QuadBez, source, target colorful.Color, n int, alpha float64) (*Field, error) {
	if n < 2 {
		return nil, errors.New(errors.ErrCodeInvalidOption, "blend needs at least 2 samples, got %d", n)
	}
	if alpha < 0 || alpha > 1 {
		return nil, errors.New(errors.ErrCodeInvalidOption, "alpha must be in [0, 1], got %g", alpha)
	}
	return &Field{
		Outline: outline,
		Samples: Equidistant(mid, n),
		Source:  source,
		Target:  target,
		Alpha:   alpha,
		Bounds:  outline.BoundingBox(),
	}, nil
}

// Equidistant returns n points of q spaced evenly by arc length, including
// both end points.
func Equidistant(q curve.QuadBez, n int) []curve.Point {
	total := q.Arclen(arclenAccuracy)
	points := make([]curve.Point, n)
	for i := range points {
		s := total * float64(i) / float64(n-1)
		points[i] = q.Eval(curve.SolveForArclen(q, s, arclenAccuracy))
	}
	return points
}

// Colormap maps v in [0, 1] to a color: source up to 1/3, a linear RGB
// blend up to 2/3, target beyond.
func Colormap(source, target colorful.Color, v float64) colorful.Color {
	switch {
	case v <= 1.0/3:
		return source
	case v >= 2.0/3:
		return target
	default:
		return source.BlendRgb(target, (v-1.0/3)*3)
	}
}

// Value returns the position along the chord, in [0, 1], of the sample
// nearest to p.
func (f *Field) Value(p curve.Point) float64 {
	best, bestDist := 0, math.Inf(1)
	for i, s := range f.Samples {
		if d := p.Sub(s).Hypot2(); d < bestDist {
			best, bestDist = i, d
		}
	}
	return float64(best) / float64(len(f.Samples)-1)
}

// At returns the color at p and whether p lies inside the chord.
func (f *Field) At(p curve.Point) (colorful.Color, bool) {
	if f.Outline.Winding(p) == 0 {
		return colorful.Color{}, false
	}
	return Colormap(f.Source, f.Target, f.Value(p)), true
}

// Raster renders the field over the world rectangle r into a cols×rows
// image. Row 0 is the top of r (largest y). Pixels outside the chord stay
// transparent.
func (f *Field) Raster(ctx context.Context, r curve.Rect, cols, rows int) (*image.NRGBA, error) {
	if cols <= 0 || rows <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidOption, "raster size must be positive, got %dx%d", cols, rows)
	}
	img := image.NewNRGBA(image.Rect(0, 0, cols, rows))
	x0, y1 := r.MinX(), r.MaxY()
	dx, dy := r.Width()/float64(cols), r.Height()/float64(rows)
	a := uint8(math.Round(f.Alpha * 255))

	for j := 0; j < rows; j++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		y := y1 - (float64(j)+0.5)*dy
		for i := 0; i < cols; i++ {
			c, ok := f.At(curve.Pt(x0+(float64(i)+0.5)*dx, y))
			if !ok {
				continue
			}
			cr, cg, cb := c.Clamped().RGB255()
			img.SetNRGBA(i, j, color.NRGBA{R: cr, G: cg, B: cb, A: a})
		}
	}
	return img, nil
}

// Rasterize renders the field over its own bounding box at resolution×
// resolution pixels.
func (f *Field) Rasterize(ctx context.Context, resolution int) (*image.NRGBA, error) {
	return f.Raster(ctx, f.Bounds, resolution, resolution)
}

// RasterizeAll renders every field concurrently. The result is index-aligned
// with fields.
func RasterizeAll(ctx context.Context, fields []*Field, resolution int) ([]*image.NRGBA, error) {
	out := make([]*image.NRGBA, len(fields))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, f := range fields {
		g.Go(func() error {
			img, err := f.Rasterize(ctx, resolution)
			if err != nil {
				return err
			}
			out[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
