package sink

import (
	"bytes"
	"context"
	"image"
	"math"
	"runtime"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/sync/errgroup"
	"honnef.co/go/curve"

	"github.com/matzehuels/chordviz/pkg/errors"
	"github.com/matzehuels/chordviz/pkg/fonts"
	"github.com/matzehuels/chordviz/pkg/render/chord/scene"
	"github.com/matzehuels/chordviz/pkg/render/chord/styles"
)

// MaxPNGSide is the largest PNG width or height in pixels.
const MaxPNGSide = 16384

// CheckPNGSize reports whether a width×height frame rendered at scale stays
// within [MaxPNGSide].
func CheckPNGSize(width, height, scale float64) error {
	w, h := math.Ceil(width*scale), math.Ceil(height*scale)
	if w > MaxPNGSide || h > MaxPNGSide {
		return errors.New(errors.ErrCodeInvalidOption,
			"png would be %.0fx%.0f pixels, the limit is %d per side (reduce width, height or png_scale)", w, h, MaxPNGSide)
	}
	return nil
}

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale       float64
	transparent bool
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithTransparentPNG leaves out the white background.
func WithTransparentPNG() PNGOption {
	return func(r *pngRenderer) { r.transparent = true }
}

// RenderPNG rasterizes s directly. Blended chords are sampled once per
// output pixel, so gradients stay sharp at any scale.
func RenderPNG(ctx context.Context, s *scene.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if !(r.scale > 0) {
		return nil, errors.New(errors.ErrCodeInvalidOption, "png scale must be positive, got %v", r.scale)
	}
	if err := CheckPNGSize(s.Width, s.Height, r.scale); err != nil {
		return nil, err
	}

	dc, err := r.draw(ctx, s)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func (r *pngRenderer) draw(ctx context.Context, s *scene.Scene) (*gg.Context, error) {
	k := r.scale
	toPixel := curve.Scale(k, k).Mul(s.Transform)
	dc := gg.NewContext(int(math.Ceil(s.Width*k)), int(math.Ceil(s.Height*k)))
	if !r.transparent {
		dc.SetRGB(1, 1, 1)
		dc.Clear()
	}

	fields, err := rasterFields(ctx, s, toPixel, dc.Width(), dc.Height())
	if err != nil {
		return nil, err
	}

	for _, a := range s.Arcs {
		tracePath(dc, a.Path.Transform(toPixel))
		setColor(dc, a.Color, 1)
		dc.Fill()
	}

	if !s.Empty() {
		c := s.Disc.Center.Transform(toPixel)
		dc.DrawCircle(c.X, c.Y, s.Disc.Radius*s.Scale*k)
		setColor(dc, s.Disc.Fill, 1)
		dc.Fill()
	}

	tiles := make(map[hatchKey]gg.Pattern)
	for i, c := range s.Chords {
		path := c.Path.Transform(toPixel)
		if f := fields[i]; f != nil {
			tracePath(dc, path)
			dc.Clip()
			dc.DrawImage(f.img, f.at.X, f.at.Y)
			dc.ResetClip()
		}
		if c.Filled {
			tracePath(dc, path)
			setColor(dc, c.Fill, c.Alpha)
			dc.Fill()
		}
		if !c.Hatch.IsZero() {
			key := hatchKey{c.Hatch, c.Edge}
			pattern, ok := tiles[key]
			if !ok {
				pattern = hatchPattern(c.Hatch, c.Edge, k)
				tiles[key] = pattern
			}
			tracePath(dc, path)
			dc.SetFillStyle(pattern)
			dc.Fill()
		}
		if c.LineWidth > 0 {
			tracePath(dc, path)
			alpha := 1.0
			if c.Filled {
				alpha = c.Alpha
			}
			setColor(dc, c.Edge, alpha)
			dc.SetLineWidth(c.LineWidth * k)
			dc.Stroke()
		}
	}

	for _, l := range s.Labels {
		face, err := fonts.Face(l.FontSize * k)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "load font")
		}
		dc.SetFontFace(face)
		p := l.Pos.Transform(toPixel)
		setColor(dc, l.Color, 1)
		dc.Push()
		dc.RotateAbout(gg.Radians(-l.Rotation), p.X, p.Y)
		dc.DrawStringAnchored(l.Text, p.X, p.Y, 0.5, 0.35)
		dc.Pop()
	}
	return dc, nil
}

type pixelField struct {
	img image.Image
	at  image.Point
}

// rasterFields samples every blended chord on the output pixel grid.
func rasterFields(ctx context.Context, s *scene.Scene, toPixel curve.Affine, width, height int) ([]*pixelField, error) {
	out := make([]*pixelField, len(s.Chords))
	toWorld := toPixel.Invert()
	frame := image.Rect(0, 0, width, height)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, c := range s.Chords {
		if c.Field == nil {
			continue
		}
		box := toPixel.TransformRectBoundingBox(c.Field.Bounds)
		px := image.Rect(
			int(math.Floor(box.MinX())), int(math.Floor(box.MinY())),
			int(math.Ceil(box.MaxX())), int(math.Ceil(box.MaxY())),
		).Intersect(frame)
		if px.Empty() {
			continue
		}
		g.Go(func() error {
			world := toWorld.TransformRectBoundingBox(curve.Rect{
				X0: float64(px.Min.X), Y0: float64(px.Min.Y),
				X1: float64(px.Max.X), Y1: float64(px.Max.Y),
			})
			img, err := c.Field.Raster(ctx, world, px.Dx(), px.Dy())
			if err != nil {
				return err
			}
			out[i] = &pixelField{img: img, at: px.Min}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// hatchPattern draws one hatch tile at scale k.
func hatchPattern(h styles.Hatch, c colorful.Color, k float64) gg.Pattern {
	size := styles.HatchTile * k
	tile := gg.NewContext(int(math.Round(size)), int(math.Round(size)))
	setColor(tile, c, 1)
	tile.SetLineWidth(k)
	for _, seg := range h.Segments(size) {
		tile.DrawLine(seg.X1, seg.Y1, seg.X2, seg.Y2)
		tile.Stroke()
	}
	radius := h.DotRadius(size)
	for _, d := range h.DotCenters(size) {
		tile.DrawCircle(d[0], d[1], radius)
		tile.Fill()
	}
	return gg.NewSurfacePattern(tile.Image(), gg.RepeatBoth)
}

func tracePath(dc *gg.Context, p curve.BezPath) {
	dc.NewSubPath()
	for _, el := range p {
		switch el.Kind {
		case curve.MoveToKind:
			dc.MoveTo(el.P0.X, el.P0.Y)
		case curve.LineToKind:
			dc.LineTo(el.P0.X, el.P0.Y)
		case curve.QuadToKind:
			dc.QuadraticTo(el.P0.X, el.P0.Y, el.P1.X, el.P1.Y)
		case curve.CubicToKind:
			dc.CubicTo(el.P0.X, el.P0.Y, el.P1.X, el.P1.Y, el.P2.X, el.P2.Y)
		case curve.ClosePathKind:
			dc.ClosePath()
		}
	}
}

func setColor(dc *gg.Context, c colorful.Color, alpha float64) {
	c = c.Clamped()
	dc.SetRGBA(c.R, c.G, c.B, alpha)
}
