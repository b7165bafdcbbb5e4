package sink

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"image/png"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
	"honnef.co/go/curve"

	"github.com/matzehuels/chordviz/pkg/fonts"
	"github.com/matzehuels/chordviz/pkg/render/chord/blend"
	"github.com/matzehuels/chordviz/pkg/render/chord/scene"
	"github.com/matzehuels/chordviz/pkg/render/chord/styles"
)

// idSpace namespaces the element ids derived from a scene.
var idSpace = uuid.MustParse("8f3c1d62-5b7e-4a10-9d2c-6e41f0a7b953")

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	precision   int
	embedFont   bool
	transparent bool
}

// WithPrecision sets the number of decimals written for path coordinates
// (default 2).
func WithPrecision(p int) SVGOption { return func(r *svgRenderer) { r.precision = p } }

// WithEmbeddedFont embeds the label font so the SVG renders the same
// everywhere.
func WithEmbeddedFont() SVGOption { return func(r *svgRenderer) { r.embedFont = true } }

// WithTransparent leaves out the white background.
func WithTransparent() SVGOption { return func(r *svgRenderer) { r.transparent = true } }

// RenderSVG writes s as a standalone SVG document. Blended chords are
// embedded as PNG images clipped by the chord outline; they are rasterized
// concurrently and ctx cancels the work.
func RenderSVG(ctx context.Context, s *scene.Scene, opts ...SVGOption) ([]byte, error) {
	r := svgRenderer{precision: 2}
	for _, opt := range opts {
		opt(&r)
	}

	images, err := encodeFields(ctx, s)
	if err != nil {
		return nil, err
	}

	prefix := scenePrefix(s)
	hatches := collectHatches(s)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.Width, s.Height, s.Width, s.Height)

	r.renderDefs(&buf, s, prefix, hatches, images)
	if !r.transparent {
		buf.WriteString(`  <rect width="100%" height="100%" fill="#ffffff"/>` + "\n")
	}

	buf.WriteString(`  <g class="arcs">` + "\n")
	for i, a := range s.Arcs {
		fmt.Fprintf(&buf, `    <path id="arc-%s-%d" data-name="%s" d="%s" fill="%s"/>`+"\n",
			prefix, i, escapeXML(a.Name), r.path(s, a.Path), a.Color.Hex())
	}
	buf.WriteString("  </g>\n")

	if !s.Empty() {
		c := s.ToPixel(s.Disc.Center)
		fmt.Fprintf(&buf, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n",
			c.X, c.Y, s.Disc.Radius*s.Scale, s.Disc.Fill.Hex())
	}

	buf.WriteString(`  <g class="chords">` + "\n")
	for i, c := range s.Chords {
		d := r.path(s, c.Path)
		if img, ok := images[i]; ok {
			box := s.Transform.TransformRectBoundingBox(c.Field.Bounds)
			fmt.Fprintf(&buf, `    <image x="%.2f" y="%.2f" width="%.2f" height="%.2f" preserveAspectRatio="none" clip-path="url(#clip-%s-%d)" xlink:href="data:image/png;base64,%s"/>`+"\n",
				box.X0, box.Y0, box.Width(), box.Height(), prefix, i, img)
		}
		fill, opacity := "none", ""
		if c.Filled {
			fill = c.Fill.Hex()
			opacity = fmt.Sprintf(` opacity="%.3g"`, c.Alpha)
		}
		fmt.Fprintf(&buf, `    <path class="chord" data-source="%s" data-target="%s" d="%s" fill="%s" stroke="%s" stroke-width="%.2f"%s/>`+"\n",
			escapeXML(c.Source), escapeXML(c.Target), d, fill, c.Edge.Hex(), c.LineWidth, opacity)
		if !c.Hatch.IsZero() {
			fmt.Fprintf(&buf, `    <path d="%s" fill="url(#%s)" stroke="none"/>`+"\n",
				d, hatches.id(prefix, c.Hatch, c.Edge))
		}
	}
	buf.WriteString("  </g>\n")

	if len(s.Labels) > 0 {
		fmt.Fprintf(&buf, `  <g class="labels" font-family="%s" text-anchor="middle" dominant-baseline="central">`+"\n",
			escapeXML(fonts.FallbackFontFamily))
		for _, l := range s.Labels {
			p := s.ToPixel(l.Pos)
			fmt.Fprintf(&buf, `    <text x="%.2f" y="%.2f" font-size="%.1f" fill="%s" transform="rotate(%.2f %.2f %.2f)">%s</text>`+"\n",
				p.X, p.Y, l.FontSize, l.Color.Hex(), -l.Rotation, p.X, p.Y, escapeXML(l.Text))
		}
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func (r *svgRenderer) path(s *scene.Scene, p curve.BezPath) string {
	return s.PixelPath(p).SVG(curve.SVGOptions{MaxPrecision: r.precision})
}

func (r *svgRenderer) renderDefs(buf *bytes.Buffer, s *scene.Scene, prefix string, hatches *hatchSet, images map[int]string) {
	if !r.embedFont && len(hatches.keys) == 0 && len(images) == 0 {
		return
	}
	buf.WriteString("  <defs>\n")
	if r.embedFont {
		fmt.Fprintf(buf, "    <style>@font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }</style>\n",
			fonts.FontFamily, fonts.GoRegularBase64())
	}
	for k, key := range hatches.keys {
		renderPattern(buf, fmt.Sprintf("hatch-%s-%d", prefix, k), key.hatch, key.color)
	}
	for i, c := range s.Chords {
		if _, ok := images[i]; !ok {
			continue
		}
		fmt.Fprintf(buf, `    <clipPath id="clip-%s-%d"><path d="%s"/></clipPath>`+"\n", prefix, i, r.path(s, c.Path))
	}
	buf.WriteString("  </defs>\n")
}

func renderPattern(buf *bytes.Buffer, id string, h styles.Hatch, c colorful.Color) {
	size := styles.HatchTile
	fmt.Fprintf(buf, `    <pattern id="%s" patternUnits="userSpaceOnUse" width="%.0f" height="%.0f">`+"\n", id, size, size)
	for _, seg := range h.Segments(size) {
		fmt.Fprintf(buf, `      <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1"/>`+"\n",
			seg.X1, seg.Y1, seg.X2, seg.Y2, c.Hex())
	}
	radius := h.DotRadius(size)
	for _, d := range h.DotCenters(size) {
		fmt.Fprintf(buf, `      <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n", d[0], d[1], radius, c.Hex())
	}
	buf.WriteString("    </pattern>\n")
}

// encodeFields rasterizes every blended chord and returns the base64 PNGs
// keyed by chord index.
func encodeFields(ctx context.Context, s *scene.Scene) (map[int]string, error) {
	imgs, err := blend.RasterizeAll(ctx, s.Fields(), s.BlendResolution)
	if err != nil {
		return nil, err
	}

	images := make(map[int]string, len(imgs))
	k := 0
	for i, c := range s.Chords {
		if c.Field == nil {
			continue
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, imgs[k]); err != nil {
			return nil, err
		}
		images[i] = base64.StdEncoding.EncodeToString(buf.Bytes())
		k++
	}
	return images, nil
}

// scenePrefix derives a short id prefix from the scene content, so that the
// same diagram always gets the same ids and two diagrams inlined into one
// page do not collide.
func scenePrefix(s *scene.Scene) string {
	var key bytes.Buffer
	fmt.Fprintf(&key, "%.0fx%.0f", s.Width, s.Height)
	for _, a := range s.Arcs {
		fmt.Fprintf(&key, "|%s:%.6f:%.6f", a.Name, a.Shape.StartAngle, a.Shape.SweepAngle)
	}
	for _, c := range s.Chords {
		fmt.Fprintf(&key, "|%s-%s:%.6f", c.Source, c.Target, c.Rho)
	}
	return uuid.NewSHA1(idSpace, key.Bytes()).String()[:8]
}

type hatchKey struct {
	hatch styles.Hatch
	color colorful.Color
}

// hatchSet numbers the distinct hatch and color combinations of a scene.
type hatchSet struct {
	keys []hatchKey
}

func collectHatches(s *scene.Scene) *hatchSet {
	h := &hatchSet{}
	for _, c := range s.Chords {
		if c.Hatch.IsZero() {
			continue
		}
		if h.index(c.Hatch, c.Edge) < 0 {
			h.keys = append(h.keys, hatchKey{c.Hatch, c.Edge})
		}
	}
	return h
}

func (h *hatchSet) index(hatch styles.Hatch, c colorful.Color) int {
	for i, k := range h.keys {
		if k.hatch == hatch && k.color.Hex() == c.Hex() {
			return i
		}
	}
	return -1
}

func (h *hatchSet) id(prefix string, hatch styles.Hatch, c colorful.Color) string {
	return fmt.Sprintf("hatch-%s-%d", prefix, h.index(hatch, c))
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
