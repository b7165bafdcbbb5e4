package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/chordviz/pkg/errors"
	"github.com/matzehuels/chordviz/pkg/matrix"
	"github.com/matzehuels/chordviz/pkg/render"
	"github.com/matzehuels/chordviz/pkg/render/chord/styles"
)

// Engine is the Graphviz layout used for correlation graphs.
const Engine = "circo"

// Edge colors by sign.
const (
	PositiveColor = "#1f77b4"
	NegativeColor = "#d62728"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Threshold hides edges with |rho| below it.
	Threshold float64
	// Detailed writes the correlation on every edge.
	Detailed bool
	// Colors fills the nodes, cycled; the chord palette when empty.
	Colors []colorful.Color
}

// ToDOT converts the matrix to an undirected Graphviz graph: one node per
// variable, one edge per pair with |rho| >= Threshold. Edge width grows with
// |rho|; negative correlations are red and dashed. A nil m gives an empty
// graph.
func ToDOT(m *matrix.Matrix, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	fmt.Fprintf(&buf, "  layout=%s;\n", Engine)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fontsize=14, fixedsize=false, margin=\"0.05,0.05\"];\n")
	buf.WriteString("  mindist=0.5;\n")
	buf.WriteString("\n")

	if m == nil {
		buf.WriteString("}\n")
		return buf.String()
	}

	colors := styles.NodeColors(m.Size(), opts.Colors)
	for i, name := range m.Names() {
		fmt.Fprintf(&buf, "  %q [%s];\n", name, strings.Join(fmtNodeAttrs(name, colors[i]), ", "))
	}

	buf.WriteString("\n")
	for _, p := range m.Pairs(opts.Threshold) {
		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", p.A, p.B, strings.Join(fmtEdgeAttrs(p.Value, opts.Detailed), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtNodeAttrs(name string, c colorful.Color) []string {
	return []string{
		fmt.Sprintf("label=%q", name),
		fmt.Sprintf("fillcolor=%q", c.Hex()),
	}
}

func fmtEdgeAttrs(rho float64, detailed bool) []string {
	color := PositiveColor
	if rho < 0 {
		color = NegativeColor
	}
	attrs := []string{
		fmt.Sprintf("color=%q", color),
		fmt.Sprintf("penwidth=%.2f", 1+4*math.Abs(rho)),
	}
	if rho < 0 {
		attrs = append(attrs, `style="dashed"`)
	}
	if detailed {
		attrs = append(attrs, fmt.Sprintf("label=\"%.2f\"", rho))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.CIRCO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
