// Package nodelink renders a correlation matrix as a node-link diagram.
//
// # Overview
//
// This is the alternative to the chord diagram: every variable is a circle,
// every correlation above the threshold an edge, and Graphviz's circo
// engine places the nodes on a ring.
//
// # Usage
//
// Convert the matrix to DOT, then render:
//
//	dot := nodelink.ToDOT(m, nodelink.Options{Threshold: 0.1})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// PDF and PNG go through rsvg-convert:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)
//
// # Edges
//
// Edge pen width is 1 + 4|rho|. Positive correlations are drawn solid blue,
// negative ones dashed red. With Options.Detailed the value is written on
// the edge.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
