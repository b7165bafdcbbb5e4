// Package sink provides output format renderers for chord diagrams.
//
// # Overview
//
// A "sink" transforms a composed [scene.Scene] into a final output format:
//
//   - SVG: vector output with embedded gradient images
//   - PNG: native raster output, no external tools needed
//   - PDF: print-ready output (requires rsvg-convert)
//   - JSON: the layout in the [diagram.Layout] format
//
// # SVG Output
//
// [RenderSVG] writes arcs, the base disc, chords and labels in that order.
// Each blended chord becomes an <image> holding its color field as a PNG,
// clipped to the chord outline; hatches are SVG patterns. Element ids carry
// a prefix derived from the scene content, so rendering the same diagram
// twice yields identical bytes.
//
//	svg, err := sink.RenderSVG(ctx, sc, sink.WithEmbeddedFont())
//
// # PNG Output
//
// [RenderPNG] draws the scene with fogleman/gg. Color fields are sampled on
// the output pixel grid rather than scaled from a fixed-size image.
//
//	png, err := sink.RenderPNG(ctx, sc, sink.WithScale(2))
//
// # JSON Output
//
// [RenderJSON] exports the layout rather than the scene: colors and pixel
// sizes are presentation, the layout is what other tools consume.
package sink
