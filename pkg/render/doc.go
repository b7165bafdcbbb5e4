// Package render provides output rendering for correlation diagrams.
//
// # Overview
//
// Two visualizations are supported:
//
//   - Chord diagrams (in the chord subpackages), the main output
//   - Node-link diagrams (in [nodelink]), a Graphviz rendering of the same
//     thresholded matrix
//
// A chord diagram is produced in stages, one package each:
//
//   - [chord/ordering]: arrange variables so correlated ones sit together
//   - [chord/layout]: node arcs, ports and chord geometry
//   - [chord/styles] and [chord/blend]: colors, hatches, gradient fills
//   - [chord/scene]: everything resolved into drawable primitives
//   - [chord/sink]: SVG, PNG, PDF and JSON output
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert SVG to other formats with the external
// rsvg-convert tool (from librsvg). Chord PDFs and node-link PDF/PNG output
// go through them; chord PNGs are rasterized natively.
//
//	svg, err := sink.RenderSVG(ctx, scene)
//	pdf, err := render.ToPDF(ctx, svg)
//
// [chord/ordering]: github.com/matzehuels/chordviz/pkg/render/chord/ordering
// [chord/layout]: github.com/matzehuels/chordviz/pkg/render/chord/layout
// [chord/styles]: github.com/matzehuels/chordviz/pkg/render/chord/styles
// [chord/blend]: github.com/matzehuels/chordviz/pkg/render/chord/blend
// [chord/scene]: github.com/matzehuels/chordviz/pkg/render/chord/scene
// [chord/sink]: github.com/matzehuels/chordviz/pkg/render/chord/sink
// [nodelink]: github.com/matzehuels/chordviz/pkg/render/nodelink
package render
