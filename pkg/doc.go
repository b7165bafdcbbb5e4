// Package pkg provides the core libraries for chordviz correlation diagrams.
//
// # Overview
//
// Chordviz draws a correlation matrix as a chord diagram: every variable is
// an arc on a circle, sized by its total correlation, and every correlation
// above a threshold is a chord between two arcs whose width follows |rho|.
// Negative correlations are hatched. The pkg directory is organized into:
//
//  1. [matrix] and [io] - the correlation matrix and its file formats
//  2. [render] - ordering, layout, styling and output
//  3. [diagram] - serialization of computed layouts
//  4. [pipeline] - orchestration (prepare → layout → render)
//  5. [cache], [observability], [errors] - infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	CSV / TSV / JSON / YAML
//	         ↓
//	    [io] → [matrix] (filter by threshold)
//	         ↓
//	    [render/chord/ordering] (reorder to reduce crossings)
//	         ↓
//	    [render/chord/layout] (arcs, ports, chords)
//	         ↓
//	    [render/chord/scene] → [render/chord/sink]
//	         ↓
//	    SVG/PNG/PDF/JSON output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/chordviz/pkg/io"
//	    "github.com/matzehuels/chordviz/pkg/pipeline"
//	)
//
//	m, _ := io.Import("cor.csv")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(ctx, m, pipeline.DefaultOptions())
//	os.WriteFile("cor.svg", result.Artifacts["svg"], 0o644)
//
// Or step by step:
//
//	m, _ := io.Import("cor.csv")
//	order := ordering.Greedy{}.Order(m)
//	m, _ = m.Permute(order)
//	l, _ := layout.Build(m, layout.DefaultOptions())
//	s, _ := scene.Compose(l, scene.DefaultStyle(), scene.DefaultFrame())
//	svg, _ := sink.RenderSVG(ctx, s)
//
// [matrix]: https://pkg.go.dev/github.com/matzehuels/chordviz/pkg/matrix
// [io]: https://pkg.go.dev/github.com/matzehuels/chordviz/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/chordviz/pkg/render
// [diagram]: https://pkg.go.dev/github.com/matzehuels/chordviz/pkg/diagram
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/chordviz/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/chordviz/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/chordviz/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/chordviz/pkg/errors
// [render/chord/ordering]: https://pkg.go.dev/github.com/matzehuels/chordviz/pkg/render/chord/ordering
// [render/chord/layout]: https://pkg.go.dev/github.com/matzehuels/chordviz/pkg/render/chord/layout
// [render/chord/scene]: https://pkg.go.dev/github.com/matzehuels/chordviz/pkg/render/chord/scene
// [render/chord/sink]: https://pkg.go.dev/github.com/matzehuels/chordviz/pkg/render/chord/sink
package pkg
