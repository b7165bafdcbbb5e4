// Package diagram provides the serialization format for diagram layouts.
//
// This package defines the canonical wire format for chordviz layouts, used
// for JSON files, API responses, caching and re-rendering without
// recomputing geometry.
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external formats:
//
//   - [Layout]: Serialization type (this package)
//   - pkg/render/chord/layout.Layout: Internal chord geometry
//   - pkg/render/nodelink: DOT output for the node-link view
//
// Use layout.Export and layout.Parse to convert between them.
//
// # Constants
//
//	diagram.VizTypeChord     // "chord"
//	diagram.VizTypeNodelink  // "nodelink"
//	diagram.ScaleLinear      // "linear"
//	diagram.ScaleLog         // "log"
//
// # Layout Serialization
//
// Layouts are discriminated by VizType:
//
//	l, _ := diagram.ReadLayoutFile("layout.json")
//	if l.IsChord() {
//	    // Use l.Arcs and l.Chords
//	} else {
//	    // Use l.DOT for Graphviz rendering
//	}
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package diagram
