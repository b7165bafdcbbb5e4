package pipeline

import (
	"github.com/matzehuels/chordviz/pkg/diagram"
	"github.com/matzehuels/chordviz/pkg/render/chord/layout"
	"github.com/matzehuels/chordviz/pkg/render/nodelink"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout generates a serializable layout for any visualization type.
// opts.Colors must already be in layout order (see [Runner.Execute]).
//
// An empty p gives a valid layout without nodes.
func GenerateLayout(p Prepared, opts Options) (diagram.Layout, error) {
	if opts.IsNodelink() {
		return generateNodelinkLayout(p, opts)
	}
	return generateChordLayout(p, opts)
}

// generateChordLayout computes arcs, ports and chords.
func generateChordLayout(p Prepared, opts Options) (diagram.Layout, error) {
	lopts := opts.LayoutOptions()
	if p.Empty() {
		if err := lopts.Validate(); err != nil {
			return diagram.Layout{}, err
		}
		empty := &layout.Layout{Options: lopts}
		return empty.Export(opts.Width, opts.Height), nil
	}

	l, err := layout.Build(p.Matrix, lopts)
	if err != nil {
		return diagram.Layout{}, err
	}
	return l.Export(opts.Width, opts.Height), nil
}

// generateNodelinkLayout packages the Graphviz source of the thresholded
// matrix. Node positions are left to Graphviz at render time.
func generateNodelinkLayout(p Prepared, opts Options) (diagram.Layout, error) {
	style, err := opts.Style()
	if err != nil {
		return diagram.Layout{}, err
	}
	dot := nodelink.ToDOT(p.Matrix, nodelink.Options{
		Threshold: opts.Threshold,
		Detailed:  opts.Detailed,
		Colors:    style.Colors,
	})
	return nodelink.Export(dot, p.Matrix, opts.Width, opts.Height), nil
}
