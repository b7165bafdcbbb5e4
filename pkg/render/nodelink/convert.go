package nodelink

import (
	"github.com/matzehuels/chordviz/pkg/diagram"
	"github.com/matzehuels/chordviz/pkg/errors"
	"github.com/matzehuels/chordviz/pkg/matrix"
)

// Export creates a serializable nodelink layout from a DOT string.
//
// Unlike chord layouts, nodelink layouts don't compute positions
// internally; Graphviz does that during rendering. This packages the DOT
// string and the matrix into the unified serialization format.
func Export(dot string, m *matrix.Matrix, width, height float64) diagram.Layout {
	out := diagram.Layout{
		VizType: diagram.VizTypeNodelink,
		DOT:     dot,
		Width:   width,
		Height:  height,
		Engine:  Engine,
	}
	if m != nil {
		out.Names = m.Names()
		out.Matrix = m.Values()
	}
	return out
}

// Parse extracts the DOT string from a serialized nodelink layout.
func Parse(l diagram.Layout) (string, error) {
	if l.VizType != "" && l.VizType != diagram.VizTypeNodelink {
		return "", errors.New(errors.ErrCodeInvalidVizType, "invalid viz_type for nodelink layout: %q", l.VizType)
	}
	if l.DOT == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "nodelink layout must contain DOT string")
	}
	return l.DOT, nil
}
