package sink

import (
	"github.com/matzehuels/chordviz/pkg/diagram"
	"github.com/matzehuels/chordviz/pkg/render/chord/layout"
	"github.com/matzehuels/chordviz/pkg/render/chord/scene"
)

// RenderJSON serializes the layout behind a diagram in the
// [diagram.Layout] format, for the given frame.
func RenderJSON(l *layout.Layout, frame scene.Frame) ([]byte, error) {
	return diagram.MarshalLayout(l.Export(frame.Width, frame.Height))
}
