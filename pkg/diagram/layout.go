package diagram

import (
	"encoding/json"
	"fmt"
	"os"
)

// =============================================================================
// Layout - Unified Diagram Format
// =============================================================================

// Layout is the unified serialization format for all visualizations.
//
// This is a discriminated union type - check VizType to determine which
// fields are populated:
//
//	Chord ("chord"):
//	  - Arcs: node arcs with their ports
//	  - Chords: chord geometry (port spans, bowing radii, control points)
//	  - Radius, Center, Threshold, ShowDiagonal, Scale: geometry parameters
//
//	Nodelink ("nodelink"):
//	  - DOT: Graphviz DOT string for rendering
//	  - Engine: Graphviz layout engine (e.g., "circo")
//
// Shared fields (both types):
//   - Width, Height: output frame in pixels
//   - Names: node labels in layout order
//   - Matrix: the correlations the layout was computed from
type Layout struct {
	// Discriminator
	VizType string `json:"viz_type"`

	// Common frame and data
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
	Names  []string    `json:"names"`
	Matrix [][]float64 `json:"matrix,omitempty"`

	// Chord-specific
	Radius       float64 `json:"radius,omitempty"`
	Center       Point   `json:"center"`
	Threshold    float64 `json:"threshold,omitempty"`
	ShowDiagonal bool    `json:"show_diagonal,omitempty"`
	Scale        string  `json:"scale,omitempty"`
	Arcs         []Arc   `json:"arcs,omitempty"`
	Chords       []Chord `json:"chords,omitempty"`

	// Nodelink-specific
	DOT    string `json:"dot,omitempty"`
	Engine string `json:"engine,omitempty"`
}

// IsChord returns true if this is a chord layout.
func (l *Layout) IsChord() bool { return l.VizType == VizTypeChord }

// IsNodelink returns true if this is a nodelink layout.
func (l *Layout) IsNodelink() bool { return l.VizType == VizTypeNodelink }

// =============================================================================
// Arc, Port, Chord - Chord Diagram Elements
// =============================================================================

// Arc is a node's angular extent on the circle. Angles are in radians,
// counter-clockwise from the positive x axis.
type Arc struct {
	ID        string  `json:"id"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Relevance float64 `json:"relevance"`
	Ports     []Port  `json:"ports"`
}

// Port is the slice of an arc reserved for one chord endpoint.
// Disabled ports carry zero bounds.
type Port struct {
	Partner string  `json:"partner"`
	Self    bool    `json:"self,omitempty"`
	Rho     float64 `json:"rho"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Enabled bool    `json:"enabled"`
}

// Chord connects a port of From with a port of To.
type Chord struct {
	From        string  `json:"from"`
	To          string  `json:"to"`
	Rho         float64 `json:"rho"`
	Thickness   float64 `json:"thickness"`
	SourceStart float64 `json:"source_start"`
	SourceEnd   float64 `json:"source_end"`
	TargetStart float64 `json:"target_start"`
	TargetEnd   float64 `json:"target_end"`
	Theta       float64 `json:"theta"`
	RadiusAB    float64 `json:"radius_ab"`
	RadiusBA    float64 `json:"radius_ba"`
	Convex      bool    `json:"convex,omitempty"`
	ControlAB   Point   `json:"control_ab"`
	ControlBA   Point   `json:"control_ba"`
	MidControl  Point   `json:"mid_control"`
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates that required fields are present for the viz type.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}

	if l.VizType == "" {
		l.VizType = VizTypeChord
	}

	switch {
	case l.IsChord():
		if len(l.Arcs) != len(l.Names) {
			return Layout{}, fmt.Errorf("chord layout has %d arcs for %d names", len(l.Arcs), len(l.Names))
		}
		if l.Radius <= 0 && len(l.Arcs) > 0 {
			return Layout{}, fmt.Errorf("chord layout must have a positive radius")
		}
	case l.IsNodelink():
		if l.DOT == "" {
			return Layout{}, fmt.Errorf("nodelink layout must contain DOT string")
		}
	default:
		return Layout{}, fmt.Errorf("unknown viz type %q", l.VizType)
	}

	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
