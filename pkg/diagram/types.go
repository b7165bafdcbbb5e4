package diagram

// Visualization types.
const (
	VizTypeChord    = "chord"
	VizTypeNodelink = "nodelink"
)

// Thickness scales for chords.
const (
	ScaleLinear = "linear"
	ScaleLog    = "log"
)

// VizTypes lists the supported visualization types.
var VizTypes = []string{VizTypeChord, VizTypeNodelink}

// Scales lists the supported thickness scales.
var Scales = []string{ScaleLinear, ScaleLog}

// Point is a position in diagram coordinates (y up).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
