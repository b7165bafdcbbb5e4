package layout

import (
	"math"

	"honnef.co/go/curve"

	"github.com/matzehuels/chordviz/pkg/diagram"
	"github.com/matzehuels/chordviz/pkg/errors"
)

// Default geometry parameters.
const (
	DefaultRadius       = 1.0
	DefaultNodeGap      = 0.1
	DefaultThreshold    = 0.1
	DefaultMinDist      = 15 * math.Pi / 180
	DefaultMaxRho       = 0.4
	DefaultMaxRhoRadius = 0.7
)

// Options control the geometry of a chord layout.
type Options struct {
	Radius       float64     // circle radius in world units
	Center       curve.Point // circle center
	NodeGap      float64     // fraction of 2π/n left empty before each node
	Threshold    float64     // links with |rho| <= Threshold are not drawn
	ShowDiagonal bool        // draw a self chord per node
	MinDist      float64     // radians; pairs closer than this bow the most
	Scale        string      // diagram.ScaleLinear or diagram.ScaleLog
	MaxRho       float64     // chord thickness for |rho| = 1, in radii
	MaxRhoRadius float64     // deepest bowing radius, in radii
}

// DefaultOptions returns the standard chord geometry.
func DefaultOptions() Options {
	return Options{
		Radius:       DefaultRadius,
		NodeGap:      DefaultNodeGap,
		Threshold:    DefaultThreshold,
		MinDist:      DefaultMinDist,
		Scale:        diagram.ScaleLinear,
		MaxRho:       DefaultMaxRho,
		MaxRhoRadius: DefaultMaxRhoRadius,
	}
}

// Validate reports the first invalid field.
func (o Options) Validate() error {
	switch {
	case !(o.Radius > 0) || math.IsInf(o.Radius, 0):
		return errors.New(errors.ErrCodeInvalidOption, "radius must be positive, got %g", o.Radius)
	case o.NodeGap < 0 || o.NodeGap >= 1:
		return errors.New(errors.ErrCodeInvalidOption, "node gap must be in [0, 1), got %g", o.NodeGap)
	case o.Threshold < 0 || math.IsNaN(o.Threshold):
		return errors.New(errors.ErrCodeInvalidOption, "threshold must not be negative, got %g", o.Threshold)
	case o.MinDist < 0 || o.MinDist >= math.Pi:
		return errors.New(errors.ErrCodeInvalidOption, "min distance must be in [0, π), got %g", o.MinDist)
	case o.Scale != diagram.ScaleLinear && o.Scale != diagram.ScaleLog:
		return errors.New(errors.ErrCodeInvalidOption, "unknown scale %q", o.Scale)
	case o.MaxRho <= 0 || o.MaxRho > 1:
		return errors.New(errors.ErrCodeInvalidOption, "max rho must be in (0, 1], got %g", o.MaxRho)
	case o.MaxRhoRadius <= 0 || o.MaxRhoRadius > 1:
		return errors.New(errors.ErrCodeInvalidOption, "max rho radius must be in (0, 1], got %g", o.MaxRhoRadius)
	}
	return nil
}

// RadiusRule returns the bowing radius, in radii, of a chord whose port
// midpoints are dist radians apart.
func (o Options) RadiusRule(dist float64) float64 {
	if dist <= o.MinDist {
		return o.MaxRhoRadius
	}
	return o.MaxRhoRadius * (1 - (dist-o.MinDist)/(math.Pi-o.MinDist))
}

// ScaleRho maps a correlation to a chord thickness in radii, clipped to
// [0, 1].
func (o Options) ScaleRho(rho float64) float64 {
	a := math.Abs(rho)
	var v float64
	if o.Scale == diagram.ScaleLog {
		v = (1 - math.Log10(10-9*math.Min(a, 1))) * o.MaxRho
	} else {
		v = a * o.MaxRho
	}
	return math.Max(0, math.Min(1, v))
}
