package layout

import (
	"math"

	"honnef.co/go/curve"
)

// AngDist returns the angle between two directions, in [0, π].
func AngDist(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 2*math.Pi)
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}

// Polar returns the point at radius r and angle theta around center.
func Polar(center curve.Point, r, theta float64) curve.Point {
	sin, cos := math.Sincos(theta)
	return curve.Pt(center.X+r*cos, center.Y+r*sin)
}

// NormalizeAngle maps theta to [0, 2π).
func NormalizeAngle(theta float64) float64 {
	theta = math.Mod(theta, 2*math.Pi)
	if theta < 0 {
		theta += 2 * math.Pi
	}
	return theta
}
