package layout

import (
	"math"

	"honnef.co/go/curve"
)

// Chord is the band connecting the ports of two nodes.
//
// The outline runs counter-clockwise along the source port, follows a
// quadratic Bézier to the start of the target port, runs along the target
// port and returns to the source with a second Bézier. Both Béziers pass
// through the polar point (RadiusAB or RadiusBA, Theta) at t = 0.5.
type Chord struct {
	Source, Target int // node indexes, Source <= Target
	Rho            float64
	Thickness      float64 // scaled |rho|, in radii

	SourceStart, SourceEnd float64
	TargetStart, TargetEnd float64

	Theta    float64 // angle of the apex
	RadiusAB float64 // apex radius of the source-to-target Bézier
	RadiusBA float64 // apex radius of the target-to-source Bézier
	Convex   bool

	ControlAB  curve.Point
	ControlBA  curve.Point
	MidControl curve.Point // control of the curve halfway between the two edges
}

// Self reports whether the chord is a diagonal chord.
func (c Chord) Self() bool { return c.Source == c.Target }

// Negative reports whether the chord encodes a negative correlation.
func (c Chord) Negative() bool { return c.Rho < 0 }

func newChord(source, target int, rho, thickness float64, alpha, beta Port, opts Options) Chord {
	R, center := opts.Radius, opts.Center
	alphaM := (alpha.Start + alpha.End) / 2
	betaM := (beta.Start + beta.End) / 2

	r := opts.RadiusRule(AngDist(alphaM, betaM)) * R
	inner := AngDist(alpha.Start, beta.End)
	outer := AngDist(alpha.End, beta.Start)
	gap := math.Min(inner, outer)

	c := Chord{
		Source:      source,
		Target:      target,
		Rho:         rho,
		Thickness:   thickness,
		SourceStart: alpha.Start,
		SourceEnd:   alpha.End,
		TargetStart: beta.Start,
		TargetEnd:   beta.End,
		Convex:      inner < outer,
	}
	if c.Convex {
		c.Theta = beta.End + gap/2
		c.RadiusAB = r
		c.RadiusBA = r + thickness*R
	} else {
		c.Theta = alpha.End + gap/2
		c.RadiusAB = r + thickness*R
		c.RadiusBA = r
	}

	aStart, aEnd := Polar(center, R, alpha.Start), Polar(center, R, alpha.End)
	bStart, bEnd := Polar(center, R, beta.Start), Polar(center, R, beta.End)
	c.ControlAB = through(Polar(center, c.RadiusAB, c.Theta), aEnd, bStart)
	c.ControlBA = through(Polar(center, c.RadiusBA, c.Theta), bEnd, aStart)
	c.MidControl = through(Polar(center, (c.RadiusAB+c.RadiusBA)/2, c.Theta), aEnd, bStart)
	return c
}

// through returns the control point of the quadratic Bézier from p0 to p2
// that passes through p at t = 0.5.
func through(p, p0, p2 curve.Point) curve.Point {
	return curve.Pt(2*p.X-(p0.X+p2.X)/2, 2*p.Y-(p0.Y+p2.Y)/2)
}

// Tolerance returns the flattening tolerance used for arcs, relative to the
// circle radius.
func (l *Layout) Tolerance() float64 { return 1e-3 * l.Options.Radius }

// Outline returns the closed path of c.
func (l *Layout) Outline(c Chord) curve.BezPath {
	R, center := l.Options.Radius, l.Options.Center
	aStart := Polar(center, R, c.SourceStart)
	bStart := Polar(center, R, c.TargetStart)

	var p curve.BezPath
	p.MoveTo(aStart)
	appendArc(&p, center, R, c.SourceStart, c.SourceEnd-c.SourceStart, l.Tolerance())
	p.QuadTo(c.ControlAB, bStart)
	appendArc(&p, center, R, c.TargetStart, c.TargetEnd-c.TargetStart, l.Tolerance())
	p.QuadTo(c.ControlBA, aStart)
	p.ClosePath()
	return p
}

// MidCurve returns the Bézier running through the middle of the band, from
// the end of the source port to the start of the target port.
func (l *Layout) MidCurve(c Chord) curve.QuadBez {
	R, center := l.Options.Radius, l.Options.Center
	return curve.QuadBez{
		P0: Polar(center, R, c.SourceEnd),
		P1: c.MidControl,
		P2: Polar(center, R, c.TargetStart),
	}
}

// appendArc continues p along a circular arc. The arc's own MoveTo is
// dropped since p already sits at its start.
func appendArc(p *curve.BezPath, center curve.Point, r, start, sweep, tolerance float64) {
	if sweep == 0 {
		return
	}
	arc := curve.Arc{
		Center:     center,
		Radii:      curve.Vec(r, r),
		StartAngle: start,
		SweepAngle: sweep,
	}
	first := true
	for el := range arc.PathElements(tolerance) {
		if first {
			first = false
			continue
		}
		p.Push(el)
	}
}
