package layout

import (
	"fmt"

	"honnef.co/go/curve"

	"github.com/matzehuels/chordviz/pkg/diagram"
	"github.com/matzehuels/chordviz/pkg/matrix"
)

// Export converts the layout to the serialization format.
//
// Use this when you need to serialize the layout for:
//   - JSON file output (via diagram.WriteLayoutFile)
//   - API responses
//   - Caching
//
// width and height are the pixel frame the layout is meant to be rendered in.
func (l *Layout) Export(width, height float64) diagram.Layout {
	names := l.Names()
	out := diagram.Layout{
		VizType:      diagram.VizTypeChord,
		Width:        width,
		Height:       height,
		Names:        names,
		Radius:       l.Options.Radius,
		Center:       exportPoint(l.Options.Center),
		Threshold:    l.Options.Threshold,
		ShowDiagonal: l.Options.ShowDiagonal,
		Scale:        l.Options.Scale,
		Arcs:         make([]diagram.Arc, len(l.Nodes)),
		Chords:       make([]diagram.Chord, len(l.Chords)),
	}
	if l.Matrix != nil {
		out.Matrix = l.Matrix.Values()
	}

	for i, n := range l.Nodes {
		arc := diagram.Arc{
			ID:        n.Name,
			Start:     n.Start,
			End:       n.End,
			Relevance: n.Relevance,
			Ports:     make([]diagram.Port, len(n.Ports)),
		}
		for k, p := range n.Ports {
			arc.Ports[k] = diagram.Port{
				Partner: names[p.Partner],
				Self:    p.Self,
				Rho:     p.Rho,
				Start:   p.Start,
				End:     p.End,
				Enabled: p.Enabled,
			}
		}
		out.Arcs[i] = arc
	}

	for i, c := range l.Chords {
		out.Chords[i] = diagram.Chord{
			From:        names[c.Source],
			To:          names[c.Target],
			Rho:         c.Rho,
			Thickness:   c.Thickness,
			SourceStart: c.SourceStart,
			SourceEnd:   c.SourceEnd,
			TargetStart: c.TargetStart,
			TargetEnd:   c.TargetEnd,
			Theta:       c.Theta,
			RadiusAB:    c.RadiusAB,
			RadiusBA:    c.RadiusBA,
			Convex:      c.Convex,
			ControlAB:   exportPoint(c.ControlAB),
			ControlBA:   exportPoint(c.ControlBA),
			MidControl:  exportPoint(c.MidControl),
		}
	}
	return out
}

// Parse converts a serialized layout back into chord geometry.
//
// Use this when you need to render from a previously serialized layout:
//   - Loading from JSON file (via diagram.ReadLayoutFile)
//   - Receiving from the API or the cache
//
// Geometry is taken as stored; nothing is recomputed. Options that are not
// serialized keep their defaults.
func Parse(d diagram.Layout) (*Layout, error) {
	if d.VizType != "" && d.VizType != diagram.VizTypeChord {
		return nil, fmt.Errorf("invalid viz_type for chord layout: %q", d.VizType)
	}

	opts := DefaultOptions()
	opts.Radius = d.Radius
	opts.Center = curve.Pt(d.Center.X, d.Center.Y)
	opts.Threshold = d.Threshold
	opts.ShowDiagonal = d.ShowDiagonal
	if d.Scale != "" {
		opts.Scale = d.Scale
	}

	index := make(map[string]int, len(d.Names))
	for i, name := range d.Names {
		index[name] = i
	}
	lookup := func(name string) (int, error) {
		i, ok := index[name]
		if !ok {
			return 0, fmt.Errorf("unknown node %q", name)
		}
		return i, nil
	}

	l := &Layout{Options: opts, Nodes: make([]Node, len(d.Arcs)), Chords: make([]Chord, len(d.Chords))}
	if len(d.Matrix) > 0 {
		m, err := matrix.New(d.Names, d.Matrix)
		if err != nil {
			return nil, fmt.Errorf("layout matrix: %w", err)
		}
		l.Matrix = m
	}

	for i, a := range d.Arcs {
		n := Node{
			Index:     i,
			Name:      a.ID,
			Relevance: a.Relevance,
			Start:     a.Start,
			End:       a.End,
			Mid:       (a.Start + a.End) / 2,
			Span:      a.End - a.Start,
			Ports:     make([]Port, len(a.Ports)),
		}
		for k, p := range a.Ports {
			partner, err := lookup(p.Partner)
			if err != nil {
				return nil, fmt.Errorf("arc %q: %w", a.ID, err)
			}
			n.Ports[k] = Port{Partner: partner, Self: p.Self, Rho: p.Rho, Start: p.Start, End: p.End, Enabled: p.Enabled}
		}
		l.Nodes[i] = n
	}

	for i, c := range d.Chords {
		source, err := lookup(c.From)
		if err != nil {
			return nil, fmt.Errorf("chord %d: %w", i, err)
		}
		target, err := lookup(c.To)
		if err != nil {
			return nil, fmt.Errorf("chord %d: %w", i, err)
		}
		l.Chords[i] = Chord{
			Source:      source,
			Target:      target,
			Rho:         c.Rho,
			Thickness:   c.Thickness,
			SourceStart: c.SourceStart,
			SourceEnd:   c.SourceEnd,
			TargetStart: c.TargetStart,
			TargetEnd:   c.TargetEnd,
			Theta:       c.Theta,
			RadiusAB:    c.RadiusAB,
			RadiusBA:    c.RadiusBA,
			Convex:      c.Convex,
			ControlAB:   curve.Pt(c.ControlAB.X, c.ControlAB.Y),
			ControlBA:   curve.Pt(c.ControlBA.X, c.ControlBA.Y),
			MidControl:  curve.Pt(c.MidControl.X, c.MidControl.Y),
		}
	}
	return l, nil
}

func exportPoint(p curve.Point) diagram.Point {
	return diagram.Point{X: p.X, Y: p.Y}
}
