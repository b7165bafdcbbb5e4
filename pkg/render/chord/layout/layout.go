package layout

import (
	"math"

	"honnef.co/go/curve"

	"github.com/matzehuels/chordviz/pkg/errors"
	"github.com/matzehuels/chordviz/pkg/matrix"
)

// Node is one matrix row placed on the circle.
type Node struct {
	Index     int
	Name      string
	Relevance float64
	Start     float64 // radians, after gap correction
	End       float64
	Mid       float64
	Span      float64 // End - Start
	Ports     []Port  // n+1 entries, see PortIndex
}

// Port is the part of a node's arc reserved for one chord endpoint.
type Port struct {
	Partner int  // node at the other end; the owner itself for self ports
	Self    bool // one of the two diagonal ports
	Rho     float64
	Start   float64 // zero when disabled
	End     float64 // zero when disabled
	Enabled bool
}

// Span returns the angular width of the port.
func (p Port) Span() float64 { return p.End - p.Start }

// Mid returns the angular center of the port.
func (p Port) Mid() float64 { return (p.Start + p.End) / 2 }

// PortIndex returns the position of partner's port in the port list of node
// owner. The owner's own index maps to the first self port; the second self
// port sits right after it.
func PortIndex(owner, partner int) int {
	if partner <= owner {
		return partner
	}
	return partner + 1
}

// PortTo returns the port linking n to partner.
func (n Node) PortTo(partner int) Port {
	return n.Ports[PortIndex(n.Index, partner)]
}

// SelfPorts returns the two diagonal ports of n.
func (n Node) SelfPorts() (Port, Port) {
	return n.Ports[n.Index], n.Ports[n.Index+1]
}

// Layout is the complete geometry of one chord diagram.
type Layout struct {
	Options Options
	Matrix  *matrix.Matrix // nil for layouts parsed without matrix data
	Nodes   []Node
	Chords  []Chord
}

// Build lays out m on a circle. m is used as given: filter and reorder it
// beforehand.
func Build(m *matrix.Matrix, opts Options) (*Layout, error) {
	if m == nil || m.Size() == 0 {
		return nil, errors.New(errors.ErrCodeEmptyMatrix, "cannot lay out an empty matrix")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	l := &Layout{Options: opts, Matrix: m}
	l.Nodes = buildNodes(m, opts)
	l.Chords = buildChords(l.Nodes, opts)
	return l, nil
}

func buildNodes(m *matrix.Matrix, opts Options) []Node {
	n := m.Size()
	relevance := make([]float64, n)
	var total float64
	for i := range relevance {
		relevance[i] = m.Relevance(i)
		total += relevance[i]
	}

	gap := 2 * math.Pi / float64(n) * opts.NodeGap
	nodes := make([]Node, n)
	var cursor float64
	for i := range nodes {
		share := 1 / float64(n)
		if total > 0 {
			share = relevance[i] / total
		}
		start := cursor
		end := start + 2*math.Pi*share
		cursor = end
		start += math.Min(gap, end-start)

		nodes[i] = Node{
			Index:     i,
			Name:      m.Name(i),
			Relevance: relevance[i],
			Start:     start,
			End:       end,
			Mid:       (start + end) / 2,
			Span:      end - start,
		}
		nodes[i].Ports = buildPorts(m, nodes[i], opts)
	}
	return nodes
}

func buildPorts(m *matrix.Matrix, node Node, opts Options) []Port {
	n, i := m.Size(), node.Index
	ports := make([]Port, n+1)

	var sum float64
	for k := range ports {
		var p Port
		switch {
		case k < i:
			p = Port{Partner: k, Rho: m.At(i, k)}
		case k == i || k == i+1:
			p = Port{Partner: i, Self: true, Rho: m.At(i, i)}
		default:
			p = Port{Partner: k - 1, Rho: m.At(i, k-1)}
		}
		p.Enabled = math.Abs(p.Rho) > opts.Threshold && (!p.Self || opts.ShowDiagonal)
		if p.Enabled {
			sum += math.Abs(p.Rho)
		}
		ports[k] = p
	}

	cursor := node.Start
	for k := range ports {
		if !ports[k].Enabled {
			continue
		}
		size := node.Span * math.Abs(ports[k].Rho) / sum
		ports[k].Start = cursor
		ports[k].End = cursor + size
		cursor += size
	}
	return ports
}

func buildChords(nodes []Node, opts Options) []Chord {
	var chords []Chord
	for n := range nodes {
		node := nodes[n]
		if opts.ShowDiagonal {
			a, b := node.SelfPorts()
			if a.Enabled && b.Enabled {
				chords = append(chords, newChord(n, n, a.Rho, opts.ScaleRho(1), a, b, opts))
			}
		}
		for m := n + 1; m < len(nodes); m++ {
			source := node.PortTo(m)
			if !source.Enabled {
				continue
			}
			target := nodes[m].PortTo(n)
			chords = append(chords, newChord(n, m, source.Rho, opts.ScaleRho(source.Rho), source, target, opts))
		}
	}
	return chords
}

// Bounds returns the world rectangle a diagram is drawn in: the circle
// plus half a radius of margin for labels.
func (l *Layout) Bounds() curve.Rect {
	r := 1.5 * l.Options.Radius
	c := l.Options.Center
	return curve.Rect{X0: c.X - r, Y0: c.Y - r, X1: c.X + r, Y1: c.Y + r}
}

// Names returns the node labels in layout order.
func (l *Layout) Names() []string {
	names := make([]string, len(l.Nodes))
	for i, n := range l.Nodes {
		names[i] = n.Name
	}
	return names
}

// ArcShape returns the annular segment drawn for node n: a band width world
// units wide centered on the circle.
func (l *Layout) ArcShape(n Node, width float64) curve.CircleSegment {
	return curve.CircleSegment{
		Center:      l.Options.Center,
		OuterRadius: l.Options.Radius + width/2,
		InnerRadius: l.Options.Radius - width/2,
		StartAngle:  n.Start,
		SweepAngle:  n.Span,
	}
}
