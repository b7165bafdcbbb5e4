// Package layout computes chord diagram geometry from a correlation matrix.
//
// [Build] turns a (filtered and ordered) [matrix.Matrix] into three kinds of
// elements:
//
//   - [Node]: an arc on the circle sized by the row's relevance, the sum of
//     its absolute off-diagonal correlations
//   - [Port]: one slice of a node's arc per partner, sized by |rho|
//   - [Chord]: a closed band between two ports made of the two port arcs and
//     two quadratic Béziers
//
// # Node Arcs
//
// Node i covers 2π·relevance_i/Σrelevance of the circle, starting where node
// i-1 ended. The start of every arc is then pushed forward by a gap of
// (2π/n)·NodeGap, never past the arc's end.
//
// # Ports
//
// Each node has n+1 ports: one per partner plus two self ports that only
// carry the optional diagonal chord. Ports with |rho| <= Threshold are
// disabled and get zero bounds; the enabled ones split the arc in proportion
// to |rho|, in partner order.
//
// # Chords
//
// How far a chord bows toward the center depends on the angular distance d
// between the midpoints of its two ports:
//
//	r(d) = MaxRhoRadius                                         if d <= MinDist
//	r(d) = MaxRhoRadius · (1 - (d - MinDist) / (π - MinDist))   otherwise
//
// Closer pairs bow further inward. The band is thickness·Radius wide at its
// apex, where thickness is |rho| mapped through the linear or logarithmic
// scale and multiplied by MaxRho.
//
// Coordinates are y-up with angles in radians, counter-clockwise from +x.
package layout
