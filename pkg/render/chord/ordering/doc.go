// Package ordering arranges chord diagram nodes around the circle.
//
// Node order decides how far apart correlated nodes sit and therefore how
// many chords cross. [Greedy] places strongly correlated nodes next to each
// other with a nearest-neighbour expansion in the style of Prim's algorithm;
// [Identity] keeps the matrix order.
//
// # Choosing an Orderer
//
//	o, err := ordering.New("greedy")
//	order := o.Order(m)
//	m, err = m.Permute(order)
//
// [Crossings] scores any order by counting crossing chord pairs, which is
// what the CLI reports after layout.
package ordering
