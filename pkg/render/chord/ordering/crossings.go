package ordering

import (
	"math"
	"slices"

	"github.com/matzehuels/chordviz/pkg/matrix"
)

// Crossings returns how many pairs of chords intersect inside the circle when
// nodes are placed in the given order. A chord exists for every pair with
// |a_ij| > threshold.
//
// Placing nodes on a circle turns each chord into an interval of positions
// (p, q) with p < q. Two chords (a, b) and (c, d) with a < c cross if and
// only if:
//
//	c < b < d
//
// Chords sharing a node never cross. Counting runs in O(E log V) with a
// Fenwick tree over right endpoints, scanning chords by left endpoint.
func Crossings(m *matrix.Matrix, order []int, threshold float64) int {
	n := len(order)
	if n < 4 {
		return 0
	}

	pos := make([]int, m.Size())
	for p, node := range order {
		pos[node] = p
	}

	type chord struct{ left, right int }
	chords := make([]chord, 0, n)
	for i := 0; i < m.Size(); i++ {
		for j := i + 1; j < m.Size(); j++ {
			if math.Abs(m.At(i, j)) <= threshold {
				continue
			}
			p, q := pos[i], pos[j]
			if p > q {
				p, q = q, p
			}
			chords = append(chords, chord{p, q})
		}
	}
	if len(chords) < 2 {
		return 0
	}

	slices.SortFunc(chords, func(a, b chord) int {
		if a.left != b.left {
			return a.left - b.left
		}
		return a.right - b.right
	})

	fenwick := make([]int, n+1)
	prefix := func(p int) int {
		sum := 0
		for q := p + 1; q > 0; q -= q & (-q) {
			sum += fenwick[q]
		}
		return sum
	}

	crossings := 0
	for g := 0; g < len(chords); {
		// Chords that share a left endpoint are queried before any of them
		// is inserted.
		end := g
		for end < len(chords) && chords[end].left == chords[g].left {
			end++
		}
		for _, c := range chords[g:end] {
			crossings += prefix(c.right-1) - prefix(c.left)
		}
		for _, c := range chords[g:end] {
			for idx := c.right + 1; idx < len(fenwick); idx += idx & (-idx) {
				fenwick[idx]++
			}
		}
		g = end
	}
	return crossings
}
