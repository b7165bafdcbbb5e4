package ordering

import (
	"math"

	"github.com/matzehuels/chordviz/pkg/errors"
	"github.com/matzehuels/chordviz/pkg/matrix"
)

// Orderer decides the circular sequence of matrix rows.
// Order returns a permutation of 0..n-1; position 0 starts at angle zero.
type Orderer interface {
	Order(m *matrix.Matrix) []int
}

// Names of the built-in orderers.
const (
	NameGreedy = "greedy"
	NameNone   = "none"
)

// New returns the orderer registered under name. An empty name selects
// [Greedy].
func New(name string) (Orderer, error) {
	switch name {
	case "", NameGreedy:
		return Greedy{}, nil
	case NameNone, "identity":
		return Identity{}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidOption, "unknown ordering %q (want %s or %s)", name, NameGreedy, NameNone)
	}
}

// Identity keeps rows in matrix order.
type Identity struct{}

func (Identity) Order(m *matrix.Matrix) []int {
	order := make([]int, m.Size())
	for i := range order {
		order[i] = i
	}
	return order
}

// Greedy grows the order like Prim's algorithm over the distance 1-|a_ij|.
//
// It starts from row 0 and then repeatedly appends the unvisited node
// closest to any visited node. Visited nodes are scanned in index order and
// only a strictly smaller distance replaces the candidate, so ties go to the
// lowest visited index, then to the lowest unvisited index.
type Greedy struct{}

func (Greedy) Order(m *matrix.Matrix) []int {
	n := m.Size()
	if n == 0 {
		return nil
	}

	dist := func(i, j int) float64 { return 1 - math.Abs(m.At(i, j)) }

	visited := make([]bool, n)
	order := make([]int, 0, n)
	order = append(order, 0)
	visited[0] = true

	for len(order) < n {
		next, nextDist := -1, math.Inf(1)
		for v := 0; v < n; v++ {
			if !visited[v] {
				continue
			}
			for j := 0; j < n; j++ {
				if visited[j] {
					continue
				}
				if d := dist(v, j); d < nextDist {
					next, nextDist = j, d
				}
			}
		}
		order = append(order, next)
		visited[next] = true
	}
	return order
}
