package pipeline

import (
	"github.com/matzehuels/chordviz/pkg/errors"
	"github.com/matzehuels/chordviz/pkg/matrix"
	"github.com/matzehuels/chordviz/pkg/render/chord/ordering"
)

// Prepared is a matrix ready for layout.
type Prepared struct {
	// Matrix is filtered and reordered; nil when every variable was removed.
	Matrix *matrix.Matrix

	// Index holds the input position of each node of Matrix.
	Index []int

	// Removed lists the variables without any correlation above threshold.
	Removed []string

	CrossingsBefore int
	CrossingsAfter  int
}

// Empty reports whether nothing is left to lay out.
func (p Prepared) Empty() bool { return p.Matrix == nil }

// Prepare filters and reorders m.
//
// Unless opts.KeepAll is set, variables whose strongest correlation with any
// other variable is below opts.Threshold are removed. The rest are put in
// the order chosen by opts.Ordering.
func Prepare(m *matrix.Matrix, opts Options) (Prepared, error) {
	if m == nil || m.Size() == 0 {
		return Prepared{}, errors.New(errors.ErrCodeEmptyMatrix, "no matrix to prepare")
	}
	orderer, err := ordering.New(opts.Ordering)
	if err != nil {
		return Prepared{}, err
	}

	keep := make([]int, m.Size())
	for i := range keep {
		keep[i] = i
	}
	if !opts.KeepAll {
		keep = m.Filter(opts.Threshold)
	}

	var p Prepared
	kept := make(map[int]bool, len(keep))
	for _, i := range keep {
		kept[i] = true
	}
	for i := 0; i < m.Size(); i++ {
		if !kept[i] {
			p.Removed = append(p.Removed, m.Name(i))
		}
	}
	if len(keep) == 0 {
		return p, nil
	}

	sub, err := m.Select(keep)
	if err != nil {
		return Prepared{}, err
	}
	order := orderer.Order(sub)
	p.CrossingsBefore = ordering.Crossings(sub, ordering.Identity{}.Order(sub), opts.Threshold)
	p.CrossingsAfter = ordering.Crossings(sub, order, opts.Threshold)

	p.Matrix, err = sub.Permute(order)
	if err != nil {
		return Prepared{}, err
	}
	p.Index = make([]int, len(order))
	for k, i := range order {
		p.Index[k] = keep[i]
	}
	return p, nil
}
