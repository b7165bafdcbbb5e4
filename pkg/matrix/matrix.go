package matrix

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/matzehuels/chordviz/pkg/errors"
)

// SymmetryTolerance is the largest |a_ij - a_ji| accepted by [New].
const SymmetryTolerance = 1e-9

// Matrix is a labelled symmetric matrix of pairwise relevance scores.
type Matrix struct {
	names []string
	data  *mat.SymDense
}

// Pair is one off-diagonal entry of a matrix.
type Pair struct {
	I, J  int
	A, B  string
	Value float64
}

// New validates values and returns a labelled matrix.
//
// names may be nil, in which case rows are labelled N1..Nn. Values must form a
// non-empty square matrix of finite numbers, symmetric within
// [SymmetryTolerance].
func New(names []string, values [][]float64) (*Matrix, error) {
	n := len(values)
	if n == 0 {
		return nil, errors.New(errors.ErrCodeEmptyMatrix, "matrix has no rows")
	}

	data := make([]float64, n*n)
	for i, row := range values {
		if len(row) != n {
			return nil, errors.New(errors.ErrCodeInvalidMatrix, "row %d has %d values, want %d", i, len(row), n)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.New(errors.ErrCodeInvalidMatrix, "value at (%d, %d) is not finite", i, j)
			}
			data[i*n+j] = v
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math.Abs(values[i][j]-values[j][i]) > SymmetryTolerance {
				return nil, errors.New(errors.ErrCodeNotSymmetric,
					"a[%d][%d]=%g differs from a[%d][%d]=%g", i, j, values[i][j], j, i, values[j][i])
			}
		}
	}

	labels, err := labelsFor(names, n)
	if err != nil {
		return nil, err
	}
	return &Matrix{names: labels, data: mat.NewSymDense(n, data)}, nil
}

// FromObservations correlates the columns of rows (one observation per row,
// one variable per column) with the Pearson coefficient.
func FromObservations(names []string, rows [][]float64) (*Matrix, error) {
	if len(rows) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "need at least 2 observations, got %d", len(rows))
	}
	cols := len(rows[0])
	if cols == 0 {
		return nil, errors.New(errors.ErrCodeEmptyMatrix, "observations have no variables")
	}

	x := mat.NewDense(len(rows), cols, nil)
	for i, row := range rows {
		if len(row) != cols {
			return nil, errors.New(errors.ErrCodeInvalidInput, "observation %d has %d values, want %d", i, len(row), cols)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.New(errors.ErrCodeInvalidInput, "observation %d value %d is not finite", i, j)
			}
			x.Set(i, j, v)
		}
	}

	labels, err := labelsFor(names, cols)
	if err != nil {
		return nil, err
	}

	for j := 0; j < cols; j++ {
		if stat.Variance(mat.Col(nil, j, x), nil) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "variable %q has zero variance", labels[j])
		}
	}

	corr := mat.NewSymDense(cols, nil)
	stat.CorrelationMatrix(corr, x, nil)
	return &Matrix{names: labels, data: corr}, nil
}

func labelsFor(names []string, n int) ([]string, error) {
	if names == nil {
		labels := make([]string, n)
		for i := range labels {
			labels[i] = fmt.Sprintf("N%d", i+1)
		}
		return labels, nil
	}
	if len(names) != n {
		return nil, errors.New(errors.ErrCodeInvalidMatrix, "got %d names for %d rows", len(names), n)
	}
	seen := make(map[string]bool, n)
	for _, name := range names {
		if err := errors.ValidateLabel(name); err != nil {
			return nil, err
		}
		if seen[name] {
			return nil, errors.New(errors.ErrCodeInvalidMatrix, "duplicate node label %q", name)
		}
		seen[name] = true
	}
	return append([]string(nil), names...), nil
}

// Size returns the number of rows.
func (m *Matrix) Size() int {
	n, _ := m.data.Dims()
	return n
}

// At returns a_ij.
func (m *Matrix) At(i, j int) float64 { return m.data.At(i, j) }

// Name returns the label of row i.
func (m *Matrix) Name(i int) string { return m.names[i] }

// Names returns a copy of the row labels.
func (m *Matrix) Names() []string { return append([]string(nil), m.names...) }

// Index returns the row labelled name, or -1.
func (m *Matrix) Index(name string) int {
	for i, n := range m.names {
		if n == name {
			return i
		}
	}
	return -1
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) []float64 {
	n := m.Size()
	row := make([]float64, n)
	for j := range row {
		row[j] = m.data.At(i, j)
	}
	return row
}

// Values returns a copy of the matrix as nested slices.
func (m *Matrix) Values() [][]float64 {
	out := make([][]float64, m.Size())
	for i := range out {
		out[i] = m.Row(i)
	}
	return out
}

// Sym exposes the underlying gonum matrix. Callers must not modify it.
func (m *Matrix) Sym() mat.Symmetric { return m.data }

// Relevance returns the sum of |a_ij| over j != i.
func (m *Matrix) Relevance(i int) float64 {
	var sum float64
	for j := 0; j < m.Size(); j++ {
		if j != i {
			sum += math.Abs(m.data.At(i, j))
		}
	}
	return sum
}

// Filter returns, in order, the rows with at least one off-diagonal
// |a_ij| >= threshold.
func (m *Matrix) Filter(threshold float64) []int {
	n := m.Size()
	keep := make([]int, 0, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if j != i && math.Abs(m.data.At(i, j)) >= threshold {
				keep = append(keep, i)
				break
			}
		}
	}
	return keep
}

// Select returns the principal sub-matrix of the given rows, in the given
// order. Indexes must be in range and distinct.
func (m *Matrix) Select(indexes []int) (*Matrix, error) {
	n := m.Size()
	seen := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		if i < 0 || i >= n {
			return nil, errors.New(errors.ErrCodeInvalidInput, "index %d out of range [0, %d)", i, n)
		}
		if seen[i] {
			return nil, errors.New(errors.ErrCodeInvalidInput, "index %d selected twice", i)
		}
		seen[i] = true
	}

	k := len(indexes)
	sub := mat.NewSymDense(k, nil)
	names := make([]string, k)
	for a, i := range indexes {
		names[a] = m.names[i]
		for b := a; b < k; b++ {
			sub.SetSym(a, b, m.data.At(i, indexes[b]))
		}
	}
	return &Matrix{names: names, data: sub}, nil
}

// Permute reorders rows, columns and labels. order must be a permutation of
// 0..n-1.
func (m *Matrix) Permute(order []int) (*Matrix, error) {
	if len(order) != m.Size() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "permutation has %d entries, want %d", len(order), m.Size())
	}
	return m.Select(order)
}

// Pairs returns the off-diagonal entries with |a_ij| >= threshold, strongest
// first. Ties keep row-major order.
func (m *Matrix) Pairs(threshold float64) []Pair {
	var pairs []Pair
	n := m.Size()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := m.data.At(i, j)
			if math.Abs(v) >= threshold {
				pairs = append(pairs, Pair{I: i, J: j, A: m.names[i], B: m.names[j], Value: v})
			}
		}
	}
	sort.SliceStable(pairs, func(a, b int) bool {
		return math.Abs(pairs[a].Value) > math.Abs(pairs[b].Value)
	})
	return pairs
}
