// Package matrix holds the symmetric correlation matrix that chord diagrams are
// built from.
//
// A [Matrix] pairs a gonum [mat.SymDense] with one label per row. Construction
// validates the input once; every other operation returns a new matrix and
// never mutates the receiver.
//
// # Construction
//
//	m, err := matrix.New([]string{"a", "b"}, [][]float64{
//	    {1, 0.8},
//	    {0.8, 1},
//	})
//
// Raw observations can be correlated directly:
//
//	m, err := matrix.FromObservations(names, rows) // Pearson, via gonum/stat
//
// # Selection
//
// [Matrix.Filter] returns the rows that have at least one correlation at or
// above a threshold, [Matrix.Select] extracts a principal sub-matrix and
// [Matrix.Permute] reorders rows and columns together.
package matrix
