package matrix_test

import (
	"fmt"

	"github.com/matzehuels/chordviz/pkg/matrix"
)

func ExampleMatrix_Filter() {
	m, _ := matrix.New([]string{"rain", "wind", "sun"}, [][]float64{
		{1, 0.6, 0.02},
		{0.6, 1, 0.05},
		{0.02, 0.05, 1},
	})

	keep := m.Filter(0.1)
	sub, _ := m.Select(keep)
	fmt.Println(sub.Names())
	// Output:
	// [rain wind]
}

func ExampleMatrix_Relevance() {
	m, _ := matrix.New(nil, [][]float64{
		{1, 0.5, -0.25},
		{0.5, 1, 0},
		{-0.25, 0, 1},
	})

	for i := 0; i < m.Size(); i++ {
		fmt.Printf("%s: %.2f\n", m.Name(i), m.Relevance(i))
	}
	// Output:
	// N1: 0.75
	// N2: 0.50
	// N3: 0.25
}
