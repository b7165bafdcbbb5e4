package nodelink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/chordviz/pkg/matrix"
	"github.com/matzehuels/chordviz/pkg/render/nodelink"
)

func ExampleToDOT() {
	m, _ := matrix.New([]string{"rain", "umbrellas", "sunburn"}, [][]float64{
		{1, 0.9, -0.6},
		{0.9, 1, -0.4},
		{-0.6, -0.4, 1},
	})

	dot := nodelink.ToDOT(m, nodelink.Options{Threshold: 0.5})

	fmt.Println("Edges:", strings.Count(dot, " -- "))
	fmt.Println("Dashed:", strings.Count(dot, "dashed"))
	// Output:
	// Edges: 2
	// Dashed: 1
}
