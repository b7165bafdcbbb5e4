package ordering

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/matzehuels/chordviz/pkg/matrix"
)

func mustMatrix(t *testing.T, values [][]float64) *matrix.Matrix {
	t.Helper()
	m, err := matrix.New(nil, values)
	if err != nil {
		t.Fatalf("matrix.New: %v", err)
	}
	return m
}

// randomMatrix builds a symmetric matrix with unit diagonal from seed.
func randomMatrix(n int, seed int64) *matrix.Matrix {
	r := rand.New(rand.NewSource(seed))
	values := make([][]float64, n)
	for i := range values {
		values[i] = make([]float64, n)
		values[i][i] = 1
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := r.Float64()*2 - 1
			values[i][j], values[j][i] = v, v
		}
	}
	m, _ := matrix.New(nil, values)
	return m
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		want    Orderer
		wantErr bool
	}{
		{"", Greedy{}, false},
		{"greedy", Greedy{}, false},
		{"none", Identity{}, false},
		{"identity", Identity{}, false},
		{"random", nil, true},
	}
	for _, tt := range tests {
		got, err := New(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("New(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("New(%q) = %T, want %T", tt.name, got, tt.want)
		}
	}
}

func TestGreedy(t *testing.T) {
	tests := []struct {
		name   string
		values [][]float64
		want   []int
	}{
		{
			name:   "Single",
			values: [][]float64{{1}},
			want:   []int{0},
		},
		{
			name: "Chain",
			values: [][]float64{
				{1, 0.9, 0.1, 0.2},
				{0.9, 1, 0.3, 0.8},
				{0.1, 0.3, 1, 0.7},
				{0.2, 0.8, 0.7, 1},
			},
			want: []int{0, 1, 3, 2},
		},
		{
			name: "StartsAtFirstRow",
			values: [][]float64{
				{1, 0.2, 0.15, 0.1},
				{0.2, 1, 0.9, 0.3},
				{0.15, 0.9, 1, 0.8},
				{0.1, 0.3, 0.8, 1},
			},
			want: []int{0, 1, 2, 3},
		},
		{
			name: "SignIgnored",
			values: [][]float64{
				{1, -0.1, 0.2},
				{-0.1, 1, -0.9},
				{0.2, -0.9, 1},
			},
			want: []int{0, 2, 1},
		},
		{
			name: "TiesLowestIndex",
			values: [][]float64{
				{1, 0, 0},
				{0, 1, 0},
				{0, 0, 1},
			},
			want: []int{0, 1, 2},
		},
		{
			// 0, 3, 1 are placed first; 2 (via 1) and 4 (via 3) then tie.
			name: "TiesLowestVisitedIndex",
			values: [][]float64{
				{1, 0, 0, 0.9, 0},
				{0, 1, 0.5, 0.8, 0},
				{0, 0.5, 1, 0, 0},
				{0.9, 0.8, 0, 1, 0.5},
				{0, 0, 0, 0.5, 1},
			},
			want: []int{0, 3, 1, 2, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Greedy{}.Order(mustMatrix(t, tt.values))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Order() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIdentity(t *testing.T) {
	m := randomMatrix(5, 1)
	if got := (Identity{}).Order(m); !slices.Equal(got, []int{0, 1, 2, 3, 4}) {
		t.Errorf("Order() = %v", got)
	}
}

func TestCrossings(t *testing.T) {
	square := mustMatrix(t, [][]float64{
		{1, 0, 0.5, 0},
		{0, 1, 0, 0.5},
		{0.5, 0, 1, 0},
		{0, 0.5, 0, 1},
	})

	tests := []struct {
		name      string
		m         *matrix.Matrix
		order     []int
		threshold float64
		want      int
	}{
		{"Diagonals", square, []int{0, 1, 2, 3}, 0.1, 1},
		{"Untangled", square, []int{0, 2, 1, 3}, 0.1, 0},
		{"AboveThreshold", square, []int{0, 1, 2, 3}, 0.5, 0},
		{"TooSmall", mustMatrix(t, [][]float64{{1, 1}, {1, 1}}), []int{0, 1}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Crossings(tt.m, tt.order, tt.threshold); got != tt.want {
				t.Errorf("Crossings() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGreedyReducesCrossings(t *testing.T) {
	// Two tight clusters interleaved in matrix order.
	m := mustMatrix(t, [][]float64{
		{1, 0.05, 0.9, 0.05, 0.8, 0.05},
		{0.05, 1, 0.05, 0.9, 0.05, 0.8},
		{0.9, 0.05, 1, 0.05, 0.7, 0.05},
		{0.05, 0.9, 0.05, 1, 0.05, 0.7},
		{0.8, 0.05, 0.7, 0.05, 1, 0.05},
		{0.05, 0.8, 0.05, 0.7, 0.05, 1},
	})
	before := Crossings(m, Identity{}.Order(m), 0.1)
	after := Crossings(m, Greedy{}.Order(m), 0.1)
	if after != 0 {
		t.Errorf("greedy crossings = %d, want 0", after)
	}
	if before <= after {
		t.Errorf("identity crossings = %d, expected more than greedy", before)
	}
}

func TestOrderingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("greedy order is a permutation", prop.ForAll(
		func(n int, seed int64) bool {
			order := Greedy{}.Order(randomMatrix(n, seed))
			sorted := slices.Sorted(slices.Values(order))
			for i, v := range sorted {
				if v != i {
					return false
				}
			}
			return len(order) == n
		},
		gen.IntRange(1, 12),
		gen.Int64(),
	))

	// Every 4 nodes of a complete graph contribute exactly one crossing.
	properties.Property("complete graph has C(n,4) crossings in any order", prop.ForAll(
		func(n int, seed int64) bool {
			m := randomMatrix(n, seed)
			order := rand.New(rand.NewSource(seed)).Perm(n)
			want := n * (n - 1) * (n - 2) * (n - 3) / 24
			return Crossings(m, order, -1) == want
		},
		gen.IntRange(1, 10),
		gen.Int64(),
	))

	properties.TestingRun(t)
}
