package matrix

import (
	"math"
	"testing"

	"github.com/matzehuels/chordviz/pkg/errors"
)

func sample(t *testing.T) *Matrix {
	t.Helper()
	m, err := New([]string{"a", "b", "c", "d"}, [][]float64{
		{1, 0.8, 0.05, -0.3},
		{0.8, 1, 0.02, 0.0},
		{0.05, 0.02, 1, 0.01},
		{-0.3, 0.0, 0.01, 1},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		names    []string
		values   [][]float64
		wantCode errors.Code
	}{
		{"Valid", []string{"x", "y"}, [][]float64{{1, 0.5}, {0.5, 1}}, ""},
		{"DefaultNames", nil, [][]float64{{1}}, ""},
		{"Empty", nil, nil, errors.ErrCodeEmptyMatrix},
		{"Ragged", nil, [][]float64{{1, 0.5}, {0.5}}, errors.ErrCodeInvalidMatrix},
		{"NotSquare", nil, [][]float64{{1, 0.5, 0}, {0.5, 1, 0}}, errors.ErrCodeInvalidMatrix},
		{"Asymmetric", nil, [][]float64{{1, 0.5}, {0.4, 1}}, errors.ErrCodeNotSymmetric},
		{"NaN", nil, [][]float64{{1, math.NaN()}, {math.NaN(), 1}}, errors.ErrCodeInvalidMatrix},
		{"Inf", nil, [][]float64{{math.Inf(1)}}, errors.ErrCodeInvalidMatrix},
		{"WrongNameCount", []string{"x"}, [][]float64{{1, 0}, {0, 1}}, errors.ErrCodeInvalidMatrix},
		{"DuplicateNames", []string{"x", "x"}, [][]float64{{1, 0}, {0, 1}}, errors.ErrCodeInvalidMatrix},
		{"BlankName", []string{"x", " "}, [][]float64{{1, 0}, {0, 1}}, errors.ErrCodeInvalidMatrix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.names, tt.values)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if m.Size() != len(tt.values) {
					t.Errorf("Size() = %d, want %d", m.Size(), len(tt.values))
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestDefaultNames(t *testing.T) {
	m, err := New(nil, [][]float64{{1, 0}, {0, 1}})
	if err != nil {
		t.Fatal(err)
	}
	if m.Name(0) != "N1" || m.Name(1) != "N2" {
		t.Errorf("Names() = %v, want [N1 N2]", m.Names())
	}
}

func TestNewCopiesInput(t *testing.T) {
	values := [][]float64{{1, 0.5}, {0.5, 1}}
	m, err := New(nil, values)
	if err != nil {
		t.Fatal(err)
	}
	values[0][1] = 0.9
	if m.At(0, 1) != 0.5 {
		t.Errorf("At(0,1) = %v after mutating input, want 0.5", m.At(0, 1))
	}
}

func TestRelevance(t *testing.T) {
	m := sample(t)
	want := []float64{1.15, 0.82, 0.08, 0.31}
	for i, w := range want {
		if got := m.Relevance(i); math.Abs(got-w) > 1e-12 {
			t.Errorf("Relevance(%d) = %v, want %v", i, got, w)
		}
	}
}

func TestFilter(t *testing.T) {
	m := sample(t)
	tests := []struct {
		threshold float64
		want      []int
	}{
		{0, []int{0, 1, 2, 3}},
		{0.1, []int{0, 1, 3}},
		{0.3, []int{0, 1, 3}},
		{0.5, []int{0, 1}},
		{0.9, []int{}},
	}
	for _, tt := range tests {
		got := m.Filter(tt.threshold)
		if !equalInts(got, tt.want) {
			t.Errorf("Filter(%v) = %v, want %v", tt.threshold, got, tt.want)
		}
	}
}

func TestSelect(t *testing.T) {
	m := sample(t)
	sub, err := m.Select([]int{3, 0})
	if err != nil {
		t.Fatal(err)
	}
	if sub.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", sub.Size())
	}
	if sub.Name(0) != "d" || sub.Name(1) != "a" {
		t.Errorf("Names() = %v, want [d a]", sub.Names())
	}
	if sub.At(0, 1) != -0.3 || sub.At(1, 0) != -0.3 {
		t.Errorf("At(0,1) = %v, want -0.3", sub.At(0, 1))
	}
	if sub.At(0, 0) != 1 {
		t.Errorf("At(0,0) = %v, want 1", sub.At(0, 0))
	}

	if _, err := m.Select([]int{0, 0}); err == nil {
		t.Error("expected error for duplicate index")
	}
	if _, err := m.Select([]int{7}); err == nil {
		t.Error("expected error for out of range index")
	}
}

func TestPermute(t *testing.T) {
	m := sample(t)
	p, err := m.Permute([]int{1, 0, 3, 2})
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []string{"b", "a", "d", "c"} {
		if p.Name(i) != want {
			t.Errorf("Name(%d) = %q, want %q", i, p.Name(i), want)
		}
	}
	if p.At(1, 2) != -0.3 {
		t.Errorf("At(1,2) = %v, want -0.3", p.At(1, 2))
	}
	if _, err := m.Permute([]int{0, 1}); err == nil {
		t.Error("expected error for short permutation")
	}
}

func TestPairs(t *testing.T) {
	m := sample(t)
	pairs := m.Pairs(0.1)
	if len(pairs) != 2 {
		t.Fatalf("len(Pairs) = %d, want 2", len(pairs))
	}
	if pairs[0].A != "a" || pairs[0].B != "b" || pairs[0].Value != 0.8 {
		t.Errorf("Pairs[0] = %+v, want a-b 0.8", pairs[0])
	}
	if pairs[1].A != "a" || pairs[1].B != "d" || pairs[1].Value != -0.3 {
		t.Errorf("Pairs[1] = %+v, want a-d -0.3", pairs[1])
	}
}

func TestFromObservations(t *testing.T) {
	rows := [][]float64{
		{1, 2, -1, 3},
		{2, 4, -2, 1},
		{3, 6, -3, 4},
		{4, 8, -4, 1},
	}
	m, err := FromObservations([]string{"x", "2x", "-x", "noise"}, rows)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.At(0, 1); math.Abs(got-1) > 1e-12 {
		t.Errorf("corr(x, 2x) = %v, want 1", got)
	}
	if got := m.At(0, 2); math.Abs(got+1) > 1e-12 {
		t.Errorf("corr(x, -x) = %v, want -1", got)
	}
	for i := 0; i < m.Size(); i++ {
		if got := m.At(i, i); math.Abs(got-1) > 1e-12 {
			t.Errorf("diag(%d) = %v, want 1", i, got)
		}
	}
}

func TestFromObservationsErrors(t *testing.T) {
	tests := []struct {
		name string
		rows [][]float64
	}{
		{"TooFew", [][]float64{{1, 2}}},
		{"Ragged", [][]float64{{1, 2}, {3}}},
		{"Constant", [][]float64{{1, 2}, {1, 3}, {1, 5}}},
		{"NaN", [][]float64{{1, 2}, {math.NaN(), 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromObservations(nil, tt.rows); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
