package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/chordviz/pkg/matrix"
)

func sampleMatrix(t *testing.T) *matrix.Matrix {
	t.Helper()
	m, err := matrix.New([]string{"a", "b", "c", "noise"}, [][]float64{
		{1, 0.8, -0.5, 0.02},
		{0.8, 1, 0.3, 0.01},
		{-0.5, 0.3, 1, -0.03},
		{0.02, 0.01, -0.03, 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestVariableRows(t *testing.T) {
	rows := variableRows(sampleMatrix(t), 0.1)
	if len(rows) != 4 {
		t.Fatalf("got %d rows", len(rows))
	}

	tests := []struct {
		name      string
		kept      bool
		strongest string
		rho       float64
	}{
		{"a", true, "b", 0.8},
		{"b", true, "a", 0.8},
		{"c", true, "a", -0.5},
		{"noise", false, "c", -0.03},
	}
	for i, tt := range tests {
		r := rows[i]
		p, ok := r.Strongest()
		if r.Name != tt.name || r.Kept != tt.kept || !ok || p.Name != tt.strongest || p.Rho != tt.rho {
			t.Errorf("row %d = %+v, strongest %+v", i, r, p)
		}
		if len(r.Partners) != 3 {
			t.Errorf("%s has %d partners, want 3", r.Name, len(r.Partners))
		}
	}
	if got := rows[0].Relevance; got < 1.319 || got > 1.321 {
		t.Errorf("relevance(a) = %v, want 1.32", got)
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m VariableListModel, keys ...string) VariableListModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(VariableListModel)
	}
	return m
}

func TestVariableListNavigation(t *testing.T) {
	m := NewVariableListModel(variableRows(sampleMatrix(t), 0.1), 0.1)

	m = update(m, "up")
	if m.Cursor != 0 {
		t.Errorf("cursor moved above the first row: %d", m.Cursor)
	}
	m = update(m, "down", "j", "down", "down")
	if m.Cursor != 3 {
		t.Errorf("cursor = %d, want 3 (clamped)", m.Cursor)
	}

	view := m.View()
	for _, want := range []string{"Variables", "noise", "[4/4]", "3 kept"} {
		if !strings.Contains(view, want) {
			t.Errorf("view is missing %q", want)
		}
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestVariableListSort(t *testing.T) {
	reversed, err := sampleMatrix(t).Permute([]int{3, 2, 1, 0})
	if err != nil {
		t.Fatal(err)
	}
	m := NewVariableListModel(variableRows(reversed, 0.1), 0.1)
	m = update(m, "down", "down") // on b

	m = update(m, "s")
	if !m.Sorted {
		t.Fatal("s should sort")
	}
	var names []string
	for _, r := range m.Rows {
		names = append(names, r.Name)
	}
	// relevance: a 1.32, b 1.11, c 0.83, noise 0.06
	if got := strings.Join(names, ","); got != "a,b,c,noise" {
		t.Errorf("sorted = %s", got)
	}
	if m.Cursor != 1 || m.Rows[m.Cursor].Name != "b" {
		t.Errorf("cursor on %s after sort, want b", m.Rows[m.Cursor].Name)
	}

	m = update(m, "s")
	if m.Sorted || m.Cursor != 2 || m.Rows[0].Name != "noise" {
		t.Errorf("unsort: sorted=%v cursor %d first %s", m.Sorted, m.Cursor, m.Rows[0].Name)
	}
}

func TestVariableTablePlain(t *testing.T) {
	out := variableTable(variableRows(sampleMatrix(t), 0.1), 0.1, -1).Render()
	for _, want := range []string{"Variable", "Relevance", "noise", "+0.800", "-0.500"} {
		if !strings.Contains(out, want) {
			t.Errorf("table is missing %q", want)
		}
	}
	if strings.Contains(out, "▸") {
		t.Error("plain table should not mark a row")
	}
}
