package cli

import (
	"fmt"
	"math"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/chordviz/pkg/matrix"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// partnersShown is how many partners the detail pane lists.
const partnersShown = 5

// =============================================================================
// Variable Rows
// =============================================================================

// Partner is a correlation seen from one variable.
type Partner struct {
	Name string
	Rho  float64
}

// VariableRow summarizes one variable of a matrix.
type VariableRow struct {
	Name      string
	Relevance float64
	Kept      bool      // has a correlation at or above the threshold
	Partners  []Partner // strongest first
}

// Strongest returns the strongest partner, if any.
func (r VariableRow) Strongest() (Partner, bool) {
	if len(r.Partners) == 0 {
		return Partner{}, false
	}
	return r.Partners[0], true
}

// variableRows builds one row per variable, in matrix order.
func variableRows(m *matrix.Matrix, threshold float64) []VariableRow {
	rows := make([]VariableRow, m.Size())
	for i := range rows {
		rows[i] = VariableRow{Name: m.Name(i), Relevance: m.Relevance(i)}
	}
	for _, i := range m.Filter(threshold) {
		rows[i].Kept = true
	}
	for _, p := range m.Pairs(0) {
		rows[p.I].Partners = append(rows[p.I].Partners, Partner{Name: p.B, Rho: p.Value})
		rows[p.J].Partners = append(rows[p.J].Partners, Partner{Name: p.A, Rho: p.Value})
	}
	return rows
}

// =============================================================================
// VariableListModel - Interactive variable browser
// =============================================================================

// VariableListModel is the bubbletea model for browsing matrix variables.
type VariableListModel struct {
	Rows      []VariableRow
	Threshold float64
	Cursor    int
	Height    int
	Offset    int
	Sorted    bool // by relevance, descending

	order []int // input order, to undo sorting
}

// NewVariableListModel creates a new variable list model.
func NewVariableListModel(rows []VariableRow, threshold float64) VariableListModel {
	order := make([]int, len(rows))
	for i := range order {
		order[i] = i
	}
	return VariableListModel{
		Rows:      rows,
		Threshold: threshold,
		Height:    15,
		order:     order,
	}
}

func (m VariableListModel) Init() tea.Cmd {
	return nil
}

func (m VariableListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "s":
			m = m.toggleSort()
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10 - partnersShown
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

// toggleSort switches between input order and relevance order, keeping the
// cursor on the same variable.
func (m VariableListModel) toggleSort() VariableListModel {
	if len(m.Rows) == 0 {
		return m
	}
	current := m.order[m.Cursor]
	rows := make([]VariableRow, len(m.Rows))
	order := make([]int, len(m.order))
	perm := make([]int, len(m.Rows))
	for i := range perm {
		perm[i] = i
	}
	m.Sorted = !m.Sorted
	if m.Sorted {
		sort.SliceStable(perm, func(a, b int) bool {
			return m.Rows[perm[a]].Relevance > m.Rows[perm[b]].Relevance
		})
	} else {
		sort.Slice(perm, func(a, b int) bool { return m.order[perm[a]] < m.order[perm[b]] })
	}
	for k, i := range perm {
		rows[k] = m.Rows[i]
		order[k] = m.order[i]
		if order[k] == current {
			m.Cursor = k
		}
	}
	m.Rows, m.order = rows, order
	m.Offset = 0
	if m.Cursor >= m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m
}

func (m VariableListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Variables"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  s sort by relevance  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Rows))
	b.WriteString(variableTable(m.Rows[m.Offset:end], m.Threshold, m.Cursor-m.Offset).Render())
	b.WriteString("\n\n")

	kept := 0
	for _, r := range m.Rows {
		if r.Kept {
			kept++
		}
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %d kept at threshold %g", m.Cursor+1, len(m.Rows), kept, m.Threshold)))
	b.WriteString("\n")

	if m.Cursor < len(m.Rows) {
		r := m.Rows[m.Cursor]
		b.WriteString("\n")
		b.WriteString(listSelectedStyle.Render(r.Name))
		b.WriteString("\n")
		for _, p := range r.Partners[:min(partnersShown, len(r.Partners))] {
			line := fmt.Sprintf("  %-20s %+.3f", p.Name, p.Rho)
			if math.Abs(p.Rho) < m.Threshold {
				line = listDimStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	return b.String()
}

// variableTable renders rows as a table. cursor is the highlighted row, or
// -1 for none.
func variableTable(rows []VariableRow, threshold float64, cursor int) *table.Table {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		mark := ""
		if i == cursor {
			mark = "▸"
		}
		kept := "✓"
		if !r.Kept {
			kept = "-"
		}
		partner, rho := "-", ""
		if p, ok := r.Strongest(); ok {
			partner, rho = p.Name, fmt.Sprintf("%+.3f", p.Rho)
		}
		cells[i] = []string{mark, r.Name, fmt.Sprintf("%.3f", r.Relevance), partner, rho, kept}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Variable", "Relevance", "Strongest", "Rho", "Kept").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			if row < 0 || row >= len(rows) {
				return lipgloss.NewStyle()
			}
			switch {
			case row == cursor:
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			case !rows[row].Kept:
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
}
