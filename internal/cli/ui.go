package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/chordviz/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary
	colorGreen  = lipgloss.Color("35")  // Green - success, positive rho
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors, negative rho
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleRemoved  = lipgloss.NewStyle().Foreground(colorRed)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// maxRemovedShown bounds the removed-variable list in summaries.
const maxRemovedShown = 5

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println()
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Diagram Summary
// =============================================================================

// diagramStats is what the commands report about a finished diagram.
// Crossings are only known when the matrix went through the prepare stage.
type diagramStats struct {
	variables       int
	nodes           int
	chords          int
	removed         []string
	crossingsBefore int
	crossingsAfter  int
	hasCrossings    bool
	cached          bool
}

func statsFromResult(r *pipeline.Result, cached bool) diagramStats {
	return diagramStats{
		variables:       r.Stats.Variables,
		nodes:           r.Stats.Nodes,
		chords:          r.Stats.Chords,
		removed:         r.Removed,
		crossingsBefore: r.Stats.CrossingsBefore,
		crossingsAfter:  r.Stats.CrossingsAfter,
		hasCrossings:    r.Stats.Nodes > 1,
		cached:          cached,
	}
}

// summary renders the stats as plain text parts, without styling.
func (s diagramStats) summary() []string {
	nodes := fmt.Sprintf("%d nodes", s.nodes)
	if s.variables > s.nodes {
		nodes = fmt.Sprintf("%d of %d variables", s.nodes, s.variables)
	}
	parts := []string{nodes, fmt.Sprintf("%d chords", s.chords)}
	if s.hasCrossings {
		parts = append(parts, fmt.Sprintf("crossings %d %s %d", s.crossingsBefore, iconArrow, s.crossingsAfter))
	}
	return parts
}

// removedList names the removed variables, shortened past maxRemovedShown.
func (s diagramStats) removedList() string {
	if len(s.removed) <= maxRemovedShown {
		return strings.Join(s.removed, ", ")
	}
	return fmt.Sprintf("%s and %d more", strings.Join(s.removed[:maxRemovedShown], ", "), len(s.removed)-maxRemovedShown)
}

// printStats prints the summary line and, when the filter dropped any,
// the removed variables.
func printStats(s diagramStats) {
	status, statusStyle := iconFresh, styleComputed
	if s.cached {
		status, statusStyle = iconCached, styleCached
	}

	var line strings.Builder
	line.WriteString("  ")
	for i, part := range s.summary() {
		if i > 0 {
			line.WriteString(StyleDim.Render(" · "))
		}
		line.WriteString(StyleDim.Render(part))
	}
	line.WriteString(StyleDim.Render(" · ") + statusStyle.Render(status))
	fmt.Println(line.String())

	if len(s.removed) > 0 {
		fmt.Println("  " + StyleDim.Render("removed ") + styleRemoved.Render(s.removedList()))
	}
}
