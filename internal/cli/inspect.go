package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chordviz/pkg/render/chord/layout"
)

// inspectCommand creates the inspect command for browsing matrix variables.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		observations bool
		plain        bool
		threshold    float64
	)

	cmd := &cobra.Command{
		Use:   "inspect [matrix]",
		Short: "Browse the variables of a correlation matrix",
		Long: `Browse the variables of a correlation matrix.

Lists every variable with its relevance (the sum of |rho| with all others),
its strongest partner, and whether it survives --threshold. Use --plain to
print the table without the interactive view.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], observations, threshold, plain)
		},
	}

	cmd.Flags().BoolVar(&observations, "observations", false, "input holds raw observations to correlate")
	cmd.Flags().BoolVar(&plain, "plain", false, "print a table instead of the interactive view")
	cmd.Flags().Float64Var(&threshold, "threshold", layout.DefaultThreshold, "smallest |rho| drawn as a chord")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, observations bool, threshold float64, plain bool) error {
	m, err := loadMatrix(input, observations)
	if err != nil {
		return fmt.Errorf("load matrix %s: %w", input, err)
	}
	rows := variableRows(m, threshold)

	if plain {
		fmt.Println(variableTable(rows, threshold, -1).Render())
		return nil
	}

	p := tea.NewProgram(NewVariableListModel(rows, threshold), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
