package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chordviz/pkg/diagram"
	"github.com/matzehuels/chordviz/pkg/pipeline"
)

// layoutCommand creates the layout command for computing diagram layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output       string
		observations bool
		refresh      bool
	)
	opts := pipeline.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "layout [matrix]",
		Short: "Compute a chord diagram layout from a correlation matrix",
		Long: `Compute a chord diagram layout from a correlation matrix.

The output is a layout.json file (same format as 'render -f json') that can be
rendered to SVG/PNG/PDF using the 'visualize' command. Node order in the layout
is the order after filtering and reordering; --colors given here are printed in
that order, ready to pass to 'visualize'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.applyConfig(cmd.Flags(), &opts); err != nil {
				return err
			}
			opts.Refresh = refresh
			return c.runLayout(cmd.Context(), args[0], observations, opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&observations, "observations", false, "input holds raw observations to correlate")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached layouts")
	cmd.Flags().StringSliceVar(&opts.Colors, "colors", opts.Colors, "node colors in input order, cycled")
	addPrepareFlags(cmd.Flags(), &opts)
	addLayoutFlags(cmd.Flags(), &opts)

	return cmd
}

// runLayout loads the matrix, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, observations bool, opts pipeline.Options, output string) error {
	m, err := loadMatrix(input, observations)
	if err != nil {
		return fmt.Errorf("load matrix %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinner(ctx, os.Stderr, fmt.Sprintf("Preparing %d variables...", m.Size()))
	detach := spinner.Attach()
	spinner.Start()

	result, resolved, err := runner.Layout(ctx, m, opts)
	detach()
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = layoutPath(input)
	}
	if err := diagram.WriteLayoutFile(result.Layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	for _, w := range result.Warnings {
		printWarning("%s", w)
	}
	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(statsFromResult(result, result.CacheInfo.LayoutHit))

	next := appName + " visualize " + outputPath
	if len(resolved.Colors) > 0 {
		next += " --colors " + strings.Join(resolved.Colors, ",")
	}
	printNextStep("Render", next)

	return nil
}

// layoutPath derives <input>.layout.json.
func layoutPath(input string) string {
	if input == stdinPath {
		return "chord.layout.json"
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
}
