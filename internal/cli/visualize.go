package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chordviz/pkg/diagram"
	"github.com/matzehuels/chordviz/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		output  string
		refresh bool
	)
	opts := pipeline.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a diagram from a computed layout",
		Long: `Render a diagram from a computed layout.

The visualize command takes a layout.json file (produced by 'layout') and
renders it to SVG, PNG, or PDF format. The layout contains all positioning
information, so this step is purely about styling. --colors apply in layout
order.

Use 'render' as a shortcut to go directly from a matrix to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.applyConfig(cmd.Flags(), &opts); err != nil {
				return err
			}
			opts.Refresh = refresh
			return c.runVisualize(cmd.Context(), args[0], opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached artifacts")
	addStyleFlags(cmd.Flags(), &opts)

	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string) error {
	l, err := diagram.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	// The layout decides the viz type and frame.
	if l.VizType != "" {
		opts.VizType = l.VizType
	}
	if l.Width > 0 && l.Height > 0 {
		opts.Width, opts.Height = l.Width, l.Height
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinner(ctx, os.Stderr, fmt.Sprintf("Rendering %s...", l.VizType))
	detach := spinner.Attach()
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, l, opts)
	detach()
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     trimLayoutExt(input),
		output:    output,
		stats: diagramStats{
			variables: len(l.Names),
			nodes:     len(l.Names),
			chords:    len(l.Chords),
			cached:    cacheHit,
		},
	})
}

// trimLayoutExt maps x.layout.json to x, so artifacts land next to it as
// x.svg instead of x.layout.svg.
func trimLayoutExt(path string) string {
	if base, ok := strings.CutSuffix(path, ".layout.json"); ok && base != "" {
		return base + ".json"
	}
	return path
}
