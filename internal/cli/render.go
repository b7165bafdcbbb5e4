package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chordviz/pkg/pipeline"
)

// renderCommand creates the render command, the whole pipeline in one step.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output       string
		observations bool
		refresh      bool
	)
	opts := pipeline.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "render [matrix]",
		Short: "Render a correlation matrix as a chord diagram",
		Long: `Render a correlation matrix as a chord diagram.

The input is a square matrix with a header row of variable names (.csv, .tsv),
or a {"names": [...], "matrix": [[...]]} document (.json, .yaml). Use
--observations to correlate raw data instead, and "-" to read CSV from stdin.

Variables without a correlation above --threshold are dropped, the rest are
reordered to keep strongly correlated variables next to each other.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.applyConfig(cmd.Flags(), &opts); err != nil {
				return err
			}
			opts.Refresh = refresh
			return c.runRender(cmd.Context(), args[0], observations, opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&observations, "observations", false, "input holds raw observations to correlate")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached results")
	addPrepareFlags(cmd.Flags(), &opts)
	addLayoutFlags(cmd.Flags(), &opts)
	addStyleFlags(cmd.Flags(), &opts)

	return cmd
}

// runRender loads the matrix, executes the pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, observations bool, opts pipeline.Options, output string) error {
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
	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, os.Stderr, fmt.Sprintf("Preparing %d variables...", m.Size()))
	detach := spinner.Attach()
	spinner.Start()

	result, err := runner.Execute(ctx, m, opts)
	detach()
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(result.Artifacts)))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	for _, w := range result.Warnings {
		printWarning("%s", w)
	}
	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		stats:     statsFromResult(result, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit),
	})
}

// artifactWriteParams describes rendered artifacts and where they go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	stats     diagramStats
}

// writeArtifacts writes every artifact to its file. A single format goes to
// --output as given; several formats share a base path and differ by
// extension.
func writeArtifacts(p artifactWriteParams) error {
	formats := p.formats
	if len(formats) == 0 {
		for f := range p.artifacts {
			formats = append(formats, f)
		}
		sort.Strings(formats)
	}

	var paths []string
	for _, format := range formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		path := outputPath(p.output, p.input, format, len(formats))
		if err := writeFile(path, data); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	if p.output == stdinPath {
		return nil
	}
	printSuccess("Render complete")
	for _, path := range paths {
		printFile(path)
	}
	printStats(p.stats)
	return nil
}

// outputPath picks the file for one format.
func outputPath(output, input, format string, count int) string {
	if output != "" && count == 1 {
		return output
	}
	return basePath(output, input) + "." + format
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		if input == stdinPath {
			return "chord"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func writeFile(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// openOutput opens path for writing; "-" is standard output.
func openOutput(path string) (io.WriteCloser, error) {
	if path == stdinPath {
		return nopCloser{os.Stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
