package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/matzehuels/chordviz/pkg/pipeline"
)

// addPrepareFlags binds the filtering and ordering options.
func addPrepareFlags(fs *pflag.FlagSet, opts *pipeline.Options) {
	fs.BoolVar(&opts.KeepAll, "keep-all", opts.KeepAll, "keep variables without any correlation above the threshold")
	fs.StringVar(&opts.Ordering, "ordering", opts.Ordering, "node ordering: greedy (default), none")
}

// addLayoutFlags binds the geometry options.
func addLayoutFlags(fs *pflag.FlagSet, opts *pipeline.Options) {
	fs.StringVarP(&opts.VizType, "type", "t", opts.VizType, "visualization type: chord (default), nodelink")
	fs.Float64Var(&opts.Width, "width", opts.Width, "frame width")
	fs.Float64Var(&opts.Height, "height", opts.Height, "frame height")
	fs.Float64Var(&opts.Threshold, "threshold", opts.Threshold, "smallest |rho| drawn as a chord")
	fs.Float64Var(&opts.NodeGap, "node-gap", opts.NodeGap, "share of the circle left as gaps between nodes")
	fs.Float64Var(&opts.Radius, "radius", opts.Radius, "circle radius in layout units")
	fs.BoolVar(&opts.ShowDiagonal, "show-diagonal", opts.ShowDiagonal, "count the diagonal in node sizes")
	fs.Float64Var(&opts.MinDist, "min-dist", opts.MinDist, "angular distance in degrees below which chords bow the most")
	fs.Var((*pointValue)(&opts.Center), "center", "circle center as x,y in layout units")
	fs.StringVar(&opts.Scale, "scale", opts.Scale, "port width scale: linear (default), log")
	fs.Float64Var(&opts.MaxRho, "max-rho", opts.MaxRho, "|rho| at which chords reach the inner circle")
	fs.Float64Var(&opts.MaxRhoRadius, "max-rho-radius", opts.MaxRhoRadius, "radius of the inner circle as a share of the radius")
}

// addStyleFlags binds the options that only affect rendering.
func addStyleFlags(fs *pflag.FlagSet, opts *pipeline.Options) {
	fs.StringSliceVarP(&opts.Formats, "format", "f", opts.Formats, "output format(s): svg (default), png, pdf, json")
	fs.StringSliceVar(&opts.Colors, "colors", opts.Colors, "node colors, cycled (names or #rrggbb)")
	fs.BoolVar(&opts.Solid, "solid", opts.Solid, "fill chords with a flat color instead of a gradient")
	fs.IntVar(&opts.BlendSamples, "blend-samples", opts.BlendSamples, "gradient samples along each chord")
	fs.IntVar(&opts.BlendResolution, "blend-resolution", opts.BlendResolution, "pixels per layout unit of embedded gradients")
	fs.Float64Var(&opts.NodeLineWidth, "node-line-width", opts.NodeLineWidth, "node arc width in pixels")
	fs.Float64Var(&opts.LabelPad, "label-pad", opts.LabelPad, "label distance from the arcs in pixels")
	fs.Float64Var(&opts.FontSize, "font-size", opts.FontSize, "label font size")
	fs.BoolVar(&opts.HideLabels, "hide-labels", opts.HideLabels, "do not draw labels")
	fs.Float64Var(&opts.ChordLineWidth, "chord-line-width", opts.ChordLineWidth, "chord outline width")
	fs.Float64Var(&opts.ChordAlpha, "chord-alpha", opts.ChordAlpha, "chord opacity")
	fs.StringVar(&opts.PositiveHatch, "positive-hatch", opts.PositiveHatch, "hatch for positive chords (- | / \\ + x X .)")
	fs.StringVar(&opts.NegativeHatch, "negative-hatch", opts.NegativeHatch, "hatch for negative chords")
	fs.BoolVar(&opts.Detailed, "detailed", opts.Detailed, "label edges with rho (nodelink)")
	fs.Float64Var(&opts.PNGScale, "png-scale", opts.PNGScale, "PNG pixels per SVG pixel")
	fs.BoolVar(&opts.EmbedFont, "embed-font", opts.EmbedFont, "embed the label font in SVG output")
	fs.BoolVar(&opts.Transparent, "transparent", opts.Transparent, "no background")
}

// pointValue is a pflag.Value for an "x,y" pair.
type pointValue [2]float64

func (p *pointValue) String() string {
	return strconv.FormatFloat(p[0], 'g', -1, 64) + "," + strconv.FormatFloat(p[1], 'g', -1, 64)
}

func (p *pointValue) Set(s string) error {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return fmt.Errorf("want x,y, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return err
	}
	*p = pointValue{x, y}
	return nil
}

func (p *pointValue) Type() string { return "x,y" }
