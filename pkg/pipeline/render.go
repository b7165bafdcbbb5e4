package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/chordviz/pkg/diagram"
	"github.com/matzehuels/chordviz/pkg/render/chord/layout"
	"github.com/matzehuels/chordviz/pkg/render/chord/scene"
	"github.com/matzehuels/chordviz/pkg/render/chord/sink"
	"github.com/matzehuels/chordviz/pkg/render/nodelink"
)

// RenderFromLayoutData renders output from serialized layout data.
// This is useful when the layout was computed elsewhere (e.g., cached).
func RenderFromLayoutData(ctx context.Context, layoutData []byte, opts Options) (map[string][]byte, error) {
	parsed, err := diagram.UnmarshalLayout(layoutData)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return RenderFromLayout(ctx, parsed, opts)
}

// RenderFromLayout renders every format in opts.Formats. The layout's frame
// and visualization type win over opts.
func RenderFromLayout(ctx context.Context, l diagram.Layout, opts Options) (map[string][]byte, error) {
	if l.Width > 0 && l.Height > 0 {
		opts.Width, opts.Height = l.Width, l.Height
	}
	if l.IsNodelink() {
		return renderNodelink(ctx, l, opts)
	}
	return renderChord(ctx, l, opts)
}

// renderChord styles a chord layout and writes each format.
func renderChord(ctx context.Context, d diagram.Layout, opts Options) (map[string][]byte, error) {
	l, err := layout.Parse(d)
	if err != nil {
		return nil, fmt.Errorf("convert layout: %w", err)
	}
	style, err := opts.Style()
	if err != nil {
		return nil, err
	}
	s, err := scene.Compose(l, style, opts.Frame())
	if err != nil {
		return nil, fmt.Errorf("compose scene: %w", err)
	}

	var svgOpts []sink.SVGOption
	if opts.EmbedFont {
		svgOpts = append(svgOpts, sink.WithEmbeddedFont())
	}
	if opts.Transparent {
		svgOpts = append(svgOpts, sink.WithTransparent())
	}
	pngOpts := []sink.PNGOption{sink.WithScale(opts.PNGScale)}
	if opts.Transparent {
		pngOpts = append(pngOpts, sink.WithTransparentPNG())
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = sink.RenderSVG(ctx, s, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, s, pngOpts...)
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, s, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(l, opts.Frame())
		default:
			return nil, ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// renderNodelink renders the layout's DOT source with Graphviz.
func renderNodelink(ctx context.Context, l diagram.Layout, opts Options) (map[string][]byte, error) {
	dot, err := nodelink.Parse(l)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot, opts.PNGScale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(ctx, dot)
		case FormatJSON:
			data, err = diagram.MarshalLayout(l)
		default:
			return nil, ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
