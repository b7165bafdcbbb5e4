// Package pipeline provides the chord diagram pipeline shared by the CLI and
// the HTTP API.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Prepare: drop variables without a correlation above the threshold and
//     reorder the rest so strongly correlated variables sit together
//  2. Layout: compute node arcs, ports and chords (or a Graphviz graph for
//     the nodelink view)
//  3. Render: style the layout and write it out (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
// Layouts and artifacts are cached by content hash.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Formats = []string{"svg", "png"}
//	result, err := runner.Execute(ctx, m, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Filtering every variable away is not an error: the result carries a
// warning and an empty diagram.
package pipeline

import (
	"io"
	"math"
	"reflect"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"honnef.co/go/curve"

	"github.com/matzehuels/chordviz/pkg/cache"
	"github.com/matzehuels/chordviz/pkg/diagram"
	"github.com/matzehuels/chordviz/pkg/errors"
	"github.com/matzehuels/chordviz/pkg/matrix"
	"github.com/matzehuels/chordviz/pkg/render/chord/blend"
	"github.com/matzehuels/chordviz/pkg/render/chord/layout"
	"github.com/matzehuels/chordviz/pkg/render/chord/ordering"
	"github.com/matzehuels/chordviz/pkg/render/chord/scene"
	"github.com/matzehuels/chordviz/pkg/render/chord/sink"
	"github.com/matzehuels/chordviz/pkg/render/chord/styles"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultVizType is the default visualization type.
	DefaultVizType = diagram.VizTypeChord

	// DefaultOrdering is the default node ordering.
	DefaultOrdering = ordering.NameGreedy

	// DefaultPNGScale renders PNGs at twice the frame size.
	DefaultPNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	diagram.VizTypeChord:    true,
	diagram.VizTypeNodelink: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline. It is decoded from
// API requests (JSON) and config files (TOML, YAML).
//
// Zero values are valid for the fractional options (Threshold, NodeGap,
// ChordAlpha, ...), so start from [DefaultOptions] and override.
type Options struct {
	// Prepare options
	KeepAll  bool   `json:"keep_all,omitempty" toml:"keep_all" yaml:"keep_all,omitempty"` // keep variables without correlations
	Ordering string `json:"ordering,omitempty" toml:"ordering" yaml:"ordering,omitempty" validate:"oneof=greedy none"`

	// Layout options
	VizType      string  `json:"viz_type,omitempty" toml:"viz_type" yaml:"viz_type,omitempty" validate:"oneof=chord nodelink"`
	Width        float64 `json:"width,omitempty" toml:"width" yaml:"width,omitempty" validate:"gt=0,lte=20000"`
	Height       float64 `json:"height,omitempty" toml:"height" yaml:"height,omitempty" validate:"gt=0,lte=20000"`
	Threshold    float64 `json:"threshold" toml:"threshold" yaml:"threshold" validate:"gte=0,lt=1"`
	NodeGap      float64 `json:"node_gap" toml:"node_gap" yaml:"node_gap" validate:"gte=0,lt=1"`
	Radius       float64 `json:"radius,omitempty" toml:"radius" yaml:"radius,omitempty" validate:"gt=0"`
	ShowDiagonal bool    `json:"show_diagonal,omitempty" toml:"show_diagonal" yaml:"show_diagonal,omitempty"`
	MinDist      float64 `json:"min_dist" toml:"min_dist" yaml:"min_dist" validate:"gte=0,lt=180"` // degrees
	Center       [2]float64 `json:"center" toml:"center" yaml:"center,flow"` // circle center in diagram units
	Scale        string  `json:"scale,omitempty" toml:"scale" yaml:"scale,omitempty" validate:"oneof=linear log"`
	MaxRho       float64 `json:"max_rho,omitempty" toml:"max_rho" yaml:"max_rho,omitempty" validate:"gt=0,lte=1"`
	MaxRhoRadius float64 `json:"max_rho_radius,omitempty" toml:"max_rho_radius" yaml:"max_rho_radius,omitempty" validate:"gt=0,lte=1"`

	// Render options
	Formats         []string `json:"formats,omitempty" toml:"formats" yaml:"formats,omitempty" validate:"dive,oneof=svg png pdf json"`
	Colors          []string `json:"colors,omitempty" toml:"colors" yaml:"colors,omitempty" validate:"dive,color"` // in input order, cycled
	Solid           bool     `json:"solid,omitempty" toml:"solid" yaml:"solid,omitempty"`                          // no color blending
	BlendSamples    int      `json:"blend_samples,omitempty" toml:"blend_samples" yaml:"blend_samples,omitempty" validate:"gte=2,lte=1000"`
	BlendResolution int      `json:"blend_resolution,omitempty" toml:"blend_resolution" yaml:"blend_resolution,omitempty" validate:"gt=0,lte=4000"`
	NodeLineWidth   float64  `json:"node_line_width" toml:"node_line_width" yaml:"node_line_width" validate:"gte=0"`
	LabelPad        float64  `json:"label_pad" toml:"label_pad" yaml:"label_pad" validate:"gte=0"`
	FontSize        float64  `json:"font_size,omitempty" toml:"font_size" yaml:"font_size,omitempty" validate:"gt=0"`
	HideLabels      bool     `json:"hide_labels,omitempty" toml:"hide_labels" yaml:"hide_labels,omitempty"`
	ChordLineWidth  float64  `json:"chord_line_width" toml:"chord_line_width" yaml:"chord_line_width" validate:"gte=0"`
	ChordAlpha      float64  `json:"chord_alpha" toml:"chord_alpha" yaml:"chord_alpha" validate:"gte=0,lte=1"`
	PositiveHatch   string   `json:"positive_hatch,omitempty" toml:"positive_hatch" yaml:"positive_hatch,omitempty" validate:"hatch"`
	NegativeHatch   string   `json:"negative_hatch" toml:"negative_hatch" yaml:"negative_hatch" validate:"hatch"`
	Detailed        bool     `json:"detailed,omitempty" toml:"detailed" yaml:"detailed,omitempty"` // nodelink edge labels
	PNGScale        float64  `json:"png_scale,omitempty" toml:"png_scale" yaml:"png_scale,omitempty" validate:"gt=0,lte=16"`
	EmbedFont       bool     `json:"embed_font,omitempty" toml:"embed_font" yaml:"embed_font,omitempty"`
	Transparent     bool     `json:"transparent,omitempty" toml:"transparent" yaml:"transparent,omitempty"`

	// Refresh skips cache reads.
	Refresh bool `json:"refresh,omitempty" toml:"-" yaml:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-" yaml:"-" validate:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// DefaultOptions returns the standard options.
func DefaultOptions() Options {
	return Options{
		Ordering:        DefaultOrdering,
		VizType:         DefaultVizType,
		Width:           scene.DefaultWidth,
		Height:          scene.DefaultHeight,
		Threshold:       layout.DefaultThreshold,
		NodeGap:         layout.DefaultNodeGap,
		Radius:          layout.DefaultRadius,
		MinDist:         layout.DefaultMinDist * 180 / math.Pi,
		Scale:           diagram.ScaleLinear,
		MaxRho:          layout.DefaultMaxRho,
		MaxRhoRadius:    layout.DefaultMaxRhoRadius,
		Formats:         []string{FormatSVG},
		BlendSamples:    blend.DefaultSamples,
		BlendResolution: blend.DefaultResolution,
		NodeLineWidth:   scene.DefaultNodeLineWidth,
		LabelPad:        scene.DefaultLabelPad,
		FontSize:        scene.DefaultFontSize,
		ChordLineWidth:  scene.DefaultChordLineWidth,
		ChordAlpha:      scene.DefaultChordAlpha,
		PositiveHatch:   styles.DefaultPositiveHatch,
		NegativeHatch:   styles.DefaultNegativeHatch,
		PNGScale:        DefaultPNGScale,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Matrix is the prepared matrix; nil when every variable was filtered out.
	Matrix *matrix.Matrix

	// MatrixHash is the content hash of the prepared matrix.
	MatrixHash string

	// Layout is the serialized layout.
	Layout diagram.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Removed lists the variables dropped by the relevance filter.
	Removed []string

	// Warnings are conditions worth reporting that did not stop the run.
	Warnings []string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Empty reports whether the diagram has no nodes.
func (r *Result) Empty() bool { return r.Matrix == nil }

// Stats contains pipeline execution statistics.
type Stats struct {
	Variables       int // input variables
	Nodes           int // variables left after filtering
	Chords          int
	CrossingsBefore int // with nodes in input order
	CrossingsAfter  int // with nodes in final order
	PrepareTime     time.Duration
	LayoutTime      time.Duration
	RenderTime      time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether layout result came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation
// =============================================================================

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("color", func(fl validator.FieldLevel) bool {
			_, err := styles.ParseColor(fl.Field().String())
			return err == nil
		})
		_ = validate.RegisterValidation("hatch", func(fl validator.FieldLevel) bool {
			_, err := styles.ParseHatch(fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// formatValidationError reports the first failed field with its JSON name.
func formatValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return errors.Wrap(errors.ErrCodeInvalidOption, err, "invalid options")
	}
	e := verrs[0]
	field := e.Namespace()
	if _, after, ok := strings.Cut(field, "."); ok {
		field = after
	}
	switch e.Tag() {
	case "oneof":
		return errors.New(errors.ErrCodeInvalidOption, "%s: %v is not one of: %s", field, e.Value(), e.Param())
	case "gt", "gte", "lt", "lte":
		return errors.New(errors.ErrCodeInvalidOption, "%s: %v must be %s %s", field, e.Value(), comparison(e.Tag()), e.Param())
	case "color":
		return errors.New(errors.ErrCodeInvalidColor, "%s: invalid color %q", field, e.Value())
	case "hatch":
		return errors.New(errors.ErrCodeInvalidOption, "%s: invalid hatch %q", field, e.Value())
	default:
		return errors.New(errors.ErrCodeInvalidOption, "%s: validation failed (%s)", field, e.Tag())
	}
}

func comparison(tag string) string {
	switch tag {
	case "gt":
		return ">"
	case "gte":
		return ">="
	case "lt":
		return "<"
	}
	return "<="
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidVizType, "invalid viz_type: %q (must be one of: chord, nodelink)", vizType)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults fills the fields whose zero value is never valid
// and validates the rest. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	def := DefaultOptions()
	if o.Ordering == "" {
		o.Ordering = def.Ordering
	}
	if o.VizType == "" {
		o.VizType = def.VizType
	}
	if o.Width == 0 {
		o.Width = def.Width
	}
	if o.Height == 0 {
		o.Height = def.Height
	}
	if o.Radius == 0 {
		o.Radius = def.Radius
	}
	if o.Scale == "" {
		o.Scale = def.Scale
	}
	if o.MaxRho == 0 {
		o.MaxRho = def.MaxRho
	}
	if o.MaxRhoRadius == 0 {
		o.MaxRhoRadius = def.MaxRhoRadius
	}
	if len(o.Formats) == 0 {
		o.Formats = def.Formats
	}
	if o.BlendSamples == 0 {
		o.BlendSamples = def.BlendSamples
	}
	if o.BlendResolution == 0 {
		o.BlendResolution = def.BlendResolution
	}
	if o.FontSize == 0 {
		o.FontSize = def.FontSize
	}
	if o.PNGScale == 0 {
		o.PNGScale = def.PNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if err := validatorInstance().Struct(o); err != nil {
		return formatValidationError(err)
	}
	if slices.Contains(o.Formats, FormatPNG) {
		w, h := math.Ceil(o.Width*o.PNGScale), math.Ceil(o.Height*o.PNGScale)
		if w > sink.MaxPNGSide || h > sink.MaxPNGSide {
			return errors.New(errors.ErrCodeInvalidOption,
				"png_scale: a %.0fx%.0f png exceeds %d pixels per side", w, h, sink.MaxPNGSide)
		}
	}
	o.validated = true
	return nil
}

// IsChord returns true if this is a chord visualization.
func (o *Options) IsChord() bool {
	return o.VizType == "" || o.VizType == diagram.VizTypeChord
}

// IsNodelink returns true if this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == diagram.VizTypeNodelink
}

// LayoutOptions returns the geometry options.
func (o *Options) LayoutOptions() layout.Options {
	l := layout.DefaultOptions()
	l.Radius = o.Radius
	l.NodeGap = o.NodeGap
	l.Threshold = o.Threshold
	l.ShowDiagonal = o.ShowDiagonal
	l.Center = curve.Pt(o.Center[0], o.Center[1])
	l.MinDist = o.MinDist * math.Pi / 180
	l.Scale = o.Scale
	l.MaxRho = o.MaxRho
	l.MaxRhoRadius = o.MaxRhoRadius
	return l
}

// Style returns the scene style. Colors are taken in layout order.
func (o *Options) Style() (scene.Style, error) {
	colors, err := styles.ParseColors(o.Colors)
	if err != nil {
		return scene.Style{}, err
	}
	pos, err := styles.ParseHatch(o.PositiveHatch)
	if err != nil {
		return scene.Style{}, err
	}
	neg, err := styles.ParseHatch(o.NegativeHatch)
	if err != nil {
		return scene.Style{}, err
	}
	return scene.Style{
		Colors:          colors,
		NodeLineWidth:   o.NodeLineWidth,
		LabelPad:        o.LabelPad,
		FontSize:        o.FontSize,
		HideLabels:      o.HideLabels,
		ChordLineWidth:  o.ChordLineWidth,
		ChordAlpha:      o.ChordAlpha,
		Blend:           !o.Solid,
		BlendSamples:    o.BlendSamples,
		BlendResolution: o.BlendResolution,
		PositiveHatch:   pos,
		NegativeHatch:   neg,
	}, nil
}

// Frame returns the output frame.
func (o *Options) Frame() scene.Frame {
	return scene.Frame{Width: o.Width, Height: o.Height}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	geometry := struct {
		Layout   layout.Options `json:"layout"`
		Colors   []string       `json:"colors,omitempty"` // part of the DOT source
		Detailed bool           `json:"detailed,omitempty"`
	}{Layout: o.LayoutOptions()}
	if o.IsNodelink() {
		geometry.Colors = o.Colors
		geometry.Detailed = o.Detailed
	}
	hash, _ := cache.HashJSON(geometry)
	return cache.LayoutKeyOpts{
		VizType:  o.VizType,
		Width:    o.Width,
		Height:   o.Height,
		Geometry: hash,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	style := struct {
		Colors          []string
		Solid           bool
		BlendSamples    int
		BlendResolution int
		NodeLineWidth   float64
		LabelPad        float64
		FontSize        float64
		HideLabels      bool
		ChordLineWidth  float64
		ChordAlpha      float64
		PositiveHatch   string
		NegativeHatch   string
		EmbedFont       bool
		Transparent     bool
	}{
		o.Colors, o.Solid, o.BlendSamples, o.BlendResolution, o.NodeLineWidth, o.LabelPad,
		o.FontSize, o.HideLabels, o.ChordLineWidth, o.ChordAlpha, o.PositiveHatch,
		o.NegativeHatch, o.EmbedFont, o.Transparent,
	}
	hash, _ := cache.HashJSON(style)
	opts := cache.ArtifactKeyOpts{Format: format, Style: hash}
	if format == FormatPNG {
		opts.Scale = o.PNGScale
	}
	return opts
}

// colorsInLayoutOrder maps the input-order colors onto the prepared nodes.
// index[k] is the input position of node k.
func colorsInLayoutOrder(colors []string, index []int) []string {
	if len(colors) == 0 {
		return nil
	}
	out := make([]string, len(index))
	for k, i := range index {
		out[k] = colors[i%len(colors)]
	}
	return out
}

func matrixHash(m *matrix.Matrix) string {
	if m == nil {
		return cache.Hash(nil)
	}
	h, _ := cache.HashJSON(struct {
		Names  []string    `json:"names"`
		Values [][]float64 `json:"values"`
	}{m.Names(), m.Values()})
	return h
}
