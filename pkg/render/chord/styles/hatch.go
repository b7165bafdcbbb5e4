package styles

import (
	"strings"

	"github.com/matzehuels/chordviz/pkg/errors"
)

// Default hatches for positive and negative chords.
const (
	DefaultPositiveHatch = ""
	DefaultNegativeHatch = "---"
)

// HatchTile is the side of the square a hatch pattern repeats in, in pixels.
const HatchTile = 72.0

// linesPerChar is how many lines each repetition of a character adds to a
// tile.
const linesPerChar = 6

// Hatch counts the repetitions of each hatch direction.
type Hatch struct {
	Horizontal   int
	Vertical     int
	Diagonal     int
	BackDiagonal int
	Dots         int
}

// Segment is a line in tile coordinates (y down).
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// ParseHatch reads hatch notation. The empty string is no hatch.
func ParseHatch(s string) (Hatch, error) {
	var h Hatch
	for _, r := range s {
		switch r {
		case '-':
			h.Horizontal++
		case '|':
			h.Vertical++
		case '/':
			h.Diagonal++
		case '\\':
			h.BackDiagonal++
		case '+':
			h.Horizontal++
			h.Vertical++
		case 'x', 'X':
			h.Diagonal++
			h.BackDiagonal++
		case '.':
			h.Dots++
		default:
			return Hatch{}, errors.New(errors.ErrCodeInvalidOption, "unknown hatch character %q in %q", r, s)
		}
	}
	return h, nil
}

// IsZero reports whether h draws nothing.
func (h Hatch) IsZero() bool { return h == Hatch{} }

// String returns the hatch in canonical notation.
func (h Hatch) String() string {
	return strings.Repeat("-", h.Horizontal) +
		strings.Repeat("|", h.Vertical) +
		strings.Repeat("/", h.Diagonal) +
		strings.Repeat("\\", h.BackDiagonal) +
		strings.Repeat(".", h.Dots)
}

// Segments returns the lines of one tile of side size. Diagonal lines run
// past the tile edges so that adjacent tiles join seamlessly once clipped.
func (h Hatch) Segments(size float64) []Segment {
	var segs []Segment
	if n := h.Horizontal * linesPerChar; n > 0 {
		step := size / float64(n)
		for i := 0; i < n; i++ {
			y := (float64(i) + 0.5) * step
			segs = append(segs, Segment{0, y, size, y})
		}
	}
	if n := h.Vertical * linesPerChar; n > 0 {
		step := size / float64(n)
		for i := 0; i < n; i++ {
			x := (float64(i) + 0.5) * step
			segs = append(segs, Segment{x, 0, x, size})
		}
	}
	if n := h.Diagonal * linesPerChar; n > 0 {
		step := size / float64(n)
		for i := -n; i <= n; i++ {
			o := float64(i) * step
			segs = append(segs, Segment{o, size, o + size, 0})
		}
	}
	if n := h.BackDiagonal * linesPerChar; n > 0 {
		step := size / float64(n)
		for i := -n; i <= n; i++ {
			o := float64(i) * step
			segs = append(segs, Segment{o, 0, o + size, size})
		}
	}
	return segs
}

// DotCenters returns the dot positions of one tile of side size.
func (h Hatch) DotCenters(size float64) [][2]float64 {
	n := h.Dots * linesPerChar / 2
	if n == 0 {
		return nil
	}
	step := size / float64(n)
	centers := make([][2]float64, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			centers = append(centers, [2]float64{(float64(i) + 0.5) * step, (float64(j) + 0.5) * step})
		}
	}
	return centers
}

// DotRadius returns the radius of hatch dots for a tile of side size.
func (h Hatch) DotRadius(size float64) float64 {
	n := h.Dots * linesPerChar / 2
	if n == 0 {
		return 0
	}
	return size / float64(n) / 6
}
