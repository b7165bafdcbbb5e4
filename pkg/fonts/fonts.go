// Package fonts provides the font used for diagram labels.
//
// Labels are set in Go Regular, which ships with golang.org/x/image, so both
// the SVG and the PNG sink render text without any system fonts installed.
package fonts

import (
	"encoding/base64"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font-family name under which the font is embedded.
const FontFamily = "Go"

// FallbackFontFamily is the font-family list written into SVG output.
const FallbackFontFamily = `Go, 'Helvetica Neue', Helvetica, Arial, sans-serif`

// GoRegularTTF returns the TTF font data.
func GoRegularTTF() []byte {
	return goregular.TTF
}

var (
	ttfBase64     string
	ttfBase64Once sync.Once

	parsed     *truetype.Font
	parsedErr  error
	parsedOnce sync.Once
)

// GoRegularBase64 returns the TTF font data as a base64 string.
// The result is cached after first computation.
func GoRegularBase64() string {
	ttfBase64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(goregular.TTF)
	})
	return ttfBase64
}

// Face returns a font face of the given size in pixels.
func Face(size float64) (font.Face, error) {
	parsedOnce.Do(func() {
		parsed, parsedErr = truetype.Parse(goregular.TTF)
	})
	if parsedErr != nil {
		return nil, parsedErr
	}
	return truetype.NewFace(parsed, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}
