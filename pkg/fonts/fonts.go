// Package fonts provides the embedded font used to draw figure text.
//
// The Go Regular font from golang.org/x/image is compiled into the binary,
// so raster output does not depend on fonts installed on the system.
package fonts

import (
	"encoding/base64"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font-family name of the embedded font.
const FontFamily = "Go"

// FallbackFontFamily lists fonts for SVG viewers that ignore the embedded face.
const FallbackFontFamily = `'Go', 'DejaVu Sans', 'Helvetica', 'Arial', sans-serif`

// RegularTTF returns the TTF font data.
func RegularTTF() []byte {
	return goregular.TTF
}

// Cache for the parsed font source (parsed once on first access).
var (
	source     *text.FontSource
	sourceErr  error
	sourceOnce sync.Once
)

// Regular returns the parsed font source shared by all renderers.
// The source must not be closed by callers.
func Regular() (*text.FontSource, error) {
	sourceOnce.Do(func() {
		source, sourceErr = text.NewFontSource(goregular.TTF)
	})
	return source, sourceErr
}

// Face returns a face of the embedded font at size pixels.
func Face(size float64) (text.Face, error) {
	src, err := Regular()
	if err != nil {
		return nil, err
	}
	return src.Face(size), nil
}

// Cache for base64-encoded font (computed once on first access).
var (
	ttfBase64     string
	ttfBase64Once sync.Once
)

// RegularTTFBase64 returns the TTF font data as a base64 string, ready for
// a CSS data URL. The result is cached after first computation.
func RegularTTFBase64() string {
	ttfBase64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(goregular.TTF)
	})
	return ttfBase64
}
