package io

import (
	"fmt"
	"regexp"

	"github.com/gogpu/gg"
)

// description is the on-disk form of a figure. The same struct decodes
// JSON and TOML.
type description struct {
	Width     float64    `json:"width,omitempty" toml:"width,omitempty"`
	Height    float64    `json:"height,omitempty" toml:"height,omitempty"`
	DPI       float64    `json:"dpi,omitempty" toml:"dpi,omitempty"`
	Journal   string     `json:"journal,omitempty" toml:"journal,omitempty"`
	FontSize  float64    `json:"font_size,omitempty" toml:"font_size,omitempty"`
	Facecolor string     `json:"facecolor,omitempty" toml:"facecolor,omitempty"`
	Texts     []textDesc `json:"texts,omitempty" toml:"texts,omitempty"`
	Axes      []axesDesc `json:"axes,omitempty" toml:"axes,omitempty"`
}

type axesDesc struct {
	Rect        []float64  `json:"rect" toml:"rect"`
	XLim        []float64  `json:"xlim,omitempty" toml:"xlim,omitempty"`
	YLim        []float64  `json:"ylim,omitempty" toml:"ylim,omitempty"`
	Title       string     `json:"title,omitempty" toml:"title,omitempty"`
	XLabel      string     `json:"xlabel,omitempty" toml:"xlabel,omitempty"`
	YLabel      string     `json:"ylabel,omitempty" toml:"ylabel,omitempty"`
	XTicks      []tickDesc `json:"xticks,omitempty" toml:"xticks,omitempty"`
	YTicks      []tickDesc `json:"yticks,omitempty" toml:"yticks,omitempty"`
	Lines       []lineDesc `json:"lines,omitempty" toml:"lines,omitempty"`
	Texts       []textDesc `json:"texts,omitempty" toml:"texts,omitempty"`
	Annotations []textDesc `json:"annotations,omitempty" toml:"annotations,omitempty"`
}

type tickDesc struct {
	Value float64 `json:"value" toml:"value"`
	Label *string `json:"label,omitempty" toml:"label,omitempty"`
}

type lineDesc struct {
	X     []float64 `json:"x" toml:"x"`
	Y     []float64 `json:"y" toml:"y"`
	Color string    `json:"color,omitempty" toml:"color,omitempty"`
	Width float64   `json:"width,omitempty" toml:"width,omitempty"`
}

// textDesc holds one text entry. Empty or zero fields keep the default of
// the method that creates the text.
type textDesc struct {
	Text     string    `json:"text" toml:"text"`
	X        float64   `json:"x" toml:"x"`
	Y        float64   `json:"y" toml:"y"`
	Coords   string    `json:"coords,omitempty" toml:"coords,omitempty"`
	Offset   []float64 `json:"offset,omitempty" toml:"offset,omitempty"`
	Color    string    `json:"color,omitempty" toml:"color,omitempty"`
	Rotation float64   `json:"rotation,omitempty" toml:"rotation,omitempty"`
	VA       string    `json:"va,omitempty" toml:"va,omitempty"`
	HA       string    `json:"ha,omitempty" toml:"ha,omitempty"`
	Visible  *bool     `json:"visible,omitempty" toml:"visible,omitempty"`
	Clip     *bool     `json:"clip,omitempty" toml:"clip,omitempty"`
	FontSize float64   `json:"font_size,omitempty" toml:"font_size,omitempty"`
}

var hexColorRe = regexp.MustCompile(`^#?([0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// parseColor accepts #rgb, #rgba, #rrggbb and #rrggbbaa.
func parseColor(s string) (gg.RGBA, error) {
	if !hexColorRe.MatchString(s) {
		return gg.RGBA{}, fmt.Errorf("invalid color %q (want #rrggbb or #rrggbbaa)", s)
	}
	return gg.Hex(s), nil
}

// formatColor writes c as #rrggbbaa, or #rrggbb when opaque.
func formatColor(c gg.RGBA) string {
	r, g, b, a := byteOf(c.R), byteOf(c.G), byteOf(c.B), byteOf(c.A)
	if a == 255 {
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, a)
}

func byteOf(v float64) uint8 {
	return uint8(min(max(v, 0), 1)*255 + 0.5)
}
