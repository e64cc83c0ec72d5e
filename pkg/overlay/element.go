package overlay

import (
	"strings"

	"github.com/gogpu/gg"

	"github.com/matzehuels/figtex/pkg/figure"
)

// Element is a text reached by [Walk] together with its context.
type Element struct {
	Text   *figure.Text
	Axes   *figure.Axes // most recently entered axes, nil if none
	Figure *figure.Figure
}

// DisplayXY returns the text anchor in display pixels.
func (e Element) DisplayXY() gg.Point {
	return e.Text.Transform().TransformPoint(e.Text.Pos)
}

// FigureXY returns the text anchor in figure fractions, (0,0) being the
// bottom-left corner of the canvas. The result does not depend on the DPI.
func (e Element) FigureXY() gg.Point {
	return e.Figure.Transform().Invert().TransformPoint(e.DisplayXY())
}

// AxesXY returns the text anchor in fractions of the element's axes.
// ok is false when the element has no axes.
func (e Element) AxesXY() (p gg.Point, ok bool) {
	if e.Axes == nil {
		return gg.Point{}, false
	}
	return e.Axes.AxesTransform().Invert().TransformPoint(e.DisplayXY()), true
}

// InsideAxes reports whether the text survives clipping. Texts without
// clipping or without axes are always inside; otherwise one coordinate in
// [0,1] (axes fractions) is enough.
func (e Element) InsideAxes() bool {
	if !e.Text.ClipOn || e.Axes == nil {
		return true
	}
	p, _ := e.AxesXY()
	return (0 <= p.X && p.X <= 1) || (0 <= p.Y && p.Y <= 1)
}

// Visible reports whether the text should be reproduced in the overlay:
// it must be shown (flagged visible and not an out-of-range tick label),
// have non-blank content, a non-zero alpha and survive clipping.
func (e Element) Visible() bool {
	t := e.Text
	if !t.Shown() {
		return false
	}
	if strings.TrimSpace(t.Content) == "" {
		return false
	}
	if t.Color.A == 0 {
		return false
	}
	return e.InsideAxes()
}

// Anchor returns the TikZ anchor for the text alignment.
func (e Element) Anchor() string {
	return Anchor(e.Text.VAlign, e.Text.HAlign)
}

// Record builds the positioned record for the element.
func (e Element) Record() Record {
	return Record{
		Text:     e.Text.Content,
		Position: e.FigureXY(),
		Anchor:   e.Anchor(),
		Rotation: normalizeAngle(e.Text.Rotation),
		Color:    e.Text.Color,
	}
}
