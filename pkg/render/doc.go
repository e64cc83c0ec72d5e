// Package render draws a laid-out figure as SVG, PNG or PDF.
//
// # Overview
//
// All formats share one flattened scene: axes backgrounds, lines clipped
// to their axes, axes frames with tick marks, then texts. Coordinates are
// display pixels of the figure, optionally multiplied by [WithScale].
//
//	svg := render.RenderSVG(fig)
//	png, err := render.RenderPNG(fig, render.WithScale(2))
//	pdf, err := render.RenderPDF(ctx, fig)
//
// Texts that are fully transparent still occupy their place: SVG output
// keeps them as elements with zero opacity and PNG output simply does not
// paint them. This is what makes a render taken while the text of a figure
// is hidden line up with the TikZ overlay.
//
// Clip-enabled texts are dropped, not cut, when their anchor lies outside
// both the horizontal and the vertical extent of their axes. A text above
// the axes but horizontally within it is drawn whole, as in the overlay.
//
// # Format Conversion
//
// PNG output is rasterized in-process with github.com/gogpu/gg using the
// embedded Go font. PDF output converts the SVG with the external
// rsvg-convert tool (from librsvg); [ToPDF] and [ToPNG] expose that
// conversion for arbitrary SVG.
//
// # Debug Markers
//
// [WithAnchors] draws a red "+" at each given figure-fraction point, which
// is useful to check where overlay text will be anchored.
package render
