// Package overlay extracts the text of a laid-out figure as positioned
// records and hides that text for a text-free render.
//
// # Overview
//
// Exporting a figure for LaTeX produces two artifacts: an image without any
// text and a TikZ fragment that typesets the text on top of it. This package
// computes what goes into the fragment and toggles the text off while the
// image is rendered:
//
//   - [Walk] yields every text of the scene graph with the axes it sits in
//   - [Element.Visible] decides whether a text is worth reproducing
//   - [Element.FigureXY] projects the text anchor to figure fractions
//   - [Anchor] turns the text alignment into a TikZ anchor
//   - [HideAll] and [Restore] bracket the image render
//
// [Extract] combines the first four into a slice of [Record] values.
//
// # Layout
//
// Positions are read from the transforms resolved by [figure.Figure.Layout].
// This package never triggers a layout pass; callers run it first:
//
//	if err := fig.Layout(); err != nil {
//		return err
//	}
//	records, err := overlay.Extract(fig)
//
// Nothing is cached: every call reads the current transforms, so a record
// reflects the figure as it was at the time of the call.
//
// # Clipping
//
// A clip-enabled text is dropped when its anchor lies outside its axes. The
// test accepts a point when either coordinate, in axes fractions, lies in
// [0,1]. A text above the axes but horizontally within it is therefore kept.
//
// # Hiding text
//
// [HideAll] sets every text, visible or not, to a fully transparent color
// so the renderer keeps the layout unchanged. The returned [ColorBackup] is
// consumed by exactly one [Restore]:
//
//	backup, err := overlay.HideAll(fig)
//	if err != nil {
//		return err
//	}
//	defer func() { err = stderrors.Join(err, overlay.Restore(fig, backup)) }()
//	// render fig
//
// HideAll and Restore are not safe for concurrent use on the same figure, and
// a second HideAll before Restore fails instead of overwriting the backup.
package overlay
