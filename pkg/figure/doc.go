// Package figure provides the in-memory scene graph of a figure: a root
// [Figure] holding axes, groups, lines and texts.
//
// # Overview
//
// A figure is a tree of [Node] values. The set of node variants is closed:
//
//   - [*Group]: a plain container
//   - [*Axes]: a rectangular plot area with data limits, ticks and labels
//   - [*Text]: a text leaf with position, rotation, color and alignment
//   - [*Line]: a polyline in data coordinates
//
// Traversals switch on [Node.Kind] and recurse through [Node.Children].
//
// # Coordinates
//
// Display space is measured in pixels with the origin at the bottom-left
// corner; its size is the figure size in inches times the DPI. Figure
// fractions map [0,1]x[0,1] onto the whole canvas through
// [Figure.Transform]. Every axes adds an axes-fraction space
// ([Axes.AxesTransform]) and a data space ([Axes.DataTransform]).
//
// A [Text] stores its position in one of these systems ([Coords]) plus an
// offset in points. [Figure.Layout] resolves the local-to-display transform
// of every text; read positions only after a layout pass:
//
//	fig := figure.New(figure.WithSize(4, 3))
//	ax := fig.Subplots(1, 1)[0]
//	ax.SetXLabel("time (s)")
//	if err := fig.Layout(); err != nil {
//		return err
//	}
//	p := ax.XLabel().Transform().TransformPoint(ax.XLabel().Pos)
//
// # Generations
//
// [Figure.Generation] advances whenever nodes or ticks are added and after
// every layout pass. [Figure.Structure] advances only on the former.
// Consumers that hold per-node state across calls compare them to detect
// that the scene changed underneath them; a color backup only cares about
// structure.
//
// # Concurrency
//
// Figures are not safe for concurrent use. Different figures may be used
// from different goroutines.
package figure
