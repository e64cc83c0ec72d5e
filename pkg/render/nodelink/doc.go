// Package nodelink renders the scene graph of a figure as a node-link
// diagram.
//
// # Overview
//
// The diagram shows the figure root, its axes, groups, lines and texts as
// boxes connected by parent-child arrows. Texts that end up in the TikZ
// overlay are highlighted, so the diagram answers "why is this label
// missing" at a glance.
//
// # Usage
//
// Convert a laid-out figure to DOT format, then render to SVG:
//
//	dot, err := nodelink.ToDOT(fig, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF conversion requires librsvg (rsvg-convert).
package nodelink
