// Package pkg provides the libraries behind figtex.
//
// # Overview
//
// figtex splits a figure into two files: an image with every text made
// transparent, and a TikZ overlay (.pdf_tex) that places the texts back on
// top of it. LaTeX then typesets labels, ticks and titles in the document
// font, and the figure scales with a single length command.
//
// # Architecture
//
// The data flow of an export:
//
//	figure description (.json / .toml)
//	         ↓
//	    [io] package (build the scene graph)
//	         ↓
//	    [figure] package (layout: resolve text transforms)
//	         ↓
//	    [overlay] package (walk, classify, extract records)
//	         ↓
//	    [latex] + [render] packages (overlay markup, text-free image)
//	         ↓
//	    <base>.pdf + <base>.pdf_tex
//
// [pipeline] runs these stages with validation, hooks and logging.
//
// # Quick Start
//
//	fig := figure.New(figure.WithJournal(figure.Journals["epj"]))
//	ax := fig.Subplots(1, 1)[0]
//	ax.Plot(xs, ys)
//	ax.SetXLabel("$t$ [s]")
//
//	runner := pipeline.NewRunner(nil)
//	result, err := runner.Export(ctx, fig, "out/plot", pipeline.Options{})
//
// # Main Packages
//
// [figure] - Scene graph: figures, axes, groups, lines and texts with their
// coordinate systems.
//
// [overlay] - Traversal of the scene graph, the visibility rules that decide
// which texts reach the overlay, and the color toggle that hides text while
// the image is rendered.
//
// [latex] - Escaping and the .pdf_tex markup.
//
// [render] - Text-free SVG, PNG and PDF output. [render/nodelink] draws the
// scene graph itself with Graphviz.
//
// [io] - Figure descriptions in JSON and TOML.
//
// [cache] - Cache for rsvg-convert output.
//
// [observability] - Hooks for timing pipeline stages and external tools.
//
// [errors] - Error codes and input validators.
//
// [figure]: https://pkg.go.dev/github.com/matzehuels/figtex/pkg/figure
// [overlay]: https://pkg.go.dev/github.com/matzehuels/figtex/pkg/overlay
// [latex]: https://pkg.go.dev/github.com/matzehuels/figtex/pkg/latex
// [render]: https://pkg.go.dev/github.com/matzehuels/figtex/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/figtex/pkg/render/nodelink
// [io]: https://pkg.go.dev/github.com/matzehuels/figtex/pkg/io
// [cache]: https://pkg.go.dev/github.com/matzehuels/figtex/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/figtex/pkg/pipeline
// [observability]: https://pkg.go.dev/github.com/matzehuels/figtex/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/figtex/pkg/errors
package pkg
