package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/figtex/pkg/figure"
	"github.com/matzehuels/figtex/pkg/overlay"
	"github.com/matzehuels/figtex/pkg/render"
)

// Options configures scene tree rendering.
type Options struct {
	// Detailed includes coordinates, alignment and color in text labels.
	// When false, only the node kind and content are shown.
	Detailed bool
}

// ToDOT converts the scene graph of a laid-out figure to Graphviz DOT
// format. Texts that would be reproduced in the overlay are filled green,
// the others grey. Nodes reached through several parents appear once, with
// one edge per parent.
func ToDOT(fig *figure.Figure, opts Options) (string, error) {
	kept := make(map[*figure.Text]overlay.Element)
	elems, err := overlay.Classify(overlay.Walk(fig))
	if err != nil {
		return "", err
	}
	for _, e := range elems {
		kept[e.Text] = e
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	w, h := fig.Size()
	fmt.Fprintf(&buf, "  %q [label=%q, shape=folder];\n", fig.ID(), fmt.Sprintf("figure\n%g x %g in @ %g dpi", w, h, fig.DPI()))

	var edges []string
	seen := make(map[figure.Node]bool)
	var visit func(parent string, n figure.Node)
	visit = func(parent string, n figure.Node) {
		edges = append(edges, fmt.Sprintf("  %q -> %q;\n", parent, n.ID()))
		if seen[n] {
			return
		}
		seen[n] = true
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID(), strings.Join(fmtAttrs(n, kept, opts.Detailed), ", "))
		for _, c := range n.Children() {
			visit(n.ID(), c)
		}
	}
	for _, n := range fig.Children() {
		visit(fig.ID(), n)
	}

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String(), nil
}

func fmtLabel(n figure.Node, kept map[*figure.Text]overlay.Element, detailed bool) string {
	switch n := n.(type) {
	case *figure.Group:
		return "group " + n.Name
	case *figure.Axes:
		r := n.Bounds()
		return fmt.Sprintf("axes\n[%.3g, %.3g, %.3g, %.3g]", r.X, r.Y, r.W, r.H)
	case *figure.Line:
		return fmt.Sprintf("line\n%d points", len(n.Points()))
	case *figure.Text:
		label := "text " + strconv.Quote(n.Content)
		if !detailed {
			return label
		}
		parts := []string{label, fmt.Sprintf("coords: %s", n.Coords), fmt.Sprintf("align: %s/%s", n.VAlign, n.HAlign)}
		if e, ok := kept[n]; ok {
			p := e.FigureXY()
			parts = append(parts, fmt.Sprintf("at: (%.4f, %.4f)", p.X, p.Y), "anchor: "+e.Anchor())
		}
		parts = append(parts, fmt.Sprintf("alpha: %g", n.Color.A))
		return strings.Join(parts, "\n")
	default:
		return n.Kind().String()
	}
}

func fmtAttrs(n figure.Node, kept map[*figure.Text]overlay.Element, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, kept, detailed))}
	switch n := n.(type) {
	case *figure.Text:
		if _, ok := kept[n]; ok {
			attrs = append(attrs, "fillcolor=palegreen")
		} else {
			attrs = append(attrs, "fillcolor=lightgrey", "fontcolor=dimgrey")
		}
	case *figure.Axes:
		attrs = append(attrs, "fillcolor=lightblue")
	case *figure.Group:
		attrs = append(attrs, "style=\"rounded,dashed\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}
