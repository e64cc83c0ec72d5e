package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gogpu/gg"

	"github.com/matzehuels/figtex/pkg/errors"
	"github.com/matzehuels/figtex/pkg/figure"
)

// WriteJSON encodes fig as an indented JSON description.
// Groups are flattened: their texts are written in place. The output can be
// re-imported with [ReadJSON].
func WriteJSON(fig *figure.Figure, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(describe(fig)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteTOML encodes fig as a TOML description.
func WriteTOML(fig *figure.Figure, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(describe(fig)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Export writes fig to path, choosing JSON or TOML by extension.
func Export(fig *figure.Figure, path string) error {
	var write func(*figure.Figure, io.Writer) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		write = WriteJSON
	case ".toml":
		write = WriteTOML
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported description format %q (want .json or .toml)", ext)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(fig, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func describe(fig *figure.Figure) description {
	w, h := fig.Size()
	d := description{
		Width:    w,
		Height:   h,
		DPI:      fig.DPI(),
		FontSize: fig.FontSize(),
	}
	if fig.Facecolor != gg.White {
		d.Facecolor = formatColor(fig.Facecolor)
	}
	for _, n := range fig.Children() {
		switch n := n.(type) {
		case *figure.Axes:
			d.Axes = append(d.Axes, describeAxes(n))
		default:
			for _, t := range flatten(n) {
				d.Texts = append(d.Texts, describeText(t, figure.CoordsFigure, false))
			}
		}
	}
	return d
}

func describeAxes(ax *figure.Axes) axesDesc {
	r := ax.Bounds()
	x0, x1 := ax.XLim()
	y0, y1 := ax.YLim()
	d := axesDesc{
		Rect:   []float64{r.X, r.Y, r.W, r.H},
		XLim:   []float64{x0, x1},
		YLim:   []float64{y0, y1},
		Title:  ax.Title().Content,
		XLabel: ax.XLabel().Content,
		YLabel: ax.YLabel().Content,
		XTicks: describeTicks(ax.XTicks()),
		YTicks: describeTicks(ax.YTicks()),
	}
	for _, n := range ax.Nodes() {
		if l, ok := n.(*figure.Line); ok {
			ld := lineDesc{X: l.X, Y: l.Y, Width: l.Width}
			if l.Color != figure.DefaultLineColor {
				ld.Color = formatColor(l.Color)
			}
			d.Lines = append(d.Lines, ld)
			continue
		}
		for _, t := range flatten(n) {
			d.Texts = append(d.Texts, describeText(t, figure.CoordsData, true))
		}
	}
	return d
}

func describeTicks(ticks []figure.Tick) []tickDesc {
	if len(ticks) == 0 {
		return nil
	}
	out := make([]tickDesc, len(ticks))
	for i, t := range ticks {
		out[i] = tickDesc{Value: t.Value}
		if label := t.Label.Content; label != formatTick(t.Value) {
			out[i].Label = &label
		}
	}
	return out
}

// describeText omits fields that match what the importer would create for
// the section the text is written to.
func describeText(t *figure.Text, coords figure.Coords, clip bool) textDesc {
	d := textDesc{
		Text:     t.Content,
		X:        t.Pos.X,
		Y:        t.Pos.Y,
		Rotation: t.Rotation,
		FontSize: t.FontSize,
	}
	if t.Coords != coords {
		d.Coords = t.Coords.String()
	}
	if t.Offset != (gg.Point{}) {
		d.Offset = []float64{t.Offset.X, t.Offset.Y}
	}
	if t.Color != gg.Black {
		d.Color = formatColor(t.Color)
	}
	if t.VAlign != figure.VAlignBaseline {
		d.VA = t.VAlign.String()
	}
	if t.HAlign != figure.HAlignLeft {
		d.HA = t.HAlign.String()
	}
	if !t.Visible {
		d.Visible = &t.Visible
	}
	if t.ClipOn != clip {
		d.Clip = &t.ClipOn
	}
	return d
}

// flatten returns the texts of a subtree in pre-order. Lines outside an
// axes are not representable and are skipped.
func flatten(n figure.Node) []*figure.Text {
	var out []*figure.Text
	seen := make(map[figure.Node]bool)
	var walk func(figure.Node)
	walk = func(n figure.Node) {
		if seen[n] {
			return
		}
		seen[n] = true
		if t, ok := n.(*figure.Text); ok {
			out = append(out, t)
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(n)
	return out
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
