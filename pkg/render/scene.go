package render

import (
	"github.com/gogpu/gg"

	"github.com/matzehuels/figtex/pkg/figure"
)

// Tick marks extend this many points outward from the spine.
const tickLength = 3.5

// rect is an axis-aligned rectangle in image pixels (origin top-left).
type rect struct {
	X, Y, W, H float64
}

// spans reports whether p lies within the horizontal or the vertical extent
// of r. Clipped labels are kept by the same rule the overlay applies.
func (r rect) spans(p gg.Point) bool {
	return (p.X >= r.X && p.X <= r.X+r.W) || (p.Y >= r.Y && p.Y <= r.Y+r.H)
}

type panel struct {
	id    string
	frame rect
	face  gg.RGBA
	edge  gg.RGBA
	ticks [][2]gg.Point
}

type polyline struct {
	clip  *panel
	pts   []gg.Point
	color gg.RGBA
	width float64 // pixels
}

type label struct {
	id       string
	text     string
	at       gg.Point
	rotation float64 // degrees, counter-clockwise
	size     float64 // pixels
	color    gg.RGBA
	valign   figure.VAlign
	halign   figure.HAlign
}

// scene is a figure flattened into draw order, in image pixels.
type scene struct {
	width, height float64
	background    gg.RGBA
	panels        []*panel
	lines         []polyline
	labels        []label
	anchors       []gg.Point
}

// buildScene flattens a laid-out figure. Nodes reachable through several
// parents are drawn once and cycles are not followed.
func buildScene(fig *figure.Figure, cfg *config) *scene {
	w, h := fig.PixelSize()
	s := &scene{
		width:      w * cfg.scale,
		height:     h * cfg.scale,
		background: fig.Facecolor,
	}
	ptPx := fig.DPI() / 72 * cfg.scale

	// toImage maps display pixels to image pixels.
	toImage := func(p gg.Point) gg.Point {
		return gg.Pt(p.X*cfg.scale, s.height-p.Y*cfg.scale)
	}
	panels := make(map[*figure.Axes]*panel)
	panelOf := func(ax *figure.Axes) *panel {
		if ax == nil {
			return nil
		}
		return panels[ax]
	}

	seen := make(map[figure.Node]bool)
	var visit func(n figure.Node)
	visit = func(n figure.Node) {
		if seen[n] {
			return
		}
		seen[n] = true

		switch n := n.(type) {
		case *figure.Axes:
			p := buildPanel(n, toImage, tickLength*ptPx)
			panels[n] = p
			s.panels = append(s.panels, p)
		case *figure.Line:
			if !n.Visible || n.Axes() == nil {
				break
			}
			m := n.Axes().DataTransform()
			pts := n.Points()
			for i, p := range pts {
				pts[i] = toImage(m.TransformPoint(p))
			}
			s.lines = append(s.lines, polyline{
				clip:  panelOf(n.Axes()),
				pts:   pts,
				color: n.Color,
				width: n.Width * ptPx,
			})
		case *figure.Text:
			if !n.Shown() || n.Content == "" {
				break
			}
			at := toImage(n.Transform().TransformPoint(n.Pos))
			if p := panelOf(n.Axes()); n.ClipOn && p != nil && !p.frame.spans(at) {
				break
			}
			s.labels = append(s.labels, label{
				id:       n.ID(),
				text:     n.Content,
				at:       at,
				rotation: n.Rotation,
				size:     n.Size() * ptPx,
				color:    n.Color,
				valign:   n.VAlign,
				halign:   n.HAlign,
			})
		}
		for _, c := range n.Children() {
			visit(c)
		}
	}
	for _, n := range fig.Children() {
		visit(n)
	}

	ft := fig.Transform()
	for _, p := range cfg.anchors {
		s.anchors = append(s.anchors, toImage(ft.TransformPoint(p)))
	}
	return s
}

func buildPanel(ax *figure.Axes, toImage func(gg.Point) gg.Point, tick float64) *panel {
	m := ax.AxesTransform()
	lo, hi := toImage(m.TransformPoint(gg.Pt(0, 0))), toImage(m.TransformPoint(gg.Pt(1, 1)))
	p := &panel{
		id:    ax.ID(),
		frame: rect{X: min(lo.X, hi.X), Y: min(lo.Y, hi.Y), W: abs(hi.X - lo.X), H: abs(hi.Y - lo.Y)},
		face:  ax.Facecolor,
		edge:  ax.Edgecolor,
	}

	xm := ax.XAxisTransform()
	for _, t := range ax.XTicks() {
		if t.Label.OutOfRange() {
			continue
		}
		at := toImage(xm.TransformPoint(gg.Pt(t.Value, 0)))
		p.ticks = append(p.ticks, [2]gg.Point{at, gg.Pt(at.X, at.Y+tick)})
	}
	ym := ax.YAxisTransform()
	for _, t := range ax.YTicks() {
		if t.Label.OutOfRange() {
			continue
		}
		at := toImage(ym.TransformPoint(gg.Pt(0, t.Value)))
		p.ticks = append(p.ticks, [2]gg.Point{at, gg.Pt(at.X-tick, at.Y)})
	}
	return p
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
