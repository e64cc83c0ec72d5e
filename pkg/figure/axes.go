package figure

import (
	"fmt"
	"slices"
	"strconv"
	"unicode/utf8"

	"github.com/gogpu/gg"
)

// Tick spacing in points, measured from the axes spine.
const (
	tickLength = 3.5
	tickPad    = 3.5
	labelPad   = 4.0
	titlePad   = 6.0
)

// Rect is a rectangle in figure-fraction coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Tick is an axis tick at a data value with its label text.
type Tick struct {
	Value float64
	Label *Text
}

// Axes is a rectangular plot area with its own data coordinate system.
//
// Besides user-added children, every axes owns a title, an x and a y label
// and the tick labels of both axes. They are exposed as children so a scene
// traversal reaches them: the x axis and y axis are [Group] nodes holding
// their tick labels followed by the axis label.
type Axes struct {
	id   string
	rect Rect

	xlim, ylim [2]float64

	Facecolor gg.RGBA
	Edgecolor gg.RGBA

	title, xlabel, ylabel *Text
	xticks, yticks        []Tick
	xaxis, yaxis          *Group

	children []Node
	owner    *Figure
}

func newAxes(rect Rect) *Axes {
	a := &Axes{
		id:        newID(),
		rect:      rect,
		xlim:      [2]float64{0, 1},
		ylim:      [2]float64{0, 1},
		Facecolor: gg.White,
		Edgecolor: gg.Black,
		xaxis:     &Group{id: newID(), Name: "xaxis"},
		yaxis:     &Group{id: newID(), Name: "yaxis"},
	}
	a.xaxis.axes, a.yaxis.axes = a, a

	a.title = NewText("", gg.Pt(0.5, 1), CoordsAxes)
	a.title.HAlign = HAlignCenter
	a.title.Offset = gg.Pt(0, titlePad)

	a.xlabel = NewText("", gg.Pt(0.5, 0), CoordsAxes)
	a.xlabel.VAlign = VAlignTop
	a.xlabel.HAlign = HAlignCenter

	a.ylabel = NewText("", gg.Pt(0, 0.5), CoordsAxes)
	a.ylabel.VAlign = VAlignBottom
	a.ylabel.HAlign = HAlignCenter
	a.ylabel.Rotation = 90

	for _, t := range []*Text{a.title, a.xlabel, a.ylabel} {
		t.axes = a
	}
	a.rebuildAxis()
	return a
}

// ID implements [Node].
func (a *Axes) ID() string { return a.id }

// Kind implements [Node].
func (a *Axes) Kind() NodeKind { return KindAxes }

// Children implements [Node]: user children, then the x axis, the y axis and
// the title.
func (a *Axes) Children() []Node {
	out := slices.Clip(a.children)
	return append(out, a.xaxis, a.yaxis, a.title)
}

// Nodes returns the user-added children, without the axis decorations.
func (a *Axes) Nodes() []Node { return a.children }

func (a *Axes) attach(f *Figure, _ *Axes) {
	if a.owner == f {
		return
	}
	a.owner = f
	for _, c := range a.Children() {
		c.attach(f, a)
	}
}

// Bounds returns the axes rectangle in figure fraction.
func (a *Axes) Bounds() Rect { return a.rect }

// XLim returns the x data limits.
func (a *Axes) XLim() (lo, hi float64) { return a.xlim[0], a.xlim[1] }

// YLim returns the y data limits.
func (a *Axes) YLim() (lo, hi float64) { return a.ylim[0], a.ylim[1] }

// SetXLim sets the x data limits. Equal limits are widened by 0.5 on each
// side so the data transform stays invertible.
func (a *Axes) SetXLim(lo, hi float64) { a.xlim = widen(lo, hi) }

// SetYLim sets the y data limits.
func (a *Axes) SetYLim(lo, hi float64) { a.ylim = widen(lo, hi) }

func widen(lo, hi float64) [2]float64 {
	if lo == hi {
		return [2]float64{lo - 0.5, hi + 0.5}
	}
	return [2]float64{lo, hi}
}

// Title returns the title text.
func (a *Axes) Title() *Text { return a.title }

// XLabel returns the x axis label text.
func (a *Axes) XLabel() *Text { return a.xlabel }

// YLabel returns the y axis label text.
func (a *Axes) YLabel() *Text { return a.ylabel }

// SetTitle sets the title content.
func (a *Axes) SetTitle(s string) *Text { a.title.Content = s; return a.title }

// SetXLabel sets the x axis label content.
func (a *Axes) SetXLabel(s string) *Text { a.xlabel.Content = s; return a.xlabel }

// SetYLabel sets the y axis label content.
func (a *Axes) SetYLabel(s string) *Text { a.ylabel.Content = s; return a.ylabel }

// XTicks returns the x axis ticks.
func (a *Axes) XTicks() []Tick { return a.xticks }

// YTicks returns the y axis ticks.
func (a *Axes) YTicks() []Tick { return a.yticks }

// XTickLabels returns the tick label texts of the x axis.
func (a *Axes) XTickLabels() []*Text { return tickLabels(a.xticks) }

// YTickLabels returns the tick label texts of the y axis.
func (a *Axes) YTickLabels() []*Text { return tickLabels(a.yticks) }

func tickLabels(ticks []Tick) []*Text {
	out := make([]*Text, len(ticks))
	for i, t := range ticks {
		out[i] = t.Label
	}
	return out
}

// SetXTicks replaces the x axis ticks. If labels is nil the values are
// formatted with %g; otherwise it must have one entry per value.
func (a *Axes) SetXTicks(values []float64, labels []string) error {
	ticks, err := a.makeTicks(values, labels, func(v float64) *Text {
		t := NewText("", gg.Pt(v, 0), CoordsXAxis)
		t.Offset = gg.Pt(0, -(tickLength + tickPad))
		t.VAlign = VAlignTop
		t.HAlign = HAlignCenter
		return t
	})
	if err != nil {
		return err
	}
	a.xticks = ticks
	a.rebuildAxis()
	return nil
}

// SetYTicks replaces the y axis ticks.
func (a *Axes) SetYTicks(values []float64, labels []string) error {
	ticks, err := a.makeTicks(values, labels, func(v float64) *Text {
		t := NewText("", gg.Pt(0, v), CoordsYAxis)
		t.Offset = gg.Pt(-(tickLength + tickPad), 0)
		t.VAlign = VAlignCenterBaseline
		t.HAlign = HAlignRight
		return t
	})
	if err != nil {
		return err
	}
	a.yticks = ticks
	a.rebuildAxis()
	return nil
}

func (a *Axes) makeTicks(values []float64, labels []string, mk func(float64) *Text) ([]Tick, error) {
	if labels != nil && len(labels) != len(values) {
		return nil, fmt.Errorf("got %d tick labels for %d tick values", len(labels), len(values))
	}
	ticks := make([]Tick, len(values))
	for i, v := range values {
		t := mk(v)
		t.axes = a
		if labels != nil {
			t.Content = labels[i]
		} else {
			t.Content = strconv.FormatFloat(v, 'g', -1, 64)
		}
		ticks[i] = Tick{Value: v, Label: t}
	}
	return ticks, nil
}

// rebuildAxis refreshes the children of the axis groups after a tick change.
func (a *Axes) rebuildAxis() {
	xs := make([]Node, 0, len(a.xticks)+1)
	for _, t := range a.xticks {
		xs = append(xs, t.Label)
	}
	a.xaxis.set(append(xs, a.xlabel)...)

	ys := make([]Node, 0, len(a.yticks)+1)
	for _, t := range a.yticks {
		ys = append(ys, t.Label)
	}
	a.yaxis.set(append(ys, a.ylabel)...)

	if a.owner != nil {
		a.owner.touch()
	}
}

// Add appends nodes to the axes. Texts and lines added here resolve axes
// and data coordinates against this axes.
func (a *Axes) Add(nodes ...Node) {
	a.children = append(a.children, nodes...)
	for _, n := range nodes {
		setAxes(n, a)
	}
	if a.owner != nil {
		for _, n := range nodes {
			n.attach(a.owner, a)
		}
		a.owner.touch()
	}
}

// setAxes binds a detached subtree to an axes before it has an owner figure.
func setAxes(n Node, a *Axes) {
	switch n := n.(type) {
	case *Text:
		n.axes = a
	case *Line:
		n.axes = a
	case *Group:
		if n.axes == a {
			return
		}
		n.axes = a
		for _, c := range n.children {
			setAxes(c, a)
		}
	}
}

// AddText adds a clipped text at data coordinates (x, y).
func (a *Axes) AddText(x, y float64, s string) *Text {
	t := NewText(s, gg.Pt(x, y), CoordsData)
	t.ClipOn = true
	a.Add(t)
	return t
}

// Annotate labels the data point (x, y): the text is centered horizontally
// and sits just above the point.
func (a *Axes) Annotate(s string, x, y float64) *Text {
	t := NewText(s, gg.Pt(x, y), CoordsData)
	t.ClipOn = true
	t.HAlign = HAlignCenter
	t.VAlign = VAlignBottom
	t.Offset = gg.Pt(0, labelPad)
	a.Add(t)
	return t
}

// Plot adds a line through the data points.
func (a *Axes) Plot(xs, ys []float64) *Line {
	l := NewLine(xs, ys)
	a.Add(l)
	return l
}

func (a *Axes) figureTransform() gg.Matrix {
	if a.owner == nil {
		return gg.Identity()
	}
	return a.owner.Transform()
}

// AxesTransform maps axes fractions to display pixels.
func (a *Axes) AxesTransform() gg.Matrix {
	r := a.rect
	return a.figureTransform().
		Multiply(gg.Translate(r.X, r.Y)).
		Multiply(gg.Scale(r.W, r.H))
}

// DataTransform maps data values to display pixels.
func (a *Axes) DataTransform() gg.Matrix {
	x0, x1 := a.xlim[0], a.xlim[1]
	y0, y1 := a.ylim[0], a.ylim[1]
	return a.AxesTransform().
		Multiply(gg.Scale(1/(x1-x0), 1/(y1-y0))).
		Multiply(gg.Translate(-x0, -y0))
}

// XAxisTransform takes x as a data value and y as an axes fraction.
func (a *Axes) XAxisTransform() gg.Matrix {
	d, ax := a.DataTransform(), a.AxesTransform()
	return gg.Matrix{A: d.A, C: d.C, E: ax.E, F: ax.F}
}

// YAxisTransform takes x as an axes fraction and y as a data value.
func (a *Axes) YAxisTransform() gg.Matrix {
	d, ax := a.DataTransform(), a.AxesTransform()
	return gg.Matrix{A: ax.A, C: ax.C, E: d.E, F: d.F}
}

// layout marks out-of-range tick labels and pushes the axis labels clear of the
// tick labels.
func (a *Axes) layout(defaultSize float64) {
	for _, t := range a.xticks {
		t.Label.outOfRange = !inLimits(t.Value, a.xlim)
	}
	for _, t := range a.yticks {
		t.Label.outOfRange = !inLimits(t.Value, a.ylim)
	}

	below := tickLength + labelPad
	if len(a.xticks) > 0 {
		below += tickPad + maxSize(a.xticks, defaultSize)
	}
	a.xlabel.Offset = gg.Pt(0, -below)

	left := tickLength + labelPad
	if len(a.yticks) > 0 {
		left += tickPad + maxWidth(a.yticks, defaultSize)
	}
	a.ylabel.Offset = gg.Pt(-left, 0)
}

func inLimits(v float64, lim [2]float64) bool {
	lo, hi := min(lim[0], lim[1]), max(lim[0], lim[1])
	return v >= lo && v <= hi
}

func maxSize(ticks []Tick, def float64) float64 {
	var m float64
	for _, t := range ticks {
		m = max(m, sizeOr(t.Label, def))
	}
	return m
}

// maxWidth estimates the widest tick label at 0.6 em per rune.
func maxWidth(ticks []Tick, def float64) float64 {
	var m float64
	for _, t := range ticks {
		m = max(m, 0.6*sizeOr(t.Label, def)*float64(utf8.RuneCountInString(t.Label.Content)))
	}
	return m
}

func sizeOr(t *Text, def float64) float64 {
	if t.FontSize > 0 {
		return t.FontSize
	}
	return def
}
