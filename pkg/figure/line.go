package figure

import "github.com/gogpu/gg"

// Line is a polyline drawn in the data coordinates of its axes.
type Line struct {
	id      string
	X, Y    []float64
	Color   gg.RGBA
	Width   float64 // points
	Visible bool

	owner *Figure
	axes  *Axes
}

// NewLine creates a visible line through the points (xs[i], ys[i]).
// Extra values of the longer slice are ignored.
func NewLine(xs, ys []float64) *Line {
	return &Line{
		id:      newID(),
		X:       xs,
		Y:       ys,
		Color:   DefaultLineColor,
		Width:   1.5,
		Visible: true,
	}
}

// ID implements [Node].
func (l *Line) ID() string { return l.id }

// Kind implements [Node].
func (l *Line) Kind() NodeKind { return KindShape }

// Children implements [Node]; lines are leaves.
func (l *Line) Children() []Node { return nil }

// Axes returns the axes whose data coordinates the line is drawn in.
func (l *Line) Axes() *Axes { return l.axes }

// Points returns the line vertices in data coordinates.
func (l *Line) Points() []gg.Point {
	n := min(len(l.X), len(l.Y))
	pts := make([]gg.Point, n)
	for i := range n {
		pts[i] = gg.Pt(l.X[i], l.Y[i])
	}
	return pts
}

func (l *Line) attach(f *Figure, ax *Axes) {
	l.owner = f
	if ax != nil {
		l.axes = ax
	}
}
