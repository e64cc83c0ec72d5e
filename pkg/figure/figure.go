package figure

import (
	"github.com/gogpu/gg"

	"github.com/matzehuels/figtex/pkg/errors"
)

// Figure defaults.
const (
	DefaultWidth    = 6.4 // inches
	DefaultHeight   = 4.8 // inches
	DefaultDPI      = 100
	DefaultFontSize = 10 // points

	pointsPerInch = 72
)

// DefaultLineColor is the stroke color of new lines.
var DefaultLineColor = gg.Hex("#1f77b4")

// Subplot margins in figure fraction.
const (
	marginLeft   = 0.125
	marginRight  = 0.9
	marginBottom = 0.11
	marginTop    = 0.88
	spaceW       = 0.2
	spaceH       = 0.2
)

// Option configures a [Figure].
type Option func(*Figure)

// WithSize sets the figure size in inches.
func WithSize(width, height float64) Option {
	return func(f *Figure) {
		if width > 0 && height > 0 {
			f.width, f.height = width, height
		}
	}
}

// WithDPI sets the display resolution in pixels per inch.
func WithDPI(dpi float64) Option {
	return func(f *Figure) {
		if dpi > 0 {
			f.dpi = dpi
		}
	}
}

// WithFontSize sets the default font size in points.
func WithFontSize(size float64) Option {
	return func(f *Figure) {
		if size > 0 {
			f.fontSize = size
		}
	}
}

// WithFacecolor sets the figure background color.
func WithFacecolor(c gg.RGBA) Option {
	return func(f *Figure) { f.Facecolor = c }
}

// WithJournal sizes the figure to a journal column: the width is the column
// width, the height keeps the default 4:3 aspect ratio and the font size is
// the journal's body size.
func WithJournal(j Journal) Option {
	return func(f *Figure) {
		f.width = j.ColumnWidth
		f.height = j.ColumnWidth * DefaultHeight / DefaultWidth
		f.fontSize = j.FontSize
	}
}

// Figure is the root of a scene graph.
//
// A figure is not safe for concurrent use. Structural changes (adding nodes
// or ticks) advance [Figure.Structure]; they and layout passes advance
// [Figure.Generation].
type Figure struct {
	id string

	width, height float64
	dpi           float64
	fontSize      float64

	Facecolor gg.RGBA

	children   []Node
	generation uint64
	structure  uint64
	textHidden bool
}

// New creates an empty figure.
func New(opts ...Option) *Figure {
	f := &Figure{
		id:        newID(),
		width:     DefaultWidth,
		height:    DefaultHeight,
		dpi:       DefaultDPI,
		fontSize:  DefaultFontSize,
		Facecolor: gg.White,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ID returns the figure identifier.
func (f *Figure) ID() string { return f.id }

// Size returns the figure size in inches.
func (f *Figure) Size() (width, height float64) { return f.width, f.height }

// DPI returns the display resolution.
func (f *Figure) DPI() float64 { return f.dpi }

// FontSize returns the default font size in points.
func (f *Figure) FontSize() float64 { return f.fontSize }

// PixelSize returns the display size in pixels.
func (f *Figure) PixelSize() (width, height float64) {
	return f.width * f.dpi, f.height * f.dpi
}

// AspectRatio returns height divided by width.
func (f *Figure) AspectRatio() float64 { return f.height / f.width }

// Children returns the top-level nodes in drawing order.
func (f *Figure) Children() []Node { return f.children }

// Generation returns a counter that advances on every structural change
// and layout pass.
func (f *Figure) Generation() uint64 { return f.generation }

// Structure returns a counter that advances only when nodes or ticks are
// added or replaced. Layout passes leave it unchanged.
func (f *Figure) Structure() uint64 { return f.structure }

// TextHidden reports whether the text of the figure is currently hidden.
func (f *Figure) TextHidden() bool { return f.textHidden }

// SetTextHidden marks the text of the figure as hidden or shown.
func (f *Figure) SetTextHidden(hidden bool) { f.textHidden = hidden }

func (f *Figure) touch() {
	f.generation++
	f.structure++
}

// Add appends top-level nodes.
func (f *Figure) Add(nodes ...Node) {
	f.children = append(f.children, nodes...)
	for _, n := range nodes {
		n.attach(f, nil)
	}
	f.touch()
}

// AddText adds a text at figure-fraction coordinates (x, y).
func (f *Figure) AddText(x, y float64, s string) *Text {
	t := NewText(s, gg.Pt(x, y), CoordsFigure)
	f.Add(t)
	return t
}

// AddGroup adds an empty top-level group.
func (f *Figure) AddGroup(name string) *Group {
	g := NewGroup(name)
	f.Add(g)
	return g
}

// AddAxes adds an axes covering rect (figure fraction).
func (f *Figure) AddAxes(rect Rect) *Axes {
	a := newAxes(rect)
	f.Add(a)
	return a
}

// Subplots adds a rows x cols grid of axes and returns them in row-major
// order, top row first.
func (f *Figure) Subplots(rows, cols int) []*Axes {
	if rows < 1 || cols < 1 {
		return nil
	}
	cellW := (marginRight - marginLeft) / (float64(cols) + spaceW*float64(cols-1))
	cellH := (marginTop - marginBottom) / (float64(rows) + spaceH*float64(rows-1))

	out := make([]*Axes, 0, rows*cols)
	for r := range rows {
		y := marginTop - float64(r+1)*cellH - float64(r)*spaceH*cellH
		for c := range cols {
			x := marginLeft + float64(c)*(cellW+spaceW*cellW)
			out = append(out, f.AddAxes(Rect{X: x, Y: y, W: cellW, H: cellH}))
		}
	}
	return out
}

// Transform maps figure fractions to display pixels (origin bottom-left).
func (f *Figure) Transform() gg.Matrix {
	w, h := f.PixelSize()
	return gg.Scale(w, h)
}

// Layout resolves the display transform of every text and updates the
// axis decorations. Positions read from texts are meaningless until Layout
// has run; it must be called again after the figure changes.
func (f *Figure) Layout() error {
	var texts []*Text
	err := f.visit(func(n Node) {
		switch n := n.(type) {
		case *Axes:
			n.layout(f.fontSize)
		case *Text:
			texts = append(texts, n)
		}
	})
	if err != nil {
		return err
	}
	for _, t := range texts {
		if err := t.resolve(f); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFigure, err, "layout")
		}
	}
	f.generation++
	return nil
}

// visit calls fn once for every node in depth-first pre-order. A node
// reached again while it is still on the current path is a cycle.
func (f *Figure) visit(fn func(Node)) error {
	onPath := make(map[Node]bool)
	done := make(map[Node]bool)
	var walk func(n Node) error
	walk = func(n Node) error {
		if onPath[n] {
			return errors.New(errors.ErrCodeCycleDetected, "node %s (%s) is its own ancestor", n.ID(), n.Kind())
		}
		if done[n] {
			return nil
		}
		onPath[n], done[n] = true, true
		fn(n)
		for _, c := range n.Children() {
			if err := walk(c); err != nil {
				return err
			}
		}
		delete(onPath, n)
		return nil
	}
	for _, n := range f.children {
		if err := walk(n); err != nil {
			return err
		}
	}
	return nil
}
