package figure

import (
	"fmt"

	"github.com/gogpu/gg"
)

// Coords selects the coordinate system a [Text] position is expressed in.
type Coords int

const (
	// CoordsDisplay positions are display pixels, origin bottom-left.
	CoordsDisplay Coords = iota
	// CoordsFigure positions are figure fractions in [0,1]x[0,1].
	CoordsFigure
	// CoordsAxes positions are fractions of the owning axes rectangle.
	CoordsAxes
	// CoordsData positions are data values of the owning axes.
	CoordsData
	// CoordsXAxis takes x from data values and y from the axes fraction.
	// Tick labels of the x axis use it.
	CoordsXAxis
	// CoordsYAxis takes x from the axes fraction and y from data values.
	CoordsYAxis
)

var coordsNames = [...]string{"display", "figure", "axes", "data", "xaxis", "yaxis"}

func (c Coords) String() string {
	if c < 0 || int(c) >= len(coordsNames) {
		return fmt.Sprintf("Coords(%d)", int(c))
	}
	return coordsNames[c]
}

// ParseCoords parses a coordinate system name as printed by [Coords.String].
func ParseCoords(s string) (Coords, error) {
	for i, name := range coordsNames {
		if name == s {
			return Coords(i), nil
		}
	}
	return 0, fmt.Errorf("unknown coordinate system %q", s)
}

// needsAxes reports whether the coordinate system is defined relative to an axes.
func (c Coords) needsAxes() bool {
	return c == CoordsAxes || c == CoordsData || c == CoordsXAxis || c == CoordsYAxis
}

// VAlign is the vertical alignment of a text box relative to its anchor.
// The zero value is VAlignBaseline.
type VAlign int

const (
	VAlignBaseline VAlign = iota
	VAlignBottom
	VAlignTop
	VAlignCenter
	VAlignCenterBaseline
)

var valignNames = [...]string{"baseline", "bottom", "top", "center", "center_baseline"}

func (v VAlign) String() string {
	if v < 0 || int(v) >= len(valignNames) {
		return fmt.Sprintf("VAlign(%d)", int(v))
	}
	return valignNames[v]
}

// ParseVAlign parses a vertical alignment name.
func ParseVAlign(s string) (VAlign, error) {
	for i, name := range valignNames {
		if name == s {
			return VAlign(i), nil
		}
	}
	return 0, fmt.Errorf("unknown vertical alignment %q", s)
}

// HAlign is the horizontal alignment of a text box relative to its anchor.
// The zero value is HAlignLeft.
type HAlign int

const (
	HAlignLeft HAlign = iota
	HAlignRight
	HAlignCenter
)

var halignNames = [...]string{"left", "right", "center"}

func (h HAlign) String() string {
	if h < 0 || int(h) >= len(halignNames) {
		return fmt.Sprintf("HAlign(%d)", int(h))
	}
	return halignNames[h]
}

// ParseHAlign parses a horizontal alignment name.
func ParseHAlign(s string) (HAlign, error) {
	for i, name := range halignNames {
		if name == s {
			return HAlign(i), nil
		}
	}
	return 0, fmt.Errorf("unknown horizontal alignment %q", s)
}

// Text is a text leaf of the scene graph.
//
// Pos is expressed in the coordinate system named by Coords and is shifted
// by Offset (in points) after the coordinate transform. The transform from
// Pos to display pixels is resolved by [Figure.Layout]; until then
// [Text.Transform] returns the identity.
type Text struct {
	id string

	Content  string
	Pos      gg.Point
	Coords   Coords
	Offset   gg.Point
	Rotation float64 // degrees, counter-clockwise
	Color    gg.RGBA
	FontSize float64 // points; 0 means the figure default
	VAlign   VAlign
	HAlign   HAlign
	Visible  bool
	ClipOn   bool

	owner      *Figure
	axes       *Axes
	transform  gg.Matrix
	outOfRange bool // tick label whose value is outside the axis limits
}

// NewText creates a visible black text at pos in the given coordinate system.
func NewText(content string, pos gg.Point, coords Coords) *Text {
	return &Text{
		id:        newID(),
		Content:   content,
		Pos:       pos,
		Coords:    coords,
		Color:     gg.Black,
		Visible:   true,
		transform: gg.Identity(),
	}
}

// ID implements [Node].
func (t *Text) ID() string { return t.id }

// Kind implements [Node].
func (t *Text) Kind() NodeKind { return KindText }

// Children implements [Node]; texts are leaves.
func (t *Text) Children() []Node { return nil }

// Transform returns the local-to-display transform resolved by the last
// layout pass.
func (t *Text) Transform() gg.Matrix { return t.transform }

// OutOfRange reports whether the last layout pass found the text to be a
// tick label whose value lies outside the axis limits.
func (t *Text) OutOfRange() bool { return t.outOfRange }

// Shown reports whether the text is drawn: Visible is set and the text is
// not an out-of-range tick label. Layout never changes Visible.
func (t *Text) Shown() bool { return t.Visible && !t.outOfRange }

// Axes returns the axes the text was added to, or nil for figure-level text.
func (t *Text) Axes() *Axes { return t.axes }

// Figure returns the owning figure, or nil if the text is detached.
func (t *Text) Figure() *Figure { return t.owner }

// Size returns the font size in points, falling back to the figure default.
func (t *Text) Size() float64 {
	if t.FontSize > 0 {
		return t.FontSize
	}
	if t.owner != nil {
		return t.owner.fontSize
	}
	return DefaultFontSize
}

func (t *Text) attach(f *Figure, ax *Axes) {
	t.owner = f
	if ax != nil {
		t.axes = ax
	}
}

// resolve computes the local-to-display transform from the coordinate
// system and offset.
func (t *Text) resolve(fig *Figure) error {
	var base gg.Matrix
	switch t.Coords {
	case CoordsDisplay:
		base = gg.Identity()
	case CoordsFigure:
		base = fig.Transform()
	default:
		if t.axes == nil {
			return fmt.Errorf("text %q uses %s coordinates but belongs to no axes", t.Content, t.Coords)
		}
		switch t.Coords {
		case CoordsAxes:
			base = t.axes.AxesTransform()
		case CoordsData:
			base = t.axes.DataTransform()
		case CoordsXAxis:
			base = t.axes.XAxisTransform()
		case CoordsYAxis:
			base = t.axes.YAxisTransform()
		default:
			return fmt.Errorf("text %q: unknown coordinate system %s", t.Content, t.Coords)
		}
	}
	pt := fig.dpi / pointsPerInch
	t.transform = gg.Translate(t.Offset.X*pt, t.Offset.Y*pt).Multiply(base)
	return nil
}
