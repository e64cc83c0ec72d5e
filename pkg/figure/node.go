package figure

import (
	"github.com/google/uuid"
)

// NodeKind identifies the variant of a scene [Node]. The set of kinds is
// closed: only this package can implement [Node].
type NodeKind int

const (
	// KindGroup is a plain container of child nodes.
	KindGroup NodeKind = iota
	// KindAxes is a plot area with its own coordinate system.
	KindAxes
	// KindText is a text leaf.
	KindText
	// KindShape is a drawable leaf without text (lines).
	KindShape
)

// String returns the lowercase name of the kind.
func (k NodeKind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindAxes:
		return "axes"
	case KindText:
		return "text"
	case KindShape:
		return "shape"
	default:
		return "unknown"
	}
}

// Node is a drawable entity of the figure scene graph.
//
// The interface is sealed by an unexported method so the set of variants
// stays closed: [*Group], [*Axes], [*Text] and [*Line]. Traversals switch on
// [Node.Kind] instead of inspecting arbitrary types.
type Node interface {
	// ID returns the node identifier. IDs are unique per process and only
	// used for diagnostics and SVG element ids; identity is the pointer.
	ID() string
	// Kind returns the node variant.
	Kind() NodeKind
	// Children returns the direct children in drawing order.
	// The returned slice must not be modified.
	Children() []Node

	// attach records the owning figure and the nearest enclosing axes.
	attach(f *Figure, ax *Axes)
}

func newID() string { return uuid.NewString() }

// Group is a container node with no drawing of its own.
type Group struct {
	id       string
	Name     string
	children []Node
	owner    *Figure
	axes     *Axes
}

// NewGroup creates an empty group.
func NewGroup(name string) *Group {
	return &Group{id: newID(), Name: name}
}

// ID implements [Node].
func (g *Group) ID() string { return g.id }

// Kind implements [Node].
func (g *Group) Kind() NodeKind { return KindGroup }

// Children implements [Node].
func (g *Group) Children() []Node { return g.children }

// Add appends nodes to the group. If the group already belongs to a figure,
// the new nodes are attached to it and the figure generation is bumped.
func (g *Group) Add(nodes ...Node) {
	g.children = append(g.children, nodes...)
	if g.owner != nil {
		for _, n := range nodes {
			n.attach(g.owner, g.axes)
		}
		g.owner.touch()
	}
}

// set replaces the children without touching the owner generation.
func (g *Group) set(nodes ...Node) {
	g.children = nodes
	if g.owner != nil {
		for _, n := range nodes {
			n.attach(g.owner, g.axes)
		}
	}
}

func (g *Group) attach(f *Figure, ax *Axes) {
	if g.owner == f && g.axes == ax {
		return
	}
	g.owner, g.axes = f, ax
	for _, c := range g.children {
		c.attach(f, ax)
	}
}
