package overlay

import (
	"iter"

	"github.com/matzehuels/figtex/pkg/errors"
	"github.com/matzehuels/figtex/pkg/figure"
)

// Walk returns a depth-first pre-order sequence of the texts of fig.
//
// Each [Element] carries the axes most recently entered during the walk,
// which is nil for texts reached before any axes. Leaving an axes subtree
// does not reset it, so a figure-level text that follows an axes in drawing
// order is reported with that axes.
//
// A node that is its own ancestor ends the sequence with a CYCLE_DETECTED
// error. A node shared by several parents is yielded once per parent.
// Every call starts a fresh traversal.
func Walk(fig *figure.Figure) iter.Seq2[Element, error] {
	return func(yield func(Element, error) bool) {
		var current *figure.Axes
		onPath := make(map[figure.Node]bool)

		var walk func(n figure.Node) bool
		walk = func(n figure.Node) bool {
			if onPath[n] {
				yield(Element{}, errors.New(errors.ErrCodeCycleDetected,
					"node %s (%s) is its own ancestor", n.ID(), n.Kind()))
				return false
			}
			switch n.Kind() {
			case figure.KindText:
				return yield(Element{Text: n.(*figure.Text), Axes: current, Figure: fig}, nil)
			case figure.KindAxes:
				current = n.(*figure.Axes)
			}

			onPath[n] = true
			for _, c := range n.Children() {
				if !walk(c) {
					return false
				}
			}
			delete(onPath, n)
			return true
		}

		for _, n := range fig.Children() {
			if !walk(n) {
				return
			}
		}
	}
}

// Texts collects the distinct texts of fig in walk order.
func Texts(fig *figure.Figure) ([]*figure.Text, error) {
	var out []*figure.Text
	seen := make(map[*figure.Text]bool)
	for e, err := range Walk(fig) {
		if err != nil {
			return nil, err
		}
		if !seen[e.Text] {
			seen[e.Text] = true
			out = append(out, e.Text)
		}
	}
	return out, nil
}
