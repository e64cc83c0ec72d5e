package overlay

import (
	"iter"
	"math"

	"github.com/gogpu/gg"

	"github.com/matzehuels/figtex/pkg/figure"
)

// Record is a text positioned for the overlay. Records are computed fresh by
// every [Extract] call and never track later changes of the figure.
type Record struct {
	Text     string
	Position gg.Point // figure fractions
	Anchor   string   // TikZ anchor
	Rotation float64  // degrees in [0, 360)
	Color    gg.RGBA
}

// Classify drains a walk and keeps the visible elements, each text once,
// in walk order.
func Classify(elems iter.Seq2[Element, error]) ([]Element, error) {
	var out []Element
	seen := make(map[*figure.Text]bool)
	for e, err := range elems {
		if err != nil {
			return nil, err
		}
		if seen[e.Text] || !e.Visible() {
			continue
		}
		seen[e.Text] = true
		out = append(out, e)
	}
	return out, nil
}

// Extract returns the records of every visible text of fig. fig must have
// been laid out.
func Extract(fig *figure.Figure) ([]Record, error) {
	elems, err := Classify(Walk(fig))
	if err != nil {
		return nil, err
	}
	records := make([]Record, len(elems))
	for i, e := range elems {
		records[i] = e.Record()
	}
	return records, nil
}

func normalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
