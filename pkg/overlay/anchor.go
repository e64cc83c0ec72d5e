package overlay

import (
	"fmt"
	"strings"

	"github.com/matzehuels/figtex/pkg/figure"
)

var verticalAnchors = map[figure.VAlign]string{
	figure.VAlignBottom:         "south",
	figure.VAlignTop:            "north",
	figure.VAlignCenter:         "",
	figure.VAlignBaseline:       "base",
	figure.VAlignCenterBaseline: "mid",
}

var horizontalAnchors = map[figure.HAlign]string{
	figure.HAlignRight:  "east",
	figure.HAlignLeft:   "west",
	figure.HAlignCenter: "",
}

// Anchor maps a text alignment to a TikZ node anchor such as "south east"
// or "base west". Centered on both axes gives "center".
//
// Anchor panics on alignment values outside the declared constants.
func Anchor(v figure.VAlign, h figure.HAlign) string {
	vs, ok := verticalAnchors[v]
	if !ok {
		panic(fmt.Sprintf("overlay: unknown vertical alignment %s", v))
	}
	hs, ok := horizontalAnchors[h]
	if !ok {
		panic(fmt.Sprintf("overlay: unknown horizontal alignment %s", h))
	}
	anchor := strings.TrimSpace(vs + " " + hs)
	if anchor == "" {
		return "center"
	}
	return anchor
}
