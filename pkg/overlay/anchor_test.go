package overlay

import (
	"testing"

	"github.com/matzehuels/figtex/pkg/figure"
)

func TestAnchor(t *testing.T) {
	tests := []struct {
		v    figure.VAlign
		h    figure.HAlign
		want string
	}{
		{figure.VAlignBottom, figure.HAlignRight, "south east"},
		{figure.VAlignTop, figure.HAlignLeft, "north west"},
		{figure.VAlignCenter, figure.HAlignCenter, "center"},
		{figure.VAlignBaseline, figure.HAlignCenter, "base"},
		{figure.VAlignCenterBaseline, figure.HAlignRight, "mid east"},
		{figure.VAlignCenter, figure.HAlignLeft, "west"},
		{figure.VAlignTop, figure.HAlignCenter, "north"},
		{figure.VAlignBaseline, figure.HAlignLeft, "base west"},
	}

	for _, tt := range tests {
		t.Run(tt.v.String()+"/"+tt.h.String(), func(t *testing.T) {
			if got := Anchor(tt.v, tt.h); got != tt.want {
				t.Errorf("Anchor(%s, %s) = %q, want %q", tt.v, tt.h, got, tt.want)
			}
		})
	}
}

func TestAnchorUnknownPanics(t *testing.T) {
	tests := []struct {
		name string
		v    figure.VAlign
		h    figure.HAlign
	}{
		{"vertical", figure.VAlign(99), figure.HAlignLeft},
		{"horizontal", figure.VAlignTop, figure.HAlign(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Anchor(%d, %d) did not panic", tt.v, tt.h)
				}
			}()
			Anchor(tt.v, tt.h)
		})
	}
}
