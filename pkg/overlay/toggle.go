package overlay

import (
	"github.com/gogpu/gg"

	"github.com/matzehuels/figtex/pkg/errors"
	"github.com/matzehuels/figtex/pkg/figure"
)

// ColorBackup holds the colors of a figure's texts from before [HideAll].
// It is consumed by one [Restore] call.
type ColorBackup struct {
	fig       *figure.Figure
	colors    map[*figure.Text]gg.RGBA
	structure uint64
	used      bool
}

// Len returns the number of backed-up texts.
func (b *ColorBackup) Len() int { return len(b.colors) }

// Color returns the saved color of t.
func (b *ColorBackup) Color(t *figure.Text) (gg.RGBA, bool) {
	c, ok := b.colors[t]
	return c, ok
}

// HideAll makes every text of fig fully transparent, including texts that
// are invisible or clipped, and returns their previous colors. The figure is
// left untouched when an error is returned.
//
// Calling HideAll again before [Restore] returns a REENTRANT_HIDE error.
func HideAll(fig *figure.Figure) (*ColorBackup, error) {
	if fig.TextHidden() {
		return nil, errors.New(errors.ErrCodeReentrantHide, "text of figure %s is already hidden", fig.ID())
	}
	texts, err := Texts(fig)
	if err != nil {
		return nil, err
	}

	b := &ColorBackup{
		fig:       fig,
		colors:    make(map[*figure.Text]gg.RGBA, len(texts)),
		structure: fig.Structure(),
	}
	for _, t := range texts {
		b.colors[t] = t.Color
		t.Color = gg.Transparent
	}
	fig.SetTextHidden(true)
	return b, nil
}

// Restore puts back the colors saved by [HideAll].
//
// A backup that is nil, was taken from another figure or was already
// consumed is rejected with a LOOKUP error and nothing changes. Otherwise
// every text with a saved color gets it back and the backup is consumed;
// if the figure changed structurally since HideAll, or a live text has no
// saved color, Restore still does that and then reports a LOOKUP error.
// Layout passes in between are not structural changes.
func Restore(fig *figure.Figure, b *ColorBackup) error {
	switch {
	case b == nil:
		return errors.New(errors.ErrCodeLookup, "restore: no color backup")
	case b.fig != fig:
		return errors.New(errors.ErrCodeLookup, "restore: backup belongs to figure %s, not %s", b.fig.ID(), fig.ID())
	case b.used:
		return errors.New(errors.ErrCodeLookup, "restore: color backup already consumed")
	}
	texts, err := Texts(fig)
	if err != nil {
		return err
	}

	var missing []string
	for _, t := range texts {
		c, ok := b.colors[t]
		if !ok {
			missing = append(missing, t.Content)
			continue
		}
		t.Color = c
	}
	b.used = true
	fig.SetTextHidden(false)

	if len(missing) > 0 {
		return errors.New(errors.ErrCodeLookup, "restore: %d text(s) missing from backup, first %q", len(missing), missing[0])
	}
	if b.structure != fig.Structure() {
		return errors.New(errors.ErrCodeLookup, "restore: figure changed since its text was hidden")
	}
	return nil
}
