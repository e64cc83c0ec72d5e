package overlay

import (
	"testing"

	"github.com/gogpu/gg"

	"github.com/matzehuels/figtex/pkg/errors"
	"github.com/matzehuels/figtex/pkg/figure"
)

func TestHideAllAndRestore(t *testing.T) {
	fig, _ := labeledFigure(t)
	before, err := Extract(fig)
	if err != nil {
		t.Fatal(err)
	}

	backup, err := HideAll(fig)
	if err != nil {
		t.Fatal(err)
	}
	if !fig.TextHidden() {
		t.Error("TextHidden() = false after HideAll")
	}
	hidden, err := Extract(fig)
	if err != nil {
		t.Fatal(err)
	}
	if len(hidden) != 0 {
		t.Errorf("Extract() after HideAll = %d records, want 0", len(hidden))
	}

	if err := Restore(fig, backup); err != nil {
		t.Fatalf("Restore() error: %v", err)
	}
	after, err := Extract(fig)
	if err != nil {
		t.Fatal(err)
	}
	if len(after) != len(before) {
		t.Fatalf("Extract() after Restore = %d records, want %d", len(after), len(before))
	}
	for i := range before {
		if after[i] != before[i] {
			t.Errorf("record %d = %+v, want %+v", i, after[i], before[i])
		}
	}
}

func TestHideAllCoversEveryText(t *testing.T) {
	fig := figure.New()
	invisible := fig.AddText(0.1, 0.1, "ghost")
	invisible.Visible = false
	empty := fig.AddText(0.2, 0.2, "")
	tinted := fig.AddText(0.3, 0.3, "tinted")
	tinted.Color = gg.RGBA2(1, 0, 0, 0.5)
	watermark := fig.AddText(0.4, 0.4, "mark")
	watermark.Color = gg.Transparent

	backup, err := HideAll(fig)
	if err != nil {
		t.Fatal(err)
	}
	if backup.Len() != 4 {
		t.Errorf("Len() = %d, want 4", backup.Len())
	}
	for _, txt := range []*figure.Text{invisible, empty, tinted, watermark} {
		if txt.Color.A != 0 {
			t.Errorf("text %q alpha = %v after HideAll", txt.Content, txt.Color.A)
		}
	}
	if c, ok := backup.Color(tinted); !ok || c != gg.RGBA2(1, 0, 0, 0.5) {
		t.Errorf("Color(tinted) = %v, %v", c, ok)
	}

	if err := Restore(fig, backup); err != nil {
		t.Fatal(err)
	}
	if tinted.Color != gg.RGBA2(1, 0, 0, 0.5) || watermark.Color != gg.Transparent || invisible.Color != gg.Black {
		t.Errorf("colors not restored: tinted=%v watermark=%v ghost=%v", tinted.Color, watermark.Color, invisible.Color)
	}
}

func TestHideAllReentrant(t *testing.T) {
	fig := figure.New()
	txt := fig.AddText(0.5, 0.5, "once")
	backup, err := HideAll(fig)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := HideAll(fig); !errors.Is(err, errors.ErrCodeReentrantHide) {
		t.Fatalf("second HideAll() error = %v, want %s", err, errors.ErrCodeReentrantHide)
	}
	if err := Restore(fig, backup); err != nil {
		t.Fatal(err)
	}
	if txt.Color != gg.Black {
		t.Errorf("Color = %v, want black", txt.Color)
	}
	// A new cycle is allowed once restored.
	if _, err := HideAll(fig); err != nil {
		t.Errorf("HideAll() after Restore error = %v", err)
	}
}

func TestRestoreAfterLayout(t *testing.T) {
	fig := figure.New()
	ax := fig.AddAxes(figure.Rect{X: 0.1, Y: 0.1, W: 0.8, H: 0.8})
	title := ax.SetTitle("Results")
	if err := fig.Layout(); err != nil {
		t.Fatal(err)
	}

	b, err := HideAll(fig)
	if err != nil {
		t.Fatal(err)
	}
	ax.SetXLim(0, 5)
	if err := fig.Layout(); err != nil {
		t.Fatal(err)
	}
	if err := Restore(fig, b); err != nil {
		t.Fatalf("Restore() after a re-layout error = %v", err)
	}
	if title.Color != gg.Black {
		t.Errorf("title color = %v, want black", title.Color)
	}
}

func TestRestoreErrors(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T) error
	}{
		{
			name: "nil backup",
			run: func(t *testing.T) error {
				return Restore(figure.New(), nil)
			},
		},
		{
			name: "consumed backup",
			run: func(t *testing.T) error {
				fig := figure.New()
				fig.AddText(0, 0, "a")
				b, _ := HideAll(fig)
				if err := Restore(fig, b); err != nil {
					t.Fatal(err)
				}
				return Restore(fig, b)
			},
		},
		{
			name: "other figure",
			run: func(t *testing.T) error {
				a, b := figure.New(), figure.New()
				backup, _ := HideAll(a)
				return Restore(b, backup)
			},
		},
		{
			name: "text added after hide",
			run: func(t *testing.T) error {
				fig := figure.New()
				old := fig.AddText(0, 0, "old")
				b, _ := HideAll(fig)
				fig.AddText(1, 1, "new")
				err := Restore(fig, b)
				if old.Color != gg.Black {
					t.Errorf("known text not restored: %v", old.Color)
				}
				if fig.TextHidden() {
					t.Error("figure still marked hidden")
				}
				return err
			},
		},
		{
			name: "structure changed",
			run: func(t *testing.T) error {
				fig := figure.New()
				fig.AddText(0, 0, "a")
				b, _ := HideAll(fig)
				fig.AddGroup("empty")
				return Restore(fig, b)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run(t)
			if !errors.Is(err, errors.ErrCodeLookup) {
				t.Errorf("Restore() error = %v, want %s", err, errors.ErrCodeLookup)
			}
		})
	}
}

func TestHideAllCycle(t *testing.T) {
	fig := figure.New()
	txt := fig.AddText(0.5, 0.5, "kept")
	g := fig.AddGroup("loop")
	g.Add(g)

	if _, err := HideAll(fig); !errors.Is(err, errors.ErrCodeCycleDetected) {
		t.Fatalf("HideAll() error = %v, want %s", err, errors.ErrCodeCycleDetected)
	}
	if txt.Color != gg.Black || fig.TextHidden() {
		t.Error("HideAll() modified the figure despite failing")
	}
}
