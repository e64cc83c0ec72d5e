package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/gogpu/gg"

	"github.com/matzehuels/figtex/pkg/figure"
)

func sceneFigure(t *testing.T) (*figure.Figure, *figure.Text, *figure.Text) {
	t.Helper()
	fig := figure.New()
	ax := fig.Subplots(1, 1)[0]
	ax.SetTitle("Title")
	ax.Plot([]float64{0, 1}, []float64{0, 1})
	shown := ax.AddText(0.5, 0.5, "inside")
	dropped := fig.AddText(0.1, 0.1, "ghost")
	dropped.Color = gg.Transparent
	if err := fig.Layout(); err != nil {
		t.Fatal(err)
	}
	return fig, shown, dropped
}

func TestToDOT(t *testing.T) {
	fig, shown, dropped := sceneFigure(t)
	dot, err := ToDOT(fig, Options{})
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"digraph G {",
		`label="text \"inside\"", fillcolor=palegreen`,
		`label="text \"ghost\"", fillcolor=lightgrey`,
		`label="group xaxis"`,
		"line\\n2 points",
		"-> \"" + shown.ID() + "\"",
		"\"" + fig.ID() + "\" -> \"" + dropped.ID() + "\"",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	fig, _, _ := sceneFigure(t)
	dot, err := ToDOT(fig, Options{Detailed: true})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"coords: data", "anchor: base west", "align: baseline/left"} {
		if !strings.Contains(dot, want) {
			t.Errorf("detailed DOT missing %q", want)
		}
	}
}

func TestToDOTSharedNode(t *testing.T) {
	fig := figure.New()
	shared := figure.NewText("shared", gg.Pt(0.5, 0.5), figure.CoordsFigure)
	fig.AddGroup("a").Add(shared)
	fig.AddGroup("b").Add(shared)
	_ = fig.Layout()

	dot, err := ToDOT(fig, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(dot, `"`+shared.ID()+`" [`); n != 1 {
		t.Errorf("shared node declared %d times, want 1", n)
	}
	if n := strings.Count(dot, `-> "`+shared.ID()+`"`); n != 2 {
		t.Errorf("edges into shared node = %d, want 2", n)
	}
}

func TestRenderSVG(t *testing.T) {
	fig, _, _ := sceneFigure(t)
	dot, err := ToDOT(fig, Options{})
	if err != nil {
		t.Fatal(err)
	}
	svg, err := RenderSVG(context.Background(), dot)
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(svg)), "<") || !strings.Contains(string(svg), "<svg") {
		t.Error("output is not SVG")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}
}
