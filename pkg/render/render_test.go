package render

import (
	"bytes"
	"context"
	"image/png"
	"strings"
	"testing"

	"github.com/gogpu/gg"

	"github.com/matzehuels/figtex/pkg/cache"
	"github.com/matzehuels/figtex/pkg/figure"
)

func testFigure(t *testing.T) *figure.Figure {
	t.Helper()
	fig := figure.New(figure.WithSize(4, 3), figure.WithDPI(50))
	ax := fig.Subplots(1, 1)[0]
	ax.SetXLim(0, 2)
	ax.Plot([]float64{0, 1, 2}, []float64{0, 1, 0.5})
	ax.SetTitle("Signal & noise")
	ax.SetYLabel("amplitude")
	if err := ax.SetXTicks([]float64{0, 1, 2, 3}, nil); err != nil {
		t.Fatal(err)
	}
	hidden := fig.AddText(0.9, 0.1, "hidden")
	hidden.Color = gg.Transparent
	if err := fig.Layout(); err != nil {
		t.Fatal(err)
	}
	return fig
}

func TestRenderSVG(t *testing.T) {
	fig := testFigure(t)
	svg := string(RenderSVG(fig))

	for _, want := range []string{
		`viewBox="0 0 200.00 150.00" width="200" height="150"`,
		"Signal &amp; noise",
		`<clipPath id="clip-`,
		"<polyline",
		`rotate(-90.00`,
		`text-anchor="middle"`,
		`dominant-baseline="text-before-edge"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if !strings.Contains(svg, `>hidden</text>`) || !strings.Contains(svg, `fill-opacity="0"`) {
		t.Error("transparent text should be kept with zero opacity")
	}
	// Tick 3 lies outside the limits: its label is hidden and not drawn.
	if strings.Contains(svg, ">3</text>") {
		t.Error("out-of-range tick label was drawn")
	}
	if strings.Contains(svg, `class="anchor"`) {
		t.Error("anchors drawn without WithAnchors")
	}
}

func TestBuildSceneClipsLikeOverlay(t *testing.T) {
	fig := figure.New(figure.WithSize(4, 3), figure.WithDPI(50))
	ax := fig.Subplots(1, 1)[0]
	ax.SetXLim(0, 2)
	ax.AddText(1, 1.5, "above")
	ax.AddText(3, 0.5, "right")
	ax.AddText(3, 1.5, "corner")
	if err := fig.Layout(); err != nil {
		t.Fatal(err)
	}

	drawn := make(map[string]bool)
	for _, lb := range buildScene(fig, newConfig()).labels {
		drawn[lb.text] = true
	}
	tests := []struct {
		text string
		want bool
	}{
		{"above", true},
		{"right", true},
		{"corner", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if drawn[tt.text] != tt.want {
				t.Errorf("drawn = %v, want %v", drawn[tt.text], tt.want)
			}
		})
	}

	svg := string(RenderSVG(fig))
	if strings.Contains(svg, "corner</text>") {
		t.Error("SVG drew a text outside both axes extents")
	}
	for _, line := range strings.Split(svg, "\n") {
		if strings.Contains(line, ">above</text>") && strings.Contains(line, "clip-path") {
			t.Errorf("kept text is cut by a clip path: %s", line)
		}
	}
}

func TestRenderSVGOptions(t *testing.T) {
	fig := testFigure(t)
	svg := string(RenderSVG(fig, WithScale(2), WithAnchors([]gg.Point{{X: 0.5, Y: 0.5}}), WithEmbeddedFont()))

	if !strings.Contains(svg, `width="400" height="300"`) {
		t.Error("WithScale(2) did not double the size")
	}
	if !strings.Contains(svg, `class="anchor" d="M196.00,150.00 H204.00 M200.00,146.00 V154.00"`) {
		t.Errorf("anchor marker not at the figure center")
	}
	if !strings.Contains(svg, "@font-face") {
		t.Error("WithEmbeddedFont did not embed the font")
	}
}

func TestRenderPNG(t *testing.T) {
	fig := testFigure(t)
	data, err := RenderPNG(fig, WithScale(2), WithAnchors([]gg.Point{{X: 0.25, Y: 0.75}}))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 300 {
		t.Errorf("size = %dx%d, want 400x300", b.Dx(), b.Dy())
	}
}

func TestRenderPDF(t *testing.T) {
	if !HasRSVG() {
		t.Skip("rsvg-convert not installed")
	}
	fig := testFigure(t)
	data, err := RenderPDF(context.Background(), fig)
	if err != nil {
		t.Fatalf("RenderPDF() error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF")
	}
}

func TestRenderPDFCanceled(t *testing.T) {
	if !HasRSVG() {
		t.Skip("rsvg-convert not installed")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RenderPDF(ctx, testFigure(t)); err == nil {
		t.Error("RenderPDF() with canceled context should fail")
	}
}

func TestRenderPDFCached(t *testing.T) {
	ctx := context.Background()
	fig := testFigure(t)
	c, err := cache.NewFileCache(t.TempDir(), 0)
	if err != nil {
		t.Fatal(err)
	}

	cached := []byte("%PDF-cached")
	key := cache.ConversionKey(rsvgTool, "pdf", RenderSVG(fig))
	if err := c.Set(ctx, key, cached); err != nil {
		t.Fatal(err)
	}

	data, err := RenderPDF(ctx, fig, WithCache(c))
	if err != nil {
		t.Fatalf("RenderPDF() error: %v", err)
	}
	if !bytes.Equal(data, cached) {
		t.Errorf("RenderPDF() = %q, want the cached entry", data)
	}
}

func TestHexColor(t *testing.T) {
	tests := []struct {
		c    gg.RGBA
		want string
	}{
		{gg.Black, "#000000"},
		{gg.White, "#ffffff"},
		{gg.Hex("#1f77b4"), "#1f77b4"},
		{gg.RGBA2(2, -1, 0.5, 1), "#ff0080"},
	}
	for _, tt := range tests {
		if got := hexColor(tt.c); got != tt.want {
			t.Errorf("hexColor(%v) = %q, want %q", tt.c, got, tt.want)
		}
	}
}
