package figure

import (
	"math"
	"testing"

	"github.com/gogpu/gg"

	"github.com/matzehuels/figtex/pkg/errors"
)

const tol = 1e-9

func near(a, b gg.Point) bool {
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol
}

func displayXY(t *Text) gg.Point {
	return t.Transform().TransformPoint(t.Pos)
}

func TestNewDefaults(t *testing.T) {
	fig := New()
	w, h := fig.Size()
	if w != DefaultWidth || h != DefaultHeight {
		t.Errorf("Size() = %v x %v, want %v x %v", w, h, DefaultWidth, DefaultHeight)
	}
	pw, ph := fig.PixelSize()
	if pw != 640 || ph != 480 {
		t.Errorf("PixelSize() = %v x %v, want 640 x 480", pw, ph)
	}
	if fig.FontSize() != DefaultFontSize {
		t.Errorf("FontSize() = %v, want %v", fig.FontSize(), DefaultFontSize)
	}
}

func TestOptions(t *testing.T) {
	fig := New(WithSize(4, 2), WithDPI(300), WithFontSize(8), WithFacecolor(gg.Transparent))
	if w, h := fig.PixelSize(); w != 1200 || h != 600 {
		t.Errorf("PixelSize() = %v x %v, want 1200 x 600", w, h)
	}
	if fig.AspectRatio() != 0.5 {
		t.Errorf("AspectRatio() = %v, want 0.5", fig.AspectRatio())
	}
	if fig.FontSize() != 8 {
		t.Errorf("FontSize() = %v, want 8", fig.FontSize())
	}
	if fig.Facecolor != gg.Transparent {
		t.Errorf("Facecolor = %v, want transparent", fig.Facecolor)
	}

	// Non-positive values keep the defaults.
	fig = New(WithSize(0, 3), WithDPI(-1))
	if w, _ := fig.Size(); w != DefaultWidth {
		t.Errorf("width = %v, want default", w)
	}
	if fig.DPI() != DefaultDPI {
		t.Errorf("DPI() = %v, want default", fig.DPI())
	}
}

func TestWithJournal(t *testing.T) {
	j, ok := LookupJournal("epj")
	if !ok {
		t.Fatal("epj preset missing")
	}
	fig := New(WithJournal(j))
	w, h := fig.Size()
	if math.Abs(w-88/25.4) > tol {
		t.Errorf("width = %v, want 88 mm", w)
	}
	if math.Abs(h/w-0.75) > tol {
		t.Errorf("aspect = %v, want 0.75", h/w)
	}
	if fig.FontSize() != 10 {
		t.Errorf("FontSize() = %v, want 10", fig.FontSize())
	}
	if _, ok := LookupJournal("nature"); ok {
		t.Error("unexpected preset nature")
	}
	if names := JournalNames(); len(names) != 1 || names[0] != "epj" {
		t.Errorf("JournalNames() = %v", names)
	}
}

func TestLayoutCoordinates(t *testing.T) {
	tests := []struct {
		name  string
		build func(fig *Figure) *Text
		want  gg.Point
	}{
		{
			name:  "Figure",
			build: func(fig *Figure) *Text { return fig.AddText(0.42, 0.2845, "x") },
			want:  gg.Pt(268.8, 136.56),
		},
		{
			name: "Display",
			build: func(fig *Figure) *Text {
				txt := NewText("x", gg.Pt(10, 20), CoordsDisplay)
				fig.Add(txt)
				return txt
			},
			want: gg.Pt(10, 20),
		},
		{
			name: "Data",
			build: func(fig *Figure) *Text {
				ax := fig.AddAxes(Rect{X: 0.1, Y: 0.1, W: 0.8, H: 0.8})
				ax.SetXLim(0, 10)
				ax.SetYLim(-5, 5)
				return ax.AddText(5, 0, "x")
			},
			want: gg.Pt(320, 240),
		},
		{
			name: "Axes",
			build: func(fig *Figure) *Text {
				ax := fig.AddAxes(Rect{X: 0.5, Y: 0.5, W: 0.5, H: 0.5})
				txt := NewText("x", gg.Pt(1, 1), CoordsAxes)
				ax.Add(txt)
				return txt
			},
			want: gg.Pt(640, 480),
		},
		{
			name: "XAxisBlend",
			build: func(fig *Figure) *Text {
				ax := fig.AddAxes(Rect{X: 0, Y: 0.5, W: 1, H: 0.5})
				ax.SetXLim(0, 4)
				txt := NewText("x", gg.Pt(1, 0), CoordsXAxis)
				ax.Add(txt)
				return txt
			},
			want: gg.Pt(160, 240),
		},
		{
			name: "YAxisBlend",
			build: func(fig *Figure) *Text {
				ax := fig.AddAxes(Rect{X: 0.5, Y: 0, W: 0.5, H: 1})
				ax.SetYLim(0, 4)
				txt := NewText("x", gg.Pt(0, 3), CoordsYAxis)
				ax.Add(txt)
				return txt
			},
			want: gg.Pt(320, 360),
		},
		{
			name: "OffsetInPoints",
			build: func(fig *Figure) *Text {
				txt := fig.AddText(0, 0, "x")
				txt.Offset = gg.Pt(72, -36)
				return txt
			},
			want: gg.Pt(100, -50),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fig := New()
			txt := tt.build(fig)
			if err := fig.Layout(); err != nil {
				t.Fatalf("Layout() error: %v", err)
			}
			if got := displayXY(txt); !near(got, tt.want) {
				t.Errorf("display position = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLayoutDataCoordsWithoutAxes(t *testing.T) {
	fig := New()
	fig.Add(NewText("orphan", gg.Pt(1, 1), CoordsData))
	err := fig.Layout()
	if !errors.Is(err, errors.ErrCodeInvalidFigure) {
		t.Errorf("Layout() error = %v, want %s", err, errors.ErrCodeInvalidFigure)
	}
}

func TestLayoutDetectsCycle(t *testing.T) {
	fig := New()
	g := fig.AddGroup("loop")
	inner := NewGroup("inner")
	g.Add(inner)
	inner.Add(g)

	err := fig.Layout()
	if !errors.Is(err, errors.ErrCodeCycleDetected) {
		t.Errorf("Layout() error = %v, want %s", err, errors.ErrCodeCycleDetected)
	}
}

func TestLayoutSharedNodeIsNotCycle(t *testing.T) {
	fig := New()
	shared := NewText("shared", gg.Pt(0.5, 0.5), CoordsFigure)
	fig.AddGroup("a").Add(shared)
	fig.AddGroup("b").Add(shared)
	if err := fig.Layout(); err != nil {
		t.Errorf("Layout() error = %v, want nil", err)
	}
}

func TestLayoutHidesOutOfRangeTicks(t *testing.T) {
	fig := New()
	ax := fig.Subplots(1, 1)[0]
	ax.SetXLim(0, 2)
	ax.SetYLim(2, 0) // inverted
	if err := ax.SetXTicks([]float64{-1, 0, 1, 2, 3}, nil); err != nil {
		t.Fatal(err)
	}
	if err := ax.SetYTicks([]float64{0.5, 2.5}, []string{"lo", "hi"}); err != nil {
		t.Fatal(err)
	}
	if err := fig.Layout(); err != nil {
		t.Fatal(err)
	}

	wantX := []bool{false, true, true, true, false}
	for i, lbl := range ax.XTickLabels() {
		if lbl.Shown() != wantX[i] {
			t.Errorf("x tick %q shown = %v, want %v", lbl.Content, lbl.Shown(), wantX[i])
		}
	}
	wantY := []bool{true, false}
	for i, lbl := range ax.YTickLabels() {
		if lbl.Shown() != wantY[i] {
			t.Errorf("y tick %q shown = %v, want %v", lbl.Content, lbl.Shown(), wantY[i])
		}
	}
	if got := ax.XTickLabels()[2].Content; got != "1" {
		t.Errorf("formatted tick label = %q, want 1", got)
	}
}

func TestLayoutKeepsUserHiddenTick(t *testing.T) {
	fig := New()
	ax := fig.Subplots(1, 1)[0]
	if err := ax.SetXTicks([]float64{0, 0.5, 1, 2}, nil); err != nil {
		t.Fatal(err)
	}
	ax.XTickLabels()[1].Visible = false

	for pass := range 2 {
		if err := fig.Layout(); err != nil {
			t.Fatal(err)
		}
		labels := ax.XTickLabels()
		if labels[1].Visible || labels[1].Shown() {
			t.Errorf("pass %d: user-hidden tick %q came back", pass, labels[1].Content)
		}
		if labels[1].OutOfRange() {
			t.Errorf("pass %d: tick %q inside the limits marked out of range", pass, labels[1].Content)
		}
		if !labels[3].Visible || labels[3].Shown() {
			t.Errorf("pass %d: out-of-range tick: Visible = %v, Shown = %v, want true, false",
				pass, labels[3].Visible, labels[3].Shown())
		}
	}

	// Widening the limits brings the out-of-range tick back.
	ax.SetXLim(0, 2)
	if err := fig.Layout(); err != nil {
		t.Fatal(err)
	}
	if !ax.XTickLabels()[3].Shown() {
		t.Error("tick 2 should be shown after widening the limits")
	}
	if ax.XTickLabels()[1].Shown() {
		t.Error("user-hidden tick should stay hidden after widening the limits")
	}
}

func TestSetTicksLabelMismatch(t *testing.T) {
	ax := New().Subplots(1, 1)[0]
	if err := ax.SetXTicks([]float64{1, 2}, []string{"one"}); err == nil {
		t.Error("SetXTicks() error = nil, want mismatch error")
	}
}

func TestAxisLabelsClearTicks(t *testing.T) {
	fig := New()
	ax := fig.Subplots(1, 1)[0]
	ax.SetXLabel("x")
	ax.SetYLabel("y")
	if err := fig.Layout(); err != nil {
		t.Fatal(err)
	}
	bare := displayXY(ax.XLabel())
	bareY := displayXY(ax.YLabel())

	_ = ax.SetXTicks([]float64{0, 1}, nil)
	_ = ax.SetYTicks([]float64{0, 1}, []string{"0.00", "1.00"})
	if err := fig.Layout(); err != nil {
		t.Fatal(err)
	}
	if got := displayXY(ax.XLabel()); got.Y >= bare.Y {
		t.Errorf("x label y = %v, want below %v once ticks exist", got.Y, bare.Y)
	}
	if got := displayXY(ax.YLabel()); got.X >= bareY.X {
		t.Errorf("y label x = %v, want left of %v once ticks exist", got.X, bareY.X)
	}
}

func TestSubplots(t *testing.T) {
	fig := New()
	axes := fig.Subplots(2, 3)
	if len(axes) != 6 {
		t.Fatalf("len = %d, want 6", len(axes))
	}
	first, last := axes[0].Bounds(), axes[5].Bounds()
	if math.Abs(first.X-marginLeft) > tol || math.Abs(first.Y+first.H-marginTop) > tol {
		t.Errorf("first axes = %+v, want top-left at (%v, %v)", first, marginLeft, marginTop)
	}
	if math.Abs(last.X+last.W-marginRight) > tol || math.Abs(last.Y-marginBottom) > tol {
		t.Errorf("last axes = %+v, want bottom-right at (%v, %v)", last, marginRight, marginBottom)
	}
	if len(fig.Children()) != 6 {
		t.Errorf("figure children = %d, want 6", len(fig.Children()))
	}
	if fig.Subplots(0, 1) != nil {
		t.Error("Subplots(0, 1) should return nil")
	}
}

func TestAxesChildren(t *testing.T) {
	fig := New()
	ax := fig.Subplots(1, 1)[0]
	ax.Plot([]float64{0, 1}, []float64{0, 1})
	txt := ax.AddText(0.5, 0.5, "note")
	_ = ax.SetXTicks([]float64{0.5}, nil)

	kids := ax.Children()
	wantKinds := []NodeKind{KindShape, KindText, KindGroup, KindGroup, KindText}
	if len(kids) != len(wantKinds) {
		t.Fatalf("children = %d, want %d", len(kids), len(wantKinds))
	}
	for i, k := range wantKinds {
		if kids[i].Kind() != k {
			t.Errorf("child %d kind = %s, want %s", i, kids[i].Kind(), k)
		}
	}
	if kids[4] != ax.Title() {
		t.Error("last child should be the title")
	}
	xaxis := kids[2].Children()
	if len(xaxis) != 2 || xaxis[0] != ax.XTickLabels()[0] || xaxis[1] != ax.XLabel() {
		t.Errorf("x axis children = %v", xaxis)
	}
	if txt.Axes() != ax || !txt.ClipOn || txt.Figure() != fig {
		t.Errorf("AddText wiring: axes=%v clip=%v fig=%v", txt.Axes(), txt.ClipOn, txt.Figure())
	}
	for _, lbl := range ax.XTickLabels() {
		if lbl.Axes() != ax || lbl.Figure() != fig {
			t.Errorf("tick label %q not attached", lbl.Content)
		}
	}
}

func TestGeneration(t *testing.T) {
	fig := New()
	g0 := fig.Generation()
	ax := fig.Subplots(1, 1)[0]
	g1 := fig.Generation()
	if g1 <= g0 {
		t.Errorf("generation did not advance on AddAxes")
	}
	ax.AddText(0, 0, "a")
	g2 := fig.Generation()
	if g2 <= g1 {
		t.Errorf("generation did not advance on AddText")
	}
	ax.SetTitle("t") // content change only
	if fig.Generation() != g2 {
		t.Errorf("generation advanced on a content change")
	}
	_ = ax.SetYTicks([]float64{1}, nil)
	g3 := fig.Generation()
	if g3 <= g2 {
		t.Errorf("generation did not advance on SetYTicks")
	}
	s3 := fig.Structure()
	_ = fig.Layout()
	if fig.Generation() <= g3 {
		t.Errorf("generation did not advance on Layout")
	}
	if fig.Structure() != s3 {
		t.Errorf("structure advanced on Layout")
	}
	ax.AddText(1, 1, "b")
	if fig.Structure() <= s3 {
		t.Errorf("structure did not advance on AddText")
	}
}

func TestGroupAddAfterAttach(t *testing.T) {
	fig := New()
	ax := fig.Subplots(1, 1)[0]
	g := NewGroup("legend")
	ax.Add(g)
	txt := NewText("entry", gg.Pt(0.9, 0.9), CoordsAxes)
	g.Add(txt)
	if txt.Axes() != ax || txt.Figure() != fig {
		t.Errorf("late child not attached: axes=%v fig=%v", txt.Axes(), txt.Figure())
	}
}

func TestTextSize(t *testing.T) {
	fig := New(WithFontSize(12))
	txt := fig.AddText(0, 0, "a")
	if txt.Size() != 12 {
		t.Errorf("Size() = %v, want figure default 12", txt.Size())
	}
	txt.FontSize = 7
	if txt.Size() != 7 {
		t.Errorf("Size() = %v, want 7", txt.Size())
	}
	if NewText("a", gg.Point{}, CoordsDisplay).Size() != DefaultFontSize {
		t.Error("detached text should use the package default")
	}
}

func TestEnumNames(t *testing.T) {
	for _, v := range []VAlign{VAlignBaseline, VAlignBottom, VAlignTop, VAlignCenter, VAlignCenterBaseline} {
		got, err := ParseVAlign(v.String())
		if err != nil || got != v {
			t.Errorf("ParseVAlign(%q) = %v, %v", v, got, err)
		}
	}
	for _, h := range []HAlign{HAlignLeft, HAlignRight, HAlignCenter} {
		got, err := ParseHAlign(h.String())
		if err != nil || got != h {
			t.Errorf("ParseHAlign(%q) = %v, %v", h, got, err)
		}
	}
	for c := CoordsDisplay; c <= CoordsYAxis; c++ {
		got, err := ParseCoords(c.String())
		if err != nil || got != c {
			t.Errorf("ParseCoords(%q) = %v, %v", c, got, err)
		}
	}
	if _, err := ParseVAlign("middle"); err == nil {
		t.Error("ParseVAlign(middle) should fail")
	}
	if got := VAlign(42).String(); got != "VAlign(42)" {
		t.Errorf("VAlign(42).String() = %q", got)
	}
	if got := KindAxes.String(); got != "axes" {
		t.Errorf("KindAxes.String() = %q", got)
	}
}
