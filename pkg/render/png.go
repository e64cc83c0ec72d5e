package render

import (
	"bytes"
	"math"

	"github.com/gogpu/gg"

	"github.com/matzehuels/figtex/pkg/errors"
	"github.com/matzehuels/figtex/pkg/figure"
	"github.com/matzehuels/figtex/pkg/fonts"
)

// RenderPNG rasterizes a laid-out figure with the gg software renderer.
// Rotated text is drawn horizontally at its anchor.
func RenderPNG(fig *figure.Figure, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts...)
	s := buildScene(fig, cfg)

	w, h := int(math.Ceil(s.width)), int(math.Ceil(s.height))
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidFigure, "cannot rasterize a %dx%d image", w, h)
	}
	dc := gg.NewContext(w, h)
	defer dc.Close()

	dc.ClearWithColor(s.background)
	for _, p := range s.panels {
		setColor(dc, p.face)
		dc.DrawRectangle(p.frame.X, p.frame.Y, p.frame.W, p.frame.H)
		if err := dc.Fill(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeRender, err, "fill axes")
		}
	}
	for _, l := range s.lines {
		if err := strokePolyline(dc, l); err != nil {
			return nil, err
		}
	}
	for _, p := range s.panels {
		if err := strokeFrame(dc, p); err != nil {
			return nil, err
		}
	}
	for _, lb := range s.labels {
		if err := drawLabel(dc, lb, cfg); err != nil {
			return nil, err
		}
	}
	for _, a := range s.anchors {
		setColor(dc, gg.Red)
		dc.SetLineWidth(cfg.scale)
		dc.DrawLine(a.X-4*cfg.scale, a.Y, a.X+4*cfg.scale, a.Y)
		dc.DrawLine(a.X, a.Y-4*cfg.scale, a.X, a.Y+4*cfg.scale)
		if err := dc.Stroke(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeRender, err, "stroke anchor")
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "encode PNG")
	}
	return buf.Bytes(), nil
}

func setColor(dc *gg.Context, c gg.RGBA) {
	dc.SetRGBA(c.R, c.G, c.B, c.A)
}

func strokePolyline(dc *gg.Context, l polyline) error {
	if len(l.pts) < 2 || l.color.A == 0 {
		return nil
	}
	dc.Push()
	defer dc.Pop()
	if l.clip != nil {
		f := l.clip.frame
		dc.ClipRect(f.X, f.Y, f.W, f.H)
	}
	setColor(dc, l.color)
	dc.SetLineWidth(l.width)
	dc.MoveTo(l.pts[0].X, l.pts[0].Y)
	for _, p := range l.pts[1:] {
		dc.LineTo(p.X, p.Y)
	}
	if err := dc.Stroke(); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "stroke line")
	}
	return nil
}

func strokeFrame(dc *gg.Context, p *panel) error {
	setColor(dc, p.edge)
	dc.SetLineWidth(0.8)
	dc.DrawRectangle(p.frame.X, p.frame.Y, p.frame.W, p.frame.H)
	for _, t := range p.ticks {
		dc.DrawLine(t[0].X, t[0].Y, t[1].X, t[1].Y)
	}
	if err := dc.Stroke(); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "stroke frame")
	}
	return nil
}

func drawLabel(dc *gg.Context, lb label, cfg *config) error {
	if lb.color.A == 0 {
		return nil
	}
	face, err := fonts.Face(lb.size)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "load font")
	}
	if lb.rotation != 0 {
		cfg.logger.Debug("drawing rotated text horizontally", "text", lb.text, "rotation", lb.rotation)
	}
	dc.SetFont(face)
	setColor(dc, lb.color)

	width, _ := dc.MeasureString(lb.text)
	m := face.Metrics()
	x, y := lb.at.X, lb.at.Y
	switch lb.halign {
	case figure.HAlignRight:
		x -= width
	case figure.HAlignCenter:
		x -= width / 2
	}
	// y is the baseline in image pixels (y grows downward).
	switch lb.valign {
	case figure.VAlignBottom:
		y -= m.Descent
	case figure.VAlignTop:
		y += m.Ascent
	case figure.VAlignCenter:
		y += (m.Ascent - m.Descent) / 2
	case figure.VAlignCenterBaseline:
		y += m.Ascent / 2
	}
	dc.DrawString(lb.text, x, y)
	return nil
}
