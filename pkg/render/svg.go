package render

import (
	"bytes"
	"fmt"
	"html"
	"math"

	"github.com/gogpu/gg"

	"github.com/matzehuels/figtex/pkg/figure"
	"github.com/matzehuels/figtex/pkg/fonts"
)

// RenderSVG draws a laid-out figure as SVG.
//
// Transparent text is written with fill-opacity 0 rather than dropped, so a
// text-free render keeps the exact element structure of a normal one.
func RenderSVG(fig *figure.Figure, opts ...Option) []byte {
	cfg := newConfig(opts...)
	s := buildScene(fig, cfg)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`+"\n",
		s.width, s.height, s.width, s.height)

	renderDefs(&buf, s, cfg)
	if s.background.A > 0 {
		fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.2f" height="%.2f" %s/>`+"\n", s.width, s.height, fillAttrs(s.background))
	}
	for _, p := range s.panels {
		fmt.Fprintf(&buf, `  <rect id="axes-%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" %s/>`+"\n",
			p.id, p.frame.X, p.frame.Y, p.frame.W, p.frame.H, fillAttrs(p.face))
	}
	for _, l := range s.lines {
		renderPolyline(&buf, l)
	}
	for _, p := range s.panels {
		renderFrame(&buf, p)
	}
	for _, lb := range s.labels {
		renderLabel(&buf, lb)
	}
	for _, a := range s.anchors {
		renderAnchor(&buf, a)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderDefs(buf *bytes.Buffer, s *scene, cfg *config) {
	buf.WriteString("  <defs>\n")
	if cfg.embedFont {
		fmt.Fprintf(buf, "    <style>@font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s); }</style>\n",
			fonts.FontFamily, fonts.RegularTTFBase64())
	}
	for _, p := range s.panels {
		fmt.Fprintf(buf, `    <clipPath id="clip-%s"><rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"/></clipPath>`+"\n",
			p.id, p.frame.X, p.frame.Y, p.frame.W, p.frame.H)
	}
	buf.WriteString("  </defs>\n")
}

func renderPolyline(buf *bytes.Buffer, l polyline) {
	if len(l.pts) < 2 {
		return
	}
	buf.WriteString(`  <polyline points="`)
	for i, p := range l.pts {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(buf, "%.2f,%.2f", p.X, p.Y)
	}
	fmt.Fprintf(buf, `" fill="none" %s stroke-width="%.2f" stroke-linejoin="round"%s/>`+"\n",
		strokeAttrs(l.color), l.width, clipAttr(l.clip))
}

func renderFrame(buf *bytes.Buffer, p *panel) {
	fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" %s stroke-width="0.8"/>`+"\n",
		p.frame.X, p.frame.Y, p.frame.W, p.frame.H, strokeAttrs(p.edge))
	for _, t := range p.ticks {
		fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" %s stroke-width="0.8"/>`+"\n",
			t[0].X, t[0].Y, t[1].X, t[1].Y, strokeAttrs(p.edge))
	}
}

func renderLabel(buf *bytes.Buffer, lb label) {
	transform := ""
	if lb.rotation != 0 {
		transform = fmt.Sprintf(` transform="rotate(%.2f %.2f %.2f)"`, -lb.rotation, lb.at.X, lb.at.Y)
	}
	fmt.Fprintf(buf, `  <text id="text-%s" x="%.2f" y="%.2f" font-family="%s" font-size="%.2f" text-anchor="%s" dominant-baseline="%s" %s%s>%s</text>`+"\n",
		lb.id, lb.at.X, lb.at.Y, html.EscapeString(fonts.FallbackFontFamily), lb.size,
		textAnchor(lb.halign), dominantBaseline(lb.valign), fillAttrs(lb.color),
		transform, html.EscapeString(lb.text))
}

func renderAnchor(buf *bytes.Buffer, p gg.Point) {
	const arm = 4.0
	fmt.Fprintf(buf, `  <path class="anchor" d="M%.2f,%.2f H%.2f M%.2f,%.2f V%.2f" stroke="#ff0000" stroke-width="1"/>`+"\n",
		p.X-arm, p.Y, p.X+arm, p.X, p.Y-arm, p.Y+arm)
}

func textAnchor(h figure.HAlign) string {
	switch h {
	case figure.HAlignRight:
		return "end"
	case figure.HAlignCenter:
		return "middle"
	default:
		return "start"
	}
}

func dominantBaseline(v figure.VAlign) string {
	switch v {
	case figure.VAlignBottom:
		return "text-after-edge"
	case figure.VAlignTop:
		return "text-before-edge"
	case figure.VAlignCenter:
		return "central"
	case figure.VAlignCenterBaseline:
		return "middle"
	default:
		return "alphabetic"
	}
}

func clipAttr(p *panel) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf(` clip-path="url(#clip-%s)"`, p.id)
}

func fillAttrs(c gg.RGBA) string {
	return fmt.Sprintf(`fill="%s" fill-opacity="%s"`, hexColor(c), opacity(c.A))
}

func strokeAttrs(c gg.RGBA) string {
	return fmt.Sprintf(`stroke="%s" stroke-opacity="%s"`, hexColor(c), opacity(c.A))
}

func hexColor(c gg.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

func opacity(a float64) string {
	return fmt.Sprintf("%.3g", math.Max(0, math.Min(1, a)))
}
