package render

import (
	"context"

	"github.com/matzehuels/figtex/pkg/cache"
	"github.com/matzehuels/figtex/pkg/figure"
)

// RenderPDF renders a laid-out figure as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
//
// Conversions are looked up in the cache set with [WithCache] first.
func RenderPDF(ctx context.Context, fig *figure.Figure, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts...)
	svg := RenderSVG(fig, opts...)

	key := cache.ConversionKey(rsvgTool, "pdf", svg)
	if data, ok, err := cfg.cache.Get(ctx, key); err != nil {
		cfg.logger.Warn("conversion cache read failed", "error", err)
	} else if ok {
		cfg.logger.Debug("using cached PDF", "bytes", len(data))
		return data, nil
	}

	cfg.logger.Debug("converting SVG to PDF", "svg_bytes", len(svg))
	pdf, err := ToPDF(ctx, svg)
	if err != nil {
		return nil, err
	}
	if err := cfg.cache.Set(ctx, key, pdf); err != nil {
		cfg.logger.Warn("conversion cache write failed", "error", err)
	}
	return pdf, nil
}
