package pipeline

import (
	"context"

	"github.com/gogpu/gg"

	"github.com/matzehuels/figtex/pkg/errors"
	"github.com/matzehuels/figtex/pkg/figure"
	"github.com/matzehuels/figtex/pkg/latex"
	"github.com/matzehuels/figtex/pkg/overlay"
	"github.com/matzehuels/figtex/pkg/render"
)

// Markup writes the overlay file for records. graphics is the image name
// used in \includegraphics, without extension.
func Markup(fig *figure.Figure, records []overlay.Record, graphics string, opts Options) ([]byte, error) {
	in, err := latex.New(latex.Options{WidthCommand: opts.WidthCommand, Externalize: opts.Externalize})
	if err != nil {
		return nil, err
	}
	in.IncludeGraphics(graphics, fig.AspectRatio())
	for _, r := range records {
		in.AddText(latex.Node{
			Text:     r.Text,
			X:        r.Position.X,
			Y:        r.Position.Y,
			Rotation: r.Rotation,
			Color:    r.Color,
			Anchor:   r.Anchor,
		})
	}
	return in.Bytes(), nil
}

// RenderImage renders fig in the configured format. anchors are marked in
// the image when DrawAnchors is set.
func RenderImage(ctx context.Context, fig *figure.Figure, anchors []gg.Point, opts Options) ([]byte, error) {
	var ropts []render.Option
	ropts = append(ropts, render.WithLogger(opts.Logger))
	if opts.DrawAnchors {
		ropts = append(ropts, render.WithAnchors(anchors))
	}

	switch opts.Format {
	case FormatSVG:
		if opts.EmbedFont {
			ropts = append(ropts, render.WithEmbeddedFont())
		}
		return render.RenderSVG(fig, ropts...), nil
	case FormatPNG:
		ropts = append(ropts, render.WithScale(opts.PNGScale))
		return render.RenderPNG(fig, ropts...)
	case FormatPDF:
		ropts = append(ropts, render.WithCache(opts.Cache))
		return render.RenderPDF(ctx, fig, ropts...)
	default:
		// Validate rejects unknown formats, so reaching here is a caller bug.
		return nil, errors.New(errors.ErrCodeInternal, "no renderer for format %q", opts.Format)
	}
}

func anchorPoints(records []overlay.Record) []gg.Point {
	pts := make([]gg.Point, len(records))
	for i, r := range records {
		pts[i] = r.Position
	}
	return pts
}
