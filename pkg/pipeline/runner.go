package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/figtex/pkg/errors"
	"github.com/matzehuels/figtex/pkg/figure"
	"github.com/matzehuels/figtex/pkg/observability"
	"github.com/matzehuels/figtex/pkg/overlay"
)

// Runner executes exports.
//
// The Runner is stateless except for the logger. Multiple goroutines can
// safely use the same Runner for different figures; a single figure must
// not be exported concurrently.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Export runs the pipeline and writes <base>.<format> and
// <base>.<tex extension>. Missing parent directories are created.
func (r *Runner) Export(ctx context.Context, fig *figure.Figure, base string, opts Options) (*Result, error) {
	if err := errors.ValidateOutputBase(base); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	result, err := r.Build(ctx, fig, filepath.Base(base), opts)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	result.ImagePath = base + "." + opts.Format
	result.TexPath = base + "." + opts.TexExtension
	if err := os.WriteFile(result.ImagePath, result.Artifacts[opts.Format], 0o644); err != nil {
		return nil, fmt.Errorf("write image: %w", err)
	}
	if err := os.WriteFile(result.TexPath, result.Artifacts[opts.TexExtension], 0o644); err != nil {
		return nil, fmt.Errorf("write overlay: %w", err)
	}

	r.Logger.Info("exported figure",
		"image", result.ImagePath,
		"overlay", result.TexPath,
		"texts", result.Stats.TextCount)
	return result, nil
}

// Build runs the pipeline in memory. graphics is the image name written
// into the overlay's \includegraphics.
func (r *Runner) Build(ctx context.Context, fig *figure.Figure, graphics string, opts Options) (res *Result, err error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if fig.TextHidden() {
		return nil, errors.New(errors.ErrCodeReentrantHide, "text of figure %s is already hidden", fig.ID())
	}
	hooks := observability.Pipeline()
	result := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1: Layout
	layoutStart := time.Now()
	hooks.OnLayoutStart(ctx, fig.ID())
	err = fig.Layout()
	result.Stats.LayoutTime = time.Since(layoutStart)
	hooks.OnLayoutComplete(ctx, fig.ID(), result.Stats.LayoutTime, err)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	// Stage 2: Extract
	extractStart := time.Now()
	hooks.OnExtractStart(ctx, fig.ID())
	records, err := overlay.Extract(fig)
	result.Stats.ExtractTime = time.Since(extractStart)
	hooks.OnExtractComplete(ctx, fig.ID(), len(records), result.Stats.ExtractTime, err)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	result.Records = records
	result.Stats.TextCount = len(records)

	opts.Logger.Debug("extracted texts",
		"count", len(records),
		"duration", result.Stats.ExtractTime)

	// Stage 3: Markup
	tex, err := Markup(fig, records, graphics, opts)
	if err != nil {
		return nil, fmt.Errorf("markup: %w", err)
	}
	result.Artifacts[opts.TexExtension] = tex

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 4: Render without text
	backup, err := overlay.HideAll(fig)
	if err != nil {
		return nil, fmt.Errorf("hide text: %w", err)
	}
	defer func() {
		if rerr := overlay.Restore(fig, backup); rerr != nil && err == nil {
			res, err = nil, fmt.Errorf("restore text: %w", rerr)
		}
	}()

	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Format)
	image, err := RenderImage(ctx, fig, anchorPoints(records), opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Format, len(image), result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", opts.Format, err)
	}
	result.Artifacts[opts.Format] = image
	result.Stats.ImageBytes = len(image)

	opts.Logger.Debug("rendered image",
		"format", opts.Format,
		"bytes", len(image),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
