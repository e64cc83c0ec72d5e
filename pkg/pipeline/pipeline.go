// Package pipeline provides the export pipeline of figtex.
//
// This package implements the complete layout → extract → render pipeline
// that turns a figure into a text-free image plus a TikZ overlay. The
// command line tool and library users share it, so both produce the same
// files.
//
// # Architecture
//
// An export runs these stages in order:
//
//  1. Layout: resolve the display transform of every text
//  2. Extract: collect the visible texts as overlay records
//  3. Markup: write the .pdf_tex file placing those records
//  4. Render: hide all text, render the image, restore the text colors
//
// The figure is left as it was found: its text colors are restored even
// when rendering fails.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Export(ctx, fig, "build/plot", pipeline.Options{
//	    Format:       pipeline.FormatPDF,
//	    WidthCommand: `\figurewidth`,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.ImagePath, result.TexPath)
//
// Use [Runner.Build] to get the artifacts in memory without writing files.
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/figtex/pkg/cache"
	"github.com/matzehuels/figtex/pkg/errors"
	"github.com/matzehuels/figtex/pkg/latex"
	"github.com/matzehuels/figtex/pkg/overlay"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and library users
// =============================================================================

const (
	// DefaultFormat is the default image format.
	DefaultFormat = FormatPDF

	// DefaultTexExtension is the extension of the overlay file.
	DefaultTexExtension = "pdf_tex"

	// DefaultPNGScale is the default resolution multiplier for PNG output.
	DefaultPNGScale = 1.0
)

// Format constants for output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for an export.
type Options struct {
	// Image options
	Format      string  `json:"format,omitempty" toml:"format,omitempty"`
	PNGScale    float64 `json:"png_scale,omitempty" toml:"png_scale,omitempty"`
	EmbedFont   bool    `json:"embed_font,omitempty" toml:"embed_font,omitempty"`
	DrawAnchors bool    `json:"draw_anchors,omitempty" toml:"draw_anchors,omitempty"` // mark every overlay anchor in the image

	// Markup options
	WidthCommand string `json:"width_command,omitempty" toml:"width_command,omitempty"`
	Externalize  bool   `json:"externalize,omitempty" toml:"externalize,omitempty"`
	TexExtension string `json:"tex_extension,omitempty" toml:"tex_extension,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-"`
	Cache  cache.Cache `json:"-" toml:"-"` // converter output cache; nil disables it
}

// Result contains the outputs of an export.
type Result struct {
	// Records are the texts placed in the overlay.
	Records []overlay.Record

	// Artifacts contains the generated files keyed by extension
	// (the image format and the tex extension).
	Artifacts map[string][]byte

	// ImagePath and TexPath are the written files; empty for [Runner.Build].
	ImagePath string
	TexPath   string

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains export statistics.
type Stats struct {
	TextCount   int
	ImageBytes  int
	LayoutTime  time.Duration
	ExtractTime time.Duration
	RenderTime  time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills unset fields with their defaults.
func (o *Options) SetDefaults() {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.WidthCommand == "" {
		o.WidthCommand = latex.DefaultWidthCommand
	}
	o.TexExtension = strings.TrimPrefix(o.TexExtension, ".")
	if o.TexExtension == "" {
		o.TexExtension = DefaultTexExtension
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate sets defaults and checks every field.
func (o *Options) Validate() error {
	o.SetDefaults()
	if err := errors.ValidateFormat(o.Format); err != nil {
		return err
	}
	if err := errors.ValidateLengthCommand(o.WidthCommand); err != nil {
		return err
	}
	if strings.ContainsAny(o.TexExtension, `/\ `) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid tex extension %q", o.TexExtension)
	}
	if o.TexExtension == o.Format {
		return errors.New(errors.ErrCodeInvalidInput, "tex extension %q would overwrite the image", o.TexExtension)
	}
	if o.PNGScale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %g", o.PNGScale)
	}
	return nil
}
