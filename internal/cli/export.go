package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/figtex/pkg/errors"
	"github.com/matzehuels/figtex/pkg/io"
	"github.com/matzehuels/figtex/pkg/overlay"
	"github.com/matzehuels/figtex/pkg/pipeline"
)

// exportFlags holds the command-line flags for the export command.
// Only flags the user set override the config file.
type exportFlags struct {
	output       string
	config       string
	format       string
	widthCommand string
	texExtension string
	externalize  bool
	drawAnchors  bool
	embedFont    bool
	pngScale     float64
	noCache      bool
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export <figure.json|figure.toml>",
		Short: "Write the text-free image and its TikZ overlay",
		Long: `Export renders the figure without text and writes a .pdf_tex file that
places every visible label on top of the image.

The image is written to <base>.<format> and the overlay to
<base>.pdf_tex, where <base> defaults to the input path without extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := exportOptions(cmd, flags)
			if err != nil {
				return err
			}
			opts.Cache = c.newCache(flags.noCache)
			defer opts.Cache.Close()
			return c.runExport(cmd.Context(), args[0], basePath(flags.output, args[0]), opts)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output base path (default: input without extension)")
	cmd.Flags().StringVar(&flags.config, "config", "", "config file (default: ./"+configFile+" if present)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", pipeline.DefaultFormat, "image format: pdf, png, svg")
	cmd.Flags().StringVar(&flags.widthCommand, "width-command", `\figurewidth`, "LaTeX length that sets the figure width")
	cmd.Flags().StringVar(&flags.texExtension, "tex-ext", pipeline.DefaultTexExtension, "extension of the overlay file")
	cmd.Flags().BoolVar(&flags.externalize, "externalize", false, "wrap the picture for TikZ externalization")
	cmd.Flags().BoolVar(&flags.drawAnchors, "draw-anchors", false, "mark every text anchor in the image")
	cmd.Flags().BoolVar(&flags.embedFont, "embed-font", false, "embed the font in SVG output")
	cmd.Flags().Float64Var(&flags.pngScale, "png-scale", pipeline.DefaultPNGScale, "resolution multiplier for PNG output")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "always run rsvg-convert instead of reusing cached PDFs")

	return cmd
}

// exportOptions merges the config file with the flags the user set.
func exportOptions(cmd *cobra.Command, flags exportFlags) (pipeline.Options, error) {
	cfg, err := loadConfig(flags.config)
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := cfg.Export

	set := cmd.Flags().Changed
	if set("format") {
		opts.Format = flags.format
	}
	if set("width-command") {
		opts.WidthCommand = flags.widthCommand
	}
	if set("tex-ext") {
		opts.TexExtension = flags.texExtension
	}
	if set("externalize") {
		opts.Externalize = flags.externalize
	}
	if set("draw-anchors") {
		opts.DrawAnchors = flags.drawAnchors
	}
	if set("embed-font") {
		opts.EmbedFont = flags.embedFont
	}
	if set("png-scale") {
		opts.PNGScale = flags.pngScale
	}
	// Validate a copy; the runner still has to supply the logger.
	check := opts
	return opts, check.Validate()
}

// imageExts are output extensions stripped from -o.
var imageExts = map[string]bool{".pdf": true, ".png": true, ".svg": true, ".pdf_tex": true}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has an image extension (.pdf, .png, ...), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	if ext := filepath.Ext(output); imageExts[strings.ToLower(ext)] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func (c *CLI) runExport(ctx context.Context, input, base string, opts pipeline.Options) error {
	prog := newProgress(c.Logger)

	fig, err := io.Import(input)
	if err != nil {
		return err
	}
	c.Logger.Debug("loaded figure", "path", input, "id", fig.ID())

	spinner := newSpinner(ctx, os.Stderr, fmt.Sprintf("Exporting %s...", filepath.Base(base)))
	spinner.Start()
	result, err := c.newRunner().Export(ctx, fig, base, opts)
	if err != nil {
		spinner.StopWithError(errors.UserMessage(err))
		return err
	}
	spinner.Stop()

	texts, _ := overlay.Texts(fig)
	printSuccess(c.out, "Exported %s", input)
	printFile(c.out, result.ImagePath)
	printFile(c.out, result.TexPath)
	printStats(c.out, result.Stats.TextCount, len(texts)-result.Stats.TextCount, result.Stats.ImageBytes)
	if result.Stats.TextCount == 0 {
		printWarning(c.out, "no visible text: the overlay only includes the image")
	}
	printNextStep(c.out, "Include it with", `\input{`+result.TexPath+`}`)

	prog.done("Exported " + result.ImagePath)
	return nil
}
