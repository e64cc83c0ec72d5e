package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/figtex/pkg/errors"
	"github.com/matzehuels/figtex/pkg/latex"
	"github.com/matzehuels/figtex/pkg/pipeline"
)

// preambleCommand creates the preamble command.
func (c *CLI) preambleCommand() *cobra.Command {
	var (
		widthCommand string
		externalize  bool
	)

	cmd := &cobra.Command{
		Use:   "preamble [overlay.pdf_tex]",
		Short: "Print a minimal LaTeX document that inputs an overlay",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateLengthCommand(widthCommand); err != nil {
				return err
			}
			texFile := "figure." + pipeline.DefaultTexExtension
			if len(args) == 1 {
				texFile = args[0]
			}
			fmt.Fprint(c.out, latex.Preamble(widthCommand, texFile, externalize))
			return nil
		},
	}

	cmd.Flags().StringVar(&widthCommand, "width-command", latex.DefaultWidthCommand, "LaTeX length holding the figure width")
	cmd.Flags().BoolVar(&externalize, "externalize", false, "set up TikZ externalization")
	return cmd
}
