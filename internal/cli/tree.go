package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/matzehuels/figtex/pkg/figure"
	"github.com/matzehuels/figtex/pkg/io"
	"github.com/matzehuels/figtex/pkg/overlay"
	"github.com/matzehuels/figtex/pkg/render/nodelink"
)

type treeFlags struct {
	dot      bool
	svg      string
	pdf      string
	detailed bool
}

// treeCommand creates the tree command.
func (c *CLI) treeCommand() *cobra.Command {
	var flags treeFlags

	cmd := &cobra.Command{
		Use:   "tree <figure.json|figure.toml>",
		Short: "Show the scene graph of a figure",
		Long: `Show the scene graph of a figure.

By default the graph is printed as a text tree with kept texts highlighted.
--dot prints Graphviz DOT instead; --svg and --pdf render it to a file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fig, err := io.Import(args[0])
			if err != nil {
				return err
			}
			if err := fig.Layout(); err != nil {
				return err
			}
			if !flags.dot && flags.svg == "" && flags.pdf == "" {
				s, err := sceneTree(fig)
				if err != nil {
					return err
				}
				fmt.Fprintln(c.out, s)
				return nil
			}
			return c.runTreeGraph(cmd, fig, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.dot, "dot", false, "print the scene graph in Graphviz DOT format")
	cmd.Flags().StringVar(&flags.svg, "svg", "", "render the scene graph to an SVG file")
	cmd.Flags().StringVar(&flags.pdf, "pdf", "", "render the scene graph to a PDF file (requires rsvg-convert)")
	cmd.Flags().BoolVar(&flags.detailed, "detailed", false, "include coordinates and alignment in text nodes")
	return cmd
}

func (c *CLI) runTreeGraph(cmd *cobra.Command, fig *figure.Figure, flags treeFlags) error {
	dot, err := nodelink.ToDOT(fig, nodelink.Options{Detailed: flags.detailed})
	if err != nil {
		return err
	}
	if flags.dot {
		fmt.Fprint(c.out, dot)
	}

	ctx := cmd.Context()
	if flags.svg != "" {
		data, err := nodelink.RenderSVG(ctx, dot)
		if err != nil {
			return err
		}
		if err := os.WriteFile(flags.svg, data, 0o644); err != nil {
			return err
		}
		c.Logger.Info("Wrote scene graph", "path", flags.svg)
	}
	if flags.pdf != "" {
		data, err := nodelink.RenderPDF(ctx, dot)
		if err != nil {
			return err
		}
		if err := os.WriteFile(flags.pdf, data, 0o644); err != nil {
			return err
		}
		c.Logger.Info("Wrote scene graph", "path", flags.pdf)
	}
	return nil
}

// sceneTree renders the scene graph of a laid-out figure as an indented
// tree. Nodes reached through more than one parent are expanded once.
func sceneTree(fig *figure.Figure) (string, error) {
	elems, err := overlay.Classify(overlay.Walk(fig))
	if err != nil {
		return "", err
	}
	kept := make(map[*figure.Text]bool, len(elems))
	for _, e := range elems {
		kept[e.Text] = true
	}

	w, h := fig.Size()
	root := tree.Root(StyleTitle.Render(fmt.Sprintf("figure %.2f x %.2f in", w, h))).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(lipgloss.NewStyle().Foreground(colorDim))

	seen := make(map[figure.Node]bool)
	var build func(n figure.Node) any
	build = func(n figure.Node) any {
		label := nodeLabel(n, kept)
		if seen[n] {
			return label + StyleDim.Render(" (shared)")
		}
		seen[n] = true
		if len(n.Children()) == 0 {
			return label
		}
		t := tree.Root(label)
		for _, ch := range n.Children() {
			t.Child(build(ch))
		}
		return t
	}
	for _, n := range fig.Children() {
		root.Child(build(n))
	}
	return root.String(), nil
}

func nodeLabel(n figure.Node, kept map[*figure.Text]bool) string {
	switch n := n.(type) {
	case *figure.Axes:
		r := n.Bounds()
		return fmt.Sprintf("axes [%.3g %.3g %.3g %.3g]", r.X, r.Y, r.W, r.H)
	case *figure.Group:
		return "group " + n.Name
	case *figure.Line:
		return fmt.Sprintf("line (%d points)", len(n.Points()))
	case *figure.Text:
		q := strconv.Quote(n.Content)
		if kept[n] {
			return styleKept.Render(q)
		}
		return styleDropped.Render(q)
	default:
		return n.Kind().String()
	}
}
