package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/figtex/pkg/figure"
	"github.com/matzehuels/figtex/pkg/io"
	"github.com/matzehuels/figtex/pkg/overlay"
)

// textRow is one text of a figure as shown by inspect.
type textRow struct {
	elem   overlay.Element
	axes   int    // 1-based axes number, 0 for figure-level text
	reason string // why the text is dropped; empty when kept
}

func (r textRow) kept() bool { return r.reason == "" }

// dropReason names the first rule that keeps a text out of the overlay.
func dropReason(e overlay.Element) string {
	t := e.Text
	switch {
	case !t.Visible:
		return "hidden"
	case t.OutOfRange():
		return "out of range"
	case strings.TrimSpace(t.Content) == "":
		return "empty"
	case t.Color.A == 0:
		return "transparent"
	case !e.InsideAxes():
		return "clipped"
	}
	return ""
}

// collectRows lays out fig and lists every distinct text in scene order.
func collectRows(fig *figure.Figure) ([]textRow, error) {
	if err := fig.Layout(); err != nil {
		return nil, err
	}
	axesNum := make(map[*figure.Axes]int)
	for _, n := range fig.Children() {
		if ax, ok := n.(*figure.Axes); ok {
			axesNum[ax] = len(axesNum) + 1
		}
	}

	var rows []textRow
	seen := make(map[*figure.Text]bool)
	for e, err := range overlay.Walk(fig) {
		if err != nil {
			return nil, err
		}
		if seen[e.Text] {
			continue
		}
		seen[e.Text] = true
		rows = append(rows, textRow{elem: e, axes: axesNum[e.Axes], reason: dropReason(e)})
	}
	return rows, nil
}

var rowHeaders = []string{"#", "Text", "Status", "x", "y", "Anchor", "Rot", "Axes"}

func rowCells(i int, r textRow) []string {
	p := r.elem.FigureXY()
	status := "kept"
	if !r.kept() {
		status = r.reason
	}
	axes := "-"
	if r.axes > 0 {
		axes = strconv.Itoa(r.axes)
	}
	return []string{
		strconv.Itoa(i + 1),
		truncate(r.elem.Text.Content, 32),
		status,
		fmt.Sprintf("%.4f", p.X),
		fmt.Sprintf("%.4f", p.Y),
		r.elem.Anchor(),
		strconv.FormatFloat(r.elem.Text.Rotation, 'g', -1, 64),
		axes,
	}
}

// renderTable formats rows as a bordered table.
func renderTable(rows []textRow) string {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = rowCells(i, r)
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(rowHeaders...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < 0 || row >= len(rows) {
				return lipgloss.NewStyle()
			}
			if rows[row].kept() {
				if col == 2 {
					return styleKept
				}
				return lipgloss.NewStyle()
			}
			return styleDropped
		})
	return t.Render()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "inspect <figure.json|figure.toml>",
		Short: "List the texts of a figure and whether they reach the overlay",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fig, err := io.Import(args[0])
			if err != nil {
				return err
			}
			rows, err := collectRows(fig)
			if err != nil {
				return err
			}
			if interactive {
				_, err := tea.NewProgram(newTextListModel(rows), tea.WithContext(cmd.Context())).Run()
				return err
			}

			kept := 0
			for _, r := range rows {
				if r.kept() {
					kept++
				}
			}
			w, h := fig.Size()
			printKeyValue(c.out, "Figure", fmt.Sprintf("%.2f x %.2f in @ %g dpi", w, h, fig.DPI()))
			printKeyValue(c.out, "Texts", fmt.Sprintf("%d kept, %d dropped", kept, len(rows)-kept))
			fmt.Fprintln(c.out, renderTable(rows))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse the texts interactively")
	return cmd
}
