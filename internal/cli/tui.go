package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// TextListModel - Interactive text browser
// =============================================================================

// TextListModel is the bubbletea model behind inspect --interactive.
// Enter toggles a detail pane for the row under the cursor; d hides or
// shows dropped texts.
type TextListModel struct {
	All         []textRow
	Rows        []textRow
	Cursor      int
	Offset      int
	Height      int
	ShowDetail  bool
	HideDropped bool
}

// newTextListModel creates a text list model showing every row.
func newTextListModel(rows []textRow) TextListModel {
	return TextListModel{All: rows, Rows: rows, Height: 15}
}

func (m TextListModel) Init() tea.Cmd {
	return nil
}

func (m TextListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.ShowDetail = !m.ShowDetail
		case "d":
			m.HideDropped = !m.HideDropped
			m.Rows = m.All
			if m.HideDropped {
				m.Rows = nil
				for _, r := range m.All {
					if r.kept() {
						m.Rows = append(m.Rows, r)
					}
				}
			}
			m.Cursor, m.Offset = 0, 0
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-14, 5)
	}
	return m, nil
}

func (m TextListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Figure Texts"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  d toggle dropped  q quit"))
	b.WriteString("\n\n")

	if len(m.Rows) == 0 {
		b.WriteString(listDimStyle.Render("  no texts"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Rows))
	var cells [][]string
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		cells = append(cells, append([]string{cursor}, rowCells(i, m.Rows[i])...))
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(append([]string{""}, rowHeaders...)...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			switch {
			case idx == m.Cursor:
				return listSelectedStyle
			case !m.Rows[idx].kept():
				return styleDropped
			default:
				return lipgloss.NewStyle()
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))
	b.WriteString("\n")

	if m.ShowDetail {
		b.WriteString("\n")
		b.WriteString(detailView(m.Rows[m.Cursor]))
	}
	return b.String()
}

// detailView lists every property that decides placement of one text.
func detailView(r textRow) string {
	e := r.elem
	t := e.Text
	d := e.DisplayXY()
	f := e.FigureXY()

	lines := [][2]string{
		{"Content", t.Content},
		{"Coords", fmt.Sprintf("%s (%g, %g)", t.Coords, t.Pos.X, t.Pos.Y)},
		{"Display", fmt.Sprintf("(%.2f, %.2f) px", d.X, d.Y)},
		{"Figure", fmt.Sprintf("(%.4f, %.4f)", f.X, f.Y)},
	}
	if a, ok := e.AxesXY(); ok {
		lines = append(lines, [2]string{"Axes", fmt.Sprintf("(%.4f, %.4f) in axes %d", a.X, a.Y, r.axes)})
	}
	lines = append(lines,
		[2]string{"Align", fmt.Sprintf("%s / %s → %s", t.VAlign, t.HAlign, e.Anchor())},
		[2]string{"Color", fmt.Sprintf("rgba(%.2f, %.2f, %.2f, %.2f)", t.Color.R, t.Color.G, t.Color.B, t.Color.A)},
		[2]string{"Size", fmt.Sprintf("%g pt", t.Size())},
		[2]string{"Clip", fmt.Sprintf("%t", t.ClipOn)},
	)
	if !r.kept() {
		lines = append(lines, [2]string{"Dropped", r.reason})
	}

	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(10)
	var b strings.Builder
	for _, l := range lines {
		b.WriteString("  " + keyStyle.Render(l[0]) + " " + StyleValue.Render(l[1]) + "\n")
	}
	return b.String()
}
