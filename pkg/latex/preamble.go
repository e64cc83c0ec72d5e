package latex

import (
	"fmt"
	"strings"
)

// Preamble returns a minimal document that inputs texFile (for example
// "figure.pdf_tex") at the full line width. With externalize the document
// sets up TikZ externalization instead of declaring the height length,
// which the externalized fragment declares itself.
func Preamble(widthCommand, texFile string, externalize bool) string {
	if widthCommand == "" {
		widthCommand = DefaultWidthCommand
	}
	wc := AsCommand(widthCommand)

	var b strings.Builder
	b.WriteString("\\documentclass{article}\n\n")
	b.WriteString("\\usepackage{graphicx}\n")
	b.WriteString("\\usepackage{tikz}\n")
	if externalize {
		b.WriteString("\\pgfrealjobname{document}\n")
	}
	fmt.Fprintf(&b, "\n\\newlength{%s}\n", wc)
	if !externalize {
		fmt.Fprintf(&b, "\\newlength{%s}\n", heightCommand)
	}
	b.WriteString("\n\\begin{document}\n\n")
	fmt.Fprintf(&b, "\\setlength{%s}{\\linewidth}\n", wc)
	fmt.Fprintf(&b, "\\input{%s}\n", texFile)
	b.WriteString("\n\\end{document}\n")
	return b.String()
}
