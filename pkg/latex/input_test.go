package latex

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gogpu/gg"

	"github.com/matzehuels/figtex/pkg/buildinfo"
	"github.com/matzehuels/figtex/pkg/errors"
)

func TestInput(t *testing.T) {
	in, err := New(Options{WidthCommand: "figurewidth"})
	if err != nil {
		t.Fatal(err)
	}
	in.IncludeGraphics("plot", 0.75)
	in.AddText(Node{Text: "time_s", X: 0.5, Y: 0.02, Anchor: "north", Color: gg.Black})
	in.AddText(Node{Text: "size", X: 0.03, Y: 0.5, Rotation: 90, Anchor: "south", Color: gg.RGBA2(1, 0, 0, 0.5)})

	want := `
\begingroup
\setlength{\matplatextmp}{0.75\figurewidth}
\hspace{-\parindent}
\begin{tikzpicture}[x=\figurewidth, y=\matplatextmp]
  \node[inner sep=0pt, above right] (graphics) at (0,0) {
    \includegraphics[width=\figurewidth]{plot}};
  \node [inner sep=0pt, text={rgb,1:red,0; green,0; blue,0}, rotate=0, anchor=north, opacity=1] at (0.5, 0.02) {time\_s};
  \node [inner sep=0pt, text={rgb,1:red,1; green,0; blue,0}, rotate=90, anchor=south, opacity=0.5] at (0.03, 0.5) {size};
\end{tikzpicture}
\endgroup
`
	got := string(in.Bytes())
	header, body, ok := strings.Cut(got, "%\n\n")
	if !ok {
		t.Fatalf("missing header separator in:\n%s", got)
	}
	if body != strings.TrimPrefix(want, "\n") {
		t.Errorf("body mismatch\ngot:\n%s\nwant:\n%s", body, want)
	}
	for _, s := range []string{
		"generated by figtex " + buildinfo.Version,
		`%   \newlength{\figurewidth}`,
		`%   \newlength{\matplatextmp}`,
		`%   \setlength{\figurewidth}{<your desired width>}`,
	} {
		if !strings.Contains(header, s) {
			t.Errorf("header missing %q", s)
		}
	}
	for _, line := range strings.Split(strings.TrimSuffix(header, "\n"), "\n") {
		if !strings.HasPrefix(line, "%") {
			t.Errorf("header line %q is not a comment", line)
		}
	}
}

func TestInputExternalize(t *testing.T) {
	in, err := New(Options{Externalize: true})
	if err != nil {
		t.Fatal(err)
	}
	if in.WidthCommand() != DefaultWidthCommand {
		t.Errorf("WidthCommand() = %q, want default", in.WidthCommand())
	}
	in.IncludeGraphics("fig", 0.5)
	in.EndGraphics()
	in.EndGraphics() // no-op when closed

	got := string(in.Bytes())
	for _, s := range []string{`\beginpgfgraphicnamed{fig_xt}`, `\newlength{\matplatextmp}` + "\n\\begingroup"} {
		if !strings.Contains(got, s) {
			t.Errorf("output missing %q", s)
		}
	}
	if n := strings.Count(got, `\endpgfgraphicnamed`); n != 1 {
		t.Errorf("\\endpgfgraphicnamed count = %d, want 1", n)
	}
	if !strings.HasSuffix(got, "\\endgroup\n\\endpgfgraphicnamed\n") {
		t.Errorf("output does not end with the externalization bracket:\n%s", got)
	}
}

func TestInputReopen(t *testing.T) {
	in, _ := New(Options{})
	in.IncludeGraphics("a", 1)
	in.IncludeGraphics("b", 1)
	got := string(in.Bytes())
	if n := strings.Count(got, `\end{tikzpicture}`); n != 2 {
		t.Errorf("pictures closed = %d, want 2", n)
	}
}

func TestInputWriteTo(t *testing.T) {
	in, _ := New(Options{})
	in.IncludeGraphics("a", 1)
	var buf bytes.Buffer
	n, err := in.WriteTo(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(buf.Len()) || !strings.HasSuffix(buf.String(), "\\endgroup\n") {
		t.Errorf("WriteTo wrote %d bytes:\n%s", n, buf.String())
	}
}

func TestNewInvalidCommand(t *testing.T) {
	for _, wc := range []string{`\fig width`, `\\\\`, `\w2`} {
		if _, err := New(Options{WidthCommand: wc}); !errors.Is(err, errors.ErrCodeInvalidCommand) {
			t.Errorf("New(%q) error = %v, want %s", wc, err, errors.ErrCodeInvalidCommand)
		}
	}
}

func TestPreamble(t *testing.T) {
	want := `\documentclass{article}

\usepackage{graphicx}
\usepackage{tikz}

\newlength{\figurewidth}
\newlength{\matplatextmp}

\begin{document}

\setlength{\figurewidth}{\linewidth}
\input{figure.pdf_tex}

\end{document}
`
	if got := Preamble("", "figure.pdf_tex", false); got != want {
		t.Errorf("Preamble() =\n%s\nwant:\n%s", got, want)
	}

	ext := Preamble("plotwidth", "figure.pdf_tex", true)
	if !strings.Contains(ext, `\pgfrealjobname{document}`) || strings.Contains(ext, `\matplatextmp`) {
		t.Errorf("externalized preamble:\n%s", ext)
	}
	if !strings.Contains(ext, `\setlength{\plotwidth}{\linewidth}`) {
		t.Errorf("externalized preamble ignores the width command:\n%s", ext)
	}
}
