package latex

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/gg"

	"github.com/matzehuels/figtex/pkg/buildinfo"
	"github.com/matzehuels/figtex/pkg/errors"
)

// DefaultWidthCommand is the length command used when none is configured.
const DefaultWidthCommand = `\figurewidth`

// heightCommand holds height/width times the figure width while a picture
// is typeset.
const heightCommand = `\matplatextmp`

// Options configures an [Input].
type Options struct {
	// WidthCommand is the LaTeX length that sets the figure width.
	// A missing leading backslash is added.
	WidthCommand string
	// Externalize wraps every picture in a \beginpgfgraphicnamed bracket.
	Externalize bool
}

// Node is a text placed on the picture.
type Node struct {
	Text     string
	X, Y     float64 // figure fractions
	Rotation float64 // degrees
	Color    gg.RGBA
	Anchor   string
}

// Input accumulates the LaTeX code of one overlay file. It is not safe for
// concurrent use.
type Input struct {
	widthCommand string
	externalize  bool

	buf      bytes.Buffer
	open     bool
	graphics string
}

// New starts a file with the usage header.
func New(opts Options) (*Input, error) {
	wc := opts.WidthCommand
	if wc == "" {
		wc = DefaultWidthCommand
	}
	if err := errors.ValidateLengthCommand(wc); err != nil {
		return nil, err
	}
	in := &Input{widthCommand: AsCommand(wc), externalize: opts.Externalize}
	in.writeHeader()
	return in, nil
}

// WidthCommand returns the normalized length command.
func (in *Input) WidthCommand() string { return in.widthCommand }

func (in *Input) writeHeader() {
	wc := in.widthCommand
	lines := []string{
		fmt.Sprintf("%% This file was automatically generated by figtex %s.", buildinfo.Version),
		"%",
		"% Requires package tikz.",
		"%",
		"% Usage:",
		"%",
		"% In the preamble, add",
		fmt.Sprintf(`%%   \newlength{%s}`, wc),
		fmt.Sprintf(`%%   \newlength{%s}`, heightCommand),
		"%",
		"% Set the desired width of the figure using",
		fmt.Sprintf(`%%   \setlength{%s}{<your desired width>}`, wc),
		"%",
		"% Include the figure with",
		`%   \input{<file name>.pdf_tex}`,
		"% or using the import package:",
		`%   \import{<path>}{<file name>.pdf_tex}`,
		"%",
	}
	in.buf.WriteString(strings.Join(lines, "\n"))
	in.buf.WriteByte('\n')
}

func (in *Input) line(format string, args ...any) {
	fmt.Fprintf(&in.buf, format, args...)
	in.buf.WriteByte('\n')
}

// IncludeGraphics opens a tikzpicture showing the graphics file name
// (without extension) scaled to the width command. heightToWidth is the
// figure aspect ratio. A picture that is still open is closed first.
func (in *Input) IncludeGraphics(name string, heightToWidth float64) {
	if in.open {
		in.EndGraphics()
	}
	in.graphics = name
	wc := in.widthCommand

	in.line("")
	if in.externalize {
		in.line(`\beginpgfgraphicnamed{%s_xt}`, name)
		in.line(`\newlength{%s}`, heightCommand)
	}
	in.line(`\begingroup`)
	in.line(`\setlength{%s}{%s%s}`, heightCommand, num(heightToWidth), wc)
	in.line(`\hspace{-\parindent}`)
	in.line(`\begin{tikzpicture}[x=%s, y=%s]`, wc, heightCommand)
	in.line(`  \node[inner sep=0pt, above right] (graphics) at (0,0) {`)
	in.line(`    \includegraphics[width=%s]{%s}};`, wc, name)
	in.open = true
}

// AddText adds a text node to the open picture.
func (in *Input) AddText(n Node) {
	anchor := n.Anchor
	if anchor == "" {
		anchor = "center"
	}
	in.line(`  \node [inner sep=0pt, text={rgb,1:red,%s; green,%s; blue,%s}, rotate=%s, anchor=%s, opacity=%s] at (%s, %s) {%s};`,
		num(n.Color.R), num(n.Color.G), num(n.Color.B),
		num(n.Rotation), anchor, num(n.Color.A),
		num(n.X), num(n.Y), Escape(n.Text))
}

// EndGraphics closes the open picture.
func (in *Input) EndGraphics() {
	if !in.open {
		return
	}
	in.line(`\end{tikzpicture}`)
	in.line(`\endgroup`)
	if in.externalize {
		in.line(`\endpgfgraphicnamed`)
	}
	in.open = false
}

// Bytes closes any open picture and returns the file content.
func (in *Input) Bytes() []byte {
	in.EndGraphics()
	return in.buf.Bytes()
}

// WriteTo closes any open picture and writes the file content to w.
func (in *Input) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(in.Bytes())
	return int64(n), err
}

// AsCommand returns s with exactly one leading backslash.
func AsCommand(s string) string {
	return `\` + strings.Trim(s, `\`)
}

// num formats v with at most six decimals and no trailing zeros.
func num(v float64) string {
	v = math.Round(v*1e6) / 1e6
	if v == 0 {
		v = 0 // no "-0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
