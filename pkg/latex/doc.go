// Package latex writes the TikZ fragment that overlays extracted text on a
// text-free figure.
//
// # Overview
//
// An [Input] accumulates one LaTeX file: a comment header with usage notes,
// a tikzpicture that includes the graphics file and one \node per text.
// Coordinates are figure fractions; the picture uses x=<width command> and
// y=<height/width ratio times the width command>, so the overlay scales with
// whatever width the document assigns to the length command.
//
//	in, err := latex.New(latex.Options{WidthCommand: `\figurewidth`})
//	if err != nil {
//		return err
//	}
//	in.IncludeGraphics("plot", 0.75)
//	in.AddText(latex.Node{Text: "time", X: 0.5, Y: 0.02, Anchor: "north", Color: gg.Black})
//	_, err = in.WriteTo(f)
//
// The document needs the tikz and graphicx packages and two length
// declarations; [Preamble] returns a minimal working document.
//
// # Escaping
//
// Node text goes through [Escape]: characters special to LaTeX are escaped
// outside $...$ math, and the Unicode minus sign becomes an ASCII hyphen.
//
// # Externalization
//
// With [Options.Externalize] the picture is wrapped in
// \beginpgfgraphicnamed{<name>_xt} ... \endpgfgraphicnamed so it can be
// cached by the TikZ externalization library.
package latex
