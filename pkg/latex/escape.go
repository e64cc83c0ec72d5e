package latex

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const minusSign = '\u2212'

// normalizer composes text to NFC and replaces the Unicode minus sign,
// which most text fonts lack, with a hyphen.
var normalizer = transform.Chain(norm.NFC, runes.Map(func(r rune) rune {
	if r == minusSign {
		return '-'
	}
	return r
}))

var textReplacements = map[rune]string{
	'\\': `\textbackslash{}`,
	'&':  `\&`,
	'%':  `\%`,
	'#':  `\#`,
	'_':  `\_`,
	'{':  `\{`,
	'}':  `\}`,
	'~':  `\textasciitilde{}`,
	'^':  `\textasciicircum{}`,
}

// Escape makes s safe as the content of a TikZ node.
//
// Text between a pair of unescaped dollar signs is math and is kept as is.
// Outside math, LaTeX special characters are escaped and \$ stays a literal
// dollar. An unpaired dollar sign is escaped.
func Escape(s string) string {
	s, _, err := transform.String(normalizer, s)
	if err != nil {
		return s
	}

	var b strings.Builder
	inMath := false
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case inMath:
			b.WriteRune(r)
			if r == '\\' && i+size < len(s) {
				// keep escaped characters such as \$ inside math
				next, n := utf8.DecodeRuneInString(s[i+size:])
				b.WriteRune(next)
				size += n
			} else if r == '$' {
				inMath = false
			}
		case r == '\\' && strings.HasPrefix(s[i+size:], "$"):
			b.WriteString(`\$`)
			size++
		case r == '$':
			if closingDollar(s[i+size:]) {
				inMath = true
				b.WriteRune(r)
			} else {
				b.WriteString(`\$`)
			}
		default:
			if rep, ok := textReplacements[r]; ok {
				b.WriteString(rep)
			} else {
				b.WriteRune(r)
			}
		}
		i += size
	}
	return b.String()
}

// closingDollar reports whether s contains a dollar sign not preceded by a
// backslash.
func closingDollar(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '$':
			return true
		}
	}
	return false
}
