package errors

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// lengthCommandRegex matches a LaTeX control word with at most one leading backslash.
var lengthCommandRegex = regexp.MustCompile(`^\\?[A-Za-z@]+$`)

// ValidateLengthCommand validates the name of the LaTeX length command that
// scales the figure width (for example \figurewidth).
//
// The command must be a control word: letters (and @) only, optionally
// preceded by a single backslash. Control symbols such as \, or \\ are
// rejected because they cannot be declared with \newlength.
func ValidateLengthCommand(name string) error {
	if name == "" {
		return New(ErrCodeInvalidCommand, "length command cannot be empty")
	}
	if !lengthCommandRegex.MatchString(name) {
		return New(ErrCodeInvalidCommand, "invalid length command: %q (letters only, e.g. \\figurewidth)", name)
	}
	return nil
}

// ValidateOutputBase validates the base path used for the two output files.
//
// Validation rules:
//   - Base cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - The base name cannot contain characters that break \includegraphics
//     (spaces, %, #, braces)
//   - The base cannot point at a directory (trailing separator)
func ValidateOutputBase(base string) error {
	if base == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(base) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range base {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if strings.HasSuffix(base, "/") || strings.HasSuffix(base, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "output path must name a file, not a directory")
	}

	name := filepath.Base(base)
	if strings.ContainsAny(name, " %#{}\\") {
		return New(ErrCodeInvalidPath, "output file name %q cannot contain spaces, %%, #, braces or backslashes", name)
	}

	return nil
}

// validFormats is the set of supported image formats.
var validFormats = map[string]bool{"pdf": true, "png": true, "svg": true}

// ValidateFormat checks that an image format is supported.
func ValidateFormat(format string) error {
	if !validFormats[format] {
		return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: pdf, png, svg)", format)
	}
	return nil
}
