package project

import (
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// SourceExt marks Fire source files.
const SourceExt = ".fire"

// IsValidName reports whether name is an ASCII identifier usable as a
// [package].name.
func IsValidName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r > unicode.MaxASCII {
			return false
		}
		if i == 0 && r != '_' && !unicode.IsLetter(r) {
			return false
		}
		if i > 0 && r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Segment turns a directory name into a namespace segment. The name is kept
// verbatim apart from NFC normalisation, so decomposed names (macOS) and
// composed names map to the same path.
func Segment(name string) string {
	return norm.NFC.String(name)
}

// FileSegment is Segment for a source file: the extension is stripped.
func FileSegment(name string) string {
	return Segment(strings.TrimSuffix(name, SourceExt))
}

// IsSource reports whether a file name carries the Fire extension.
func IsSource(name string) bool {
	return path.Ext(name) == SourceExt && len(name) > len(SourceExt)
}
