package extractor

import (
	"regexp"
	"strings"
	"unicode"
)

var excessNewlines = regexp.MustCompile(`\n{3,}`)

// Normalize converts CRLF and lone CR to LF, collapses three or more
// newlines to a single blank line and trims surrounding whitespace.
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = excessNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimFunc(text, isTrimmable)
}

// isTrimmable matches whitespace plus the byte order mark, which editors
// often leave at the start of exported transcripts.
func isTrimmable(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
