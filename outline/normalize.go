package outline

import (
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize prepares heading text for output. The string is NFC-composed,
// then Unicode punctuation (category P) is stripped from both ends.
// Interior punctuation is untouched, and whitespace exposed by the strip
// survives: "—Introduction—" becomes "Introduction", while "** Note **"
// becomes " Note " and ":" becomes "".
func Normalize(s string) string {
	runes := []rune(norm.NFC.String(s))
	start := 0
	for start < len(runes) && unicode.IsPunct(runes[start]) {
		start++
	}
	end := len(runes)
	for end > start && unicode.IsPunct(runes[end-1]) {
		end--
	}
	return string(runes[start:end])
}
