package outline

import (
	"strings"

	"github.com/tsawler/contour/model"
)

// sizeTitle derives the document title in size mode: every first-page span
// whose rounded size matches the rank-0 bucket contributes, in reading
// order, with exact-duplicate lines collapsed (repeated cover lines are a
// common PDF artifact). The returned set holds each contributing line's
// trimmed text so the assembler can keep title lines out of the outline.
func sizeTitle(spans []model.Span, top model.SignalBucket) (string, map[string]bool) {
	var parts []string
	claimed := make(map[string]bool)
	for _, sp := range spans {
		if sp.Page != 1 || sp.RoundedSize() != top.Size {
			continue
		}
		text := sp.TrimmedText()
		if !claimed[text] {
			parts = append(parts, text)
		}
		claimed[text] = true
	}
	if len(parts) == 0 {
		return "", nil
	}
	return strings.Join(parts, " "), claimed
}

// entryTitle derives the title in font mode: the first H1 entry on page 1,
// if any. Font-mode headings stay in the outline even when one doubles as
// the title.
func entryTitle(entries []model.OutlineEntry) string {
	for _, e := range entries {
		if e.Level == "H1" && e.Page == 1 {
			return e.Text
		}
	}
	return ""
}

// fallbackTitle walks the title chain tail: document metadata first, then
// the file's base name.
func fallbackTitle(metaTitle, fileName string) string {
	if t := strings.TrimSpace(metaTitle); t != "" {
		return t
	}
	return fileName
}
