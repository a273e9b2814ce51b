package model

import "strings"

// SignalBucket is a ranked classification key considered heading-worthy:
// either a font name or a rounded font size. At most three buckets are ever
// retained for a document; bucket rank 0 maps to level H1.
type SignalBucket struct {
	// Key identifies the bucket: the font name in font mode, or the
	// rounded size formatted with one decimal ("18.0") in size mode.
	Key string

	// Size is the rounded font size for size-mode buckets, 0 otherwise.
	Size float64

	// Rank is the 0-based rank; level = Rank + 1.
	Rank int

	// MemberCount is the frequency used for ranking: aggregate word count
	// in size mode, span count in font mode.
	MemberCount int
}

// OutlineEntry is one accepted heading.
type OutlineEntry struct {
	// Level is "H1", "H2", or "H3". Never deeper.
	Level string `json:"level"`

	// Text is the normalized heading text.
	Text string `json:"text"`

	// Page is the 1-based page number.
	Page int `json:"page"`
}

// Outline holds the inferred title and heading entries for one document.
// Entries appear in document scan order and are never mutated after
// creation.
type Outline struct {
	Title   string
	Entries []OutlineEntry
}

// EntriesAtLevel returns the entries with the given level ("H1".."H3").
func (o Outline) EntriesAtLevel(level string) []OutlineEntry {
	var out []OutlineEntry
	for _, e := range o.Entries {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// Markdown renders the outline as an indented markdown list headed by the
// document title.
func (o Outline) Markdown() string {
	var sb strings.Builder
	if o.Title != "" {
		sb.WriteString("# ")
		sb.WriteString(o.Title)
		sb.WriteString("\n\n")
	}
	for _, e := range o.Entries {
		depth := levelDepth(e.Level)
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString("- ")
		sb.WriteString(e.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

func levelDepth(level string) int {
	switch level {
	case "H1":
		return 0
	case "H2":
		return 1
	case "H3":
		return 2
	default:
		return 0
	}
}
