package batch

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tsawler/contour/model"
)

// ArtifactFormat selects the on-disk rendering of a document artifact.
type ArtifactFormat int

const (
	// FormatJSON writes the complete artifact as indented JSON. Non-ASCII
	// text is written verbatim, not escaped.
	FormatJSON ArtifactFormat = iota

	// FormatMarkdown writes the title and outline as a markdown heading
	// plus an indented list.
	FormatMarkdown

	// FormatText writes a plain-text table of contents.
	FormatText
)

// String returns a human-readable representation of the format.
func (f ArtifactFormat) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatMarkdown:
		return "markdown"
	case FormatText:
		return "text"
	default:
		return "unknown"
	}
}

// FileExtension returns the typical file extension for the format.
func (f ArtifactFormat) FileExtension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatMarkdown:
		return ".md"
	case FormatText:
		return ".txt"
	default:
		return ".out"
	}
}

// ParseFormat resolves a format name as accepted on the command line.
// Recognized names are "json", "md", "markdown", "text" and "txt"; the
// empty string means JSON.
func ParseFormat(name string) (ArtifactFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return FormatJSON, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "text", "txt":
		return FormatText, nil
	}
	return FormatJSON, fmt.Errorf("batch: unknown artifact format %q", name)
}

// Write renders the document artifact to w in the given format.
//
// JSON output is indented with two spaces and keeps UTF-8 text verbatim
// (HTML escaping of &, < and > is disabled), so artifacts diff cleanly and
// non-Latin titles stay readable.
func Write(doc *model.Document, w io.Writer, format ArtifactFormat) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode artifact: %w", err)
		}
		return nil
	case FormatMarkdown:
		_, err := io.WriteString(w, renderMarkdown(doc))
		return err
	case FormatText:
		_, err := io.WriteString(w, renderText(doc))
		return err
	}
	return fmt.Errorf("batch: unsupported artifact format %d", int(format))
}

// WriteDocument renders the artifact into the file at path, creating or
// truncating it.
func WriteDocument(doc *model.Document, path string, format ArtifactFormat) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create artifact: %w", err)
	}
	if err := Write(doc, f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// renderMarkdown reuses the outline's markdown rendering: a level-one
// heading for the title and a nested list for the entries.
func renderMarkdown(doc *model.Document) string {
	ol := model.Outline{Title: doc.Title, Entries: doc.Outline}
	return ol.Markdown()
}

// renderText writes the title followed by one "LEVEL text (page N)" line
// per outline entry.
func renderText(doc *model.Document) string {
	var sb strings.Builder
	sb.WriteString(doc.Title)
	sb.WriteString("\n")
	if len(doc.Outline) > 0 {
		sb.WriteString("\n")
	}
	for _, e := range doc.Outline {
		fmt.Fprintf(&sb, "%s %s (page %d)\n", e.Level, e.Text, e.Page)
	}
	return sb.String()
}
