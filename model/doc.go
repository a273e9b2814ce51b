// Package model provides the intermediate representation (IR) for extracted
// document content.
//
// This package defines the user-facing data structures that represent what
// Contour pulls out of a PDF. All extraction operations ultimately produce
// these types, making them the primary API for consuming extracted content.
//
// # Spans and Lines
//
// The PDF reader reports positioned text as [Span] values grouped into
// [Line] values. A span is one contiguous run of text sharing one font and
// size; a line is the baseline-grouped row of spans the run appeared in.
// Spans are the sole input to outline inference and live only for the
// duration of a document pass.
//
// # Outline
//
// The [Outline] type holds the inferred document title and the ordered
// [OutlineEntry] list (levels H1-H3). Entries appear in document scan
// order: page ascending, then in-page layout order. The [SignalBucket]
// type carries the ranked heading signals (font names or font sizes) the
// inference strategies select.
//
// # Document Artifact
//
// The [Document] type is the persisted per-file artifact. Its JSON shape
// always carries "title" and "outline"; the sibling keys ("metadata",
// "pages", "tables", "images", "links", "annotations") are filled in by
// the extraction collaborators:
//
//	doc := model.NewDocument("report")
//	doc.Outline = entries
//	data, err := json.Marshal(doc)
//
// # Geometry
//
// [BBox] is the bounding-box primitive used for span geometry, table
// regions, and annotation rectangles, with PDF coordinates (origin at the
// bottom-left of the page).
package model
