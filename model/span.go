package model

import (
	"math"
	"strings"
)

// Span represents one visually distinct run of text as laid out on a page:
// a contiguous sequence of characters sharing one font name and one font
// size. Spans are produced once per document pass by the reader and are
// immutable thereafter.
type Span struct {
	// Page is the 1-based page number the span appears on.
	Page int

	// Text is the raw extracted text, pre-trim.
	Text string

	// FontName is the PDF font name (e.g. "Helvetica-Bold"). May be empty
	// when the document does not name the font.
	FontName string

	// FontSize is the rendered font size in points.
	FontSize float64

	// BBox is the span's bounding box in PDF coordinates.
	BBox BBox

	// LineSpans is the number of spans in the line this span came from.
	// A value of 1 marks a "pure" single-span line.
	LineSpans int
}

// RoundSize rounds a font size to one decimal place, the granularity at
// which sizes are grouped for heading inference.
func RoundSize(v float64) float64 {
	return math.Round(v*10) / 10
}

// RoundedSize returns the font size rounded to one decimal place.
func (s Span) RoundedSize() float64 {
	return RoundSize(s.FontSize)
}

// TrimmedText returns the span text with surrounding whitespace removed.
func (s Span) TrimmedText() string {
	return strings.TrimSpace(s.Text)
}

// WordCount returns the number of whitespace-separated words in the span.
func (s Span) WordCount() int {
	return len(strings.Fields(s.Text))
}

// Line represents one baseline-grouped row of spans on a page.
type Line struct {
	// Page is the 1-based page number.
	Page int

	// Spans are the runs that make up the line, in left-to-right order.
	Spans []Span
}

// Text returns the concatenation of all span texts in the line.
func (l Line) Text() string {
	var sb strings.Builder
	for _, s := range l.Spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// MaxFontSize returns the largest font size among the line's spans,
// or 0 for an empty line.
func (l Line) MaxFontSize() float64 {
	var max float64
	for _, s := range l.Spans {
		if s.FontSize > max {
			max = s.FontSize
		}
	}
	return max
}

// BBox returns the union of the line's span boxes.
func (l Line) BBox() BBox {
	if len(l.Spans) == 0 {
		return BBox{}
	}
	box := l.Spans[0].BBox
	for _, s := range l.Spans[1:] {
		box = box.Union(s.BBox)
	}
	return box
}
