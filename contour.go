// Package contour provides a fluent API for inferring document outlines
// (title plus H1-H3 headings) from PDF files that carry no bookmark
// metadata, along with the page text, tables, images, links and
// annotations needed to build a complete document artifact.
//
// Basic usage:
//
//	ol, warnings, err := contour.Open("document.pdf").Outline()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", contour.FormatWarnings(warnings))
//	}
//	fmt.Println(ol.Title)
//
// With options:
//
//	doc, _, err := contour.Open("report.pdf").
//	    Pages(1, 2, 3).
//	    Strategy("font+size").
//	    DetectTables(true).
//	    Document()
//
// For lower-level access, the reader, outline, tables and images packages
// are also available.
package contour

import (
	"errors"

	"github.com/tsawler/contour/reader"
)

// ErrNotPDF is returned when the input's leading bytes identify it as
// something other than a PDF.
var ErrNotPDF = errors.New("input is not a PDF")

// Open opens a PDF file and returns an Extractor for fluent configuration.
// The returned Extractor must be closed when done, either explicitly via
// Close() or implicitly when calling a terminal operation like Outline().
//
// Example:
//
//	ol, warnings, err := contour.Open("document.pdf").Outline()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader creates an Extractor from an already-opened reader.Reader.
// This is useful when you need more control over the reader lifecycle.
// Note: The caller is responsible for closing the reader. Features that
// re-read the file by path (image inventory, OCR fallback) are unavailable
// on this route.
//
// Example:
//
//	r, err := reader.Open("document.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer r.Close()
//	ol, warnings, err := contour.FromReader(r).Outline()
func FromReader(r *reader.Reader) *Extractor {
	return &Extractor{
		reader:       r,
		ownsReader:   false,
		readerOpened: true,
		options:      defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := contour.Must(contour.Open("document.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustOutline is a helper that wraps a call to a terminal operation
// returning (T, []Warning, error) and panics if the error is non-nil.
// It discards warnings and returns just the value.
//
// Example:
//
//	ol := contour.MustOutline(contour.Open("document.pdf").Outline())
func MustOutline[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
