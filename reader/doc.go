// Package reader decodes PDF documents into the positioned text model the
// rest of Contour consumes.
//
// It wraps the ledongthuc/pdf parser and exposes pages as baseline-grouped
// [model.Line] values: raw text runs are bucketed into rows by Y proximity,
// ordered top-to-bottom then left-to-right, and merged into [model.Span]
// runs wherever consecutive text shares one font name and size. Word gaps
// wider than a fraction of the font size become spaces, so span text keeps
// word boundaries even when the PDF positions characters individually.
//
// Beyond text, the reader surfaces the pieces the document artifact needs:
// page dimensions from the MediaBox, the Info-dictionary metadata, and the
// page Annots array as links and annotations.
//
// The underlying parser signals malformed structures by panicking; all
// entry points here recover those panics and return them as errors, so a
// damaged page degrades to an error value rather than taking down the
// calling goroutine.
package reader
