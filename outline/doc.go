// Package outline infers a document outline (title plus H1-H3 heading
// entries) from the flat span sequence a PDF reader produces, using font
// heuristics instead of embedded table-of-contents metadata.
//
// # Pipeline
//
// Inference runs in three stages, strictly in order:
//
//  1. [Collect] reduces reader lines to the span sequence a strategy
//     consumes (whole lines in size mode, individual runs in font mode).
//  2. A [Strategy] selects up to three ranked [model.SignalBucket] values
//     from the spans: font sizes ranked by a body-text-exclusion
//     heuristic, or font names ranked by weight-token frequency.
//  3. The [Assembler] walks the spans in document order, asks the
//     strategy to classify each one, applies the language-adaptive
//     filter and text normalization, and emits the ordered outline.
//
// The whole pipeline is pure: no I/O, no logging, no shared mutable
// state. Given the same span sequence it produces byte-identical output,
// and independent documents may be processed concurrently.
//
// # Strategies
//
// Three strategies are registered by default:
//
//   - "size": ranks rounded font sizes by aggregate word count, discards
//     the most word-dense size as body text, and maps the three largest
//     remaining sizes to H1-H3.
//   - "font": ranks font names containing a weight token (bold, black,
//     heavy, medium) by span count and maps the top three to H1-H3.
//   - "font+size": runs "font" and falls back to an unfiltered "size"
//     pass when the font pass yields nothing.
//
// # Known heuristic limitations
//
// The body-size exclusion assumes the single most word-dense size is
// always body text; documents dominated by large decorative type can
// defeat it. Font mode only ever promotes single-span lines, so a
// heading containing an inline run in another font is dropped. Both
// behaviors are deliberate: changing them changes outline output for
// every existing document.
package outline
