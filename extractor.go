package contour

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/tsawler/contour/format"
	"github.com/tsawler/contour/lang"
	"github.com/tsawler/contour/model"
	"github.com/tsawler/contour/outline"
	"github.com/tsawler/contour/reader"
)

// Extractor provides a fluent interface for inferring outlines and building
// document artifacts from PDF files. Each configuration method returns a
// new Extractor instance, making it safe for concurrent use and allowing
// method chaining.
type Extractor struct {
	// Source
	filename string

	// Reader
	reader *reader.Reader

	// Lifecycle
	ownsReader   bool // true if we opened the reader and should close it
	readerOpened bool // true if reader has been opened

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	newExt := &Extractor{
		filename:     e.filename,
		reader:       e.reader,
		ownsReader:   e.ownsReader,
		readerOpened: e.readerOpened,
		options:      e.options.clone(),
		err:          e.err,
		warnings:     append([]Warning(nil), e.warnings...),
	}
	return newExt
}

// ensureReader opens the reader if not already open, verifying first that
// the file's leading bytes identify a PDF.
func (e *Extractor) ensureReader() error {
	if e.readerOpened {
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	kind, err := format.SniffFile(e.filename)
	if err != nil {
		return fmt.Errorf("failed to open PDF: %w", err)
	}
	if kind != format.PDF {
		return fmt.Errorf("%s: detected %s: %w", e.filename, kind, ErrNotPDF)
	}

	r, err := reader.Open(e.filename)
	if err != nil {
		return fmt.Errorf("failed to open PDF: %w", err)
	}
	e.reader = r
	e.ownsReader = true
	e.readerOpened = true
	return nil
}

// Close releases resources associated with the Extractor.
// It is safe to call Close multiple times. Readers supplied via FromReader
// are never closed here; their lifecycle belongs to the caller.
func (e *Extractor) Close() error {
	if e.ownsReader && e.reader != nil {
		err := e.reader.Close()
		e.reader = nil
		e.ownsReader = false
		e.readerOpened = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Pages restricts extraction to the given pages (1-indexed).
// Multiple calls are cumulative. Out-of-range pages are dropped with a
// warning rather than failing the extraction.
//
// Example:
//
//	ol, _, err := contour.Open("doc.pdf").Pages(1, 3, 5).Outline()
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append(newExt.options.pages, pages...)
	return newExt
}

// PageRange restricts extraction to a range of pages (1-indexed, inclusive).
//
// Example:
//
//	ol, _, err := contour.Open("doc.pdf").PageRange(5, 10).Outline()
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	for i := start; i <= end; i++ {
		newExt.options.pages = append(newExt.options.pages, i)
	}
	return newExt
}

// Strategy selects the heading signal strategy by registry name.
// Built-in names are "size", "font" and "font+size"; custom strategies
// registered via outline.RegisterStrategy are also resolvable. The default
// is "size".
//
// Example:
//
//	ol, _, err := contour.Open("doc.pdf").Strategy("font+size").Outline()
func (e *Extractor) Strategy(name string) *Extractor {
	newExt := e.clone()
	newExt.options.strategyName = name
	newExt.options.strategy = nil
	return newExt
}

// WithStrategy installs a strategy instance directly, bypassing the
// registry. Useful for strategies carrying document-specific state.
func (e *Extractor) WithStrategy(s outline.Strategy) *Extractor {
	newExt := e.clone()
	newExt.options.strategy = s
	if s != nil {
		newExt.options.strategyName = s.Name()
	}
	return newExt
}

// WithOutlineConfig replaces the outline configuration (heading level cap,
// font weight tokens, width ratio, language filter toggle).
//
// Example:
//
//	cfg := outline.DefaultConfig()
//	cfg.MaxHeadingChars = 80
//	ol, _, err := contour.Open("doc.pdf").WithOutlineConfig(cfg).Outline()
func (e *Extractor) WithOutlineConfig(cfg outline.Config) *Extractor {
	newExt := e.clone()
	newExt.options.outlineCfg = cfg
	return newExt
}

// LanguageFilter toggles the language-adaptive heading filter applied in
// size mode. Enabled by default; disable it for documents whose headings
// carry no section numbering or colon cues.
//
// Example:
//
//	ol, _, err := contour.Open("doc.pdf").LanguageFilter(false).Outline()
func (e *Extractor) LanguageFilter(on bool) *Extractor {
	newExt := e.clone()
	newExt.options.outlineCfg.LanguageFilter = on
	return newExt
}

// WithLanguageIdentifier installs a language identifier for the size-mode
// heading filter. Batch callers share one identifier across documents;
// without this option a process-wide detector is built on first use.
func (e *Extractor) WithLanguageIdentifier(id outline.LanguageIdentifier) *Extractor {
	newExt := e.clone()
	newExt.options.langID = id
	return newExt
}

// OCRFallback toggles OCR text recovery for pages that carry no embedded
// text. It affects the pages section of Document() only; outline inference
// always works from embedded spans, which carry the font geometry OCR
// cannot recover. Requires a binary built with the ocr tag; without it a
// warning is recorded and such pages stay empty.
func (e *Extractor) OCRFallback(on bool) *Extractor {
	newExt := e.clone()
	newExt.options.ocrFallback = on
	return newExt
}

// DetectTables toggles table grid detection in Document().
//
// Example:
//
//	doc, _, err := contour.Open("doc.pdf").DetectTables(true).Document()
func (e *Extractor) DetectTables(on bool) *Extractor {
	newExt := e.clone()
	newExt.options.detectTables = on
	return newExt
}

// ============================================================================
// Terminal Operations (execute extraction and return results)
// ============================================================================

// Outline infers the document's title and heading outline from the
// configured pages. This is a terminal operation that closes the
// underlying reader.
//
// Returns the outline, any warnings encountered during processing, and an
// error if extraction failed. A document without heading signal yields an
// empty outline and a fallback title, not an error.
//
// Example:
//
//	ol, warnings, err := contour.Open("document.pdf").Outline()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", contour.FormatWarnings(warnings))
//	}
func (e *Extractor) Outline() (model.Outline, []Warning, error) {
	if e.err != nil {
		return model.Outline{}, nil, e.err
	}

	if err := e.ensureReader(); err != nil {
		return model.Outline{}, nil, err
	}
	defer e.Close()

	pages, err := e.collectPages()
	if err != nil {
		return model.Outline{}, e.warnings, err
	}

	ol, err := e.inferOutline(pages)
	if err != nil {
		return model.Outline{}, e.warnings, err
	}
	return ol, e.warnings, nil
}

// Title infers just the document title. This is a terminal operation that
// closes the underlying reader. The title never comes back empty for file
// inputs; the file name is the final fallback.
//
// Example:
//
//	title, err := contour.Open("document.pdf").Title()
func (e *Extractor) Title() (string, error) {
	ol, _, err := e.Outline()
	if err != nil {
		return "", err
	}
	return ol.Title, nil
}

// Spans returns the raw text spans from the configured pages in document
// order, one span per styled run. This is a terminal operation that closes
// the underlying reader.
func (e *Extractor) Spans() ([]model.Span, error) {
	if e.err != nil {
		return nil, e.err
	}

	if err := e.ensureReader(); err != nil {
		return nil, err
	}
	defer e.Close()

	var spans []model.Span
	for _, pageNum := range e.resolvePages() {
		lines, err := e.reader.PageLines(pageNum)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pageNum, err)
		}
		for _, line := range lines {
			spans = append(spans, line.Spans...)
		}
	}
	return spans, nil
}

// Metadata returns the document information dictionary. This is a terminal
// operation that closes the underlying reader.
func (e *Extractor) Metadata() (model.Metadata, error) {
	if e.err != nil {
		return model.Metadata{}, e.err
	}

	if err := e.ensureReader(); err != nil {
		return model.Metadata{}, err
	}
	defer e.Close()

	return e.reader.Metadata(), nil
}

// PageCount returns the number of pages in the document. This is a
// terminal operation that closes the underlying reader.
//
// Example:
//
//	count := contour.Must(contour.Open("document.pdf").PageCount())
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}

	if err := e.ensureReader(); err != nil {
		return 0, err
	}
	defer e.Close()

	return e.reader.PageCount(), nil
}

// ============================================================================
// Internal Helpers
// ============================================================================

// resolvePages returns the 1-indexed pages to process in ascending order.
// An empty selection means all pages. Out-of-range requests are dropped
// with a warning.
func (e *Extractor) resolvePages() []int {
	pageCount := e.reader.PageCount()

	// If no pages specified, use all pages
	if len(e.options.pages) == 0 {
		pageNums := make([]int, pageCount)
		for i := 0; i < pageCount; i++ {
			pageNums[i] = i + 1
		}
		return pageNums
	}

	// Validate and dedupe
	seen := make(map[int]bool)
	var pageNums []int
	for _, p := range e.options.pages {
		if p < 1 || p > pageCount {
			e.addWarning(WarnInvalidPage, 0, "page %d out of range (1-%d), dropped", p, pageCount)
			continue
		}
		if !seen[p] {
			seen[p] = true
			pageNums = append(pageNums, p)
		}
	}

	sort.Ints(pageNums)
	return pageNums
}

// pageData holds everything one decoded page contributes to the terminal
// operations.
type pageData struct {
	number int
	width  float64
	height float64
	lines  []model.Line
	err    error // decode failure, already recorded as a warning
}

// collectPages decodes the selected pages once for all downstream
// consumers. Pages that fail to decode keep their record (dimensions, no
// text) and carry the error; an error is returned only when pages were
// selected and every one of them failed.
func (e *Extractor) collectPages() ([]pageData, error) {
	pageNums := e.resolvePages()

	pages := make([]pageData, 0, len(pageNums))
	var firstErr error
	decoded := 0
	for _, pageNum := range pageNums {
		w, h := e.reader.PageSize(pageNum)
		pd := pageData{number: pageNum, width: w, height: h}

		lines, err := e.reader.PageLines(pageNum)
		if err != nil {
			e.addWarning(WarnPageDecode, pageNum, "%v", err)
			pd.err = err
			if firstErr == nil {
				firstErr = err
			}
		} else {
			pd.lines = lines
			decoded++
		}
		pages = append(pages, pd)
	}
	if len(pages) > 0 && decoded == 0 && firstErr != nil {
		return nil, fmt.Errorf("no decodable pages: %w", firstErr)
	}
	return pages, nil
}

// inferOutline runs strategy selection and outline assembly over the
// collected pages, recording signal warnings.
func (e *Extractor) inferOutline(pages []pageData) (model.Outline, error) {
	st, err := e.resolveStrategy()
	if err != nil {
		return model.Outline{}, err
	}

	in := e.assembleInput(pages, st.Mode())
	asm := outline.NewAssemblerWithConfig(st, e.options.outlineCfg)
	if id := e.languageIdentifier(); id != nil {
		asm.WithLanguageIdentifier(id)
	}
	ol := asm.Assemble(in)

	if len(in.Spans) == 0 {
		e.addWarning(WarnNoSpans, 0, "document has no extractable text spans")
	} else if len(ol.Entries) == 0 {
		e.addWarning(WarnNoSignal, 0, "strategy %q found no heading signal", st.Name())
	}
	return ol, nil
}

// assembleInput flattens collected pages into spans, page widths and title
// fallbacks for outline assembly.
func (e *Extractor) assembleInput(pages []pageData, mode outline.Mode) outline.Input {
	var lines []model.Line
	widths := make(map[int]float64, len(pages))
	for _, pd := range pages {
		lines = append(lines, pd.lines...)
		widths[pd.number] = pd.width
	}

	meta := e.reader.Metadata()
	return outline.Input{
		Spans:         outline.Collect(lines, mode),
		PageWidths:    widths,
		MetadataTitle: meta.Title,
		FileName:      baseName(e.filename),
	}
}

// resolveStrategy returns the configured strategy instance. Built-in names
// are constructed fresh so the extractor's outline config applies; other
// names go through the registry.
func (e *Extractor) resolveStrategy() (outline.Strategy, error) {
	if e.options.strategy != nil {
		return e.options.strategy, nil
	}

	cfg := e.options.outlineCfg
	switch e.options.strategyName {
	case "size":
		return outline.NewSizeStrategyWithConfig(cfg), nil
	case "font":
		return outline.NewFontStrategyWithConfig(cfg), nil
	case "font+size":
		return outline.NewFontThenSizeStrategyWithConfig(cfg), nil
	}
	return outline.GetStrategy(e.options.strategyName)
}

var (
	langOnce  sync.Once
	langIdent outline.LanguageIdentifier
)

// languageIdentifier returns the identifier feeding the size-mode language
// filter. A caller-supplied identifier wins; otherwise a process-wide
// detector is built on first use, since constructing the language models
// is expensive.
func (e *Extractor) languageIdentifier() outline.LanguageIdentifier {
	if e.options.langID != nil {
		return e.options.langID
	}
	if !e.options.outlineCfg.LanguageFilter {
		return nil
	}
	langOnce.Do(func() {
		langIdent = lang.New()
	})
	return langIdent
}

// baseName returns the file name without directory or extension, the final
// link in the title fallback chain.
func baseName(filename string) string {
	if filename == "" {
		return ""
	}
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
