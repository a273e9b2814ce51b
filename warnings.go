package contour

import (
	"fmt"
	"strings"
)

// WarningCode identifies the category of a non-fatal extraction issue.
type WarningCode string

const (
	// WarnNoSpans indicates the document yielded no extractable text spans,
	// so the outline is empty and the title fell back to metadata or the
	// file name.
	WarnNoSpans WarningCode = "no-spans"

	// WarnPageDecode indicates a page could not be decoded and was skipped.
	WarnPageDecode WarningCode = "page-decode"

	// WarnNoSignal indicates the selected strategy found no heading signal
	// (no candidate sizes or weighted fonts), producing an empty outline.
	WarnNoSignal WarningCode = "no-signal"

	// WarnOCRUnavailable indicates OCR fallback was requested but the
	// binary was built without the ocr tag.
	WarnOCRUnavailable WarningCode = "ocr-unavailable"

	// WarnOCRFailed indicates OCR fallback was attempted on a page and
	// failed; the page text is left empty.
	WarnOCRFailed WarningCode = "ocr-failed"

	// WarnImageScan indicates the embedded-image inventory could not be
	// built; the document's image list is left empty.
	WarnImageScan WarningCode = "image-scan"

	// WarnTableDetect indicates table detection failed on a page; its
	// tables are omitted.
	WarnTableDetect WarningCode = "table-detect"

	// WarnInvalidPage indicates a page number passed to Pages was out of
	// range and was dropped from the selection.
	WarnInvalidPage WarningCode = "invalid-page"
)

// Warning describes a non-fatal issue encountered during extraction.
// Terminal operations return warnings alongside their result so callers
// can decide whether degraded output is acceptable.
type Warning struct {
	Code    WarningCode
	Page    int // 1-based page number, 0 when not page-specific
	Message string
}

// String renders the warning as a single human-readable line.
func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("%s (page %d): %s", w.Code, w.Page, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// FormatWarnings renders a warning slice as a single string with one
// warning per line. Returns "" for an empty slice.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}

// addWarning records a non-fatal issue on the extractor.
func (e *Extractor) addWarning(code WarningCode, page int, format string, args ...any) {
	e.warnings = append(e.warnings, Warning{
		Code:    code,
		Page:    page,
		Message: fmt.Sprintf(format, args...),
	})
}
