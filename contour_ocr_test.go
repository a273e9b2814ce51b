//go:build !ocr

package contour

import (
	"path/filepath"
	"testing"
)

// Without the ocr build tag, requesting OCR fallback should degrade to a
// warning rather than fail the document.
func TestDocumentOCRUnavailableWarning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.pdf")
	writeTextlessPDF(t, path)

	doc, warnings, err := Open(path).OCRFallback(true).Document()
	if err != nil {
		t.Fatalf("Document: %v", err)
	}

	var sawUnavailable bool
	for _, w := range warnings {
		if w.Code == WarnOCRUnavailable {
			sawUnavailable = true
		}
	}
	if !sawUnavailable {
		t.Errorf("expected a %s warning, got %v", WarnOCRUnavailable, warnings)
	}

	if len(doc.Pages) != 1 || doc.Pages[0].Text != "" || doc.Pages[0].OCR {
		t.Errorf("page should stay empty without OCR support, got %+v", doc.Pages)
	}
}
