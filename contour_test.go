package contour

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/contour/outline"
	"github.com/tsawler/contour/reader"
)

// writeTextlessPDF writes a valid single-page PDF whose content stream is
// empty, so readers succeed but find no text spans.
func writeTextlessPDF(t *testing.T, path string) {
	t.Helper()

	var b bytes.Buffer
	var offsets []int
	obj := func(s string) {
		offsets = append(offsets, b.Len())
		b.WriteString(s)
	}

	b.WriteString("%PDF-1.4\n")
	obj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	obj("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")
	obj("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> /Contents 4 0 R >>\nendobj\n")
	obj("4 0 obj\n<< /Length 0 >>\nstream\nendstream\nendobj\n")

	xref := b.Len()
	b.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)+1))
	b.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		b.WriteString(fmt.Sprintf("%010d 00000 n \n", off))
	}
	b.WriteString("trailer\n<< /Size 5 /Root 1 0 R >>\nstartxref\n")
	b.WriteString(fmt.Sprintf("%d\n%%%%EOF\n", xref))

	if err := os.WriteFile(path, b.Bytes(), 0o644); err != nil {
		t.Fatalf("write test pdf: %v", err)
	}
}

// ============================================================================
// Constructor and Lifecycle Tests
// ============================================================================

func TestOpenMissingFile(t *testing.T) {
	_, _, err := Open(filepath.Join(t.TempDir(), "absent.pdf")).Outline()
	if err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestOpenNonPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.pdf")
	if err := os.WriteFile(path, []byte("<html><body>not a pdf</body></html>"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := Open(path).Outline()
	if !errors.Is(err, ErrNotPDF) {
		t.Errorf("expected ErrNotPDF, got %v", err)
	}
}

func TestNoFilename(t *testing.T) {
	e := &Extractor{options: defaultOptions()}
	if _, _, err := e.Outline(); err == nil {
		t.Error("expected error when no filename specified")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	writeTextlessPDF(t, path)

	e := Open(path)
	if err := e.ensureReader(); err != nil {
		t.Fatalf("ensureReader: %v", err)
	}
	if err := e.Close(); err != nil {
		t.Errorf("first Close: %v", err)
	}
	if err := e.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestFromReaderKeepsCallerReaderOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	writeTextlessPDF(t, path)

	r, err := reader.Open(path)
	if err != nil {
		t.Fatalf("reader.Open: %v", err)
	}
	defer r.Close()

	if _, _, err := FromReader(r).Outline(); err != nil {
		t.Fatalf("Outline: %v", err)
	}

	// The terminal must not have closed the caller's reader.
	if got := r.PageCount(); got != 1 {
		t.Errorf("PageCount after terminal = %d, want 1", got)
	}
}

// ============================================================================
// Configuration Immutability Tests
// ============================================================================

func TestConfigurationImmutability(t *testing.T) {
	base := Open("doc.pdf")
	modified := base.Pages(1, 2).Strategy("font").LanguageFilter(false).DetectTables(true)

	if len(base.options.pages) != 0 {
		t.Error("Pages mutated the base extractor")
	}
	if base.options.strategyName != "size" {
		t.Errorf("base strategy = %q, want size", base.options.strategyName)
	}
	if !base.options.outlineCfg.LanguageFilter {
		t.Error("LanguageFilter mutated the base extractor")
	}
	if base.options.detectTables {
		t.Error("DetectTables mutated the base extractor")
	}

	if len(modified.options.pages) != 2 {
		t.Errorf("modified pages = %v, want [1 2]", modified.options.pages)
	}
	if modified.options.strategyName != "font" {
		t.Errorf("modified strategy = %q, want font", modified.options.strategyName)
	}
	if modified.options.outlineCfg.LanguageFilter {
		t.Error("modified extractor should have language filter off")
	}
	if !modified.options.detectTables {
		t.Error("modified extractor should have table detection on")
	}
}

func TestCloneDeepCopiesOptions(t *testing.T) {
	base := Open("doc.pdf")
	other := base.Pages(3)

	other.options.outlineCfg.WeightTokens[0] = "mutated"
	if base.options.outlineCfg.WeightTokens[0] == "mutated" {
		t.Error("clone shares the weight token slice with its parent")
	}
}

func TestPageRangeExpands(t *testing.T) {
	e := Open("doc.pdf").PageRange(2, 5)
	want := []int{2, 3, 4, 5}
	if len(e.options.pages) != len(want) {
		t.Fatalf("pages = %v, want %v", e.options.pages, want)
	}
	for i, p := range want {
		if e.options.pages[i] != p {
			t.Errorf("pages[%d] = %d, want %d", i, e.options.pages[i], p)
		}
	}
}

// ============================================================================
// Strategy Resolution Tests
// ============================================================================

func TestResolveStrategyBuiltins(t *testing.T) {
	for _, name := range []string{"size", "font", "font+size"} {
		st, err := Open("doc.pdf").Strategy(name).resolveStrategy()
		if err != nil {
			t.Fatalf("resolveStrategy(%q): %v", name, err)
		}
		if st.Name() != name {
			t.Errorf("strategy name = %q, want %q", st.Name(), name)
		}
	}
}

func TestResolveStrategyUnknown(t *testing.T) {
	_, err := Open("doc.pdf").Strategy("nope").resolveStrategy()
	if err == nil {
		t.Fatal("expected error for unknown strategy name")
	}
	if !strings.Contains(err.Error(), "nope") {
		t.Errorf("error should name the unknown strategy, got %v", err)
	}
}

func TestWithStrategyBypassesRegistry(t *testing.T) {
	custom := outline.NewFontStrategy()
	e := Open("doc.pdf").WithStrategy(custom)

	st, err := e.resolveStrategy()
	if err != nil {
		t.Fatalf("resolveStrategy: %v", err)
	}
	if st != outline.Strategy(custom) {
		t.Error("expected the exact custom strategy instance back")
	}
	if e.options.strategyName != "font" {
		t.Errorf("strategy name = %q, want font", e.options.strategyName)
	}
}

// ============================================================================
// End-to-End Tests (textless PDF)
// ============================================================================

func TestOutlineFallsBackToFileName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quarterly-report.pdf")
	writeTextlessPDF(t, path)

	ol, warnings, err := Open(path).Outline()
	if err != nil {
		t.Fatalf("Outline: %v", err)
	}
	if ol.Title != "quarterly-report" {
		t.Errorf("title = %q, want file base name fallback", ol.Title)
	}
	if ol.Entries == nil {
		t.Error("entries must be non-nil even when empty")
	}
	if len(ol.Entries) != 0 {
		t.Errorf("entries = %v, want none", ol.Entries)
	}

	var sawNoSpans bool
	for _, w := range warnings {
		if w.Code == WarnNoSpans {
			sawNoSpans = true
		}
	}
	if !sawNoSpans {
		t.Errorf("expected a %s warning, got %v", WarnNoSpans, warnings)
	}
}

func TestTitleTerminal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "annual summary.pdf")
	writeTextlessPDF(t, path)

	title, err := Open(path).Title()
	if err != nil {
		t.Fatalf("Title: %v", err)
	}
	if title != "annual summary" {
		t.Errorf("title = %q, want %q", title, "annual summary")
	}
}

func TestPageCountTerminal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	writeTextlessPDF(t, path)

	count, err := Open(path).PageCount()
	if err != nil {
		t.Fatalf("PageCount: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestSpansTerminalEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	writeTextlessPDF(t, path)

	spans, err := Open(path).Spans()
	if err != nil {
		t.Fatalf("Spans: %v", err)
	}
	if len(spans) != 0 {
		t.Errorf("spans = %v, want none", spans)
	}
}

func TestInvalidPageSelectionWarns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	writeTextlessPDF(t, path)

	_, warnings, err := Open(path).Pages(1, 99).Outline()
	if err != nil {
		t.Fatalf("Outline: %v", err)
	}

	var sawInvalid bool
	for _, w := range warnings {
		if w.Code == WarnInvalidPage && strings.Contains(w.Message, "99") {
			sawInvalid = true
		}
	}
	if !sawInvalid {
		t.Errorf("expected a %s warning naming page 99, got %v", WarnInvalidPage, warnings)
	}
}

func TestDocumentTextlessPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.pdf")
	writeTextlessPDF(t, path)

	doc, _, err := Open(path).DetectTables(true).Document()
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if doc.Title != "scan" {
		t.Errorf("title = %q, want scan", doc.Title)
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("pages = %d, want 1", len(doc.Pages))
	}

	pg := doc.Pages[0]
	if pg.Number != 1 || pg.Width != 612 || pg.Height != 792 {
		t.Errorf("page record = %+v, want number 1 at 612x792", pg)
	}
	if pg.Text != "" || pg.Lines != 0 {
		t.Errorf("expected an empty page, got %+v", pg)
	}

	if len(doc.Tables) != 0 {
		t.Errorf("tables = %v, want none", doc.Tables)
	}
	if len(doc.Images) != 0 {
		t.Errorf("images = %v, want none", doc.Images)
	}
	if len(doc.Outline) != 0 {
		t.Errorf("outline = %v, want none", doc.Outline)
	}
}

// ============================================================================
// Helper Tests
// ============================================================================

func TestMust(t *testing.T) {
	if got := Must(42, nil); got != 42 {
		t.Errorf("Must = %d, want 42", got)
	}
}

func TestMustPanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Must(0, errors.New("boom"))
}

func TestMustOutline(t *testing.T) {
	if got := MustOutline("ok", []Warning{{Code: WarnNoSpans}}, nil); got != "ok" {
		t.Errorf("MustOutline = %q, want ok", got)
	}
}

func TestMustOutlinePanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustOutline("", nil, errors.New("boom"))
}

func TestFormatWarnings(t *testing.T) {
	if got := FormatWarnings(nil); got != "" {
		t.Errorf("FormatWarnings(nil) = %q, want empty", got)
	}

	warnings := []Warning{
		{Code: WarnPageDecode, Page: 3, Message: "bad stream"},
		{Code: WarnNoSpans, Message: "document has no extractable text spans"},
	}
	got := FormatWarnings(warnings)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", got)
	}
	if !strings.Contains(lines[0], "page 3") || !strings.Contains(lines[0], "bad stream") {
		t.Errorf("first line = %q, want page and message", lines[0])
	}
	if !strings.Contains(lines[1], string(WarnNoSpans)) {
		t.Errorf("second line = %q, want code %s", lines[1], WarnNoSpans)
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/docs/report.pdf", "report"},
		{"report.pdf", "report"},
		{"archive.tar.pdf", "archive.tar"},
		{"noext", "noext"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := baseName(tt.in); got != tt.want {
			t.Errorf("baseName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
