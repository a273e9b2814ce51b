package images

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/tsawler/contour/model"
)

// writeMinimalPDF writes a single empty page PDF with a correct xref table.
func writeMinimalPDF(t *testing.T, path string) {
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
	obj("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> >>\nendobj\n")

	xref := b.Len()
	b.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)+1))
	b.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		b.WriteString(fmt.Sprintf("%010d 00000 n \n", off))
	}
	b.WriteString("trailer\n<< /Size 4 /Root 1 0 R >>\nstartxref\n")
	b.WriteString(fmt.Sprintf("%d\n%%%%EOF\n", xref))

	if err := os.WriteFile(path, b.Bytes(), 0o644); err != nil {
		t.Fatalf("write test pdf: %v", err)
	}
}

func TestInventoryNoImages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	writeMinimalPDF(t, path)

	imgs, err := Inventory(path)
	if err != nil {
		t.Fatalf("Inventory returned error: %v", err)
	}
	if len(imgs) != 0 {
		t.Errorf("expected no images in an empty page, got %+v", imgs)
	}
}

func TestInventoryMissingFile(t *testing.T) {
	if _, err := Inventory(filepath.Join(t.TempDir(), "absent.pdf")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestExportNoImages(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.pdf")
	writeMinimalPDF(t, path)

	outDir := filepath.Join(dir, "out")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := Export(path, outDir); err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no exported files, got %d", len(entries))
	}
}

func TestPageSet(t *testing.T) {
	imgs := []model.Image{
		{Page: 1, ObjectNumber: 7},
		{Page: 3, ObjectNumber: 9},
		{Page: 3, ObjectNumber: 12},
		{Page: 0, ObjectNumber: 15}, // unknown page excluded
	}
	pages := PageSet(imgs)
	if len(pages) != 2 || !pages[1] || !pages[3] {
		t.Errorf("PageSet = %v, want pages 1 and 3", pages)
	}
}
