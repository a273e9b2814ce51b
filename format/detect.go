// Package format provides input format detection for the contour library.
//
// Detection comes in two strengths: [Detect] trusts the file extension and
// is what batch directory scans use to pick candidate files cheaply, while
// [Sniff] and [SniffFile] look at leading content bytes and are what the
// extractor uses to reject mislabeled input before parsing.
package format

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Format represents a recognized input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
	// ZIPArchive indicates a ZIP container (which many office formats use).
	ZIPArchive
	// HTML indicates an HTML document.
	HTML
	// Text indicates plain UTF-8 text.
	Text
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case ZIPArchive:
		return "ZIP"
	case HTML:
		return "HTML"
	case Text:
		return "Text"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PDF:
		return ".pdf"
	case ZIPArchive:
		return ".zip"
	case HTML:
		return ".html"
	case Text:
		return ".txt"
	default:
		return ""
	}
}

// Detect determines file format from the filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return PDF
	case ".zip":
		return ZIPArchive
	case ".html", ".htm":
		return HTML
	case ".txt", ".text", ".md":
		return Text
	default:
		return Unknown
	}
}

// Sniff determines format from leading content bytes. It is more reliable
// than extension-based detection; pass at least a few hundred bytes for
// dependable HTML and text classification.
func Sniff(data []byte) Format {
	if len(data) == 0 {
		return Unknown
	}

	// PDF magic: %PDF
	if len(data) >= 4 && data[0] == '%' && data[1] == 'P' && data[2] == 'D' && data[3] == 'F' {
		return PDF
	}

	// ZIP magic: PK\x03\x04
	if len(data) >= 4 && data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04 {
		return ZIPArchive
	}

	if sniffHTML(data) {
		return HTML
	}

	if looksLikeText(data) {
		return Text
	}
	return Unknown
}

// SniffFile reads the head of the file and classifies it with Sniff.
func SniffFile(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return Unknown, err
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && !errors.Is(err, io.EOF) {
		return Unknown, err
	}
	return Sniff(head[:n]), nil
}

// sniffHTML checks if the data looks like HTML content.
func sniffHTML(data []byte) bool {
	start := 0
	for start < len(data) && (data[start] == ' ' || data[start] == '\t' || data[start] == '\n' || data[start] == '\r') {
		start++
	}
	if start >= len(data) {
		return false
	}
	data = data[start:]

	upper := strings.ToUpper(string(data))
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") {
		return true
	}
	if strings.HasPrefix(upper, "<HTML") {
		return true
	}
	// XML declaration followed by html-like content could be XHTML.
	if strings.HasPrefix(upper, "<?XML") && strings.Contains(upper[:min(500, len(upper))], "<HTML") {
		return true
	}

	return false
}

// looksLikeText accepts valid UTF-8 with no NUL bytes. A fixed-size read
// may split a trailing multi-byte rune, so up to three tail bytes are
// forgiven before validation.
func looksLikeText(data []byte) bool {
	if bytes.IndexByte(data, 0) >= 0 {
		return false
	}
	for trim := 0; trim < 4 && len(data) > 0; trim++ {
		if utf8.Valid(data) {
			return true
		}
		data = data[:len(data)-1]
	}
	return false
}
