package model

import (
	"encoding/json"
	"time"
)

// Document represents the complete extraction artifact for one PDF: the
// inferred title and outline plus the collaborator-populated sibling
// sections. It is the unit persisted to disk by batch processing, one
// artifact per input document.
type Document struct {
	Title       string         `json:"title"`
	Outline     []OutlineEntry `json:"outline"`
	Metadata    Metadata       `json:"metadata"`
	Pages       []PageInfo     `json:"pages,omitempty"`
	Tables      []Table        `json:"tables,omitempty"`
	Images      []Image        `json:"images,omitempty"`
	Links       []Link         `json:"links,omitempty"`
	Annotations []Annotation   `json:"annotations,omitempty"`
}

// NewDocument creates an empty document artifact with the given fallback
// title. The outline is non-nil so the artifact always serializes with an
// "outline" key, never null.
func NewDocument(title string) *Document {
	return &Document{
		Title:   title,
		Outline: []OutlineEntry{},
	}
}

// SetOutline installs an inferred outline, adopting its title when
// non-empty and keeping the JSON outline array non-nil.
func (d *Document) SetOutline(o Outline) {
	if o.Title != "" {
		d.Title = o.Title
	}
	if o.Entries == nil {
		d.Outline = []OutlineEntry{}
		return
	}
	d.Outline = o.Entries
}

// PageCount returns the number of page records in the artifact.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// GetPage returns a page record by number (1-indexed), or nil.
func (d *Document) GetPage(number int) *PageInfo {
	for i := range d.Pages {
		if d.Pages[i].Number == number {
			return &d.Pages[i]
		}
	}
	return nil
}

// Metadata contains document-level information from the PDF Info
// dictionary. Zero time values mean the field was absent or unparseable.
type Metadata struct {
	Title        string
	Author       string
	Subject      string
	Keywords     []string
	Creator      string
	Producer     string
	CreationDate time.Time
	ModDate      time.Time
}

// IsZero reports whether no metadata field is populated.
func (m Metadata) IsZero() bool {
	return m.Title == "" && m.Author == "" && m.Subject == "" &&
		len(m.Keywords) == 0 && m.Creator == "" && m.Producer == "" &&
		m.CreationDate.IsZero() && m.ModDate.IsZero()
}

// MarshalJSON serializes metadata with lowercase keys, formatting dates as
// RFC 3339 and omitting fields that were absent from the document.
func (m Metadata) MarshalJSON() ([]byte, error) {
	out := struct {
		Title    string   `json:"title,omitempty"`
		Author   string   `json:"author,omitempty"`
		Subject  string   `json:"subject,omitempty"`
		Keywords []string `json:"keywords,omitempty"`
		Creator  string   `json:"creator,omitempty"`
		Producer string   `json:"producer,omitempty"`
		Created  string   `json:"created,omitempty"`
		Modified string   `json:"modified,omitempty"`
	}{
		Title:    m.Title,
		Author:   m.Author,
		Subject:  m.Subject,
		Keywords: m.Keywords,
		Creator:  m.Creator,
		Producer: m.Producer,
	}
	if !m.CreationDate.IsZero() {
		out.Created = m.CreationDate.Format(time.RFC3339)
	}
	if !m.ModDate.IsZero() {
		out.Modified = m.ModDate.Format(time.RFC3339)
	}
	return json.Marshal(out)
}

// PageInfo is the per-page artifact record.
type PageInfo struct {
	// Number is the 1-based page number.
	Number int `json:"number"`

	// Width and Height are the page dimensions in points, from the
	// page MediaBox.
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Text is the page's assembled text, lines joined with newlines.
	Text string `json:"text"`

	// Lines is the number of text lines found on the page.
	Lines int `json:"lines"`

	// OCR reports that Text was recovered by OCR rather than read from
	// embedded text spans.
	OCR bool `json:"ocr,omitempty"`
}

// Table is a detected table grid.
type Table struct {
	Page int        `json:"page"`
	BBox BBox       `json:"bbox"`
	Rows [][]string `json:"rows"`
}

// RowCount returns the number of rows in the table.
func (t Table) RowCount() int { return len(t.Rows) }

// ColCount returns the number of columns in the table's widest row.
func (t Table) ColCount() int {
	var max int
	for _, r := range t.Rows {
		if len(r) > max {
			max = len(r)
		}
	}
	return max
}

// Image is one embedded-image inventory record. Page 0 means the page
// association could not be determined.
type Image struct {
	Page         int `json:"page"`
	ObjectNumber int `json:"object"`
}

// Link is one link annotation with a resolved URI.
type Link struct {
	Page int    `json:"page"`
	URI  string `json:"uri"`
	Rect BBox   `json:"rect"`
}

// Annotation is one page annotation.
type Annotation struct {
	Page     int    `json:"page"`
	Subtype  string `json:"subtype"`
	Contents string `json:"contents,omitempty"`
	Rect     BBox   `json:"rect"`
}
