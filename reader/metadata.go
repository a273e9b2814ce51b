package reader

import (
	"strconv"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/contour/model"
)

// Metadata reads the document Info dictionary. It never fails: documents
// without an Info dictionary, and malformed entries, yield a zero Metadata.
func (r *Reader) Metadata() (meta model.Metadata) {
	defer func() {
		if recover() != nil {
			meta = model.Metadata{}
		}
	}()

	info := r.pdf.Trailer().Key("Info")
	if info.Kind() != pdf.Dict {
		return model.Metadata{}
	}

	meta.Title = strings.TrimSpace(info.Key("Title").Text())
	meta.Author = strings.TrimSpace(info.Key("Author").Text())
	meta.Subject = strings.TrimSpace(info.Key("Subject").Text())
	meta.Creator = strings.TrimSpace(info.Key("Creator").Text())
	meta.Producer = strings.TrimSpace(info.Key("Producer").Text())
	meta.Keywords = splitKeywords(info.Key("Keywords").Text())
	meta.CreationDate = parsePDFDate(info.Key("CreationDate").Text())
	meta.ModDate = parsePDFDate(info.Key("ModDate").Text())
	return meta
}

// splitKeywords splits an Info Keywords string on commas and semicolons.
func splitKeywords(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';'
	})
	var out []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// parsePDFDate parses a PDF date string of the form
// D:YYYYMMDDHHmmSSOHH'mm' where every component after the year is
// optional. Returns the zero time when the string cannot be parsed.
func parsePDFDate(s string) time.Time {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "D:")
	if len(s) < 4 {
		return time.Time{}
	}

	digits := 0
	for digits < len(s) && digits < 14 && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits < 4 {
		return time.Time{}
	}

	part := func(from, to, def int) int {
		if digits < to {
			return def
		}
		n, err := strconv.Atoi(s[from:to])
		if err != nil {
			return def
		}
		return n
	}

	year := part(0, 4, 0)
	month := part(4, 6, 1)
	day := part(6, 8, 1)
	hour := part(8, 10, 0)
	minute := part(10, 12, 0)
	sec := part(12, 14, 0)
	if year == 0 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}
	}

	loc := parsePDFZone(s[digits:])
	return time.Date(year, time.Month(month), day, hour, minute, sec, 0, loc)
}

// parsePDFZone parses the timezone suffix of a PDF date: "Z", or
// +HH'mm' / -HH'mm'. Unparseable suffixes are treated as UTC.
func parsePDFZone(s string) *time.Location {
	if len(s) == 0 || s[0] == 'Z' {
		return time.UTC
	}
	sign := 0
	switch s[0] {
	case '+':
		sign = 1
	case '-':
		sign = -1
	default:
		return time.UTC
	}
	s = strings.ReplaceAll(s[1:], "'", "")
	if len(s) < 2 {
		return time.UTC
	}
	hh, err := strconv.Atoi(s[:2])
	if err != nil {
		return time.UTC
	}
	mm := 0
	if len(s) >= 4 {
		if v, err := strconv.Atoi(s[2:4]); err == nil {
			mm = v
		}
	}
	offset := sign * (hh*3600 + mm*60)
	return time.FixedZone("", offset)
}
