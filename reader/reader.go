package reader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/contour/model"
)

// ErrNoPages is returned when a document contains no pages.
var ErrNoPages = errors.New("pdf has no pages")

// Default page dimensions (US Letter, points) used when a page carries no
// resolvable MediaBox.
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// Config holds line-assembly tuning for the reader.
type Config struct {
	// RowTolerance is the Y-coordinate tolerance (points) for grouping
	// text runs into one baseline row.
	RowTolerance float64

	// WordGapFactor is the fraction of the font size an X gap between
	// consecutive runs must exceed to be rendered as a space.
	WordGapFactor float64

	// ColumnGapFactor is the fraction of the font size an X gap must
	// exceed before fragment extraction treats it as a column boundary
	// rather than a word space. One em separates table cells reliably
	// without splitting justified prose.
	ColumnGapFactor float64
}

// DefaultConfig returns the default reader configuration.
func DefaultConfig() Config {
	return Config{
		RowTolerance:    3.0,
		WordGapFactor:   0.3,
		ColumnGapFactor: 1.0,
	}
}

// Reader reads a single PDF document.
type Reader struct {
	file *os.File // nil when constructed from an external io.ReaderAt
	pdf  *pdf.Reader
	cfg  Config
}

// Open opens and parses a PDF file with default configuration.
func Open(filename string) (*Reader, error) {
	return OpenWithConfig(filename, DefaultConfig())
}

// OpenWithConfig opens and parses a PDF file with a custom configuration.
func OpenWithConfig(filename string, cfg Config) (r *Reader, err error) {
	defer recoverTo(&err, "open pdf")

	f, pr, err := pdf.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	return &Reader{file: f, pdf: pr, cfg: cfg}, nil
}

// NewReader parses a PDF from an io.ReaderAt. The caller retains ownership
// of the underlying reader.
func NewReader(ra io.ReaderAt, size int64) (r *Reader, err error) {
	defer recoverTo(&err, "parse pdf")

	pr, err := pdf.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("parse pdf: %w", err)
	}
	return &Reader{pdf: pr, cfg: DefaultConfig()}, nil
}

// Close closes the underlying file, if this reader owns one.
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// PageCount returns the number of pages in the document.
func (r *Reader) PageCount() int {
	return r.pdf.NumPage()
}

// PageLines decodes one page (1-based) into baseline-grouped lines, ordered
// top-to-bottom, spans left-to-right. Pages without text content yield an
// empty slice.
func (r *Reader) PageLines(pageNum int) (lines []model.Line, err error) {
	defer recoverTo(&err, fmt.Sprintf("page %d", pageNum))

	if pageNum < 1 || pageNum > r.pdf.NumPage() {
		return nil, fmt.Errorf("page %d out of range [1, %d]", pageNum, r.pdf.NumPage())
	}
	page := r.pdf.Page(pageNum)
	if page.V.IsNull() {
		return nil, nil
	}

	content := page.Content()
	return groupLines(content.Text, pageNum, r.cfg), nil
}

// PageFragments decodes one page (1-based) into rows of horizontally
// contiguous text fragments, ordered top-to-bottom and left-to-right. Unlike
// PageLines, runs are also split where the X gap exceeds a column-sized
// threshold, preserving the whitespace structure table detection needs.
func (r *Reader) PageFragments(pageNum int) (rows [][]model.Span, err error) {
	defer recoverTo(&err, fmt.Sprintf("page %d", pageNum))

	if pageNum < 1 || pageNum > r.pdf.NumPage() {
		return nil, fmt.Errorf("page %d out of range [1, %d]", pageNum, r.pdf.NumPage())
	}
	page := r.pdf.Page(pageNum)
	if page.V.IsNull() {
		return nil, nil
	}

	content := page.Content()
	for _, row := range bucketRows(content.Text, r.cfg) {
		frags := assembleFragments(row, pageNum, r.cfg)
		if len(frags) > 0 {
			rows = append(rows, frags)
		}
	}
	return rows, nil
}

// Lines decodes the whole document, pages ascending. Pages that fail to
// decode are skipped; an error is returned only when the document has pages
// and none of them could be decoded.
func (r *Reader) Lines() ([]model.Line, error) {
	total := r.pdf.NumPage()
	if total == 0 {
		return nil, ErrNoPages
	}

	var lines []model.Line
	var firstErr error
	decoded := 0
	for n := 1; n <= total; n++ {
		pageLines, err := r.PageLines(n)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		decoded++
		lines = append(lines, pageLines...)
	}
	if decoded == 0 && firstErr != nil {
		return nil, fmt.Errorf("no decodable pages: %w", firstErr)
	}
	return lines, nil
}

// Spans flattens Lines into the span sequence outline inference consumes.
// Every span carries the span count of the line it came from.
func (r *Reader) Spans() ([]model.Span, error) {
	lines, err := r.Lines()
	if err != nil {
		return nil, err
	}
	var spans []model.Span
	for _, line := range lines {
		spans = append(spans, line.Spans...)
	}
	return spans, nil
}

// PageText returns the page's assembled text, lines joined with newlines.
func (r *Reader) PageText(pageNum int) (string, error) {
	lines, err := r.PageLines(pageNum)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		if t := strings.TrimSpace(line.Text()); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n"), nil
}

// PageSize returns the page dimensions in points from the MediaBox,
// following Parent inheritance. Pages without a resolvable MediaBox report
// US Letter dimensions.
func (r *Reader) PageSize(pageNum int) (w, h float64) {
	defer func() {
		if recover() != nil {
			w, h = defaultPageWidth, defaultPageHeight
		}
	}()

	if pageNum < 1 || pageNum > r.pdf.NumPage() {
		return defaultPageWidth, defaultPageHeight
	}
	page := r.pdf.Page(pageNum)
	if page.V.IsNull() {
		return defaultPageWidth, defaultPageHeight
	}

	box := page.V.Key("MediaBox")
	parent := page.V.Key("Parent")
	for depth := 0; box.IsNull() && !parent.IsNull() && depth < 8; depth++ {
		box = parent.Key("MediaBox")
		parent = parent.Key("Parent")
	}
	if box.Kind() != pdf.Array || box.Len() != 4 {
		return defaultPageWidth, defaultPageHeight
	}

	x0 := numValue(box.Index(0))
	y0 := numValue(box.Index(1))
	x1 := numValue(box.Index(2))
	y1 := numValue(box.Index(3))
	w = x1 - x0
	h = y1 - y0
	if w <= 0 || h <= 0 {
		return defaultPageWidth, defaultPageHeight
	}
	return w, h
}

// PageWidth returns the page width in points.
func (r *Reader) PageWidth(pageNum int) float64 {
	w, _ := r.PageSize(pageNum)
	return w
}

// groupLines buckets raw text runs into baseline rows and merges same-font
// runs into spans.
func groupLines(texts []pdf.Text, pageNum int, cfg Config) []model.Line {
	var lines []model.Line
	for _, row := range bucketRows(texts, cfg) {
		line := assembleLine(row, pageNum, cfg)
		if len(line.Spans) > 0 {
			lines = append(lines, line)
		}
	}
	return lines
}

// bucketRows groups raw text runs into baseline rows within RowTolerance and
// returns them in reading order: top to bottom (higher Y first), runs within
// a row left to right.
func bucketRows(texts []pdf.Text, cfg Config) [][]pdf.Text {
	type rowBucket struct {
		yMin, yMax float64
		texts      []pdf.Text
	}

	var buckets []rowBucket
	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		found := false
		for i := range buckets {
			if t.Y >= buckets[i].yMin-cfg.RowTolerance && t.Y <= buckets[i].yMax+cfg.RowTolerance {
				buckets[i].texts = append(buckets[i].texts, t)
				if t.Y < buckets[i].yMin {
					buckets[i].yMin = t.Y
				}
				if t.Y > buckets[i].yMax {
					buckets[i].yMax = t.Y
				}
				found = true
				break
			}
		}
		if !found {
			buckets = append(buckets, rowBucket{yMin: t.Y, yMax: t.Y, texts: []pdf.Text{t}})
		}
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].yMax > buckets[j].yMax
	})

	rows := make([][]pdf.Text, 0, len(buckets))
	for _, bucket := range buckets {
		sort.SliceStable(bucket.texts, func(i, j int) bool {
			return bucket.texts[i].X < bucket.texts[j].X
		})
		rows = append(rows, bucket.texts)
	}
	return rows
}

// assembleLine merges X-ordered runs into spans, splitting at font name or
// rounded-size changes and inserting spaces at word-sized gaps.
func assembleLine(texts []pdf.Text, pageNum int, cfg Config) model.Line {
	line := model.Line{Page: pageNum}

	var cur *model.Span
	var prevEnd float64
	flush := func() {
		if cur != nil && strings.TrimSpace(cur.Text) != "" {
			line.Spans = append(line.Spans, *cur)
		}
		cur = nil
	}

	for _, t := range texts {
		sameRun := cur != nil &&
			cur.FontName == t.Font &&
			model.RoundSize(cur.FontSize) == model.RoundSize(t.FontSize)

		if !sameRun {
			flush()
			cur = &model.Span{
				Page:     pageNum,
				Text:     t.S,
				FontName: t.Font,
				FontSize: t.FontSize,
				BBox:     runBBox(t),
			}
			prevEnd = t.X + t.W
			continue
		}

		gap := t.X - prevEnd
		if gap > cfg.WordGapFactor*t.FontSize &&
			!strings.HasSuffix(cur.Text, " ") && !strings.HasPrefix(t.S, " ") {
			cur.Text += " "
		}
		cur.Text += t.S
		cur.BBox = cur.BBox.Union(runBBox(t))
		prevEnd = t.X + t.W
	}
	flush()

	for i := range line.Spans {
		line.Spans[i].LineSpans = len(line.Spans)
	}
	return line
}

// assembleFragments merges X-ordered runs into fragments, splitting at font
// changes like assembleLine but also at column-sized gaps. Word-sized gaps
// inside a fragment still become spaces.
func assembleFragments(texts []pdf.Text, pageNum int, cfg Config) []model.Span {
	var frags []model.Span

	var cur *model.Span
	var prevEnd float64
	flush := func() {
		if cur != nil && strings.TrimSpace(cur.Text) != "" {
			cur.Text = strings.TrimSpace(cur.Text)
			frags = append(frags, *cur)
		}
		cur = nil
	}

	for _, t := range texts {
		gap := t.X - prevEnd
		sameFrag := cur != nil &&
			cur.FontName == t.Font &&
			model.RoundSize(cur.FontSize) == model.RoundSize(t.FontSize) &&
			gap <= cfg.ColumnGapFactor*t.FontSize

		if !sameFrag {
			flush()
			cur = &model.Span{
				Page:     pageNum,
				Text:     t.S,
				FontName: t.Font,
				FontSize: t.FontSize,
				BBox:     runBBox(t),
			}
			prevEnd = t.X + t.W
			continue
		}

		if gap > cfg.WordGapFactor*t.FontSize &&
			!strings.HasSuffix(cur.Text, " ") && !strings.HasPrefix(t.S, " ") {
			cur.Text += " "
		}
		cur.Text += t.S
		cur.BBox = cur.BBox.Union(runBBox(t))
		prevEnd = t.X + t.W
	}
	flush()
	return frags
}

// runBBox approximates a text run's box from its position, advance width,
// and font size.
func runBBox(t pdf.Text) model.BBox {
	return model.NewBBox(t.X, t.Y, t.W, t.FontSize)
}

// numValue reads a numeric PDF value of either integer or real kind.
func numValue(v pdf.Value) float64 {
	switch v.Kind() {
	case pdf.Integer:
		return float64(v.Int64())
	case pdf.Real:
		return v.Float64()
	}
	return 0
}

// recoverTo converts a parser panic into a wrapped error.
func recoverTo(err *error, context string) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%s: %v", context, r)
	}
}
