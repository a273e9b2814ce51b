package outline

import (
	"strings"

	"github.com/tsawler/contour/model"
)

// Collect reduces reader lines to the span sequence a strategy consumes.
// Document order (page ascending, top-to-bottom within a page) is
// preserved; lines that are empty after trimming are dropped outright.
//
// In ModeSize each line collapses into one span carrying the concatenated
// line text, the largest font size on the line, and the union of the run
// boxes. In ModeFont every run survives individually, keeping its own font
// name and its line's span count.
func Collect(lines []model.Line, mode Mode) []model.Span {
	var spans []model.Span
	for _, line := range lines {
		switch mode {
		case ModeFont:
			for _, s := range line.Spans {
				if strings.TrimSpace(s.Text) == "" {
					continue
				}
				spans = append(spans, s)
			}
		default:
			s, ok := collapseLine(line)
			if !ok {
				continue
			}
			spans = append(spans, s)
		}
	}
	return spans
}

// collapseLine folds a multi-run line into a single size-mode span. The
// second return is false when the line holds no visible text.
func collapseLine(line model.Line) (model.Span, bool) {
	text := line.Text()
	if strings.TrimSpace(text) == "" {
		return model.Span{}, false
	}
	span := model.Span{
		Page:      line.Page,
		Text:      text,
		FontSize:  line.MaxFontSize(),
		BBox:      line.BBox(),
		LineSpans: len(line.Spans),
	}
	// Carry the font of the dominant run; size mode ignores it but it
	// helps when dumping spans for debugging.
	for _, s := range line.Spans {
		if s.FontSize == span.FontSize {
			span.FontName = s.FontName
			break
		}
	}
	return span, true
}
