package outline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tsawler/contour/model"
)

// numberedHeading matches the section-numbering prefixes the language
// filter accepts for English text: arabic digits or roman numerals
// followed by at least one ".", "|" or ")".
var numberedHeading = regexp.MustCompile(`^[0-9IVX]+[.|)]+`)

// LanguageIdentifier reports the dominant language of a text fragment as
// a lowercase ISO 639-1 code. ok is false when no decision can be made;
// the assembler then assumes English, the stricter path.
type LanguageIdentifier interface {
	Detect(text string) (code string, ok bool)
}

// Input carries everything one document contributes to outline assembly.
type Input struct {
	// Spans is the collected span sequence in document order.
	Spans []model.Span

	// PageWidths maps 1-based page numbers to page widths in points.
	// Missing pages disable the width check for their spans.
	PageWidths map[int]float64

	// MetadataTitle is the document-info title, used when no title can be
	// derived from the spans.
	MetadataTitle string

	// FileName is the source file's base name without extension, the
	// final link in the title chain.
	FileName string
}

// Assembler turns a collected span sequence into an ordered outline. It
// is stateless across calls; one Assembler may serve many documents
// concurrently.
type Assembler struct {
	strategy Strategy
	cfg      Config
	langID   LanguageIdentifier
}

// NewAssembler returns an assembler for the given strategy using
// DefaultConfig.
func NewAssembler(s Strategy) *Assembler {
	return NewAssemblerWithConfig(s, DefaultConfig())
}

// NewAssemblerWithConfig returns an assembler with custom settings.
func NewAssemblerWithConfig(s Strategy, cfg Config) *Assembler {
	return &Assembler{strategy: s, cfg: cfg}
}

// WithLanguageIdentifier attaches a language identifier and returns the
// assembler. Without one every span is treated as English.
func (a *Assembler) WithLanguageIdentifier(id LanguageIdentifier) *Assembler {
	a.langID = id
	return a
}

// Assemble runs selection, classification and title resolution over one
// document's spans. Entries come back in document order; the title falls
// through derived text, document metadata and file name, in that order.
func (a *Assembler) Assemble(in Input) model.Outline {
	buckets := a.strategy.Select(in.Spans)

	var title string
	var entries []model.OutlineEntry
	if a.strategy.Mode() == ModeSize {
		var claimed map[string]bool
		if len(buckets) > 0 {
			title, claimed = sizeTitle(in.Spans, buckets[0])
		}
		entries = a.pass(in, a.strategy, buckets, a.cfg.LanguageFilter, claimed)
	} else {
		entries = a.pass(in, a.strategy, buckets, false, nil)
		if len(entries) == 0 {
			if fp, ok := a.strategy.(FallbackProvider); ok {
				fb := fp.Fallback()
				entries = a.pass(in, fb, fb.Select(in.Spans), false, nil)
			}
		}
		title = entryTitle(entries)
	}

	if title == "" {
		title = fallbackTitle(in.MetadataTitle, in.FileName)
	}
	if entries == nil {
		entries = []model.OutlineEntry{}
	}
	return model.Outline{Title: title, Entries: entries}
}

// pass walks the spans once, classifying each against the buckets.
// titleLines holds trimmed first-page texts already claimed by the title;
// matching H1 spans on page 1 are skipped so the title is not repeated as
// a heading. langFilter applies the language-adaptive numbering check.
func (a *Assembler) pass(in Input, st Strategy, buckets []model.SignalBucket, langFilter bool, titleLines map[string]bool) []model.OutlineEntry {
	if len(buckets) == 0 {
		return nil
	}
	var entries []model.OutlineEntry
	for _, sp := range in.Spans {
		level, ok := st.Assign(sp, buckets, in.PageWidths[sp.Page])
		if !ok {
			continue
		}
		text := sp.TrimmedText()
		if level == 1 && sp.Page == 1 && titleLines[text] {
			continue
		}
		if langFilter && !a.keepForLanguage(text) {
			continue
		}
		entries = append(entries, model.OutlineEntry{
			Level: fmt.Sprintf("H%d", level),
			Text:  Normalize(text),
			Page:  sp.Page,
		})
	}
	return entries
}

// keepForLanguage applies the numbering filter. English headings must
// carry a section-number prefix or end with a colon; other languages pass
// on the strategy signal alone, since the prefix pattern is Latin-centric
// and would wrongly drop CJK or Cyrillic headings.
func (a *Assembler) keepForLanguage(text string) bool {
	code := "en"
	if a.langID != nil {
		if c, ok := a.langID.Detect(text); ok {
			code = c
		}
	}
	if !strings.HasPrefix(code, "en") {
		return true
	}
	return numberedHeading.MatchString(text) || strings.HasSuffix(text, ":")
}
