package outline

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/contour/model"
)

// FontStrategy ranks font names that carry a weight token (bold, black,
// heavy, medium) by how many spans use them. The three most frequent
// weighted faces become H1, H2, H3. Candidates must occupy a whole line,
// span at least half the page width, and stay under the length cap;
// anything else is emphasis, not a heading.
type FontStrategy struct {
	cfg Config
}

// NewFontStrategy returns a font strategy with DefaultConfig.
func NewFontStrategy() *FontStrategy {
	return NewFontStrategyWithConfig(DefaultConfig())
}

// NewFontStrategyWithConfig returns a font strategy with custom settings.
func NewFontStrategyWithConfig(cfg Config) *FontStrategy {
	return &FontStrategy{cfg: cfg}
}

// Name implements Strategy.
func (f *FontStrategy) Name() string { return "font" }

// Mode implements Strategy.
func (f *FontStrategy) Mode() Mode { return ModeFont }

// Select counts spans per font name, keeps names containing a weight
// token, and returns the most frequent ones first, capped at MaxLevel
// buckets. Count ties retain first-seen document order.
func (f *FontStrategy) Select(spans []model.Span) []model.SignalBucket {
	counts := make(map[string]int)
	var order []string
	for _, sp := range spans {
		if sp.FontName == "" {
			continue
		}
		if _, seen := counts[sp.FontName]; !seen {
			order = append(order, sp.FontName)
		}
		counts[sp.FontName]++
	}

	weighted := make([]string, 0, len(order))
	for _, name := range order {
		if f.isWeighted(name) {
			weighted = append(weighted, name)
		}
	}
	sort.SliceStable(weighted, func(i, j int) bool {
		return counts[weighted[i]] > counts[weighted[j]]
	})
	if len(weighted) > f.cfg.MaxLevel {
		weighted = weighted[:f.cfg.MaxLevel]
	}

	buckets := make([]model.SignalBucket, len(weighted))
	for i, name := range weighted {
		buckets[i] = model.SignalBucket{
			Key:         name,
			Rank:        i,
			MemberCount: counts[name],
		}
	}
	return buckets
}

// Assign accepts a span when it is the only run on its line, wide and
// short enough to read as a heading, and set in a bucketed font.
func (f *FontStrategy) Assign(span model.Span, buckets []model.SignalBucket, pageWidth float64) (int, bool) {
	if span.LineSpans != 1 {
		return 0, false
	}
	if utf8.RuneCountInString(span.TrimmedText()) > f.cfg.MaxHeadingChars {
		return 0, false
	}
	if pageWidth > 0 && span.BBox.Width < f.cfg.MinWidthRatio*pageWidth {
		return 0, false
	}
	for _, b := range buckets {
		if b.Key != span.FontName {
			continue
		}
		level := b.Rank + 1
		if level > f.cfg.MaxLevel {
			return 0, false
		}
		return level, true
	}
	return 0, false
}

func (f *FontStrategy) isWeighted(name string) bool {
	lower := strings.ToLower(name)
	for _, token := range f.cfg.WeightTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}
