package outline

import "github.com/tsawler/contour/model"

// FontThenSizeStrategy tries font-weight signals first and lets the
// Assembler re-run with size signals when the font pass produces nothing.
// Scanned or lightly styled documents often embed a single regular face,
// leaving no weighted fonts to rank; size ranking still works there.
type FontThenSizeStrategy struct {
	font *FontStrategy
	size *SizeStrategy
}

// NewFontThenSizeStrategy returns the composite with DefaultConfig.
func NewFontThenSizeStrategy() *FontThenSizeStrategy {
	return NewFontThenSizeStrategyWithConfig(DefaultConfig())
}

// NewFontThenSizeStrategyWithConfig returns the composite with custom
// settings applied to both legs.
func NewFontThenSizeStrategyWithConfig(cfg Config) *FontThenSizeStrategy {
	return &FontThenSizeStrategy{
		font: NewFontStrategyWithConfig(cfg),
		size: NewSizeStrategyWithConfig(cfg),
	}
}

// Name implements Strategy.
func (c *FontThenSizeStrategy) Name() string { return "font+size" }

// Mode implements Strategy. Spans are collected per run so font names can
// be counted; the size fallback reuses the same span sequence.
func (c *FontThenSizeStrategy) Mode() Mode { return ModeFont }

// Select implements Strategy by delegating to the font leg.
func (c *FontThenSizeStrategy) Select(spans []model.Span) []model.SignalBucket {
	return c.font.Select(spans)
}

// Assign implements Strategy by delegating to the font leg.
func (c *FontThenSizeStrategy) Assign(span model.Span, buckets []model.SignalBucket, pageWidth float64) (int, bool) {
	return c.font.Assign(span, buckets, pageWidth)
}

// Fallback implements FallbackProvider. The returned size strategy runs
// without the language filter; a fallback pass is already a last resort.
func (c *FontThenSizeStrategy) Fallback() Strategy {
	return c.size
}
