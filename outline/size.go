package outline

import (
	"sort"
	"strconv"

	"github.com/tsawler/contour/model"
)

// SizeStrategy ranks rounded font sizes by how much text they carry. The
// size with the highest aggregate word count is assumed to be body text
// and removed; the largest remaining sizes become H1, H2, H3.
type SizeStrategy struct {
	cfg Config
}

// NewSizeStrategy returns a size strategy with DefaultConfig.
func NewSizeStrategy() *SizeStrategy {
	return NewSizeStrategyWithConfig(DefaultConfig())
}

// NewSizeStrategyWithConfig returns a size strategy with custom settings.
func NewSizeStrategyWithConfig(cfg Config) *SizeStrategy {
	return &SizeStrategy{cfg: cfg}
}

// Name implements Strategy.
func (s *SizeStrategy) Name() string { return "size" }

// Mode implements Strategy.
func (s *SizeStrategy) Mode() Mode { return ModeSize }

// Select tallies word counts per rounded size, discards the most
// word-dense size as body text, and returns the remaining sizes ordered
// largest first, capped at MaxLevel buckets. Word-count ties for the body
// pick resolve to the size seen first in document order.
func (s *SizeStrategy) Select(spans []model.Span) []model.SignalBucket {
	words := make(map[float64]int)
	var order []float64
	for _, sp := range spans {
		size := sp.RoundedSize()
		if _, seen := words[size]; !seen {
			order = append(order, size)
		}
		words[size] += sp.WordCount()
	}
	if len(order) == 0 {
		return nil
	}

	body := order[0]
	for _, size := range order {
		if words[size] > words[body] {
			body = size
		}
	}

	heads := make([]float64, 0, len(order)-1)
	for _, size := range order {
		if size != body {
			heads = append(heads, size)
		}
	}
	sort.SliceStable(heads, func(i, j int) bool { return heads[i] > heads[j] })
	if len(heads) > s.cfg.MaxLevel {
		heads = heads[:s.cfg.MaxLevel]
	}

	buckets := make([]model.SignalBucket, len(heads))
	for i, size := range heads {
		buckets[i] = model.SignalBucket{
			Key:         strconv.FormatFloat(size, 'f', 1, 64),
			Size:        size,
			Rank:        i,
			MemberCount: words[size],
		}
	}
	return buckets
}

// Assign maps a span to the bucket matching its rounded size. Spans whose
// size belongs to no bucket, or to a bucket ranked deeper than MaxLevel,
// are rejected.
func (s *SizeStrategy) Assign(span model.Span, buckets []model.SignalBucket, _ float64) (int, bool) {
	size := span.RoundedSize()
	for _, b := range buckets {
		if b.Size != size {
			continue
		}
		level := b.Rank + 1
		if level > s.cfg.MaxLevel {
			return 0, false
		}
		return level, true
	}
	return 0, false
}
