package outline

import (
	"fmt"
	"sort"
	"sync"

	"github.com/tsawler/contour/model"
)

// Mode tells the collector how a strategy wants spans prepared.
type Mode int

const (
	// ModeSize collapses each reader line into a single span carrying the
	// line's concatenated text and maximum font size.
	ModeSize Mode = iota

	// ModeFont keeps every run separate so font names can be counted and
	// single-span lines identified.
	ModeFont
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeSize:
		return "size"
	case ModeFont:
		return "font"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Strategy is the interface heading-signal selectors implement. A strategy
// first surveys the whole span sequence to pick ranked signal buckets, then
// classifies individual spans against those buckets.
//
// Implementations must be safe for concurrent use; both built-in strategies
// are stateless beyond their Config.
type Strategy interface {
	// Name returns the registry name ("size", "font", "font+size").
	Name() string

	// Mode reports how spans should be collected for this strategy.
	Mode() Mode

	// Select surveys the span sequence and returns ranked signal buckets,
	// strongest first. An empty result means no heading signal exists and
	// the document gets an empty outline.
	Select(spans []model.Span) []model.SignalBucket

	// Assign classifies one span against the selected buckets. It returns
	// the 1-based heading level and true when the span matches a bucket
	// within the configured depth, false otherwise. pageWidth is the width
	// of the span's page, or 0 when unknown.
	Assign(span model.Span, buckets []model.SignalBucket, pageWidth float64) (int, bool)
}

// FallbackProvider is implemented by composite strategies that can supply
// a secondary strategy to try when the primary pass yields no entries.
// The Assembler checks for it after an empty primary pass.
type FallbackProvider interface {
	Fallback() Strategy
}

// StrategyRegistry maps names to strategies so callers can select one
// from configuration or a command-line flag.
type StrategyRegistry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
}

// NewStrategyRegistry creates an empty registry.
func NewStrategyRegistry() *StrategyRegistry {
	return &StrategyRegistry{strategies: make(map[string]Strategy)}
}

// Register adds a strategy under its Name. Registering a name twice
// replaces the earlier entry.
func (r *StrategyRegistry) Register(s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[s.Name()] = s
}

// Get returns the strategy registered under name.
func (r *StrategyRegistry) Get(name string) (Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("outline: unknown strategy %q (registered: %v)", name, r.names())
	}
	return s, nil
}

// List returns the registered strategy names in sorted order.
func (r *StrategyRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.names()
}

func (r *StrategyRegistry) names() []string {
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// defaultRegistry holds the built-in strategies.
var defaultRegistry = NewStrategyRegistry()

func init() {
	defaultRegistry.Register(NewSizeStrategy())
	defaultRegistry.Register(NewFontStrategy())
	defaultRegistry.Register(NewFontThenSizeStrategy())
}

// RegisterStrategy adds a strategy to the default registry.
func RegisterStrategy(s Strategy) {
	defaultRegistry.Register(s)
}

// GetStrategy returns a strategy from the default registry by name.
func GetStrategy(name string) (Strategy, error) {
	return defaultRegistry.Get(name)
}

// ListStrategies returns the names registered in the default registry.
func ListStrategies() []string {
	return defaultRegistry.List()
}
