package contour

import "github.com/tsawler/contour/outline"

// ExtractOptions holds configuration for outline and document extraction.
type ExtractOptions struct {
	// Page selection (1-indexed in API, stored as-is)
	pages []int

	// Heading signal selection
	strategyName string
	strategy     outline.Strategy
	outlineCfg   outline.Config
	langID       outline.LanguageIdentifier

	// Document assembly options
	ocrFallback  bool
	detectTables bool
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		pages:        nil, // nil means all pages
		strategyName: "size",
		outlineCfg:   outline.DefaultConfig(),
		ocrFallback:  false,
		detectTables: false,
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		strategyName: o.strategyName,
		strategy:     o.strategy,
		outlineCfg:   o.outlineCfg,
		langID:       o.langID,
		ocrFallback:  o.ocrFallback,
		detectTables: o.detectTables,
	}

	// Deep copy pages slice
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}

	// Deep copy the weight token slice inside the outline config
	if o.outlineCfg.WeightTokens != nil {
		newOpts.outlineCfg.WeightTokens = make([]string, len(o.outlineCfg.WeightTokens))
		copy(newOpts.outlineCfg.WeightTokens, o.outlineCfg.WeightTokens)
	}

	return newOpts
}
