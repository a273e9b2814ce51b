package outline

// Config holds tuning parameters for heading inference. The zero value is
// not useful; start from DefaultConfig and adjust.
type Config struct {
	// MaxLevel caps the outline depth. Signal buckets ranked beyond
	// MaxLevel still participate in selection but never produce entries.
	MaxLevel int

	// WeightTokens are the lowercase substrings that mark a font name as
	// a heading face in font mode ("Helvetica-Bold", "NotoSans Black").
	WeightTokens []string

	// MinWidthRatio rejects font-mode candidates narrower than this
	// fraction of the page width. Short bold fragments (figure labels,
	// emphasized words) rarely span half the page; headings usually do.
	MinWidthRatio float64

	// MaxHeadingChars rejects font-mode candidates whose trimmed text
	// exceeds this many runes. Long bold paragraphs are lead-ins, not
	// headings.
	MaxHeadingChars int

	// LanguageFilter enables the language-adaptive numbering filter in
	// size mode: English text must look like a numbered heading or end
	// with a colon, while non-Latin scripts pass on size alone. It is
	// ignored in font mode and during fallback passes.
	LanguageFilter bool
}

// DefaultConfig returns the settings used by the package-level strategies.
func DefaultConfig() Config {
	return Config{
		MaxLevel:        3,
		WeightTokens:    []string{"bold", "black", "heavy", "medium"},
		MinWidthRatio:   0.5,
		MaxHeadingChars: 100,
		LanguageFilter:  true,
	}
}
