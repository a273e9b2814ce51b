// Package lang provides best-effort language identification for heading
// text, used by the language-adaptive outline filter.
//
// Detection is backed by the lingua-go statistical detector, built once
// per Detector from an explicit language allowlist so results are
// deterministic across runs. Identification failure is not an error at
// this layer: callers treat unidentifiable text as English, the stricter
// filtering case.
package lang

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Detector identifies the language of short text runs. Safe for
// concurrent use.
type Detector struct {
	detector lingua.LanguageDetector
}

// DefaultLanguages returns the language set detectors are built from by
// default: the major Latin-script languages plus the non-Latin scripts
// heading text commonly appears in.
func DefaultLanguages() []lingua.Language {
	return []lingua.Language{
		lingua.English,
		lingua.French,
		lingua.German,
		lingua.Spanish,
		lingua.Italian,
		lingua.Portuguese,
		lingua.Dutch,
		lingua.Russian,
		lingua.Arabic,
		lingua.Hindi,
		lingua.Chinese,
		lingua.Japanese,
		lingua.Korean,
	}
}

// New creates a detector over the default language set.
func New() *Detector {
	return NewWithLanguages(DefaultLanguages()...)
}

// NewWithLanguages creates a detector restricted to the given languages.
// Fewer languages means faster, more decisive detection.
func NewWithLanguages(languages ...lingua.Language) *Detector {
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(languages...).
			Build(),
	}
}

// Detect returns the lowercased ISO 639-1 code of the detected language.
// ok is false when the detector has no confident answer (empty text,
// digits-only text, or text outside the configured language set).
func (d *Detector) Detect(text string) (code string, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	language, exists := d.detector.DetectLanguageOf(text)
	if !exists {
		return "", false
	}
	return strings.ToLower(language.IsoCode639_1().String()), true
}

// IsEnglish reports whether the text reads as English. Detection failure
// counts as English, matching the outline filter's strict fallback.
func (d *Detector) IsEnglish(text string) bool {
	code, ok := d.Detect(text)
	if !ok {
		return true
	}
	return strings.HasPrefix(code, "en")
}
