package analysis

import (
	"strings"
	"unicode"

	"internhunt/internal/types"
)

// NormalizeText derives the two text views every downstream stage consumes.
// The raw view keeps line structure and casing for entity and heading work;
// the normalized view is lowercase with all whitespace runs collapsed to
// single spaces. Pure and deterministic; an empty input yields empty views.
func NormalizeText(raw string) types.ExtractedText {
	cleaned := stripControl(raw)
	return types.ExtractedText{
		Raw:        cleaned,
		Normalized: normalize(cleaned),
	}
}

// stripControl removes control and format characters, keeping newlines and
// tabs so the raw view preserves the document's line structure.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r == '\r' {
			return '\n'
		}
		if unicode.IsControl(r) || unicode.Is(unicode.Cf, r) {
			return -1
		}
		return r
	}, s)
}

// normalize lowercases and collapses whitespace. Idempotent: normalizing
// already-normalized text returns it unchanged.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// WordCount counts whitespace-delimited tokens in the normalized view
func WordCount(text types.ExtractedText) int {
	if text.Normalized == "" {
		return 0
	}
	return strings.Count(text.Normalized, " ") + 1
}
