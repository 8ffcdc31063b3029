package analysis

import (
	"sort"
	"strings"

	"internhunt/internal/refdata"
	"internhunt/internal/types"
)

// ExtractSkills matches the skill taxonomy against normalized text using
// whole-token matching, so "java" never fires inside "javascript". Each
// taxonomy entry is evaluated independently and the profile is keyed by
// canonical name, which makes the result independent of taxonomy order.
// Never fails; no matches means an empty profile.
func ExtractSkills(normalized string, tables *refdata.Tables) types.SkillProfile {
	padded := paddedTokens(normalized)
	if padded == "" {
		return types.SkillProfile{}
	}

	var hits []types.SkillHit
	for _, entry := range tables.Skills {
		hit, ok := matchEntry(padded, entry)
		if ok {
			hits = append(hits, hit)
		}
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].Name < hits[j].Name })
	return types.SkillProfile{Hits: hits}
}

// matchEntry tries the canonical name first, then synonyms in declared
// order. A canonical-name occurrence scores 1.0, a synonym 0.9.
func matchEntry(padded string, entry refdata.SkillEntry) (types.SkillHit, bool) {
	canonical := strings.ToLower(entry.Name)
	terms := append([]string{canonical}, entry.Synonyms...)

	for _, term := range terms {
		needle := paddedTokens(strings.ToLower(term))
		if needle == "" || !strings.Contains(padded, needle) {
			continue
		}
		confidence := 0.9
		if term == canonical {
			confidence = 1.0
		}
		return types.SkillHit{
			Name:        entry.Name,
			Category:    entry.Category,
			Confidence:  confidence,
			MatchedTerm: term,
		}, true
	}
	return types.SkillHit{}, false
}

// paddedTokens renders text as space-padded tokens so a substring check on
// the result is a whole-token-sequence check. Tokens keep interior and
// trailing '+', '#', '.', '/' (c++, c#, node.js, ci/cd); other punctuation
// splits tokens.
func paddedTokens(text string) string {
	var sb strings.Builder
	sb.WriteByte(' ')
	inToken := false
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '+', r == '#', r == '.', r == '/':
			sb.WriteRune(r)
			inToken = true
		default:
			if inToken {
				sb.WriteByte(' ')
				inToken = false
			}
		}
	}
	if inToken {
		sb.WriteByte(' ')
	}

	out := sb.String()
	if strings.TrimSpace(out) == "" {
		return ""
	}
	// A sentence-final "node.js." must still match the token "node.js"
	out = strings.ReplaceAll(out, ". ", " ")
	return out
}
