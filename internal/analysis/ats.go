package analysis

import (
	"math"
	"strings"

	"internhunt/internal/refdata"
	"internhunt/internal/types"
)

// Weights are the fixed blend of the three ATS sub-scores; they must sum
// to 1.
type Weights struct {
	Section    float64 `mapstructure:"section"`
	Keyword    float64 `mapstructure:"keyword"`
	Formatting float64 `mapstructure:"formatting"`
}

// DefaultWeights reflect the product's scoring emphasis: structure first,
// then keyword coverage, then formatting hygiene.
func DefaultWeights() Weights {
	return Weights{Section: 0.40, Keyword: 0.35, Formatting: 0.25}
}

// Bounds used by the formatting heuristics
const (
	minResumeWords = 120
	maxResumeWords = 1000
)

// ScoreATS computes the deterministic ATS-compatibility breakdown. An empty
// document scores 0 on every sub-score; identical inputs always yield
// identical output.
func ScoreATS(text types.ExtractedText, sections types.SectionReport,
	skills types.SkillProfile, contact types.ContactInfo,
	tables *refdata.Tables, weights Weights) types.AtsScore {

	if text.Normalized == "" {
		return types.AtsScore{MissingKeywords: append([]string(nil), tables.Keywords...)}
	}

	sectionScore := int(math.Round(sections.Completeness * 100))
	keywordScore, missing := scoreKeywords(skills, tables)
	formattingScore := scoreFormatting(text, contact)

	overall := int(math.Round(weights.Section*float64(sectionScore) +
		weights.Keyword*float64(keywordScore) +
		weights.Formatting*float64(formattingScore)))

	return types.AtsScore{
		Overall:         clampScore(overall),
		SectionScore:    clampScore(sectionScore),
		KeywordScore:    clampScore(keywordScore),
		FormattingScore: clampScore(formattingScore),
		MissingKeywords: missing,
	}
}

// scoreKeywords measures coverage of the industry keyword reference by the
// detected skill profile. Missing keywords keep the reference's importance
// order.
func scoreKeywords(skills types.SkillProfile, tables *refdata.Tables) (int, []string) {
	if len(tables.Keywords) == 0 {
		return 0, nil
	}

	detected := make(map[string]bool, len(skills.Hits))
	for _, h := range skills.Hits {
		detected[strings.ToLower(h.Name)] = true
	}

	matched := 0
	missing := []string{}
	for _, kw := range tables.Keywords {
		if detected[strings.ToLower(kw)] {
			matched++
		} else {
			missing = append(missing, kw)
		}
	}
	score := int(math.Round(float64(matched) / float64(len(tables.Keywords)) * 100))
	return score, missing
}

// scoreFormatting awards points for structural signals an applicant
// tracking system parses reliably: reachable contact details, bullet
// structure, and a length within bounds. Overlong documents are scored, not
// rejected, with the length points withheld.
func scoreFormatting(text types.ExtractedText, contact types.ContactInfo) int {
	score := 0
	if contact.Email != "" {
		score += 25
	}
	if contact.Phone != "" {
		score += 15
	}
	if contact.Name != "" {
		score += 10
	}
	if contact.LinkedInURL != "" {
		score += 10
	}
	if hasBullets(text.Raw) {
		score += 15
	}

	words := WordCount(text)
	switch {
	case words >= minResumeWords && words <= maxResumeWords:
		score += 25
	case words < minResumeWords:
		// Thin documents earn proportional credit
		score += int(math.Round(25 * float64(words) / float64(minResumeWords)))
	}
	return score
}

func hasBullets(raw string) bool {
	count := 0
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "•") || strings.HasPrefix(trimmed, "- ") ||
			strings.HasPrefix(trimmed, "* ") || strings.HasPrefix(trimmed, "·") {
			count++
			if count >= 3 {
				return true
			}
		}
	}
	return false
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
