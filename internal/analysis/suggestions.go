package analysis

import (
	"fmt"
	"strings"

	"internhunt/internal/types"
)

// DefaultMaxSuggestions caps the ranked list
const DefaultMaxSuggestions = 5

// sectionPriority orders missing-section suggestions by how much weight
// recruiters and tracking systems give each section.
var sectionPriority = []string{"Experience", "Skills", "Education", "Summary", "Projects"}

var sectionTemplates = map[string]string{
	"Experience": "Experience\nCompany Name | Role | Dates\n• Accomplishment with measurable impact\n• Responsibility relevant to the target role",
	"Skills":     "Skills\n• Languages: \n• Frameworks: \n• Tools: ",
	"Education":  "Education\nInstitution | Degree | Graduation year",
	"Summary":    "Summary\nOne or two sentences stating your focus and strongest qualification.",
	"Projects":   "Projects\nProject Name | Technologies used\n• What it does and what you contributed",
}

// BuildSuggestions turns detected gaps into a ranked improvement list. The
// rule order is fixed: missing core sections, missing contact fields,
// keyword gaps, then formatting. Output is truncated to max entries with
// contiguous ranks starting at 1, and identical input always yields the
// identical list.
func BuildSuggestions(sections types.SectionReport, contact types.ContactInfo,
	ats types.AtsScore, text types.ExtractedText, max int) []types.Suggestion {

	if max <= 0 {
		max = DefaultMaxSuggestions
	}

	var out []types.Suggestion
	add := func(category, text, template string) {
		if len(out) < max {
			out = append(out, types.Suggestion{
				Rank:     len(out) + 1,
				Category: category,
				Text:     text,
				Template: template,
			})
		}
	}

	for _, name := range sectionPriority {
		if present, known := sections.Present[name]; known && !present {
			add(types.SuggestionMissingSection,
				fmt.Sprintf("Add a %s section; applicant tracking systems look for it explicitly.", name),
				sectionTemplates[name])
		}
	}

	if contact.Email == "" {
		add(types.SuggestionMissingContact,
			"Add an email address near the top so recruiters can reach you.", "")
	}
	if contact.Phone == "" {
		add(types.SuggestionMissingContact,
			"Add a phone number to your contact details.", "")
	}

	if len(ats.MissingKeywords) > 0 {
		preview := ats.MissingKeywords
		if len(preview) > 5 {
			preview = preview[:5]
		}
		add(types.SuggestionKeywordGap,
			fmt.Sprintf("Work these in-demand keywords into your experience and skills: %s.",
				strings.Join(preview, ", ")), "")
	}

	if !hasBullets(text.Raw) {
		add(types.SuggestionFormatting,
			"Use bullet points for accomplishments; dense paragraphs parse poorly.", "")
	}
	if words := WordCount(text); words > maxResumeWords {
		add(types.SuggestionFormatting,
			"Trim the resume; content beyond roughly two pages dilutes your strongest points.", "")
	} else if words > 0 && words < minResumeWords {
		add(types.SuggestionFormatting,
			"Expand your experience descriptions; the resume reads as too thin.", "")
	}

	return out
}
