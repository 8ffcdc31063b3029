package types

// DocumentFormat identifies the declared format of an uploaded resume
type DocumentFormat string

const (
	FormatPDF  DocumentFormat = "pdf"
	FormatDOCX DocumentFormat = "docx"
)

// RawDocument represents an uploaded resume payload before extraction.
// The byte slice is never mutated by the pipeline.
type RawDocument struct {
	Data     []byte         `json:"-"`
	Format   DocumentFormat `json:"format"`
	Filename string         `json:"filename,omitempty"`
}

// Size returns the payload size in bytes
func (d RawDocument) Size() int64 {
	return int64(len(d.Data))
}

// ExtractedText holds the two views of a document's text, derived once per
// document: Raw keeps original casing and line structure for entity
// extraction, Normalized is the cleaned lowercase form everything else
// consumes.
type ExtractedText struct {
	Raw        string `json:"-"`
	Normalized string `json:"-"`
}

// ContactInfo holds the contact facts pulled from the resume. Every field is
// independently optional; an empty string means "not found", never an error.
type ContactInfo struct {
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	LinkedInURL string `json:"linkedinUrl,omitempty"`
}

// SkillCategory groups canonical skills into broad domains
type SkillCategory string

const (
	CategoryProgramming SkillCategory = "programming"
	CategoryFramework   SkillCategory = "framework"
	CategoryTool        SkillCategory = "tool"
	CategoryData        SkillCategory = "data"
	CategoryDesign      SkillCategory = "design"
	CategorySoftSkill   SkillCategory = "soft-skill"
)

// SkillHit is one detected skill. Confidence is 1.0 for a canonical-name
// match and 0.9 for a synonym match; MatchedTerm records the surface form
// that actually occurred in the text.
type SkillHit struct {
	Name        string        `json:"name"`
	Category    SkillCategory `json:"category"`
	Confidence  float64       `json:"confidence"`
	MatchedTerm string        `json:"matchedTerm"`
}

// SkillProfile is a duplicate-free set of skill hits keyed by canonical name,
// kept in deterministic (name-sorted) order.
type SkillProfile struct {
	Hits []SkillHit `json:"hits"`
}

// Names returns the canonical names of all detected skills, in profile order
func (p SkillProfile) Names() []string {
	names := make([]string, len(p.Hits))
	for i, h := range p.Hits {
		names[i] = h.Name
	}
	return names
}

// Has reports whether the profile contains the canonical skill name
func (p SkillProfile) Has(name string) bool {
	for _, h := range p.Hits {
		if h.Name == name {
			return true
		}
	}
	return false
}

// SectionReport maps each canonical section to its detected presence.
// Completeness is presentCount / total canonical sections and always lies in
// [0, 1].
type SectionReport struct {
	Present      map[string]bool `json:"present"`
	Completeness float64         `json:"completeness"`
}

// CategoryScore pairs a role category with its predicted probability
type CategoryScore struct {
	Category    string  `json:"category"`
	Probability float64 `json:"probability"`
}

// ClassificationResult is the role classifier's output. Available is false
// when no usable model artifact is loaded; in that state the category fields
// are empty and consumers must proceed without a prediction.
type ClassificationResult struct {
	Available     bool            `json:"available"`
	TopCategory   string          `json:"topCategory,omitempty"`
	TopCategories []CategoryScore `json:"topCategories,omitempty"`
	ModelVersion  string          `json:"modelVersion,omitempty"`
}

// AtsScore is the deterministic ATS-compatibility breakdown. Overall is a
// fixed weighted combination of the three sub-scores; identical inputs always
// produce identical values.
type AtsScore struct {
	Overall         int      `json:"overall"`
	SectionScore    int      `json:"sectionScore"`
	KeywordScore    int      `json:"keywordScore"`
	FormattingScore int      `json:"formattingScore"`
	MissingKeywords []string `json:"missingKeywords"`
}

// Suggestion categories
const (
	SuggestionMissingSection = "missing-section"
	SuggestionMissingContact = "missing-contact"
	SuggestionKeywordGap     = "keyword-gap"
	SuggestionFormatting     = "formatting"
)

// Suggestion is one ranked improvement action. Ranks are contiguous starting
// at 1. Template, when set, is boilerplate the user can paste in directly.
type Suggestion struct {
	Rank     int    `json:"rank"`
	Category string `json:"category"`
	Text     string `json:"text"`
	Template string `json:"templateText,omitempty"`
}

// AlignmentResult compares the detected skills against a target role's
// reference profile. MissingSkills is ordered by importance to the role.
type AlignmentResult struct {
	TargetRole       string   `json:"targetRole"`
	AlignmentPercent int      `json:"alignmentPercent"`
	MatchedSkills    []string `json:"matchedSkills"`
	MissingSkills    []string `json:"missingSkills"`
}

// AnalysisResult is the aggregate produced once per uploaded document. It is
// immutable after construction; re-analysis builds a new value. Alignment is
// nil when no usable target role exists (never fabricated).
type AnalysisResult struct {
	ID             string               `json:"id"`
	Filename       string               `json:"filename,omitempty"`
	Format         DocumentFormat       `json:"format"`
	WordCount      int                  `json:"wordCount"`
	Contact        ContactInfo          `json:"contact"`
	Sections       SectionReport        `json:"sections"`
	Skills         SkillProfile         `json:"skills"`
	Classification ClassificationResult `json:"classification"`
	Ats            AtsScore             `json:"ats"`
	Suggestions    []Suggestion         `json:"suggestions"`
	Alignment      *AlignmentResult     `json:"alignment,omitempty"`
}
