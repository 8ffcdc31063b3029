package formatters

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"internhunt/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "AnalysisResult", &AnalysisTextFormatter{})
	registry.RegisterFormatter("markdown", "AnalysisResult", &AnalysisMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.AnalysisResult, *types.AnalysisResult:
		return "AnalysisResult"
	default:
		return "any"
	}
}

func asAnalysisResult(data any) (types.AnalysisResult, bool) {
	switch v := data.(type) {
	case types.AnalysisResult:
		return v, true
	case *types.AnalysisResult:
		return *v, true
	default:
		return types.AnalysisResult{}, false
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// AnalysisTextFormatter renders an analysis result for terminal output
type AnalysisTextFormatter struct{}

func (atf *AnalysisTextFormatter) Format(data any) (string, error) {
	result, ok := asAnalysisResult(data)
	if !ok {
		return "", fmt.Errorf("expected AnalysisResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RESUME ANALYSIS ===\n\n")
	if result.Filename != "" {
		output.WriteString(fmt.Sprintf("File: %s\n", result.Filename))
	}
	output.WriteString(fmt.Sprintf("Words: %d\n\n", result.WordCount))

	output.WriteString("=== CONTACT ===\n")
	writeContactLine(&output, "Name", result.Contact.Name)
	writeContactLine(&output, "Email", result.Contact.Email)
	writeContactLine(&output, "Phone", result.Contact.Phone)
	writeContactLine(&output, "LinkedIn", result.Contact.LinkedInURL)
	output.WriteString("\n")

	output.WriteString("=== SECTIONS ===\n")
	output.WriteString(fmt.Sprintf("Completeness: %.0f%%\n", result.Sections.Completeness*100))
	for _, name := range sortedSectionNames(result.Sections.Present) {
		marker := "missing"
		if result.Sections.Present[name] {
			marker = "present"
		}
		output.WriteString(fmt.Sprintf("- %s: %s\n", name, marker))
	}
	output.WriteString("\n")

	output.WriteString("=== SKILLS ===\n")
	if len(result.Skills.Hits) == 0 {
		output.WriteString("No recognized skills detected.\n")
	}
	for _, hit := range result.Skills.Hits {
		output.WriteString(fmt.Sprintf("- %s (%s)\n", hit.Name, hit.Category))
	}
	output.WriteString("\n")

	if result.Classification.Available {
		output.WriteString("=== PREDICTED ROLE ===\n")
		for _, cs := range result.Classification.TopCategories {
			output.WriteString(fmt.Sprintf("- %s: %.1f%%\n", cs.Category, cs.Probability*100))
		}
		output.WriteString("\n")
	}

	output.WriteString("=== ATS SCORE ===\n")
	output.WriteString(fmt.Sprintf("Overall: %d/100\n", result.Ats.Overall))
	output.WriteString(fmt.Sprintf("Sections: %d/100\n", result.Ats.SectionScore))
	output.WriteString(fmt.Sprintf("Keywords: %d/100\n", result.Ats.KeywordScore))
	output.WriteString(fmt.Sprintf("Formatting: %d/100\n", result.Ats.FormattingScore))
	if len(result.Ats.MissingKeywords) > 0 {
		output.WriteString(fmt.Sprintf("Missing keywords: %s\n", strings.Join(result.Ats.MissingKeywords, ", ")))
	}
	output.WriteString("\n")

	if len(result.Suggestions) > 0 {
		output.WriteString("=== SUGGESTIONS ===\n")
		for _, s := range result.Suggestions {
			output.WriteString(fmt.Sprintf("%d. %s\n", s.Rank, s.Text))
		}
		output.WriteString("\n")
	}

	if result.Alignment != nil {
		output.WriteString("=== ROLE ALIGNMENT ===\n")
		output.WriteString(fmt.Sprintf("Target role: %s\n", result.Alignment.TargetRole))
		output.WriteString(fmt.Sprintf("Alignment: %d%%\n", result.Alignment.AlignmentPercent))
		if len(result.Alignment.MatchedSkills) > 0 {
			output.WriteString(fmt.Sprintf("Matched: %s\n", strings.Join(result.Alignment.MatchedSkills, ", ")))
		}
		if len(result.Alignment.MissingSkills) > 0 {
			output.WriteString(fmt.Sprintf("Missing: %s\n", strings.Join(result.Alignment.MissingSkills, ", ")))
		}
	}

	return output.String(), nil
}

func (atf *AnalysisTextFormatter) SupportedType() string {
	return "AnalysisResult"
}

// AnalysisMarkdownFormatter renders an analysis result as markdown
type AnalysisMarkdownFormatter struct{}

func (amf *AnalysisMarkdownFormatter) Format(data any) (string, error) {
	result, ok := asAnalysisResult(data)
	if !ok {
		return "", fmt.Errorf("expected AnalysisResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Resume Analysis\n\n")
	if result.Filename != "" {
		output.WriteString(fmt.Sprintf("**File:** %s\n\n", result.Filename))
	}
	output.WriteString(fmt.Sprintf("**Words:** %d\n\n", result.WordCount))

	output.WriteString("## Contact\n\n")
	output.WriteString(fmt.Sprintf("- **Name:** %s\n", orDash(result.Contact.Name)))
	output.WriteString(fmt.Sprintf("- **Email:** %s\n", orDash(result.Contact.Email)))
	output.WriteString(fmt.Sprintf("- **Phone:** %s\n", orDash(result.Contact.Phone)))
	output.WriteString(fmt.Sprintf("- **LinkedIn:** %s\n\n", orDash(result.Contact.LinkedInURL)))

	output.WriteString("## Sections\n\n")
	output.WriteString(fmt.Sprintf("**Completeness:** %.0f%%\n\n", result.Sections.Completeness*100))
	for _, name := range sortedSectionNames(result.Sections.Present) {
		mark := "✗"
		if result.Sections.Present[name] {
			mark = "✓"
		}
		output.WriteString(fmt.Sprintf("- %s %s\n", mark, name))
	}
	output.WriteString("\n")

	output.WriteString("## Skills\n\n")
	if len(result.Skills.Hits) == 0 {
		output.WriteString("No recognized skills detected.\n")
	}
	for _, hit := range result.Skills.Hits {
		output.WriteString(fmt.Sprintf("- **%s** (%s)\n", hit.Name, hit.Category))
	}
	output.WriteString("\n")

	if result.Classification.Available {
		output.WriteString("## Predicted Role\n\n")
		for _, cs := range result.Classification.TopCategories {
			output.WriteString(fmt.Sprintf("- %s: %.1f%%\n", cs.Category, cs.Probability*100))
		}
		output.WriteString("\n")
	}

	output.WriteString("## ATS Score\n\n")
	output.WriteString(fmt.Sprintf("**Overall:** %d/100\n\n", result.Ats.Overall))
	output.WriteString(fmt.Sprintf("- Sections: %d/100\n", result.Ats.SectionScore))
	output.WriteString(fmt.Sprintf("- Keywords: %d/100\n", result.Ats.KeywordScore))
	output.WriteString(fmt.Sprintf("- Formatting: %d/100\n\n", result.Ats.FormattingScore))
	if len(result.Ats.MissingKeywords) > 0 {
		output.WriteString(fmt.Sprintf("**Missing keywords:** %s\n\n", strings.Join(result.Ats.MissingKeywords, ", ")))
	}

	if len(result.Suggestions) > 0 {
		output.WriteString("## Suggestions\n\n")
		for _, s := range result.Suggestions {
			output.WriteString(fmt.Sprintf("%d. %s\n", s.Rank, s.Text))
			if s.Template != "" {
				output.WriteString("\n```\n")
				output.WriteString(s.Template)
				output.WriteString("\n```\n\n")
			}
		}
		output.WriteString("\n")
	}

	if result.Alignment != nil {
		output.WriteString("## Role Alignment\n\n")
		output.WriteString(fmt.Sprintf("**Target role:** %s\n\n", result.Alignment.TargetRole))
		output.WriteString(fmt.Sprintf("**Alignment:** %d%%\n\n", result.Alignment.AlignmentPercent))
		if len(result.Alignment.MatchedSkills) > 0 {
			output.WriteString(fmt.Sprintf("**Matched:** %s\n\n", strings.Join(result.Alignment.MatchedSkills, ", ")))
		}
		if len(result.Alignment.MissingSkills) > 0 {
			output.WriteString(fmt.Sprintf("**Missing:** %s\n", strings.Join(result.Alignment.MissingSkills, ", ")))
		}
	}

	return output.String(), nil
}

func (amf *AnalysisMarkdownFormatter) SupportedType() string {
	return "AnalysisResult"
}

func writeContactLine(output *strings.Builder, label, value string) {
	output.WriteString(fmt.Sprintf("%s: %s\n", label, orDash(value)))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func sortedSectionNames(present map[string]bool) []string {
	names := make([]string, 0, len(present))
	for name := range present {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
