package analysis

import (
	"strings"

	"internhunt/internal/refdata"
	"internhunt/internal/types"
)

// headingWordLimit filters out prose lines; real section headings are short
const headingWordLimit = 6

// DetectSections scans the raw text line by line for canonical section
// headings. A section is marked present on its first matching heading and
// duplicates are ignored. Completeness is presentCount over the fixed
// canonical section count, so it is stable for a given lexicon version.
func DetectSections(raw string, tables *refdata.Tables) types.SectionReport {
	present := make(map[string]bool, len(tables.Sections))
	for _, s := range tables.Sections {
		present[s.Name] = false
	}

	count := 0
	for _, line := range strings.Split(raw, "\n") {
		name, ok := matchHeading(line, tables)
		if !ok || present[name] {
			continue
		}
		present[name] = true
		count++
		if count == len(tables.Sections) {
			break
		}
	}

	report := types.SectionReport{Present: present}
	if len(tables.Sections) > 0 {
		report.Completeness = float64(count) / float64(len(tables.Sections))
	}
	return report
}

// matchHeading reports which canonical section a line's heading belongs to.
// The line must be short enough to be a heading and must equal a synonym or
// start with one at a token boundary, so "experienced engineer" does not
// count as an Experience heading.
func matchHeading(line string, tables *refdata.Tables) (string, bool) {
	h := normalize(line)
	h = strings.TrimSuffix(h, ":")
	if h == "" || strings.Count(h, " ") >= headingWordLimit {
		return "", false
	}

	for _, section := range tables.Sections {
		for _, syn := range section.Synonyms {
			if h == syn {
				return section.Name, true
			}
			if strings.HasPrefix(h, syn+" ") || strings.HasPrefix(h, syn+":") {
				return section.Name, true
			}
		}
	}
	return "", false
}

// isHeading reports whether the line reads as any known section heading
func isHeading(line string, tables *refdata.Tables) bool {
	_, ok := matchHeading(line, tables)
	return ok
}
