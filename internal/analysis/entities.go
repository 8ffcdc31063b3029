package analysis

import (
	"regexp"
	"strings"

	"internhunt/internal/refdata"
	"internhunt/internal/types"
)

var (
	emailPattern    = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	linkedInPattern = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/[A-Za-z0-9\-_/%.]+`)
	// phoneCandidate over-matches; digit count is checked separately
	phoneCandidate = regexp.MustCompile(`[+(]?\d[\d\s().\-]{5,18}\d`)
	urlToken       = regexp.MustCompile(`(?i)https?://|www\.`)
)

// ExtractEntities pulls contact facts out of the raw text view. First match
// wins for each field; a field with no match stays empty, which is not an
// error.
func ExtractEntities(raw string, tables *refdata.Tables) types.ContactInfo {
	info := types.ContactInfo{
		Email:       emailPattern.FindString(raw),
		LinkedInURL: linkedInPattern.FindString(raw),
		Phone:       findPhone(raw),
	}
	info.Name = findName(raw, tables)
	return info
}

// findPhone accepts the first separator-tolerant digit run carrying 7 to 15
// digits. Shorter runs are usually dates or zip codes, longer ones IDs.
func findPhone(raw string) string {
	for _, candidate := range phoneCandidate.FindAllString(raw, -1) {
		digits := 0
		for _, r := range candidate {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits >= 7 && digits <= 15 {
			return strings.TrimSpace(candidate)
		}
	}
	return ""
}

// findName takes the first non-empty line that is not a section heading and
// carries no email, phone, or URL token.
func findName(raw string, tables *refdata.Tables) string {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if emailPattern.MatchString(line) || urlToken.MatchString(line) || findPhone(line) != "" {
			continue
		}
		if isHeading(line, tables) {
			continue
		}
		return line
	}
	return ""
}
