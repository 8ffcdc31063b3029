package analysis

import (
	"testing"

	"internhunt/internal/refdata"
)

const sampleResume = `Jane Doe
jane.doe@example.com | +1 (555) 123-4567
https://www.linkedin.com/in/janedoe

EXPERIENCE
Acme Corp, Software Engineer
`

func TestExtractEntities(t *testing.T) {
	tables := refdata.Defaults()
	info := ExtractEntities(sampleResume, tables)

	if info.Name != "Jane Doe" {
		t.Errorf("Name = %q, want Jane Doe", info.Name)
	}
	if info.Email != "jane.doe@example.com" {
		t.Errorf("Email = %q", info.Email)
	}
	if info.Phone != "+1 (555) 123-4567" {
		t.Errorf("Phone = %q", info.Phone)
	}
	if info.LinkedInURL != "https://www.linkedin.com/in/janedoe" {
		t.Errorf("LinkedInURL = %q", info.LinkedInURL)
	}
}

func TestExtractEntitiesFirstMatchWins(t *testing.T) {
	raw := "first@example.com\nsecond@example.com"
	info := ExtractEntities(raw, refdata.Defaults())
	if info.Email != "first@example.com" {
		t.Errorf("Email = %q, want the first occurrence", info.Email)
	}
}

func TestExtractEntitiesAbsentFields(t *testing.T) {
	info := ExtractEntities("EXPERIENCE\nDid some things", refdata.Defaults())
	if info.Name != "Did some things" {
		t.Errorf("Name = %q, headings are skipped and the next line wins", info.Name)
	}
	if info.Email != "" || info.Phone != "" || info.LinkedInURL != "" {
		t.Errorf("absent fields must stay empty: %+v", info)
	}
}

func TestExtractEntitiesEmptyText(t *testing.T) {
	info := ExtractEntities("", refdata.Defaults())
	if info.Name != "" || info.Email != "" || info.Phone != "" || info.LinkedInURL != "" {
		t.Errorf("empty text must yield empty contact info: %+v", info)
	}
}

func TestPhoneDigitBounds(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"seven digits", "call 555-0142 x", "555-0142"},
		{"fifteen digits", "+123 456 789 012 345", "+123 456 789 012 345"},
		{"too short", "room 12-34", ""},
		{"too long is rejected", "id 12345678901234567890", ""},
		{"separators tolerated", "(020) 7946 0958", "(020) 7946 0958"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findPhone(tt.raw); got != tt.want {
				t.Errorf("findPhone(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNameSkipsContactLines(t *testing.T) {
	raw := "jane@example.com\nlinkedin.com profile: www.linkedin.com/in/jane\nJane Doe"
	info := ExtractEntities(raw, refdata.Defaults())
	if info.Name != "Jane Doe" {
		t.Errorf("Name = %q, lines with contact tokens must be skipped", info.Name)
	}
}
