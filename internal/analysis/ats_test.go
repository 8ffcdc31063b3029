package analysis

import (
	"reflect"
	"strings"
	"testing"

	"internhunt/internal/refdata"
	"internhunt/internal/types"
)

// fullResume carries every canonical section, contact details, bullets, and
// enough body text to clear the minimum length bound.
var fullResume = "Jane Doe\n" +
	"jane@example.com | (555) 123-4567 | linkedin.com/in/janedoe\n\n" +
	"Summary\nBackend engineer focused on data platforms.\n\n" +
	"Experience\nAcme Corp\n" +
	"• Built python and sql pipelines processing data at scale\n" +
	"• Led git-based review workflow for a team of five\n" +
	"• Containerized services with docker\n\n" +
	"Education\nState University\n\n" +
	"Skills\npython sql git javascript excel communication teamwork leadership project management data analysis\n\n" +
	"Projects\nOpen source contributions\n" +
	strings.Repeat("relevant detail about delivered work and measurable outcomes ", 20)

func scoreFixture(t *testing.T, raw string) types.AtsScore {
	t.Helper()
	tables := refdata.Defaults()
	text := NormalizeText(raw)
	sections := DetectSections(text.Raw, tables)
	skills := ExtractSkills(text.Normalized, tables)
	contact := ExtractEntities(text.Raw, tables)
	return ScoreATS(text, sections, skills, contact, tables, DefaultWeights())
}

func TestScoreATSEmptyDocument(t *testing.T) {
	score := scoreFixture(t, "")
	if score.Overall != 0 || score.SectionScore != 0 || score.KeywordScore != 0 || score.FormattingScore != 0 {
		t.Errorf("empty document must score 0 everywhere: %+v", score)
	}
	if len(score.MissingKeywords) != len(refdata.Defaults().Keywords) {
		t.Errorf("empty document misses every reference keyword: %v", score.MissingKeywords)
	}
}

func TestScoreATSCompleteResume(t *testing.T) {
	score := scoreFixture(t, fullResume)

	if score.SectionScore != 100 {
		t.Errorf("SectionScore = %d, want 100", score.SectionScore)
	}
	if score.KeywordScore != 100 {
		t.Errorf("KeywordScore = %d, want 100 (missing: %v)", score.KeywordScore, score.MissingKeywords)
	}
	if score.FormattingScore != 100 {
		t.Errorf("FormattingScore = %d, want 100", score.FormattingScore)
	}
	if score.Overall != 100 {
		t.Errorf("Overall = %d, want 100", score.Overall)
	}
	if len(score.MissingKeywords) != 0 {
		t.Errorf("MissingKeywords = %v, want none", score.MissingKeywords)
	}
}

func TestScoreATSIsDeterministic(t *testing.T) {
	first := scoreFixture(t, fullResume)
	for i := 0; i < 5; i++ {
		if got := scoreFixture(t, fullResume); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differed: %+v vs %+v", i, got, first)
		}
	}
}

func TestScoreATSMissingKeywordsKeepReferenceOrder(t *testing.T) {
	// Only python and sql are present, so the remaining reference keywords
	// must appear in their reference order.
	score := scoreFixture(t, "Experience\n• Used python and sql daily\n"+
		strings.Repeat("more context ", 60))

	ref := refdata.Defaults().Keywords
	var want []string
	for _, kw := range ref {
		if kw != "Python" && kw != "SQL" {
			want = append(want, kw)
		}
	}
	if !reflect.DeepEqual(score.MissingKeywords, want) {
		t.Errorf("MissingKeywords = %v, want %v", score.MissingKeywords, want)
	}
}

func TestScoreATSOverlongDocumentPenalized(t *testing.T) {
	base := "jane@example.com\n555-123-4567\nJane Doe\nlinkedin.com/in/jane\n• a\n• b\n• c\n"
	inBounds := base + strings.Repeat("word ", 500)
	overlong := base + strings.Repeat("word ", 2000)

	within := scoreFixture(t, inBounds)
	over := scoreFixture(t, overlong)
	if over.FormattingScore >= within.FormattingScore {
		t.Errorf("overlong formatting %d should be below in-bounds %d",
			over.FormattingScore, within.FormattingScore)
	}
	if over.Overall == 0 {
		t.Error("overlong documents are penalized, not zeroed")
	}
}

func TestScoreATSSubScoresWithinRange(t *testing.T) {
	for _, raw := range []string{"", "short", fullResume, strings.Repeat("x ", 5000)} {
		score := scoreFixture(t, raw)
		for name, v := range map[string]int{
			"overall": score.Overall, "section": score.SectionScore,
			"keyword": score.KeywordScore, "formatting": score.FormattingScore,
		} {
			if v < 0 || v > 100 {
				t.Errorf("%s score %d out of range for %q…", name, v, raw[:min(20, len(raw))])
			}
		}
	}
}
