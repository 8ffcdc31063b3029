package analysis

import (
	"math/rand"
	"reflect"
	"testing"

	"internhunt/internal/refdata"
	"internhunt/internal/types"
)

func TestExtractSkills(t *testing.T) {
	tables := refdata.Defaults()
	text := NormalizeText("Built REST services in Go and Python, deployed with Docker and Kubernetes.")

	profile := ExtractSkills(text.Normalized, tables)
	for _, want := range []string{"Go", "Python", "Docker", "Kubernetes"} {
		if !profile.Has(want) {
			t.Errorf("expected skill %q in %v", want, profile.Names())
		}
	}
}

func TestSkillTokenBoundaries(t *testing.T) {
	tables := refdata.Defaults()

	tests := []struct {
		name    string
		text    string
		present []string
		absent  []string
	}{
		{
			name:    "java does not fire inside javascript",
			text:    "expert in javascript frameworks",
			present: []string{"JavaScript"},
			absent:  []string{"Java"},
		},
		{
			name:    "javascript does not fire on java",
			text:    "backend development in java",
			present: []string{"Java"},
			absent:  []string{"JavaScript"},
		},
		{
			name:    "punctuated tokens survive",
			text:    "shipped c++ and c# services with node.js and ci/cd pipelines",
			present: []string{"C++", "C#", "Node.js"},
		},
		{
			name:    "multiword synonym",
			text:    "applied machine learning to churn prediction",
			present: []string{"Machine Learning"},
		},
		{
			name:    "sentence-final period",
			text:    "we used node.js.",
			present: []string{"Node.js"},
		},
		{
			name:   "no partial multiword match",
			text:   "machine operator at a learning center",
			absent: []string{"Machine Learning"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := ExtractSkills(NormalizeText(tt.text).Normalized, tables)
			for _, p := range tt.present {
				if !profile.Has(p) {
					t.Errorf("expected %q detected in %q, got %v", p, tt.text, profile.Names())
				}
			}
			for _, a := range tt.absent {
				if profile.Has(a) {
					t.Errorf("did not expect %q detected in %q", a, tt.text)
				}
			}
		})
	}
}

func TestSkillConfidenceLevels(t *testing.T) {
	tables := refdata.Defaults()
	profile := ExtractSkills("worked with golang and python daily", tables)

	byName := make(map[string]types.SkillHit)
	for _, h := range profile.Hits {
		byName[h.Name] = h
	}

	if hit, ok := byName["Go"]; !ok || hit.Confidence != 0.9 || hit.MatchedTerm != "golang" {
		t.Errorf("synonym match should score 0.9: %+v", hit)
	}
	if hit, ok := byName["Python"]; !ok || hit.Confidence != 1.0 {
		t.Errorf("canonical match should score 1.0: %+v", hit)
	}
}

func TestSkillExtractionOrderIndependent(t *testing.T) {
	text := NormalizeText("python javascript react docker sql git figma communication").Normalized

	base := refdata.Defaults()
	reference := ExtractSkills(text, base)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := refdata.Defaults()
		rng.Shuffle(len(shuffled.Skills), func(a, b int) {
			shuffled.Skills[a], shuffled.Skills[b] = shuffled.Skills[b], shuffled.Skills[a]
		})
		got := ExtractSkills(text, shuffled)
		if !reflect.DeepEqual(got, reference) {
			t.Fatalf("shuffle %d changed the profile:\n got %v\nwant %v", i, got.Names(), reference.Names())
		}
	}
}

func TestSkillProfileNoDuplicates(t *testing.T) {
	// "react" and "reactjs" both map to React; the profile carries one hit
	profile := ExtractSkills("react reactjs react.js everywhere", refdata.Defaults())
	count := 0
	for _, h := range profile.Hits {
		if h.Name == "React" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("React appears %d times, want 1", count)
	}
}

func TestSkillsEmptyText(t *testing.T) {
	profile := ExtractSkills("", refdata.Defaults())
	if len(profile.Hits) != 0 {
		t.Errorf("empty text must yield an empty profile: %v", profile.Names())
	}
}
