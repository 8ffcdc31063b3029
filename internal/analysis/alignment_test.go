package analysis

import (
	"reflect"
	"testing"

	"internhunt/internal/errors"
	"internhunt/internal/refdata"
)

func TestAlignRole(t *testing.T) {
	tables := refdata.Defaults()
	profile := ExtractSkills("python pandas sql communication react", tables)

	result, err := AlignRole(profile, "Data Science", tables)
	if err != nil {
		t.Fatalf("AlignRole failed: %v", err)
	}

	// Data Science references 10 skills; 4 are detected
	wantMatched := []string{"Python", "SQL", "Pandas", "Communication"}
	if !reflect.DeepEqual(result.MatchedSkills, wantMatched) {
		t.Errorf("MatchedSkills = %v, want %v (reference order)", result.MatchedSkills, wantMatched)
	}
	if result.AlignmentPercent != 40 {
		t.Errorf("AlignmentPercent = %d, want 40", result.AlignmentPercent)
	}
	if result.TargetRole != "Data Science" {
		t.Errorf("TargetRole = %q", result.TargetRole)
	}

	wantMissing := []string{"Machine Learning", "NumPy", "Data Analysis", "TensorFlow", "PyTorch", "Excel"}
	if !reflect.DeepEqual(result.MissingSkills, wantMissing) {
		t.Errorf("MissingSkills = %v, want %v (importance order)", result.MissingSkills, wantMissing)
	}
}

func TestAlignRoleCaseInsensitiveAndCanonicalized(t *testing.T) {
	tables := refdata.Defaults()
	profile := ExtractSkills("figma prototyping", tables)

	result, err := AlignRole(profile, "ui/ux design", tables)
	if err != nil {
		t.Fatalf("AlignRole failed: %v", err)
	}
	if result.TargetRole != "UI/UX Design" {
		t.Errorf("TargetRole = %q, want the canonical casing", result.TargetRole)
	}
}

func TestAlignRoleUnknown(t *testing.T) {
	tables := refdata.Defaults()
	_, err := AlignRole(ExtractSkills("python", tables), "Underwater Basket Weaving", tables)
	if !errors.HasCode(err, errors.ErrCodeUnknownRole) {
		t.Errorf("expected UNKNOWN_ROLE, got %v", err)
	}
}

func TestAlignRoleNoSkillsDetected(t *testing.T) {
	tables := refdata.Defaults()
	result, err := AlignRole(ExtractSkills("", tables), "Web Development", tables)
	if err != nil {
		t.Fatalf("AlignRole failed: %v", err)
	}
	if result.AlignmentPercent != 0 {
		t.Errorf("AlignmentPercent = %d, want 0", result.AlignmentPercent)
	}
	if len(result.MatchedSkills) != 0 {
		t.Errorf("MatchedSkills = %v, want empty", result.MatchedSkills)
	}
	if len(result.MissingSkills) != len(tables.Roles[1].Skills) {
		t.Errorf("every reference skill is missing: %v", result.MissingSkills)
	}
}

func TestAlignPercentBounds(t *testing.T) {
	tables := refdata.Defaults()
	// Every iOS Development reference skill present
	profile := ExtractSkills("swift ios git sql teamwork communication", tables)
	result, err := AlignRole(profile, "iOS Development", tables)
	if err != nil {
		t.Fatal(err)
	}
	if result.AlignmentPercent != 100 {
		t.Errorf("AlignmentPercent = %d, want 100", result.AlignmentPercent)
	}
}
