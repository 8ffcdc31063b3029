package analysis

import (
	"fmt"
	"math"

	"internhunt/internal/errors"
	"internhunt/internal/refdata"
	"internhunt/internal/types"
)

// AlignRole compares the detected skills against the target role's reference
// profile. Matched and missing lists keep the reference's importance order.
// Returns UNKNOWN_ROLE when the role is not in the reference table; callers
// recover by falling back to the classifier's top category or omitting
// alignment.
func AlignRole(skills types.SkillProfile, targetRole string,
	tables *refdata.Tables) (*types.AlignmentResult, error) {

	profile, found := tables.Role(targetRole)
	if !found {
		return nil, errors.NewAnalysisError(errors.ErrCodeUnknownRole,
			fmt.Sprintf("unknown target role: %s", targetRole), nil).
			WithContext("known_roles", tables.RoleNames())
	}

	matched := []string{}
	missing := []string{}
	for _, skill := range profile.Skills {
		if skills.Has(skill) {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}

	percent := 0
	if len(profile.Skills) > 0 {
		percent = int(math.Round(float64(len(matched)) / float64(len(profile.Skills)) * 100))
	}
	if percent > 100 {
		percent = 100
	}

	return &types.AlignmentResult{
		TargetRole:       profile.Role,
		AlignmentPercent: percent,
		MatchedSkills:    matched,
		MissingSkills:    missing,
	}, nil
}
