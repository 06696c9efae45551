package matching

import (
	"fmt"
	"strings"

	"talent-match/internal/domain/candidate"
)

const (
	strictSkillWeight      = 0.5
	strictExperienceWeight = 0.35
	strictEducationBonus   = 10.0
	strictResumeBonus      = 5.0
)

// StrictScore ranks an applicant from profile fields alone, for when no embedding model is
// available. A nil profile scores 0 with ReasonNoProfile.
func StrictScore(profile *candidate.Profile, requiredSkills []string, requiredYears int, hasResume bool) (float64, string) {
	if profile == nil {
		return 0, ReasonNoProfile
	}

	notes := make([]string, 0, 4)

	skill := SkillScore(profile.Skills, requiredSkills)
	score := skill * strictSkillWeight
	notes = append(notes, fmt.Sprintf("Skills: %.0f%%", skill))

	exp := ExperienceScore(profile.YearsExperience, requiredYears)
	gap := profile.YearsExperience - requiredYears
	switch {
	case gap >= 0:
		notes = append(notes, fmt.Sprintf("Exp: ✓ (%dy)", profile.YearsExperience))
	case gap >= -2:
		notes = append(notes, fmt.Sprintf("Exp: %dy (need %dy)", profile.YearsExperience, requiredYears))
	default:
		notes = append(notes, fmt.Sprintf("Exp: %dy below", -gap))
	}
	score += exp * strictExperienceWeight

	if strings.TrimSpace(profile.Education) != "" {
		score += strictEducationBonus
		notes = append(notes, "Edu: ✓")
	}
	if hasResume {
		score += strictResumeBonus
		notes = append(notes, "Resume: ✓")
	}

	return RoundTenth(ClampScore(score)), strings.Join(notes, " | ")
}
