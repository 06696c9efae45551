package matching

import (
	"fmt"
	"strings"

	"talent-match/internal/domain/insight"
)

type Explanation struct {
	Skills          SkillMatch
	RequiredSkills  int
	ExperienceYears *int
	Market          *insight.MarketInsight
	Importance      *Importance
}

// Rationale renders the bullet list shown next to a score.
func (e Explanation) Rationale() string {
	lines := make([]string, 0, 5)
	if e.RequiredSkills > 0 {
		lines = append(lines, fmt.Sprintf("%d/%d required skills", len(e.Skills.Matched), e.RequiredSkills))
	}
	if e.ExperienceYears != nil {
		lines = append(lines, fmt.Sprintf("%d years relevant experience (resume)", *e.ExperienceYears))
	}

	if e.Market != nil {
		if e.Market.SuccessRate != nil && *e.Market.SuccessRate != 0 {
			lines = append(lines, fmt.Sprintf("Market success rate for this role: %.1f%% (from %d profiles)", *e.Market.SuccessRate, e.Market.SampleSize))
		}
		if len(e.Market.Upskilling) > 0 {
			top := e.Market.Upskilling[0]
			lines = append(lines, fmt.Sprintf("Top upskilling: %s (%.0f%% success rate)", top.Skill, top.SuccessRate))
		}
	} else {
		lines = append(lines, "Market insights: not available")
	}

	if e.Importance != nil {
		lines = append(lines, fmt.Sprintf("Feature importance: similarity %.0f%%, skills %.0f%%, experience %.0f%%",
			e.Importance.Similarity, e.Importance.Skills, e.Importance.Experience))
	}

	if len(lines) == 0 {
		return "Matched because: resume similarity"
	}
	return "Matched because:\n- " + strings.Join(lines, "\n- ")
}

// Improvements lists what would raise the score: up to three missing skills, the experience
// gap and up to two upskilling tracks.
func (e Explanation) Improvements(candidateYears, requiredYears int) []string {
	out := make([]string, 0, 6)
	missing := e.Skills.Missing
	if len(missing) > 3 {
		missing = missing[:3]
	}
	out = append(out, missing...)

	if requiredYears > 0 && candidateYears < requiredYears {
		out = append(out, fmt.Sprintf("Gain %d more years experience", requiredYears-candidateYears))
	}

	if e.Market != nil {
		recs := e.Market.Upskilling
		if len(recs) > 2 {
			recs = recs[:2]
		}
		for _, r := range recs {
			out = append(out, fmt.Sprintf("%s (AI upskilling)", r.Skill))
		}
	}
	return out
}
