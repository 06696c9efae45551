package matching

import (
	"strings"

	"talent-match/internal/domain/candidate"
)

type SkillMatch struct {
	Matched []string
	Missing []string
	Score   float64
}

// MatchSkills compares required skills against the candidate's skill set.
// Only exact matches after trimming and lowercasing count. No requirements scores 0.
func MatchSkills(candidateSkills, required []string) SkillMatch {
	have := make(map[string]struct{}, len(candidateSkills))
	for _, s := range candidate.NormalizeSkills(candidateSkills) {
		have[s] = struct{}{}
	}

	res := SkillMatch{Matched: make([]string, 0), Missing: make([]string, 0)}
	total := 0
	for _, r := range required {
		norm := strings.ToLower(strings.TrimSpace(r))
		if norm == "" {
			continue
		}
		total++
		if _, ok := have[norm]; ok {
			res.Matched = append(res.Matched, strings.TrimSpace(r))
			continue
		}
		res.Missing = append(res.Missing, strings.TrimSpace(r))
	}
	if total == 0 {
		return res
	}
	res.Score = float64(len(res.Matched)) / float64(total) * 100
	return res
}

func SkillScore(candidateSkills, required []string) float64 {
	return MatchSkills(candidateSkills, required).Score
}

// SkillsInText returns the required skills that appear in the text, case-insensitively.
// Used when an applicant has no resolved profile to read skills from.
func SkillsInText(text string, required []string) []string {
	lower := strings.ToLower(text)
	out := make([]string, 0)
	if strings.TrimSpace(lower) == "" {
		return out
	}
	for _, r := range required {
		norm := strings.ToLower(strings.TrimSpace(r))
		if norm == "" {
			continue
		}
		if strings.Contains(lower, norm) {
			out = append(out, strings.TrimSpace(r))
		}
	}
	return out
}

// Jaccard is |a∩b| / |a∪b| over normalized skill sets.
func Jaccard(a, b []string) float64 {
	as := candidate.NormalizeSkills(a)
	bs := candidate.NormalizeSkills(b)
	if len(as) == 0 && len(bs) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(as))
	for _, s := range as {
		set[s] = struct{}{}
	}
	inter := 0
	for _, s := range bs {
		if _, ok := set[s]; ok {
			inter++
		}
	}
	return float64(inter) / float64(len(as)+len(bs)-inter)
}
