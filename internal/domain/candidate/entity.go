package candidate

import (
	"strings"

	"github.com/google/uuid"
)

type Profile struct {
	UserID          uuid.UUID
	FullName        string
	Skills          []string
	YearsExperience int
	Education       string
	ResumeRef       string
	ResumeText      string
}

// NormalizeSkills trims and lowercases every entry, dropping blanks and duplicates.
// Order of first occurrence is preserved.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
