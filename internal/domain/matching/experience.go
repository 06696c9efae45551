package matching

import (
	"regexp"
	"strconv"
)

// ExperienceScore grades the gap between candidate and required years.
// Meeting the requirement scores 100, up to two years short loses 25 per year, beyond that 0.
func ExperienceScore(candidateYears, requiredYears int) float64 {
	gap := candidateYears - requiredYears
	switch {
	case gap >= 0:
		return 100
	case gap >= -2:
		v := 50 + float64(gap)*25
		if v < 0 {
			return 0
		}
		return v
	default:
		return 0
	}
}

var yearsPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d{1,2})\+?\s*(?:years|yrs)\s+(?:of\s+)?experience`),
	regexp.MustCompile(`(?i)(\d{1,2})\+?\s*(?:years|yrs)`),
}

// InferYearsExperience returns the largest "N years" figure mentioned in the text, or nil.
func InferYearsExperience(text string) *int {
	if text == "" {
		return nil
	}
	best := -1
	for _, re := range yearsPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			v, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if v > best {
				best = v
			}
		}
	}
	if best < 0 {
		return nil
	}
	return &best
}
