package matching

import (
	"testing"

	"talent-match/internal/domain/candidate"
)

func TestStrictScore(t *testing.T) {
	cases := []struct {
		name      string
		profile   *candidate.Profile
		required  []string
		years     int
		hasResume bool
		score     float64
		notes     string
	}{
		{
			name:    "no profile",
			profile: nil,
			score:   0,
			notes:   ReasonNoProfile,
		},
		{
			name:      "full match",
			profile:   &candidate.Profile{Skills: []string{"go", "sql"}, YearsExperience: 5, Education: "BSc"},
			required:  []string{"Go", "SQL"},
			years:     3,
			hasResume: true,
			score:     100,
			notes:     "Skills: 100% | Exp: ✓ (5y) | Edu: ✓ | Resume: ✓",
		},
		{
			name:     "partial skills and short experience",
			profile:  &candidate.Profile{Skills: []string{"python", "sql"}, YearsExperience: 3},
			required: []string{"Python", "SQL", "Docker"},
			years:    4,
			score:    42.1,
			notes:    "Skills: 67% | Exp: 3y (need 4y)",
		},
		{
			name:     "far below experience",
			profile:  &candidate.Profile{YearsExperience: 1},
			required: []string{"Go"},
			years:    5,
			score:    0,
			notes:    "Skills: 0% | Exp: 4y below",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, notes := StrictScore(tc.profile, tc.required, tc.years, tc.hasResume)
			if score != tc.score {
				t.Fatalf("score = %v, want %v", score, tc.score)
			}
			if notes != tc.notes {
				t.Fatalf("notes = %q, want %q", notes, tc.notes)
			}
		})
	}
}
