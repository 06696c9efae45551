package matching

import "github.com/google/uuid"

const (
	ReasonUploadResume   = "upload a resume to enable AI matching"
	ReasonResumeRequired = "resume required"
	ReasonRankingFailed  = "ranking failed"
	ReasonNoProfile      = "No profile"
)

type MatchResult struct {
	JobID           uuid.UUID
	Score           float64
	MatchedSkills   []string
	MissingSkills   []string
	ExperienceYears *int
	Rationale       string
	Importance      Importance
	Improvements    []string
	Personalized    bool
}

// Unavailable is the result used when no AI signal exists for the pair.
func Unavailable(jobID uuid.UUID, reason string, personalized bool) MatchResult {
	return MatchResult{
		JobID:         jobID,
		Rationale:     reason,
		MatchedSkills: []string{},
		MissingSkills: []string{},
		Improvements:  []string{},
		Personalized:  personalized,
	}
}
