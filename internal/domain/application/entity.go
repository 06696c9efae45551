package application

import (
	"time"

	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/insight"
	"talent-match/internal/domain/matching"

	"github.com/google/uuid"
)

type Application struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	ApplicantID uuid.UUID
	// Applicant is nil when no profile could be resolved for the applicant.
	Applicant    *candidate.Profile
	ResumeRef    string
	AppliedAt    time.Time
	MatchScore   float64
	RankingNotes string
	Explanation  *Explanation
}

// Explanation is the structured payload persisted next to the ranking notes.
type Explanation struct {
	MatchedSkills   []string               `json:"matched_skills"`
	MissingSkills   []string               `json:"missing_skills"`
	ExperienceYears *int                   `json:"experience_years"`
	SimilarRole     bool                   `json:"similar_role"`
	Market          *insight.MarketInsight `json:"market_insights,omitempty"`
	Similarity      float64                `json:"similarity"`
	SkillScore      float64                `json:"skill_score"`
	ExperienceScore float64                `json:"experience_score"`
	Importance      matching.Importance    `json:"feature_importance"`
}
