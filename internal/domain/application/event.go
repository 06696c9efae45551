package application

import (
	"time"

	"github.com/google/uuid"
)

const EventRankingCompleted = "ranking.completed"

// RankingCompleted announces that the applications of a job have fresh scores.
type RankingCompleted struct {
	Type        string    `json:"type"`
	JobID       uuid.UUID `json:"job_id"`
	RecruiterID uuid.UUID `json:"recruiter_id"`
	Ranked      int       `json:"ranked"`
	TopScore    float64   `json:"top_score"`
	AIRanked    bool      `json:"ai_ranked"`
	OccurredAt  time.Time `json:"occurred_at"`
}
