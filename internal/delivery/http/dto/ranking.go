package dto

import (
	"talent-match/internal/domain/application"

	"github.com/google/uuid"
)

type RankApplicationsRequest struct {
	JobDescription string `json:"job_description"`
}

type RankedApplicationResponse struct {
	ApplicationID uuid.UUID                `json:"application_id"`
	ApplicantID   uuid.UUID                `json:"applicant_id"`
	ApplicantName string                   `json:"applicant_name,omitempty"`
	MatchScore    float64                  `json:"match_score"`
	RankingNotes  string                   `json:"ranking_notes"`
	Explanation   *application.Explanation `json:"explanation,omitempty"`
}

func NewRankedApplicationResponses(apps []application.Application) []RankedApplicationResponse {
	out := make([]RankedApplicationResponse, 0, len(apps))
	for _, a := range apps {
		r := RankedApplicationResponse{
			ApplicationID: a.ID,
			ApplicantID:   a.ApplicantID,
			MatchScore:    a.MatchScore,
			RankingNotes:  a.RankingNotes,
			Explanation:   a.Explanation,
		}
		if a.Applicant != nil {
			r.ApplicantName = a.Applicant.FullName
		}
		out = append(out, r)
	}
	return out
}
