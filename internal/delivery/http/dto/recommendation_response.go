package dto

import (
	"talent-match/internal/domain/matching"

	"github.com/google/uuid"
)

type RecommendationResponse struct {
	JobID             uuid.UUID               `json:"job_id"`
	MatchScore        float64                 `json:"match_score"`
	MatchedSkills     []string                `json:"matched_skills"`
	MissingSkills     []string                `json:"missing_skills"`
	ExperienceYears   *int                    `json:"experience_years"`
	Rationale         string                  `json:"rationale"`
	FeatureImportance FeatureImportanceResult `json:"feature_importance"`
	Improvements      []string                `json:"improvements"`
	Personalized      bool                    `json:"personalized"`
}

type FeatureImportanceResult struct {
	Similarity float64 `json:"similarity"`
	Skills     float64 `json:"skills"`
	Experience float64 `json:"experience"`
}

func NewFeatureImportance(i matching.Importance) FeatureImportanceResult {
	return FeatureImportanceResult{
		Similarity: matching.RoundTenth(i.Similarity),
		Skills:     matching.RoundTenth(i.Skills),
		Experience: matching.RoundTenth(i.Experience),
	}
}

func NewRecommendationResponses(items []matching.MatchResult) []RecommendationResponse {
	out := make([]RecommendationResponse, 0, len(items))
	for _, it := range items {
		out = append(out, RecommendationResponse{
			JobID:             it.JobID,
			MatchScore:        it.Score,
			MatchedSkills:     nonNil(it.MatchedSkills),
			MissingSkills:     nonNil(it.MissingSkills),
			ExperienceYears:   it.ExperienceYears,
			Rationale:         it.Rationale,
			FeatureImportance: NewFeatureImportance(it.Importance),
			Improvements:      nonNil(it.Improvements),
			Personalized:      it.Personalized,
		})
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
