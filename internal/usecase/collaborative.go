package usecase

import (
	"context"

	"talent-match/internal/domain/matching"
	"talent-match/internal/logger"
	"talent-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CollaborativeFilter struct {
	applications repository.ApplicationRepository
	logger       *zap.Logger
}

func NewCollaborativeFilter(applications repository.ApplicationRepository, log *zap.Logger) *CollaborativeFilter {
	return &CollaborativeFilter{applications: applications, logger: logger.Named(log, "collaborative")}
}

// Boost returns the similarity bonus earned by resembling the job's other applicants.
func (f *CollaborativeFilter) Boost(ctx context.Context, jobID, userID uuid.UUID, skills []string) float64 {
	if f == nil || f.applications == nil || len(skills) == 0 {
		return 0
	}
	others, err := f.applications.ApplicantSkills(ctx, jobID, userID, matching.CollaborativeSample)
	if err != nil {
		f.logger.Debug("collaborative lookup failed", zap.String(logger.FieldJobID, jobID.String()), zap.Error(err))
		return 0
	}
	return matching.CollaborativeBoost(skills, others, matching.MaxCollaborativeBoost)
}
