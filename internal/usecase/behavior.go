package usecase

import (
	"context"
	"time"

	"talent-match/internal/domain/interaction"
	"talent-match/internal/domain/matching"
	"talent-match/internal/embedding"
	"talent-match/internal/logger"
	"talent-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type behaviorSignal struct {
	typ        interaction.Type
	limit      int
	weight     float64
	minSeconds int
	byDuration bool
}

var behaviorSignals = []behaviorSignal{
	{typ: interaction.TypeApplied, limit: matching.AppliedLimit, weight: matching.AppliedWeight},
	{typ: interaction.TypeRejected, limit: matching.RejectedLimit, weight: matching.RejectedWeight},
	{typ: interaction.TypeSaved, limit: matching.SavedLimit, weight: matching.SavedWeight},
	{typ: interaction.TypeViewed, limit: matching.ViewedLimit, minSeconds: matching.MinViewSeconds, byDuration: true},
}

// BehaviorAggregator folds a candidate's recent interactions into their resume embedding.
type BehaviorAggregator struct {
	interactions repository.InteractionRepository
	jobs         repository.JobRepository
	encoder      embedding.Encoder
	logger       *zap.Logger
	now          func() time.Time
}

func NewBehaviorAggregator(interactions repository.InteractionRepository, jobs repository.JobRepository, encoder embedding.Encoder, log *zap.Logger) *BehaviorAggregator {
	return &BehaviorAggregator{
		interactions: interactions,
		jobs:         jobs,
		encoder:      encoder,
		logger:       logger.Named(log, "behavior"),
		now:          time.Now,
	}
}

// PreferenceVector returns base adjusted by the user's behavior. Any failure along the way
// falls back to base.
func (b *BehaviorAggregator) PreferenceVector(ctx context.Context, userID uuid.UUID, base []float32) []float32 {
	if len(base) == 0 {
		return base
	}
	log := logger.WithFields(b.logger, zap.String(logger.FieldUserID, userID.String()))
	since := b.now().Add(-matching.BehaviorWindow)

	type pending struct {
		jobID  uuid.UUID
		weight float64
	}
	signals := make([]pending, 0)
	for _, s := range behaviorSignals {
		events, err := b.interactions.Recent(ctx, repository.RecentQuery{
			UserID:      userID,
			Type:        s.typ,
			Since:       since,
			Limit:       s.limit,
			MinDuration: s.minSeconds,
			ByDuration:  s.byDuration,
		})
		if err != nil {
			log.Warn("behavior signal skipped", zap.String("type", string(s.typ)), zap.Error(err))
			continue
		}
		for _, e := range events {
			w := s.weight
			if s.typ == interaction.TypeViewed {
				w = matching.ViewWeight(e.DurationSeconds)
			}
			signals = append(signals, pending{jobID: e.JobID, weight: w})
		}
	}
	if len(signals) == 0 {
		return base
	}

	ids := make([]uuid.UUID, 0, len(signals))
	seen := make(map[uuid.UUID]struct{}, len(signals))
	for _, s := range signals {
		if _, ok := seen[s.jobID]; ok {
			continue
		}
		seen[s.jobID] = struct{}{}
		ids = append(ids, s.jobID)
	}

	postings, err := b.jobs.FindByIDs(ctx, ids)
	if err != nil {
		log.Warn("behavior jobs unavailable, using resume embedding", zap.Error(err))
		return base
	}
	texts := make(map[uuid.UUID]string, len(postings))
	for _, p := range postings {
		if t := p.Text(""); t != "" {
			texts[p.ID] = t
		}
	}

	batch := make([]string, 0, len(signals))
	weights := make([]float64, 0, len(signals))
	for _, s := range signals {
		t, ok := texts[s.jobID]
		if !ok {
			continue
		}
		batch = append(batch, t)
		weights = append(weights, s.weight)
	}
	if len(batch) == 0 {
		return base
	}

	vecs, err := b.encoder.EncodeBatch(ctx, batch)
	if err != nil {
		log.Warn("behavior encode failed, using resume embedding", zap.Error(err))
		return base
	}

	weighted := make([]matching.WeightedVector, 0, len(vecs))
	for i, v := range vecs {
		weighted = append(weighted, matching.WeightedVector{Vector: v, Weight: weights[i]})
	}
	return matching.PreferenceVector(base, weighted)
}
