package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/interaction"
	"talent-match/internal/domain/job"
	"talent-match/internal/domain/matching"
	"talent-match/internal/embedding"
	"talent-match/internal/logger"
	"talent-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultRecommendationLimit = 20
	maxRecommendationLimit     = 100
)

// Interactions that remove a job from a candidate's feed for good.
var excludedInteractions = []interaction.Type{
	interaction.TypeApplied,
	interaction.TypeRejected,
	interaction.TypeIgnored,
}

type RecommendationUsecase interface {
	GetRecommendations(ctx context.Context, profile candidate.Profile, jobs []job.Posting, personalize bool) ([]matching.MatchResult, error)
	RecommendForUser(ctx context.Context, userID uuid.UUID, personalize bool, limit int) ([]matching.MatchResult, error)
}

type Recommendation struct {
	candidates   repository.CandidateRepository
	jobs         repository.JobRepository
	interactions repository.InteractionRepository
	encoder      embedding.Encoder
	behavior     *BehaviorAggregator
	collab       *CollaborativeFilter
	insights     MarketInsights
	resumes      resumeResolver
	logger       *zap.Logger
}

type RecommendationDeps struct {
	Candidates   repository.CandidateRepository
	Jobs         repository.JobRepository
	Interactions repository.InteractionRepository
	Applications repository.ApplicationRepository
	Encoder      embedding.Encoder
	Extractor    TextExtractor
	Insights     MarketInsights
	Logger       *zap.Logger
}

func NewRecommendationUsecase(d RecommendationDeps) *Recommendation {
	log := logger.Named(d.Logger, "recommendation")
	return &Recommendation{
		candidates:   d.Candidates,
		jobs:         d.Jobs,
		interactions: d.Interactions,
		encoder:      d.Encoder,
		behavior:     NewBehaviorAggregator(d.Interactions, d.Jobs, d.Encoder, d.Logger),
		collab:       NewCollaborativeFilter(d.Applications, d.Logger),
		insights:     d.Insights,
		resumes:      resumeResolver{extractor: d.Extractor, candidates: d.Candidates, logger: log},
		logger:       log,
	}
}

func (u *Recommendation) RecommendForUser(ctx context.Context, userID uuid.UUID, personalize bool, limit int) ([]matching.MatchResult, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}
	if limit > maxRecommendationLimit {
		limit = maxRecommendationLimit
	}

	profile, err := u.candidates.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			return nil, ErrProfileMissing
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	postings, err := u.jobs.ListActive(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	results, err := u.GetRecommendations(ctx, *profile, postings, personalize)
	if err != nil {
		return nil, err
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// GetRecommendations scores every eligible job for the candidate, best first. Scoring problems
// degrade the affected jobs to 0; only a failing interaction log is returned as an error.
func (u *Recommendation) GetRecommendations(ctx context.Context, profile candidate.Profile, postings []job.Posting, personalize bool) ([]matching.MatchResult, error) {
	log := logger.WithFields(u.logger, zap.String(logger.FieldUserID, profile.UserID.String()))

	excluded, err := u.excludedJobs(ctx, profile.UserID)
	if err != nil {
		return nil, err
	}

	eligible := make([]job.Posting, 0, len(postings))
	for _, p := range postings {
		if !p.Active {
			continue
		}
		if _, ok := excluded[p.ID]; ok {
			continue
		}
		eligible = append(eligible, p)
	}

	resume := u.resumes.profileText(ctx, &profile)
	if resume == "" || u.encoder == nil || !u.encoder.Ready(ctx) {
		out := make([]matching.MatchResult, 0, len(eligible))
		for _, p := range eligible {
			out = append(out, matching.Unavailable(p.ID, matching.ReasonUploadResume, personalize))
		}
		return out, nil
	}

	scorable := make([]job.Posting, 0, len(eligible))
	texts := make([]string, 0, len(eligible))
	for _, p := range eligible {
		t := p.Text("")
		if t == "" {
			continue
		}
		scorable = append(scorable, p)
		texts = append(texts, t)
	}
	if len(scorable) == 0 {
		return []matching.MatchResult{}, nil
	}

	base, err := u.encoder.Encode(ctx, resume)
	if err != nil {
		log.Error("resume encode failed", zap.Error(err))
		out := make([]matching.MatchResult, 0, len(scorable))
		for _, p := range scorable {
			out = append(out, matching.Unavailable(p.ID, matching.ReasonRankingFailed, personalize))
		}
		return out, nil
	}

	query := base
	if personalize {
		query = u.behavior.PreferenceVector(ctx, profile.UserID, base)
	}

	jobVecs := u.encodeJobs(ctx, texts, log)
	inferred := matching.InferYearsExperience(resume)

	out := make([]matching.MatchResult, 0, len(scorable))
	for i, p := range scorable {
		if jobVecs[i] == nil {
			out = append(out, matching.Unavailable(p.ID, matching.ReasonRankingFailed, personalize))
			continue
		}
		out = append(out, u.score(ctx, profile, p, query, jobVecs[i], inferred, personalize))
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

func (u *Recommendation) excludedJobs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	out := make(map[uuid.UUID]struct{})
	if u.interactions == nil || userID == uuid.Nil {
		return out, nil
	}
	ids, err := u.interactions.JobIDsByTypes(ctx, userID, excludedInteractions)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInteractionLog, err)
	}
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out, nil
}

// encodeJobs embeds all job texts in one call. If the batch fails each text is retried alone
// so that one bad job does not sink the rest; failed entries are nil.
func (u *Recommendation) encodeJobs(ctx context.Context, texts []string, log *zap.Logger) [][]float32 {
	vecs, err := u.encoder.EncodeBatch(ctx, texts)
	if err == nil {
		return vecs
	}
	log.Warn("job batch encode failed, encoding individually", zap.Error(err))

	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := u.encoder.Encode(ctx, t)
		if err != nil {
			log.Warn("job encode failed", zap.Error(err))
			continue
		}
		out[i] = v
	}
	return out
}

func (u *Recommendation) score(ctx context.Context, profile candidate.Profile, p job.Posting, query, jobVec []float32, inferred *int, personalized bool) matching.MatchResult {
	sim := matching.SimilarityScore(query, jobVec)
	sim = matching.ApplyBoost(sim, u.collab.Boost(ctx, p.ID, profile.UserID, profile.Skills))

	skills := matching.MatchSkills(profile.Skills, p.RequiredSkills)
	required := len(skills.Matched) + len(skills.Missing)

	years := profile.YearsExperience
	if years <= 0 && inferred != nil {
		years = *inferred
	}

	c := matching.Components{
		Similarity:    sim,
		Skills:        skills.Score,
		Experience:    matching.ExperienceScore(years, p.RequiredYears),
		HasSkills:     required > 0,
		HasExperience: p.RequiredYears > 0,
	}
	w := matching.RecommendationProfile.Active(c)
	importance := matching.FeatureImportance(c, w)

	expl := matching.Explanation{
		Skills:          skills,
		RequiredSkills:  required,
		ExperienceYears: inferred,
		Market:          lookupInsight(ctx, u.insights, p.Title, p.Industry),
		Importance:      &importance,
	}

	return matching.MatchResult{
		JobID:           p.ID,
		Score:           matching.RoundWhole(matching.Fuse(c, w)),
		MatchedSkills:   skills.Matched,
		MissingSkills:   skills.Missing,
		ExperienceYears: inferred,
		Rationale:       expl.Rationale(),
		Importance:      importance,
		Improvements:    expl.Improvements(years, p.RequiredYears),
		Personalized:    personalized,
	}
}
