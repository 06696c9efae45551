package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"talent-match/internal/domain/application"
	"talent-match/internal/domain/insight"
	"talent-match/internal/domain/job"
	"talent-match/internal/domain/matching"
	"talent-match/internal/embedding"
	"talent-match/internal/logger"
	"talent-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultRankingLimit = 10

type ApplicationRankingUsecase interface {
	RankApplications(ctx context.Context, posting job.Posting, apps []application.Application, override string) ([]application.Application, error)
	RankForJob(ctx context.Context, recruiterID, jobID uuid.UUID, override string, limit int) ([]application.Application, error)
}

type ApplicationRanking struct {
	jobs         repository.JobRepository
	applications repository.ApplicationRepository
	encoder      embedding.Encoder
	insights     MarketInsights
	notifiers    []RankingNotifier
	resumes      resumeResolver
	logger       *zap.Logger
	now          func() time.Time
}

type ApplicationRankingDeps struct {
	Jobs         repository.JobRepository
	Applications repository.ApplicationRepository
	Candidates   repository.CandidateRepository
	Encoder      embedding.Encoder
	Extractor    TextExtractor
	Insights     MarketInsights
	Notifiers    []RankingNotifier
	Logger       *zap.Logger
}

func NewApplicationRankingUsecase(d ApplicationRankingDeps) *ApplicationRanking {
	log := logger.Named(d.Logger, "ranking")
	notifiers := make([]RankingNotifier, 0, len(d.Notifiers))
	for _, n := range d.Notifiers {
		if n != nil {
			notifiers = append(notifiers, n)
		}
	}
	return &ApplicationRanking{
		jobs:         d.Jobs,
		applications: d.Applications,
		encoder:      d.Encoder,
		insights:     d.Insights,
		notifiers:    notifiers,
		resumes:      resumeResolver{extractor: d.Extractor, candidates: d.Candidates, logger: log},
		logger:       log,
		now:          time.Now,
	}
}

func (u *ApplicationRanking) RankForJob(ctx context.Context, recruiterID, jobID uuid.UUID, override string, limit int) ([]application.Application, error) {
	if recruiterID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if jobID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	if limit <= 0 {
		limit = defaultRankingLimit
	}

	posting, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if posting.RecruiterID != recruiterID {
		return nil, ErrForbidden
	}

	apps, err := u.applications.ListByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	ranked, err := u.RankApplications(ctx, *posting, apps, override)
	if err != nil {
		return nil, err
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// RankApplications scores and persists every application of the posting, best first.
// Without a usable model or job text it falls back to the strict profile ranker.
func (u *ApplicationRanking) RankApplications(ctx context.Context, posting job.Posting, apps []application.Application, override string) ([]application.Application, error) {
	log := logger.WithFields(u.logger, zap.String(logger.FieldJobID, posting.ID.String()))
	out := make([]application.Application, len(apps))
	copy(out, apps)
	if len(out) == 0 {
		return out, nil
	}

	jobText := posting.Text(override)
	aiRanked := jobText != "" && u.encoder != nil && u.encoder.Ready(ctx)
	if aiRanked {
		u.rankAI(ctx, posting, jobText, out, log)
	} else {
		log.Info("ranking without embeddings", zap.Bool("job_text", jobText != ""))
		u.rankStrict(posting, out)
	}

	for i := range out {
		if err := u.applications.UpdateScore(ctx, out[i]); err != nil {
			log.Error("persist ranking failed", zap.String("application_id", out[i].ID.String()), zap.Error(err))
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].MatchScore > out[j].MatchScore })
	u.notify(ctx, posting, out, aiRanked, log)
	return out, nil
}

func (u *ApplicationRanking) rankStrict(posting job.Posting, apps []application.Application) {
	for i := range apps {
		app := &apps[i]
		hasResume := strings.TrimSpace(app.ResumeRef) != ""
		if app.Applicant != nil && strings.TrimSpace(app.Applicant.ResumeRef) != "" {
			hasResume = true
		}
		score, notes := matching.StrictScore(app.Applicant, posting.RequiredSkills, posting.RequiredYears, hasResume)
		app.MatchScore = score
		app.RankingNotes = notes
		app.Explanation = nil
	}
}

func (u *ApplicationRanking) rankAI(ctx context.Context, posting job.Posting, jobText string, apps []application.Application, log *zap.Logger) {
	texts := make([]string, 0, len(apps)+1)
	texts = append(texts, jobText)
	idx := make([]int, 0, len(apps))
	resumes := make([]string, len(apps))

	for i := range apps {
		text := u.resumes.applicationText(ctx, &apps[i])
		if text == "" {
			markUnscored(&apps[i], matching.ReasonResumeRequired)
			continue
		}
		resumes[i] = text
		idx = append(idx, i)
		texts = append(texts, text)
	}
	if len(idx) == 0 {
		return
	}

	vecs, err := u.encoder.EncodeBatch(ctx, texts)
	if err != nil {
		log.Error("batch encode failed", zap.Int("applications", len(idx)), zap.Error(err))
		for _, i := range idx {
			markUnscored(&apps[i], matching.ReasonRankingFailed)
		}
		return
	}

	market := lookupInsight(ctx, u.insights, posting.Title, posting.Industry)
	jobVec := vecs[0]
	for n, i := range idx {
		scoreApplication(&apps[i], posting, resumes[i], vecs[n+1], jobVec, market)
	}
}

func scoreApplication(app *application.Application, posting job.Posting, resume string, resumeVec, jobVec []float32, market *insight.MarketInsight) {
	inferred := matching.InferYearsExperience(resume)

	var skills matching.SkillMatch
	years := 0
	if app.Applicant != nil {
		skills = matching.MatchSkills(app.Applicant.Skills, posting.RequiredSkills)
		years = app.Applicant.YearsExperience
	} else {
		skills = matching.MatchSkills(matching.SkillsInText(resume, posting.RequiredSkills), posting.RequiredSkills)
	}
	if years <= 0 && inferred != nil {
		years = *inferred
	}
	required := len(skills.Matched) + len(skills.Missing)

	c := matching.Components{
		Similarity:    matching.SimilarityScore(resumeVec, jobVec),
		Skills:        skills.Score,
		Experience:    matching.ExperienceScore(years, posting.RequiredYears),
		HasSkills:     required > 0,
		HasExperience: posting.RequiredYears > 0,
	}
	w := matching.ApplicationProfile.Active(c)
	importance := matching.FeatureImportance(c, w)

	expl := matching.Explanation{
		Skills:          skills,
		RequiredSkills:  required,
		ExperienceYears: inferred,
		Market:          market,
		Importance:      &importance,
	}

	app.MatchScore = matching.RoundTenth(matching.Fuse(c, w))
	app.RankingNotes = expl.Rationale()
	app.Explanation = &application.Explanation{
		MatchedSkills:   skills.Matched,
		MissingSkills:   skills.Missing,
		ExperienceYears: inferred,
		SimilarRole:     market != nil,
		Market:          market,
		Similarity:      matching.RoundTenth(c.Similarity),
		SkillScore:      matching.RoundTenth(c.Skills),
		ExperienceScore: matching.RoundTenth(c.Experience),
		Importance:      importance,
	}
}

func markUnscored(app *application.Application, reason string) {
	app.MatchScore = 0
	app.RankingNotes = reason
	app.Explanation = nil
}

func (u *ApplicationRanking) notify(ctx context.Context, posting job.Posting, ranked []application.Application, aiRanked bool, log *zap.Logger) {
	if len(u.notifiers) == 0 {
		return
	}
	evt := application.RankingCompleted{
		Type:        application.EventRankingCompleted,
		JobID:       posting.ID,
		RecruiterID: posting.RecruiterID,
		Ranked:      len(ranked),
		AIRanked:    aiRanked,
		OccurredAt:  u.now().UTC(),
	}
	if len(ranked) > 0 {
		evt.TopScore = ranked[0].MatchScore
	}
	for _, n := range u.notifiers {
		if err := n.NotifyRankingCompleted(ctx, evt); err != nil {
			log.Warn("ranking notification failed", zap.Error(err))
		}
	}
}
