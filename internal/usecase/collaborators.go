package usecase

import (
	"context"
	"strings"

	"talent-match/internal/domain/application"
	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/insight"
	"talent-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TextExtractor interface {
	Extract(ctx context.Context, ref string) string
}

type MarketInsights interface {
	Lookup(ctx context.Context, title, industry string) *insight.MarketInsight
}

type RankingNotifier interface {
	NotifyRankingCompleted(ctx context.Context, evt application.RankingCompleted) error
}

// resumeResolver turns a resume reference into text, remembering extracted text on the profile.
type resumeResolver struct {
	extractor  TextExtractor
	candidates repository.CandidateRepository
	logger     *zap.Logger
}

// profileText returns the stored resume text, extracting and saving it on first use.
func (r resumeResolver) profileText(ctx context.Context, p *candidate.Profile) string {
	if p == nil {
		return ""
	}
	if text := strings.TrimSpace(p.ResumeText); text != "" {
		return text
	}
	text := r.refText(ctx, p.ResumeRef)
	if text == "" {
		return ""
	}
	p.ResumeText = text
	if r.candidates != nil && p.UserID != uuid.Nil {
		if err := r.candidates.SaveResumeText(ctx, p.UserID, text); err != nil {
			r.logger.Debug("resume text not saved", zap.Error(err))
		}
	}
	return text
}

func (r resumeResolver) refText(ctx context.Context, ref string) string {
	if r.extractor == nil || strings.TrimSpace(ref) == "" {
		return ""
	}
	return strings.TrimSpace(r.extractor.Extract(ctx, ref))
}

// applicationText prefers the resume attached to the application over the profile resume.
func (r resumeResolver) applicationText(ctx context.Context, app *application.Application) string {
	if text := r.refText(ctx, app.ResumeRef); text != "" {
		return text
	}
	return r.profileText(ctx, app.Applicant)
}

func lookupInsight(ctx context.Context, insights MarketInsights, title, industry string) *insight.MarketInsight {
	if insights == nil {
		return nil
	}
	return insights.Lookup(ctx, title, industry)
}
