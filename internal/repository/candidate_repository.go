package repository

import (
	"context"
	"errors"
	"strings"

	"talent-match/internal/database"
	"talent-match/internal/domain/candidate"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrCandidateNotFound = errors.New("candidate profile not found")

type CandidateRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*candidate.Profile, error)
	SaveResumeText(ctx context.Context, userID uuid.UUID, text string) error
}

type PostgresCandidateRepository struct {
	db database.DB
}

func NewPostgresCandidateRepository(db database.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

const candidateColumns = `user_id, COALESCE(full_name, ''), COALESCE(skills, '{}'), COALESCE(years_experience, 0),
	COALESCE(education, ''), COALESCE(resume_ref, ''), COALESCE(resume_text, '')`

func (r *PostgresCandidateRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*candidate.Profile, error) {
	row := r.db.QueryRow(ctx, `SELECT `+candidateColumns+` FROM candidate_profiles WHERE user_id = $1`, userID)

	var p candidate.Profile
	if err := row.Scan(&p.UserID, &p.FullName, &p.Skills, &p.YearsExperience, &p.Education, &p.ResumeRef, &p.ResumeText); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCandidateNotFound
		}
		return nil, err
	}
	p.Skills = candidate.NormalizeSkills(p.Skills)
	if p.YearsExperience < 0 {
		p.YearsExperience = 0
	}
	return &p, nil
}

// SaveResumeText stores text derived from the resume so later requests skip extraction.
func (r *PostgresCandidateRepository) SaveResumeText(ctx context.Context, userID uuid.UUID, text string) error {
	n, err := r.db.Exec(ctx,
		`UPDATE candidate_profiles SET resume_text = $2, updated_at = now() WHERE user_id = $1`,
		userID, strings.TrimSpace(text),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCandidateNotFound
	}
	return nil
}
