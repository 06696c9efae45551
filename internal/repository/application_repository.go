package repository

import (
	"context"
	"encoding/json"
	"errors"

	"talent-match/internal/database"
	"talent-match/internal/domain/application"
	"talent-match/internal/domain/candidate"

	"github.com/google/uuid"
)

var ErrApplicationNotFound = errors.New("application not found")

type ApplicationRepository interface {
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error)
	UpdateScore(ctx context.Context, app application.Application) error
	ApplicantSkills(ctx context.Context, jobID, exclude uuid.UUID, limit int) ([][]string, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

// ListByJob returns the applications of a job with their applicant profile when one exists.
func (r *PostgresApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.job_id, a.applicant_id, COALESCE(a.resume_ref, ''), a.applied_at,
		        COALESCE(a.match_score, 0), COALESCE(a.ranking_notes, ''),
		        p.user_id, COALESCE(p.full_name, ''), COALESCE(p.skills, '{}'), COALESCE(p.years_experience, 0),
		        COALESCE(p.education, ''), COALESCE(p.resume_ref, ''), COALESCE(p.resume_text, '')
		 FROM applications a
		 LEFT JOIN candidate_profiles p ON p.user_id = a.applicant_id
		 WHERE a.job_id = $1
		 ORDER BY a.applied_at ASC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		var (
			a         application.Application
			profileID *uuid.UUID
			p         candidate.Profile
		)
		if err := rows.Scan(
			&a.ID, &a.JobID, &a.ApplicantID, &a.ResumeRef, &a.AppliedAt, &a.MatchScore, &a.RankingNotes,
			&profileID, &p.FullName, &p.Skills, &p.YearsExperience, &p.Education, &p.ResumeRef, &p.ResumeText,
		); err != nil {
			return nil, err
		}
		if profileID != nil {
			p.UserID = *profileID
			p.Skills = candidate.NormalizeSkills(p.Skills)
			a.Applicant = &p
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) UpdateScore(ctx context.Context, app application.Application) error {
	var explanation []byte
	if app.Explanation != nil {
		b, err := json.Marshal(app.Explanation)
		if err != nil {
			return err
		}
		explanation = b
	}

	n, err := r.db.Exec(ctx,
		`UPDATE applications
		 SET match_score = $2, ranking_notes = $3, explanation = $4, ranked_at = now()
		 WHERE id = $1`,
		app.ID, app.MatchScore, app.RankingNotes, explanation,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

// ApplicantSkills samples the skill lists of up to limit other applicants of a job.
func (r *PostgresApplicationRepository) ApplicantSkills(ctx context.Context, jobID, exclude uuid.UUID, limit int) ([][]string, error) {
	if limit <= 0 {
		return [][]string{}, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT COALESCE(p.skills, '{}')
		 FROM applications a
		 JOIN candidate_profiles p ON p.user_id = a.applicant_id
		 WHERE a.job_id = $1 AND a.applicant_id <> $2
		 ORDER BY a.applied_at DESC
		 LIMIT $3`,
		jobID, exclude, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([][]string, 0)
	for rows.Next() {
		var skills []string
		if err := rows.Scan(&skills); err != nil {
			return nil, err
		}
		out = append(out, skills)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
