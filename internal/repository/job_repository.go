package repository

import (
	"context"
	"errors"

	"talent-match/internal/database"
	"talent-match/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrJobNotFound = errors.New("job not found")

const maxActiveJobs = 500

type JobRepository interface {
	ListActive(ctx context.Context, limit int) ([]job.Posting, error)
	FindByID(ctx context.Context, jobID uuid.UUID) (*job.Posting, error)
	FindByIDs(ctx context.Context, jobIDs []uuid.UUID) ([]job.Posting, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, COALESCE(title, ''), COALESCE(company, ''), COALESCE(industry, ''),
	COALESCE(description, ''), COALESCE(requirements, ''), COALESCE(required_skills, '{}'),
	COALESCE(required_years, 0), recruiter_id, is_active`

func scanPosting(row database.Row) (job.Posting, error) {
	var p job.Posting
	err := row.Scan(&p.ID, &p.Title, &p.Company, &p.Industry, &p.Description, &p.Requirements,
		&p.RequiredSkills, &p.RequiredYears, &p.RecruiterID, &p.Active)
	return p, err
}

func (r *PostgresJobRepository) ListActive(ctx context.Context, limit int) ([]job.Posting, error) {
	if limit <= 0 || limit > maxActiveJobs {
		limit = maxActiveJobs
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs
		 WHERE is_active = TRUE
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Posting, 0)
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) FindByID(ctx context.Context, jobID uuid.UUID) (*job.Posting, error) {
	p, err := scanPosting(r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, jobID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByIDs returns the postings in the order of jobIDs, skipping ids that do not exist.
func (r *PostgresJobRepository) FindByIDs(ctx context.Context, jobIDs []uuid.UUID) ([]job.Posting, error) {
	if len(jobIDs) == 0 {
		return []job.Posting{}, nil
	}

	rows, err := r.db.Query(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ANY($1)`, jobIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]job.Posting, len(jobIDs))
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		byID[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]job.Posting, 0, len(byID))
	for _, id := range jobIDs {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}
