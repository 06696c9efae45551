package repository

import (
	"context"
	"slices"
	"time"

	"talent-match/internal/database"
	"talent-match/internal/domain/interaction"

	"github.com/google/uuid"
)

// RecentQuery selects one interaction type of a user inside a time window.
type RecentQuery struct {
	UserID      uuid.UUID
	Type        interaction.Type
	Since       time.Time
	Limit       int
	MinDuration int
	// ByDuration orders by time spent instead of recency.
	ByDuration bool
}

// Rows in applications are applied events too; the latest event per job wins.
const appliedEvents = `(
	SELECT DISTINCT ON (job_id) user_id, job_id, interaction_type, occurred_at, time_spent_seconds, source
	FROM (
		SELECT user_id, job_id, interaction_type, occurred_at, time_spent_seconds, source
		FROM job_interactions
		WHERE user_id = $1 AND interaction_type = $2
		UNION ALL
		SELECT applicant_id, job_id, 'applied', applied_at, 0, 'application'
		FROM applications
		WHERE applicant_id = $1
	) src
	ORDER BY job_id, occurred_at DESC
) job_interactions`

type InteractionRepository interface {
	JobIDsByTypes(ctx context.Context, userID uuid.UUID, types []interaction.Type) ([]uuid.UUID, error)
	Recent(ctx context.Context, q RecentQuery) ([]interaction.Event, error)
	Upsert(ctx context.Context, evt interaction.Event) error
}

type PostgresInteractionRepository struct {
	db database.DB
}

func NewPostgresInteractionRepository(db database.DB) *PostgresInteractionRepository {
	return &PostgresInteractionRepository{db: db}
}

func (r *PostgresInteractionRepository) JobIDsByTypes(ctx context.Context, userID uuid.UUID, types []interaction.Type) ([]uuid.UUID, error) {
	if len(types) == 0 {
		return []uuid.UUID{}, nil
	}
	raw := make([]string, 0, len(types))
	for _, t := range types {
		raw = append(raw, string(t))
	}

	query := `SELECT DISTINCT job_id FROM job_interactions WHERE user_id = $1 AND interaction_type = ANY($2)`
	if slices.Contains(types, interaction.TypeApplied) {
		query += ` UNION SELECT job_id FROM applications WHERE applicant_id = $1`
	}

	rows, err := r.db.Query(ctx, query, userID, raw)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresInteractionRepository) Recent(ctx context.Context, q RecentQuery) ([]interaction.Event, error) {
	if q.Limit <= 0 {
		return []interaction.Event{}, nil
	}

	order := `occurred_at DESC`
	if q.ByDuration {
		order = `time_spent_seconds DESC, occurred_at DESC`
	}
	from := `job_interactions`
	if q.Type == interaction.TypeApplied {
		from = appliedEvents
	}

	rows, err := r.db.Query(ctx,
		`SELECT user_id, job_id, interaction_type, occurred_at, COALESCE(time_spent_seconds, 0), COALESCE(source, '')
		 FROM `+from+`
		 WHERE user_id = $1 AND interaction_type = $2 AND occurred_at >= $3 AND time_spent_seconds >= $4
		 ORDER BY `+order+`
		 LIMIT $5`,
		q.UserID, string(q.Type), q.Since, q.MinDuration, q.Limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]interaction.Event, 0)
	for rows.Next() {
		var (
			e   interaction.Event
			typ string
		)
		if err := rows.Scan(&e.UserID, &e.JobID, &typ, &e.OccurredAt, &e.DurationSeconds, &e.Source); err != nil {
			return nil, err
		}
		e.Type = interaction.Type(typ)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Upsert records one event per (user, job, type). A repeated view keeps the longest duration.
func (r *PostgresInteractionRepository) Upsert(ctx context.Context, evt interaction.Event) error {
	occurred := evt.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now().UTC()
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO job_interactions (user_id, job_id, interaction_type, occurred_at, time_spent_seconds, source)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id, job_id, interaction_type) DO UPDATE SET
		   occurred_at = EXCLUDED.occurred_at,
		   time_spent_seconds = GREATEST(job_interactions.time_spent_seconds, EXCLUDED.time_spent_seconds),
		   source = CASE WHEN EXCLUDED.source <> '' THEN EXCLUDED.source ELSE job_interactions.source END`,
		evt.UserID, evt.JobID, string(evt.Type), occurred, evt.DurationSeconds, evt.Source,
	)
	return err
}
