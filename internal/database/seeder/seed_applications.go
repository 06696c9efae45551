package seeder

import (
	"context"
	"fmt"

	"talent-match/internal/database"
)

type ApplicationsSeeder struct{}

func (ApplicationsSeeder) Name() string { return "applications" }

// Run applies every demo candidate to the first demo job so ranking has something to order.
func (ApplicationsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "applications", "id", "job_id", "applicant_id"); err != nil {
		return err
	}
	if len(demoJobs) == 0 {
		return nil
	}
	jobID := demoID("job/" + demoJobs[0].Key)

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, c := range demoCandidates {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO applications (id, job_id, applicant_id) VALUES ($1, $2, $3)
			 ON CONFLICT (job_id, applicant_id) DO NOTHING`,
			demoID("application/"+demoJobs[0].Key+"/"+c.Key), jobID, demoID("candidate/"+c.Key),
		)
		if err != nil {
			return fmt.Errorf("insert application %s: %w", c.Key, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
