package seeder

import (
	"context"
	"fmt"

	"talent-match/internal/database"
	"talent-match/internal/domain/candidate"
)

type demoCandidate struct {
	Key             string
	FullName        string
	Skills          []string
	YearsExperience int
	Education       string
	ResumeText      string
}

var demoCandidates = []demoCandidate{
	{
		Key:             "ayu",
		FullName:        "Ayu Lestari",
		Skills:          []string{"Go", "PostgreSQL", "Docker"},
		YearsExperience: 4,
		Education:       "BSc Computer Science",
		ResumeText:      "Backend engineer with 4 years of experience building Go microservices on PostgreSQL and Docker.",
	},
	{
		Key:             "budi",
		FullName:        "Budi Santoso",
		Skills:          []string{"Python", "SQL"},
		YearsExperience: 1,
		ResumeText:      "Analyst with 1 year experience in SQL reporting and Python notebooks.",
	},
	{
		Key:      "citra",
		FullName: "Citra Dewi",
		Skills:   []string{"Kubernetes", "AWS"},
	},
}

type CandidatesSeeder struct{}

func (CandidatesSeeder) Name() string { return "candidate_profiles" }

func (CandidatesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "candidate_profiles",
		"user_id",
		"full_name",
		"skills",
		"years_experience",
		"education",
		"resume_text",
	); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, it := range demoCandidates {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO candidate_profiles (user_id, full_name, skills, years_experience, education, resume_text)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (user_id) DO NOTHING`,
			demoID("candidate/"+it.Key), it.FullName, candidate.NormalizeSkills(it.Skills),
			it.YearsExperience, it.Education, it.ResumeText,
		)
		if err != nil {
			return fmt.Errorf("insert candidate %s: %w", it.Key, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
