package seeder

import (
	"context"
	"fmt"

	"talent-match/internal/database"
)

type demoJob struct {
	Key            string
	Title          string
	Company        string
	Industry       string
	Description    string
	Requirements   string
	RequiredSkills []string
	RequiredYears  int
}

var demoJobs = []demoJob{
	{
		Key:            "backend-go",
		Title:          "Backend Engineer (Go)",
		Company:        "Talent Labs",
		Industry:       "Tech",
		Description:    "Build and maintain Go services, REST APIs and PostgreSQL-backed systems.",
		Requirements:   "Experience with Go, PostgreSQL and Redis in production.",
		RequiredSkills: []string{"go", "postgresql", "redis"},
		RequiredYears:  3,
	},
	{
		Key:            "data-analyst",
		Title:          "Data Analyst",
		Company:        "InsightWorks",
		Industry:       "Finance",
		Description:    "Turn raw financial data into dashboards and reports for the business.",
		Requirements:   "Strong SQL and Python, familiarity with BI tooling.",
		RequiredSkills: []string{"sql", "python", "excel"},
		RequiredYears:  2,
	},
	{
		Key:            "devops",
		Title:          "DevOps Engineer",
		Company:        "CloudKita",
		Industry:       "Tech",
		Description:    "Operate CI/CD, Docker and Kubernetes for production workloads.",
		Requirements:   "Hands-on Kubernetes and one major cloud provider.",
		RequiredSkills: []string{"docker", "kubernetes", "aws"},
		RequiredYears:  4,
	},
	{
		Key:            "ml-engineer",
		Title:          "Machine Learning Engineer",
		Company:        "Talent Labs",
		Industry:       "Tech",
		Description:    "Ship embedding and ranking models behind low-latency APIs.",
		Requirements:   "Python, vector search and model serving experience.",
		RequiredSkills: []string{"python", "machine learning", "vector search"},
		RequiredYears:  3,
	},
}

type JobsSeeder struct{}

func (JobsSeeder) Name() string { return "jobs" }

func (JobsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "jobs",
		"id",
		"recruiter_id",
		"title",
		"company",
		"industry",
		"description",
		"requirements",
		"required_skills",
		"required_years",
		"is_active",
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

	for _, it := range demoJobs {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO jobs (id, recruiter_id, title, company, industry, description, requirements, required_skills, required_years, is_active)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE)
			 ON CONFLICT (id) DO NOTHING`,
			demoID("job/"+it.Key), DemoRecruiterID, it.Title, it.Company, it.Industry,
			it.Description, it.Requirements, it.RequiredSkills, it.RequiredYears,
		)
		if err != nil {
			return fmt.Errorf("insert job %s: %w", it.Key, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
