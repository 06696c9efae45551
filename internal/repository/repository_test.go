package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"talent-match/internal/domain/application"
	"talent-match/internal/domain/interaction"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func TestJobRepository_FindByID_NotFound(t *testing.T) {
	db := &fakeDB{rowErr: pgx.ErrNoRows}
	_, err := NewPostgresJobRepository(db).FindByID(context.Background(), uuid.New())
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestJobRepository_FindByIDs_KeepsRequestOrder(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	rec := uuid.New()
	db := &fakeDB{rows: [][]any{
		{b, "B", "Co", "", "desc b", "", []string{"go"}, 2, rec, true},
		{a, "A", "Co", "", "desc a", "", []string{}, 0, rec, true},
	}}

	got, err := NewPostgresJobRepository(db).FindByIDs(context.Background(), []uuid.UUID{a, uuid.New(), b})
	if err != nil {
		t.Fatalf("FindByIDs: %v", err)
	}
	if len(got) != 2 || got[0].ID != a || got[1].ID != b {
		t.Fatalf("unexpected order %+v", got)
	}
	if got[1].RequiredYears != 2 || got[1].RequiredSkills[0] != "go" {
		t.Fatalf("unexpected posting %+v", got[1])
	}
}

func TestJobRepository_FindByIDs_EmptySkipsQuery(t *testing.T) {
	db := &fakeDB{}
	got, err := NewPostgresJobRepository(db).FindByIDs(context.Background(), nil)
	if err != nil || len(got) != 0 || len(db.calls) != 0 {
		t.Fatalf("expected no query, got %v %v %d", got, err, len(db.calls))
	}
}

func TestCandidateRepository_NormalizesSkills(t *testing.T) {
	id := uuid.New()
	db := &fakeDB{rows: [][]any{{id, "Ana", []string{" Go ", "go", "SQL"}, -1, "BSc", "cv.pdf", ""}}}

	p, err := NewPostgresCandidateRepository(db).FindByUserID(context.Background(), id)
	if err != nil {
		t.Fatalf("FindByUserID: %v", err)
	}
	if len(p.Skills) != 2 || p.Skills[0] != "go" || p.Skills[1] != "sql" {
		t.Fatalf("unexpected skills %v", p.Skills)
	}
	if p.YearsExperience != 0 {
		t.Fatalf("expected negative years clamped, got %d", p.YearsExperience)
	}
}

func TestCandidateRepository_NotFound(t *testing.T) {
	db := &fakeDB{rowErr: pgx.ErrNoRows}
	if _, err := NewPostgresCandidateRepository(db).FindByUserID(context.Background(), uuid.New()); !errors.Is(err, ErrCandidateNotFound) {
		t.Fatalf("expected ErrCandidateNotFound, got %v", err)
	}
}

func TestApplicationRepository_ListByJob_OptionalApplicant(t *testing.T) {
	jobID := uuid.New()
	withProfile := uuid.New()
	applied := time.Now().UTC()
	db := &fakeDB{rows: [][]any{
		{uuid.New(), jobID, withProfile, "a.pdf", applied, 0.0, "", &withProfile, "Ana", []string{"Go"}, 3, "", "", ""},
		{uuid.New(), jobID, uuid.New(), "", applied, 0.0, "", nil, "", []string{}, 0, "", "", ""},
	}}

	apps, err := NewPostgresApplicationRepository(db).ListByJob(context.Background(), jobID)
	if err != nil {
		t.Fatalf("ListByJob: %v", err)
	}
	if len(apps) != 2 {
		t.Fatalf("expected 2 applications, got %d", len(apps))
	}
	if apps[0].Applicant == nil || apps[0].Applicant.UserID != withProfile || apps[0].Applicant.Skills[0] != "go" {
		t.Fatalf("expected resolved applicant, got %+v", apps[0].Applicant)
	}
	if apps[1].Applicant != nil {
		t.Fatalf("expected nil applicant, got %+v", apps[1].Applicant)
	}
}

func TestApplicationRepository_UpdateScore(t *testing.T) {
	db := &fakeDB{affected: 1}
	app := application.Application{
		ID:           uuid.New(),
		MatchScore:   72.4,
		RankingNotes: "Matched because: resume similarity",
		Explanation:  &application.Explanation{MatchedSkills: []string{"Go"}, Similarity: 80},
	}
	if err := NewPostgresApplicationRepository(db).UpdateScore(context.Background(), app); err != nil {
		t.Fatalf("UpdateScore: %v", err)
	}

	args := db.calls[0].args
	if args[1] != 72.4 {
		t.Fatalf("unexpected score arg %v", args[1])
	}
	var got application.Explanation
	if err := json.Unmarshal(args[3].([]byte), &got); err != nil {
		t.Fatalf("explanation not JSON: %v", err)
	}
	if got.Similarity != 80 || got.MatchedSkills[0] != "Go" {
		t.Fatalf("unexpected explanation %+v", got)
	}
}

func TestApplicationRepository_UpdateScore_Missing(t *testing.T) {
	db := &fakeDB{affected: 0}
	err := NewPostgresApplicationRepository(db).UpdateScore(context.Background(), application.Application{ID: uuid.New()})
	if !errors.Is(err, ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}
}

func TestInteractionRepository_RecentOrdering(t *testing.T) {
	db := &fakeDB{}
	repo := NewPostgresInteractionRepository(db)
	user := uuid.New()

	if _, err := repo.Recent(context.Background(), RecentQuery{UserID: user, Type: interaction.TypeViewed, Limit: 15, MinDuration: 10, ByDuration: true}); err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if !strings.Contains(db.calls[0].query, "time_spent_seconds DESC") {
		t.Fatalf("expected duration ordering, got %s", db.calls[0].query)
	}
	if db.calls[0].args[1] != "viewed" || db.calls[0].args[3] != 10 {
		t.Fatalf("unexpected args %v", db.calls[0].args)
	}

	if _, err := repo.Recent(context.Background(), RecentQuery{UserID: user, Type: interaction.TypeApplied, Limit: 20}); err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if strings.Contains(db.calls[1].query, "time_spent_seconds DESC") {
		t.Fatalf("expected recency ordering, got %s", db.calls[1].query)
	}
}

func TestInteractionRepository_RecentZeroLimit(t *testing.T) {
	db := &fakeDB{}
	got, err := NewPostgresInteractionRepository(db).Recent(context.Background(), RecentQuery{Limit: 0})
	if err != nil || len(got) != 0 || len(db.calls) != 0 {
		t.Fatalf("expected no query for zero limit")
	}
}

func TestInteractionRepository_UpsertKeepsLongestView(t *testing.T) {
	db := &fakeDB{}
	evt := interaction.Event{UserID: uuid.New(), JobID: uuid.New(), Type: interaction.TypeViewed, DurationSeconds: 42}
	if err := NewPostgresInteractionRepository(db).Upsert(context.Background(), evt); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	q := db.calls[0].query
	if !strings.Contains(q, "ON CONFLICT (user_id, job_id, interaction_type)") || !strings.Contains(q, "GREATEST(") {
		t.Fatalf("unexpected upsert statement %s", q)
	}
	if db.calls[0].args[3].(time.Time).IsZero() {
		t.Fatalf("expected occurred_at defaulted")
	}
}

func TestInteractionRepository_JobIDsByTypes(t *testing.T) {
	a := uuid.New()
	db := &fakeDB{rows: [][]any{{a}}}
	ids, err := NewPostgresInteractionRepository(db).JobIDsByTypes(context.Background(), uuid.New(),
		[]interaction.Type{interaction.TypeApplied, interaction.TypeRejected})
	if err != nil {
		t.Fatalf("JobIDsByTypes: %v", err)
	}
	if len(ids) != 1 || ids[0] != a {
		t.Fatalf("unexpected ids %v", ids)
	}
	raw := db.calls[0].args[1].([]string)
	if len(raw) != 2 || raw[0] != "applied" {
		t.Fatalf("unexpected type args %v", raw)
	}
	if !strings.Contains(db.calls[0].query, "FROM applications WHERE applicant_id = $1") {
		t.Fatalf("expected applications to count as applied, got %s", db.calls[0].query)
	}
}

func TestInteractionRepository_JobIDsByTypes_WithoutApplied(t *testing.T) {
	db := &fakeDB{}
	if _, err := NewPostgresInteractionRepository(db).JobIDsByTypes(context.Background(), uuid.New(),
		[]interaction.Type{interaction.TypeRejected, interaction.TypeIgnored}); err != nil {
		t.Fatalf("JobIDsByTypes: %v", err)
	}
	if strings.Contains(db.calls[0].query, "applications") {
		t.Fatalf("did not expect applications in %s", db.calls[0].query)
	}
}

func TestInteractionRepository_RecentAppliedIncludesApplications(t *testing.T) {
	job := uuid.New()
	user := uuid.New()
	at := time.Now().UTC()
	db := &fakeDB{rows: [][]any{{user, job, "applied", at, 0, "application"}}}

	got, err := NewPostgresInteractionRepository(db).Recent(context.Background(),
		RecentQuery{UserID: user, Type: interaction.TypeApplied, Since: at.Add(-time.Hour), Limit: 20})
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 || got[0].JobID != job || got[0].Type != interaction.TypeApplied {
		t.Fatalf("unexpected events %+v", got)
	}
	q := db.calls[0].query
	if !strings.Contains(q, "FROM applications") || !strings.Contains(q, "DISTINCT ON (job_id)") {
		t.Fatalf("expected applications merged into applied events, got %s", q)
	}

	if _, err := NewPostgresInteractionRepository(db).Recent(context.Background(),
		RecentQuery{UserID: user, Type: interaction.TypeSaved, Limit: 10}); err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if strings.Contains(db.calls[1].query, "applications") {
		t.Fatalf("saved events must come from job_interactions only, got %s", db.calls[1].query)
	}
}
