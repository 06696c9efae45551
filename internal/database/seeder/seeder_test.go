package seeder

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"talent-match/internal/database"

	"go.uber.org/zap"
)

// schemaDB reports every column as present and records statements run inside transactions.
type schemaDB struct {
	columns   []string
	execs     []string
	committed int
	execErr   error
}

func (d *schemaDB) Ping(context.Context) error { return nil }
func (d *schemaDB) Close() error               { return nil }
func (d *schemaDB) SQLDB() *sql.DB             { return nil }

func (d *schemaDB) Exec(context.Context, string, ...any) (int64, error) { return 0, nil }

func (d *schemaDB) Query(context.Context, string, ...any) (database.Rows, error) {
	return &columnRows{cols: d.columns, i: -1}, nil
}

func (d *schemaDB) QueryRow(context.Context, string, ...any) database.Row { return nil }

func (d *schemaDB) Begin(context.Context) (database.Tx, error) { return &schemaTx{db: d}, nil }

type schemaTx struct{ db *schemaDB }

func (t *schemaTx) Exec(_ context.Context, query string, _ ...any) (int64, error) {
	if t.db.execErr != nil {
		return 0, t.db.execErr
	}
	t.db.execs = append(t.db.execs, query)
	return 1, nil
}

func (t *schemaTx) Query(context.Context, string, ...any) (database.Rows, error) { return nil, nil }
func (t *schemaTx) QueryRow(context.Context, string, ...any) database.Row        { return nil }
func (t *schemaTx) Rollback(context.Context) error                               { return nil }

func (t *schemaTx) Commit(context.Context) error {
	t.db.committed++
	return nil
}

type columnRows struct {
	cols []string
	i    int
}

func (r *columnRows) Close()     {}
func (r *columnRows) Err() error { return nil }

func (r *columnRows) Next() bool {
	r.i++
	return r.i < len(r.cols)
}

func (r *columnRows) Scan(dest ...any) error {
	*(dest[0].(*string)) = r.cols[r.i]
	return nil
}

var allColumns = []string{
	"id", "recruiter_id", "title", "company", "industry", "description", "requirements",
	"required_skills", "required_years", "is_active", "user_id", "full_name", "skills",
	"years_experience", "education", "resume_text", "job_id", "applicant_id",
}

func TestEnsureTableColumns(t *testing.T) {
	db := &schemaDB{columns: []string{"id", "title"}}

	if err := EnsureTableColumns(context.Background(), db, "jobs", "id", "title"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	err := EnsureTableColumns(context.Background(), db, "jobs", "id", "industry", "is_active")
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
	if !strings.Contains(err.Error(), "jobs.industry, jobs.is_active") {
		t.Fatalf("expected all missing columns listed, got %v", err)
	}
}

func TestRunner_Defaults(t *testing.T) {
	db := &schemaDB{columns: allColumns}

	n, err := Runner{Seeders: Defaults(), Logger: zap.NewNop()}.Run(context.Background(), db)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if n != 3 || db.committed != 3 {
		t.Fatalf("expected 3 seeders committed, got n=%d commits=%d", n, db.committed)
	}
	want := len(demoJobs) + 2*len(demoCandidates)
	if len(db.execs) != want {
		t.Fatalf("expected %d inserts, got %d", want, len(db.execs))
	}
	for _, q := range db.execs {
		if !strings.Contains(q, "ON CONFLICT") {
			t.Fatalf("seed statements must be idempotent: %s", q)
		}
	}
}

func TestRunner_StopsOnFailure(t *testing.T) {
	db := &schemaDB{columns: allColumns, execErr: errors.New("boom")}

	n, err := Runner{Seeders: Defaults()}.Run(context.Background(), db)
	if err == nil || !strings.Contains(err.Error(), "seed jobs") {
		t.Fatalf("expected jobs seeder failure, got %v", err)
	}
	if n != 0 || db.committed != 0 {
		t.Fatalf("expected nothing committed, got n=%d commits=%d", n, db.committed)
	}

	if _, err := (Runner{}).Run(context.Background(), nil); !errors.Is(err, errNilDB) {
		t.Fatalf("expected errNilDB, got %v", err)
	}
}

func TestDemoIDsAreStable(t *testing.T) {
	if demoID("job/backend-go") != demoID("job/backend-go") {
		t.Fatalf("expected deterministic ids")
	}
	if demoID("a") == demoID("b") {
		t.Fatalf("expected distinct ids")
	}
}
