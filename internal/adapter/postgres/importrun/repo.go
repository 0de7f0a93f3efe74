// Package importrun implements the append-only import history using PostgreSQL.
package importrun

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/wassimTlili/med-q-main-sub002/internal/adapter/postgres"
	"github.com/wassimTlili/med-q-main-sub002/internal/domain"
)

// Repo provides import run persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new import run repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var columns = []string{
	"id", "source", "total", "rejected", "imported", "skipped", "failed",
	"created_subjects", "created_courses", "errors", "duration_ms", "started_at",
}

// Create stores the summary of a finished run.
func (r *Repo) Create(ctx context.Context, run domain.ImportRun) error {
	errs := run.Errors
	if errs == nil {
		errs = []string{}
	}
	errorsJSON, err := json.Marshal(errs)
	if err != nil {
		return fmt.Errorf("import_run %s marshal errors: %w", run.ID, err)
	}

	query, args, err := postgres.Builder.
		Insert("import_runs").
		Columns(columns...).
		Values(
			run.ID, run.Source, run.Total, run.Rejected, run.Imported, run.Skipped, run.Failed,
			run.CreatedSubjects, run.CreatedCourses, string(errorsJSON), run.Duration.Milliseconds(), run.StartedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build create import_run: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "import_run", run.ID)
	}
	return nil
}

// ListRecent returns the latest runs, newest first.
func (r *Repo) ListRecent(ctx context.Context, limit int) ([]domain.ImportRun, error) {
	if limit <= 0 {
		limit = 20
	}

	query, args, err := postgres.Builder.
		Select(columns...).
		From("import_runs").
		OrderBy("started_at DESC", "id").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list import_runs: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list import_runs: %w", err)
	}

	runs, err := pgx.CollectRows(rows, scanRun)
	if err != nil {
		return nil, fmt.Errorf("scan import_runs: %w", err)
	}
	if runs == nil {
		runs = []domain.ImportRun{}
	}
	return runs, nil
}

func scanRun(row pgx.CollectableRow) (domain.ImportRun, error) {
	var (
		run        domain.ImportRun
		errorsJSON []byte
		durationMS int64
	)

	err := row.Scan(
		&run.ID, &run.Source, &run.Total, &run.Rejected, &run.Imported, &run.Skipped, &run.Failed,
		&run.CreatedSubjects, &run.CreatedCourses, &errorsJSON, &durationMS, &run.StartedAt,
	)
	if err != nil {
		return run, err
	}

	run.Duration = time.Duration(durationMS) * time.Millisecond
	if len(errorsJSON) > 0 {
		if err := json.Unmarshal(errorsJSON, &run.Errors); err != nil {
			return run, fmt.Errorf("import_run %s unmarshal errors: %w", run.ID, err)
		}
	}
	return run, nil
}
