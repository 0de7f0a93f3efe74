// Package catalog implements the subject/course repository using PostgreSQL.
// It backs the catalog read interface (one snapshot per import run) and the
// lazy creation of subjects and courses during commit.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/wassimTlili/med-q-main-sub002/internal/adapter/postgres"
	"github.com/wassimTlili/med-q-main-sub002/internal/domain"
)

// Repo provides catalog persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListSubjects returns every subject ordered by name.
func (r *Repo) ListSubjects(ctx context.Context) ([]domain.Subject, error) {
	query, args, err := postgres.Builder.
		Select("id", "name", "created_at").
		From("subjects").
		OrderBy("name", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list subjects: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}

	subjects, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Subject, error) {
		var s domain.Subject
		err := row.Scan(&s.ID, &s.Name, &s.CreatedAt)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan subjects: %w", err)
	}

	return subjects, nil
}

// ListCourses returns every course with its subject id, ordered by subject then name.
func (r *Repo) ListCourses(ctx context.Context) ([]domain.Course, error) {
	query, args, err := postgres.Builder.
		Select("id", "subject_id", "name", "created_at").
		From("courses").
		OrderBy("subject_id", "name", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list courses: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	courses, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Course, error) {
		var c domain.Course
		err := row.Scan(&c.ID, &c.SubjectID, &c.Name, &c.CreatedAt)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan courses: %w", err)
	}

	return courses, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// CreateSubject inserts a subject. A case-insensitive name clash is reported
// as domain.ErrAlreadyExists.
func (r *Repo) CreateSubject(ctx context.Context, name string) (domain.Subject, error) {
	s := domain.Subject{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().UTC(),
	}

	query, args, err := postgres.Builder.
		Insert("subjects").
		Columns("id", "name", "created_at").
		Values(s.ID, s.Name, s.CreatedAt).
		ToSql()
	if err != nil {
		return domain.Subject{}, fmt.Errorf("build create subject: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return domain.Subject{}, postgres.MapError(err, "subject", s.Name)
	}

	return s, nil
}

// CreateCourse inserts a course under subjectID. An unknown subject is
// reported as domain.ErrNotFound, a name clash within the subject as
// domain.ErrAlreadyExists.
func (r *Repo) CreateCourse(ctx context.Context, name string, subjectID uuid.UUID) (domain.Course, error) {
	c := domain.Course{
		ID:        uuid.New(),
		SubjectID: subjectID,
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().UTC(),
	}

	query, args, err := postgres.Builder.
		Insert("courses").
		Columns("id", "subject_id", "name", "created_at").
		Values(c.ID, c.SubjectID, c.Name, c.CreatedAt).
		ToSql()
	if err != nil {
		return domain.Course{}, fmt.Errorf("build create course: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return domain.Course{}, postgres.MapError(err, "course", c.Name)
	}

	return c, nil
}
