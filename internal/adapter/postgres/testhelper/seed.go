package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wassimTlili/med-q-main-sub002/internal/domain"
)

// UniqueName returns prefix followed by a short random suffix, so tests sharing
// one database never collide on the case-insensitive name indexes.
func UniqueName(prefix string) string {
	return prefix + " " + uuid.New().String()[:8]
}

// SeedSubject inserts a subject and returns it.
func SeedSubject(t *testing.T, pool *pgxpool.Pool, name string) domain.Subject {
	t.Helper()

	s := domain.Subject{ID: uuid.New(), Name: name, CreatedAt: time.Now().UTC().Truncate(time.Microsecond)}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO subjects (id, name, created_at) VALUES ($1, $2, $3)`,
		s.ID, s.Name, s.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: seed subject %q: %v", name, err)
	}
	return s
}

// SeedCourse inserts a course under subjectID and returns it.
func SeedCourse(t *testing.T, pool *pgxpool.Pool, subjectID uuid.UUID, name string) domain.Course {
	t.Helper()

	c := domain.Course{ID: uuid.New(), SubjectID: subjectID, Name: name, CreatedAt: time.Now().UTC().Truncate(time.Microsecond)}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO courses (id, subject_id, name, created_at) VALUES ($1, $2, $3, $4)`,
		c.ID, c.SubjectID, c.Name, c.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: seed course %q: %v", name, err)
	}
	return c
}
