package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/wassimTlili/med-q-main-sub002/internal/domain"
)

type catalogRepo interface {
	ListSubjects(ctx context.Context) ([]domain.Subject, error)
	ListCourses(ctx context.Context) ([]domain.Course, error)
	CreateSubject(ctx context.Context, name string) (domain.Subject, error)
	CreateCourse(ctx context.Context, name string, subjectID uuid.UUID) (domain.Course, error)
}

// Mode controls what a Matcher does with names that match nothing.
type Mode int

const (
	// ModeCreate creates missing subjects and courses through the repository.
	ModeCreate Mode = iota
	// ModeDryRun invents in-memory entities for missing names and counts them
	// as created, without writing anything.
	ModeDryRun
	// ModeExistingOnly fails resolution of unknown names with domain.ErrNotFound.
	ModeExistingOnly
)

func (m Mode) String() string {
	switch m {
	case ModeDryRun:
		return "dry-run"
	case ModeExistingOnly:
		return "existing-only"
	default:
		return "create"
	}
}

// Service resolves free-text subject and course names against the catalog.
type Service struct {
	repo catalogRepo
	log  *slog.Logger
}

// NewService creates a new catalog Service.
func NewService(log *slog.Logger, repo catalogRepo) *Service {
	return &Service{
		repo: repo,
		log:  log.With("service", "catalog"),
	}
}

// NewMatcher snapshots the catalog and returns a Matcher for one import run.
// The snapshot is not refreshed: entities created by someone else during the
// run are not seen.
func (s *Service) NewMatcher(ctx context.Context, mode Mode) (*Matcher, error) {
	subjects, err := s.repo.ListSubjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog snapshot: %w", err)
	}
	courses, err := s.repo.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog snapshot: %w", err)
	}

	s.log.DebugContext(ctx, "catalog snapshot loaded",
		slog.Int("subjects", len(subjects)),
		slog.Int("courses", len(courses)),
		slog.String("mode", mode.String()),
	)

	return &Matcher{
		repo:        s.repo,
		log:         s.log,
		mode:        mode,
		subjects:    subjects,
		courses:     courses,
		subjectMemo: make(map[string]domain.Subject),
		courseMemo:  make(map[courseKey]domain.Course),
	}, nil
}
