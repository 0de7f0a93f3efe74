package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/wassimTlili/med-q-main-sub002/internal/domain"
)

type courseKey struct {
	subjectID uuid.UUID
	name      string
}

// Matcher resolves names for one import run. It owns the run's memo of
// resolved names, so repeated rows naming the same unknown subject create it
// once. A Matcher is not safe for concurrent use.
type Matcher struct {
	repo catalogRepo
	log  *slog.Logger
	mode Mode

	subjects []domain.Subject
	courses  []domain.Course

	subjectMemo map[string]domain.Subject
	courseMemo  map[courseKey]domain.Course

	createdSubjects int
	createdCourses  int
}

// CreatedSubjects returns how many subjects this run created (or, in dry-run
// mode, would have created).
func (m *Matcher) CreatedSubjects() int { return m.createdSubjects }

// CreatedCourses returns how many courses this run created.
func (m *Matcher) CreatedCourses() int { return m.createdCourses }

// ResolveSubject returns the subject best matching name, creating it when
// nothing matches.
func (m *Matcher) ResolveSubject(ctx context.Context, name string) (domain.Subject, error) {
	key := strings.TrimSpace(name)
	if key == "" {
		return domain.Subject{}, domain.NewValidationError("subject", "required")
	}
	if s, ok := m.subjectMemo[key]; ok {
		return s, nil
	}

	cands := make([]candidate, len(m.subjects))
	for i, s := range m.subjects {
		cands[i] = candidate{id: s.ID, name: s.Name, idx: i}
	}
	if best, ok := bestMatch(key, cands); ok {
		s := m.subjects[best.idx]
		m.subjectMemo[key] = s
		return s, nil
	}

	var (
		s   domain.Subject
		err error
	)
	switch m.mode {
	case ModeExistingOnly:
		return domain.Subject{}, fmt.Errorf("subject %q: %w", key, domain.ErrNotFound)
	case ModeDryRun:
		s = domain.Subject{ID: uuid.New(), Name: key}
	default:
		s, err = m.repo.CreateSubject(ctx, key)
		if err != nil {
			return domain.Subject{}, fmt.Errorf("create subject %q: %w", key, err)
		}
	}

	m.createdSubjects++
	m.subjects = append(m.subjects, s)
	m.subjectMemo[key] = s
	m.log.InfoContext(ctx, "subject created", slog.String("name", s.Name), slog.String("id", s.ID.String()))

	return s, nil
}

// ResolveCourse returns the course of subjectID best matching name,
// creating it under that subject when nothing matches.
func (m *Matcher) ResolveCourse(ctx context.Context, subjectID uuid.UUID, name string) (domain.Course, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return domain.Course{}, domain.NewValidationError("course", "required")
	}
	key := courseKey{subjectID: subjectID, name: trimmed}
	if c, ok := m.courseMemo[key]; ok {
		return c, nil
	}

	var cands []candidate
	for i, c := range m.courses {
		if c.SubjectID == subjectID {
			cands = append(cands, candidate{id: c.ID, name: c.Name, idx: i})
		}
	}
	if best, ok := bestMatch(trimmed, cands); ok {
		c := m.courses[best.idx]
		m.courseMemo[key] = c
		return c, nil
	}

	var (
		c   domain.Course
		err error
	)
	switch m.mode {
	case ModeExistingOnly:
		return domain.Course{}, fmt.Errorf("course %q: %w", trimmed, domain.ErrNotFound)
	case ModeDryRun:
		c = domain.Course{ID: uuid.New(), SubjectID: subjectID, Name: trimmed}
	default:
		c, err = m.repo.CreateCourse(ctx, trimmed, subjectID)
		if err != nil {
			return domain.Course{}, fmt.Errorf("create course %q: %w", trimmed, err)
		}
	}

	m.createdCourses++
	m.courses = append(m.courses, c)
	m.courseMemo[key] = c
	m.log.InfoContext(ctx, "course created",
		slog.String("name", c.Name),
		slog.String("id", c.ID.String()),
		slog.String("subject_id", subjectID.String()),
	)

	return c, nil
}
